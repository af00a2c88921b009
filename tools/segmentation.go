package tools

import (
	"fmt"
	"math"
)

// MarketSegmentation estimates market sizing and segmentation
// opportunities: TAM/SAM/SOM, penetration rate, and segment scoring.
type MarketSegmentation struct{}

func (t *MarketSegmentation) Name() string { return "market_segmentation" }

func (t *MarketSegmentation) Description() string {
	return "Estimates TAM, SAM, and SOM for market sizing. Calculates market penetration rate " +
		"and scores segment attractiveness for ICP prioritisation. Supports top-down and " +
		"bottom-up sizing approaches."
}

func (t *MarketSegmentation) CalcTypes() []string {
	return []string{"tam_estimate", "sam_estimate", "som_estimate", "market_penetration_rate", "ideal_segment_score"}
}

func (t *MarketSegmentation) Run(params map[string]any) (map[string]any, error) {
	switch calcType := strParam(params, "calc_type", ""); calcType {
	case "tam_estimate":
		return t.tam(params), nil
	case "sam_estimate":
		return t.sam(params), nil
	case "som_estimate":
		return t.som(params), nil
	case "market_penetration_rate":
		return t.penetration(params), nil
	case "ideal_segment_score":
		return t.segmentScore(params), nil
	default:
		return nil, unknownCalc(calcType, t.CalcTypes())
	}
}

func formatDollars(v float64) string {
	if v >= 1_000_000 {
		return fmt.Sprintf("$%.1fM", v/1_000_000)
	}
	return fmt.Sprintf("$%.0fK", v/1_000)
}

func (t *MarketSegmentation) tam(params map[string]any) map[string]any {
	companies := intParam(params, "total_companies_in_market", 0)
	adv := numParam(params, "average_deal_value", 0)
	tam := roundN(float64(companies)*adv, 2)

	return map[string]any{
		"calc_type":          "tam_estimate",
		"tam_dollars":        tam,
		"tam_formatted":      formatDollars(tam),
		"total_companies":    companies,
		"average_deal_value": adv,
		"note":               "TAM = total revenue opportunity if you captured 100% of the market.",
	}
}

func (t *MarketSegmentation) sam(params map[string]any) map[string]any {
	companies := intParam(params, "total_companies_in_market", 0)
	adv := numParam(params, "average_deal_value", 0)
	serviceablePct := numParam(params, "serviceable_fraction_pct", 30)
	tam := float64(companies) * adv
	sam := roundN(tam*serviceablePct/100, 2)

	return map[string]any{
		"calc_type":       "sam_estimate",
		"sam_dollars":     sam,
		"sam_formatted":   formatDollars(sam),
		"tam_dollars":     roundN(tam, 2),
		"serviceable_pct": serviceablePct,
		"note":            "SAM = the portion of TAM your current GTM model can reach.",
	}
}

func (t *MarketSegmentation) som(params map[string]any) map[string]any {
	companies := intParam(params, "total_companies_in_market", 0)
	adv := numParam(params, "average_deal_value", 0)
	serviceablePct := numParam(params, "serviceable_fraction_pct", 30)
	obtainablePct := numParam(params, "obtainable_fraction_pct", 5)
	sam := float64(companies) * adv * serviceablePct / 100
	som := roundN(sam*obtainablePct/100, 2)

	return map[string]any{
		"calc_type":        "som_estimate",
		"som_dollars":      som,
		"som_formatted":    formatDollars(som),
		"sam_dollars":      roundN(sam, 2),
		"obtainable_pct":   obtainablePct,
		"target_customers": int(math.Round(float64(companies) * serviceablePct / 100 * obtainablePct / 100)),
		"note":             "SOM = realistic revenue target achievable with current resources in 3-5 years.",
	}
}

func (t *MarketSegmentation) penetration(params map[string]any) map[string]any {
	current := intParam(params, "current_customers", 0)
	total := max(1, intParam(params, "total_companies_in_market", 1))
	penetration := roundN(float64(current)/float64(total)*100, 3)

	var interpretation string
	switch {
	case penetration > 30:
		interpretation = "Market leader position."
	case penetration > 10:
		interpretation = "Strong penetration. Focus on expansion revenue."
	case penetration > 2:
		interpretation = "Growth stage. Significant greenfield opportunity remains."
	default:
		interpretation = "Early stage. Prioritise acquisition and product-market fit signals."
	}

	return map[string]any{
		"calc_type":                   "market_penetration_rate",
		"penetration_rate_pct":        penetration,
		"current_customers":           current,
		"total_addressable_companies": total,
		"interpretation":              interpretation,
	}
}

var competitionPenalties = map[string]float64{
	"Low": 0, "Medium": 10, "High": 20, "Extremely High": 35,
}

func (t *MarketSegmentation) segmentScore(params map[string]any) map[string]any {
	growth := numParam(params, "segment_growth_rate_pct", 5)
	dealCycle := numParam(params, "avg_deal_cycle_days", 90)
	competition := strParam(params, "competition_intensity", "Medium")
	differentiation := clamp(numParam(params, "differentiation_score", 5), 0, 10)

	compPenalty, ok := competitionPenalties[competition]
	if !ok {
		compPenalty = 10
	}
	growthScore := math.Min(30, growth*1.5)
	cycleScore := math.Max(0, 25-dealCycle/10)
	diffScore := differentiation * 2.0 // max 20
	const baseScore = 25.0             // baseline attractiveness

	total := roundN(baseScore+growthScore+cycleScore+diffScore-compPenalty, 1)
	total = clamp(total, 0, 100)

	rating := "Low priority"
	recommendation := "Deprioritise. Low growth, high competition, or long cycles."
	if total >= 70 {
		rating = "Priority segment"
		recommendation = "Prioritise this segment in next quarter's GTM plan."
	} else if total >= 45 {
		rating = "Secondary segment"
		recommendation = "Include in product roadmap and secondary marketing campaigns."
	}

	return map[string]any{
		"calc_type":                    "ideal_segment_score",
		"segment_attractiveness_score": total,
		"rating":                       rating,
		"breakdown": map[string]any{
			"growth_score":          roundN(growthScore, 1),
			"deal_cycle_score":      roundN(cycleScore, 1),
			"differentiation_score": roundN(diffScore, 1),
			"competition_penalty":   -compPenalty,
			"baseline":              baseScore,
		},
		"recommendation": recommendation,
	}
}
