package tools

import (
	"fmt"
	"math"
)

// SEOAnalyzer estimates SEO metrics for keyword and domain strategy.
type SEOAnalyzer struct{}

func (t *SEOAnalyzer) Name() string { return "seo_analyzer" }

func (t *SEOAnalyzer) Description() string {
	return "Analyses SEO opportunity metrics: domain authority estimate, keyword difficulty, " +
		"monthly traffic potential, backlink velocity, and page-1 rank probability. " +
		"Returns strategy recommendations for content and link building."
}

func (t *SEOAnalyzer) CalcTypes() []string {
	return []string{"domain_authority_estimate", "keyword_difficulty", "traffic_potential", "backlink_velocity", "rank_probability"}
}

func (t *SEOAnalyzer) Run(params map[string]any) (map[string]any, error) {
	switch calcType := strParam(params, "calc_type", ""); calcType {
	case "domain_authority_estimate":
		return t.daEstimate(params), nil
	case "keyword_difficulty":
		return t.keywordDifficulty(params), nil
	case "traffic_potential":
		return t.trafficPotential(params), nil
	case "backlink_velocity":
		return t.backlinkVelocity(params), nil
	case "rank_probability":
		return t.rankProbability(params), nil
	default:
		return nil, unknownCalc(calcType, t.CalcTypes())
	}
}

func (t *SEOAnalyzer) daEstimate(params map[string]any) map[string]any {
	ageYears := numParam(params, "domain_age_years", 1)
	referringDomains := intParam(params, "referring_domains", 0)
	totalBacklinks := intParam(params, "total_backlinks", 0)

	// Simplified log-based DA model
	ageFactor := math.Min(20, math.Log1p(ageYears)*7)
	rdFactor := math.Min(50, math.Log1p(float64(referringDomains))*8)
	blFactor := math.Min(30, math.Log1p(float64(totalBacklinks))*4)

	da := math.Min(99.0, roundN(ageFactor+rdFactor+blFactor, 1))

	tier := "Low authority (DA <30)"
	if da >= 60 {
		tier = "High authority (DA 60+)"
	} else if da >= 30 {
		tier = "Medium authority (DA 30-60)"
	}

	return map[string]any{
		"calc_type":                      "domain_authority_estimate",
		"estimated_da":                   da,
		"tier":                           tier,
		"age_contribution":               roundN(ageFactor, 1),
		"referring_domains_contribution": roundN(rdFactor, 1),
		"backlinks_contribution":         roundN(blFactor, 1),
		"growth_tip":                     "Focus on earning 5-10 new high-quality referring domains per month to accelerate DA growth.",
	}
}

func (t *SEOAnalyzer) keywordDifficulty(params map[string]any) map[string]any {
	competition := clamp(numParam(params, "competition_score", 0.5), 0.0, 1.0)
	searchVolume := intParam(params, "search_volume", 0)

	// High-volume keywords are more competitive
	volumeFactor := math.Min(30, math.Log1p(float64(searchVolume))*2.5)
	kd := math.Min(100.0, roundN(competition*70+volumeFactor, 1))

	var label, strategy string
	switch {
	case kd >= 70:
		label, strategy = "Hard", "Target long-tail variants first. Build authority over 12+ months."
	case kd >= 40:
		label, strategy = "Medium", "Competitive but achievable in 6-12 months with quality content + links."
	default:
		label, strategy = "Easy", "Quick win. Create comprehensive content and expect results in 2-4 months."
	}

	return map[string]any{
		"calc_type":                "keyword_difficulty",
		"keyword":                  strParam(params, "keyword", ""),
		"keyword_difficulty_score": kd,
		"difficulty_label":         label,
		"strategy":                 strategy,
		"search_volume":            searchVolume,
		"competition_score":        competition,
	}
}

// ctrByPosition holds CTR benchmarks for organic positions 1-10.
var ctrByPosition = map[int]float64{
	1: 28.5, 2: 15.7, 3: 11.0, 4: 8.0, 5: 7.2,
	6: 5.1, 7: 4.0, 8: 3.2, 9: 2.8, 10: 2.5,
}

func (t *SEOAnalyzer) trafficPotential(params map[string]any) map[string]any {
	searchVolume := intParam(params, "search_volume", 0)
	ctrPct := numParam(params, "ctr_estimate_pct", 5.0)

	trafficByPosition := make(map[int]int, len(ctrByPosition))
	for pos, ctr := range ctrByPosition {
		trafficByPosition[pos] = int(math.Round(float64(searchVolume) * ctr / 100))
	}
	estimated := int(math.Round(float64(searchVolume) * ctrPct / 100))

	return map[string]any{
		"calc_type":                     "traffic_potential",
		"search_volume":                 searchVolume,
		"estimated_traffic_at_input_ctr": estimated,
		"ctr_used_pct":                  ctrPct,
		"traffic_by_ranking_position":   trafficByPosition,
		"recommendation": fmt.Sprintf("Ranking #1 would yield ~%d monthly visitors. Even position #5 delivers ~%d visits.",
			trafficByPosition[1], trafficByPosition[5]),
	}
}

func (t *SEOAnalyzer) backlinkVelocity(params map[string]any) map[string]any {
	thisMonth := intParam(params, "new_backlinks_this_month", 0)
	lastMonth := max(1, intParam(params, "new_backlinks_last_month", 1))

	velocityPct := roundN(float64(thisMonth-lastMonth)/float64(lastMonth)*100, 1)

	trend := "Declining"
	if velocityPct > 10 {
		trend = "Accelerating"
	} else if velocityPct > 0 {
		trend = "Growing"
	}

	return map[string]any{
		"calc_type":        "backlink_velocity",
		"velocity_pct_mom": velocityPct,
		"this_month":       thisMonth,
		"last_month":       lastMonth,
		"trend":            trend,
		"note": "Natural, steady backlink growth signals quality to search engines. " +
			"Sudden spikes (>200% MoM) can trigger spam filters.",
	}
}

func (t *SEOAnalyzer) rankProbability(params map[string]any) map[string]any {
	currentDA := numParam(params, "current_da", 20)
	topDA := numParam(params, "top_ranking_da_avg", 60)
	contentQuality := clamp(numParam(params, "content_quality_score", 50), 0, 100)

	daRatio := math.Min(1.0, currentDA/math.Max(1, topDA))
	contentFactor := contentQuality / 100

	prob := roundN((daRatio*0.55+contentFactor*0.45)*100, 1)
	prob = clamp(prob, 2.0, 95.0)

	var recommendation string
	switch {
	case prob >= 60:
		recommendation = "Strong chance to rank. Publish and promote actively."
	case prob >= 35:
		recommendation = "Moderate chance. Invest in link building and content depth before targeting."
	default:
		recommendation = "Low probability currently. Build DA and improve content before targeting this keyword."
	}

	return map[string]any{
		"calc_type":                  "rank_probability",
		"page1_rank_probability_pct": prob,
		"current_da":                 currentDA,
		"competitor_avg_da":          topDA,
		"content_quality_score":      contentQuality,
		"recommendation":             recommendation,
	}
}
