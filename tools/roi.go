package tools

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var errNoChannels = errors.New("provide 'channel_investments' array with channel, investment, and revenue for each channel")

// ROICalculator calculates ROI across marketing channels and investment
// types, including blended marketing mix ROI.
type ROICalculator struct{}

func (t *ROICalculator) Name() string { return "roi_calculator" }

func (t *ROICalculator) Description() string {
	return "Calculates ROI for individual marketing channels (content, SEO, paid media, " +
		"influencer, events) and blended marketing mix ROI. Returns payback analysis " +
		"and channel efficiency rankings."
}

func (t *ROICalculator) CalcTypes() []string {
	return []string{"marketing_roi", "content_roi", "seo_roi", "paid_media_roi",
		"influencer_roi", "event_roi", "overall_marketing_mix_roi"}
}

func (t *ROICalculator) Run(params map[string]any) (map[string]any, error) {
	switch calcType := strParam(params, "calc_type", ""); calcType {
	case "marketing_roi":
		return t.marketingROI(params), nil
	case "content_roi":
		return t.contentROI(params), nil
	case "seo_roi":
		return t.seoROI(params), nil
	case "paid_media_roi":
		return t.paidMediaROI(params), nil
	case "influencer_roi":
		return t.influencerROI(params), nil
	case "event_roi":
		return t.eventROI(params), nil
	case "overall_marketing_mix_roi":
		return t.mixROI(params)
	default:
		return nil, unknownCalc(calcType, t.CalcTypes())
	}
}

// calcROI returns (grossProfit, netProfit, roiPct) for an investment at
// the given margin percentage.
func calcROI(investment, revenue, marginPct float64) (float64, float64, float64) {
	grossProfit := revenue * marginPct / 100
	netProfit := grossProfit - investment
	roiPct := roundN(netProfit/math.Max(0.01, investment)*100, 1)
	return roundN(grossProfit, 2), roundN(netProfit, 2), roiPct
}

func (t *ROICalculator) marketingROI(params map[string]any) map[string]any {
	inv := numParam(params, "investment", 0)
	rev := numParam(params, "revenue_attributed", 0)
	margin := numParam(params, "gross_margin_pct", 100)
	months := intParam(params, "time_period_months", 12)
	attribution := strParam(params, "attribution_model", "last_touch")

	grossProfit, netProfit, roi := calcROI(inv, rev, margin)
	monthlyROI := roundN(roi/float64(months), 1)

	var rating string
	switch {
	case roi >= 300:
		rating = "Excellent"
	case roi >= 100:
		rating = "Good"
	case roi >= 0:
		rating = "Marginal"
	default:
		rating = "Negative"
	}

	return map[string]any{
		"calc_type":          "marketing_roi",
		"roi_pct":            roi,
		"monthly_roi_pct":    monthlyROI,
		"net_profit":         netProfit,
		"gross_profit":       grossProfit,
		"investment":         inv,
		"revenue_attributed": rev,
		"time_period_months": months,
		"attribution_model":  attribution,
		"rating":             rating,
	}
}

func (t *ROICalculator) contentROI(params map[string]any) map[string]any {
	inv := numParam(params, "investment", 0)
	rev := numParam(params, "revenue_attributed", 0)
	pieces := max(1, intParam(params, "content_pieces_produced", 1))
	margin := numParam(params, "gross_margin_pct", 100)
	months := intParam(params, "time_period_months", 12)

	_, netProfit, roi := calcROI(inv, rev, margin)

	return map[string]any{
		"calc_type":             "content_roi",
		"roi_pct":               roi,
		"net_profit":            netProfit,
		"cost_per_piece":        roundN(inv/float64(pieces), 2),
		"roi_per_content_piece": roundN(netProfit/float64(pieces), 2),
		"content_pieces":        pieces,
		"time_period_months":    months,
		"note": "Content ROI compounds over time. A blog post published today " +
			"can generate traffic for 2-5 years. Consider 24-month ROI window.",
	}
}

func (t *ROICalculator) seoROI(params map[string]any) map[string]any {
	inv := numParam(params, "investment", 0)
	trafficIncrease := intParam(params, "organic_traffic_increase", 0)
	convRate := numParam(params, "conversion_rate_pct", 2) / 100
	aov := numParam(params, "average_order_value", 0)
	margin := numParam(params, "gross_margin_pct", 70)
	months := intParam(params, "time_period_months", 12)

	monthlyRevenue := float64(trafficIncrease) * convRate * aov
	totalRevenue := monthlyRevenue * float64(months)
	_, netProfit, roi := calcROI(inv, totalRevenue, margin)

	return map[string]any{
		"calc_type":                "seo_roi",
		"roi_pct":                  roi,
		"net_profit":               netProfit,
		"monthly_organic_revenue":  roundN(monthlyRevenue, 2),
		"total_attributed_revenue": roundN(totalRevenue, 2),
		"investment":               inv,
		"monthly_traffic_increase": trafficIncrease,
		"time_period_months":       months,
		"note":                     "SEO ROI is underestimated. Organic traffic has no per-click cost. Consider 3-year NPV.",
	}
}

func (t *ROICalculator) paidMediaROI(params map[string]any) map[string]any {
	inv := numParam(params, "investment", 0)
	rev := numParam(params, "revenue_attributed", 0)
	margin := numParam(params, "gross_margin_pct", 70)

	roas := roundN(rev/math.Max(0.01, inv), 2)
	_, netProfit, roi := calcROI(inv, rev, margin)
	breakevenROAS := roundN(100/margin, 2)

	relation := "is below"
	advice := "Optimise creative, audience, and landing page before scaling."
	if roas > breakevenROAS {
		relation = "exceeds"
		if roas > breakevenROAS*1.5 {
			advice = "Scale budget 20% and monitor CPA."
		}
	}

	return map[string]any{
		"calc_type":      "paid_media_roi",
		"roi_pct":        roi,
		"roas":           roas,
		"breakeven_roas": breakevenROAS,
		"net_profit":     netProfit,
		"investment":     inv,
		"revenue":        rev,
		"recommendation": fmt.Sprintf("ROAS %vx %s breakeven of %vx. %s", roas, relation, breakevenROAS, advice),
	}
}

func (t *ROICalculator) influencerROI(params map[string]any) map[string]any {
	inv := numParam(params, "investment", 0)
	rev := numParam(params, "revenue_attributed", 0)
	reach := max(1, intParam(params, "influencer_reach", 1))
	margin := numParam(params, "gross_margin_pct", 70)

	cpm := roundN(inv/float64(reach)*1000, 2)
	_, netProfit, roi := calcROI(inv, rev, margin)

	return map[string]any{
		"calc_type":          "influencer_roi",
		"roi_pct":            roi,
		"net_profit":         netProfit,
		"cpm_cost":           cpm,
		"influencer_reach":   reach,
		"investment":         inv,
		"revenue_attributed": rev,
		"benchmark":          "Good influencer CPM: $5-$20 for B2C. B2B micro-influencers: $20-$50 CPM but higher conversion intent.",
	}
}

func (t *ROICalculator) eventROI(params map[string]any) map[string]any {
	inv := numParam(params, "investment", 0)
	attendees := max(1, intParam(params, "event_attendees", 1))
	leads := intParam(params, "leads_from_event", 0)
	rev := numParam(params, "revenue_attributed", 0)
	margin := numParam(params, "gross_margin_pct", 70)

	_, netProfit, roi := calcROI(inv, rev, margin)

	return map[string]any{
		"calc_type":          "event_roi",
		"roi_pct":            roi,
		"net_profit":         netProfit,
		"cost_per_attendee":  roundN(inv/float64(attendees), 2),
		"cost_per_lead":      roundN(inv/float64(max(1, leads)), 2),
		"leads_generated":    leads,
		"attendees":          attendees,
		"investment":         inv,
		"revenue_attributed": rev,
		"benchmark":          "B2B event benchmark: $150-$500 cost per lead. <$200 is excellent for trade shows.",
	}
}

func (t *ROICalculator) mixROI(params map[string]any) (map[string]any, error) {
	channels := sliceParam(params, "channel_investments")
	margin := numParam(params, "gross_margin_pct", 70)

	if len(channels) == 0 {
		return nil, errNoChannels
	}

	type channelROI struct {
		Channel    string  `json:"channel"`
		Investment float64 `json:"investment"`
		Revenue    float64 `json:"revenue"`
		ROIPct     float64 `json:"roi_pct"`
	}

	var totalInv, totalRev float64
	details := make([]channelROI, 0, len(channels))
	for _, raw := range channels {
		c, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		inv := numParam(c, "investment", 0)
		rev := numParam(c, "revenue", 0)
		totalInv += inv
		totalRev += rev
		details = append(details, channelROI{
			Channel:    strParam(c, "channel", "Unknown"),
			Investment: inv,
			Revenue:    rev,
			ROIPct:     roundN((rev*margin/100-inv)/math.Max(0.01, inv)*100, 1),
		})
	}
	sort.Slice(details, func(i, j int) bool { return details[i].ROIPct > details[j].ROIPct })

	_, netProfit, blendedROI := calcROI(totalInv, totalRev, margin)

	top, worst := "N/A", "N/A"
	tip := "Add more channels for mix optimisation."
	if len(details) > 0 {
		top = details[0].Channel
		worst = details[len(details)-1].Channel
	}
	if len(details) >= 2 {
		tip = fmt.Sprintf("Reallocate budget from '%s' (ROI: %v%%) to '%s' (ROI: %v%%) for higher blended returns.",
			worst, details[len(details)-1].ROIPct, top, details[0].ROIPct)
	}

	return map[string]any{
		"calc_type":                "overall_marketing_mix_roi",
		"blended_roi_pct":          blendedROI,
		"total_investment":         roundN(totalInv, 2),
		"total_revenue":            roundN(totalRev, 2),
		"net_profit":               netProfit,
		"channel_breakdown":        details,
		"top_performing_channel":   top,
		"worst_performing_channel": worst,
		"optimisation_tip":         tip,
	}, nil
}
