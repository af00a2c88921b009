package tools

import (
	"errors"
	"math"
)

var errMonthlyProfit = errors.New("monthly gross profit must be > 0 to calculate payback period")

// CampaignAnalyticsCalc calculates core campaign performance metrics:
// CAC, LTV, ROAS, payback period, MRR growth, churn rate, and NPS.
type CampaignAnalyticsCalc struct{}

func (t *CampaignAnalyticsCalc) Name() string { return "campaign_analytics_calc" }

func (t *CampaignAnalyticsCalc) Description() string {
	return "Calculates campaign and business performance metrics including CAC, LTV, ROAS, " +
		"payback period, MRR growth, churn rate, and NPS. Returns benchmarks and " +
		"actionable optimisation recommendations."
}

func (t *CampaignAnalyticsCalc) CalcTypes() []string {
	return []string{"cac", "ltv", "roas", "payback_period", "mrr_growth", "churn_rate", "nps_score"}
}

func (t *CampaignAnalyticsCalc) Run(params map[string]any) (map[string]any, error) {
	switch calcType := strParam(params, "calc_type", ""); calcType {
	case "cac":
		return t.cac(params), nil
	case "ltv":
		return t.ltv(params), nil
	case "roas":
		return t.roas(params), nil
	case "payback_period":
		return t.paybackPeriod(params)
	case "mrr_growth":
		return t.mrrGrowth(params), nil
	case "churn_rate":
		return t.churnRate(params), nil
	case "nps_score":
		return t.npsScore(params), nil
	default:
		return nil, unknownCalc(calcType, t.CalcTypes())
	}
}

func (t *CampaignAnalyticsCalc) cac(params map[string]any) map[string]any {
	spend := numParam(params, "ad_spend", 0)
	newCustomers := max(1, intParam(params, "new_customers", 1))
	overheadPct := numParam(params, "sales_overhead_pct", 0)

	marketingCAC := spend / float64(newCustomers)
	fullyLoadedCAC := marketingCAC * (1 + overheadPct/100)

	return map[string]any{
		"calc_type":        "cac",
		"marketing_cac":    roundN(marketingCAC, 2),
		"fully_loaded_cac": roundN(fullyLoadedCAC, 2),
		"total_spend":      spend,
		"new_customers":    newCustomers,
		"benchmark_note":   "Compare to LTV: healthy ratio is LTV:CAC >= 3:1.",
		"optimisation_tip": "Reduce CAC by improving conversion rate at each funnel stage, " +
			"increasing organic channels, and optimising paid media targeting.",
	}
}

func (t *CampaignAnalyticsCalc) ltv(params map[string]any) map[string]any {
	aov := numParam(params, "average_order_value", 0)
	freq := numParam(params, "average_purchase_frequency", 1)
	churn := math.Max(0.001, numParam(params, "monthly_churn_rate_pct", 5)/100)
	margin := numParam(params, "gross_margin_pct", 70) / 100

	lifespanMonths := 1 / churn
	annualRevenue := aov * freq
	monthlyRevenue := annualRevenue / 12

	ltv := roundN(monthlyRevenue*margin*lifespanMonths, 2)
	ltvSimple := roundN(aov*freq*lifespanMonths/12, 2)

	return map[string]any{
		"calc_type":                    "ltv",
		"ltv_margin_adjusted":          ltv,
		"ltv_simple":                   ltvSimple,
		"avg_customer_lifespan_months": roundN(lifespanMonths, 1),
		"annual_revenue_per_customer":  roundN(annualRevenue, 2),
		"inputs": map[string]any{
			"aov":                aov,
			"freq_per_year":      freq,
			"monthly_churn_pct":  numParam(params, "monthly_churn_rate_pct", 5),
			"gross_margin_pct":   numParam(params, "gross_margin_pct", 70),
		},
		"note": "Reduce churn by 1% to significantly increase LTV. Focus on onboarding and CS.",
	}
}

func (t *CampaignAnalyticsCalc) roas(params map[string]any) map[string]any {
	spend := math.Max(0.01, numParam(params, "ad_spend", 0))
	revenue := numParam(params, "revenue_attributed", 0)
	margin := numParam(params, "gross_margin_pct", 70) / 100

	roas := roundN(revenue/spend, 2)
	mroas := roundN(revenue*margin/spend, 2)

	var rating, note string
	switch {
	case roas >= 4:
		rating, note = "Excellent", "Scale this campaign. Strong positive ROI."
	case roas >= 2:
		rating, note = "Good", "Performing above break-even. Test scaling budget 20%."
	case roas >= 1:
		rating, note = "Break-even", "Covering spend but not profitable after margin. Optimise creative/targeting."
	default:
		rating, note = "Negative ROI", "Pause and audit creative, audience, landing page, and offer."
	}

	return map[string]any{
		"calc_type":            "roas",
		"roas":                 roas,
		"margin_adjusted_roas": mroas,
		"revenue":              revenue,
		"spend":                spend,
		"rating":               rating,
		"action":               note,
		"breakeven_roas":       roundN(1/margin, 2),
	}
}

func (t *CampaignAnalyticsCalc) paybackPeriod(params map[string]any) (map[string]any, error) {
	spend := numParam(params, "ad_spend", 0)
	newCustomers := max(1, intParam(params, "new_customers", 1))
	aov := numParam(params, "average_order_value", 0)
	freq := numParam(params, "average_purchase_frequency", 12)
	margin := numParam(params, "gross_margin_pct", 70) / 100

	cac := spend / float64(newCustomers)
	monthlyGrossProfit := aov * freq / 12 * margin

	if monthlyGrossProfit <= 0 {
		return nil, errMonthlyProfit
	}

	paybackMonths := roundN(cac/monthlyGrossProfit, 1)

	rating := "Needs improvement"
	if paybackMonths <= 6 {
		rating = "Excellent"
	} else if paybackMonths <= 12 {
		rating = "Good"
	}

	return map[string]any{
		"calc_type":                         "payback_period",
		"payback_period_months":             paybackMonths,
		"cac":                               roundN(cac, 2),
		"monthly_gross_profit_per_customer": roundN(monthlyGrossProfit, 2),
		"rating":                            rating,
		"benchmark":                         "SaaS benchmark: <12 months is healthy; <6 months is exceptional.",
	}, nil
}

func (t *CampaignAnalyticsCalc) mrrGrowth(params map[string]any) map[string]any {
	current := numParam(params, "current_mrr", 0)
	previous := math.Max(0.01, numParam(params, "previous_mrr", 0.01))

	growthPct := roundN((current-previous)/previous*100, 2)

	trend := "Flat"
	if growthPct > 0 {
		trend = "Growing"
	} else if growthPct < 0 {
		trend = "Declining"
	}

	return map[string]any{
		"calc_type":      "mrr_growth",
		"mrr_growth_pct": growthPct,
		"current_mrr":    current,
		"previous_mrr":   previous,
		"arr_annualised": roundN(current*12, 2),
		"trend":          trend,
		"benchmark":      "Healthy SaaS growth: 10-15% MoM in early stage; 5-8% in growth stage.",
	}
}

func (t *CampaignAnalyticsCalc) churnRate(params map[string]any) map[string]any {
	churned := intParam(params, "churned_customers", 0)
	starting := max(1, intParam(params, "starting_customers", 1))

	churnPct := roundN(float64(churned)/float64(starting)*100, 2)
	retentionPct := roundN(100-churnPct, 2)
	lifespanMonths := roundN(100/math.Max(churnPct, 0.1), 1)

	rating := "At risk"
	if churnPct < 2 {
		rating = "World-class"
	} else if churnPct <= 5 {
		rating = "Good"
	}

	actions := []string{"Maintain retention programmes and monitor NPS trend."}
	if churnPct > 3 {
		actions = []string{
			"Analyse exit surveys to identify top churn reasons.",
			"Implement 30/60/90-day onboarding health checks.",
			"Create proactive CSM playbooks for at-risk accounts.",
		}
	}

	return map[string]any{
		"calc_type":                    "churn_rate",
		"monthly_churn_pct":            churnPct,
		"monthly_retention_pct":        retentionPct,
		"implied_avg_lifespan_months":  lifespanMonths,
		"churned_customers":            churned,
		"starting_customers":           starting,
		"rating":                       rating,
		"benchmark":                    "World-class SaaS: <2% monthly churn. Good: 2-5%. Needs work: >5%.",
		"actions":                      actions,
	}
}

func (t *CampaignAnalyticsCalc) npsScore(params map[string]any) map[string]any {
	promoters := intParam(params, "promoters", 0)
	detractors := intParam(params, "detractors", 0)
	total := max(1, intParam(params, "total_respondents", 1))

	nps := roundN(float64(promoters-detractors)/float64(total)*100, 1)
	passives := total - promoters - detractors

	var category string
	switch {
	case nps > 70:
		category = "World-class (>70)"
	case nps > 50:
		category = "Excellent (50-70)"
	case nps > 30:
		category = "Good (30-50)"
	default:
		category = "Needs improvement (<30)"
	}

	return map[string]any{
		"calc_type":         "nps_score",
		"nps_score":         nps,
		"promoters":         promoters,
		"passives":          passives,
		"detractors":        detractors,
		"total_respondents": total,
		"promoter_pct":      roundN(float64(promoters)/float64(total)*100, 1),
		"detractor_pct":     roundN(float64(detractors)/float64(total)*100, 1),
		"category":          category,
		"benchmark":         "B2B SaaS average NPS: 30-40. Top-quartile: >50.",
	}
}
