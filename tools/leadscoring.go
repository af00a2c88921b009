package tools

import (
	"fmt"
	"math"
)

// ICP target ranges for scoring
const (
	idealCompanySizeMin = 50
	idealCompanySizeMax = 5000
)

var seniorityWeights = map[string]float64{
	"C-Suite":                1.0,
	"VP":                     0.9,
	"Director":               0.75,
	"Manager":                0.55,
	"Individual Contributor": 0.3,
	"Unknown":                0.2,
}

var budgetWeights = map[string]float64{
	"<$10k":      0.1,
	"$10k-$50k":  0.4,
	"$50k-$200k": 0.75,
	"$200k-$1M":  0.95,
	">$1M":       1.0,
	"Unknown":    0.15,
}

func seniorityWeight(s string) float64 {
	if w, ok := seniorityWeights[s]; ok {
		return w
	}
	return 0.2
}

func budgetWeight(b string) float64 {
	if w, ok := budgetWeights[b]; ok {
		return w
	}
	return 0.15
}

// LeadScoringCalc scores and qualifies leads using ICP fit, BANT, MEDDIC,
// lead velocity rate, and conversion probability models.
type LeadScoringCalc struct{}

func (t *LeadScoringCalc) Name() string { return "lead_scoring_calc" }

func (t *LeadScoringCalc) Description() string {
	return "Scores and qualifies sales leads using ICP fit (ILT), BANT, MEDDIC frameworks, " +
		"lead velocity rate, and conversion probability. Returns scores 0-100 with " +
		"qualification status and prioritised next-step recommendations."
}

func (t *LeadScoringCalc) CalcTypes() []string {
	return []string{"ilt_score", "bant_qualify", "meddic_score", "lead_velocity_rate", "conversion_probability"}
}

func (t *LeadScoringCalc) Run(params map[string]any) (map[string]any, error) {
	switch calcType := strParam(params, "calc_type", ""); calcType {
	case "ilt_score":
		return t.iltScore(params), nil
	case "bant_qualify":
		return t.bantQualify(params), nil
	case "meddic_score":
		return t.meddicScore(params), nil
	case "lead_velocity_rate":
		return t.leadVelocityRate(params), nil
	case "conversion_probability":
		return t.conversionProbability(params), nil
	default:
		return nil, unknownCalc(calcType, t.CalcTypes())
	}
}

func (t *LeadScoringCalc) iltScore(params map[string]any) map[string]any {
	companySize := intParam(params, "company_size", 0)
	seniority := strParam(params, "title_seniority", "Unknown")
	engagement := intParam(params, "engagement_signals", 0)
	industry := strParam(params, "industry", "")

	// Firmographic fit (40 pts)
	var firmographic float64
	switch {
	case companySize >= idealCompanySizeMin && companySize <= idealCompanySizeMax:
		firmographic = 40.0
	case companySize > idealCompanySizeMax:
		firmographic = 35.0 // enterprise, needs a different motion
	case companySize > 10:
		firmographic = 20.0
	default:
		firmographic = 5.0
	}

	// Seniority (35 pts)
	seniorityScore := seniorityWeight(seniority) * 35.0

	// Engagement (25 pts), log-based diminishing returns
	engagementScore := math.Min(25.0, math.Log1p(float64(engagement))*5.5)

	score := roundN(math.Min(100.0, firmographic+seniorityScore+engagementScore), 1)

	var tier, action string
	switch {
	case score >= 75:
		tier, action = "A — Hot", "Route to AE immediately. Add to Tier-1 sequence."
	case score >= 55:
		tier, action = "B — Warm", "Enroll in nurture sequence. SDR follow-up within 24 h."
	case score >= 35:
		tier, action = "C — Cool", "Long-nurture sequence. Marketing-qualified only."
	default:
		tier, action = "D — Unqualified", "Do not work. Return to awareness campaigns."
	}

	return map[string]any{
		"calc_type": "ilt_score",
		"ilt_score": score,
		"tier":      tier,
		"breakdown": map[string]any{
			"firmographic_fit_40pts":   roundN(firmographic, 1),
			"title_seniority_35pts":    roundN(seniorityScore, 1),
			"engagement_signals_25pts": roundN(engagementScore, 1),
		},
		"recommended_action": action,
		"inputs": map[string]any{
			"company_size":       companySize,
			"industry":           industry,
			"title_seniority":    seniority,
			"engagement_signals": engagement,
		},
	}
}

func (t *LeadScoringCalc) bantQualify(params map[string]any) map[string]any {
	budget := strParam(params, "budget_range", "Unknown")
	seniority := strParam(params, "title_seniority", "Unknown")
	painScore := clampInt(intParam(params, "pain_score", 0), 0, 10)
	timeline := numParam(params, "timeline_months", 12)

	bScore := budgetWeight(budget) * 25
	aScore := seniorityWeight(seniority) * 25
	nScore := float64(painScore) / 10.0 * 25

	// Shorter timeline scores higher
	var tScore float64
	switch {
	case timeline <= 1:
		tScore = 25.0
	case timeline <= 3:
		tScore = 20.0
	case timeline <= 6:
		tScore = 14.0
	case timeline <= 12:
		tScore = 8.0
	default:
		tScore = 3.0
	}

	total := roundN(bScore+aScore+nScore+tScore, 1)
	qualified := total >= 60

	var gaps []string
	if bScore < 10 {
		gaps = append(gaps, "Budget clarity")
	}
	if aScore < 12 {
		gaps = append(gaps, "Economic buyer confirmed")
	}
	if nScore < 12 {
		gaps = append(gaps, "Clear pain identified")
	}
	if tScore < 8 {
		gaps = append(gaps, "Active buying timeline")
	}

	status := "MQL — Needs further nurturing"
	nextSteps := "Schedule discovery call to map stakeholders and confirm budget."
	if qualified {
		status = "SQL — Sales Qualified Lead"
		nextSteps = "Progress to demo / proposal. Assign AE and create deal in CRM."
	}

	return map[string]any{
		"calc_type":            "bant_qualify",
		"bant_total_score":     total,
		"qualified":            qualified,
		"qualification_status": status,
		"breakdown": map[string]any{
			"Budget_25pts":    roundN(bScore, 1),
			"Authority_25pts": roundN(aScore, 1),
			"Need_25pts":      roundN(nScore, 1),
			"Timeline_25pts":  roundN(tScore, 1),
		},
		"gaps":       gaps,
		"next_steps": nextSteps,
	}
}

func (t *LeadScoringCalc) meddicScore(params map[string]any) map[string]any {
	painScore := clampInt(intParam(params, "pain_score", 0), 0, 10)
	decisionMaker := boolParam(params, "decision_maker_confirmed", false)
	champion := boolParam(params, "champion_identified", false)
	engagement := intParam(params, "engagement_signals", 0)

	metricsScore := roundN(float64(painScore)/10*17, 1)
	econBuyerScore := 4.0
	if decisionMaker {
		econBuyerScore = 17.0
	}
	decisionCriteria := roundN(math.Min(17, float64(engagement)*1.2), 1)
	decisionProcess := roundN(math.Min(17, float64(engagement)*0.9), 1)
	identifyPainScore := roundN(float64(painScore)/10*16, 1)
	championScore := 3.0
	if champion {
		championScore = 16.0
	}

	total := roundN(metricsScore+econBuyerScore+decisionCriteria+decisionProcess+identifyPainScore+championScore, 1)
	total = math.Min(100, total)

	confidence := "Low"
	if total >= 70 {
		confidence = "High"
	} else if total >= 45 {
		confidence = "Medium"
	}

	var risks []string
	if econBuyerScore < 10 {
		risks = append(risks, "No economic buyer confirmed")
	}
	if identifyPainScore < 8 {
		risks = append(risks, "Weak pain articulation")
	}
	if championScore < 8 {
		risks = append(risks, "No internal champion")
	}
	if decisionProcess < 8 {
		risks = append(risks, "Unclear decision process")
	}

	return map[string]any{
		"calc_type":       "meddic_score",
		"meddic_total":    total,
		"deal_confidence": confidence,
		"breakdown": map[string]any{
			"Metrics":           metricsScore,
			"Economic_Buyer":    econBuyerScore,
			"Decision_Criteria": decisionCriteria,
			"Decision_Process":  decisionProcess,
			"Identify_Pain":     identifyPainScore,
			"Champion":          championScore,
		},
		"risks": risks,
	}
}

func (t *LeadScoringCalc) leadVelocityRate(params map[string]any) map[string]any {
	current := intParam(params, "current_month_qualified", 0)
	previous := intParam(params, "previous_month_qualified", 1)

	var lvr float64
	if previous == 0 {
		lvr = 100.0
	} else {
		lvr = roundN(float64(current-previous)/float64(previous)*100, 2)
	}

	trend := "Flat"
	if lvr > 0 {
		trend = "Growing"
	} else if lvr < 0 {
		trend = "Declining"
	}

	var advice string
	switch {
	case lvr > 5:
		advice = "Positive indicator for future revenue growth."
	case lvr < 0:
		advice = "Investigate top-of-funnel activities."
	default:
		advice = "Maintain current lead generation activities."
	}

	return map[string]any{
		"calc_type":      "lead_velocity_rate",
		"lvr_percent":    lvr,
		"trend":          trend,
		"current_month":  current,
		"previous_month": previous,
		"delta":          current - previous,
		"interpretation": fmt.Sprintf("Pipeline is %s at %.1f%% MoM. %s",
			map[string]string{"Growing": "growing", "Declining": "declining", "Flat": "flat"}[trend],
			math.Abs(lvr), advice),
	}
}

func (t *LeadScoringCalc) conversionProbability(params map[string]any) map[string]any {
	stageWinRates := floatsParam(params, "stage_win_rates", []float64{0.4, 0.6, 0.75, 0.85})
	daysInStage := numParam(params, "days_in_stage", 10)
	painScore := clampInt(intParam(params, "pain_score", 5), 0, 10)

	// Product of stage-by-stage win rates
	baseProb := 1.0
	for _, rate := range stageWinRates {
		baseProb *= clamp(rate, 0.0, 1.0)
	}

	// After 30 days in stage the probability decays
	ageDecay := math.Max(0.5, 1.0-math.Max(0, daysInStage-30)*0.005)

	painMultiplier := 0.7 + float64(painScore)/10*0.3

	adjusted := roundN(baseProb*ageDecay*painMultiplier*100, 1)
	adjusted = clamp(adjusted, 1.0, 99.0)

	risk := "High"
	recommendation := "At-risk deal. Executive sponsor outreach or reassign to nurture."
	if adjusted >= 65 {
		risk = "Low"
		recommendation = "Strong close candidate. Prepare proposal and procurement docs."
	} else if adjusted >= 35 {
		risk = "Medium"
		recommendation = "Mid-funnel risk. Re-engage champion. Validate timeline and budget."
	}

	return map[string]any{
		"calc_type":                  "conversion_probability",
		"conversion_probability_pct": adjusted,
		"risk_level":                 risk,
		"base_probability_pct":       roundN(baseProb*100, 1),
		"age_decay_factor":           roundN(ageDecay, 3),
		"pain_multiplier":            roundN(painMultiplier, 3),
		"recommendation":             recommendation,
	}
}
