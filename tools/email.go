package tools

import (
	"fmt"
	"math"
)

// EmailCampaignManager analyses and scores email campaign performance
// and strategy.
type EmailCampaignManager struct{}

func (t *EmailCampaignManager) Name() string { return "email_campaign_manager" }

func (t *EmailCampaignManager) Description() string {
	return "Analyses email campaign health and performance: deliverability scoring, open/click " +
		"benchmarking, revenue per email, list health scoring, and sequence ROI. " +
		"Provides actionable deliverability and engagement improvement recommendations."
}

func (t *EmailCampaignManager) CalcTypes() []string {
	return []string{"deliverability_score", "open_rate_benchmark", "click_rate_benchmark",
		"revenue_per_email", "list_health_score", "sequence_roi"}
}

// Industry benchmarks
var openBenchmarks = map[string]float64{
	"SaaS": 21.5, "E-commerce": 15.7, "B2B Services": 20.1,
	"Media": 22.3, "Healthcare": 23.4, "Finance": 20.5, "Other": 19.0,
}

var clickBenchmarks = map[string]float64{
	"SaaS": 3.1, "E-commerce": 2.3, "B2B Services": 3.4,
	"Media": 4.2, "Healthcare": 3.8, "Finance": 2.9, "Other": 2.6,
}

func (t *EmailCampaignManager) Run(params map[string]any) (map[string]any, error) {
	switch calcType := strParam(params, "calc_type", ""); calcType {
	case "deliverability_score":
		return t.deliverability(params), nil
	case "open_rate_benchmark":
		return t.openRateBenchmark(params), nil
	case "click_rate_benchmark":
		return t.clickRateBenchmark(params), nil
	case "revenue_per_email":
		return t.revenuePerEmail(params), nil
	case "list_health_score":
		return t.listHealth(params), nil
	case "sequence_roi":
		return t.sequenceROI(params), nil
	default:
		return nil, unknownCalc(calcType, t.CalcTypes())
	}
}

func (t *EmailCampaignManager) deliverability(params map[string]any) map[string]any {
	bounce := numParam(params, "bounce_rate_pct", 0)
	spam := numParam(params, "spam_complaint_rate_pct", 0)
	hasSPF := boolParam(params, "has_spf", false)
	hasDKIM := boolParam(params, "has_dkim", false)
	hasDMARC := boolParam(params, "has_dmarc", false)

	score := 100.0
	var issues []string

	// Authentication (30 pts)
	authScore := 0.0
	if hasSPF {
		authScore += 10
	} else {
		issues = append(issues, "Set up SPF record to authenticate sending domain.")
	}
	if hasDKIM {
		authScore += 10
	} else {
		issues = append(issues, "Enable DKIM signing in your ESP.")
	}
	if hasDMARC {
		authScore += 10
	} else {
		issues = append(issues, "Publish a DMARC policy (start with p=none for monitoring).")
	}
	score = score - 30 + authScore

	// Bounce rate (35 pts)
	var bounceScore float64
	switch {
	case bounce <= 0.5:
		bounceScore = 35
	case bounce <= 2.0:
		bounceScore = 25
		issues = append(issues, fmt.Sprintf("Bounce rate %v%% is elevated. Clean list with email verification.", bounce))
	case bounce <= 5.0:
		bounceScore = 12
		issues = append(issues, fmt.Sprintf("High bounce rate %v%%, urgent list cleaning required.", bounce))
	default:
		bounceScore = 0
		issues = append(issues, fmt.Sprintf("Critical bounce rate %v%%, ESPs will block sending. Pause and clean.", bounce))
	}
	score = score - 35 + bounceScore

	// Spam complaint rate (35 pts)
	var spamScore float64
	switch {
	case spam <= 0.08:
		spamScore = 35
	case spam <= 0.2:
		spamScore = 20
		issues = append(issues, fmt.Sprintf("Spam complaints %v%% approaching danger zone. Review content and list quality.", spam))
	default:
		spamScore = 5
		issues = append(issues, fmt.Sprintf("Spam complaint rate %v%% is critical, ISPs will blacklist your domain.", spam))
	}
	score = score - 35 + spamScore

	score = clamp(roundN(score, 1), 0, 100)

	var rating string
	switch {
	case score >= 85:
		rating = "Excellent"
	case score >= 65:
		rating = "Good"
	case score >= 40:
		rating = "At risk"
	default:
		rating = "Critical"
	}

	if len(issues) == 0 {
		issues = []string{"Deliverability health is excellent."}
	}

	return map[string]any{
		"calc_type":               "deliverability_score",
		"deliverability_score":    score,
		"rating":                  rating,
		"authentication":          map[string]bool{"SPF": hasSPF, "DKIM": hasDKIM, "DMARC": hasDMARC},
		"bounce_rate_pct":         bounce,
		"spam_complaint_rate_pct": spam,
		"issues":                  issues,
	}
}

func (t *EmailCampaignManager) openRateBenchmark(params map[string]any) map[string]any {
	actual := numParam(params, "open_rate_pct", 0)
	industry := strParam(params, "industry", "Other")
	benchmark, ok := openBenchmarks[industry]
	if !ok {
		benchmark = 19.0
	}
	delta := roundN(actual-benchmark, 1)

	performance := "Below benchmark"
	if delta >= 0 {
		performance = "Above benchmark"
	}

	subjectTip := "Maintain subject line strategy."
	if actual < benchmark {
		subjectTip = "A/B test subject lines with curiosity, urgency, or personalisation."
	}

	return map[string]any{
		"calc_type":              "open_rate_benchmark",
		"actual_open_rate_pct":   actual,
		"industry_benchmark_pct": benchmark,
		"industry":               industry,
		"delta_vs_benchmark":     delta,
		"performance":            performance,
		"tips": []string{
			subjectTip,
			"Segment list by engagement level. Send re-engagement campaign to cold subscribers.",
			"Test send times: Tue-Thu, 10 AM or 2 PM recipient local time typically outperform.",
		},
	}
}

func (t *EmailCampaignManager) clickRateBenchmark(params map[string]any) map[string]any {
	actual := numParam(params, "click_rate_pct", 0)
	industry := strParam(params, "industry", "Other")
	benchmark, ok := clickBenchmarks[industry]
	if !ok {
		benchmark = 2.6
	}
	delta := roundN(actual-benchmark, 1)

	performance := "Below benchmark"
	if delta >= 0 {
		performance = "Above benchmark"
	}

	tips := []string{"CTR is performing well. Test adding a secondary CTA."}
	if actual < benchmark {
		tips = []string{
			"Use a single, prominent CTA button rather than multiple text links.",
			"Add urgency: 'Offer expires in 48 hours' or 'Only 3 spots remaining'.",
			"Personalise email content using segmentation data.",
		}
	}

	return map[string]any{
		"calc_type":              "click_rate_benchmark",
		"actual_click_rate_pct":  actual,
		"industry_benchmark_pct": benchmark,
		"industry":               industry,
		"delta_vs_benchmark":     delta,
		"performance":            performance,
		"tips":                   tips,
	}
}

func (t *EmailCampaignManager) revenuePerEmail(params map[string]any) map[string]any {
	emailsSent := max(1, intParam(params, "emails_sent", 1))
	conversionRate := numParam(params, "conversion_rate_pct", 1) / 100
	aov := numParam(params, "average_order_value", 0)

	conversions := int(math.Round(float64(emailsSent) * conversionRate))
	totalRevenue := roundN(float64(conversions)*aov, 2)
	rpe := roundN(totalRevenue/float64(emailsSent), 4)

	return map[string]any{
		"calc_type":             "revenue_per_email",
		"revenue_per_email":     rpe,
		"total_revenue":         totalRevenue,
		"estimated_conversions": conversions,
		"emails_sent":           emailsSent,
		"conversion_rate_pct":   numParam(params, "conversion_rate_pct", 1),
		"aov":                   aov,
		"benchmark":             "Strong email programmes generate $0.05-$0.20 RPE. World-class: >$1.00 RPE.",
	}
}

func (t *EmailCampaignManager) listHealth(params map[string]any) map[string]any {
	listSize := max(1, intParam(params, "list_size", 1))
	bounce := numParam(params, "bounce_rate_pct", 0)
	spam := numParam(params, "spam_complaint_rate_pct", 0)
	unsubscribe := numParam(params, "unsubscribe_rate_pct", 0)
	openRate := numParam(params, "open_rate_pct", 0)
	ageMonths := intParam(params, "list_age_months", 12)

	score := 100.0
	var recommendations []string

	switch {
	case bounce > 2:
		score -= 25
		recommendations = append(recommendations, "Run list through email verification service (ZeroBounce, NeverBounce).")
	case bounce > 0.5:
		score -= 10
	}

	switch {
	case spam > 0.1:
		score -= 25
		recommendations = append(recommendations, "High spam complaints, suppress unengaged contacts and improve targeting.")
	case spam > 0.05:
		score -= 10
	}

	switch {
	case unsubscribe > 0.5:
		score -= 20
		recommendations = append(recommendations, "High unsubscribes, check send frequency and content relevance.")
	case unsubscribe > 0.2:
		score -= 8
	}

	switch {
	case openRate < 10:
		score -= 20
		recommendations = append(recommendations, "Very low engagement, segment and re-permission cold contacts.")
	case openRate < 15:
		score -= 8
	}

	if ageMonths > 24 {
		score -= 10
		recommendations = append(recommendations, "Old list, run re-engagement campaign and remove non-responders.")
	}

	score = math.Max(0, roundN(score, 1))

	rating := "At risk"
	if score >= 75 {
		rating = "Healthy"
	} else if score >= 50 {
		rating = "Fair"
	}

	if len(recommendations) == 0 {
		recommendations = []string{"List health is excellent. Maintain regular cleaning cadence."}
	}

	return map[string]any{
		"calc_type":         "list_health_score",
		"list_health_score": score,
		"list_size":         listSize,
		"health_rating":     rating,
		"recommendations":   recommendations,
	}
}

func (t *EmailCampaignManager) sequenceROI(params map[string]any) map[string]any {
	listSize := max(1, intParam(params, "list_size", 1))
	sequenceEmails := max(1, intParam(params, "sequence_emails", 5))
	costPerSend := numParam(params, "cost_per_email_send", 0.001)
	conversions := intParam(params, "sequence_conversions", 0)
	aov := numParam(params, "average_order_value", 0)

	totalSends := listSize * sequenceEmails
	totalCost := roundN(float64(totalSends)*costPerSend, 2)
	totalRevenue := roundN(float64(conversions)*aov, 2)
	roi := roundN((totalRevenue-totalCost)/math.Max(0.01, totalCost)*100, 1)
	rpe := roundN(totalRevenue/float64(max(1, totalSends)), 4)

	var rating string
	switch {
	case roi >= 500:
		rating = "Excellent"
	case roi >= 200:
		rating = "Good"
	case roi >= 50:
		rating = "Acceptable"
	default:
		rating = "Needs improvement"
	}

	return map[string]any{
		"calc_type":         "sequence_roi",
		"sequence_roi_pct":  roi,
		"total_revenue":     totalRevenue,
		"total_cost":        totalCost,
		"net_profit":        roundN(totalRevenue-totalCost, 2),
		"revenue_per_email": rpe,
		"total_sends":       totalSends,
		"conversions":       conversions,
		"rating":            rating,
	}
}
