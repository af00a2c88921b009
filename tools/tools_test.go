package tools

import (
	"errors"
	"testing"
)

func TestDefaultRegistry(t *testing.T) {
	r := Default()

	want := []string{
		"campaign_analytics_calc",
		"content_optimizer",
		"email_campaign_manager",
		"lead_scoring_calc",
		"market_segmentation",
		"roi_calculator",
		"seo_analyzer",
	}
	names := r.Names()
	if len(names) != len(want) {
		t.Fatalf("got %d tools, want %d: %v", len(names), len(want), names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}

	for _, tool := range r.All() {
		if tool.Description() == "" {
			t.Errorf("tool %s has no description", tool.Name())
		}
		if len(tool.CalcTypes()) == 0 {
			t.Errorf("tool %s declares no calc types", tool.Name())
		}
	}
}

func TestRegistryExecuteUnknownTool(t *testing.T) {
	r := Default()
	_, err := r.Execute("no_such_tool", nil)

	var terr *ToolError
	if !errors.As(err, &terr) {
		t.Fatalf("expected ToolError, got %T: %v", err, err)
	}
	if !errors.Is(err, ErrToolNotFound) {
		t.Errorf("error does not wrap ErrToolNotFound: %v", err)
	}
}

func TestRegistryExecuteUnknownCalcType(t *testing.T) {
	r := Default()
	_, err := r.Execute("lead_scoring_calc", map[string]any{"calc_type": "bogus"})
	if !errors.Is(err, ErrUnknownCalcType) {
		t.Fatalf("expected ErrUnknownCalcType, got %v", err)
	}
}

func TestILTScore(t *testing.T) {
	calc := &LeadScoringCalc{}
	data, err := calc.Run(map[string]any{
		"calc_type":          "ilt_score",
		"company_size":       float64(500),
		"title_seniority":    "VP",
		"engagement_signals": float64(10),
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got := data["ilt_score"].(float64); got != 84.7 {
		t.Errorf("ilt_score = %v, want 84.7", got)
	}
	if got := data["tier"].(string); got != "A — Hot" {
		t.Errorf("tier = %q", got)
	}
}

func TestBANTQualify(t *testing.T) {
	calc := &LeadScoringCalc{}
	data, err := calc.Run(map[string]any{
		"calc_type":       "bant_qualify",
		"budget_range":    "$50k-$200k",
		"title_seniority": "C-Suite",
		"pain_score":      float64(8),
		"timeline_months": float64(2),
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got := data["bant_total_score"].(float64); got != 83.8 {
		t.Errorf("bant_total_score = %v, want 83.8", got)
	}
	if !data["qualified"].(bool) {
		t.Error("expected qualified lead")
	}
}

func TestLeadVelocityRate(t *testing.T) {
	calc := &LeadScoringCalc{}
	data, err := calc.Run(map[string]any{
		"calc_type":               "lead_velocity_rate",
		"current_month_qualified": float64(120),
		"previous_month_qualified": float64(100),
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got := data["lvr_percent"].(float64); got != 20.0 {
		t.Errorf("lvr_percent = %v, want 20.0", got)
	}
	if got := data["trend"].(string); got != "Growing" {
		t.Errorf("trend = %q", got)
	}

	// Zero previous month pins LVR at 100%.
	data, _ = calc.Run(map[string]any{
		"calc_type":                "lead_velocity_rate",
		"current_month_qualified":  float64(50),
		"previous_month_qualified": float64(0),
	})
	if got := data["lvr_percent"].(float64); got != 100.0 {
		t.Errorf("lvr_percent with zero base = %v, want 100.0", got)
	}
}

func TestConversionProbabilityDefaults(t *testing.T) {
	calc := &LeadScoringCalc{}
	data, err := calc.Run(map[string]any{"calc_type": "conversion_probability"})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got := data["conversion_probability_pct"].(float64); got != 13.0 {
		t.Errorf("conversion_probability_pct = %v, want 13.0", got)
	}
	if got := data["risk_level"].(string); got != "High" {
		t.Errorf("risk_level = %q", got)
	}
}

func TestCAC(t *testing.T) {
	calc := &CampaignAnalyticsCalc{}
	data, err := calc.Run(map[string]any{
		"calc_type":          "cac",
		"ad_spend":           float64(50000),
		"new_customers":      float64(100),
		"sales_overhead_pct": float64(20),
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got := data["marketing_cac"].(float64); got != 500.0 {
		t.Errorf("marketing_cac = %v, want 500", got)
	}
	if got := data["fully_loaded_cac"].(float64); got != 600.0 {
		t.Errorf("fully_loaded_cac = %v, want 600", got)
	}
}

func TestROAS(t *testing.T) {
	calc := &CampaignAnalyticsCalc{}
	data, err := calc.Run(map[string]any{
		"calc_type":          "roas",
		"ad_spend":           float64(1000),
		"revenue_attributed": float64(4500),
		"gross_margin_pct":   float64(70),
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got := data["roas"].(float64); got != 4.5 {
		t.Errorf("roas = %v, want 4.5", got)
	}
	if got := data["margin_adjusted_roas"].(float64); got != 3.15 {
		t.Errorf("margin_adjusted_roas = %v, want 3.15", got)
	}
	if got := data["rating"].(string); got != "Excellent" {
		t.Errorf("rating = %q", got)
	}
	if got := data["breakeven_roas"].(float64); got != 1.43 {
		t.Errorf("breakeven_roas = %v, want 1.43", got)
	}
}

func TestPaybackPeriod(t *testing.T) {
	calc := &CampaignAnalyticsCalc{}
	data, err := calc.Run(map[string]any{
		"calc_type":                  "payback_period",
		"ad_spend":                   float64(10000),
		"new_customers":              float64(10),
		"average_order_value":        float64(500),
		"average_purchase_frequency": float64(12),
		"gross_margin_pct":           float64(70),
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got := data["payback_period_months"].(float64); got != 2.9 {
		t.Errorf("payback_period_months = %v, want 2.9", got)
	}
	if got := data["rating"].(string); got != "Excellent" {
		t.Errorf("rating = %q", got)
	}

	// Zero gross profit is an input error, not a result.
	_, err = calc.Run(map[string]any{
		"calc_type":           "payback_period",
		"ad_spend":            float64(10000),
		"average_order_value": float64(0),
	})
	if err == nil {
		t.Error("expected error with zero monthly gross profit")
	}
}

func TestNPSScore(t *testing.T) {
	calc := &CampaignAnalyticsCalc{}
	data, err := calc.Run(map[string]any{
		"calc_type":         "nps_score",
		"promoters":         float64(70),
		"detractors":        float64(10),
		"total_respondents": float64(100),
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got := data["nps_score"].(float64); got != 60.0 {
		t.Errorf("nps_score = %v, want 60", got)
	}
	if got := data["passives"].(int); got != 20 {
		t.Errorf("passives = %v, want 20", got)
	}
	if got := data["category"].(string); got != "Excellent (50-70)" {
		t.Errorf("category = %q", got)
	}
}

func TestKeywordDensity(t *testing.T) {
	calc := &ContentOptimizer{}
	data, err := calc.Run(map[string]any{
		"calc_type":     "keyword_density",
		"word_count":    float64(1000),
		"keyword_count": float64(15),
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got := data["keyword_density_pct"].(float64); got != 1.5 {
		t.Errorf("keyword_density_pct = %v, want 1.5", got)
	}
	if got := data["status"].(string); got != "Optimal (0.5-2%)" {
		t.Errorf("status = %q", got)
	}
}

func TestMetaScorePerfect(t *testing.T) {
	calc := &ContentOptimizer{}
	data, err := calc.Run(map[string]any{
		"calc_type":               "meta_score",
		"meta_title_length":       float64(55),
		"meta_description_length": float64(140),
		"meta_title_has_keyword":  true,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got := data["meta_score"].(int); got != 100 {
		t.Errorf("meta_score = %v, want 100", got)
	}
	if got := data["rating"].(string); got != "Excellent" {
		t.Errorf("rating = %q", got)
	}
}

func TestContentGap(t *testing.T) {
	calc := &ContentOptimizer{}
	data, err := calc.Run(map[string]any{
		"calc_type":        "content_gap_analysis",
		"target_keywords":  []any{"CAC", "ltv", "roas", "attribution"},
		"covered_keywords": []any{"cac", "LTV"},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got := data["coverage_pct"].(float64); got != 50.0 {
		t.Errorf("coverage_pct = %v, want 50", got)
	}
	gaps := data["gap_topics"].([]string)
	if len(gaps) != 2 || gaps[0] != "attribution" || gaps[1] != "roas" {
		t.Errorf("gap_topics = %v", gaps)
	}
}

func TestHeadlinePower(t *testing.T) {
	calc := &ContentOptimizer{}
	data, err := calc.Run(map[string]any{
		"calc_type":        "headline_power_score",
		"headline_text":    "7 Proven Ways to Double Your Pipeline",
		"power_word_count": float64(2),
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got := data["headline_power_score"].(int); got != 70 {
		t.Errorf("headline_power_score = %v, want 70", got)
	}
	if got := data["rating"].(string); got != "High impact" {
		t.Errorf("rating = %q", got)
	}
}

func TestRankProbability(t *testing.T) {
	calc := &SEOAnalyzer{}
	data, err := calc.Run(map[string]any{
		"calc_type":             "rank_probability",
		"current_da":            float64(30),
		"top_ranking_da_avg":    float64(60),
		"content_quality_score": float64(80),
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got := data["page1_rank_probability_pct"].(float64); got != 63.5 {
		t.Errorf("page1_rank_probability_pct = %v, want 63.5", got)
	}
}

func TestTrafficPotential(t *testing.T) {
	calc := &SEOAnalyzer{}
	data, err := calc.Run(map[string]any{
		"calc_type":     "traffic_potential",
		"search_volume": float64(10000),
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	byPos := data["traffic_by_ranking_position"].(map[int]int)
	if byPos[1] != 2850 {
		t.Errorf("position 1 traffic = %v, want 2850", byPos[1])
	}
	if byPos[10] != 250 {
		t.Errorf("position 10 traffic = %v, want 250", byPos[10])
	}
}

func TestDeliverabilityPerfect(t *testing.T) {
	calc := &EmailCampaignManager{}
	data, err := calc.Run(map[string]any{
		"calc_type":               "deliverability_score",
		"bounce_rate_pct":         float64(0.3),
		"spam_complaint_rate_pct": float64(0.05),
		"has_spf":                 true,
		"has_dkim":                true,
		"has_dmarc":               true,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got := data["deliverability_score"].(float64); got != 100.0 {
		t.Errorf("deliverability_score = %v, want 100", got)
	}
	if got := data["rating"].(string); got != "Excellent" {
		t.Errorf("rating = %q", got)
	}
}

func TestSequenceROI(t *testing.T) {
	calc := &EmailCampaignManager{}
	data, err := calc.Run(map[string]any{
		"calc_type":            "sequence_roi",
		"list_size":            float64(10000),
		"sequence_emails":      float64(5),
		"cost_per_email_send":  float64(0.001),
		"sequence_conversions": float64(100),
		"average_order_value":  float64(50),
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got := data["sequence_roi_pct"].(float64); got != 9900.0 {
		t.Errorf("sequence_roi_pct = %v, want 9900", got)
	}
	if got := data["revenue_per_email"].(float64); got != 0.1 {
		t.Errorf("revenue_per_email = %v, want 0.1", got)
	}
}

func TestMarketSizing(t *testing.T) {
	calc := &MarketSegmentation{}

	data, err := calc.Run(map[string]any{
		"calc_type":                 "tam_estimate",
		"total_companies_in_market": float64(5000),
		"average_deal_value":        float64(25000),
	})
	if err != nil {
		t.Fatalf("tam failed: %v", err)
	}
	if got := data["tam_dollars"].(float64); got != 125000000.0 {
		t.Errorf("tam_dollars = %v", got)
	}
	if got := data["tam_formatted"].(string); got != "$125.0M" {
		t.Errorf("tam_formatted = %q", got)
	}

	data, err = calc.Run(map[string]any{
		"calc_type":                 "som_estimate",
		"total_companies_in_market": float64(5000),
		"average_deal_value":        float64(25000),
		"serviceable_fraction_pct":  float64(40),
		"obtainable_fraction_pct":   float64(5),
	})
	if err != nil {
		t.Fatalf("som failed: %v", err)
	}
	if got := data["som_dollars"].(float64); got != 2500000.0 {
		t.Errorf("som_dollars = %v", got)
	}
	if got := data["target_customers"].(int); got != 100 {
		t.Errorf("target_customers = %v", got)
	}
}

func TestMarketingROI(t *testing.T) {
	calc := &ROICalculator{}
	data, err := calc.Run(map[string]any{
		"calc_type":          "marketing_roi",
		"investment":         float64(10000),
		"revenue_attributed": float64(50000),
		"gross_margin_pct":   float64(100),
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got := data["roi_pct"].(float64); got != 400.0 {
		t.Errorf("roi_pct = %v, want 400", got)
	}
	if got := data["rating"].(string); got != "Excellent" {
		t.Errorf("rating = %q", got)
	}
}

func TestMarketingMixROI(t *testing.T) {
	calc := &ROICalculator{}
	data, err := calc.Run(map[string]any{
		"calc_type":        "overall_marketing_mix_roi",
		"gross_margin_pct": float64(100),
		"channel_investments": []any{
			map[string]any{"channel": "paid_search", "investment": float64(100), "revenue": float64(500)},
			map[string]any{"channel": "events", "investment": float64(100), "revenue": float64(150)},
		},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got := data["blended_roi_pct"].(float64); got != 225.0 {
		t.Errorf("blended_roi_pct = %v, want 225", got)
	}
	if got := data["top_performing_channel"].(string); got != "paid_search" {
		t.Errorf("top channel = %q", got)
	}
	if got := data["worst_performing_channel"].(string); got != "events" {
		t.Errorf("worst channel = %q", got)
	}

	// Missing channel array is an input error.
	if _, err := calc.Run(map[string]any{"calc_type": "overall_marketing_mix_roi"}); err == nil {
		t.Error("expected error without channel_investments")
	}
}
