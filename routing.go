package nanobot

import "strings"

// DefaultTeam is used when no routing rule matches a goal.
const DefaultTeam = "lead-generation-engine"

// routingRule maps a set of trigger keywords to a team. Rules are ordered;
// the first rule with any keyword present in the goal wins.
type routingRule struct {
	keywords []string
	team     string
}

var routingRules = []routingRule{
	{[]string{"lead", "prospect", "icp", "mql", "sql", "qualification", "bant", "meddic",
		"outbound", "prospecting", "pipeline", "sdr", "cadence", "cold outreach"}, "lead-generation-engine"},
	{[]string{"content", "blog", "seo", "copy", "copywriting", "article", "keyword",
		"organic", "backlink", "editorial", "landing page", "whitepaper"}, "content-marketing-team"},
	{[]string{"email", "sequence", "drip", "newsletter", "open rate", "deliverability",
		"subject line", "unsubscribe", "bounce", "esp", "nurture email"}, "email-campaign-manager"},
	{[]string{"social", "instagram", "linkedin post", "twitter", "tiktok", "youtube",
		"social media", "content calendar", "engagement", "influencer", "reel"}, "social-media-strategist"},
	{[]string{"analytics", "metrics", "roas", "cac", "ltv", "attribution", "funnel",
		"conversion rate", "churn", "mrr", "arr", "reporting", "dashboard"}, "campaign-analytics-hub"},
	{[]string{"competitor", "competitive", "battle", "battlecard", "positioning", "market",
		"win loss", "feature matrix", "differentiation", "pricing compare"}, "competitive-intelligence"},
	{[]string{"sales", "pipeline", "enablement", "objection", "close", "deal", "rep",
		"quota", "forecast", "coaching", "collateral", "pitch deck"}, "sales-enablement-team"},
	{[]string{"abm", "account based", "enterprise", "target account", "named account",
		"tier 1", "personali", "1:1 marketing"}, "abm-orchestrator"},
	{[]string{"brand", "messaging", "tone of voice", "voice and tone", "value proposition",
		"positioning statement", "category claim", "brand audit"}, "brand-voice-guardian"},
	{[]string{"growth", "viral", "referral", "experiment", "a/b test", "hack", "growth loop",
		"k-factor", "activation", "retention", "product led"}, "growth-hacker-lab"},
}

// DetectTeam returns the best-matching team name for a goal. Matching is
// case-insensitive substring search in rule order, so earlier rules take
// precedence when a goal mentions several domains.
func DetectTeam(goal string) string {
	lower := strings.ToLower(goal)
	for _, rule := range routingRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.team
			}
		}
	}
	return DefaultTeam
}
