package tools

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// ContentOptimizer analyses and scores content assets for SEO and
// conversion readability.
type ContentOptimizer struct{}

func (t *ContentOptimizer) Name() string { return "content_optimizer" }

func (t *ContentOptimizer) Description() string {
	return "Analyses content assets for readability, keyword density, SEO meta quality, " +
		"headline power score, and content gap coverage. Returns scores 0-100 with " +
		"specific improvement recommendations."
}

func (t *ContentOptimizer) CalcTypes() []string {
	return []string{"readability_score", "keyword_density", "content_gap_analysis", "meta_score", "headline_power_score"}
}

func (t *ContentOptimizer) Run(params map[string]any) (map[string]any, error) {
	switch calcType := strParam(params, "calc_type", ""); calcType {
	case "readability_score":
		return t.readability(params), nil
	case "keyword_density":
		return t.keywordDensity(params), nil
	case "content_gap_analysis":
		return t.contentGap(params), nil
	case "meta_score":
		return t.metaScore(params), nil
	case "headline_power_score":
		return t.headlinePower(params), nil
	default:
		return nil, unknownCalc(calcType, t.CalcTypes())
	}
}

var optimalWordCounts = map[string]string{
	"blog_post":    "1500-2500",
	"landing_page": "500-1500",
	"email":        "150-300",
	"social_post":  "50-150",
	"video_script": "750-1500",
	"whitepaper":   "3000-6000",
}

func (t *ContentOptimizer) readability(params map[string]any) map[string]any {
	wordCount := max(1, intParam(params, "word_count", 500))
	avgSentence := numParam(params, "avg_sentence_length", 18)
	avgSyllables := numParam(params, "avg_syllables_per_word", 1.5)

	// Flesch Reading Ease approximation
	fre := roundN(206.835-1.015*avgSentence-84.6*avgSyllables, 1)
	fre = clamp(fre, 0.0, 100.0)

	var gradeLevel string
	switch {
	case fre >= 70:
		gradeLevel = "Easy (6th-8th grade). Good for broad audience."
	case fre >= 50:
		gradeLevel = "Standard (9th-12th grade). Good for B2B tech content."
	case fre >= 30:
		gradeLevel = "Difficult (College level). Consider simplifying."
	default:
		gradeLevel = "Very Difficult. Rewrite for clarity."
	}

	contentType := strParam(params, "content_type", "blog_post")
	optimal, ok := optimalWordCounts[contentType]
	if !ok {
		optimal = "varies"
	}

	sentenceTip := "Sentence length is good."
	if avgSentence > 22 {
		sentenceTip = "Shorten sentences to <20 words average."
	}
	vocabTip := "Vocabulary complexity is appropriate."
	if avgSyllables > 1.6 {
		vocabTip = "Simplify vocabulary, aim for <1.4 avg syllables/word."
	}

	return map[string]any{
		"calc_type":                   "readability_score",
		"flesch_reading_ease":         fre,
		"grade_level":                 gradeLevel,
		"word_count":                  wordCount,
		"optimal_word_count_for_type": optimal,
		"recommendations":             []string{sentenceTip, vocabTip},
	}
}

func (t *ContentOptimizer) keywordDensity(params map[string]any) map[string]any {
	words := max(1, intParam(params, "word_count", 500))
	occurrences := intParam(params, "keyword_count", 0)
	density := roundN(float64(occurrences)/float64(words)*100, 2)

	var status, tip string
	switch {
	case density < 0.5:
		status, tip = "Under-optimised", "Add keyword naturally 2-3 more times."
	case density <= 2.0:
		status, tip = "Optimal (0.5-2%)", "Good keyword density, maintain balance."
	case density <= 3.0:
		status, tip = "Slightly over-optimised", "Consider replacing 1-2 instances with synonyms."
	default:
		status, tip = "Keyword stuffing risk", "Reduce occurrences, risk of Google penalty."
	}

	return map[string]any{
		"calc_type":           "keyword_density",
		"keyword_density_pct": density,
		"occurrences":         occurrences,
		"word_count":          words,
		"status":              status,
		"recommendation":      tip,
		"optimal_range":       "0.5-2.0%",
	}
}

func (t *ContentOptimizer) contentGap(params map[string]any) map[string]any {
	target := stringsParam(params, "target_keywords")
	covered := stringsParam(params, "covered_keywords")

	targetSet := make(map[string]struct{}, len(target))
	for _, k := range target {
		targetSet[strings.ToLower(k)] = struct{}{}
	}
	coveredSet := make(map[string]struct{}, len(covered))
	for _, k := range covered {
		coveredSet[strings.ToLower(k)] = struct{}{}
	}

	var gaps []string
	coveredCount := 0
	for k := range targetSet {
		if _, ok := coveredSet[k]; ok {
			coveredCount++
		} else {
			gaps = append(gaps, k)
		}
	}
	sort.Strings(gaps)

	coveragePct := roundN(float64(coveredCount)/float64(max(1, len(targetSet)))*100, 1)

	rating := "Significant gaps"
	if coveragePct >= 80 {
		rating = "Comprehensive"
	} else if coveragePct >= 60 {
		rating = "Adequate"
	}

	action := "All target topics are covered."
	if len(gaps) > 0 {
		shown := gaps
		ellipsis := ""
		if len(gaps) > 5 {
			shown = gaps[:5]
			ellipsis = "..."
		}
		action = fmt.Sprintf("Add sections covering: %s%s.", strings.Join(shown, ", "), ellipsis)
	}

	return map[string]any{
		"calc_type":           "content_gap_analysis",
		"coverage_pct":        coveragePct,
		"total_target_topics": len(targetSet),
		"covered_topics":      coveredCount,
		"gap_topics":          gaps,
		"score_rating":        rating,
		"action":              action,
	}
}

func (t *ContentOptimizer) metaScore(params map[string]any) map[string]any {
	titleLen := intParam(params, "meta_title_length", 0)
	descLen := intParam(params, "meta_description_length", 0)
	hasKeyword := boolParam(params, "meta_title_has_keyword", false)

	score := 0
	var issues []string

	// Title: 50-60 chars is optimal
	switch {
	case titleLen >= 50 && titleLen <= 60:
		score += 40
	case titleLen >= 40 && titleLen <= 70:
		score += 25
		issues = append(issues, fmt.Sprintf("Title length %d chars, optimal is 50-60.", titleLen))
	default:
		score += 10
		issues = append(issues, fmt.Sprintf("Title length %d chars is outside optimal range (50-60).", titleLen))
	}

	// Description: 120-155 chars
	switch {
	case descLen >= 120 && descLen <= 155:
		score += 35
	case descLen >= 100 && descLen <= 170:
		score += 20
		issues = append(issues, fmt.Sprintf("Description %d chars, optimal is 120-155.", descLen))
	default:
		score += 5
		issues = append(issues, fmt.Sprintf("Description %d chars is outside optimal range.", descLen))
	}

	if hasKeyword {
		score += 25
	} else {
		issues = append(issues, "Primary keyword missing from meta title, add it near the front.")
	}

	rating := "Needs improvement"
	if score >= 85 {
		rating = "Excellent"
	} else if score >= 65 {
		rating = "Good"
	}

	if len(issues) == 0 {
		issues = []string{"All meta fields are well-optimised."}
	}

	return map[string]any{
		"calc_type":          "meta_score",
		"meta_score":         score,
		"rating":             rating,
		"issues":             issues,
		"title_length":       titleLen,
		"description_length": descLen,
		"keyword_in_title":   hasKeyword,
	}
}

func (t *ContentOptimizer) headlinePower(params map[string]any) map[string]any {
	headline := strParam(params, "headline_text", "")
	wordCount := len(strings.Fields(headline))
	powerWords := intParam(params, "power_word_count", 0)

	lengthScore := 10
	if wordCount >= 6 && wordCount <= 12 {
		lengthScore = 30
	} else if wordCount <= 16 {
		lengthScore = 20
	}

	powerScore := min(35, powerWords*10)

	hasNumber := strings.ContainsFunc(headline, unicode.IsDigit)
	numberScore := 5
	if hasNumber {
		numberScore = 20
	}

	triggerScore := 0
	if strings.HasSuffix(strings.TrimSpace(headline), "?") || strings.Contains(strings.ToLower(headline), "how") {
		triggerScore = 15
	}

	total := min(100, lengthScore+powerScore+numberScore+triggerScore)

	rating := "Weak"
	if total >= 70 {
		rating = "High impact"
	} else if total >= 45 {
		rating = "Average"
	}

	numberTip := "Good, headline contains a specific number."
	if !hasNumber {
		numberTip = "Add a specific number (e.g. '7 Ways...' or '$50K in 90 days')."
	}
	powerTip := "Good power word usage."
	if powerWords < 2 {
		powerTip = "Include power/emotional words: 'proven', 'secret', 'ultimate', 'guaranteed'."
	}
	lengthTip := "Headline length is optimal."
	if wordCount < 6 || wordCount > 12 {
		lengthTip = "Aim for 6-12 word headlines for maximum click-through."
	}

	return map[string]any{
		"calc_type":            "headline_power_score",
		"headline_power_score": total,
		"headline":             headline,
		"word_count":           wordCount,
		"power_words_detected": powerWords,
		"rating":               rating,
		"tips":                 []string{numberTip, powerTip, lengthTip},
	}
}
