package strength

import (
	"regexp"
	"strings"
)

// Point values for each independent strength signal. Checks are additive
// and the score is clamped to [0, 100] only at the very end.
const (
	pointsPerMetric  = 20
	maxMetricPoints  = 40
	pointsPowerVerb  = 15
	pointsOutcome    = 15
	pointsScope      = 10
	pointsTechnology = 5
	pointsTimeMetric = 5
	penaltyWeak      = 20
	penaltyVague     = 10
)

var (
	// Percentages, dollar amounts with K/M/B suffix, multipliers, bare ints.
	metricRe = regexp.MustCompile(`\d+(?:\.\d+)?%|\$\d+(?:\.\d+)?[kmb]?|\b\d+(?:\.\d+)?x\b|\b\d+\b`)

	technologyRe = regexp.MustCompile(`\b(?:api|aws|cloud|database|system|platform|infrastructure|pipeline|framework)\b`)

	timeMetricRe = regexp.MustCompile(`\b\d+\s*(?:hours?|days?|weeks?|months?|minutes?)\b`)

	hasDigitRe = regexp.MustCompile(`\d`)
	hasMoneyRe = regexp.MustCompile(`\d+(?:\.\d+)?%|\$\d+`)
)

var outcomePhrases = []string{
	"resulting in", "leading to", "achieving", "enabling", "driving",
	"generating", "delivering", "producing", "yielding", "contributing to",
}

var scopeWords = []string{
	"team", "company", "organization", "global", "enterprise", "users",
	"customers", "clients", "departments", "regions", "annually", "monthly",
	"daily", "worldwide", "across",
}

var weakPhrases = []string{
	"responsible for", "helped", "assisted", "worked on", "involved in",
	"participated in", "contributed to", "supported", "handled", "dealt with",
	"various", "multiple", "different", "many",
}

var vagueWords = []string{
	"things", "stuff", "etc", "various tasks", "other duties",
}

// GetStrengthScore rates a bullet point 0-100 from independent heuristic
// signals: quantified metrics, power-verb openings, outcome language,
// scope, technology and time references, minus weak and vague phrasing.
func GetStrengthScore(text string) int {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0
	}

	lower := strings.ToLower(trimmed)
	score := 0

	if metrics := metricRe.FindAllString(lower, -1); len(metrics) > 0 {
		points := len(metrics) * pointsPerMetric
		if points > maxMetricPoints {
			points = maxMetricPoints
		}
		score += points
	}

	if startsWithPowerVerb(lower) {
		score += pointsPowerVerb
	}

	if containsAny(lower, outcomePhrases) {
		score += pointsOutcome
	}

	if containsAny(lower, scopeWords) {
		score += pointsScope
	}

	if technologyRe.MatchString(lower) {
		score += pointsTechnology
	}

	if timeMetricRe.MatchString(lower) {
		score += pointsTimeMetric
	}

	if containsAny(lower, weakPhrases) {
		score -= penaltyWeak
	}

	if containsAny(lower, vagueWords) {
		score -= penaltyVague
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// startsWithPowerVerb reports whether the lowercased text opens with a
// power verb as a whole word. Only the leading run of letters is compared,
// so punctuation directly after the verb ("led, mentored, ...") still
// counts, while longer words that merely start with a verb ("ledger") do
// not.
func startsWithPowerVerb(lower string) bool {
	end := 0
	for end < len(lower) && lower[end] >= 'a' && lower[end] <= 'z' {
		end++
	}
	if end == 0 {
		return false
	}
	_, ok := powerVerbSet[lower[:end]]
	return ok
}

func containsAny(text string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(text, needle) {
			return true
		}
	}
	return false
}

// StrengthLabel buckets a score into a display tier.
type StrengthLabel struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// GetStrengthLabel returns the display tier for a strength score.
func GetStrengthLabel(score int) StrengthLabel {
	switch {
	case score >= 80:
		return StrengthLabel{Label: "Excellent", Color: "#22c55e"}
	case score >= 60:
		return StrengthLabel{Label: "Strong", Color: "#84cc16"}
	case score >= 40:
		return StrengthLabel{Label: "Fair", Color: "#eab308"}
	case score >= 20:
		return StrengthLabel{Label: "Weak", Color: "#f97316"}
	default:
		return StrengthLabel{Label: "Needs Work", Color: "#ef4444"}
	}
}
