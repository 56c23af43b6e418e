package strength

import "strings"

// Analysis is the combined strength assessment of a single bullet point.
type Analysis struct {
	Score         int           `json:"score"`
	Label         StrengthLabel `json:"label"`
	Pattern       *Detection    `json:"pattern,omitempty"`
	Suggestions   []string      `json:"suggestions"`
	CanStrengthen bool          `json:"canStrengthen"`
}

// SuggestImprovements scores a bullet point, detects weak phrasing, and for
// low-scoring text adds up to three advisory messages.
func SuggestImprovements(text string) Analysis {
	score := GetStrengthScore(text)
	detection := DetectWeakPattern(text)

	suggestions := []string{}
	if score < 40 {
		lower := strings.ToLower(strings.TrimSpace(text))
		if !hasDigitRe.MatchString(lower) {
			suggestions = append(suggestions, "Add specific numbers (team size, counts, timeframes) to make the statement concrete.")
		}
		if !hasMoneyRe.MatchString(lower) {
			suggestions = append(suggestions, "Quantify your impact with a percentage or dollar amount.")
		}
		if !startsWithPowerVerb(lower) {
			suggestions = append(suggestions, "Start with a strong action verb like Led, Built, or Achieved.")
		}
	}

	return Analysis{
		Score:         score,
		Label:         GetStrengthLabel(score),
		Pattern:       detection,
		Suggestions:   suggestions,
		CanStrengthen: detection != nil,
	}
}
