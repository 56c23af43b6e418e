package strength

import "strings"

// Detection identifies the weak pattern found in a bullet point.
type Detection struct {
	PatternID   string       `json:"patternId"`
	Pattern     *WeakPattern `json:"pattern"`
	MatchedText string       `json:"matchedText"`
}

// DetectWeakPattern scans a bullet point against the pattern library and
// returns the first pattern whose first matcher hits, or nil when the text
// is empty, shorter than 5 characters after trimming, or clean.
func DetectWeakPattern(text string) *Detection {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < 5 {
		return nil
	}

	lower := strings.ToLower(trimmed)
	for i := range WeakPatterns {
		pattern := &WeakPatterns[i]
		for _, matcher := range pattern.Matchers {
			if match := matcher.FindString(lower); match != "" {
				return &Detection{
					PatternID:   pattern.ID,
					Pattern:     pattern,
					MatchedText: match,
				}
			}
		}
	}

	return nil
}
