package ats

import (
	"math"
	"sort"
	"strings"
)

// Weights applied when comparing job keywords against resume keywords.
// Tunable here, deliberately not exposed through configuration.
const (
	technicalWeight = 3
	phraseWeight    = 2
	generalWeight   = 1

	maxScoredPhrases = 15
	maxScoredGeneral = 20
)

// SuggestionType classifies how urgent a suggestion is.
type SuggestionType string

const (
	SuggestionCritical  SuggestionType = "critical"
	SuggestionImportant SuggestionType = "important"
	SuggestionOptional  SuggestionType = "optional"
	SuggestionWarning   SuggestionType = "warning"
	SuggestionSuccess   SuggestionType = "success"
)

// Suggestion is a prioritized improvement hint derived from missing keywords.
type Suggestion struct {
	Type     SuggestionType `json:"type"`
	Title    string         `json:"title"`
	Message  string         `json:"message"`
	Keywords []string       `json:"keywords"`
}

// KeywordLists groups matched or missing keywords by category.
type KeywordLists struct {
	Technical []string `json:"technical"`
	Phrases   []string `json:"phrases"`
	General   []string `json:"general"`
}

// ScoreResult is the outcome of comparing job keywords against resume keywords.
type ScoreResult struct {
	Score       int          `json:"score"`
	Matched     KeywordLists `json:"matched"`
	Missing     KeywordLists `json:"missing"`
	Suggestions []Suggestion `json:"suggestions"`
}

// CalculateScore compares a job description's keywords against a resume's
// keywords and produces a weighted 0-100 match score with categorized
// matched/missing lists and suggestions.
func CalculateScore(job, resume KeywordSet) ScoreResult {
	result := ScoreResult{
		Matched: KeywordLists{Technical: []string{}, Phrases: []string{}, General: []string{}},
		Missing: KeywordLists{Technical: []string{}, Phrases: []string{}, General: []string{}},
	}

	resumeTechnical := lowerSet(resume.Technical)
	resumeGeneral := lowerSet(resume.General)

	totalWeight := 0
	matchedWeight := 0

	for _, keyword := range job.Technical {
		totalWeight += technicalWeight
		if resumeHasTechnical(keyword, resumeTechnical, resumeGeneral) {
			matchedWeight += technicalWeight
			result.Matched.Technical = append(result.Matched.Technical, keyword)
		} else {
			result.Missing.Technical = append(result.Missing.Technical, keyword)
		}
	}

	// Longest phrases first; ties keep encounter order (stable sort).
	phrases := make([]string, len(job.Phrases))
	copy(phrases, job.Phrases)
	sort.SliceStable(phrases, func(i, j int) bool {
		return len(phrases[i]) > len(phrases[j])
	})
	if len(phrases) > maxScoredPhrases {
		phrases = phrases[:maxScoredPhrases]
	}
	for _, phrase := range phrases {
		totalWeight += phraseWeight
		if resumeHasPhrase(phrase, resume.Phrases) {
			matchedWeight += phraseWeight
			result.Matched.Phrases = append(result.Matched.Phrases, phrase)
		} else {
			result.Missing.Phrases = append(result.Missing.Phrases, phrase)
		}
	}

	general := job.General
	if len(general) > maxScoredGeneral {
		general = general[:maxScoredGeneral]
	}
	for _, keyword := range general {
		totalWeight += generalWeight
		if _, ok := resumeGeneral[strings.ToLower(keyword)]; ok {
			matchedWeight += generalWeight
			result.Matched.General = append(result.Matched.General, keyword)
		} else {
			result.Missing.General = append(result.Missing.General, keyword)
		}
	}

	// Explicit zero branch, never a NaN from 0/0.
	if totalWeight > 0 {
		result.Score = int(math.Round(100 * float64(matchedWeight) / float64(totalWeight)))
	}

	result.Suggestions = buildSuggestions(result.Missing, result.Score)
	return result
}

func lowerSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[strings.ToLower(v)] = struct{}{}
	}
	return set
}

// resumeHasTechnical matches a job technical keyword against the resume's
// technical or general sets; the latter covers dictionary-vs-extraction drift.
func resumeHasTechnical(keyword string, technical, general map[string]struct{}) bool {
	lower := strings.ToLower(keyword)
	if _, ok := technical[lower]; ok {
		return true
	}
	_, ok := general[lower]
	return ok
}

// resumeHasPhrase matches by containment in either direction, not equality.
func resumeHasPhrase(phrase string, resumePhrases []string) bool {
	lower := strings.ToLower(phrase)
	for _, candidate := range resumePhrases {
		candidateLower := strings.ToLower(candidate)
		if strings.Contains(candidateLower, lower) || strings.Contains(lower, candidateLower) {
			return true
		}
	}
	return false
}

// buildSuggestions derives suggestions from missing keywords and the score.
// Order is fixed: critical, important, optional, then the score-based entry.
func buildSuggestions(missing KeywordLists, score int) []Suggestion {
	suggestions := []Suggestion{}

	if len(missing.Technical) > 0 {
		suggestions = append(suggestions, Suggestion{
			Type:     SuggestionCritical,
			Title:    "Add Missing Technical Skills",
			Message:  "The job posting mentions technical skills that don't appear in your resume. Add the ones you actually have.",
			Keywords: firstN(missing.Technical, 5),
		})
	}

	if len(missing.Phrases) > 0 {
		suggestions = append(suggestions, Suggestion{
			Type:     SuggestionImportant,
			Title:    "Include Key Phrases",
			Message:  "These phrases from the job posting could strengthen your resume when used naturally.",
			Keywords: firstN(missing.Phrases, 3),
		})
	}

	if len(missing.General) > 5 {
		suggestions = append(suggestions, Suggestion{
			Type:     SuggestionOptional,
			Title:    "Consider Additional Keywords",
			Message:  "Weaving in some of these terms may improve how applicant tracking systems rank your resume.",
			Keywords: firstN(missing.General, 5),
		})
	}

	if score < 40 {
		suggestions = append(suggestions, Suggestion{
			Type:     SuggestionWarning,
			Title:    "Low Match Score",
			Message:  "Your resume matches less than 40% of this job posting. Consider tailoring it specifically to this role.",
			Keywords: []string{},
		})
	} else if score >= 70 {
		suggestions = append(suggestions, Suggestion{
			Type:     SuggestionSuccess,
			Title:    "Great Match",
			Message:  "Your resume aligns well with this job posting. Review the remaining missing keywords for fine-tuning.",
			Keywords: []string{},
		})
	}

	return suggestions
}

func firstN(values []string, n int) []string {
	if len(values) <= n {
		return values
	}
	return values[:n]
}

// ScoreColor returns the display color for a match score.
func ScoreColor(score int) string {
	switch {
	case score >= 70:
		return "#22c55e"
	case score >= 50:
		return "#eab308"
	case score >= 30:
		return "#f97316"
	default:
		return "#ef4444"
	}
}

// ScoreLabel returns the display label for a match score.
func ScoreLabel(score int) string {
	switch {
	case score >= 80:
		return "Excellent Match"
	case score >= 70:
		return "Good Match"
	case score >= 50:
		return "Fair Match"
	case score >= 30:
		return "Needs Improvement"
	default:
		return "Low Match"
	}
}
