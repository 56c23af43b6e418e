package ats

import (
	"regexp"
	"strings"
)

// KeywordSet holds the categorized keywords extracted from a single text.
// Each slice is deduplicated and preserves first-encounter order; a term
// classified as technical never also appears in Phrases or General.
type KeywordSet struct {
	Technical []string `json:"technical"`
	Phrases   []string `json:"phrases"`
	General   []string `json:"general"`
}

var (
	// Everything that is not a word character, whitespace, hyphen, plus,
	// hash, or period becomes a space before tokenization.
	normalizeRe = regexp.MustCompile(`[^\w\s\-+#.]`)

	// 2-3 word runs of lowercase letters.
	phraseRe = regexp.MustCompile(`\b[a-z]+(?:\s+[a-z]+){1,2}\b`)

	// Leading/trailing non-letter characters stripped from general tokens.
	leadingNonLetterRe  = regexp.MustCompile(`^[^a-z]+`)
	trailingNonLetterRe = regexp.MustCompile(`[^a-z]+$`)
)

// ExtractKeywords tokenizes free text into a categorized KeywordSet.
// Empty input yields three empty sets, never an error.
func ExtractKeywords(text string) KeywordSet {
	set := KeywordSet{
		Technical: []string{},
		Phrases:   []string{},
		General:   []string{},
	}
	if strings.TrimSpace(text) == "" {
		return set
	}

	normalized := normalizeRe.ReplaceAllString(strings.ToLower(text), " ")

	technicalSeen := make(map[string]struct{})
	for _, m := range skillMatchers {
		if m.re.MatchString(normalized) {
			if _, ok := technicalSeen[m.skill]; !ok {
				technicalSeen[m.skill] = struct{}{}
				set.Technical = append(set.Technical, m.skill)
			}
		}
	}

	generalSeen := make(map[string]struct{})
	for _, token := range strings.Fields(normalized) {
		cleaned := leadingNonLetterRe.ReplaceAllString(token, "")
		cleaned = trailingNonLetterRe.ReplaceAllString(cleaned, "")
		if len(cleaned) < 4 || isStopWord(cleaned) {
			continue
		}
		if _, ok := technicalSeen[cleaned]; ok {
			continue
		}
		if _, ok := generalSeen[cleaned]; ok {
			continue
		}
		generalSeen[cleaned] = struct{}{}
		set.General = append(set.General, cleaned)
	}

	phraseSeen := make(map[string]struct{})
	for _, raw := range phraseRe.FindAllString(normalized, -1) {
		phrase := strings.Join(strings.Fields(raw), " ")
		if _, ok := phraseSeen[phrase]; ok {
			continue
		}
		if !isMeaningfulPhrase(phrase) || overlapsTechnical(phrase, set.Technical) {
			continue
		}
		phraseSeen[phrase] = struct{}{}
		set.Phrases = append(set.Phrases, phrase)
	}

	return set
}

// isMeaningfulPhrase keeps phrases where at least 2 constituent words are
// non-stop-words of length >= 3.
func isMeaningfulPhrase(phrase string) bool {
	meaningful := 0
	for _, word := range strings.Fields(phrase) {
		if len(word) >= 3 && !isStopWord(word) {
			meaningful++
		}
	}
	return meaningful >= 2
}

// overlapsTechnical reports whether the phrase equals or is a substring
// (in either direction) of an already-extracted technical term.
func overlapsTechnical(phrase string, technical []string) bool {
	for _, term := range technical {
		if strings.Contains(term, phrase) || strings.Contains(phrase, term) {
			return true
		}
	}
	return false
}
