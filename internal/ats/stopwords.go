package ats

// stopWords are common English function words and job-posting filler terms
// excluded from general keyword and phrase extraction.
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"been": {}, "being": {}, "but": {}, "by": {}, "can": {}, "could": {},
	"did": {}, "do": {}, "does": {}, "doing": {}, "down": {}, "during": {},
	"each": {}, "few": {}, "for": {}, "from": {}, "further": {}, "had": {},
	"has": {}, "have": {}, "having": {}, "he": {}, "her": {}, "here": {},
	"hers": {}, "him": {}, "his": {}, "how": {}, "i": {}, "if": {}, "in": {},
	"into": {}, "is": {}, "it": {}, "its": {}, "just": {}, "me": {},
	"more": {}, "most": {}, "my": {}, "no": {}, "nor": {}, "not": {},
	"now": {}, "of": {}, "off": {}, "on": {}, "once": {}, "only": {},
	"or": {}, "other": {}, "our": {}, "ours": {}, "out": {}, "over": {},
	"own": {}, "same": {}, "she": {}, "should": {}, "so": {}, "some": {},
	"such": {}, "than": {}, "that": {}, "the": {}, "their": {}, "theirs": {},
	"them": {}, "then": {}, "there": {}, "these": {}, "they": {}, "this": {},
	"those": {}, "through": {}, "to": {}, "too": {}, "under": {}, "until": {},
	"up": {}, "very": {}, "was": {}, "we": {}, "were": {}, "what": {},
	"when": {}, "where": {}, "which": {}, "while": {}, "who": {}, "whom": {},
	"why": {}, "will": {}, "with": {}, "would": {}, "you": {}, "your": {},
	"yours": {}, "about": {}, "above": {}, "after": {}, "again": {},
	"against": {}, "all": {}, "am": {}, "any": {}, "because": {},
	"before": {}, "below": {}, "between": {}, "both": {}, "it's": {},

	// Job-posting filler
	"ability": {}, "able": {}, "across": {}, "also": {}, "among": {},
	"applicant": {}, "applicants": {}, "apply": {}, "candidate": {},
	"candidates": {}, "company": {}, "currently": {}, "desired": {},
	"description": {}, "employee": {}, "employees": {}, "etc": {},
	"experience": {}, "experienced": {}, "including": {}, "job": {},
	"like": {}, "looking": {}, "make": {}, "must": {}, "need": {},
	"needs": {}, "new": {}, "opportunity": {}, "people": {}, "plus": {},
	"position": {}, "preferred": {}, "related": {}, "require": {},
	"required": {}, "requirements": {}, "role": {}, "seek": {},
	"seeking": {}, "skill": {}, "skills": {}, "strong": {}, "team": {},
	"time": {}, "using": {}, "want": {}, "well": {}, "within": {},
	"work": {}, "working": {}, "years": {},
}

// isStopWord reports whether the lowercase token is a stop word.
func isStopWord(token string) bool {
	_, ok := stopWords[token]
	return ok
}
