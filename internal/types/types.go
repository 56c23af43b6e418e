package types

import (
	"resumelens/internal/ats"
	"resumelens/internal/strength"
)

// MatchResumeInput represents the input for matching a resume against a job description.
// Either ResumeText or Resume must be provided; Resume takes precedence when both are set.
type MatchResumeInput struct {
	JobDescription string      `json:"jobDescription"`
	ResumeText     string      `json:"resumeText,omitempty"`
	Resume         *ats.Resume `json:"resume,omitempty"`
}

// MatchResumeOutput represents the output from matching a resume
type MatchResumeOutput struct {
	Score          int              `json:"score"`
	Label          string           `json:"label"`
	Color          string           `json:"color"`
	Matched        ats.KeywordLists `json:"matched"`
	Missing        ats.KeywordLists `json:"missing"`
	Suggestions    []ats.Suggestion `json:"suggestions"`
	JobKeywords    ats.KeywordSet   `json:"jobKeywords"`
	ResumeKeywords ats.KeywordSet   `json:"resumeKeywords"`
}

// AnalyzeBulletInput represents the input for analyzing a bullet point
type AnalyzeBulletInput struct {
	Text string `json:"text"`
}

// AnalyzeBulletOutput represents the output from analyzing a bullet point
type AnalyzeBulletOutput struct {
	Score         int                    `json:"score"`
	Label         strength.StrengthLabel `json:"label"`
	Pattern       *strength.Detection    `json:"pattern,omitempty"`
	Suggestions   []string               `json:"suggestions"`
	CanStrengthen bool                   `json:"canStrengthen"`
}

// BuildStatementInput represents the input for building a strengthened statement
type BuildStatementInput struct {
	PatternID string            `json:"patternId"`
	Values    map[string]string `json:"values"`
}

// BuildStatementOutput represents the output from building a statement
type BuildStatementOutput struct {
	PatternID string `json:"patternId"`
	Statement string `json:"statement"`
	// Complete is false when the statement still contains bracketed
	// placeholders for unfilled fields.
	Complete bool `json:"complete"`
}

// PatternSummary describes one weak pattern for listing endpoints
type PatternSummary struct {
	ID       string             `json:"id"`
	Name     string             `json:"name"`
	Template strength.Template  `json:"template"`
	Examples []strength.Example `json:"examples"`
}

// ListPatternsOutput represents the full pattern library listing
type ListPatternsOutput struct {
	Patterns []PatternSummary `json:"patterns"`
}
