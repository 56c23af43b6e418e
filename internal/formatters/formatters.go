package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"resumelens/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	// Register default formatters
	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "MatchResumeOutput", &MatchTextFormatter{})
	registry.RegisterFormatter("markdown", "MatchResumeOutput", &MatchMarkdownFormatter{})
	registry.RegisterFormatter("text", "AnalyzeBulletOutput", &BulletTextFormatter{})
	registry.RegisterFormatter("markdown", "AnalyzeBulletOutput", &BulletMarkdownFormatter{})
	registry.RegisterFormatter("text", "BuildStatementOutput", &StatementTextFormatter{})
	registry.RegisterFormatter("markdown", "BuildStatementOutput", &StatementMarkdownFormatter{})
	registry.RegisterFormatter("text", "ListPatternsOutput", &PatternsTextFormatter{})
	registry.RegisterFormatter("markdown", "ListPatternsOutput", &PatternsMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.MatchResumeOutput:
		return "MatchResumeOutput"
	case types.AnalyzeBulletOutput:
		return "AnalyzeBulletOutput"
	case types.BuildStatementOutput:
		return "BuildStatementOutput"
	case types.ListPatternsOutput:
		return "ListPatternsOutput"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// MatchTextFormatter handles text formatting for match results
type MatchTextFormatter struct{}

func (mtf *MatchTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.MatchResumeOutput)
	if !ok {
		return "", fmt.Errorf("expected MatchResumeOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== ATS MATCH REPORT ===\n\n")
	output.WriteString(fmt.Sprintf("Score: %d/100 (%s)\n\n", result.Score, result.Label))

	writeKeywordSection(&output, "MATCHED KEYWORDS", result.Matched.Technical, result.Matched.Phrases, result.Matched.General)
	writeKeywordSection(&output, "MISSING KEYWORDS", result.Missing.Technical, result.Missing.Phrases, result.Missing.General)

	if len(result.Suggestions) > 0 {
		output.WriteString("=== SUGGESTIONS ===\n\n")
		for i, suggestion := range result.Suggestions {
			output.WriteString(fmt.Sprintf("%d. [%s] %s\n", i+1, strings.ToUpper(string(suggestion.Type)), suggestion.Title))
			output.WriteString("   ")
			output.WriteString(suggestion.Message)
			output.WriteString("\n")
			if len(suggestion.Keywords) > 0 {
				output.WriteString(fmt.Sprintf("   Keywords: %s\n", strings.Join(suggestion.Keywords, ", ")))
			}
			output.WriteString("\n")
		}
	}

	return output.String(), nil
}

func (mtf *MatchTextFormatter) SupportedType() string {
	return "MatchResumeOutput"
}

func writeKeywordSection(output *strings.Builder, title string, technical, phrases, general []string) {
	output.WriteString(fmt.Sprintf("=== %s ===\n", title))
	writeKeywordLine(output, "Technical", technical)
	writeKeywordLine(output, "Phrases", phrases)
	writeKeywordLine(output, "General", general)
	output.WriteString("\n")
}

func writeKeywordLine(output *strings.Builder, label string, keywords []string) {
	if len(keywords) == 0 {
		output.WriteString(fmt.Sprintf("%s: (none)\n", label))
		return
	}
	output.WriteString(fmt.Sprintf("%s: %s\n", label, strings.Join(keywords, ", ")))
}

// MatchMarkdownFormatter handles markdown formatting for match results
type MatchMarkdownFormatter struct{}

func (mmf *MatchMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.MatchResumeOutput)
	if !ok {
		return "", fmt.Errorf("expected MatchResumeOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# ATS Match Report\n\n")
	output.WriteString(fmt.Sprintf("**Score:** %d/100 — %s\n\n", result.Score, result.Label))

	output.WriteString("## Matched Keywords\n\n")
	writeMarkdownKeywords(&output, result.Matched.Technical, result.Matched.Phrases, result.Matched.General)

	output.WriteString("## Missing Keywords\n\n")
	writeMarkdownKeywords(&output, result.Missing.Technical, result.Missing.Phrases, result.Missing.General)

	if len(result.Suggestions) > 0 {
		output.WriteString("## Suggestions\n\n")
		for _, suggestion := range result.Suggestions {
			output.WriteString(fmt.Sprintf("### %s (%s)\n\n", suggestion.Title, suggestion.Type))
			output.WriteString(suggestion.Message)
			output.WriteString("\n\n")
			for _, keyword := range suggestion.Keywords {
				output.WriteString(fmt.Sprintf("- %s\n", keyword))
			}
			if len(suggestion.Keywords) > 0 {
				output.WriteString("\n")
			}
		}
	}

	return output.String(), nil
}

func (mmf *MatchMarkdownFormatter) SupportedType() string {
	return "MatchResumeOutput"
}

func writeMarkdownKeywords(output *strings.Builder, technical, phrases, general []string) {
	output.WriteString(fmt.Sprintf("- **Technical:** %s\n", joinOrNone(technical)))
	output.WriteString(fmt.Sprintf("- **Phrases:** %s\n", joinOrNone(phrases)))
	output.WriteString(fmt.Sprintf("- **General:** %s\n\n", joinOrNone(general)))
}

func joinOrNone(keywords []string) string {
	if len(keywords) == 0 {
		return "(none)"
	}
	return strings.Join(keywords, ", ")
}

// BulletTextFormatter handles text formatting for bullet analysis results
type BulletTextFormatter struct{}

func (btf *BulletTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.AnalyzeBulletOutput)
	if !ok {
		return "", fmt.Errorf("expected AnalyzeBulletOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== BULLET STRENGTH ===\n\n")
	output.WriteString(fmt.Sprintf("Score: %d/100 (%s)\n\n", result.Score, result.Label.Label))

	if result.Pattern != nil {
		output.WriteString(fmt.Sprintf("Weak phrasing detected: %s (matched %q)\n", result.Pattern.Pattern.Name, result.Pattern.MatchedText))
		output.WriteString(fmt.Sprintf("Template: %s\n\n", result.Pattern.Pattern.Template.Base))
	} else {
		output.WriteString("No weak phrasing detected.\n\n")
	}

	if len(result.Suggestions) > 0 {
		output.WriteString("Suggestions:\n")
		for _, suggestion := range result.Suggestions {
			output.WriteString(fmt.Sprintf("- %s\n", suggestion))
		}
	}

	return output.String(), nil
}

func (btf *BulletTextFormatter) SupportedType() string {
	return "AnalyzeBulletOutput"
}

// BulletMarkdownFormatter handles markdown formatting for bullet analysis results
type BulletMarkdownFormatter struct{}

func (bmf *BulletMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.AnalyzeBulletOutput)
	if !ok {
		return "", fmt.Errorf("expected AnalyzeBulletOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Bullet Strength\n\n")
	output.WriteString(fmt.Sprintf("**Score:** %d/100 — %s\n\n", result.Score, result.Label.Label))

	if result.Pattern != nil {
		output.WriteString("## Weak Phrasing\n\n")
		output.WriteString(fmt.Sprintf("**Pattern:** %s (matched %q)\n\n", result.Pattern.Pattern.Name, result.Pattern.MatchedText))
		output.WriteString(fmt.Sprintf("**Template:** `%s`\n\n", result.Pattern.Pattern.Template.Base))
	}

	if len(result.Suggestions) > 0 {
		output.WriteString("## Suggestions\n\n")
		for _, suggestion := range result.Suggestions {
			output.WriteString(fmt.Sprintf("- %s\n", suggestion))
		}
	}

	return output.String(), nil
}

func (bmf *BulletMarkdownFormatter) SupportedType() string {
	return "AnalyzeBulletOutput"
}

// StatementTextFormatter handles text formatting for built statements
type StatementTextFormatter struct{}

func (stf *StatementTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.BuildStatementOutput)
	if !ok {
		return "", fmt.Errorf("expected BuildStatementOutput, got %T", data)
	}

	var output strings.Builder
	output.WriteString(result.Statement)
	output.WriteString("\n")
	if !result.Complete {
		output.WriteString("\nNote: statement still contains unfilled placeholders.\n")
	}

	return output.String(), nil
}

func (stf *StatementTextFormatter) SupportedType() string {
	return "BuildStatementOutput"
}

// StatementMarkdownFormatter handles markdown formatting for built statements
type StatementMarkdownFormatter struct{}

func (smf *StatementMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.BuildStatementOutput)
	if !ok {
		return "", fmt.Errorf("expected BuildStatementOutput, got %T", data)
	}

	var output strings.Builder
	output.WriteString("# Statement\n\n")
	output.WriteString(fmt.Sprintf("> %s\n", result.Statement))
	if !result.Complete {
		output.WriteString("\n**Note:** statement still contains unfilled placeholders.\n")
	}

	return output.String(), nil
}

func (smf *StatementMarkdownFormatter) SupportedType() string {
	return "BuildStatementOutput"
}

// PatternsTextFormatter handles text formatting for the pattern library
type PatternsTextFormatter struct{}

func (ptf *PatternsTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ListPatternsOutput)
	if !ok {
		return "", fmt.Errorf("expected ListPatternsOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== WEAK PHRASE PATTERNS ===\n\n")
	for i, pattern := range result.Patterns {
		output.WriteString(fmt.Sprintf("%d. %s (%s)\n", i+1, pattern.Name, pattern.ID))
		output.WriteString(fmt.Sprintf("   Template: %s\n", pattern.Template.Base))
		for _, example := range pattern.Examples {
			output.WriteString(fmt.Sprintf("   Before: %s\n", example.Before))
			output.WriteString(fmt.Sprintf("   After:  %s\n", example.After))
		}
		output.WriteString("\n")
	}

	return output.String(), nil
}

func (ptf *PatternsTextFormatter) SupportedType() string {
	return "ListPatternsOutput"
}

// PatternsMarkdownFormatter handles markdown formatting for the pattern library
type PatternsMarkdownFormatter struct{}

func (pmf *PatternsMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ListPatternsOutput)
	if !ok {
		return "", fmt.Errorf("expected ListPatternsOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Weak Phrase Patterns\n\n")
	for _, pattern := range result.Patterns {
		output.WriteString(fmt.Sprintf("## %s (`%s`)\n\n", pattern.Name, pattern.ID))
		output.WriteString(fmt.Sprintf("**Template:** `%s`\n\n", pattern.Template.Base))
		if len(pattern.Template.Fields) > 0 {
			output.WriteString("| Field | Label | Type | Required |\n")
			output.WriteString("|-------|-------|------|----------|\n")
			for _, field := range pattern.Template.Fields {
				output.WriteString(fmt.Sprintf("| %s | %s | %s | %t |\n", field.Name, field.Label, field.Type, field.Required))
			}
			output.WriteString("\n")
		}
		for _, example := range pattern.Examples {
			output.WriteString(fmt.Sprintf("- Before: %s\n", example.Before))
			output.WriteString(fmt.Sprintf("- After: %s\n", example.After))
		}
		output.WriteString("\n")
	}

	return output.String(), nil
}

func (pmf *PatternsMarkdownFormatter) SupportedType() string {
	return "ListPatternsOutput"
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
