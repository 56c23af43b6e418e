package strength

import (
	"regexp"
	"strings"
)

var (
	// Residual ", [Label]" fragments left by empty optional fields.
	danglingPlaceholderRe = regexp.MustCompile(`,\s*\[[^\]]*\]`)
	multiSpaceRe          = regexp.MustCompile(`\s+`)
)

// BuildStatement renders a pattern's template with the supplied field
// values. Empty or missing values fall back to a bracketed "[Label]"
// placeholder, so callers can detect incomplete statements by checking
// for "[" in the result.
func BuildStatement(pattern *WeakPattern, values map[string]string) string {
	if pattern == nil {
		return ""
	}

	statement := pattern.Template.Base
	for _, field := range pattern.Template.Fields {
		display := strings.TrimSpace(values[field.Name])
		if display != "" {
			display += field.Suffix
		} else {
			display = "[" + field.Label + "]"
		}
		// Single substitution per field: a field name that is a substring
		// of another must not be replaced twice.
		statement = strings.Replace(statement, "{"+field.Name+"}", display, 1)
	}

	statement = danglingPlaceholderRe.ReplaceAllString(statement, "")
	statement = multiSpaceRe.ReplaceAllString(statement, " ")
	return strings.TrimSpace(statement)
}
