package formatters

import (
	"strings"
	"testing"

	"resumelens/internal/types"
)

// Every typed output must have a text and a markdown formatter; json is
// covered by the generic fallback.
func TestRegistryCoversAllOutputTypes(t *testing.T) {
	registry := NewFormatterRegistry()

	outputs := []struct {
		name string
		data any
	}{
		{"match", types.MatchResumeOutput{}},
		{"bullet", types.AnalyzeBulletOutput{}},
		{"statement", types.BuildStatementOutput{}},
		{"patterns", types.ListPatternsOutput{}},
	}

	for _, out := range outputs {
		for _, format := range []string{"json", "text", "markdown"} {
			t.Run(out.name+"/"+format, func(t *testing.T) {
				if _, err := registry.Format(out.data, format); err != nil {
					t.Errorf("Format(%s, %s) failed: %v", out.name, format, err)
				}
			})
		}
	}
}

func TestStatementTextFormatter(t *testing.T) {
	result := types.BuildStatementOutput{
		Statement: "Managed a team of 8 engineers to deliver the migration",
		Complete:  true,
	}

	got, err := (&StatementTextFormatter{}).Format(result)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if !strings.Contains(got, result.Statement) {
		t.Errorf("output missing statement: %q", got)
	}
	if strings.Contains(got, "unfilled placeholders") {
		t.Errorf("complete statement should not carry the placeholder note: %q", got)
	}
}

func TestStatementMarkdownFormatter(t *testing.T) {
	t.Run("complete statement", func(t *testing.T) {
		got, err := (&StatementMarkdownFormatter{}).Format(types.BuildStatementOutput{
			Statement: "Managed a team of 8 engineers to deliver the migration",
			Complete:  true,
		})
		if err != nil {
			t.Fatalf("Format failed: %v", err)
		}
		if !strings.Contains(got, "# Statement") {
			t.Errorf("output missing heading: %q", got)
		}
		if !strings.Contains(got, "Managed a team of 8 engineers") {
			t.Errorf("output missing statement: %q", got)
		}
		if strings.Contains(got, "unfilled placeholders") {
			t.Errorf("complete statement should not carry the placeholder note: %q", got)
		}
	})

	t.Run("incomplete statement notes placeholders", func(t *testing.T) {
		got, err := (&StatementMarkdownFormatter{}).Format(types.BuildStatementOutput{
			Statement: "Managed a team of [team size] engineers",
			Complete:  false,
		})
		if err != nil {
			t.Fatalf("Format failed: %v", err)
		}
		if !strings.Contains(got, "unfilled placeholders") {
			t.Errorf("incomplete statement should carry the placeholder note: %q", got)
		}
	})

	t.Run("wrong type rejected", func(t *testing.T) {
		if _, err := (&StatementMarkdownFormatter{}).Format("not a statement"); err == nil {
			t.Error("expected type error for non-statement data")
		}
	})
}
