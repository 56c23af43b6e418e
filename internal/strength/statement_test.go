package strength

import (
	"strings"
	"testing"
)

func TestBuildStatement(t *testing.T) {
	pattern := &WeakPattern{
		ID: "test",
		Template: Template{
			Base: "Led {teamSize} team to {achievement}",
			Fields: []Field{
				{Name: "teamSize", Label: "Team Size", Suffix: "-person"},
				{Name: "achievement", Label: "Achievement"},
			},
		},
	}

	got := BuildStatement(pattern, map[string]string{
		"teamSize":    "8",
		"achievement": "deliver project",
	})

	want := "Led 8-person team to deliver project"
	if got != want {
		t.Errorf("BuildStatement = %q, want %q", got, want)
	}
}

func TestBuildStatementMissingRequiredField(t *testing.T) {
	pattern := PatternByID("managed_team")
	if pattern == nil {
		t.Fatal("managed_team pattern not found")
	}

	got := BuildStatement(pattern, map[string]string{"teamSize": "6"})

	if !strings.Contains(got, "[Achievement]") {
		t.Errorf("missing required field should leave bracketed placeholder, got %q", got)
	}
}

func TestBuildStatementStripsDanglingOptional(t *testing.T) {
	pattern := PatternByID("managed_team")
	if pattern == nil {
		t.Fatal("managed_team pattern not found")
	}

	got := BuildStatement(pattern, map[string]string{
		"teamSize":    "6",
		"achievement": "ship the redesign",
	})

	want := "Led 6-person team to ship the redesign"
	if got != want {
		t.Errorf("dangling optional field not stripped: got %q, want %q", got, want)
	}
}

func TestBuildStatementSingleSubstitution(t *testing.T) {
	// A field name that is a substring of another must only replace its
	// own placeholder.
	pattern := &WeakPattern{
		ID: "test",
		Template: Template{
			Base: "Grew {team} within {teamArea}",
			Fields: []Field{
				{Name: "team", Label: "Team"},
				{Name: "teamArea", Label: "Team Area"},
			},
		},
	}

	got := BuildStatement(pattern, map[string]string{
		"team":     "platform squad",
		"teamArea": "infrastructure",
	})

	want := "Grew platform squad within infrastructure"
	if got != want {
		t.Errorf("BuildStatement = %q, want %q", got, want)
	}
}

func TestBuildStatementNilPattern(t *testing.T) {
	if got := BuildStatement(nil, map[string]string{"x": "y"}); got != "" {
		t.Errorf("nil pattern should yield empty string, got %q", got)
	}
}

func TestBuildStatementNilValues(t *testing.T) {
	pattern := PatternByID("improved")
	if pattern == nil {
		t.Fatal("improved pattern not found")
	}

	got := BuildStatement(pattern, nil)

	for _, want := range []string{"[Metric]", "[Amount]", "[Method]"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected placeholder %s in %q", want, got)
		}
	}
}
