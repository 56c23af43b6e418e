package coach

import (
	"context"
	"strings"
	"testing"

	"resumelens/internal/ats"
	"resumelens/internal/types"
)

func TestMatchResume(t *testing.T) {
	service := NewService(nil)

	output, err := service.MatchResume(context.Background(), types.MatchResumeInput{
		JobDescription: "Looking for a React and Python engineer with AWS experience",
		ResumeText:     "Senior engineer building React frontends and Python services on AWS",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if output.Score != 100 {
		t.Errorf("fully covered posting should score 100, got %d", output.Score)
	}
	if output.Label != "Excellent Match" {
		t.Errorf("unexpected label %q", output.Label)
	}
	if output.Color != "#22c55e" {
		t.Errorf("unexpected color %q", output.Color)
	}
}

func TestMatchResumeStructuredResume(t *testing.T) {
	service := NewService(nil)

	output, err := service.MatchResume(context.Background(), types.MatchResumeInput{
		JobDescription: "Kubernetes platform engineer",
		Resume: &ats.Resume{
			Title:   "Platform Engineer",
			Summary: "Operating Kubernetes clusters in production",
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !contains(output.Matched.Technical, "kubernetes") {
		t.Errorf("expected kubernetes matched, got %+v", output.Matched)
	}
}

func TestMatchResumeValidation(t *testing.T) {
	service := NewService(nil)

	tests := []struct {
		name  string
		input types.MatchResumeInput
	}{
		{"missing job description", types.MatchResumeInput{ResumeText: "some resume"}},
		{"missing resume", types.MatchResumeInput{JobDescription: "some job"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := service.MatchResume(context.Background(), tt.input); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestMatchResumeCancelled(t *testing.T) {
	service := NewService(nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := service.MatchResume(ctx, types.MatchResumeInput{
		JobDescription: "React engineer",
		ResumeText:     "React developer",
	})
	if err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestAnalyzeBullet(t *testing.T) {
	service := NewService(nil)

	output, err := service.AnalyzeBullet(context.Background(), types.AnalyzeBulletInput{
		Text: "Responsible for managing the team",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !output.CanStrengthen {
		t.Error("weak bullet should be strengthenable")
	}
	if output.Pattern == nil || output.Pattern.PatternID != "responsible_for" {
		t.Errorf("unexpected pattern: %+v", output.Pattern)
	}
}

func TestAnalyzeBulletEmptyText(t *testing.T) {
	service := NewService(nil)

	output, err := service.AnalyzeBullet(context.Background(), types.AnalyzeBulletInput{})
	if err != nil {
		t.Fatalf("empty text is not an error: %v", err)
	}
	if output.Score != 0 || output.Pattern != nil {
		t.Errorf("empty text should degrade to neutral output, got %+v", output)
	}
}

func TestBuildStatement(t *testing.T) {
	service := NewService(nil)

	output, err := service.BuildStatement(context.Background(), types.BuildStatementInput{
		PatternID: "managed_team",
		Values: map[string]string{
			"teamSize":    "8",
			"achievement": "deliver the migration",
			"result":      "cutting incidents by half",
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "Led 8-person team to deliver the migration, cutting incidents by half"
	if output.Statement != want {
		t.Errorf("statement = %q, want %q", output.Statement, want)
	}
	if !output.Complete {
		t.Error("fully filled statement should be complete")
	}
}

func TestBuildStatementIncomplete(t *testing.T) {
	service := NewService(nil)

	output, err := service.BuildStatement(context.Background(), types.BuildStatementInput{
		PatternID: "managed_team",
		Values:    map[string]string{"teamSize": "8"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if output.Complete {
		t.Errorf("statement with unfilled required fields should be incomplete: %q", output.Statement)
	}
	if !strings.Contains(output.Statement, "[Achievement]") {
		t.Errorf("expected placeholder in %q", output.Statement)
	}
}

func TestBuildStatementUnknownPattern(t *testing.T) {
	service := NewService(nil)

	if _, err := service.BuildStatement(context.Background(), types.BuildStatementInput{PatternID: "bogus"}); err == nil {
		t.Error("expected error for unknown pattern")
	}
}

func TestListPatterns(t *testing.T) {
	service := NewService(nil)

	output := service.ListPatterns()

	if len(output.Patterns) != 8 {
		t.Errorf("expected 8 patterns, got %d", len(output.Patterns))
	}
	if output.Patterns[0].ID != "managed_team" {
		t.Errorf("pattern order not preserved: %v", output.Patterns[0].ID)
	}
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
