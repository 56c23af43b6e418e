package strength

import "testing"

func TestDetectWeakPattern(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		wantID string
	}{
		{"responsible for outranks later patterns", "Responsible for managing the team", "responsible_for"},
		{"managed team", "Managed a team of 5 engineers", "managed_team"},
		{"managed headcount", "Managed 12 people across two offices", "managed_team"},
		{"worked on", "Worked on the billing system", "worked_on"},
		{"involved in", "Involved in quarterly planning", "worked_on"},
		{"improved", "Improved page load times", "improved"},
		{"created", "Created onboarding documentation", "created"},
		{"collaborated", "Collaborated with the design team", "collaborated"},
		{"communicated", "Communicated with external vendors", "communicated"},
		{"reduced costs", "Reduced costs in the logistics department", "reduced_costs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detection := DetectWeakPattern(tt.text)
			if detection == nil {
				t.Fatalf("expected pattern %q, got nil", tt.wantID)
			}
			if detection.PatternID != tt.wantID {
				t.Errorf("expected pattern %q, got %q (matched %q)", tt.wantID, detection.PatternID, detection.MatchedText)
			}
			if detection.Pattern == nil || detection.Pattern.ID != tt.wantID {
				t.Errorf("detection carries wrong pattern: %+v", detection.Pattern)
			}
		})
	}
}

func TestDetectWeakPatternNoMatch(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"strong statement", "Led 8-person team to deliver $1M platform"},
		{"empty string", ""},
		{"too short after trim", "  test  "},
		{"clean bullet", "Shipped the payments service ahead of schedule"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if detection := DetectWeakPattern(tt.text); detection != nil {
				t.Errorf("expected nil, got pattern %q (matched %q)", detection.PatternID, detection.MatchedText)
			}
		})
	}
}

func TestDetectWeakPatternPriorityOrder(t *testing.T) {
	// "managed a team" and "improved" both appear; the earlier pattern wins.
	detection := DetectWeakPattern("Managed a team and improved the release process")
	if detection == nil {
		t.Fatal("expected a detection")
	}
	if detection.PatternID != "managed_team" {
		t.Errorf("expected earliest pattern to win, got %q", detection.PatternID)
	}
}

func TestPatternByID(t *testing.T) {
	if pattern := PatternByID("improved"); pattern == nil || pattern.ID != "improved" {
		t.Errorf("PatternByID(improved) = %+v", pattern)
	}
	if pattern := PatternByID("nope"); pattern != nil {
		t.Errorf("expected nil for unknown ID, got %+v", pattern)
	}
}

func TestWeakPatternsHaveTemplatesAndExamples(t *testing.T) {
	for _, pattern := range WeakPatterns {
		if pattern.Template.Base == "" {
			t.Errorf("pattern %q has no template base", pattern.ID)
		}
		if len(pattern.Template.Fields) == 0 {
			t.Errorf("pattern %q has no fields", pattern.ID)
		}
		if len(pattern.Matchers) == 0 {
			t.Errorf("pattern %q has no matchers", pattern.ID)
		}
		if len(pattern.Examples) == 0 {
			t.Errorf("pattern %q has no examples", pattern.ID)
		}
	}
}
