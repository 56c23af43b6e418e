package strength

import (
	"regexp"
	"testing"
)

func TestGetStrengthScoreStrongBullet(t *testing.T) {
	score := GetStrengthScore("Led 10-person team to achieve 40% increase in revenue, generating $2M annually")
	if score < 60 {
		t.Errorf("strong bullet scored %d, want >= 60", score)
	}
}

func TestGetStrengthScoreWeakBullet(t *testing.T) {
	score := GetStrengthScore("Helped with various things and stuff")
	if score >= 20 {
		t.Errorf("weak bullet scored %d, want < 20", score)
	}
}

func TestGetStrengthScoreEmpty(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"whitespace", "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if score := GetStrengthScore(tt.text); score != 0 {
				t.Errorf("expected 0, got %d", score)
			}
		})
	}
}

func TestGetStrengthScoreNumbersHelp(t *testing.T) {
	with := GetStrengthScore("Increased conversion rate by 25% across the platform")
	without := GetStrengthScore("Increased conversion rate across the platform")

	if with <= without {
		t.Errorf("quantified bullet (%d) should outscore unquantified (%d)", with, without)
	}
}

func TestGetStrengthScoreMetricCap(t *testing.T) {
	// 2+ metrics saturate at +40; signals beyond that must come from
	// elsewhere. Two otherwise-bare sentences with 2 vs 4 numbers tie.
	two := GetStrengthScore("Processed 100 orders and 200 refunds")
	four := GetStrengthScore("Processed 100 orders, 200 refunds, 300 returns and 400 disputes")

	if two != four {
		t.Errorf("metric bonus should cap at two matches: %d vs %d", two, four)
	}
}

func TestGetStrengthScoreIndependentSignals(t *testing.T) {
	// Numbers bonus and weak-phrase penalty both apply to the same text.
	score := GetStrengthScore("Helped the team ship 3 features")
	// +20 number, +10 scope (team), -20 weak (helped) = 10
	if score != 10 {
		t.Errorf("expected independent signals to sum to 10, got %d", score)
	}
}

func TestGetStrengthScoreClampsToZero(t *testing.T) {
	if score := GetStrengthScore("Assisted with stuff"); score != 0 {
		t.Errorf("negative totals should clamp to 0, got %d", score)
	}
}

func TestGetStrengthScoreIdempotent(t *testing.T) {
	text := "Deployed the payments pipeline to AWS, cutting release time by 3 days"
	if first, second := GetStrengthScore(text), GetStrengthScore(text); first != second {
		t.Errorf("score not idempotent: %d vs %d", first, second)
	}
}

func TestGetStrengthLabel(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{90, "Excellent"},
		{80, "Excellent"},
		{79, "Strong"},
		{60, "Strong"},
		{59, "Fair"},
		{40, "Fair"},
		{39, "Weak"},
		{20, "Weak"},
		{19, "Needs Work"},
		{0, "Needs Work"},
	}

	colorRe := regexp.MustCompile(`^#[0-9a-f]{6}$`)
	for _, tt := range tests {
		label := GetStrengthLabel(tt.score)
		if label.Label != tt.want {
			t.Errorf("GetStrengthLabel(%d) = %q, want %q", tt.score, label.Label, tt.want)
		}
		if !colorRe.MatchString(label.Color) {
			t.Errorf("GetStrengthLabel(%d) color %q is not a hex color", tt.score, label.Color)
		}
	}
}

func TestAllPowerVerbs(t *testing.T) {
	verbs := AllPowerVerbs()
	if len(verbs) <= 50 {
		t.Errorf("expected more than 50 power verbs, got %d", len(verbs))
	}

	for _, want := range []string{"Led", "Built", "Achieved"} {
		found := false
		for _, verb := range verbs {
			if verb == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("power verbs missing %q", want)
		}
	}
}

func TestStartsWithPowerVerb(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"plain leading verb", "led the migration", true},
		{"verb followed by comma", "led, mentored, and coached 5 engineers", true},
		{"verb followed by colon", "delivered: new onboarding flow for customers", true},
		{"verb is the whole text", "delivered", true},
		{"verb buried mid-sentence", "the team led the migration", false},
		{"longer word sharing a verb prefix", "ledger reconciliation for 3 accounts", false},
		{"non-verb opening", "responsible for testing", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := startsWithPowerVerb(tt.text); got != tt.want {
				t.Errorf("startsWithPowerVerb(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestGetStrengthScorePunctuatedPowerVerb(t *testing.T) {
	// The opening verb bonus must not depend on what follows the verb.
	plain := GetStrengthScore("Led 5 engineers")
	punctuated := GetStrengthScore("Led, mentored, and coached 5 engineers")

	if punctuated < plain {
		t.Errorf("punctuation after the leading verb lost points: %d vs %d", punctuated, plain)
	}
}

func TestSuggestImprovements(t *testing.T) {
	t.Run("weak bullet gets suggestions", func(t *testing.T) {
		analysis := SuggestImprovements("Responsible for documentation")

		if analysis.Score >= 40 {
			t.Fatalf("expected low score, got %d", analysis.Score)
		}
		if !analysis.CanStrengthen {
			t.Error("weak-pattern bullet should be strengthenable")
		}
		if analysis.Pattern == nil || analysis.Pattern.PatternID != "responsible_for" {
			t.Errorf("unexpected pattern: %+v", analysis.Pattern)
		}
		if len(analysis.Suggestions) != 3 {
			t.Errorf("expected 3 suggestions for an unquantified weak bullet, got %v", analysis.Suggestions)
		}
	})

	t.Run("strong bullet gets none", func(t *testing.T) {
		analysis := SuggestImprovements("Led 10-person team to achieve 40% revenue growth, generating $2M annually")

		if analysis.Score < 60 {
			t.Fatalf("expected high score, got %d", analysis.Score)
		}
		if analysis.CanStrengthen {
			t.Error("clean bullet should not be strengthenable")
		}
		if len(analysis.Suggestions) != 0 {
			t.Errorf("expected no suggestions, got %v", analysis.Suggestions)
		}
	})
}
