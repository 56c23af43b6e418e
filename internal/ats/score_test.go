package ats

import (
	"fmt"
	"testing"
)

func TestCalculateScoreIdenticalSets(t *testing.T) {
	set := KeywordSet{
		Technical: []string{"react", "python"},
		Phrases:   []string{"distributed systems"},
		General:   []string{"platform", "scalable"},
	}

	result := CalculateScore(set, set)

	if result.Score != 100 {
		t.Errorf("identical sets should score 100, got %d", result.Score)
	}
	if len(result.Missing.Technical)+len(result.Missing.Phrases)+len(result.Missing.General) != 0 {
		t.Errorf("identical sets should have no missing keywords: %+v", result.Missing)
	}
}

func TestCalculateScoreDisjointSets(t *testing.T) {
	job := KeywordSet{
		Technical: []string{"react"},
		Phrases:   []string{"frontend architecture"},
		General:   []string{"accessibility"},
	}
	resume := KeywordSet{
		Technical: []string{"go"},
		Phrases:   []string{"backend services"},
		General:   []string{"latency"},
	}

	result := CalculateScore(job, resume)

	if result.Score != 0 {
		t.Errorf("disjoint sets should score 0, got %d", result.Score)
	}
}

func TestCalculateScoreEmptySets(t *testing.T) {
	result := CalculateScore(KeywordSet{}, KeywordSet{})

	if result.Score != 0 {
		t.Errorf("empty inputs should score 0, got %d", result.Score)
	}
	if result.Suggestions == nil {
		t.Error("suggestions should be an empty list, not nil")
	}
}

func TestCalculateScoreWeighting(t *testing.T) {
	// One matched technical (weight 3) against one missing general (weight 1):
	// 3 of 4 total weight matched.
	job := KeywordSet{
		Technical: []string{"python"},
		General:   []string{"mentoring"},
	}
	resume := KeywordSet{
		Technical: []string{"python"},
	}

	result := CalculateScore(job, resume)

	if result.Score != 75 {
		t.Errorf("expected weighted score 75, got %d", result.Score)
	}
}

func TestCalculateScoreTechnicalMatchesResumeGeneral(t *testing.T) {
	// A job technical keyword also matches when it only appears in the
	// resume's general set.
	job := KeywordSet{Technical: []string{"python"}}
	resume := KeywordSet{General: []string{"python"}}

	result := CalculateScore(job, resume)

	if result.Score != 100 {
		t.Errorf("technical-vs-general match should score 100, got %d", result.Score)
	}
}

func TestCalculateScorePhraseContainment(t *testing.T) {
	job := KeywordSet{Phrases: []string{"api design"}}
	resume := KeywordSet{Phrases: []string{"rest api design experience"}}

	result := CalculateScore(job, resume)

	if result.Score != 100 {
		t.Errorf("substring phrase match should score 100, got %d", result.Score)
	}
}

func TestCalculateScorePhraseCap(t *testing.T) {
	var phrases []string
	for i := 0; i < 25; i++ {
		phrases = append(phrases, fmt.Sprintf("unique candidate phrase %02d", i))
	}
	job := KeywordSet{Phrases: phrases}

	result := CalculateScore(job, KeywordSet{})

	scored := len(result.Matched.Phrases) + len(result.Missing.Phrases)
	if scored != 15 {
		t.Errorf("expected 15 phrases scored after cap, got %d", scored)
	}
}

func TestCalculateScoreGeneralCap(t *testing.T) {
	var general []string
	for i := 0; i < 30; i++ {
		general = append(general, fmt.Sprintf("keyword%02d", i))
	}
	job := KeywordSet{General: general}

	result := CalculateScore(job, KeywordSet{})

	scored := len(result.Matched.General) + len(result.Missing.General)
	if scored != 20 {
		t.Errorf("expected 20 general keywords scored after cap, got %d", scored)
	}
	// Cap keeps encounter order, so the first 20 survive.
	if result.Missing.General[0] != "keyword00" || result.Missing.General[19] != "keyword19" {
		t.Errorf("general cap did not preserve insertion order: %v", result.Missing.General)
	}
}

func TestCalculateScorePhraseSortStable(t *testing.T) {
	// Equal-length phrases keep encounter order after the length sort.
	job := KeywordSet{Phrases: []string{"alpha one", "gamma two", "delta six", "longer phrase here"}}

	result := CalculateScore(job, KeywordSet{})

	want := []string{"longer phrase here", "alpha one", "gamma two", "delta six"}
	for i, phrase := range want {
		if result.Missing.Phrases[i] != phrase {
			t.Fatalf("expected phrase order %v, got %v", want, result.Missing.Phrases)
		}
	}
}

func TestBuildSuggestionsOrderAndTypes(t *testing.T) {
	job := KeywordSet{
		Technical: []string{"react", "typescript", "graphql", "docker", "kubernetes", "terraform"},
		Phrases:   []string{"frontend architecture", "component design"},
		General:   []string{"accessibility", "tooling", "mentoring", "roadmaps", "estimation", "onboarding"},
	}

	result := CalculateScore(job, KeywordSet{})

	wantTypes := []SuggestionType{SuggestionCritical, SuggestionImportant, SuggestionOptional, SuggestionWarning}
	if len(result.Suggestions) != len(wantTypes) {
		t.Fatalf("expected %d suggestions, got %d: %+v", len(wantTypes), len(result.Suggestions), result.Suggestions)
	}
	for i, want := range wantTypes {
		if result.Suggestions[i].Type != want {
			t.Errorf("suggestion %d: expected type %s, got %s", i, want, result.Suggestions[i].Type)
		}
	}

	if len(result.Suggestions[0].Keywords) != 5 {
		t.Errorf("critical suggestion should list first 5 missing technical terms, got %v", result.Suggestions[0].Keywords)
	}
	if len(result.Suggestions[1].Keywords) != 2 {
		t.Errorf("important suggestion should list missing phrases, got %v", result.Suggestions[1].Keywords)
	}
}

func TestBuildSuggestionsSuccess(t *testing.T) {
	set := KeywordSet{Technical: []string{"go"}}

	result := CalculateScore(set, set)

	if len(result.Suggestions) != 1 || result.Suggestions[0].Type != SuggestionSuccess {
		t.Errorf("perfect match should yield a single success suggestion, got %+v", result.Suggestions)
	}
}

func TestScoreColor(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{80, "#22c55e"},
		{70, "#22c55e"},
		{69, "#eab308"},
		{50, "#eab308"},
		{49, "#f97316"},
		{30, "#f97316"},
		{29, "#ef4444"},
		{10, "#ef4444"},
		{0, "#ef4444"},
	}

	for _, tt := range tests {
		if got := ScoreColor(tt.score); got != tt.want {
			t.Errorf("ScoreColor(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestScoreLabel(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{85, "Excellent Match"},
		{80, "Excellent Match"},
		{75, "Good Match"},
		{55, "Fair Match"},
		{35, "Needs Improvement"},
		{15, "Low Match"},
	}

	for _, tt := range tests {
		if got := ScoreLabel(tt.score); got != tt.want {
			t.Errorf("ScoreLabel(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}
