package ats

import (
	"reflect"
	"strings"
	"testing"
)

func TestExtractKeywordsEmptyInput(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty string", ""},
		{"whitespace only", "   \n\t  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := ExtractKeywords(tt.text)
			if len(set.Technical) != 0 || len(set.Phrases) != 0 || len(set.General) != 0 {
				t.Errorf("expected three empty sets, got %+v", set)
			}
		})
	}
}

func TestExtractKeywordsTechnical(t *testing.T) {
	set := ExtractKeywords("Experience with React, Node.js, and Python development")

	for _, want := range []string{"react", "node.js", "python"} {
		if !contains(set.Technical, want) {
			t.Errorf("technical set missing %q, got %v", want, set.Technical)
		}
	}
}

func TestExtractKeywordsWordBoundaries(t *testing.T) {
	// "java" must not match inside "javascript"
	set := ExtractKeywords("Deep javascript expertise")
	if contains(set.Technical, "java") {
		t.Errorf("boundary violation: 'java' extracted from 'javascript', technical=%v", set.Technical)
	}
	if !contains(set.Technical, "javascript") {
		t.Errorf("expected 'javascript' in technical set, got %v", set.Technical)
	}
}

func TestExtractKeywordsStopWords(t *testing.T) {
	set := ExtractKeywords("Developing scalable applications with performance")
	if contains(set.General, "with") {
		t.Errorf("stop word 'with' leaked into general keywords: %v", set.General)
	}
}

func TestExtractKeywordsGeneralRules(t *testing.T) {
	set := ExtractKeywords("Designing scalable distributed pipelines for fun")

	if contains(set.General, "fun") {
		t.Errorf("token shorter than 4 chars kept in general: %v", set.General)
	}
	if !contains(set.General, "scalable") {
		t.Errorf("expected 'scalable' in general keywords, got %v", set.General)
	}
}

func TestExtractKeywordsDisjointSets(t *testing.T) {
	texts := []string{
		"Senior engineer building React applications with Python and machine learning",
		"Kubernetes deployment automation and infrastructure as code with Terraform",
		"Led project management efforts across agile scrum squads",
	}

	for _, text := range texts {
		set := ExtractKeywords(text)

		technical := make(map[string]struct{}, len(set.Technical))
		for _, term := range set.Technical {
			technical[term] = struct{}{}
		}
		for _, keyword := range set.General {
			if _, ok := technical[keyword]; ok {
				t.Errorf("keyword %q in both technical and general for %q", keyword, text)
			}
		}
		for _, phrase := range set.Phrases {
			if _, ok := technical[phrase]; ok {
				t.Errorf("phrase %q in both technical and phrases for %q", phrase, text)
			}
		}
	}
}

func TestExtractKeywordsPhraseTechnicalExclusion(t *testing.T) {
	set := ExtractKeywords("Expertise in machine learning model deployment")

	if !contains(set.Technical, "machine learning") {
		t.Fatalf("expected 'machine learning' as technical, got %v", set.Technical)
	}
	for _, phrase := range set.Phrases {
		if phrase == "machine learning" {
			t.Errorf("'machine learning' duplicated into phrases: %v", set.Phrases)
		}
	}
}

func TestExtractKeywordsIdempotent(t *testing.T) {
	text := "Built Go microservices on AWS with PostgreSQL, improving p99 latency"

	first := ExtractKeywords(text)
	second := ExtractKeywords(text)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("extraction not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestExtractResumeText(t *testing.T) {
	resume := Resume{
		Title:   "Senior Software Engineer",
		Summary: "Backend engineer focused on distributed systems",
		Experience: []Experience{
			{
				Company:      "Acme Corp",
				Position:     "Staff Engineer",
				Description:  "Owned the payments platform",
				Highlights:   []string{"Reduced processing latency by 40%"},
				Technologies: []string{"Go", "PostgreSQL"},
			},
		},
		Certifications: []Certification{
			{Name: "AWS Solutions Architect", Issuer: "Amazon"},
		},
	}

	text := ExtractResumeText(resume)

	for _, want := range []string{
		"Senior Software Engineer",
		"distributed systems",
		"payments platform",
		"Reduced processing latency by 40%",
		"Go PostgreSQL",
		"AWS Solutions Architect",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("extracted text missing %q:\n%s", want, text)
		}
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
