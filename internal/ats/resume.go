package ats

import "strings"

// Resume is the structured resume shape accepted by the match operation.
// Only human-authored free text participates in keyword extraction;
// identifiers, dates, and layout fields are ignored.
type Resume struct {
	Title          string          `json:"title"`
	Summary        string          `json:"summary"`
	Experience     []Experience    `json:"experience,omitempty"`
	Education      []Education     `json:"education,omitempty"`
	Projects       []Project       `json:"projects,omitempty"`
	Certifications []Certification `json:"certifications,omitempty"`
	CustomSections []CustomSection `json:"customSections,omitempty"`
}

// Experience is a single work-history entry.
type Experience struct {
	Company      string   `json:"company"`
	Position     string   `json:"position"`
	Description  string   `json:"description"`
	Highlights   []string `json:"highlights,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
}

// Education is a single education entry.
type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	Description string `json:"description"`
}

// Project is a single project entry.
type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Highlights   []string `json:"highlights,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
}

// Certification is a single certification entry.
type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
}

// CustomSection is a user-defined resume section.
type CustomSection struct {
	Title string       `json:"title"`
	Items []CustomItem `json:"items,omitempty"`
}

// CustomItem is an entry inside a custom section.
type CustomItem struct {
	Title       string   `json:"title"`
	Subtitle    string   `json:"subtitle"`
	Description string   `json:"description"`
	Highlights  []string `json:"highlights,omitempty"`
}

// ExtractResumeText concatenates all free-text fields of a resume into a
// single space-joined string suitable for ExtractKeywords.
func ExtractResumeText(resume Resume) string {
	parts := []string{resume.Title, resume.Summary}

	for _, exp := range resume.Experience {
		parts = append(parts, exp.Company, exp.Position, exp.Description)
		parts = append(parts, exp.Highlights...)
		parts = append(parts, strings.Join(exp.Technologies, " "))
	}

	for _, edu := range resume.Education {
		parts = append(parts, edu.Institution, edu.Degree, edu.Field, edu.Description)
	}

	for _, project := range resume.Projects {
		parts = append(parts, project.Name, project.Description)
		parts = append(parts, project.Highlights...)
		parts = append(parts, strings.Join(project.Technologies, " "))
	}

	for _, cert := range resume.Certifications {
		parts = append(parts, cert.Name, cert.Issuer)
	}

	for _, section := range resume.CustomSections {
		parts = append(parts, section.Title)
		for _, item := range section.Items {
			parts = append(parts, item.Title, item.Subtitle, item.Description)
			parts = append(parts, item.Highlights...)
		}
	}

	nonEmpty := parts[:0]
	for _, part := range parts {
		if strings.TrimSpace(part) != "" {
			nonEmpty = append(nonEmpty, part)
		}
	}

	return strings.Join(nonEmpty, " ")
}
