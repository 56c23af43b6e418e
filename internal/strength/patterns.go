package strength

import "regexp"

// FieldType describes how a template field should be rendered by callers.
type FieldType string

const (
	FieldText   FieldType = "text"
	FieldNumber FieldType = "number"
	FieldSelect FieldType = "select"
)

// Field describes one fill-in slot of a statement template.
type Field struct {
	Name        string    `json:"name"`
	Label       string    `json:"label"`
	Type        FieldType `json:"type"`
	Required    bool      `json:"required"`
	Placeholder string    `json:"placeholder,omitempty"`
	Options     []string  `json:"options,omitempty"`
	Suggestions []string  `json:"suggestions,omitempty"`
	Suffix      string    `json:"suffix,omitempty"`
}

// Template is a fill-in-the-blank statement with {fieldName} placeholders.
// Fields are ordered; substitution follows this order.
type Template struct {
	Base   string  `json:"base"`
	Fields []Field `json:"fields"`
}

// Example is a documentation-only before/after pair.
type Example struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

// WeakPattern pairs weak-phrasing matchers with a strengthening template.
// Matchers are OR-combined; the first one to match wins.
type WeakPattern struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Matchers []*regexp.Regexp `json:"-"`
	Template Template         `json:"template"`
	Examples []Example        `json:"examples"`
}

// WeakPatterns is the fixed detection library. List order is priority order:
// a bullet matching several patterns resolves to the earliest entry.
var WeakPatterns = []WeakPattern{
	{
		ID:   "managed_team",
		Name: "Managed a team",
		Matchers: []*regexp.Regexp{
			regexp.MustCompile(`\bmanaged\s+(?:a\s+|the\s+)?team\b`),
			regexp.MustCompile(`\bmanaged\s+\d+\s+(?:people|employees|staff|engineers|developers)\b`),
			regexp.MustCompile(`\bteam\s+management\s+(?:duties|responsibilities)\b`),
		},
		Template: Template{
			Base: "Led {teamSize} team to {achievement}, {result}",
			Fields: []Field{
				{
					Name:        "teamSize",
					Label:       "Team Size",
					Type:        FieldNumber,
					Required:    true,
					Placeholder: "8",
					Suffix:      "-person",
				},
				{
					Name:        "achievement",
					Label:       "Achievement",
					Type:        FieldText,
					Required:    true,
					Placeholder: "deliver the platform migration",
					Suggestions: []string{"deliver the product launch", "complete the migration ahead of schedule", "ship three major releases"},
				},
				{
					Name:        "result",
					Label:       "Result",
					Type:        FieldText,
					Required:    false,
					Placeholder: "increasing deployment frequency by 40%",
				},
			},
		},
		Examples: []Example{
			{
				Before: "Managed a team of developers",
				After:  "Led 8-person team to deliver the platform migration, increasing deployment frequency by 40%",
			},
		},
	},
	{
		ID:   "responsible_for",
		Name: "Responsible for",
		Matchers: []*regexp.Regexp{
			regexp.MustCompile(`\bresponsible\s+for\b`),
			regexp.MustCompile(`\bduties\s+included\b`),
			regexp.MustCompile(`\btasked\s+with\b`),
		},
		Template: Template{
			Base: "Delivered {deliverable} by {method}, {impact}",
			Fields: []Field{
				{
					Name:        "deliverable",
					Label:       "Deliverable",
					Type:        FieldText,
					Required:    true,
					Placeholder: "the customer onboarding flow",
				},
				{
					Name:        "method",
					Label:       "How",
					Type:        FieldText,
					Required:    true,
					Placeholder: "redesigning the signup pipeline",
				},
				{
					Name:        "impact",
					Label:       "Impact",
					Type:        FieldText,
					Required:    false,
					Placeholder: "cutting drop-off by 25%",
				},
			},
		},
		Examples: []Example{
			{
				Before: "Responsible for customer onboarding",
				After:  "Delivered the customer onboarding flow by redesigning the signup pipeline, cutting drop-off by 25%",
			},
		},
	},
	{
		ID:   "worked_on",
		Name: "Worked on",
		Matchers: []*regexp.Regexp{
			regexp.MustCompile(`\bworked\s+on\b`),
			regexp.MustCompile(`\binvolved\s+in\b`),
			regexp.MustCompile(`\bparticipated\s+in\b`),
		},
		Template: Template{
			Base: "Developed {project} using {technology}, {result}",
			Fields: []Field{
				{
					Name:        "project",
					Label:       "Project",
					Type:        FieldText,
					Required:    true,
					Placeholder: "a real-time analytics dashboard",
				},
				{
					Name:        "technology",
					Label:       "Technology",
					Type:        FieldText,
					Required:    true,
					Placeholder: "React and Go",
				},
				{
					Name:        "result",
					Label:       "Result",
					Type:        FieldText,
					Required:    false,
					Placeholder: "serving 10,000 daily users",
				},
			},
		},
		Examples: []Example{
			{
				Before: "Worked on the analytics dashboard",
				After:  "Developed a real-time analytics dashboard using React and Go, serving 10,000 daily users",
			},
		},
	},
	{
		ID:   "improved",
		Name: "Improved something",
		Matchers: []*regexp.Regexp{
			regexp.MustCompile(`\bimproved\b`),
			regexp.MustCompile(`\benhanced\b`),
			regexp.MustCompile(`\bmade\s+(?:\w+\s+)?better\b`),
		},
		Template: Template{
			Base: "Increased {metric} by {amount} through {method}",
			Fields: []Field{
				{
					Name:        "metric",
					Label:       "Metric",
					Type:        FieldText,
					Required:    true,
					Placeholder: "page load performance",
					Suggestions: []string{"conversion rate", "test coverage", "system uptime", "customer satisfaction"},
				},
				{
					Name:        "amount",
					Label:       "Amount",
					Type:        FieldNumber,
					Required:    true,
					Placeholder: "30",
					Suffix:      "%",
				},
				{
					Name:        "method",
					Label:       "Method",
					Type:        FieldText,
					Required:    true,
					Placeholder: "introducing a caching layer",
				},
			},
		},
		Examples: []Example{
			{
				Before: "Improved website performance",
				After:  "Increased page load performance by 30% through introducing a caching layer",
			},
		},
	},
	{
		ID:   "created",
		Name: "Created something",
		Matchers: []*regexp.Regexp{
			regexp.MustCompile(`\bcreated\b`),
			regexp.MustCompile(`\bput\s+together\b`),
			regexp.MustCompile(`\bset\s+up\b`),
		},
		Template: Template{
			Base: "Built {product} that {impact}, {scale}",
			Fields: []Field{
				{
					Name:        "product",
					Label:       "Product",
					Type:        FieldText,
					Required:    true,
					Placeholder: "an internal deployment tool",
				},
				{
					Name:        "impact",
					Label:       "Impact",
					Type:        FieldText,
					Required:    true,
					Placeholder: "reduced release time from days to hours",
				},
				{
					Name:        "scale",
					Label:       "Scale",
					Type:        FieldText,
					Required:    false,
					Placeholder: "adopted by 12 teams",
				},
			},
		},
		Examples: []Example{
			{
				Before: "Created a deployment tool",
				After:  "Built an internal deployment tool that reduced release time from days to hours, adopted by 12 teams",
			},
		},
	},
	{
		ID:   "collaborated",
		Name: "Collaborated with",
		Matchers: []*regexp.Regexp{
			regexp.MustCompile(`\bcollaborated\s+with\b`),
			regexp.MustCompile(`\bworked\s+(?:closely\s+)?with\b`),
			regexp.MustCompile(`\bpartnered\s+with\b`),
		},
		Template: Template{
			Base: "Partnered with {partner} to {goal}, {result}",
			Fields: []Field{
				{
					Name:        "partner",
					Label:       "Partner",
					Type:        FieldText,
					Required:    true,
					Placeholder: "the design and product teams",
				},
				{
					Name:        "goal",
					Label:       "Goal",
					Type:        FieldText,
					Required:    true,
					Placeholder: "launch the mobile app redesign",
				},
				{
					Name:        "result",
					Label:       "Result",
					Type:        FieldText,
					Required:    false,
					Placeholder: "lifting retention by 15%",
				},
			},
		},
		Examples: []Example{
			{
				Before: "Collaborated with other teams",
				After:  "Partnered with the design and product teams to launch the mobile app redesign, lifting retention by 15%",
			},
		},
	},
	{
		ID:   "communicated",
		Name: "Communicated with",
		Matchers: []*regexp.Regexp{
			regexp.MustCompile(`\bcommunicated\s+with\b`),
			regexp.MustCompile(`\bliaised\s+with\b`),
			regexp.MustCompile(`\bcorresponded\s+with\b`),
		},
		Template: Template{
			Base: "Presented {content} to {audience}, {outcome}",
			Fields: []Field{
				{
					Name:        "content",
					Label:       "Content",
					Type:        FieldText,
					Required:    true,
					Placeholder: "quarterly architecture reviews",
				},
				{
					Name:        "audience",
					Label:       "Audience",
					Type:        FieldText,
					Required:    true,
					Placeholder: "executive stakeholders",
				},
				{
					Name:        "outcome",
					Label:       "Outcome",
					Type:        FieldText,
					Required:    false,
					Placeholder: "securing budget for two new initiatives",
				},
			},
		},
		Examples: []Example{
			{
				Before: "Communicated with stakeholders",
				After:  "Presented quarterly architecture reviews to executive stakeholders, securing budget for two new initiatives",
			},
		},
	},
	{
		ID:   "reduced_costs",
		Name: "Reduced costs",
		Matchers: []*regexp.Regexp{
			regexp.MustCompile(`\breduced\s+costs?\b`),
			regexp.MustCompile(`\bcut\s+costs?\b`),
			regexp.MustCompile(`\bsaved\s+money\b`),
		},
		Template: Template{
			Base: "Reduced {expense} costs by {amount} through {method}",
			Fields: []Field{
				{
					Name:        "expense",
					Label:       "Expense",
					Type:        FieldText,
					Required:    true,
					Placeholder: "cloud infrastructure",
					Suggestions: []string{"cloud infrastructure", "vendor licensing", "operational overhead"},
				},
				{
					Name:        "amount",
					Label:       "Amount",
					Type:        FieldText,
					Required:    true,
					Placeholder: "$200K annually",
				},
				{
					Name:        "method",
					Label:       "Method",
					Type:        FieldText,
					Required:    true,
					Placeholder: "rightsizing compute and consolidating services",
				},
			},
		},
		Examples: []Example{
			{
				Before: "Reduced costs for the department",
				After:  "Reduced cloud infrastructure costs by $200K annually through rightsizing compute and consolidating services",
			},
		},
	},
}

// PatternByID returns the weak pattern with the given ID, or nil.
func PatternByID(id string) *WeakPattern {
	for i := range WeakPatterns {
		if WeakPatterns[i].ID == id {
			return &WeakPatterns[i]
		}
	}
	return nil
}
