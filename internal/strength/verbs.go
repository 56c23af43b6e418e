package strength

import "strings"

// VerbCategory names a group of related power verbs.
type VerbCategory string

const (
	VerbLeadership    VerbCategory = "leadership"
	VerbAchievement   VerbCategory = "achievement"
	VerbImprovement   VerbCategory = "improvement"
	VerbCreation      VerbCategory = "creation"
	VerbAnalysis      VerbCategory = "analysis"
	VerbCommunication VerbCategory = "communication"
	VerbExecution     VerbCategory = "execution"
)

// PowerVerbs is the categorized action-verb vocabulary used for strength
// scoring and improvement suggestions.
var PowerVerbs = map[VerbCategory][]string{
	VerbLeadership: {
		"Led", "Directed", "Managed", "Supervised", "Coordinated", "Oversaw",
		"Headed", "Spearheaded", "Chaired", "Guided", "Mentored", "Coached",
	},
	VerbAchievement: {
		"Achieved", "Exceeded", "Surpassed", "Delivered", "Attained", "Won",
		"Secured", "Earned", "Completed", "Accomplished",
	},
	VerbImprovement: {
		"Improved", "Increased", "Reduced", "Optimized", "Streamlined",
		"Accelerated", "Enhanced", "Strengthened", "Boosted", "Transformed",
		"Modernized", "Automated",
	},
	VerbCreation: {
		"Built", "Created", "Designed", "Developed", "Launched", "Established",
		"Founded", "Engineered", "Architected", "Implemented", "Initiated",
		"Pioneered",
	},
	VerbAnalysis: {
		"Analyzed", "Evaluated", "Assessed", "Researched", "Identified",
		"Investigated", "Measured", "Forecasted", "Diagnosed",
	},
	VerbCommunication: {
		"Presented", "Negotiated", "Persuaded", "Authored", "Communicated",
		"Advocated", "Facilitated", "Influenced",
	},
	VerbExecution: {
		"Executed", "Deployed", "Migrated", "Integrated", "Resolved",
		"Maintained", "Operated", "Shipped", "Scaled",
	},
}

var verbCategoryOrder = []VerbCategory{
	VerbLeadership,
	VerbAchievement,
	VerbImprovement,
	VerbCreation,
	VerbAnalysis,
	VerbCommunication,
	VerbExecution,
}

// allPowerVerbs is the flat union, built once at load.
var allPowerVerbs = buildAllPowerVerbs()

// powerVerbSet holds the lowercased verbs for prefix matching.
var powerVerbSet = buildPowerVerbSet()

func buildAllPowerVerbs() []string {
	var verbs []string
	for _, category := range verbCategoryOrder {
		verbs = append(verbs, PowerVerbs[category]...)
	}
	return verbs
}

func buildPowerVerbSet() map[string]struct{} {
	set := make(map[string]struct{}, len(allPowerVerbs))
	for _, verb := range allPowerVerbs {
		set[strings.ToLower(verb)] = struct{}{}
	}
	return set
}

// AllPowerVerbs returns the union of every verb category in a stable order.
func AllPowerVerbs() []string {
	verbs := make([]string, len(allPowerVerbs))
	copy(verbs, allPowerVerbs)
	return verbs
}
