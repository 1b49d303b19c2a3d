// Package sections is the static registry of proposal form sections:
// ordered names, per-section assistant guidance, and the auto-fill
// field allow-lists the assistant is permitted to write to.
package sections

// Names lists the form sections in wizard order. Index 0 is the
// document-upload pre-section; 1..11 are the narrative sections.
var Names = []string{
	"Upload Documents",
	"Cover Page",
	"Executive Summary",
	"Community Context",
	"Problem Statement",
	"Project Description",
	"Implementation Plan",
	"Budget Overview",
	"Expected Outcomes",
	"Alignment with Priorities",
	"Risk Management",
	"Attachments",
}

// Count is the total number of wizard sections including the upload
// pre-section.
const Count = 12

// Name returns the display name for a section number, or an empty
// string when out of range.
func Name(section int) string {
	if section < 0 || section >= len(Names) {
		return ""
	}
	return Names[section]
}

const genericGuidance = "How can I help with this section?"

// guidance holds the assistant's opening prompt per section. Section
// 11 (Attachments) is deliberately not listed and falls through to the
// generic prompt.
var guidance = map[int]string{
	0:  "Start by uploading your community plans and any funding guidelines. I'll use them as context for everything we draft together. You can also just tell me about your project and I'll rough in the basics.",
	1:  "For the Cover Page, I need: project title, organization name, contact information, and submission date. You can speak or type these details.",
	2:  "The Executive Summary should be 150-250 words covering who you are, what you're proposing, why it's needed, expected outcomes, and your funding request. Want to draft this together?",
	3:  "Let's establish your Community Context. Tell me about your community's background, population, strengths, and cultural significance.",
	4:  "For the Problem Statement, describe the specific challenge or opportunity you're addressing. Include any supporting data or community feedback you have.",
	5:  "Now for Project Description - let's define your SMART objectives and activities for each year. What are your main goals?",
	6:  "The Implementation Plan needs a timeline with specific milestones and deliverables. When do you plan to start, and what are the key phases?",
	7:  "For the Budget, I'll help you break down costs into categories: personnel, equipment, training, marketing, and other expenses. What's your total project budget?",
	8:  "Expected Outcomes should include measurable results and long-term community impact. How will you measure success?",
	9:  "Let's align your project with the funder's priorities. Do you have the funding guidelines? I can help match your project to their goals.",
	10: "For Risk Management, identify potential challenges and your mitigation strategies. What concerns do you have about project implementation?",
}

// GuidanceFor returns the assistant's opening prompt for a section,
// defaulting to a generic prompt for unknown section numbers.
func GuidanceFor(section int) string {
	if text, ok := guidance[section]; ok {
		return text
	}
	return genericGuidance
}

// FieldConfig describes which proposal fields the assistant may
// auto-fill while a section is active. Fallback, when set, receives
// the raw assistant reply if no structured extraction came back.
type FieldConfig struct {
	Description string
	Fields      []string
	Fallback    string
}

// fieldConfigs mirrors the backend's per-section extraction
// allow-lists. Sections 6 (Implementation Plan, milestone grid only)
// and 11 (Attachments) have no auto-fill behavior.
var fieldConfigs = map[int]FieldConfig{
	0: {
		Description: "Quick start intake overview",
		Fields: []string{
			"projectTitle", "organizationName", "executiveSummary",
			"problemDescription", "expectedOutcomes", "objective1",
			"communityBackground", "needsChallenges",
		},
	},
	1: {
		Description: "Cover Page details",
		Fields: []string{
			"projectTitle", "organizationName", "submissionDate",
			"contactName", "contactPhone", "contactEmail",
			"contactAddress", "fundedBy",
		},
	},
	2: {
		Description: "Executive Summary narrative",
		Fields:      []string{"executiveSummary"},
		Fallback:    "executiveSummary",
	},
	3: {
		Description: "Community and background context",
		Fields: []string{
			"communityName", "population", "communityBackground",
			"economicBaseline", "culturalContext", "needsChallenges",
		},
		Fallback: "communityBackground",
	},
	4: {
		Description: "Problem / Opportunity statement details",
		Fields:      []string{"problemDescription", "supportingEvidence"},
		Fallback:    "problemDescription",
	},
	5: {
		Description: "Project objectives and yearly activities",
		Fields: []string{
			"objective1", "objective2", "objective3",
			"year1Activities", "year2Activities", "year3Activities",
		},
	},
	7: {
		Description: "Budget and financial plan",
		Fields: []string{
			"totalBudget", "requestedAmount", "communityContribution",
			"personnelBudget", "equipmentBudget", "trainingBudget",
			"marketingBudget", "otherBudget", "sustainabilityPlan",
		},
	},
	8: {
		Description: "Expected outcomes and evaluation plans",
		Fields: []string{
			"expectedOutcomes", "successIndicators",
			"dataCollectionPlan", "evaluationPlan",
		},
		Fallback: "expectedOutcomes",
	},
	9: {
		Description: "Alignment with priorities and sustainability",
		Fields: []string{
			"communityAlignment", "funderAlignment", "longTermSustainability",
		},
		Fallback: "communityAlignment",
	},
	10: {
		Description: "Risk management overview",
		Fields:      []string{"risksMitigation"},
		Fallback:    "risksMitigation",
	},
}

// FieldConfigFor returns the allow-list config for a section. The
// second return is false for sections with no auto-fill behavior.
func FieldConfigFor(section int) (FieldConfig, bool) {
	cfg, ok := fieldConfigs[section]
	return cfg, ok
}
