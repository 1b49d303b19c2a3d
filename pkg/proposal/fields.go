package proposal

import "fmt"

// Milestone is one row of the implementation timeline.
type Milestone struct {
	Name string `yaml:"name" json:"name"`
	Date string `yaml:"date" json:"date"`
}

// Document is an uploaded file handle kept in memory for the session.
type Document struct {
	Name string `yaml:"name" json:"name"`
	Path string `yaml:"path" json:"path"`
	Size int64  `yaml:"size" json:"size"`
}

// DocumentKind selects one of the two upload lists.
type DocumentKind string

const (
	CommunityDocuments DocumentKind = "community"
	FundingDocuments   DocumentKind = "funding"
)

// State holds every form field of the in-progress proposal. The field
// set is fixed; auto-fill goes through the registry below so unknown
// wire names are rejected instead of silently created.
type State struct {
	// Cover Page
	ProjectTitle     string `yaml:"project_title"`
	OrganizationName string `yaml:"organization_name"`
	SubmissionDate   string `yaml:"submission_date"`
	ContactName      string `yaml:"contact_name"`
	ContactPhone     string `yaml:"contact_phone"`
	ContactEmail     string `yaml:"contact_email"`
	ContactAddress   string `yaml:"contact_address"`
	FundedBy         string `yaml:"funded_by"`

	// Executive Summary
	ExecutiveSummary string `yaml:"executive_summary"`

	// Community Context
	CommunityName       string `yaml:"community_name"`
	Population          string `yaml:"population"`
	CommunityBackground string `yaml:"community_background"`
	EconomicBaseline    string `yaml:"economic_baseline"`
	CulturalContext     string `yaml:"cultural_context"`
	NeedsChallenges     string `yaml:"needs_challenges"`

	// Problem Statement
	ProblemDescription string `yaml:"problem_description"`
	SupportingEvidence string `yaml:"supporting_evidence"`

	// Project Description
	Objective1      string `yaml:"objective1"`
	Objective2      string `yaml:"objective2"`
	Objective3      string `yaml:"objective3"`
	Year1Activities string `yaml:"year1_activities"`
	Year2Activities string `yaml:"year2_activities"`
	Year3Activities string `yaml:"year3_activities"`

	// Implementation Plan
	Milestones [4]Milestone `yaml:"milestones"`

	// Budget
	TotalBudget           string `yaml:"total_budget"`
	RequestedAmount       string `yaml:"requested_amount"`
	CommunityContribution string `yaml:"community_contribution"`
	PersonnelBudget       string `yaml:"personnel_budget"`
	EquipmentBudget       string `yaml:"equipment_budget"`
	TrainingBudget        string `yaml:"training_budget"`
	MarketingBudget       string `yaml:"marketing_budget"`
	OtherBudget           string `yaml:"other_budget"`
	SustainabilityPlan    string `yaml:"sustainability_plan"`

	// Expected Outcomes
	ExpectedOutcomes   string `yaml:"expected_outcomes"`
	SuccessIndicators  string `yaml:"success_indicators"`
	DataCollectionPlan string `yaml:"data_collection_plan"`
	EvaluationPlan     string `yaml:"evaluation_plan"`

	// Alignment with Priorities
	CommunityAlignment     string `yaml:"community_alignment"`
	FunderAlignment        string `yaml:"funder_alignment"`
	LongTermSustainability string `yaml:"long_term_sustainability"`

	// Risk Management
	RisksMitigation string `yaml:"risks_mitigation"`

	// Uploaded documents
	CommunityDocs []Document `yaml:"community_documents"`
	FundingDocs   []Document `yaml:"funding_documents"`
}

// fieldSpec ties a wire-level field name to its display label and its
// slot in State.
type fieldSpec struct {
	Label string
	Get   func(*State) string
	Set   func(*State, string)
}

// registry enumerates every scalar field the assistant may auto-fill.
// Keys match the camelCase names used on the wire by the backend.
var registry = map[string]fieldSpec{
	"projectTitle":     {"Project Title", func(s *State) string { return s.ProjectTitle }, func(s *State, v string) { s.ProjectTitle = v }},
	"organizationName": {"Organization Name", func(s *State) string { return s.OrganizationName }, func(s *State, v string) { s.OrganizationName = v }},
	"submissionDate":   {"Submission Date", func(s *State) string { return s.SubmissionDate }, func(s *State, v string) { s.SubmissionDate = v }},
	"contactName":      {"Contact Name", func(s *State) string { return s.ContactName }, func(s *State, v string) { s.ContactName = v }},
	"contactPhone":     {"Contact Phone", func(s *State) string { return s.ContactPhone }, func(s *State, v string) { s.ContactPhone = v }},
	"contactEmail":     {"Contact Email", func(s *State) string { return s.ContactEmail }, func(s *State, v string) { s.ContactEmail = v }},
	"contactAddress":   {"Contact Address", func(s *State) string { return s.ContactAddress }, func(s *State, v string) { s.ContactAddress = v }},
	"fundedBy":         {"Funded By", func(s *State) string { return s.FundedBy }, func(s *State, v string) { s.FundedBy = v }},

	"executiveSummary": {"Executive Summary", func(s *State) string { return s.ExecutiveSummary }, func(s *State, v string) { s.ExecutiveSummary = v }},

	"communityName":       {"Community Name", func(s *State) string { return s.CommunityName }, func(s *State, v string) { s.CommunityName = v }},
	"population":          {"Population", func(s *State) string { return s.Population }, func(s *State, v string) { s.Population = v }},
	"communityBackground": {"Community Background", func(s *State) string { return s.CommunityBackground }, func(s *State, v string) { s.CommunityBackground = v }},
	"economicBaseline":    {"Economic Baseline", func(s *State) string { return s.EconomicBaseline }, func(s *State, v string) { s.EconomicBaseline = v }},
	"culturalContext":     {"Cultural Context", func(s *State) string { return s.CulturalContext }, func(s *State, v string) { s.CulturalContext = v }},
	"needsChallenges":     {"Needs and Challenges", func(s *State) string { return s.NeedsChallenges }, func(s *State, v string) { s.NeedsChallenges = v }},

	"problemDescription": {"Problem Description", func(s *State) string { return s.ProblemDescription }, func(s *State, v string) { s.ProblemDescription = v }},
	"supportingEvidence": {"Supporting Evidence", func(s *State) string { return s.SupportingEvidence }, func(s *State, v string) { s.SupportingEvidence = v }},

	"objective1":      {"Objective 1", func(s *State) string { return s.Objective1 }, func(s *State, v string) { s.Objective1 = v }},
	"objective2":      {"Objective 2", func(s *State) string { return s.Objective2 }, func(s *State, v string) { s.Objective2 = v }},
	"objective3":      {"Objective 3", func(s *State) string { return s.Objective3 }, func(s *State, v string) { s.Objective3 = v }},
	"year1Activities": {"Year 1 Activities", func(s *State) string { return s.Year1Activities }, func(s *State, v string) { s.Year1Activities = v }},
	"year2Activities": {"Year 2 Activities", func(s *State) string { return s.Year2Activities }, func(s *State, v string) { s.Year2Activities = v }},
	"year3Activities": {"Year 3 Activities", func(s *State) string { return s.Year3Activities }, func(s *State, v string) { s.Year3Activities = v }},

	"totalBudget":           {"Total Budget", func(s *State) string { return s.TotalBudget }, func(s *State, v string) { s.TotalBudget = v }},
	"requestedAmount":       {"Requested Amount", func(s *State) string { return s.RequestedAmount }, func(s *State, v string) { s.RequestedAmount = v }},
	"communityContribution": {"Community Contribution", func(s *State) string { return s.CommunityContribution }, func(s *State, v string) { s.CommunityContribution = v }},
	"personnelBudget":       {"Personnel Budget", func(s *State) string { return s.PersonnelBudget }, func(s *State, v string) { s.PersonnelBudget = v }},
	"equipmentBudget":       {"Equipment Budget", func(s *State) string { return s.EquipmentBudget }, func(s *State, v string) { s.EquipmentBudget = v }},
	"trainingBudget":        {"Training Budget", func(s *State) string { return s.TrainingBudget }, func(s *State, v string) { s.TrainingBudget = v }},
	"marketingBudget":       {"Marketing Budget", func(s *State) string { return s.MarketingBudget }, func(s *State, v string) { s.MarketingBudget = v }},
	"otherBudget":           {"Other Budget", func(s *State) string { return s.OtherBudget }, func(s *State, v string) { s.OtherBudget = v }},
	"sustainabilityPlan":    {"Sustainability Plan", func(s *State) string { return s.SustainabilityPlan }, func(s *State, v string) { s.SustainabilityPlan = v }},

	"expectedOutcomes":   {"Expected Outcomes", func(s *State) string { return s.ExpectedOutcomes }, func(s *State, v string) { s.ExpectedOutcomes = v }},
	"successIndicators":  {"Success Indicators", func(s *State) string { return s.SuccessIndicators }, func(s *State, v string) { s.SuccessIndicators = v }},
	"dataCollectionPlan": {"Data Collection Plan", func(s *State) string { return s.DataCollectionPlan }, func(s *State, v string) { s.DataCollectionPlan = v }},
	"evaluationPlan":     {"Evaluation Plan", func(s *State) string { return s.EvaluationPlan }, func(s *State, v string) { s.EvaluationPlan = v }},

	"communityAlignment":     {"Community Alignment", func(s *State) string { return s.CommunityAlignment }, func(s *State, v string) { s.CommunityAlignment = v }},
	"funderAlignment":        {"Funder Alignment", func(s *State) string { return s.FunderAlignment }, func(s *State, v string) { s.FunderAlignment = v }},
	"longTermSustainability": {"Long-Term Sustainability", func(s *State) string { return s.LongTermSustainability }, func(s *State, v string) { s.LongTermSustainability = v }},

	"risksMitigation": {"Risks and Mitigation", func(s *State) string { return s.RisksMitigation }, func(s *State, v string) { s.RisksMitigation = v }},
}

// KnownField reports whether name is a recognized auto-fill target.
func KnownField(name string) bool {
	_, ok := registry[name]
	return ok
}

// FieldLabel returns the display label for a wire-level field name.
// Unknown names fall back to the raw name so callers always have
// something presentable.
func FieldLabel(name string) string {
	if spec, ok := registry[name]; ok {
		return spec.Label
	}
	return name
}

// FieldValue reads a field by wire name.
func FieldValue(s *State, name string) (string, error) {
	spec, ok := registry[name]
	if !ok {
		return "", fmt.Errorf("unknown proposal field: %s", name)
	}
	return spec.Get(s), nil
}
