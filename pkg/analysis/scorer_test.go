package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yfkiwi/voicefirst/pkg/gateway"
)

func score(v float64) *float64 { return &v }

func TestBuildReportOverallIsRoundedMean(t *testing.T) {
	report := BuildReport([]gateway.DraftAnalysis{
		{Section: "executive_summary", Summary: "strong opener", Score: score(90)},
		{Section: "problem_statement", Summary: "decent", Score: score(70)},
		{Section: "budget_overview", Summary: "thin", Score: score(40)},
	})

	// (90+70+40)/3 = 66.67, rounded to 67.
	assert.Equal(t, 67, report.OverallScore)
	require.Len(t, report.Sections, 3)
	assert.Equal(t, StatusExcellent, report.Sections[0].Status)
	assert.Equal(t, StatusGood, report.Sections[1].Status)
	assert.Equal(t, StatusMissing, report.Sections[2].Status)
}

func TestBuildReportEmptyPayload(t *testing.T) {
	report := BuildReport(nil)
	assert.Equal(t, 60, report.OverallScore)
	assert.Empty(t, report.Sections)
	assert.Empty(t, report.Strengths)
	assert.Empty(t, report.Improvements)
}

func TestBuildReportClampsAndDefaults(t *testing.T) {
	report := BuildReport([]gateway.DraftAnalysis{
		{Section: "a", Score: score(140)},
		{Section: "b", Score: score(-20)},
		{Section: "c"}, // no score
	})

	assert.Equal(t, 100, report.Sections[0].Score)
	assert.Equal(t, 0, report.Sections[1].Score)
	assert.Equal(t, 65, report.Sections[2].Score, "missing score defaults")
}

func TestBucketBoundaries(t *testing.T) {
	tests := []struct {
		score int
		want  Status
	}{
		{100, StatusExcellent},
		{85, StatusExcellent},
		{84, StatusGood},
		{65, StatusGood},
		{64, StatusNeedsImprovement},
		{50, StatusNeedsImprovement},
		{49, StatusMissing},
		{0, StatusMissing},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, bucket(tt.score), "score %d", tt.score)
	}
}

func TestStrengthsRequireScoreAndFeedback(t *testing.T) {
	report := BuildReport([]gateway.DraftAnalysis{
		{Section: "executive_summary", Summary: "compelling and concise", Score: score(90)},
		{Section: "timeline", Summary: "   ", Score: score(95)},
		{Section: "budget_overview", Summary: "needs work", Score: score(45)},
	})

	require.Len(t, report.Strengths, 1)
	assert.Equal(t, "Executive Summary: compelling and concise", report.Strengths[0])
}

func TestImprovementsFlattenedAndTrimmed(t *testing.T) {
	report := BuildReport([]gateway.DraftAnalysis{
		{Section: "a", Recommendations: []string{" add data ", "", "cite sources"}, Score: score(70)},
		{Section: "b", Recommendations: []string{"break down budget"}, Score: score(70)},
	})

	assert.Equal(t, []string{"add data", "cite sources", "break down budget"}, report.Improvements)
}

func TestFormatSectionName(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"executive_summary", "Executive Summary"},
		{"budget-overview", "Budget Overview"},
		{"timeline", "Timeline"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatSectionName(tt.raw))
	}
}
