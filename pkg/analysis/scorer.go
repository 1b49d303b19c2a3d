// Package analysis turns the backend's raw draft-analysis payload
// into a display-ready scored breakdown.
package analysis

import (
	"math"
	"strings"

	"github.com/yfkiwi/voicefirst/pkg/gateway"
)

// Status buckets a section score.
type Status string

const (
	StatusExcellent        Status = "excellent"
	StatusGood             Status = "good"
	StatusNeedsImprovement Status = "needs-improvement"
	StatusMissing          Status = "missing"
)

// Scores in [0,100]; a section with no score defaults to defaultScore,
// and an empty analysis defaults the overall score to neutralScore as
// a placeholder policy.
const (
	defaultScore = 65
	neutralScore = 60
)

// MaxImprovements is how many improvement tips callers should display.
const MaxImprovements = 4

// SectionScore is one scored section of the report.
type SectionScore struct {
	Name     string
	Score    int
	Status   Status
	Feedback string
}

// Report is the presentation model for a draft analysis.
type Report struct {
	OverallScore int
	Sections     []SectionScore
	Strengths    []string
	Improvements []string
}

// BuildReport transforms the raw analysis into a Report. Scores are
// clamped to [0,100] and bucketed; the overall score is the rounded
// mean of section scores.
func BuildReport(payload []gateway.DraftAnalysis) Report {
	if len(payload) == 0 {
		return Report{OverallScore: neutralScore}
	}

	report := Report{}
	total := 0

	for _, item := range payload {
		raw := float64(defaultScore)
		if item.Score != nil {
			raw = *item.Score
		}
		score := clamp(int(math.Round(raw)), 0, 100)

		section := SectionScore{
			Name:     FormatSectionName(item.Section),
			Score:    score,
			Status:   bucket(score),
			Feedback: item.Summary,
		}
		report.Sections = append(report.Sections, section)
		total += score

		if score >= 80 && strings.TrimSpace(section.Feedback) != "" {
			report.Strengths = append(report.Strengths, section.Name+": "+section.Feedback)
		}

		for _, tip := range item.Recommendations {
			tip = strings.TrimSpace(tip)
			if tip != "" {
				report.Improvements = append(report.Improvements, tip)
			}
		}
	}

	report.OverallScore = int(math.Round(float64(total) / float64(len(report.Sections))))
	return report
}

func bucket(score int) Status {
	switch {
	case score >= 85:
		return StatusExcellent
	case score >= 65:
		return StatusGood
	case score >= 50:
		return StatusNeedsImprovement
	default:
		return StatusMissing
	}
}

// FormatSectionName turns a raw section key like "executive_summary"
// into a human title like "Executive Summary".
func FormatSectionName(raw string) string {
	cleaned := strings.NewReplacer("_", " ", "-", " ").Replace(raw)
	words := strings.Fields(cleaned)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
