package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/yfkiwi/voicefirst/pkg/analysis"
	"github.com/yfkiwi/voicefirst/pkg/gateway"
)

// NewAnalyzeCmd returns the draft analysis command: upload a draft
// document, score it section by section, and print a report.
func NewAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <draft-file>",
		Short: "Analyze and score a proposal draft",
		Long: `Uploads a draft proposal document to the backend for analysis and
prints per-section scores, strengths, and suggested improvements.`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyze,
	}
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path := args[0]
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open draft file: %w", err)
	}
	defer file.Close()

	client := gateway.NewClient(cfg.APIBaseURL)
	results, err := client.AnalyzeDraft(cmd.Context(), filepath.Base(path), file)
	if err != nil {
		return fmt.Errorf("draft analysis failed: %w", err)
	}

	report := analysis.BuildReport(results)
	printReport(cmd, report)
	return nil
}

func printReport(cmd *cobra.Command, report analysis.Report) {
	out := cmd.OutOrStdout()
	bold := color.New(color.Bold)

	bold.Fprintf(out, "Overall score: %d/100\n\n", report.OverallScore)

	for _, section := range report.Sections {
		statusColor := color.New(color.FgRed)
		switch section.Status {
		case analysis.StatusExcellent:
			statusColor = color.New(color.FgGreen)
		case analysis.StatusGood:
			statusColor = color.New(color.FgCyan)
		case analysis.StatusNeedsImprovement:
			statusColor = color.New(color.FgYellow)
		}
		fmt.Fprintf(out, "  %-28s %3d  ", section.Name, section.Score)
		statusColor.Fprintf(out, "%s\n", section.Status)
		if section.Feedback != "" {
			fmt.Fprintf(out, "      %s\n", section.Feedback)
		}
	}

	if len(report.Strengths) > 0 {
		bold.Fprintln(out, "\nStrengths")
		for _, s := range report.Strengths {
			color.New(color.FgGreen).Fprintf(out, "  + %s\n", s)
		}
	}

	improvements := report.Improvements
	if len(improvements) > analysis.MaxImprovements {
		improvements = improvements[:analysis.MaxImprovements]
	}
	if len(improvements) > 0 {
		bold.Fprintln(out, "\nSuggested improvements")
		for _, s := range improvements {
			color.New(color.FgYellow).Fprintf(out, "  - %s\n", s)
		}
	}
}
