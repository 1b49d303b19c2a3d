package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/yfkiwi/voicefirst/pkg/gateway"
	"github.com/yfkiwi/voicefirst/pkg/proposal"
)

// NewSubmitCmd returns the submit command: assemble the saved draft
// into a submission payload and post it to the backend.
func NewSubmitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "submit",
		Short: "Submit the saved proposal draft to the backend",
		RunE:  runSubmit,
	}
}

func runSubmit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	state, err := proposal.LoadDraft(cfg.DraftPath)
	if err != nil {
		return fmt.Errorf("failed to load draft: %w", err)
	}
	if state.ProjectTitle == "" || state.OrganizationName == "" {
		return fmt.Errorf("draft is missing a project title or organization name; run 'voicefirst draft' first")
	}

	client := gateway.NewClient(cfg.APIBaseURL)
	receipt, err := client.SubmitProposal(cmd.Context(), buildPayload(state))
	if err != nil {
		return fmt.Errorf("submission failed: %w", err)
	}

	color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ %s\n", receipt.Message)
	fmt.Fprintf(cmd.OutOrStdout(), "Proposal ID: %s\n", receipt.ProposalID)
	return nil
}

// buildPayload flattens the proposal state into the backend's
// submission shape. Empty objectives and milestones are omitted.
func buildPayload(state proposal.State) gateway.ProposalPayload {
	var objectives []string
	for _, obj := range []string{state.Objective1, state.Objective2, state.Objective3} {
		if strings.TrimSpace(obj) != "" {
			objectives = append(objectives, obj)
		}
	}

	var milestones []string
	for _, m := range state.Milestones {
		if strings.TrimSpace(m.Name) == "" {
			continue
		}
		if m.Date != "" {
			milestones = append(milestones, m.Name+" ("+m.Date+")")
		} else {
			milestones = append(milestones, m.Name)
		}
	}

	return gateway.ProposalPayload{
		ProjectTitle:        state.ProjectTitle,
		OrganizationName:    state.OrganizationName,
		SubmissionDate:      state.SubmissionDate,
		ExecutiveSummary:    state.ExecutiveSummary,
		CommunityBackground: state.CommunityBackground,
		ProblemDescription:  state.ProblemDescription,
		Objectives:          objectives,
		Milestones:          milestones,
		RequestedAmount:     state.RequestedAmount,
		Risks:               state.RisksMitigation,
	}
}
