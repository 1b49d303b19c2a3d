package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/yfkiwi/voicefirst/cmd/builder_tui"
)

// NewDraftCmd returns the main entry point: the interactive proposal
// builder TUI.
func NewDraftCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "draft",
		Short: "Build a grant proposal interactively with the AI assistant",
		Long: `Opens the interactive proposal builder: a section-by-section form with
an AI assistant panel. Talk or type; the assistant extracts field values
from the conversation and fills the form as you go. The draft is saved
on quit and restored on the next run.`,
		RunE: runDraft,
	}
}

func runDraft(cmd *cobra.Command, args []string) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("the proposal builder needs an interactive terminal; use 'voicefirst chat' instead")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	model := builder_tui.New(builder_tui.Config{
		APIBaseURL: cfg.APIBaseURL,
		VoiceID:    cfg.VoiceID,
		DraftPath:  cfg.DraftPath,
	})

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("proposal builder failed: %w", err)
	}
	return nil
}
