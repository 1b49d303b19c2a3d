// Package cmd wires up the voicefirst CLI.
package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yfkiwi/voicefirst/pkg/config"
)

var rootVerbose bool

// NewRootCmd builds the voicefirst root command with all subcommands
// attached.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "voicefirst",
		Short: "Voice-first grant proposal builder",
		Long: `voicefirst guides community organizations through drafting a grant
proposal with an AI assistant. Work through the proposal sections in an
interactive TUI, get drafts analyzed and scored, and submit the finished
proposal to the backend.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if rootVerbose {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.WarnLevel)
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(NewDraftCmd())
	rootCmd.AddCommand(NewChatCmd())
	rootCmd.AddCommand(NewAnalyzeCmd())
	rootCmd.AddCommand(NewSubmitCmd())
	rootCmd.AddCommand(NewServeCmd())
	rootCmd.AddCommand(NewVersionCmd())
	return rootCmd
}

// loadConfig is the shared config entry point for subcommands.
func loadConfig() (*config.Config, error) {
	return config.Load()
}
