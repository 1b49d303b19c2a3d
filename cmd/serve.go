package cmd

import (
	"github.com/spf13/cobra"

	"github.com/yfkiwi/voicefirst/pkg/mockbackend"
)

var serveAddr string

// NewServeCmd returns the local development backend command.
func NewServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a local mock of the proposal backend",
		Long: `Runs a local HTTP server implementing the proposal backend endpoints
with deterministic canned responses. Point the client at it with
VOICEFIRST_API_BASE_URL=http://127.0.0.1:8000/api to work offline.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return mockbackend.Run(serveAddr)
		},
	}
	serveCmd.Flags().StringVar(&serveAddr, "addr", "127.0.0.1:8000", "Listen address")
	return serveCmd
}
