package commands

import (
	"github.com/spf13/cobra"
)

// Global flags.
var verbose bool

var rootCmd = &cobra.Command{
	Use:   "voicebridge",
	Short: "Realtime voice relay for Azure OpenAI",
	Long: `voicebridge - relay server between browser WebSocket clients and the
Azure OpenAI Realtime API.

Each connected client gets its own upstream realtime session. The relay
translates vendor events into a stable client protocol, handles
tool-call acknowledgment, and serves the voice configuration catalog.

Upstream credentials are read from environment variables (a .env file
in the working directory is loaded automatically):
  AZURE_OPENAI_ENDPOINT      resource endpoint (required)
  AZURE_OPENAI_API_KEY       API key (required)
  AZURE_OPENAI_DEPLOYMENT    deployment name (default gpt-4o-realtime-preview)
  AZURE_OPENAI_API_VERSION   API version (default 2024-10-01-preview)

Examples:
  voicebridge serve
  voicebridge serve --addr :9000 --config voicebridge.yaml`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// IsVerbose returns whether verbose mode is enabled.
func IsVerbose() bool {
	return verbose
}
