// Package main is the entry point for the voicebridge relay server.
//
// Usage:
//
//	voicebridge [flags] <command>
//
// Commands:
//
//	serve      - Run the relay server (WebSocket clients <-> Azure OpenAI Realtime)
//	version    - Show version information
package main

import (
	"fmt"
	"os"

	"github.com/voicebridge/voicebridge/cmd/voicebridge/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
