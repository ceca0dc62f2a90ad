// Package cmd wires the CLI commands: serve runs the HTTP API, ask answers a
// single question, suggest completes a draft, fetch and index run the offline
// data pipeline.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "agrisearch",
	Short: "agrisearch - 작물 재배 질문 답변 API",
	Long: `agrisearch answers crop cultivation questions over a vector index of
monthly farm-tech articles.

Run "agrisearch serve" to start the HTTP API, or "agrisearch ask" for a
one-shot answer. "fetch" and "index" build the knowledge base.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
