package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ademicho123/post-mortem-analyzer/cmd"
)

var (
	version = "v0.1.0" // Overwritten at build time
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "post-mortem-analyzer",
		Short: "AI-powered post-mortem analysis",
		Long: `post-mortem-analyzer uses AI to group free-form post-mortem lesson lines
into common themes and produce a summary with observations and
recommendations.`,
		SilenceUsage: true,
	}

	// Disable automatic 'completion' command added by cobra
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// Add subcommands
	rootCmd.AddCommand(
		cmd.NewAnalyzeCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("post-mortem-analyzer version %s\n", version)
		},
	}
}
