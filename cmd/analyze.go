package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ademicho123/post-mortem-analyzer/pkg/analyzer"
	"github.com/ademicho123/post-mortem-analyzer/pkg/config"
	"github.com/ademicho123/post-mortem-analyzer/pkg/formatter"
	"github.com/ademicho123/post-mortem-analyzer/pkg/report"
)

var (
	llmProvider  string
	llmModel     string
	outputFormat string
	noCache      bool
	verbose      bool
)

func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze FILE",
		Short: "Analyze a post-mortem data file with AI assistance",
		Long: `Analyze free-form post-mortem lesson lines using AI to group them into
common themes and produce a summary with observations and recommendations.

Examples:
  # Analyze a lessons file
  post-mortem-analyzer analyze lessons.txt

  # Use Claude instead of OpenAI
  post-mortem-analyzer analyze lessons.txt --provider claude

  # Machine-readable output
  post-mortem-analyzer analyze lessons.txt -o json

  # Skip the local result cache
  post-mortem-analyzer analyze lessons.txt --no-cache`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().StringVar(&llmProvider, "provider", "", "LLM provider (openai, claude); overrides LLM_PROVIDER")
	cmd.Flags().StringVar(&llmModel, "model", "", "Model identifier; overrides LLM_MODEL")
	cmd.Flags().StringVarP(&outputFormat, "output", "o", "human", "Output format (human, json, yaml)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Bypass the local result cache")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output (includes error debug info)")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := args[0]

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}
	lines := splitLines(string(content))
	if len(lines) == 0 {
		return fmt.Errorf("input file is empty")
	}

	cfg, err := config.LoadWithOverrides(llmProvider, llmModel)
	if err != nil {
		return err
	}

	logger := zap.NewNop()
	if verbose {
		logger, err = zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer logger.Sync()
	}

	// Finished reports are memoized by exact input content, like the
	// original tool's per-upload cache.
	cacheKey := resultKey(content, cfg)
	if !noCache {
		if cached, ok := loadCachedReport(cacheKey); ok {
			printSuccess("Loaded cached analysis")
			return formatter.DisplayReport(cached, outputFormat)
		}
	}

	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond)
	s.Suffix = " Analyzing post-mortem data (this may take a minute)..."
	s.Start()

	start := time.Now()
	a, err := analyzer.NewFromConfig(cfg, logger)
	if err != nil {
		s.Stop()
		return err
	}

	rep, analyzeErr := a.Analyze(context.Background(), lines)
	s.Stop()

	if analyzeErr != nil {
		var aerr *report.AnalysisError
		if errors.As(analyzeErr, &aerr) {
			formatter.DisplayError(aerr, outputFormat, verbose)
			os.Exit(1)
		}
		return analyzeErr
	}

	printSuccess(fmt.Sprintf("Analysis completed in %.1f seconds", time.Since(start).Seconds()))

	if !noCache {
		storeCachedReport(cacheKey, rep)
	}
	return formatter.DisplayReport(rep, outputFormat)
}

// splitLines mirrors a plain line split of the uploaded file, dropping a
// single trailing empty line from a final newline.
func splitLines(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.TrimSuffix(content, "\n")
	if strings.TrimSpace(content) == "" {
		return nil
	}
	return strings.Split(content, "\n")
}

func printSuccess(message string) {
	green := color.New(color.FgGreen)
	green.Printf("✓ %s\n", message)
}
