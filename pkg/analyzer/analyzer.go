package analyzer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ademicho123/post-mortem-analyzer/pkg/config"
	"github.com/ademicho123/post-mortem-analyzer/pkg/llm"
	"github.com/ademicho123/post-mortem-analyzer/pkg/parser"
	"github.com/ademicho123/post-mortem-analyzer/pkg/prompts"
	"github.com/ademicho123/post-mortem-analyzer/pkg/report"
)

// previewLimit bounds how much raw response text goes into the logs.
const previewLimit = 200

// Analyzer runs the full reliability pipeline: prompt, bounded-retry
// invocation, normalization, parse-with-repair, validation, assembly.
type Analyzer struct {
	llm   llm.LLM
	retry llm.RetryPolicy
	mode  report.Mode
	log   *zap.Logger
}

// NewFromConfig builds an Analyzer with a real provider client.
func NewFromConfig(cfg *config.Config, logger *zap.Logger) (*Analyzer, error) {
	client, err := llm.New(cfg.Provider, llm.Options{
		APIKey:      cfg.APIKey,
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
		Timeout:     cfg.Timeout,
	})
	if err != nil {
		return nil, err
	}
	return NewWithLLM(client, cfg.RetryPolicy(), cfg.Validation, logger), nil
}

// NewWithLLM wires an Analyzer around an existing client. Tests inject
// fakes here.
func NewWithLLM(client llm.LLM, policy llm.RetryPolicy, mode report.Mode, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if mode == "" {
		mode = report.ModeLenient
	}
	return &Analyzer{llm: client, retry: policy, mode: mode, log: logger}
}

// Analyze turns raw post-mortem lines into a Report. Every failure comes
// back as a *report.AnalysisError; nothing escapes this boundary, panics
// included.
func (a *Analyzer) Analyze(ctx context.Context, lines []string) (rep *report.Report, err error) {
	defer func() {
		if r := recover(); r != nil {
			rep = nil
			err = &report.AnalysisError{Message: fmt.Sprintf("internal error: %v", r)}
		}
	}()

	if len(lines) == 0 {
		return nil, &report.AnalysisError{Message: "No input data provided"}
	}

	prompt := prompts.BuildLessonsPrompt(lines)

	policy := a.retry
	policy.Notify = func(attempt int, attemptErr error, delay time.Duration) {
		a.log.Warn("model invocation failed, retrying",
			zap.String("model", a.llm.GetModel()),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", delay),
			zap.Error(attemptErr))
	}

	raw, invokeErr := policy.Do(ctx, func() (string, error) {
		return a.llm.Chat(ctx, prompts.SystemPrompt, prompt)
	})
	if invokeErr != nil {
		return nil, &report.AnalysisError{Message: fmt.Sprintf("LLM API error: %v", invokeErr)}
	}
	a.log.Info("model response received",
		zap.String("model", a.llm.GetModel()),
		zap.String("preview", preview(raw)))

	candidate := parser.Normalize(raw)
	parsed, parseErr := parser.Parse(candidate)
	if parseErr != nil {
		var pe *parser.ParseError
		if errors.As(parseErr, &pe) {
			return nil, &report.AnalysisError{
				Message:   "LLM returned invalid JSON format",
				DebugInfo: fmt.Sprintf("%s\n%s", pe.Reason, pe.Snippet),
			}
		}
		return nil, &report.AnalysisError{Message: parseErr.Error()}
	}

	rep, assembleErr := report.Assemble(parsed, a.mode)
	if assembleErr != nil {
		return nil, &report.AnalysisError{Message: assembleErr.Error()}
	}
	return rep, nil
}

func preview(s string) string {
	if len(s) > previewLimit {
		return s[:previewLimit]
	}
	return s
}
