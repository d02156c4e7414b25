package llm

import (
	"fmt"
	"strings"
)

// Provider represents the LLM provider type
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderClaude Provider = "claude"
)

// New creates an LLM client for the given provider
func New(provider Provider, opts Options) (LLM, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("%s API key is required", provider)
	}

	switch Provider(strings.ToLower(string(provider))) {
	case ProviderOpenAI:
		return NewOpenAIWithOptions(opts), nil
	case ProviderClaude:
		return NewClaudeWithOptions(opts), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s (supported: openai, claude)", provider)
	}
}
