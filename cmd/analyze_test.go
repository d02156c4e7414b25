package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ademicho123/post-mortem-analyzer/pkg/config"
	"github.com/ademicho123/post-mortem-analyzer/pkg/llm"
	"github.com/ademicho123/post-mortem-analyzer/pkg/report"
)

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitLines("a\nb\n"))
	assert.Equal(t, []string{"a", "", "b"}, splitLines("a\n\nb"))
	assert.Equal(t, []string{"a", "b"}, splitLines("a\r\nb\r\n"))
	assert.Nil(t, splitLines(""))
	assert.Nil(t, splitLines("\n\n"))
}

func TestResultKeyIsStablePerContentAndSettings(t *testing.T) {
	cfg := &config.Config{Provider: llm.ProviderOpenAI, Model: "gpt-4", Validation: report.ModeLenient}

	first := resultKey([]byte("lesson one\nlesson two"), cfg)
	second := resultKey([]byte("lesson one\nlesson two"), cfg)
	assert.Equal(t, first, second)

	assert.NotEqual(t, first, resultKey([]byte("different content"), cfg))

	strictCfg := &config.Config{Provider: llm.ProviderOpenAI, Model: "gpt-4", Validation: report.ModeStrict}
	assert.NotEqual(t, first, resultKey([]byte("lesson one\nlesson two"), strictCfg))
}
