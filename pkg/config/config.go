package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/ademicho123/post-mortem-analyzer/pkg/llm"
	"github.com/ademicho123/post-mortem-analyzer/pkg/report"
)

// Config carries everything the pipeline needs, resolved once at startup
// and passed by reference. Nothing in the pipeline reads the environment
// after this.
type Config struct {
	Provider    llm.Provider
	Model       string
	APIKey      string
	Temperature float64
	Timeout     time.Duration

	MaxAttempts int
	BackoffMin  time.Duration
	BackoffMax  time.Duration

	Validation report.Mode
}

// Load resolves the configuration from a .env file (if present) and the
// environment. A missing API credential is a startup error.
func Load() (*Config, error) {
	return LoadWithOverrides("", "")
}

// LoadWithOverrides is Load with provider and model forced by the caller,
// typically from CLI flags. Empty overrides fall back to the environment.
func LoadWithOverrides(provider, model string) (*Config, error) {
	// .env is optional; real environment variables win.
	godotenv.Load()

	if provider == "" {
		provider = getEnv("LLM_PROVIDER", string(llm.ProviderOpenAI))
	}
	provider = strings.ToLower(provider)
	if model == "" {
		model = os.Getenv("LLM_MODEL")
	}

	cfg := &Config{
		Provider:    llm.Provider(provider),
		Model:       model,
		Temperature: getEnvFloat("LLM_TEMPERATURE", 0.3),
		Timeout:     time.Duration(getEnvInt("LLM_TIMEOUT_SECONDS", 30)) * time.Second,
		MaxAttempts: getEnvInt("LLM_MAX_ATTEMPTS", 3),
		BackoffMin:  time.Duration(getEnvInt("LLM_BACKOFF_MIN_SECONDS", 4)) * time.Second,
		BackoffMax:  time.Duration(getEnvInt("LLM_BACKOFF_MAX_SECONDS", 10)) * time.Second,
	}

	switch cfg.Provider {
	case llm.ProviderOpenAI:
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY not found in environment variables")
		}
	case llm.ProviderClaude:
		cfg.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY not found in environment variables")
		}
	default:
		return nil, fmt.Errorf("unsupported LLM_PROVIDER: %s (supported: openai, claude)", cfg.Provider)
	}

	switch mode := getEnv("VALIDATION_MODE", string(report.ModeLenient)); report.Mode(mode) {
	case report.ModeStrict, report.ModeLenient:
		cfg.Validation = report.Mode(mode)
	default:
		return nil, fmt.Errorf("unsupported VALIDATION_MODE: %s (supported: strict, lenient)", mode)
	}

	if cfg.MaxAttempts < 1 || cfg.MaxAttempts > 5 {
		return nil, fmt.Errorf("LLM_MAX_ATTEMPTS must be between 1 and 5, got %d", cfg.MaxAttempts)
	}

	return cfg, nil
}

// RetryPolicy builds the retry schedule from the configured bounds.
func (c *Config) RetryPolicy() llm.RetryPolicy {
	return llm.RetryPolicy{
		MaxAttempts: c.MaxAttempts,
		MinDelay:    c.BackoffMin,
		MaxDelay:    c.BackoffMax,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return f
}
