package llm

import (
	"fmt"
	"os"
	"time"

	"github.com/lashon-study/lashon/internal/config"
)

// Provider names accepted in configuration.
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderGemini    = "gemini"
	ProviderMock      = "mock"
)

// Config selects and configures a provider.
type Config struct {
	Provider  string
	Anthropic ProviderConfig
	OpenAI    ProviderConfig
	Gemini    ProviderConfig
	Retry     RetryConfig

	// Timeout bounds one Generate call, retries included.
	Timeout time.Duration
}

// ProviderConfig holds one provider's credentials and model.
type ProviderConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig configures backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultRetry is used when a Config carries a zero RetryConfig.
func DefaultRetry() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Second,
		MaxWait:     10 * time.Second,
		Multiplier:  2.0,
	}
}

// FromTutor converts loaded application settings. An empty provider is
// resolved by Discover.
func FromTutor(t config.Tutor) Config {
	cfg := Config{
		Provider:  t.Provider,
		Anthropic: ProviderConfig(t.Anthropic),
		OpenAI:    ProviderConfig(t.OpenAI),
		Gemini:    ProviderConfig(t.Gemini),
		Retry:     DefaultRetry(),
		Timeout:   t.Timeout,
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Provider == "" {
		cfg.Discover()
	}
	return cfg
}

// Discover picks the first provider with a key, checking configured keys
// and then the vendors' conventional env vars (Gemini, OpenAI, Anthropic).
// It reports whether a provider was found.
func (c *Config) Discover() bool {
	probes := []struct {
		name string
		pc   *ProviderConfig
		env  string
	}{
		{ProviderGemini, &c.Gemini, "GEMINI_API_KEY"},
		{ProviderOpenAI, &c.OpenAI, "OPENAI_API_KEY"},
		{ProviderAnthropic, &c.Anthropic, "ANTHROPIC_API_KEY"},
	}
	for _, p := range probes {
		if p.pc.APIKey != "" {
			c.Provider = p.name
			return true
		}
	}
	for _, p := range probes {
		if k := os.Getenv(p.env); k != "" {
			p.pc.APIKey = k
			c.Provider = p.name
			return true
		}
	}
	return false
}

// Enabled reports whether a provider is selected.
func (c Config) Enabled() bool { return c.Provider != "" }

// Validate checks that the selected provider has a key.
func (c Config) Validate() error {
	var pc ProviderConfig
	switch c.Provider {
	case ProviderAnthropic:
		pc = c.Anthropic
	case ProviderOpenAI:
		pc = c.OpenAI
	case ProviderGemini:
		pc = c.Gemini
	case ProviderMock:
		return nil
	case "":
		return ErrNoProvider
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if pc.APIKey == "" {
		return fmt.Errorf("tutor.%s.api_key is required for the %s provider", c.Provider, c.Provider)
	}
	return nil
}
