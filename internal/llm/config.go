package llm

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all model provider configuration.
type Config struct {
	// Provider selects which provider to use.
	// Values: "anthropic", "openai", "gemini", "openrouter", "mock"
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig
	Breaker    BreakerConfig
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional. Override for compatible APIs.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-flash"
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "google/gemini-2.0-flash-001"
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// RetryConfig configures retry behavior for transient failures.
// MaxAttempts of 1 disables retries.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// BreakerConfig configures the circuit breaker in front of the provider.
type BreakerConfig struct {
	// Enabled turns the breaker on. Off for the mock provider.
	Enabled bool

	// FailureThreshold is the number of consecutive failures that opens
	// the circuit.
	FailureThreshold uint32

	// OpenTimeout is how long the circuit stays open before a probe
	// request is let through.
	OpenTimeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: "gemini",
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		OpenRouter: OpenRouterConfig{
			Model: "google/gemini-2.0-flash-001",
		},
		Retry: RetryConfig{
			MaxAttempts: 1,
			InitialWait: 1 * time.Second,
			MaxWait:     5 * time.Second,
			Multiplier:  2.0,
		},
		Breaker: BreakerConfig{
			Enabled:          true,
			FailureThreshold: 3,
			OpenTimeout:      60 * time.Second,
		},
	}
}

// providerFields points at the key and model settings of one provider.
type providerFields struct {
	name string
	// discoverEnv is the vendor's conventional key variable.
	discoverEnv string
	key         func(*Config) *string
	model       func(*Config) *string
}

// providers is listed in discovery priority order.
var providers = []providerFields{
	{"gemini", "GEMINI_API_KEY", func(c *Config) *string { return &c.Gemini.APIKey }, func(c *Config) *string { return &c.Gemini.Model }},
	{"openai", "OPENAI_API_KEY", func(c *Config) *string { return &c.OpenAI.APIKey }, func(c *Config) *string { return &c.OpenAI.Model }},
	{"anthropic", "ANTHROPIC_API_KEY", func(c *Config) *string { return &c.Anthropic.APIKey }, func(c *Config) *string { return &c.Anthropic.Model }},
	{"openrouter", "OPENROUTER_API_KEY", func(c *Config) *string { return &c.OpenRouter.APIKey }, func(c *Config) *string { return &c.OpenRouter.Model }},
}

func lookupProvider(name string) (providerFields, bool) {
	for _, p := range providers {
		if p.name == name {
			return p, true
		}
	}
	return providerFields{}, false
}

// envPrefix is ARENA_<PROVIDER>_, e.g. ARENA_OPENAI_.
func (p providerFields) envPrefix() string {
	return "ARENA_" + strings.ToUpper(p.name) + "_"
}

// ConfigFromEnv builds a Config from ARENA_* environment variables:
// ARENA_LLM_PROVIDER, ARENA_<PROVIDER>_API_KEY, ARENA_<PROVIDER>_MODEL,
// ARENA_OPENAI_BASE_URL and ARENA_LLM_MAX_ATTEMPTS. Unset values keep
// their defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	setFromEnv(&cfg.Provider, "ARENA_LLM_PROVIDER")
	for _, p := range providers {
		setFromEnv(p.key(&cfg), p.envPrefix()+"API_KEY")
		setFromEnv(p.model(&cfg), p.envPrefix()+"MODEL")
	}
	setFromEnv(&cfg.OpenAI.BaseURL, "ARENA_OPENAI_BASE_URL")

	if n, err := strconv.Atoi(os.Getenv("ARENA_LLM_MAX_ATTEMPTS")); err == nil && n > 0 {
		cfg.Retry.MaxAttempts = n
	}
	return cfg
}

func setFromEnv(dst *string, name string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}

// DiscoverConfig picks the first provider whose conventional key variable
// is set, trying Gemini, OpenAI, Anthropic and OpenRouter in turn. ok is
// false when none is set.
func DiscoverConfig() (cfg Config, ok bool) {
	for _, p := range providers {
		k := os.Getenv(p.discoverEnv)
		if k == "" {
			continue
		}
		cfg = DefaultConfig()
		cfg.Provider = p.name
		*p.key(&cfg) = k
		return cfg, true
	}
	return Config{}, false
}

// WithModel returns a copy of c with the selected provider's model
// replaced. An empty model leaves c unchanged.
func (c Config) WithModel(model string) Config {
	if p, ok := lookupProvider(c.Provider); ok && model != "" {
		*p.model(&c) = model
	}
	return c
}

// Validate checks that the selected provider has its API key.
func (c Config) Validate() error {
	if c.Provider == "mock" {
		return nil
	}
	p, ok := lookupProvider(c.Provider)
	if !ok {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if *p.key(&c) == "" {
		return fmt.Errorf("%sAPI_KEY is required for the %s provider", p.envPrefix(), p.name)
	}
	return nil
}
