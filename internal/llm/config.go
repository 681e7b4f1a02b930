package llm

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config selects a backend and carries the settings of every backend.
type Config struct {
	// Provider is one of "gemini", "anthropic", "openai", "openrouter" or
	// "mock".
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds one Generate call, retries included. Zero disables it.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string // compatible endpoints
}

type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string // proxy or test endpoint
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string // vendor/model
	BaseURL string
}

// RetryConfig shapes WithRetry. MaxAttempts of 1 disables retries.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig selects Gemini with a single attempt per call and a 30s
// timeout.
func DefaultConfig() Config {
	return Config{
		Provider:   "gemini",
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.5-flash"},
		Retry: RetryConfig{
			MaxAttempts: 1,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 30 * time.Second,
	}
}

// backend describes where a provider's settings come from. The order of
// backends is the discovery order.
type backend struct {
	name   string
	env    string   // ACADEMY_<env>_API_KEY, _MODEL, _BASE_URL
	vendor []string // conventional key variables, most specific first
	fields func(*Config) (key, model, baseURL *string)
}

var backends = []backend{
	{"gemini", "GEMINI", []string{"GEMINI_API_KEY"}, func(c *Config) (*string, *string, *string) {
		return &c.Gemini.APIKey, &c.Gemini.Model, &c.Gemini.BaseURL
	}},
	{"openai", "OPENAI", []string{"OPENAI_API_KEY"}, func(c *Config) (*string, *string, *string) {
		return &c.OpenAI.APIKey, &c.OpenAI.Model, &c.OpenAI.BaseURL
	}},
	{"anthropic", "ANTHROPIC", []string{"ANTHROPIC_API_KEY"}, func(c *Config) (*string, *string, *string) {
		return &c.Anthropic.APIKey, &c.Anthropic.Model, nil
	}},
	{"openrouter", "OPENROUTER", []string{"OPENROUTER_API_KEY"}, func(c *Config) (*string, *string, *string) {
		return &c.OpenRouter.APIKey, &c.OpenRouter.Model, &c.OpenRouter.BaseURL
	}},
}

func lookupBackend(name string) (backend, bool) {
	for _, b := range backends {
		if b.name == name {
			return b, true
		}
	}
	return backend{}, false
}

func setFromEnv(dst *string, key string) {
	if dst == nil {
		return
	}
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// ConfigFromEnv reads ACADEMY_* variables over the defaults. The bare
// API_KEY variable is accepted as the Gemini key when
// ACADEMY_GEMINI_API_KEY is unset.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	setFromEnv(&cfg.Provider, "ACADEMY_LLM_PROVIDER")
	setFromEnv(&cfg.Gemini.APIKey, "API_KEY")

	for _, b := range backends {
		key, model, baseURL := b.fields(&cfg)
		prefix := "ACADEMY_" + b.env
		setFromEnv(key, prefix+"_API_KEY")
		setFromEnv(model, prefix+"_MODEL")
		setFromEnv(baseURL, prefix+"_BASE_URL")
	}

	if n, err := strconv.Atoi(os.Getenv("ACADEMY_LLM_RETRY_ATTEMPTS")); err == nil && n > 0 {
		cfg.Retry.MaxAttempts = n
	}
	if d, err := time.ParseDuration(os.Getenv("ACADEMY_LLM_TIMEOUT")); err == nil && d > 0 {
		cfg.Timeout = d
	}
	return cfg
}

// DiscoverConfig picks the first backend whose conventional key variable
// (GEMINI_API_KEY, OPENAI_API_KEY, ...) is set.
func DiscoverConfig() (Config, bool) {
	for _, b := range backends {
		for _, name := range b.vendor {
			v := os.Getenv(name)
			if v == "" {
				continue
			}
			cfg := DefaultConfig()
			cfg.Provider = b.name
			key, _, _ := b.fields(&cfg)
			*key = v
			return cfg, true
		}
	}
	return Config{}, false
}

// ResolveConfig prefers a complete ACADEMY_* configuration and falls back
// to discovery. Retry and timeout settings from the environment carry
// over to a discovered backend.
func ResolveConfig() (Config, error) {
	cfg := ConfigFromEnv()
	err := cfg.Validate()
	if err == nil {
		return cfg, nil
	}
	found, ok := DiscoverConfig()
	if !ok {
		return cfg, err
	}
	found.Retry = cfg.Retry
	found.Timeout = cfg.Timeout
	return found, nil
}

// Validate checks the selected backend has a key.
func (c Config) Validate() error {
	if c.Provider == "mock" {
		return nil
	}
	b, ok := lookupBackend(c.Provider)
	if !ok {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key, _, _ := b.fields(&c); *key != "" {
		return nil
	}
	if b.name == "gemini" {
		return fmt.Errorf("API_KEY or ACADEMY_GEMINI_API_KEY is required for the gemini provider")
	}
	return fmt.Errorf("ACADEMY_%s_API_KEY is required for the %s provider", b.env, b.name)
}
