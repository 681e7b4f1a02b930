// Package config resolves application settings from flags, ACADEMY_*
// environment variables, an optional config file and a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/abhisek/academy/internal/llm"
)

// EnvPrefix is the prefix for environment overrides, e.g. ACADEMY_LOG_LEVEL.
const EnvPrefix = "ACADEMY"

// AppConfig is the resolved application configuration.
type AppConfig struct {
	DB      string `mapstructure:"db" yaml:"db"`           // call log database, empty for the XDG default
	Catalog string `mapstructure:"catalog" yaml:"catalog"` // external curriculum YAML, empty for the bundled one
	Log     struct {
		Level string `mapstructure:"level" yaml:"level" validate:"oneof=debug info warn error"`
		File  string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"log" yaml:"log"`
	LLM struct {
		Provider      string        `mapstructure:"provider" yaml:"provider" validate:"omitempty,oneof=gemini anthropic openai openrouter mock"`
		RetryAttempts int           `mapstructure:"retry_attempts" yaml:"retry_attempts" validate:"min=1,max=5"`
		Timeout       time.Duration `mapstructure:"timeout" yaml:"timeout" validate:"min=0"`
	} `mapstructure:"llm" yaml:"llm"`
}

// RegisterFlags adds the persistent flags that map onto config keys.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("db", "", "Path to SQLite call log (overrides ACADEMY_DB)")
	fs.String("catalog", "", "Path to a curriculum YAML file (default: bundled curriculum)")
	fs.String("log-level", "info", "Log level: debug, info, warn, error")
	fs.String("log-file", "", "Log file path (default: $XDG_STATE_HOME/academy/academy.log)")
	fs.String("provider", "", "LLM provider: gemini, anthropic, openai, openrouter, mock")
}

// Load reads .env from the working directory, then resolves config with
// precedence flag > env > config file > default. A missing .env or config
// file is not an error.
func Load(fs *pflag.FlagSet) (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetDefault("log.level", "info")
	v.SetDefault("llm.retry_attempts", 1)
	v.SetDefault("llm.timeout", 30*time.Second)

	if fs != nil {
		bindings := map[string]string{
			"db":           "db",
			"catalog":      "catalog",
			"log.level":    "log-level",
			"log.file":     "log-file",
			"llm.provider": "provider",
		}
		for key, name := range bindings {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if dir, err := configDir(); err == nil {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	cfg := new(AppConfig)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LLMConfig merges the provider settings in cfg over the environment-derived
// provider configuration.
func (c *AppConfig) LLMConfig() (llm.Config, error) {
	base, err := llm.ResolveConfig()
	if c.LLM.Provider != "" && c.LLM.Provider != base.Provider {
		base = llm.ConfigFromEnv()
		base.Provider = c.LLM.Provider
		err = base.Validate()
	}
	if c.LLM.RetryAttempts > 0 {
		base.Retry.MaxAttempts = c.LLM.RetryAttempts
	}
	if c.LLM.Timeout > 0 {
		base.Timeout = c.LLM.Timeout
	}
	return base, err
}

// Validate reports every invalid field in one error.
func (c *AppConfig) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("yaml")
		if name == "-" {
			return ""
		}
		return name
	})

	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate config: %w", err)
	}

	var msg []string
	for _, field := range verrs {
		namespace := field.Namespace()
		name := namespace[strings.IndexByte(namespace, '.')+1:]
		switch field.Tag() {
		case "oneof":
			msg = append(msg, fmt.Sprintf("%s must be one of (%s)", name, field.Param()))
		case "min", "max":
			msg = append(msg, fmt.Sprintf("%s must be %s %s", name, field.Tag(), field.Param()))
		default:
			msg = append(msg, fmt.Sprintf("%s is invalid", name))
		}
	}
	return fmt.Errorf("invalid config:\n%s", strings.Join(msg, "\n"))
}

func configDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "academy"), nil
}
