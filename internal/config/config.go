// Package config loads application settings from an optional YAML file,
// an optional .env file, and LASHON_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrMissingTelegramToken is returned by ValidateBot when no bot token is set.
var ErrMissingTelegramToken = errors.New("telegram token is required (LASHON_TELEGRAM_TOKEN or TELEGRAM_API_TOKEN)")

// Config holds application configuration.
type Config struct {
	Env      string   `mapstructure:"env"` // local, dev, production
	Store    Store    `mapstructure:"store"`
	Log      Log      `mapstructure:"log"`
	Quiz     Quiz     `mapstructure:"quiz"`
	Vocab    Vocab    `mapstructure:"vocab"`
	Tutor    Tutor    `mapstructure:"tutor"`
	Telegram Telegram `mapstructure:"telegram"`
}

// Store selects the database backend.
type Store struct {
	Driver string `mapstructure:"driver"` // sqlite or postgres
	DSN    string `mapstructure:"dsn"`    // file path for sqlite, URL for postgres
}

// Log configures the zap logger.
type Log struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"` // empty logs to stderr, except in the TUI
}

// Quiz holds round sizes.
type Quiz struct {
	DailyCount          int `mapstructure:"daily_count"`
	PlacementVocabCount int `mapstructure:"placement_vocab_count"`
	MatchRounds         int `mapstructure:"match_rounds"`
}

// Vocab points at an external dataset.
type Vocab struct {
	Path string `mapstructure:"path"` // empty uses the bundled words
}

// Tutor configures the optional LLM explainer.
type Tutor struct {
	Provider  string        `mapstructure:"provider"` // anthropic, openai, gemini, mock, or empty for auto-discovery
	Timeout   time.Duration `mapstructure:"timeout"`
	Anthropic Provider      `mapstructure:"anthropic"`
	OpenAI    Provider      `mapstructure:"openai"`
	Gemini    Provider      `mapstructure:"gemini"`
}

// Provider holds one LLM provider's credentials.
type Provider struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// Telegram configures the bot front end.
type Telegram struct {
	Token         string `mapstructure:"token"`
	AllowedChatID int64  `mapstructure:"allowed_chat_id"` // 0 serves every chat
	PollTimeout   int    `mapstructure:"poll_timeout"`    // seconds
	Debug         bool   `mapstructure:"debug"`
}

// Options adjusts where Load looks.
type Options struct {
	File    string // explicit config file; skips the search path
	EnvFile string // .env path; default ".env"
}

// Load reads configuration. A missing config file or .env is not an error.
func Load(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	v := viper.New()
	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		if dir, err := configDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	setDefaults(v)

	v.SetEnvPrefix("LASHON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Conventional names used by other tools.
	_ = v.BindEnv("telegram.token", "LASHON_TELEGRAM_TOKEN", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("store.dsn", "LASHON_STORE_DSN", "DATABASE_URL")
	_ = v.BindEnv("env", "LASHON_ENV", "APP_ENV")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")

	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.dsn", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	v.SetDefault("quiz.daily_count", 5)
	v.SetDefault("quiz.placement_vocab_count", 8)
	v.SetDefault("quiz.match_rounds", 10)

	v.SetDefault("vocab.path", "")

	v.SetDefault("tutor.provider", "")
	v.SetDefault("tutor.timeout", "30s")
	v.SetDefault("tutor.anthropic.api_key", "")
	v.SetDefault("tutor.anthropic.model", "claude-haiku-4-5")
	v.SetDefault("tutor.anthropic.base_url", "")
	v.SetDefault("tutor.openai.api_key", "")
	v.SetDefault("tutor.openai.model", "gpt-4o-mini")
	v.SetDefault("tutor.openai.base_url", "")
	v.SetDefault("tutor.gemini.api_key", "")
	v.SetDefault("tutor.gemini.model", "gemini-2.0-flash")
	v.SetDefault("tutor.gemini.base_url", "")

	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.allowed_chat_id", 0)
	v.SetDefault("telegram.poll_timeout", 60)
	v.SetDefault("telegram.debug", false)
}

// Validate checks values that every command depends on.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("store.driver must be sqlite or postgres, got %q", c.Store.Driver)
	}
	if c.Store.Driver == "postgres" && c.Store.DSN == "" {
		return errors.New("store.dsn is required for the postgres driver")
	}
	if c.Quiz.DailyCount <= 0 {
		return fmt.Errorf("quiz.daily_count must be positive, got %d", c.Quiz.DailyCount)
	}
	if c.Quiz.PlacementVocabCount <= 0 {
		return fmt.Errorf("quiz.placement_vocab_count must be positive, got %d", c.Quiz.PlacementVocabCount)
	}
	if c.Quiz.MatchRounds <= 0 {
		return fmt.Errorf("quiz.match_rounds must be positive, got %d", c.Quiz.MatchRounds)
	}
	return nil
}

// ValidateBot checks settings the Telegram bot needs.
func (c *Config) ValidateBot() error {
	if c.Telegram.Token == "" {
		return ErrMissingTelegramToken
	}
	return nil
}

// IsProduction reports whether the production environment is selected.
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

func configDir() (string, error) {
	if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
		return filepath.Join(d, "lashon"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "lashon"), nil
}
