package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Chdir(dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(Options{})
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, 5, cfg.Quiz.DailyCount)
	assert.Equal(t, 8, cfg.Quiz.PlacementVocabCount)
	assert.Equal(t, 10, cfg.Quiz.MatchRounds)
	assert.Equal(t, 30*time.Second, cfg.Tutor.Timeout)
	assert.Equal(t, 60, cfg.Telegram.PollTimeout)
	assert.ErrorIs(t, cfg.ValidateBot(), ErrMissingTelegramToken)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("LASHON_QUIZ_DAILY_COUNT", "12")
	t.Setenv("TELEGRAM_API_TOKEN", "tok")
	t.Setenv("LASHON_TELEGRAM_ALLOWED_CHAT_ID", "42")
	t.Setenv("APP_ENV", "production")
	t.Setenv("LASHON_TUTOR_OPENAI_API_KEY", "sk-test")

	cfg, err := Load(Options{})
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.Quiz.DailyCount)
	assert.Equal(t, "tok", cfg.Telegram.Token)
	assert.Equal(t, int64(42), cfg.Telegram.AllowedChatID)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "sk-test", cfg.Tutor.OpenAI.APIKey)
	assert.NoError(t, cfg.ValidateBot())
}

func TestLoad_File(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
store:
  driver: postgres
  dsn: postgres://localhost/lashon
quiz:
  match_rounds: 4
tutor:
  provider: mock
`), 0o644))

	cfg, err := Load(Options{File: path})
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "postgres://localhost/lashon", cfg.Store.DSN)
	assert.Equal(t, 4, cfg.Quiz.MatchRounds)
	assert.Equal(t, "mock", cfg.Tutor.Provider)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	envPath := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envPath, []byte("LASHON_LOG_LEVEL=debug\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("LASHON_LOG_LEVEL") })

	cfg, err := Load(Options{EnvFile: envPath})
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad driver", func(c *Config) { c.Store.Driver = "mysql" }},
		{"postgres without dsn", func(c *Config) { c.Store.Driver = "postgres" }},
		{"zero daily", func(c *Config) { c.Quiz.DailyCount = 0 }},
		{"zero placement", func(c *Config) { c.Quiz.PlacementVocabCount = 0 }},
		{"zero rounds", func(c *Config) { c.Quiz.MatchRounds = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{
				Store: Store{Driver: "sqlite"},
				Quiz:  Quiz{DailyCount: 5, PlacementVocabCount: 8, MatchRounds: 10},
			}
			require.NoError(t, c.Validate())
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}
