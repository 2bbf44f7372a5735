// Package logging builds the application's zap logger.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lashon-study/lashon/internal/config"
)

// New returns a logger for cfg. Production environments get the JSON
// encoder; everything else gets the console encoder. When toFile is set
// and cfg.Log.File is empty, logs go to DefaultLogPath so the terminal
// stays clean for the TUI.
func New(cfg *config.Config, toFile bool) (*zap.Logger, error) {
	zc := zap.NewDevelopmentConfig()
	if cfg.IsProduction() {
		zc = zap.NewProductionConfig()
	}

	if cfg.Log.Level != "" {
		lvl, err := zap.ParseAtomicLevel(cfg.Log.Level)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		zc.Level = lvl
	}

	out := cfg.Log.File
	if out == "" && toFile {
		p, err := DefaultLogPath()
		if err != nil {
			return nil, err
		}
		out = p
	}
	if out != "" {
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		zc.OutputPaths = []string{out}
		zc.ErrorOutputPaths = []string{out}
	}
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return zc.Build()
}

// DefaultLogPath returns $XDG_STATE_HOME/lashon/lashon.log, falling back
// to ~/.local/state.
func DefaultLogPath() (string, error) {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "lashon", "lashon.log"), nil
}
