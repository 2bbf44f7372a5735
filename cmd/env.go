package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lashon-study/lashon/internal/config"
	"github.com/lashon-study/lashon/internal/llm"
	"github.com/lashon-study/lashon/internal/logging"
	"github.com/lashon-study/lashon/internal/progress"
	"github.com/lashon-study/lashon/internal/record"
	"github.com/lashon-study/lashon/internal/screen"
	"github.com/lashon-study/lashon/internal/store"
	"github.com/lashon-study/lashon/internal/tutor"
	"github.com/lashon-study/lashon/internal/vocab"
)

// env is everything a command may need, built once per invocation.
type env struct {
	cfg      *config.Config
	log      *zap.Logger
	store    *store.Store
	pool     *vocab.Pool
	tracker  *progress.Tracker
	recorder *record.Recorder
	tutor    *tutor.Explainer
}

type envOptions struct {
	logToFile bool // keep the terminal clean for the TUI
	withTutor bool
}

// setup loads config and opens the store, dataset, tracker, and
// (optionally) the tutor. Callers must Close the result.
func setup(cmd *cobra.Command, opts envOptions) (*env, error) {
	ctx := cmd.Context()
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(config.Options{File: cfgFile})
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logging.New(cfg, opts.logToFile)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	dsn, err := resolveDSN(cmd, cfg.Store.Driver, cfg.Store.DSN)
	if err != nil {
		_ = log.Sync()
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(cfg.Store.Driver, dsn)
	if err != nil {
		_ = log.Sync()
		return nil, fmt.Errorf("open store: %w", err)
	}

	e := &env{cfg: cfg, log: log, store: st}

	if cfg.Vocab.Path != "" {
		e.pool, err = vocab.LoadFile(cfg.Vocab.Path)
	} else {
		e.pool, err = vocab.Default()
	}
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("load vocabulary: %w", err)
	}

	e.tracker, err = progress.NewTracker(ctx, st.StateRepo(), nil)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("load progress: %w", err)
	}
	e.recorder = record.New(st.ResultRepo(), e.tracker, log)

	if opts.withTutor {
		provider, err := llm.New(ctx, llm.FromTutor(cfg.Tutor), st.EventRepo(), log)
		switch {
		case errors.Is(err, llm.ErrNoProvider):
			log.Info("tutor disabled: no LLM provider configured")
		case err != nil:
			log.Warn("tutor disabled", zap.Error(err))
			if !opts.logToFile {
				fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
			}
		default:
			e.tutor = tutor.New(provider, tutor.DefaultOptions())
		}
	}

	log.Debug("environment ready",
		zap.String("store_driver", cfg.Store.Driver),
		zap.String("vocab_version", e.pool.Version()),
		zap.Int("vocab_entries", e.pool.Len()),
		zap.Bool("tutor", e.tutor.Enabled()),
	)
	return e, nil
}

// deps assembles what the TUI screens share.
func (e *env) deps() screen.Deps {
	return screen.Deps{
		Pool:                e.pool,
		Recorder:            e.recorder,
		Tutor:               e.tutor,
		Log:                 e.log,
		DailyCount:          e.cfg.Quiz.DailyCount,
		PlacementVocabCount: e.cfg.Quiz.PlacementVocabCount,
		MatchRounds:         e.cfg.Quiz.MatchRounds,
	}
}

func (e *env) Close() {
	if e.store != nil {
		if err := e.store.Close(); err != nil {
			e.log.Warn("close store", zap.Error(err))
		}
	}
	_ = e.log.Sync()
}
