package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/lashon-study/lashon/internal/store"
)

// LoggingProvider records every request as a tutor event.
type LoggingProvider struct {
	inner Provider
	repo  store.EventRepo
	log   *zap.Logger
}

// WithLogging wraps p. Failing to store an event is logged, never returned.
func WithLogging(p Provider, repo store.EventRepo, log *zap.Logger) Provider {
	if log == nil {
		log = zap.NewNop()
	}
	return &LoggingProvider{inner: p, repo: repo, log: log}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)
	latency := time.Since(start)

	data := store.TutorEventData{
		Provider:    l.inner.Name(),
		Model:       l.inner.ModelID(),
		Purpose:     req.Purpose,
		LatencyMs:   latency.Milliseconds(),
		Success:     err == nil,
		RequestBody: renderRequest(req),
	}
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
		data.ResponseBody = string(resp.Content)
	}
	if err != nil {
		data.ErrorMessage = err.Error()
		l.log.Warn("llm request failed",
			zap.String("provider", data.Provider),
			zap.String("purpose", req.Purpose),
			zap.Duration("latency", latency),
			zap.Error(err))
	} else {
		l.log.Debug("llm request",
			zap.String("provider", data.Provider),
			zap.String("model", data.Model),
			zap.String("purpose", req.Purpose),
			zap.Int("tokens", resp.Usage.Total()),
			zap.Duration("latency", latency))
	}

	if l.repo != nil {
		if logErr := l.repo.AppendTutorRequest(ctx, data); logErr != nil {
			l.log.Warn("failed to record tutor event", zap.Error(logErr))
		}
	}
	return resp, err
}

func (l *LoggingProvider) Name() string    { return l.inner.Name() }
func (l *LoggingProvider) ModelID() string { return l.inner.ModelID() }

// renderRequest is the readable form stored with each event.
func renderRequest(req Request) string {
	var b strings.Builder
	if req.System != "" {
		fmt.Fprintf(&b, "[system]\n%s\n\n", req.System)
	}
	fmt.Fprintf(&b, "[user]\n%s\n", req.Prompt)
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "\n[schema: %s]\n%s\n", req.Schema.Name, def)
		}
	}
	return b.String()
}
