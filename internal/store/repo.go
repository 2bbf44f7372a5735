package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	Before  int64     // id < Before
	From    time.Time // created_at >= From
	Purpose string    // exact match when set
}

// Result kinds.
const (
	KindDaily     = "daily"
	KindReverse   = "reverse"
	KindPlacement = "placement"
	KindMatch     = "match"
	KindSurvival  = "survival"
	KindSentence  = "sentence"
	KindStory     = "story"
)

// SectionTally is one section of a multi-part result.
type SectionTally struct {
	Section string `json:"section"`
	Correct int    `json:"correct"`
	Total   int    `json:"total"`
}

// Result is a finished quiz, test, or game.
type Result struct {
	ID        int64
	SessionID string
	Kind      string
	Correct   int
	Total     int
	Level     string
	Sections  []SectionTally
	CreatedAt time.Time
}

// ResultStats aggregates stored results.
type ResultStats struct {
	Count   int
	Correct int
	Total   int
}

// ResultRepo stores finished quizzes and games.
type ResultRepo interface {
	// Append stores r. A zero CreatedAt is set to now.
	Append(ctx context.Context, r Result) (int64, error)

	// Recent returns up to limit results, newest first.
	Recent(ctx context.Context, limit int) ([]Result, error)

	// Stats aggregates every stored result, optionally limited to one kind.
	Stats(ctx context.Context, kind string) (ResultStats, error)
}

// TutorEventData captures a single LLM request made by the tutor.
type TutorEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// TutorEvent is a stored TutorEventData.
type TutorEvent struct {
	TutorEventData
	ID        int64
	Timestamp time.Time
}

// EventRepo provides append and query access to tutor events.
type EventRepo interface {
	AppendTutorRequest(ctx context.Context, data TutorEventData) error
	QueryTutorEvents(ctx context.Context, opts QueryOpts) ([]TutorEvent, error)

	// GetTutorEvent returns the event with id, or nil if none exists.
	GetTutorEvent(ctx context.Context, id int64) (*TutorEvent, error)
}
