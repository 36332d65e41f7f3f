package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
	RoleID string    // completion events only

	Purpose    string // LLM events only
	FailedOnly bool   // LLM events only
}

// CompletionRecord is an exported copy of a ledger entry.
type CompletionRecord struct {
	Sequence    int64     `json:"sequence" yaml:"sequence"`
	Timestamp   time.Time `json:"timestamp" yaml:"timestamp"`
	ExampleID   string    `json:"example_id" yaml:"example_id"`
	RoleID      string    `json:"role_id" yaml:"role_id"`
	SituationID string    `json:"situation_id" yaml:"situation_id"`
	Title       string    `json:"title" yaml:"title"`
	Reflection  string    `json:"reflection" yaml:"reflection"`
	CompletedAt time.Time `json:"completed_at" yaml:"completed_at"`
}

// RoleCount is the number of exported completions for one role.
type RoleCount struct {
	RoleID string
	Count  int
}

// CompletionRepo stores the write-through portfolio export.
type CompletionRepo interface {
	// AppendCompletion records a completed example and returns its sequence.
	AppendCompletion(ctx context.Context, rec CompletionRecord) (int64, error)

	// ListCompletions returns records newest first.
	ListCompletions(ctx context.Context, opts QueryOpts) ([]CompletionRecord, error)

	// GetCompletion returns the record with the given sequence, or nil.
	GetCompletion(ctx context.Context, seq int64) (*CompletionRecord, error)

	// CountByRole returns per-role record counts ordered by role ID.
	CountByRole(ctx context.Context) ([]RoleCount, error)

	// Clear deletes every exported record.
	Clear(ctx context.Context) (int64, error)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
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

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates token usage for one purpose or model.
type LLMUsage struct {
	Purpose      string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns the event with the given ID, or nil.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	// LLMUsageByPurpose aggregates usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)

	// LLMUsageByModel aggregates usage per model.
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)

	// ClearLLMEvents deletes every LLM event.
	ClearLLMEvents(ctx context.Context) (int64, error)
}
