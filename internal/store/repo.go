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
}

// LLMRequestEventData captures the data for a single model request event.
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

// LLMRequestEvent is a stored model request.
type LLMRequestEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates model usage for one purpose label.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates model usage for one model ID.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// ProvisionEventData records how one challenge request was satisfied.
type ProvisionEventData struct {
	Level        string
	Difficulty   string
	Requested    int
	Provenance   string
	Titles       []string
	ErrorMessage string // why the model path failed, if it did
}

// ProvisionEvent is a stored provisioning outcome.
type ProvisionEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	ProvisionEventData
}

// Practice event actions.
const (
	PracticeActionStart  = "start"
	PracticeActionSubmit = "submit"
	PracticeActionEnd    = "end"
)

// PracticeEventData captures one step of a practice session.
type PracticeEventData struct {
	SessionID      string
	Action         string
	Level          string
	Provenance     string
	ChallengeIndex int
	ChallengeID    string
	ChallengeTitle string
	Language       string
	Passed         bool
	SolvedCount    int
	Total          int
	Elapsed        time.Duration
}

// PracticeSessionSummary is a finished session as shown in history.
type PracticeSessionSummary struct {
	SessionID   string
	EndedAt     time.Time
	Level       string
	Provenance  string
	SolvedCount int
	Total       int
	Elapsed     time.Duration
	Submissions int
}

// EventRepo provides append and query access to the event log.
type EventRepo interface {
	// AppendLLMRequest records a model API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns model events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns one model event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)

	// LLMUsageByPurpose aggregates token usage per purpose label.
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)

	// AppendProvisionEvent records the outcome of a challenge request.
	AppendProvisionEvent(ctx context.Context, data ProvisionEventData) error

	// QueryProvisionEvents returns provisioning outcomes, newest first.
	QueryProvisionEvents(ctx context.Context, opts QueryOpts) ([]ProvisionEvent, error)

	// RecentChallengeTitles returns up to limit distinct titles of
	// model-generated challenges, most recent first.
	RecentChallengeTitles(ctx context.Context, limit int) ([]string, error)

	// AppendPracticeEvent records a practice session step.
	AppendPracticeEvent(ctx context.Context, data PracticeEventData) error

	// PracticeHistory returns finished sessions, most recent first.
	PracticeHistory(ctx context.Context, limit int) ([]PracticeSessionSummary, error)
}
