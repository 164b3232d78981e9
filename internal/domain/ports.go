package domain

import "context"

// ReplyRequest is everything the external generator needs for one turn.
type ReplyRequest struct {
	Message string
	History []ChatTurn
	Memory  Memory
	// ResetContext tells the generator to discard its own server-side state.
	// It is a one-turn signal, consumed by exactly one request.
	ResetContext bool
}

// ReplyResult is the generator's answer. SuggestedPlans may be empty and
// Memory may be nil (meaning: unchanged).
type ReplyResult struct {
	Message        string
	SuggestedPlans []Plan
	Memory         Memory
}

// ReplyGenerator defines how the core asks an LLM-backed service for the next
// assistant turn.
type ReplyGenerator interface {
	GenerateReply(ctx context.Context, req ReplyRequest) (*ReplyResult, error)
}

// DocumentAnalyzer summarizes one uploaded policy document.
type DocumentAnalyzer interface {
	AnalyzeDocument(ctx context.Context, upload DocumentUpload) (*DocumentSummary, error)
}

// PlanCatalog supplies the candidate plan set for a category.
type PlanCatalog interface {
	PlansByCategory(ctx context.Context, category Category) ([]Plan, error)
	AllPlans(ctx context.Context) ([]Plan, error)
}

// SessionSnapshot is the persisted form of a conversation session. The live
// session object is authoritative; snapshots exist so a session survives a
// process restart.
type SessionSnapshot struct {
	ID              SessionID         `json:"id"`
	UserID          UserID            `json:"userId"`
	Messages        []Message         `json:"messages"`
	Memory          Memory            `json:"memory"`
	ShownPlanIDs    []PlanID          `json:"shownPlanIds"`
	DocumentHistory []DocumentSummary `json:"documentHistory"`
	PendingReset    bool              `json:"pendingReset"`
	CreatedAt       Timestamp         `json:"createdAt"`
	UpdatedAt       Timestamp         `json:"updatedAt"`
}

// SessionStore persists session snapshots. Save is fire-and-forget from the
// caller's point of view: a failure is logged, never surfaced.
type SessionStore interface {
	SaveSession(ctx context.Context, snap *SessionSnapshot) error
	LoadSession(ctx context.Context, id SessionID) (*SessionSnapshot, error)
	DeleteSession(ctx context.Context, id SessionID) error
}

// SelectionSnapshot is the persisted form of one owner's comparison
// selection. Version guards against stale schema shapes: a snapshot with an
// older version is migrated or discarded on load, never half-decoded.
type SelectionSnapshot struct {
	Version int    `json:"version"`
	Plans   []Plan `json:"plans"`
}

// SelectionStore persists comparison selections per owner.
type SelectionStore interface {
	SaveSelection(ctx context.Context, owner UserID, snap *SelectionSnapshot) error
	LoadSelection(ctx context.Context, owner UserID) (*SelectionSnapshot, error)
	DeleteSelection(ctx context.Context, owner UserID) error
}

// SummaryStore persists document summaries for the history panel. The panel
// is non-critical: callers degrade list failures to empty and delete failures
// to false.
type SummaryStore interface {
	SaveSummary(ctx context.Context, summary *DocumentSummary) error
	ListSummariesByUser(ctx context.Context, userID UserID, limit int) ([]*DocumentSummary, error)
	DeleteSummary(ctx context.Context, id SummaryID) error
}
