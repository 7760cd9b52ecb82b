package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EntryKind mirrors the engine mutation that produced a journal entry.
type EntryKind string

const (
	KindWeight EntryKind = "weight"
	KindScore  EntryKind = "score"
	KindRename EntryKind = "rename"
	KindAdd    EntryKind = "add"
	KindRemove EntryKind = "remove"
	KindReset  EntryKind = "reset"
	KindUpdate EntryKind = "update"
)

// Entry is one applied edit. The journal is audit history only; it is never
// replayed into the engine.
type Entry struct {
	ID          uuid.UUID `json:"id"`
	Kind        EntryKind `json:"kind"`
	CriterionID int       `json:"criterion_id,omitempty"`
	Option      string    `json:"option,omitempty"`
	Name        string    `json:"name,omitempty"`
	Value       int       `json:"value"`
	BestOption  string    `json:"best_option"`
	BestScore   int       `json:"best_score"`
	TotalWeight int       `json:"total_weight"`
	CreatedAt   time.Time `json:"created_at"`
}

type Filter struct {
	Kind  *EntryKind
	Limit int
}

const defaultListLimit = 100

func (f Filter) limit() int {
	if f.Limit <= 0 {
		return defaultListLimit
	}
	return f.Limit
}

// Journal records applied edits.
type Journal interface {
	Append(ctx context.Context, e *Entry) error
	// List returns entries newest first.
	List(ctx context.Context, f Filter) ([]*Entry, error)
	Close() error
}

// prepare fills the id and timestamp when the caller left them empty.
func prepare(e *Entry, now time.Time) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
}
