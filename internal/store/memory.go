package store

import (
	"context"
	"sync"
	"time"
)

// MemoryJournal keeps the most recent entries in a bounded ring.
// It backs the journal when no database is configured.
type MemoryJournal struct {
	mu      sync.Mutex
	entries []*Entry
	next    int
	full    bool
	now     func() time.Time
}

func NewMemoryJournal(capacity int) *MemoryJournal {
	if capacity <= 0 {
		capacity = defaultListLimit
	}
	return &MemoryJournal{
		entries: make([]*Entry, capacity),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (m *MemoryJournal) Append(_ context.Context, e *Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	prepare(e, m.now())
	cp := *e
	m.entries[m.next] = &cp
	m.next = (m.next + 1) % len(m.entries)
	if m.next == 0 {
		m.full = true
	}
	return nil
}

func (m *MemoryJournal) List(_ context.Context, f Filter) ([]*Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	size := m.next
	if m.full {
		size = len(m.entries)
	}
	limit := f.limit()

	out := []*Entry{}
	for i := 0; i < size && len(out) < limit; i++ {
		idx := (m.next - 1 - i + len(m.entries)) % len(m.entries)
		e := m.entries[idx]
		if f.Kind != nil && e.Kind != *f.Kind {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

// Len reports how many entries are retained.
func (m *MemoryJournal) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.full {
		return len(m.entries)
	}
	return m.next
}

func (m *MemoryJournal) Close() error { return nil }
