package ledger

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// CompletedExample is a finished situation with the user's reflection.
type CompletedExample struct {
	ID          string
	RoleID      string
	SituationID string
	Title       string
	Reflection  string
	CompletedAt time.Time
}

// NewExample creates a CompletedExample with a fresh ID.
func NewExample(roleID, situationID, title, reflection string, at time.Time) CompletedExample {
	return CompletedExample{
		ID:          uuid.New().String(),
		RoleID:      roleID,
		SituationID: situationID,
		Title:       title,
		Reflection:  reflection,
		CompletedAt: at,
	}
}

// Observer is notified after an entry is appended. Observers run
// synchronously on the caller's goroutine and must not call back into the
// ledger's write path.
type Observer func(CompletedExample)

// Ledger is an append-only log of completed examples. Entries are never
// updated or removed.
type Ledger struct {
	mu        sync.RWMutex
	entries   []CompletedExample
	observers []Observer
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{}
}

// OnRecord registers an observer for future appends.
func (l *Ledger) OnRecord(fn Observer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.observers = append(l.observers, fn)
}

// Record appends an entry. A missing ID or timestamp is filled in.
func (l *Ledger) Record(e CompletedExample) CompletedExample {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CompletedAt.IsZero() {
		e.CompletedAt = time.Now()
	}

	l.mu.Lock()
	l.entries = append(l.entries, e)
	observers := slices.Clone(l.observers)
	l.mu.Unlock()

	for _, fn := range observers {
		fn(e)
	}
	return e
}

// Entries returns a copy of all entries in append order.
func (l *Ledger) Entries() []CompletedExample {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.entries)
}

// ForRole returns the entries recorded for a role, in append order.
func (l *Ledger) ForRole(roleID string) []CompletedExample {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []CompletedExample
	for _, e := range l.entries {
		if e.RoleID == roleID {
			out = append(out, e)
		}
	}
	return out
}

// CountForRole returns the number of entries for a role, duplicates included.
func (l *Ledger) CountForRole(roleID string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	n := 0
	for _, e := range l.entries {
		if e.RoleID == roleID {
			n++
		}
	}
	return n
}

// Has reports whether any entry matches the role and situation.
func (l *Ledger) Has(roleID, situationID string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, e := range l.entries {
		if e.RoleID == roleID && e.SituationID == situationID {
			return true
		}
	}
	return false
}

// Len returns the total number of entries.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
