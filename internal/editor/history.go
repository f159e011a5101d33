package editor

import (
	"sync"
	"time"

	"storefront/internal/domain"
)

// DefaultHistoryLimit is the number of snapshots kept before the oldest is
// evicted.
const DefaultHistoryLimit = 50

// History is a bounded undo/redo stack of group snapshots over a Store.
//
// Undo leaves the tree clean and redo leaves it dirty. Callers rely on this
// to tell whether the restored state differs from what was last saved.
type History struct {
	mu        sync.Mutex
	store     *Store
	limit     int
	snapshots []domain.Snapshot
	pointer   int
	now       func() time.Time
}

// HistoryOption configures a History.
type HistoryOption func(*History)

// WithLimit overrides DefaultHistoryLimit. Values below 1 are ignored.
func WithLimit(n int) HistoryOption {
	return func(h *History) {
		if n > 0 {
			h.limit = n
		}
	}
}

// WithClock sets the time source for snapshot timestamps.
func WithClock(now func() time.Time) HistoryOption {
	return func(h *History) { h.now = now }
}

// NewHistory creates an empty history over store.
func NewHistory(store *Store, opts ...HistoryOption) *History {
	h := &History{
		store:   store,
		limit:   DefaultHistoryLimit,
		pointer: -1,
		now:     time.Now,
	}
	for _, o := range opts {
		o(h)
	}
	return h
}

// SaveHistory snapshots the current groups. Snapshots after the pointer are
// discarded first; the oldest snapshot goes once the limit is exceeded.
func (h *History) SaveHistory() {
	snap := domain.Snapshot{Groups: h.store.Groups(), Timestamp: h.now()}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.snapshots = append(h.snapshots[:h.pointer+1], snap)
	if over := len(h.snapshots) - h.limit; over > 0 {
		h.snapshots = append([]domain.Snapshot(nil), h.snapshots[over:]...)
	}
	h.pointer = len(h.snapshots) - 1
}

// Undo steps back one snapshot. Returns false at the start of history.
func (h *History) Undo() bool {
	h.mu.Lock()
	if h.pointer <= 0 {
		h.mu.Unlock()
		return false
	}
	h.pointer--
	groups := h.snapshots[h.pointer].Groups
	h.mu.Unlock()

	h.store.RestoreGroups(groups, false)
	return true
}

// Redo steps forward one snapshot. Returns false at the end of history.
func (h *History) Redo() bool {
	h.mu.Lock()
	if h.pointer >= len(h.snapshots)-1 {
		h.mu.Unlock()
		return false
	}
	h.pointer++
	groups := h.snapshots[h.pointer].Groups
	h.mu.Unlock()

	h.store.RestoreGroups(groups, true)
	return true
}

func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pointer > 0
}

func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pointer < len(h.snapshots)-1
}

// Len returns the number of snapshots held.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.snapshots)
}

// Snapshots returns the held snapshots, oldest first.
func (h *History) Snapshots() []domain.Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]domain.Snapshot, len(h.snapshots))
	for i, s := range h.snapshots {
		out[i] = domain.Snapshot{Groups: s.Groups.Clone(), Timestamp: s.Timestamp}
	}
	return out
}

// Clear drops every snapshot.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.snapshots = nil
	h.pointer = -1
}
