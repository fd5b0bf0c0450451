package notify

import (
	"sort"
	"sync"

	"github.com/akhilak5/cafe-ops/internal/domain"
)

// Store persists a staff member's seen-set. Keyed by staff identity so
// switching accounts on the same device does not leak notification
// state between users.
type Store interface {
	Load(staffKey string) ([]string, error)
	Save(staffKey string, ids []string) error
}

// Tracker maintains the durable, monotonically-growing set of event
// ids a staff session has already surfaced. Marking seen is idempotent
// and never removes ids; the only way to shrink the set is Reset.
type Tracker struct {
	store    Store
	staffKey string

	mu   sync.Mutex
	seen map[string]struct{}
}

// NewTracker loads the persisted seen-set for the staff identity. A
// missing or empty set is not an error: a fresh session starts with
// everything unseen.
func NewTracker(store Store, staffKey string) (*Tracker, error) {
	ids, err := store.Load(staffKey)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		seen[id] = struct{}{}
	}

	return &Tracker{
		store:    store,
		staffKey: staffKey,
		seen:     seen,
	}, nil
}

// Unseen returns the events whose id is not yet in the seen-set, in
// input order. It drives the unread indicators; it does not mark
// anything seen (that happens only when the staff member opens the
// corresponding view).
func (t *Tracker) Unseen(events []domain.Event) []domain.Event {
	t.mu.Lock()
	defer t.mu.Unlock()

	var unseen []domain.Event
	for _, e := range events {
		if _, ok := t.seen[e.ID]; !ok {
			unseen = append(unseen, e)
		}
	}
	return unseen
}

// MarkSeen unions the ids into the set and persists it. Calling it
// again with the same ids changes nothing and does not rewrite the
// store.
func (t *Tracker) MarkSeen(ids ...string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	changed := false
	for _, id := range ids {
		if _, ok := t.seen[id]; !ok {
			t.seen[id] = struct{}{}
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return t.persist()
}

// MarkEventsSeen marks every given event's id seen.
func (t *Tracker) MarkEventsSeen(events []domain.Event) error {
	ids := make([]string, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}
	return t.MarkSeen(ids...)
}

// Len returns the current size of the seen-set.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.seen)
}

// Reset clears the set, the only permitted shrink.
func (t *Tracker) Reset() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.seen = make(map[string]struct{})
	return t.persist()
}

func (t *Tracker) persist() error {
	ids := make([]string, 0, len(t.seen))
	for id := range t.seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return t.store.Save(t.staffKey, ids)
}
