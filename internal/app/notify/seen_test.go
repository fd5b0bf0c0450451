package notify

import (
	"testing"

	"github.com/akhilak5/cafe-ops/internal/domain"
)

// memStore is an in-memory Store recording how often each key was
// written, to assert that unchanged sets are not rewritten.
type memStore struct {
	sets   map[string][]string
	writes int
}

func newMemStore() *memStore {
	return &memStore{sets: make(map[string][]string)}
}

func (m *memStore) Load(staffKey string) ([]string, error) {
	return m.sets[staffKey], nil
}

func (m *memStore) Save(staffKey string, ids []string) error {
	m.sets[staffKey] = ids
	m.writes++
	return nil
}

func events(ids ...string) []domain.Event {
	out := make([]domain.Event, len(ids))
	for i, id := range ids {
		out[i] = domain.Event{ID: id}
	}
	return out
}

func TestTrackerFreshSession(t *testing.T) {
	tracker, err := NewTracker(newMemStore(), "staff-1")
	if err != nil {
		t.Fatalf("NewTracker: %v", err)
	}

	in := events("NEW_ORDER-1", "NEW_ORDER-2")
	unseen := tracker.Unseen(in)
	if len(unseen) != 2 {
		t.Fatalf("unseen = %d events, want 2", len(unseen))
	}
	if unseen[0].ID != "NEW_ORDER-1" || unseen[1].ID != "NEW_ORDER-2" {
		t.Errorf("unseen order differs from input order: %v", unseen)
	}
}

func TestTrackerMarkSeen(t *testing.T) {
	store := newMemStore()
	tracker, err := NewTracker(store, "staff-1")
	if err != nil {
		t.Fatalf("NewTracker: %v", err)
	}

	if err := tracker.MarkSeen("NEW_ORDER-1", "NEW_ORDER-2"); err != nil {
		t.Fatalf("MarkSeen: %v", err)
	}
	if store.writes != 1 {
		t.Errorf("writes = %d, want 1", store.writes)
	}

	unseen := tracker.Unseen(events("NEW_ORDER-1", "NEW_ORDER-2", "NEW_ORDER-3"))
	if len(unseen) != 1 || unseen[0].ID != "NEW_ORDER-3" {
		t.Errorf("unseen = %v, want only NEW_ORDER-3", unseen)
	}

	// marking again with the same ids is a no-op
	if err := tracker.MarkSeen("NEW_ORDER-1"); err != nil {
		t.Fatalf("repeat MarkSeen: %v", err)
	}
	if store.writes != 1 {
		t.Errorf("idempotent mark rewrote the store: writes = %d", store.writes)
	}
	if tracker.Len() != 2 {
		t.Errorf("Len() = %d, want 2", tracker.Len())
	}
}

func TestTrackerSurvivesReload(t *testing.T) {
	store := newMemStore()

	first, err := NewTracker(store, "staff-7")
	if err != nil {
		t.Fatalf("NewTracker: %v", err)
	}
	if err := first.MarkEventsSeen(events("READY_FOR_SERVICE-4")); err != nil {
		t.Fatalf("MarkEventsSeen: %v", err)
	}

	second, err := NewTracker(store, "staff-7")
	if err != nil {
		t.Fatalf("reload NewTracker: %v", err)
	}
	if unseen := second.Unseen(events("READY_FOR_SERVICE-4")); len(unseen) != 0 {
		t.Errorf("reloaded tracker forgot seen ids: %v", unseen)
	}
}

func TestTrackerKeysDoNotLeak(t *testing.T) {
	store := newMemStore()

	a, _ := NewTracker(store, "staff-1")
	if err := a.MarkSeen("NEW_ORDER-9"); err != nil {
		t.Fatalf("MarkSeen: %v", err)
	}

	b, _ := NewTracker(store, "staff-2")
	if unseen := b.Unseen(events("NEW_ORDER-9")); len(unseen) != 1 {
		t.Error("one staff member's seen-set leaked into another's")
	}
}

func TestTrackerReset(t *testing.T) {
	store := newMemStore()
	tracker, _ := NewTracker(store, "staff-1")

	if err := tracker.MarkSeen("NEW_ORDER-1", "NEW_ORDER-2"); err != nil {
		t.Fatalf("MarkSeen: %v", err)
	}
	if err := tracker.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if tracker.Len() != 0 {
		t.Errorf("Len() after reset = %d, want 0", tracker.Len())
	}
	if unseen := tracker.Unseen(events("NEW_ORDER-1")); len(unseen) != 1 {
		t.Error("reset did not clear the seen-set")
	}
}
