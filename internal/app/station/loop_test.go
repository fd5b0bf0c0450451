package station

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/akhilak5/cafe-ops/internal/app/notify"
	"github.com/akhilak5/cafe-ops/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(action, message, requestID string, details map[string]interface{})  {}
func (nopLogger) Debug(action, message, requestID string, details map[string]interface{}) {}
func (nopLogger) Error(action, message, requestID string, details map[string]interface{}, err error) {
}

type memSeenStore struct {
	sets map[string][]string
}

func (m *memSeenStore) Load(staffKey string) ([]string, error) { return m.sets[staffKey], nil }
func (m *memSeenStore) Save(staffKey string, ids []string) error {
	if m.sets == nil {
		m.sets = make(map[string][]string)
	}
	m.sets[staffKey] = ids
	return nil
}

// fakeStore is an in-memory StoreClient enforcing the same conditional
// semantics as the real store: claims land only on an empty slot in the
// right status, transitions only on the expected current status.
type fakeStore struct {
	orders map[int]*domain.Order
	staff  []domain.Staff

	listFails bool
	listCalls int
	claims    []int
	statuses  []domain.Status
}

func newFakeStore(orders ...domain.Order) *fakeStore {
	m := make(map[int]*domain.Order, len(orders))
	for i := range orders {
		o := orders[i]
		m[o.ID] = &o
	}
	return &fakeStore{orders: m}
}

func (f *fakeStore) ListOrders(ctx context.Context) ([]domain.Order, error) {
	f.listCalls++
	if f.listFails {
		return nil, errors.New("store unavailable")
	}
	out := make([]domain.Order, 0, len(f.orders))
	for _, id := range sortedKeys(f.orders) {
		out = append(out, *f.orders[id])
	}
	return out, nil
}

func (f *fakeStore) ListStaff(ctx context.Context) ([]domain.Staff, error) {
	if f.listFails {
		return nil, errors.New("store unavailable")
	}
	return f.staff, nil
}

func (f *fakeStore) SetStatus(ctx context.Context, orderID int, target domain.Status, actingStaffID int) (*domain.Order, error) {
	f.statuses = append(f.statuses, target)
	o, ok := f.orders[orderID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	work := *o
	if err := work.TransitionTo(target, actingStaffID); err != nil {
		return nil, err
	}
	*o = work
	out := *o
	return &out, nil
}

func (f *fakeStore) ClaimSlot(ctx context.Context, orderID int, slot domain.Slot, staffID int) (*domain.Order, error) {
	f.claims = append(f.claims, orderID)
	o, ok := f.orders[orderID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if err := o.Claim(slot, staffID, time.Now().UTC()); err != nil {
		return nil, err
	}
	out := *o
	return &out, nil
}

func (f *fakeStore) SetPayment(ctx context.Context, orderID int, method string, status domain.PaymentStatus) (*domain.Order, error) {
	o, ok := f.orders[orderID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	o.PaymentMethod = method
	o.PaymentStatus = status
	out := *o
	return &out, nil
}

func sortedKeys(m map[int]*domain.Order) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 0; i < len(keys); i++ {
		for j := i + 1; j < len(keys); j++ {
			if keys[j] < keys[i] {
				keys[i], keys[j] = keys[j], keys[i]
			}
		}
	}
	return keys
}

func newTestLoop(t *testing.T, store *fakeStore, sess Session) *Loop {
	t.Helper()
	tracker, err := notify.NewTracker(&memSeenStore{}, "staff-test")
	if err != nil {
		t.Fatalf("NewTracker: %v", err)
	}
	return NewLoop(store, sess, tracker, nopLogger{}, time.Second)
}

func TestSyncOnce(t *testing.T) {
	store := newFakeStore(order(1, domain.StatusPending, nil, nil))
	l := newTestLoop(t, store, Session{StaffID: 7, Role: domain.RoleChef})

	if _, ok := l.Snapshot(); ok {
		t.Fatal("loop reported a snapshot before the first sync")
	}

	if err := l.SyncOnce(context.Background()); err != nil {
		t.Fatalf("SyncOnce: %v", err)
	}

	snap, ok := l.Snapshot()
	if !ok || len(snap.Orders) != 1 {
		t.Fatalf("snapshot = %+v, ok = %v", snap, ok)
	}
	if pool := l.Views().Pool; len(pool) != 1 {
		t.Errorf("pool = %d orders, want 1", len(pool))
	}
}

func TestSyncFailureKeepsPreviousSnapshot(t *testing.T) {
	store := newFakeStore(order(1, domain.StatusPending, nil, nil))
	l := newTestLoop(t, store, Session{StaffID: 7, Role: domain.RoleChef})

	if err := l.SyncOnce(context.Background()); err != nil {
		t.Fatalf("SyncOnce: %v", err)
	}

	store.listFails = true
	err := l.SyncOnce(context.Background())
	if !errors.Is(err, domain.ErrSyncFailure) {
		t.Fatalf("error = %v, want ErrSyncFailure", err)
	}

	snap, ok := l.Snapshot()
	if !ok || len(snap.Orders) != 1 {
		t.Error("failed poll discarded the previous snapshot")
	}
	if pool := l.Views().Pool; len(pool) != 1 {
		t.Error("failed poll discarded the previous views")
	}
}

func TestAcceptOrder(t *testing.T) {
	store := newFakeStore(order(1, domain.StatusPending, nil, nil))
	l := newTestLoop(t, store, Session{StaffID: 7, Role: domain.RoleChef})

	if err := l.AcceptOrder(context.Background(), 1); err != nil {
		t.Fatalf("AcceptOrder: %v", err)
	}

	o := store.orders[1]
	if o.KitchenWorkerID == nil || *o.KitchenWorkerID != 7 {
		t.Errorf("kitchen slot = %v, want 7", o.KitchenWorkerID)
	}
	if o.Status != domain.StatusInProgress {
		t.Errorf("status = %s, want IN_PROGRESS", o.Status)
	}

	// the view must come from a forced re-sync, not local bookkeeping
	if active := l.Views().Active; len(active) != 1 || active[0].ID != 1 {
		t.Errorf("active after accept = %v", active)
	}
}

func TestAcceptOrderLosesRace(t *testing.T) {
	store := newFakeStore(order(1, domain.StatusPending, intPtr(8), nil))
	l := newTestLoop(t, store, Session{StaffID: 7, Role: domain.RoleChef})

	err := l.AcceptOrder(context.Background(), 1)
	if !errors.Is(err, domain.ErrAlreadyClaimed) {
		t.Fatalf("error = %v, want ErrAlreadyClaimed", err)
	}
	if len(store.statuses) != 0 {
		t.Error("lost claim race must abort before touching the status")
	}
	if holder := store.orders[1].KitchenWorkerID; holder == nil || *holder != 8 {
		t.Errorf("kitchen slot = %v, want the winner 8", holder)
	}
}

func TestMutationForcesResync(t *testing.T) {
	store := newFakeStore(order(1, domain.StatusServed, intPtr(8), intPtr(9)))
	l := newTestLoop(t, store, Session{StaffID: 7, Role: domain.RoleChef})

	before := store.listCalls
	err := l.Advance(context.Background(), 1, domain.StatusPending)
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("error = %v, want ErrInvalidTransition", err)
	}
	if store.listCalls != before+1 {
		t.Error("failed mutation must still force a fresh poll")
	}
}

func TestMutationErrorWinsOverResyncError(t *testing.T) {
	store := newFakeStore(order(1, domain.StatusServed, intPtr(8), intPtr(9)))
	l := newTestLoop(t, store, Session{StaffID: 7, Role: domain.RoleChef})

	store.listFails = true
	err := l.Advance(context.Background(), 1, domain.StatusPending)
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("error = %v, want the mutation's ErrInvalidTransition", err)
	}
}

func TestAcceptReady(t *testing.T) {
	store := newFakeStore(order(1, domain.StatusReady, intPtr(8), nil))
	l := newTestLoop(t, store, Session{StaffID: 9, Role: domain.RoleWaiter})

	if err := l.AcceptReady(context.Background(), 1); err != nil {
		t.Fatalf("AcceptReady: %v", err)
	}

	o := store.orders[1]
	if o.ServiceWorkerID == nil || *o.ServiceWorkerID != 9 {
		t.Errorf("service slot = %v, want 9", o.ServiceWorkerID)
	}
	if o.Status != domain.StatusReady {
		t.Errorf("status = %s, want READY until served", o.Status)
	}
	if o.AcceptedAt == nil {
		t.Error("service claim must stamp AcceptedAt")
	}
}

func TestUnseenAndOpenView(t *testing.T) {
	store := newFakeStore(
		order(1, domain.StatusPending, nil, nil),
		order(2, domain.StatusPending, nil, nil),
	)
	l := newTestLoop(t, store, Session{StaffID: 7, Role: domain.RoleChef})

	if err := l.SyncOnce(context.Background()); err != nil {
		t.Fatalf("SyncOnce: %v", err)
	}
	if unseen := l.UnseenEvents(); len(unseen) != 2 {
		t.Fatalf("unseen = %d events, want 2", len(unseen))
	}

	if err := l.OpenView(domain.EventNewOrder); err != nil {
		t.Fatalf("OpenView: %v", err)
	}
	if unseen := l.UnseenEvents(); len(unseen) != 0 {
		t.Errorf("unseen after opening the view = %v", unseen)
	}

	// a later poll re-derives the same event ids; they stay seen
	if err := l.SyncOnce(context.Background()); err != nil {
		t.Fatalf("SyncOnce: %v", err)
	}
	if unseen := l.UnseenEvents(); len(unseen) != 0 {
		t.Errorf("re-derived events became unseen again: %v", unseen)
	}
}

func TestMarkPaid(t *testing.T) {
	store := newFakeStore(order(1, domain.StatusServed, intPtr(8), intPtr(9)))
	l := newTestLoop(t, store, Session{StaffID: 9, Role: domain.RoleWaiter})

	if err := l.MarkPaid(context.Background(), 1, "CASH_ON_DELIVERY"); err != nil {
		t.Fatalf("MarkPaid: %v", err)
	}
	o := store.orders[1]
	if o.PaymentStatus != domain.PaymentPaid || o.PaymentMethod != "CASH_ON_DELIVERY" {
		t.Errorf("payment = %s/%s", o.PaymentMethod, o.PaymentStatus)
	}
}
