package station

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/akhilak5/cafe-ops/internal/adapter/logger"
	"github.com/akhilak5/cafe-ops/internal/app/notify"
	"github.com/akhilak5/cafe-ops/internal/domain"
	"github.com/akhilak5/cafe-ops/internal/interfaces"
)

// Snapshot is one poll's worth of store state. Two clients may hold
// different snapshots at the same wall-clock time; the system only
// promises convergence once a conditional write lands at the store.
type Snapshot struct {
	Orders []domain.Order
	Staff  []domain.Staff
	Taken  time.Time
}

// Loop is the periodic pull-and-rederive cycle a staff client runs in
// lieu of server push. A failed poll keeps the previous snapshot and
// views intact and retries on the next tick; a failed mutation is
// never retried automatically, but every mutation attempt forces a
// fresh poll before the user may retry.
type Loop struct {
	client   interfaces.StoreClient
	sess     Session
	tracker  *notify.Tracker
	logger   logger.Logger
	interval time.Duration

	mu     sync.RWMutex
	snap   Snapshot
	views  Views
	synced bool
}

func NewLoop(client interfaces.StoreClient, sess Session, tracker *notify.Tracker, logger logger.Logger, interval time.Duration) *Loop {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &Loop{
		client:   client,
		sess:     sess,
		tracker:  tracker,
		logger:   logger,
		interval: interval,
	}
}

// Run polls until the context is cancelled. No error from a poll stops
// the loop.
func (l *Loop) Run(ctx context.Context) error {
	if err := l.SyncOnce(ctx); err != nil {
		l.logger.Error("sync_failed", "Initial sync failed, will retry", "", nil, err)
	}

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := l.SyncOnce(ctx); err != nil {
				l.logger.Error("sync_failed", "Sync failed, keeping previous snapshot", "", nil, err)
			}
		}
	}
}

// SyncOnce pulls a fresh snapshot and recomputes the derived views.
// On failure the previous snapshot stays in place so views do not
// flicker on transient store unavailability.
func (l *Loop) SyncOnce(ctx context.Context) error {
	orders, err := l.client.ListOrders(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSyncFailure, err)
	}
	staff, err := l.client.ListStaff(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSyncFailure, err)
	}

	snap := Snapshot{Orders: orders, Staff: staff, Taken: time.Now().UTC()}
	views := Derive(orders, l.sess)

	l.mu.Lock()
	l.snap = snap
	l.views = views
	l.synced = true
	l.mu.Unlock()

	l.logger.Debug("sync_completed", "Snapshot refreshed", "", map[string]interface{}{
		"orders": len(orders),
		"pool":   len(views.Pool),
		"active": len(views.Active),
	})
	return nil
}

// Snapshot returns the latest successfully pulled snapshot.
func (l *Loop) Snapshot() (Snapshot, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snap, l.synced
}

// Views returns the latest derived views.
func (l *Loop) Views() Views {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.views
}

// UnseenEvents returns the derived events this session has not yet
// surfaced; it drives the unread badges.
func (l *Loop) UnseenEvents() []domain.Event {
	return l.tracker.Unseen(l.Views().Events)
}

// OpenView marks every current event of the given kind seen. Called
// when the staff member opens the corresponding tab, not when an event
// merely appears in a background poll.
func (l *Loop) OpenView(kind domain.EventKind) error {
	var ids []string
	for _, e := range l.Views().Events {
		if e.Kind == kind {
			ids = append(ids, e.ID)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	return l.tracker.MarkSeen(ids...)
}

// AcceptOrder is the kitchen accept action: claim the kitchen slot,
// then immediately start the order. The two store calls are distinct,
// individually idempotent operations; losing the claim race aborts
// without touching the status.
func (l *Loop) AcceptOrder(ctx context.Context, orderID int) error {
	if _, err := l.client.ClaimSlot(ctx, orderID, domain.SlotKitchen, l.sess.StaffID); err != nil {
		return l.afterMutation(ctx, err)
	}
	_, err := l.client.SetStatus(ctx, orderID, domain.StatusInProgress, l.sess.StaffID)
	return l.afterMutation(ctx, err)
}

// AcceptReady is the service accept action: claim the service slot of
// a kitchen-completed order. The status stays READY until served.
func (l *Loop) AcceptReady(ctx context.Context, orderID int) error {
	_, err := l.client.ClaimSlot(ctx, orderID, domain.SlotService, l.sess.StaffID)
	return l.afterMutation(ctx, err)
}

// Advance moves an order one step along the fulfilment path.
func (l *Loop) Advance(ctx context.Context, orderID int, target domain.Status) error {
	_, err := l.client.SetStatus(ctx, orderID, target, l.sess.StaffID)
	return l.afterMutation(ctx, err)
}

// MarkPaid records a payment method and marks the order paid.
func (l *Loop) MarkPaid(ctx context.Context, orderID int, method string) error {
	_, err := l.client.SetPayment(ctx, orderID, method, domain.PaymentPaid)
	return l.afterMutation(ctx, err)
}

// afterMutation forces a re-sync after every mutation attempt,
// successful or not: optimistic local state is discarded and views are
// re-derived from the store's answer before any retry is allowed. The
// mutation's own error wins over a re-sync error.
func (l *Loop) afterMutation(ctx context.Context, mutErr error) error {
	if syncErr := l.SyncOnce(ctx); syncErr != nil && mutErr == nil {
		return syncErr
	}
	return mutErr
}
