package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/akhilak5/cafe-ops/internal/domain"
	"github.com/akhilak5/cafe-ops/internal/interfaces"
)

type nopLogger struct{}

func (nopLogger) Info(action, message, requestID string, details map[string]interface{})  {}
func (nopLogger) Debug(action, message, requestID string, details map[string]interface{}) {}
func (nopLogger) Error(action, message, requestID string, details map[string]interface{}, err error) {
}

type fakeOrderRepo struct {
	orders map[int]*domain.Order
}

func (f *fakeOrderRepo) Create(ctx context.Context, order *domain.Order) error { return nil }

func (f *fakeOrderRepo) FindByID(ctx context.Context, id int) (*domain.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := *o
	return &out, nil
}

func (f *fakeOrderRepo) ListAll(ctx context.Context) ([]domain.Order, error) { return nil, nil }

func (f *fakeOrderRepo) ClaimSlot(ctx context.Context, orderID int, slot domain.Slot, staffID int, acceptedAt time.Time) (*domain.Order, error) {
	return nil, domain.ErrNotFound
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, orderID int, from, to domain.Status, servedAt *time.Time) (*domain.Order, error) {
	o, ok := f.orders[orderID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if o.Status != from {
		// another client moved the order since the caller read it
		return nil, domain.ErrInvalidTransition
	}
	o.Status = to
	if servedAt != nil {
		o.ServedAt = servedAt
	}
	out := *o
	return &out, nil
}

func (f *fakeOrderRepo) SetPayment(ctx context.Context, orderID int, method string, status domain.PaymentStatus) (*domain.Order, error) {
	o, ok := f.orders[orderID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	o.PaymentMethod = method
	o.PaymentStatus = status
	out := *o
	return &out, nil
}

type fakePublisher struct {
	published []interfaces.OrderEventMessage
	fail      bool
}

func (f *fakePublisher) PublishOrderEvent(ctx context.Context, msg interfaces.OrderEventMessage) error {
	if f.fail {
		return errors.New("broker down")
	}
	f.published = append(f.published, msg)
	return nil
}

func intPtr(v int) *int { return &v }

func fixture() (*Service, *fakeOrderRepo, *fakePublisher) {
	repo := &fakeOrderRepo{orders: map[int]*domain.Order{
		1: {ID: 1, Status: domain.StatusPending, KitchenWorkerID: intPtr(10)},
		2: {ID: 2, Status: domain.StatusInProgress, KitchenWorkerID: intPtr(10)},
		3: {ID: 3, Status: domain.StatusReady, KitchenWorkerID: intPtr(10), ServiceWorkerID: intPtr(11)},
		4: {ID: 4, Status: domain.StatusServed, KitchenWorkerID: intPtr(10), ServiceWorkerID: intPtr(11)},
	}}
	pub := &fakePublisher{}
	return NewService(repo, pub, nopLogger{}), repo, pub
}

func TestSetStatus(t *testing.T) {
	tests := []struct {
		name     string
		orderID  int
		target   domain.Status
		staffID  int
		wantErr  error
		wantKind domain.EventKind
	}{
		{
			name:     "chef starts a claimed order",
			orderID:  1,
			target:   domain.StatusInProgress,
			staffID:  10,
			wantKind: domain.EventStatusChanged,
		},
		{
			name:     "chef hands off to service",
			orderID:  2,
			target:   domain.StatusReady,
			staffID:  10,
			wantKind: domain.EventReadyForService,
		},
		{
			name:     "waiter serves",
			orderID:  3,
			target:   domain.StatusServed,
			staffID:  11,
			wantKind: domain.EventStatusChanged,
		},
		{
			name:    "skipping a step",
			orderID: 1,
			target:  domain.StatusReady,
			staffID: 10,
			wantErr: domain.ErrInvalidTransition,
		},
		{
			name:    "non-holder advances",
			orderID: 2,
			target:  domain.StatusReady,
			staffID: 99,
			wantErr: domain.ErrNotOwner,
		},
		{
			name:    "kitchen holder serves",
			orderID: 3,
			target:  domain.StatusServed,
			staffID: 10,
			wantErr: domain.ErrNotOwner,
		},
		{
			name:    "terminal order",
			orderID: 4,
			target:  domain.StatusPending,
			staffID: 11,
			wantErr: domain.ErrInvalidTransition,
		},
		{
			name:    "unknown order",
			orderID: 99,
			target:  domain.StatusInProgress,
			staffID: 10,
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, pub := fixture()
			updated, err := svc.SetStatus(context.Background(), tt.orderID, tt.target, tt.staffID)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("SetStatus error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				if len(pub.published) != 0 {
					t.Error("failed transition must not publish an event")
				}
				return
			}
			if updated.Status != tt.target {
				t.Errorf("status = %s, want %s", updated.Status, tt.target)
			}
			if repo.orders[tt.orderID].Status != tt.target {
				t.Error("transition did not reach the repository")
			}
			if len(pub.published) != 1 || pub.published[0].Kind != tt.wantKind {
				t.Errorf("published = %+v, want one %s", pub.published, tt.wantKind)
			}
		})
	}
}

func TestSetStatusServedStampsServedAt(t *testing.T) {
	svc, repo, _ := fixture()

	updated, err := svc.SetStatus(context.Background(), 3, domain.StatusServed, 11)
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if updated.ServedAt == nil || repo.orders[3].ServedAt == nil {
		t.Error("serving must stamp ServedAt at the store")
	}
}

func TestCancel(t *testing.T) {
	svc, repo, _ := fixture()

	for _, id := range []int{1, 2, 3} {
		updated, err := svc.Cancel(context.Background(), id)
		if err != nil {
			t.Fatalf("Cancel order %d: %v", id, err)
		}
		if updated.Status != domain.StatusCancelled {
			t.Errorf("order %d status = %s, want CANCELLED", id, updated.Status)
		}
		if repo.orders[id].Status != domain.StatusCancelled {
			t.Errorf("order %d cancel did not reach the repository", id)
		}
	}

	if _, err := svc.Cancel(context.Background(), 4); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("cancelling a served order: error = %v, want ErrInvalidTransition", err)
	}
}

func TestSetStatusPublishFailureDoesNotFailTransition(t *testing.T) {
	svc, repo, pub := fixture()
	pub.fail = true

	if _, err := svc.SetStatus(context.Background(), 1, domain.StatusInProgress, 10); err != nil {
		t.Fatalf("SetStatus failed on publish error: %v", err)
	}
	if repo.orders[1].Status != domain.StatusInProgress {
		t.Error("transition was rolled back on publish error")
	}
}

func TestSetPayment(t *testing.T) {
	svc, repo, _ := fixture()

	updated, err := svc.SetPayment(context.Background(), 4, "CASH_ON_DELIVERY", domain.PaymentPaid)
	if err != nil {
		t.Fatalf("SetPayment: %v", err)
	}
	if updated.PaymentStatus != domain.PaymentPaid {
		t.Errorf("payment status = %s, want PAID", updated.PaymentStatus)
	}
	if repo.orders[4].PaymentMethod != "CASH_ON_DELIVERY" {
		t.Error("payment method did not reach the repository")
	}
}
