package station

import (
	"testing"

	"github.com/akhilak5/cafe-ops/internal/domain"
)

func intPtr(v int) *int { return &v }

func order(id int, status domain.Status, kitchen, service *int) domain.Order {
	return domain.Order{
		ID:              id,
		Status:          status,
		KitchenWorkerID: kitchen,
		ServiceWorkerID: service,
		TableNumber:     intPtr(4),
	}
}

func orderIDs(orders []domain.Order) []int {
	ids := make([]int, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}
	return ids
}

func eventIDs(events []domain.Event) []string {
	ids := make([]string, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}
	return ids
}

func sameInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestDeriveChef(t *testing.T) {
	orders := []domain.Order{
		order(1, domain.StatusPending, nil, nil),
		order(2, domain.StatusPending, intPtr(7), nil),
		order(3, domain.StatusInProgress, intPtr(7), nil),
		order(4, domain.StatusInProgress, intPtr(8), nil),
		order(5, domain.StatusReady, intPtr(7), nil),
		order(6, domain.StatusServed, intPtr(7), intPtr(9)),
		order(7, domain.StatusCancelled, intPtr(7), nil),
	}

	v := Derive(orders, Session{StaffID: 7, Role: domain.RoleChef})

	if got := orderIDs(v.Pool); !sameInts(got, []int{1}) {
		t.Errorf("pool = %v, want [1]", got)
	}
	if got := orderIDs(v.Active); !sameInts(got, []int{2, 3}) {
		t.Errorf("active = %v, want [2 3]", got)
	}
	if got := orderIDs(v.History); !sameInts(got, []int{5, 6, 7}) {
		t.Errorf("history = %v, want [5 6 7]", got)
	}
}

func TestDeriveChefEvents(t *testing.T) {
	orders := []domain.Order{
		order(1, domain.StatusPending, nil, nil),
		order(2, domain.StatusPending, intPtr(7), nil),
	}

	v := Derive(orders, Session{StaffID: 7, Role: domain.RoleChef})

	ids := eventIDs(v.Events)
	if len(ids) != 2 || ids[0] != "NEW_ORDER-1" || ids[1] != "ADMIN_ASSIGNED-2" {
		t.Errorf("event ids = %v, want [NEW_ORDER-1 ADMIN_ASSIGNED-2]", ids)
	}
}

func TestDeriveWaiter(t *testing.T) {
	orders := []domain.Order{
		order(1, domain.StatusPending, nil, nil),
		order(2, domain.StatusReady, intPtr(7), nil),
		order(3, domain.StatusReady, intPtr(7), intPtr(9)),
		order(4, domain.StatusReady, intPtr(7), intPtr(10)),
		order(5, domain.StatusServed, intPtr(7), intPtr(9)),
	}

	v := Derive(orders, Session{StaffID: 9, Role: domain.RoleWaiter})

	if got := orderIDs(v.Pool); !sameInts(got, []int{2}) {
		t.Errorf("pool = %v, want [2]", got)
	}
	if got := orderIDs(v.Active); !sameInts(got, []int{3}) {
		t.Errorf("active = %v, want [3]", got)
	}
	if got := orderIDs(v.History); !sameInts(got, []int{5}) {
		t.Errorf("history = %v, want [5]", got)
	}
	ids := eventIDs(v.Events)
	if len(ids) != 1 || ids[0] != "READY_FOR_SERVICE-2" {
		t.Errorf("event ids = %v, want [READY_FOR_SERVICE-2]", ids)
	}
}

func TestDerivePoolIsShared(t *testing.T) {
	orders := []domain.Order{
		order(1, domain.StatusPending, nil, nil),
	}

	a := Derive(orders, Session{StaffID: 7, Role: domain.RoleChef})
	b := Derive(orders, Session{StaffID: 8, Role: domain.RoleChef})

	if len(a.Pool) != 1 || len(b.Pool) != 1 {
		t.Error("the unclaimed pool must be visible to every chef, not partitioned")
	}
}

func TestDeriveAdmin(t *testing.T) {
	orders := []domain.Order{
		order(1, domain.StatusPending, nil, nil),
		order(2, domain.StatusInProgress, intPtr(7), nil),
		order(3, domain.StatusServed, intPtr(7), intPtr(9)),
		order(4, domain.StatusCancelled, nil, nil),
	}

	v := Derive(orders, Session{StaffID: 1, Role: domain.RoleAdmin})

	if got := orderIDs(v.Active); !sameInts(got, []int{1, 2}) {
		t.Errorf("active = %v, want [1 2]", got)
	}
	if got := orderIDs(v.History); !sameInts(got, []int{3, 4}) {
		t.Errorf("history = %v, want [3 4]", got)
	}
	if len(v.Pool) != 0 {
		t.Errorf("admin pool = %v, want empty", orderIDs(v.Pool))
	}
}

func TestDeriveExcludesTablelessOrders(t *testing.T) {
	tableless := domain.Order{ID: 1, Status: domain.StatusPending}

	for _, role := range []domain.Role{domain.RoleChef, domain.RoleWaiter, domain.RoleAdmin} {
		v := Derive([]domain.Order{tableless}, Session{StaffID: 7, Role: role})
		if len(v.Pool)+len(v.Active)+len(v.History) != 0 {
			t.Errorf("role %s: order without a table leaked into a staff view", role)
		}
		if len(v.Events) != 0 {
			t.Errorf("role %s: order without a table produced events", role)
		}
	}
}
