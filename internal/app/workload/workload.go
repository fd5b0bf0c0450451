package workload

import (
	"time"

	"github.com/akhilak5/cafe-ops/internal/domain"
)

// Pure read-side aggregation over an order snapshot. Nothing here
// writes; malformed samples (missing timestamps, clock skew) are
// excluded rather than failing.

// Active reports whether an order counts against a staff member's
// workload. Kitchen work is active from claim until handed off at
// READY; service work is active from claim until SERVED.
func Active(o domain.Order, staffID int, role domain.Role) bool {
	switch role {
	case domain.RoleChef:
		return o.KitchenWorkerID != nil && *o.KitchenWorkerID == staffID &&
			(o.Status == domain.StatusPending || o.Status == domain.StatusInProgress)
	case domain.RoleWaiter:
		return o.ServiceWorkerID != nil && *o.ServiceWorkerID == staffID &&
			o.Status == domain.StatusReady
	}
	return false
}

// Count returns the number of orders currently active for the staff
// member in the given role.
func Count(orders []domain.Order, staffID int, role domain.Role) int {
	n := 0
	for _, o := range orders {
		if Active(o, staffID, role) {
			n++
		}
	}
	return n
}

// Window is a client-side reporting range. A zero bound is unbounded,
// so the zero Window means "all time".
type Window struct {
	From time.Time
	To   time.Time
}

func All() Window {
	return Window{}
}

// LastDays returns the rolling window of the past n days ending now.
func LastDays(n int, now time.Time) Window {
	return Window{From: now.AddDate(0, 0, -n), To: now}
}

func (w Window) Contains(t time.Time) bool {
	if !w.From.IsZero() && t.Before(w.From) {
		return false
	}
	if !w.To.IsZero() && t.After(w.To) {
		return false
	}
	return true
}

// AverageServingMinutes averages servedAt - acceptedAt over served
// orders whose servedAt falls in the window. Samples without both
// timestamps, non-positive durations, and durations above the ceiling
// are treated as clock-skew or data artifacts and excluded. staffID 0
// aggregates over all service workers. The second return is the number
// of samples that survived the filters.
func AverageServingMinutes(orders []domain.Order, staffID int, w Window, ceiling time.Duration) (float64, int) {
	var total time.Duration
	n := 0
	for _, o := range orders {
		if o.Status != domain.StatusServed {
			continue
		}
		if staffID != 0 && (o.ServiceWorkerID == nil || *o.ServiceWorkerID != staffID) {
			continue
		}
		d, ok := o.ServingDuration()
		if !ok || d <= 0 || d > ceiling {
			continue
		}
		if !w.Contains(*o.ServedAt) {
			continue
		}
		total += d
		n++
	}
	if n == 0 {
		return 0, 0
	}
	return total.Minutes() / float64(n), n
}

// DoneToday counts orders the staff member finished today: handed off
// to service for chefs, served for waiters.
func DoneToday(orders []domain.Order, staffID int, role domain.Role, now time.Time) int {
	today := now.UTC().Format("2006-01-02")
	n := 0
	for _, o := range orders {
		switch role {
		case domain.RoleChef:
			if o.KitchenWorkerID == nil || *o.KitchenWorkerID != staffID {
				continue
			}
			if o.Status != domain.StatusReady && o.Status != domain.StatusServed {
				continue
			}
		case domain.RoleWaiter:
			if o.ServiceWorkerID == nil || *o.ServiceWorkerID != staffID {
				continue
			}
			if o.Status != domain.StatusServed {
				continue
			}
		default:
			continue
		}
		if o.UpdatedAt.UTC().Format("2006-01-02") == today {
			n++
		}
	}
	return n
}
