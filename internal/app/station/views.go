package station

import (
	"github.com/akhilak5/cafe-ops/internal/domain"
)

// Session identifies the authenticated staff member a station client
// runs for. The staff id is carried explicitly; it is never re-derived
// by matching identity strings against the directory on every poll.
type Session struct {
	StaffID int
	Role    domain.Role
}

// Views are the role-specific lists a client derives locally from the
// global order snapshot. There is no server-side per-role endpoint;
// every client filters the same raw list.
type Views struct {
	// Pool is the shared unclaimed pool: orders visible to every
	// eligible staff member of the role because the relevant slot is
	// still empty. It is not partitioned by staff identity.
	Pool []domain.Order
	// Active are the session staff member's claimed, unfinished orders.
	Active []domain.Order
	// History are the session staff member's finished orders.
	History []domain.Order
	// Events are the notification events derived from this snapshot,
	// recomputed from scratch on every poll.
	Events []domain.Event
}

// StaffVisible is the table-requirement policy: orders without a table
// reference are excluded from every staff-facing derived view while
// remaining in the raw snapshot. Named and deliberate, because it also
// hides tableless takeout-style orders if that linkage ever becomes
// optional elsewhere.
func StaffVisible(o domain.Order) bool {
	return o.TableNumber != nil
}

// Derive computes the role views for one snapshot. It is a pure
// function of the order list and the session, so a push-based
// transport could replace polling without touching it.
func Derive(orders []domain.Order, sess Session) Views {
	var v Views

	for _, o := range orders {
		if !StaffVisible(o) {
			continue
		}

		switch sess.Role {
		case domain.RoleChef:
			deriveChef(&v, o, sess.StaffID)
		case domain.RoleWaiter:
			deriveWaiter(&v, o, sess.StaffID)
		case domain.RoleAdmin:
			deriveAdmin(&v, o)
		}
	}

	return v
}

func deriveChef(v *Views, o domain.Order, staffID int) {
	if o.Status == domain.StatusPending && o.KitchenWorkerID == nil {
		v.Pool = append(v.Pool, o)
		v.Events = append(v.Events, domain.NewEvent(domain.EventNewOrder, o.ID))
		return
	}

	if o.KitchenWorkerID == nil || *o.KitchenWorkerID != staffID {
		return
	}

	switch o.Status {
	case domain.StatusPending:
		// Claimed but not yet started: admin filled the slot on this
		// chef's behalf.
		v.Active = append(v.Active, o)
		v.Events = append(v.Events, domain.NewEvent(domain.EventAdminAssigned, o.ID))
	case domain.StatusInProgress:
		v.Active = append(v.Active, o)
	case domain.StatusReady, domain.StatusServed, domain.StatusCancelled:
		v.History = append(v.History, o)
	}
}

func deriveWaiter(v *Views, o domain.Order, staffID int) {
	if o.Status == domain.StatusReady && o.ServiceWorkerID == nil {
		v.Pool = append(v.Pool, o)
		v.Events = append(v.Events, domain.NewEvent(domain.EventReadyForService, o.ID))
		return
	}

	if o.ServiceWorkerID == nil || *o.ServiceWorkerID != staffID {
		return
	}

	switch o.Status {
	case domain.StatusReady:
		v.Active = append(v.Active, o)
	case domain.StatusServed:
		v.History = append(v.History, o)
	}
}

func deriveAdmin(v *Views, o domain.Order) {
	if o.Status.IsTerminal() {
		v.History = append(v.History, o)
		return
	}
	v.Active = append(v.Active, o)
}
