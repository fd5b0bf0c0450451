package domain

import "time"

// Staff represents a staff directory entry. The directory is read-only
// from this core's perspective; entries are managed elsewhere.
type Staff struct {
	ID        int
	Name      string
	Email     string
	Role      Role
	Status    StaffStatus
	CreatedAt time.Time
}

type Role string

const (
	RoleChef   Role = "CHEF"
	RoleWaiter Role = "WAITER"
	RoleAdmin  Role = "ADMIN"
)

type StaffStatus string

const (
	StaffInvited  StaffStatus = "INVITED"
	StaffActive   StaffStatus = "ACTIVE"
	StaffInactive StaffStatus = "INACTIVE"
)

// CanClaim reports whether the staff member's role is eligible for the
// given slot: chefs claim kitchen, waiters claim service.
func (s Staff) CanClaim(slot Slot) bool {
	switch slot {
	case SlotKitchen:
		return s.Role == RoleChef
	case SlotService:
		return s.Role == RoleWaiter
	}
	return false
}

// Eligible reports whether the staff member may act at all. Invited
// staff are treated as working (they can claim before activation
// completes); inactive staff cannot.
func (s Staff) Eligible() bool {
	return s.Status == StaffActive || s.Status == StaffInvited
}

// RoleForSlot returns the role eligible to claim the given slot.
func RoleForSlot(slot Slot) Role {
	if slot == SlotKitchen {
		return RoleChef
	}
	return RoleWaiter
}
