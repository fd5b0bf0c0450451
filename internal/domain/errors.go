package domain

import "errors"

// Error taxonomy for the order lifecycle. AlreadyClaimed is an
// expected outcome of racing clients and is recovered by re-syncing;
// InvalidTransition and NotOwner mean the caller acted on a stale
// view and must re-sync before retrying.
var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotOwner          = errors.New("acting staff does not hold the assignment slot")
	ErrAlreadyClaimed    = errors.New("slot already claimed")
	ErrInvalidState      = errors.New("order status does not allow this operation")
	ErrNotFound          = errors.New("order not found")
	ErrStaffNotFound     = errors.New("staff not found")
	ErrRoleMismatch      = errors.New("staff role does not match slot")
	ErrSyncFailure       = errors.New("synchronization failure")
)
