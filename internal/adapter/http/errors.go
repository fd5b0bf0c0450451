package http

import (
	"errors"
	"net/http"

	"github.com/akhilak5/cafe-ops/internal/domain"
)

// Stable error codes carried in ErrorResponse. The station client maps
// them back to the domain sentinels, so the taxonomy round-trips the
// HTTP boundary.
const (
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeNotOwner          = "NOT_OWNER"
	CodeAlreadyClaimed    = "ALREADY_CLAIMED"
	CodeInvalidState      = "INVALID_STATE"
	CodeNotFound          = "NOT_FOUND"
	CodeRoleMismatch      = "ROLE_MISMATCH"
)

func codeFor(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidTransition):
		return CodeInvalidTransition
	case errors.Is(err, domain.ErrNotOwner):
		return CodeNotOwner
	case errors.Is(err, domain.ErrAlreadyClaimed):
		return CodeAlreadyClaimed
	case errors.Is(err, domain.ErrInvalidState):
		return CodeInvalidState
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrStaffNotFound):
		return CodeNotFound
	case errors.Is(err, domain.ErrRoleMismatch):
		return CodeRoleMismatch
	}
	return ""
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrStaffNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNotOwner), errors.Is(err, domain.ErrRoleMismatch):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrAlreadyClaimed), errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidState):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// ErrorFromCode is the client-side inverse of codeFor.
func ErrorFromCode(code string) error {
	switch code {
	case CodeInvalidTransition:
		return domain.ErrInvalidTransition
	case CodeNotOwner:
		return domain.ErrNotOwner
	case CodeAlreadyClaimed:
		return domain.ErrAlreadyClaimed
	case CodeInvalidState:
		return domain.ErrInvalidState
	case CodeNotFound:
		return domain.ErrNotFound
	case CodeRoleMismatch:
		return domain.ErrRoleMismatch
	}
	return nil
}
