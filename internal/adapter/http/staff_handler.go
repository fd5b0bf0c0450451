package http

import (
	"encoding/json"
	"net/http"

	"github.com/akhilak5/cafe-ops/internal/adapter/logger"
	"github.com/akhilak5/cafe-ops/internal/interfaces"
)

type StaffHandler struct {
	staffRepo interfaces.StaffRepository
	logger    logger.Logger
}

func NewStaffHandler(staffRepo interfaces.StaffRepository, logger logger.Logger) *StaffHandler {
	return &StaffHandler{staffRepo: staffRepo, logger: logger}
}

func (h *StaffHandler) ListStaff(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	staff, err := h.staffRepo.ListAll(r.Context())
	if err != nil {
		h.logger.Error("list_staff_failed", "Failed to list staff", "", nil, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	resp := make([]StaffPayload, len(staff))
	for i, s := range staff {
		resp[i] = FromStaff(s)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
