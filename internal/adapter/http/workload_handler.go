package http

import (
	"encoding/json"
	"net/http"

	"github.com/akhilak5/cafe-ops/internal/adapter/logger"
	"github.com/akhilak5/cafe-ops/internal/domain"
	"github.com/akhilak5/cafe-ops/internal/interfaces"
)

// WorkloadHandler serves the per-staff active order counts the admin
// uses as capacity hints when assigning work.
type WorkloadHandler struct {
	service interfaces.WorkloadService
	logger  logger.Logger
}

func NewWorkloadHandler(service interfaces.WorkloadService, logger logger.Logger) *WorkloadHandler {
	return &WorkloadHandler{service: service, logger: logger}
}

func (h *WorkloadHandler) GetChefWorkload(w http.ResponseWriter, r *http.Request) {
	h.getWorkload(w, r, domain.RoleChef)
}

func (h *WorkloadHandler) GetWaiterWorkload(w http.ResponseWriter, r *http.Request) {
	h.getWorkload(w, r, domain.RoleWaiter)
}

func (h *WorkloadHandler) getWorkload(w http.ResponseWriter, r *http.Request, role domain.Role) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	samples, err := h.service.StaffWorkload(r.Context(), role)
	if err != nil {
		h.logger.Error("workload_failed", "Failed to compute workload", "", map[string]interface{}{
			"role": role,
		}, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if samples == nil {
		samples = []interfaces.WorkloadSample{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(samples)
}
