package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/akhilak5/cafe-ops/internal/adapter/logger"
	"github.com/akhilak5/cafe-ops/internal/adapter/metrics"
	"github.com/akhilak5/cafe-ops/internal/domain"
	"github.com/akhilak5/cafe-ops/internal/interfaces"
	"github.com/shopspring/decimal"
)

type OrderHandler struct {
	ordering   interfaces.OrderingService
	lifecycle  interfaces.LifecycleService
	assignment interfaces.AssignmentService
	orderRepo  interfaces.OrderRepository
	metrics    *metrics.ServerMetrics
	logger     logger.Logger
}

func NewOrderHandler(
	ordering interfaces.OrderingService,
	lifecycle interfaces.LifecycleService,
	assignment interfaces.AssignmentService,
	orderRepo interfaces.OrderRepository,
	m *metrics.ServerMetrics,
	logger logger.Logger,
) *OrderHandler {
	return &OrderHandler{
		ordering:   ordering,
		lifecycle:  lifecycle,
		assignment: assignment,
		orderRepo:  orderRepo,
		metrics:    m,
		logger:     logger,
	}
}

type CreateOrderRequest struct {
	Items         []CreateOrderItemRequest `json:"items"`
	TableNumber   *int                     `json:"table_number,omitempty"`
	PaymentMethod string                   `json:"payment_method"`
}

type CreateOrderItemRequest struct {
	MenuItemID int             `json:"menu_item_id"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
}

type SetStatusRequest struct {
	Status  string `json:"status"`
	StaffID int    `json:"staff_id"`
}

type ClaimRequest struct {
	Slot    string `json:"slot"`
	StaffID int    `json:"staff_id"`
}

type SetPaymentRequest struct {
	Method string `json:"method"`
	Status string `json:"status"`
}

// HandleOrders serves /orders: GET lists the full raw snapshot that
// every derived view is computed from, POST creates an order.
func (h *OrderHandler) HandleOrders(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listOrders(w, r)
	case http.MethodPost:
		h.createOrder(w, r)
	default:
		h.respondError(w, "Method not allowed", http.StatusMethodNotAllowed, nil)
	}
}

// HandleOrderByID serves /orders/{id} and the mutation subresources
// /orders/{id}/{status|claim|payment}.
func (h *OrderHandler) HandleOrderByID(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) < 2 {
		h.respondError(w, "Invalid path", http.StatusBadRequest, nil)
		return
	}

	orderID, err := strconv.Atoi(parts[1])
	if err != nil {
		h.respondError(w, "Invalid order id", http.StatusBadRequest, nil)
		return
	}

	if len(parts) == 2 {
		if r.Method != http.MethodGet {
			h.respondError(w, "Method not allowed", http.StatusMethodNotAllowed, nil)
			return
		}
		h.getOrder(w, r, orderID)
		return
	}

	if r.Method != http.MethodPatch {
		h.respondError(w, "Method not allowed", http.StatusMethodNotAllowed, nil)
		return
	}

	switch parts[2] {
	case "status":
		h.setStatus(w, r, orderID)
	case "claim":
		h.claimSlot(w, r, orderID)
	case "payment":
		h.setPayment(w, r, orderID)
	default:
		h.respondError(w, "Not found", http.StatusNotFound, nil)
	}
}

func (h *OrderHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderRepo.ListAll(r.Context())
	if err != nil {
		h.logger.Error("list_orders_failed", "Failed to list orders", "", nil, err)
		h.respondError(w, "Internal server error", http.StatusInternalServerError, nil)
		return
	}

	resp := make([]OrderPayload, len(orders))
	for i := range orders {
		resp[i] = FromOrder(&orders[i])
	}
	h.respondJSON(w, http.StatusOK, resp)
}

func (h *OrderHandler) getOrder(w http.ResponseWriter, r *http.Request, orderID int) {
	order, err := h.orderRepo.FindByID(r.Context(), orderID)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, FromOrder(order))
}

func (h *OrderHandler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}

	cmd := interfaces.CreateOrderCommand{
		TableNumber:   req.TableNumber,
		PaymentMethod: req.PaymentMethod,
	}
	for _, item := range req.Items {
		cmd.Items = append(cmd.Items, interfaces.CreateOrderItemCommand{
			MenuItemID: item.MenuItemID,
			Name:       strings.TrimSpace(item.Name),
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
		})
	}

	order, err := h.ordering.CreateOrder(r.Context(), cmd)
	if err != nil {
		h.logger.Error("order_creation_failed", "Failed to create order", "", nil, err)
		h.respondError(w, err.Error(), http.StatusBadRequest, nil)
		return
	}

	h.respondJSON(w, http.StatusCreated, FromOrder(order))
}

func (h *OrderHandler) setStatus(w http.ResponseWriter, r *http.Request, orderID int) {
	var req SetStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}

	target := domain.Status(req.Status)
	if !target.Valid() {
		h.respondError(w, "Unknown status", http.StatusBadRequest, nil)
		return
	}

	var order *domain.Order
	var err error
	if target == domain.StatusCancelled {
		order, err = h.lifecycle.Cancel(r.Context(), orderID)
	} else {
		order, err = h.lifecycle.SetStatus(r.Context(), orderID, target, req.StaffID)
	}
	if err != nil {
		h.respondDomainError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, FromOrder(order))
}

func (h *OrderHandler) claimSlot(w http.ResponseWriter, r *http.Request, orderID int) {
	var req ClaimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}

	slot := domain.Slot(strings.ToUpper(req.Slot))
	if !slot.Valid() {
		h.respondError(w, "Unknown slot", http.StatusBadRequest, nil)
		return
	}

	order, err := h.assignment.Claim(r.Context(), orderID, slot, req.StaffID)
	if err != nil {
		if h.metrics != nil && codeFor(err) == CodeAlreadyClaimed {
			h.metrics.ClaimConflicts.Inc()
		}
		h.respondDomainError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, FromOrder(order))
}

func (h *OrderHandler) setPayment(w http.ResponseWriter, r *http.Request, orderID int) {
	var req SetPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}

	status := domain.PaymentStatus(req.Status)
	if status != domain.PaymentPending && status != domain.PaymentPaid {
		h.respondError(w, "Unknown payment status", http.StatusBadRequest, nil)
		return
	}

	order, err := h.lifecycle.SetPayment(r.Context(), orderID, req.Method, status)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, FromOrder(order))
}

func (h *OrderHandler) respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func (h *OrderHandler) respondDomainError(w http.ResponseWriter, err error) {
	code := codeFor(err)
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request_failed", "Unexpected error", "", nil, err)
		h.respondError(w, "Internal server error", status, nil)
		return
	}
	h.respondError(w, err.Error(), status, &code)
}

func (h *OrderHandler) respondError(w http.ResponseWriter, message string, status int, code *string) {
	resp := ErrorResponse{Error: message}
	if code != nil {
		resp.Code = *code
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}
