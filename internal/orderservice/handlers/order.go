package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"pos-system/internal/domain"
	"pos-system/internal/orderservice/service"
)

type OrderHandler struct {
	svc *service.OrderService
}

func NewOrderHandler(svc *service.OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	order, err := h.svc.Create(r.Context(), req)
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, order)
	case errors.Is(err, service.ErrNoItems),
		errors.Is(err, service.ErrBadQuantity),
		errors.Is(err, service.ErrBadPrice):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "failed to create order")
	}
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.ListAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list orders")
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.ListOpen(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list orders")
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	var req domain.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	target, err := domain.ParseStatus(req.Status)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown status: "+req.Status)
		return
	}

	order, err := h.svc.Advance(r.Context(), id, target, r.Header.Get("X-Display-Name"))
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, order)
	case errors.Is(err, domain.ErrOrderNotFound):
		writeError(w, http.StatusNotFound, "order not found")
	case errors.Is(err, domain.ErrInvalidTransition):
		writeError(w, http.StatusConflict, "invalid status transition")
	default:
		writeError(w, http.StatusInternalServerError, "failed to update order")
	}
}
