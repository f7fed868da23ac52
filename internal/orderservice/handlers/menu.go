package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"pos-system/internal/domain"
	"pos-system/internal/orderservice/service"
)

type MenuHandler struct {
	svc *service.MenuService
}

func NewMenuHandler(svc *service.MenuService) *MenuHandler {
	return &MenuHandler{svc: svc}
}

func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load menu")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *MenuHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req domain.UpsertMenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	item, err := h.svc.Upsert(r.Context(), req)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, item)
	case errors.Is(err, service.ErrBadMenuItem):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrMenuItemNotFound):
		writeError(w, http.StatusNotFound, "menu item not found")
	default:
		writeError(w, http.StatusInternalServerError, "failed to save menu item")
	}
}
