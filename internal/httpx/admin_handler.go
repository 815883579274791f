package httpx

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/yummybites/yummybites-backend/internal/auth"
	"github.com/yummybites/yummybites-backend/internal/orders"
	"github.com/yummybites/yummybites-backend/internal/ws"
)

type AdminHandler struct {
	Orders *orders.Repo
	Log    *orders.StatusLogRepo
	Users  *auth.Repo
	Hub    *ws.Hub
	Tokens *auth.Service
}

func (h *AdminHandler) Register(r chi.Router) {
	r.Get("/api/v1/admin/orders", h.listOrders)
	r.Get("/api/v1/admin/orders/{id}/log", h.orderLog)
	r.Get("/api/v1/admin/stats", h.stats)
}

func (h *AdminHandler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	id, ok := identify(h.Tokens, r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return false
	}
	if !id.CanManageOrders() {
		writeError(w, http.StatusForbidden, "admin access required")
		return false
	}
	return true
}

func (h *AdminHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	list, err := h.Orders.ListAll(ctx, 200)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *AdminHandler) orderLog(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	orderID := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	entries, err := h.Log.Recent(ctx, orderID, 50)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *AdminHandler) stats(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	st, err := h.Orders.Stats(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	users, err := h.Users.Count(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"total_orders":   st.TotalOrders,
		"pending_orders": st.PendingOrders,
		"total_revenue":  st.RevenueCents,
		"total_users":    users,
		"watched_orders": h.Hub.ActiveOrders(),
	})
}
