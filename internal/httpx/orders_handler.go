package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/yummybites/yummybites-backend/internal/auth"
	kafkax "github.com/yummybites/yummybites-backend/internal/kafka"
	"github.com/yummybites/yummybites-backend/internal/orders"
	"github.com/yummybites/yummybites-backend/internal/redisx"
)

type OrdersHandler struct {
	Repo     *orders.Repo
	Gateway  *orders.Gateway
	Tokens   *auth.Service
	Redis    *redis.Client
	Producer *kafkax.Producer // order.placed
	Service  string
}

type placeOrderReq struct {
	Items    []orders.Item          `json:"items"`
	Delivery orders.DeliveryDetails `json:"delivery_details"`
}

type placeOrderResp struct {
	Message    string        `json:"message"`
	OrderID    string        `json:"order_id"`
	TotalCents int           `json:"total_cents"`
	Status     orders.Status `json:"status"`
}

type statusPatchReq struct {
	Status string `json:"status"`
}

func (h *OrdersHandler) Register(r chi.Router) {
	r.Post("/api/v1/order/place", h.placeOrder)
	r.Get("/api/v1/order/history", h.history)
	r.Get("/api/v1/order/{id}", h.getOrder)
	r.Get("/api/v1/order/{id}/status", h.getStatus)
	r.Patch("/api/v1/order/{id}/status", h.patchStatus)
}

func (h *OrdersHandler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, "your cart is empty")
		return
	}

	// Guests can order; a valid token just links the order to the account.
	userEmail := "guest"
	if id, ok := identify(h.Tokens, r); ok {
		userEmail = id.Email
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	orderID, total, err := h.Repo.PlaceOrder(ctx, userEmail, req.Items, req.Delivery)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Cache the initial status so the first GET never hits the database.
	statusKey := fmt.Sprintf(redisx.KeyOrderStatus, orderID)
	_ = h.Redis.Set(ctx, statusKey, `{"status":"Pending"}`, redisx.TTLStatusCache).Err()

	ev := orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     orders.EventOrderPlaced,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		TraceID:       r.Header.Get("X-Request-Id"),
		CorrelationID: orderID,
	}
	ev.Payload = kafkax.MustMarshal(orders.OrderPlacedPayload{
		OrderID:    orderID,
		UserEmail:  userEmail,
		Items:      req.Items,
		TotalCents: total,
	})
	h.Producer.Publish(orders.PartitionKey(orderID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(orders.EventOrderPlaced)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)

	writeJSON(w, http.StatusCreated, placeOrderResp{
		Message:    "Order placed successfully!",
		OrderID:    orderID,
		TotalCents: total,
		Status:     orders.StatusPending,
	})
}

func (h *OrdersHandler) history(w http.ResponseWriter, r *http.Request) {
	id, ok := identify(h.Tokens, r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "please log in to view order history")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	list, err := h.Repo.ListByUser(ctx, id.Email, 50)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *OrdersHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	o, err := h.Repo.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, orders.ErrNotFound) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// getStatus serves the status alone, cache first. Reconnecting observers
// hit this for their snapshot before resuming the socket stream.
func (h *OrdersHandler) getStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	key := fmt.Sprintf(redisx.KeyOrderStatus, orderID)
	if s, err := h.Redis.Get(ctx, key).Result(); err == nil && s != "" {
		writeJSON(w, http.StatusOK, json.RawMessage(s))
		return
	}

	status, err := h.Repo.GetStatus(ctx, orderID)
	if err != nil {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}
	body, _ := json.Marshal(map[string]any{"status": status})
	_ = h.Redis.Set(ctx, key, body, redisx.TTLStatusCache).Err()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (h *OrdersHandler) patchStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	var req statusPatchReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	id, ok := identify(h.Tokens, r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	newStatus, err := h.Gateway.RequestTransition(ctx, orderID, req.Status, id)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]string{
			"message": fmt.Sprintf("Order status updated to %q", newStatus),
		})
	case errors.Is(err, orders.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid status; must be one of %v", orders.AllStatuses()))
	case errors.Is(err, orders.ErrUnauthorized):
		writeError(w, http.StatusForbidden, "admin access required")
	case errors.Is(err, orders.ErrNotFound):
		writeError(w, http.StatusNotFound, "order not found")
	default:
		writeError(w, http.StatusInternalServerError, "status update failed")
	}
}
