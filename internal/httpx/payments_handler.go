package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/yummybites/yummybites-backend/internal/kafka"
	"github.com/yummybites/yummybites-backend/internal/orders"
	"github.com/yummybites/yummybites-backend/internal/payments"
	"github.com/yummybites/yummybites-backend/internal/redisx"
)

type PaymentsHandler struct {
	Client    *payments.Client
	Repo      *payments.Repo
	Redis     *redis.Client
	KeySecret string

	ProducerCaptured *kafkax.Producer // order.payment.captured
	ProducerFailed   *kafkax.Producer // order.payment.failed
	Service          string
}

type createPaymentReq struct {
	AmountCents int `json:"amount_cents"`
}

type verifyPaymentReq struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

// webhookEvent mirrors the slice of the processor's payload we act on.
type webhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID               string `json:"id"`
				OrderID          string `json:"order_id"`
				Amount           int    `json:"amount"`
				ErrorDescription string `json:"error_description"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

func (h *PaymentsHandler) Register(r chi.Router) {
	r.Post("/api/v1/payment/create-order", h.createOrder)
	r.Post("/api/v1/payment/verify", h.verify)
	r.Post("/api/v1/payment/webhook", h.webhook)
}

func (h *PaymentsHandler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req createPaymentReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	po, err := h.Client.CreateOrder(req.AmountCents)
	if err != nil {
		slog.Error("provider order creation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create payment order")
		return
	}
	writeJSON(w, http.StatusOK, po)
}

func (h *PaymentsHandler) verify(w http.ResponseWriter, r *http.Request) {
	var req verifyPaymentReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	if !payments.VerifyCheckoutSignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature, h.KeySecret) {
		writeError(w, http.StatusBadRequest, "invalid payment signature")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// webhook is the trustworthy capture/failure path: the processor calls it
// directly and signs the raw body. It must answer 200 quickly, so heavy
// lifting is limited to one upsert and one event publish.
func (h *PaymentsHandler) webhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable body")
		return
	}

	if !payments.VerifyWebhookSignature(body, r.Header.Get("X-Razorpay-Signature"), h.KeySecret) {
		writeError(w, http.StatusBadRequest, "invalid webhook signature")
		return
	}

	var ev webhookEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	ent := ev.Payload.Payment.Entity

	// Providers redeliver webhooks; the payment id dedups them.
	if ent.ID != "" {
		key := fmt.Sprintf(redisx.KeyIdemPayment, ent.ID)
		if seen, _ := redisx.Exists(ctx, h.Redis, key); seen {
			writeJSON(w, http.StatusOK, map[string]string{"status": "webhook received"})
			return
		}
		_ = h.Redis.Set(ctx, key, "1", redisx.TTLIdempotency).Err()
	}

	switch ev.Event {
	case "payment.captured":
		if err := h.Repo.RecordCaptured(ctx, ent.OrderID, ent.ID, ent.Amount); err != nil {
			slog.Error("payment capture record failed", "provider_order_id", ent.OrderID, "error", err)
		}
		h.publish(h.ProducerCaptured, orders.EventPaymentCaptured, ent.OrderID, orders.PaymentCapturedPayload{
			ProviderOrderID: ent.OrderID,
			PaymentID:       ent.ID,
			AmountCents:     ent.Amount,
		})
	case "payment.failed":
		if err := h.Repo.RecordFailed(ctx, ent.OrderID, ent.ErrorDescription); err != nil {
			slog.Error("payment failure record failed", "provider_order_id", ent.OrderID, "error", err)
		}
		h.publish(h.ProducerFailed, orders.EventPaymentFailed, ent.OrderID, orders.PaymentFailedPayload{
			ProviderOrderID: ent.OrderID,
			Reason:          ent.ErrorDescription,
		})
	}

	// The processor expects a prompt 200 regardless of event type.
	writeJSON(w, http.StatusOK, map[string]string{"status": "webhook received"})
}

func (h *PaymentsHandler) publish(p *kafkax.Producer, eventType, correlationID string, payload any) {
	if p == nil {
		return
	}
	env := orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		CorrelationID: correlationID,
	}
	env.Payload = kafkax.MustMarshal(payload)
	p.Publish(orders.PartitionKey(correlationID), kafkax.MustMarshal(env),
		kafkago.Header{Key: "x-event-type", Value: []byte(eventType)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
