package orders

import (
	"encoding/json"
	"time"
)

const (
	EventOrderPlaced        = "OrderPlaced"
	EventOrderStatusChanged = "OrderStatusChanged"
	EventPaymentCaptured    = "PaymentCaptured"
	EventPaymentFailed      = "PaymentFailed"
)

// Envelope wraps every event on the stream. Payload carries the
// event-specific body; CorrelationID is the order id where one exists.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

type OrderPlacedPayload struct {
	OrderID    string `json:"order_id"`
	UserEmail  string `json:"user_email"`
	Items      []Item `json:"items"`
	TotalCents int    `json:"total_cents"`
}

type StatusChangedPayload struct {
	OrderID   string `json:"order_id"`
	OldStatus Status `json:"old_status,omitempty"`
	NewStatus Status `json:"new_status"`
	ChangedBy string `json:"changed_by"`
}

type PaymentCapturedPayload struct {
	ProviderOrderID string `json:"provider_order_id"`
	PaymentID       string `json:"payment_id"`
	AmountCents     int    `json:"amount_cents"`
}

type PaymentFailedPayload struct {
	ProviderOrderID string `json:"provider_order_id"`
	Reason          string `json:"reason"`
}
