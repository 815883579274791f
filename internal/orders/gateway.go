package orders

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/yummybites/yummybites-backend/internal/kafka"
	"github.com/yummybites/yummybites-backend/internal/redisx"
)

// StatusStore is the durable side of a transition.
type StatusStore interface {
	GetStatus(ctx context.Context, orderID string) (Status, error)
	UpdateStatus(ctx context.Context, orderID string, s Status) error
}

// Broadcaster pushes a status update to every observer of an order. An error
// here is an internal broadcaster fault, not a per-connection delivery
// failure; those are absorbed inside the broadcaster as connection pruning.
type Broadcaster interface {
	Broadcast(orderID string, status Status) error
}

// EventPublisher enqueues one event onto the stream without blocking the
// caller on broker I/O.
type EventPublisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

// Actor is the authenticated caller as the identity layer describes it. The
// gateway only consumes the verdict plus the subject for audit.
type Actor interface {
	Subject() string
	CanManageOrders() bool
}

// Gateway gates and records status changes, then triggers notification.
// Hub, Events, and Cache are best-effort collaborators: once UpdateStatus
// succeeds the transition is reported as successful no matter what they do.
type Gateway struct {
	Store   StatusStore
	Hub     Broadcaster
	Events  EventPublisher // optional
	Cache   *redis.Client  // optional
	Service string
}

// RequestTransition validates the requested status, persists it, and then
// notifies watchers. Returns the new status, or one of ErrInvalidStatus,
// ErrUnauthorized, ErrNotFound, ErrPersistence. Notification failures never
// reach the caller: the status of record has already changed, and real-time
// push is an enhancement, not the system of record.
func (g *Gateway) RequestTransition(ctx context.Context, orderID, requested string, by Actor) (Status, error) {
	next, err := ParseStatus(requested)
	if err != nil {
		return "", err
	}
	if by == nil || !by.CanManageOrders() {
		return "", ErrUnauthorized
	}

	prev, err := g.Store.GetStatus(ctx, orderID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if err := g.Store.UpdateStatus(ctx, orderID, next); err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	// Durability point passed. Everything below is fire-and-forget.
	g.cacheStatus(ctx, orderID, next)
	if g.Hub != nil {
		if err := g.Hub.Broadcast(orderID, next); err != nil {
			slog.Error("status broadcast failed", "order_id", orderID, "status", next, "error", err)
		}
	}
	g.publishStatusChanged(orderID, prev, next, by.Subject())

	return next, nil
}

func (g *Gateway) cacheStatus(ctx context.Context, orderID string, s Status) {
	if g.Cache == nil {
		return
	}
	key := fmt.Sprintf(redisx.KeyOrderStatus, orderID)
	val := fmt.Sprintf(`{"status":%q}`, s)
	if err := g.Cache.Set(ctx, key, val, redisx.TTLStatusCache).Err(); err != nil {
		slog.Warn("status cache refresh failed", "order_id", orderID, "error", err)
	}
}

func (g *Gateway) publishStatusChanged(orderID string, prev, next Status, changedBy string) {
	if g.Events == nil {
		return
	}
	ev := Envelope{
		EventID:       uuid.NewString(),
		EventType:     EventOrderStatusChanged,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      g.Service,
		CorrelationID: orderID,
		Payload: kafkax.MustMarshal(StatusChangedPayload{
			OrderID:   orderID,
			OldStatus: prev,
			NewStatus: next,
			ChangedBy: changedBy,
		}),
	}
	g.Events.Publish(PartitionKey(orderID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(EventOrderStatusChanged)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
