package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/yummybites/yummybites-backend/internal/kafka"
	"github.com/yummybites/yummybites-backend/internal/orders"
	"github.com/yummybites/yummybites-backend/internal/redisx"
)

// Service consumes order.status.changed events and keeps the read-side
// warm: the Redis status cache, the status log table, and the daily order
// counters the dashboard reads.
type Service struct {
	Log         *orders.StatusLogRepo
	Redis       *redis.Client
	ServiceName string
}

// HandleStatusChanged is the consumer handler. Returning nil commits the
// offset, so every step must be idempotent; dedup by event id catches
// redeliveries.
func (s *Service) HandleStatusChanged(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != orders.EventOrderStatusChanged {
		return nil // ignore
	}

	dkey := fmt.Sprintf(redisx.KeyDedup, s.ServiceName, env.EventID)
	if seen, _ := redisx.Exists(ctx, s.Redis, dkey); seen {
		return nil
	}
	_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()

	p, err := kafkax.UnwrapPayload[orders.StatusChangedPayload](env.Payload)
	if err != nil {
		return err
	}

	// Refresh the status cache so GETs stay fast even when the API's own
	// best-effort cache write was lost.
	ckey := fmt.Sprintf(redisx.KeyOrderStatus, p.OrderID)
	val := fmt.Sprintf(`{"status":%q}`, p.NewStatus)
	if err := s.Redis.Set(ctx, ckey, val, redisx.TTLStatusCache).Err(); err != nil {
		slog.Warn("cache refresh failed", "order_id", p.OrderID, "error", err)
	}

	skey := fmt.Sprintf(redisx.KeyDailyOrders, env.OccurredAt.Format("2006-01-02"))
	if err := s.Redis.Incr(ctx, skey).Err(); err == nil {
		_ = s.Redis.Expire(ctx, skey, redisx.TTLDailyStats).Err()
	}

	return s.Log.Append(ctx, orders.StatusLogEntry{
		OrderID:   p.OrderID,
		OldStatus: p.OldStatus,
		NewStatus: p.NewStatus,
		ChangedBy: p.ChangedBy,
		ChangedAt: env.OccurredAt,
	})
}
