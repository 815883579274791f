package redisx

import "time"

const (
	// Latest order status for fast GETs: order_status:{order_id} -> {"status":"..."}
	KeyOrderStatus = "order_status:%s"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"

	// Idempotency for webhook deliveries: idem:payment:{payment_id}
	KeyIdemPayment = "idem:payment:%s"

	// Daily order counter for the dashboard: stats:orders:{yyyy-mm-dd}
	KeyDailyOrders = "stats:orders:%s"
)

var (
	TTLStatusCache = 5 * time.Minute
	TTLDedup       = 48 * time.Hour
	TTLIdempotency = 24 * time.Hour
	TTLDailyStats  = 7 * 24 * time.Hour
)
