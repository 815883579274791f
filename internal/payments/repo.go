package payments

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repo keeps the audit trail of processor events, one row per provider
// order, upserted as webhook deliveries arrive.
type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) RecordCaptured(ctx context.Context, providerOrderID, paymentID string, amountCents int) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO payments(provider_order_id, payment_id, amount_cents, status, webhook_verified, captured_at)
		VALUES ($1, $2, $3, 'captured', true, $4)
		ON CONFLICT (provider_order_id)
		DO UPDATE SET payment_id=$2, amount_cents=$3, status='captured', webhook_verified=true, captured_at=$4`,
		providerOrderID, paymentID, amountCents, time.Now().UTC(),
	)
	return err
}

func (r *Repo) RecordFailed(ctx context.Context, providerOrderID, reason string) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO payments(provider_order_id, status, error_description, failed_at)
		VALUES ($1, 'failed', $2, $3)
		ON CONFLICT (provider_order_id)
		DO UPDATE SET status='failed', error_description=$2, failed_at=$3`,
		providerOrderID, reason, time.Now().UTC(),
	)
	return err
}
