package orders

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// StatusLogRepo records every persisted transition. With no adjacency
// guard on the status set, the log is what auditors read instead.
type StatusLogRepo struct{ DB *pgxpool.Pool }

type StatusLogEntry struct {
	OrderID   string    `json:"order_id"`
	OldStatus Status    `json:"old_status,omitempty"`
	NewStatus Status    `json:"new_status"`
	ChangedBy string    `json:"changed_by"`
	ChangedAt time.Time `json:"changed_at"`
}

func (r *StatusLogRepo) Append(ctx context.Context, e StatusLogEntry) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO order_status_log(order_id, old_status, new_status, changed_by, changed_at)
		VALUES ($1, $2, $3, $4, $5)`,
		e.OrderID, e.OldStatus, e.NewStatus, e.ChangedBy, e.ChangedAt,
	)
	return err
}

// Recent returns the latest transitions for one order, newest first.
func (r *StatusLogRepo) Recent(ctx context.Context, orderID string, limit int) ([]StatusLogEntry, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT order_id, old_status, new_status, changed_by, changed_at
		FROM order_status_log WHERE order_id=$1 ORDER BY changed_at DESC LIMIT $2`,
		orderID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StatusLogEntry
	for rows.Next() {
		var e StatusLogEntry
		if err := rows.Scan(&e.OrderID, &e.OldStatus, &e.NewStatus, &e.ChangedBy, &e.ChangedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
