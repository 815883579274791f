package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

// PlaceOrder stores a new order with its items inside one transaction.
// The order starts as Pending; the total is computed server-side from the
// submitted line items.
func (r *Repo) PlaceOrder(ctx context.Context, userEmail string, items []Item, d DeliveryDetails) (orderID string, total int, err error) {
	if len(items) == 0 {
		return "", 0, errors.New("empty cart")
	}
	for _, it := range items {
		if it.Qty <= 0 {
			return "", 0, fmt.Errorf("invalid qty for dish %s", it.DishID)
		}
		if it.PriceCents < 0 {
			return "", 0, fmt.Errorf("invalid price for dish %s", it.DishID)
		}
		total += it.PriceCents * it.Qty
	}

	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return "", 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	orderID = uuid.NewString()
	_, err = tx.Exec(ctx, `
		INSERT INTO orders(id, user_email, status, total_cents,
		                   delivery_name, delivery_phone, delivery_address, delivery_instructions)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, orderID, userEmail, StatusPending, total, d.Name, d.Phone, d.Address, d.Instructions)
	if err != nil {
		return "", 0, err
	}

	for _, it := range items {
		_, err = tx.Exec(ctx, `
			INSERT INTO order_items(order_id, dish_id, name, qty, price_cents)
			VALUES ($1, $2, $3, $4, $5)`,
			orderID, it.DishID, it.Name, it.Qty, it.PriceCents,
		)
		if err != nil {
			return "", 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", 0, err
	}
	return orderID, total, nil
}

func (r *Repo) GetOrder(ctx context.Context, orderID string) (Order, error) {
	var o Order
	err := r.DB.QueryRow(ctx, `
		SELECT id, user_email, status, total_cents,
		       delivery_name, delivery_phone, delivery_address, delivery_instructions,
		       created_at, updated_at
		FROM orders WHERE id=$1`, orderID).Scan(
		&o.ID, &o.UserEmail, &o.Status, &o.Total,
		&o.Delivery.Name, &o.Delivery.Phone, &o.Delivery.Address, &o.Delivery.Instructions,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, err
	}

	byOrder, err := r.itemsFor(ctx, []string{orderID})
	if err != nil {
		return Order{}, err
	}
	o.Items = byOrder[orderID]
	return o, nil
}

func (r *Repo) GetStatus(ctx context.Context, orderID string) (Status, error) {
	var s string
	err := r.DB.QueryRow(ctx, `SELECT status FROM orders WHERE id=$1`, orderID).Scan(&s)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return Status(s), nil
}

// UpdateStatus is the durability point of a transition.
func (r *Repo) UpdateStatus(ctx context.Context, orderID string, s Status) error {
	ct, err := r.DB.Exec(ctx, `UPDATE orders SET status=$2, updated_at=now() WHERE id=$1`, orderID, s)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByUser returns the user's orders, newest first, items included.
func (r *Repo) ListByUser(ctx context.Context, userEmail string, limit int) ([]Order, error) {
	return r.list(ctx, `
		SELECT id, user_email, status, total_cents,
		       delivery_name, delivery_phone, delivery_address, delivery_instructions,
		       created_at, updated_at
		FROM orders WHERE user_email=$1 ORDER BY created_at DESC LIMIT $2`, userEmail, limit)
}

// ListAll returns the most recent orders across all users (admin view).
func (r *Repo) ListAll(ctx context.Context, limit int) ([]Order, error) {
	return r.list(ctx, `
		SELECT id, user_email, status, total_cents,
		       delivery_name, delivery_phone, delivery_address, delivery_instructions,
		       created_at, updated_at
		FROM orders ORDER BY created_at DESC LIMIT $1`, limit)
}

func (r *Repo) list(ctx context.Context, query string, args ...any) ([]Order, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Order
	var ids []string
	for rows.Next() {
		var o Order
		if err := rows.Scan(
			&o.ID, &o.UserEmail, &o.Status, &o.Total,
			&o.Delivery.Name, &o.Delivery.Phone, &o.Delivery.Address, &o.Delivery.Instructions,
			&o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	byOrder, err := r.itemsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Items = byOrder[out[i].ID]
	}
	return out, nil
}

func (r *Repo) itemsFor(ctx context.Context, orderIDs []string) (map[string][]Item, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT order_id, dish_id, name, qty, price_cents
		FROM order_items WHERE order_id = ANY($1) ORDER BY id`, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byOrder := map[string][]Item{}
	for rows.Next() {
		var oid string
		var it Item
		if err := rows.Scan(&oid, &it.DishID, &it.Name, &it.Qty, &it.PriceCents); err != nil {
			return nil, err
		}
		byOrder[oid] = append(byOrder[oid], it)
	}
	return byOrder, rows.Err()
}

func (r *Repo) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	err := r.DB.QueryRow(ctx, `
		SELECT count(*),
		       count(*) FILTER (WHERE status=$1),
		       coalesce(sum(total_cents) FILTER (WHERE status=$2), 0)
		FROM orders`, StatusPending, StatusDelivered).Scan(
		&st.TotalOrders, &st.PendingOrders, &st.RevenueCents,
	)
	return st, err
}
