package menu

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Dish struct {
	ID          string   `json:"_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	PriceCents  int      `json:"price_cents"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
}

type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) List(ctx context.Context) ([]Dish, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, name, description, image, price_cents, category, tags
		FROM menu ORDER BY category, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Dish
	for rows.Next() {
		var d Dish
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.Image, &d.PriceCents, &d.Category, &d.Tags); err != nil {
			return nil, err
		}
		if d.Category == "" {
			d.Category = "Miscellaneous"
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// CatalogText renders the menu as one dish per line for the chat
// assistant's prompt.
func (r *Repo) CatalogText(ctx context.Context) (string, error) {
	dishes, err := r.List(ctx)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, d := range dishes {
		fmt.Fprintf(&b, "%s ₹%d (%s)\n", d.Name, d.PriceCents/100, d.Category)
	}
	return b.String(), nil
}

// Categories returns the distinct category names, sorted, for the
// storefront's filter bar.
func (r *Repo) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.DB.Query(ctx, `SELECT DISTINCT category FROM menu WHERE category <> ''`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return []string{"Miscellaneous"}, nil
	}
	sort.Strings(out)
	return out, nil
}
