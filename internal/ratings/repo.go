package ratings

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Rating struct {
	DishID    string    `json:"dish_id"`
	UserEmail string    `json:"user_email"`
	Stars     int       `json:"stars"`
	Comment   string    `json:"comment"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Summary struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

var ErrInvalidStars = errors.New("stars must be between 1 and 5")

type Repo struct{ DB *pgxpool.Pool }

// Upsert stores one rating per user per dish; rating again overwrites.
func (r *Repo) Upsert(ctx context.Context, dishID, userEmail string, stars int, comment string) error {
	if stars < 1 || stars > 5 {
		return ErrInvalidStars
	}
	_, err := r.DB.Exec(ctx, `
		INSERT INTO ratings(dish_id, user_email, stars, comment, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (dish_id, user_email)
		DO UPDATE SET stars=$3, comment=$4, updated_at=now()`,
		dishID, userEmail, stars, comment,
	)
	return err
}

func (r *Repo) Summarize(ctx context.Context, dishID string) (Summary, error) {
	var s Summary
	var avg *float64
	err := r.DB.QueryRow(ctx, `
		SELECT avg(stars), count(*) FROM ratings WHERE dish_id=$1`, dishID).Scan(&avg, &s.Count)
	if err != nil {
		return Summary{}, err
	}
	if avg != nil {
		s.Average = math.Round(*avg*10) / 10
	}
	return s, nil
}

// List returns the most recent ratings for a dish.
func (r *Repo) List(ctx context.Context, dishID string, limit int) ([]Rating, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT dish_id, user_email, stars, comment, updated_at
		FROM ratings WHERE dish_id=$1 ORDER BY updated_at DESC LIMIT $2`,
		dishID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Rating
	for rows.Next() {
		var rt Rating
		if err := rows.Scan(&rt.DishID, &rt.UserEmail, &rt.Stars, &rt.Comment, &rt.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}

// ForUser returns this user's rating of the dish, if any.
func (r *Repo) ForUser(ctx context.Context, dishID, userEmail string) (*Rating, error) {
	var rt Rating
	err := r.DB.QueryRow(ctx, `
		SELECT dish_id, user_email, stars, comment, updated_at
		FROM ratings WHERE dish_id=$1 AND user_email=$2`,
		dishID, userEmail).Scan(&rt.DishID, &rt.UserEmail, &rt.Stars, &rt.Comment, &rt.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rt, nil
}
