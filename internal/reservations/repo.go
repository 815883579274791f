package reservations

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Reservation struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	TableNo   int    `json:"tableNo"`
	Phone     string `json:"phone"`
	Date      string `json:"date"`
	Time      string `json:"time"`
}

var ErrTableBooked = errors.New("table already booked for that slot")

type Repo struct{ DB *pgxpool.Pool }

// Book inserts the reservation; the unique (table_no, date, time) constraint
// makes a double-booking race lose cleanly.
func (r *Repo) Book(ctx context.Context, res Reservation) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO reservations(first_name, last_name, table_no, phone, date, time)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		res.FirstName, res.LastName, res.TableNo, res.Phone, res.Date, res.Time,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrTableBooked
	}
	return err
}
