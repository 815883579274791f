package auth

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrEmailTaken   = errors.New("email already registered")
	ErrUserNotFound = errors.New("user not found")
)

type User struct {
	Email        string
	Name         string
	PasswordHash []byte
	Role         string
	CreatedAt    time.Time
}

type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) Create(ctx context.Context, email, name string, passwordHash []byte) error {
	ct, err := r.DB.Exec(ctx, `
		INSERT INTO users(email, name, password_hash, role)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO NOTHING`,
		email, name, passwordHash, RoleUser,
	)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrEmailTaken
	}
	return nil
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := r.DB.QueryRow(ctx, `
		SELECT email, name, password_hash, role, created_at
		FROM users WHERE email=$1`, email).Scan(
		&u.Email, &u.Name, &u.PasswordHash, &u.Role, &u.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *Repo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&n)
	return n, err
}
