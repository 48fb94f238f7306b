package repo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"wellnest/internal/models"
)

func (r *Repo) CreateUser(ctx context.Context, email, passwordHash string) (string, error) {
	var id string
	err := r.Pool.QueryRow(ctx, `INSERT INTO users (email, password_hash) VALUES ($1, $2) RETURNING id`, email, passwordHash).Scan(&id)
	return id, err
}

func (r *Repo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.Pool.QueryRow(ctx, `SELECT id, email, password_hash, created_at, updated_at FROM users WHERE email=$1`, email).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repo) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	var u models.User
	err := r.Pool.QueryRow(ctx, `SELECT id, email, password_hash, created_at, updated_at FROM users WHERE id=$1`, userID).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repo) CreateSession(ctx context.Context, userID, token string, expiresAt time.Time) error {
	_, err := r.Pool.Exec(ctx, `INSERT INTO sessions (user_id, token, expires_at) VALUES ($1, $2, $3)`, userID, token, expiresAt)
	return err
}

func (r *Repo) DeleteSession(ctx context.Context, userID, token string) error {
	_, err := r.Pool.Exec(ctx, `DELETE FROM sessions WHERE user_id=$1 AND token=$2`, userID, token)
	return err
}

// ListActiveSessionUserIDs returns the users with at least one unexpired
// session; the scheduler runs the generator only for them.
func (r *Repo) ListActiveSessionUserIDs(ctx context.Context, now time.Time) ([]string, error) {
	rows, err := r.Pool.Query(ctx, `SELECT DISTINCT user_id FROM sessions WHERE expires_at > $1`, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
