package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"celebrai-backend/internal/domain"
)

// ownerDirectory reads Supabase's auth schema directly; the service connects
// with a role that can see auth.users.
type ownerDirectory struct {
	db *pgxpool.Pool
}

func NewOwnerDirectory(db *pgxpool.Pool) domain.OwnerDirectory {
	return &ownerDirectory{db: db}
}

func (r *ownerDirectory) GetEmail(ctx context.Context, userID string) (string, error) {
	var email *string
	err := r.db.QueryRow(ctx, `SELECT email FROM auth.users WHERE id = $1`, userID).Scan(&email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", err
	}
	if email == nil || *email == "" {
		return "", domain.ErrNotFound
	}
	return *email, nil
}
