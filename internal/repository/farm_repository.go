package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/happyfarm/internal/domain"
)

// FarmRepository resolves the farm owned by a user.
type FarmRepository interface {
	GetByUserID(ctx context.Context, userID string) (*domain.Farm, error)
}

type farmRepository struct {
	pool *pgxpool.Pool
}

// NewFarmRepository returns a Postgres-backed implementation.
func NewFarmRepository(pool *pgxpool.Pool) FarmRepository {
	return &farmRepository{pool: pool}
}

func (r *farmRepository) GetByUserID(ctx context.Context, userID string) (*domain.Farm, error) {
	if !validID(userID) {
		return nil, ErrNotFound
	}
	const query = `
        SELECT id, user_id, name, created_at, updated_at
        FROM farms WHERE user_id=$1`

	var farm domain.Farm
	if err := r.pool.QueryRow(ctx, query, userID).Scan(
		&farm.ID,
		&farm.UserID,
		&farm.Name,
		&farm.CreatedAt,
		&farm.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &farm, nil
}
