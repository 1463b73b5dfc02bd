package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/happyfarm/internal/domain"
)

// MutateFunc applies a lifecycle transition to a locked animal.
// Returning an error aborts the transaction and leaves the row untouched.
type MutateFunc func(animal *domain.Animal) error

// AnimalRepository encapsulates animal persistence. Every lookup by id is
// scoped to the owning user so that foreign animals look absent.
type AnimalRepository interface {
	Create(ctx context.Context, animal *domain.Animal) error
	ListByFarm(ctx context.Context, farmID string) ([]domain.Animal, error)
	GetOwned(ctx context.Context, userID, animalID string) (*domain.Animal, error)
	// MutateOwned locks the animal, runs fn and persists the result atomically.
	MutateOwned(ctx context.Context, userID, animalID string, fn MutateFunc) (*domain.Animal, error)
}

type animalRepository struct {
	pool *pgxpool.Pool
}

// NewAnimalRepository returns a Postgres-backed implementation.
func NewAnimalRepository(pool *pgxpool.Pool) AnimalRepository {
	return &animalRepository{pool: pool}
}

const animalColumns = `a.id, a.farm_id, a.type, a.name, a.age, a.fed_at, a.groomed_at, a.sacrificed_at, a.created_at, a.updated_at`

func (r *animalRepository) Create(ctx context.Context, animal *domain.Animal) error {
	const query = `
        INSERT INTO animals (id, farm_id, type, name, age)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		animal.ID,
		animal.FarmID,
		string(animal.Species),
		animal.Name,
		animal.Age,
	).Scan(&animal.CreatedAt, &animal.UpdatedAt)
}

func (r *animalRepository) ListByFarm(ctx context.Context, farmID string) ([]domain.Animal, error) {
	if !validID(farmID) {
		return []domain.Animal{}, nil
	}
	query := `SELECT ` + animalColumns + ` FROM animals a WHERE a.farm_id=$1 ORDER BY a.created_at, a.id`

	rows, err := r.pool.Query(ctx, query, farmID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Animal{}
	for rows.Next() {
		animal, err := scanAnimal(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *animal)
	}
	return result, rows.Err()
}

func (r *animalRepository) GetOwned(ctx context.Context, userID, animalID string) (*domain.Animal, error) {
	if !validID(animalID) || !validID(userID) {
		return nil, ErrNotFound
	}
	query := `SELECT ` + animalColumns + `
        FROM animals a JOIN farms f ON f.id = a.farm_id
        WHERE a.id=$1 AND f.user_id=$2`

	animal, err := scanAnimal(r.pool.QueryRow(ctx, query, animalID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return animal, nil
}

func (r *animalRepository) MutateOwned(ctx context.Context, userID, animalID string, fn MutateFunc) (*domain.Animal, error) {
	if !validID(animalID) || !validID(userID) {
		return nil, ErrNotFound
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	query := `SELECT ` + animalColumns + `
        FROM animals a JOIN farms f ON f.id = a.farm_id
        WHERE a.id=$1 AND f.user_id=$2
        FOR UPDATE OF a`

	animal, err := scanAnimal(tx.QueryRow(ctx, query, animalID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := fn(animal); err != nil {
		return nil, err
	}

	// COALESCE keeps a stored sacrifice time from ever being cleared or replaced.
	const update = `
        UPDATE animals
        SET fed_at=$1, groomed_at=$2, sacrificed_at=COALESCE(sacrificed_at, $3), updated_at=NOW()
        WHERE id=$4
        RETURNING sacrificed_at, updated_at`

	var sacrificedAt *time.Time
	if err := tx.QueryRow(ctx, update,
		animal.FedAt,
		animal.GroomedAt,
		animal.SacrificedAt(),
		animal.ID,
	).Scan(&sacrificedAt, &animal.UpdatedAt); err != nil {
		return nil, err
	}
	animal.RestoreSacrifice(sacrificedAt)

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return animal, nil
}

func scanAnimal(row pgx.Row) (*domain.Animal, error) {
	var (
		animal       domain.Animal
		species      string
		sacrificedAt *time.Time
	)
	if err := row.Scan(
		&animal.ID,
		&animal.FarmID,
		&species,
		&animal.Name,
		&animal.Age,
		&animal.FedAt,
		&animal.GroomedAt,
		&sacrificedAt,
		&animal.CreatedAt,
		&animal.UpdatedAt,
	); err != nil {
		return nil, err
	}
	animal.Species = domain.Species(species)
	animal.RestoreSacrifice(sacrificedAt)
	return &animal, nil
}
