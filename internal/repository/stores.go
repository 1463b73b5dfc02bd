package repository

import "github.com/jackc/pgx/v5/pgxpool"

// Stores groups the repositories used by the services.
type Stores struct {
	Users   UserRepository
	Farms   FarmRepository
	Animals AnimalRepository
}

// NewStores returns Postgres-backed repositories, or a fresh in-memory store when pool is nil.
func NewStores(pool *pgxpool.Pool) Stores {
	if pool == nil {
		mem := NewMemoryStore()
		return Stores{Users: mem.Users(), Farms: mem.Farms(), Animals: mem.Animals()}
	}
	return Stores{
		Users:   NewUserRepository(pool),
		Farms:   NewFarmRepository(pool),
		Animals: NewAnimalRepository(pool),
	}
}
