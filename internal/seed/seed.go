// Package seed loads the demo farms used for local development.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/spec-kit/happyfarm/internal/auth"
	"github.com/spec-kit/happyfarm/internal/domain"
	"github.com/spec-kit/happyfarm/internal/repository"
)

// DefaultPassword is the password every demo account is created with.
const DefaultPassword = "password"

type animalSeed struct {
	species domain.Species
	name    string
	age     string
}

type ownerSeed struct {
	name    string
	email   string
	animals []animalSeed
}

var owners = []ownerSeed{
	{
		name:  "Ali Eid",
		email: "ali@example.com",
		animals: []animalSeed{
			{domain.SpeciesSheep, "Whitey", "1.5"},
			{domain.SpeciesGoat, "Billy", "2.0"},
			{domain.SpeciesCow, "Bessie", "3.0"},
			{domain.SpeciesCamel, "Humpy", "6.0"},
			{domain.SpeciesSheep, "Young Lamb", "0.25"},
		},
	},
	{
		name:  "Ahmad Farmer",
		email: "ahmad@example.com",
		animals: []animalSeed{
			{domain.SpeciesGoat, "Nanny", "1.5"},
		},
	},
}

// Result counts what a run created.
type Result struct {
	Users   int
	Animals int
}

// Run creates the demo owners, their farms and animals. Owners whose email
// already exists are left untouched, so running twice is harmless.
func Run(ctx context.Context, stores repository.Stores, bcryptCost int, logger *zap.Logger) (Result, error) {
	var res Result
	for _, o := range owners {
		if _, err := stores.Users.GetByEmail(ctx, o.email); err == nil {
			logger.Info("seed owner exists, skipping", zap.String("email", o.email))
			continue
		} else if !errors.Is(err, repository.ErrNotFound) {
			return res, err
		}

		hash, err := auth.HashPassword(DefaultPassword, bcryptCost)
		if err != nil {
			return res, err
		}
		user := &domain.User{ID: uuid.NewString(), Name: o.name, Email: o.email, PasswordHash: hash}
		farm := &domain.Farm{ID: uuid.NewString(), UserID: user.ID, Name: domain.DefaultFarmName(o.name)}
		if err := stores.Users.CreateWithFarm(ctx, user, farm); err != nil {
			return res, fmt.Errorf("seed %s: %w", o.email, err)
		}
		res.Users++

		for _, a := range o.animals {
			animal := &domain.Animal{
				ID:      uuid.NewString(),
				FarmID:  farm.ID,
				Species: a.species,
				Name:    a.name,
				Age:     decimal.RequireFromString(a.age),
			}
			if err := stores.Animals.Create(ctx, animal); err != nil {
				return res, fmt.Errorf("seed %s/%s: %w", o.email, a.name, err)
			}
			res.Animals++
		}
		logger.Info("seeded owner", zap.String("email", o.email), zap.Int("animals", len(o.animals)))
	}
	return res, nil
}
