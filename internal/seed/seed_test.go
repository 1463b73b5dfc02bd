package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/happyfarm/internal/auth"
	"github.com/spec-kit/happyfarm/internal/domain"
	"github.com/spec-kit/happyfarm/internal/repository"
)

func TestRunIsIdempotent(t *testing.T) {
	ctx := context.Background()
	stores := repository.NewStores(nil)

	first, err := Run(ctx, stores, 4, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, Result{Users: 2, Animals: 6}, first)

	second, err := Run(ctx, stores, 4, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, Result{}, second)

	ali, err := stores.Users.GetByEmail(ctx, "ali@example.com")
	require.NoError(t, err)
	assert.NoError(t, auth.ComparePassword(ali.PasswordHash, DefaultPassword))

	farm, err := stores.Farms.GetByUserID(ctx, ali.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ali Eid's Farm", farm.Name)

	animals, err := stores.Animals.ListByFarm(ctx, farm.ID)
	require.NoError(t, err)
	require.Len(t, animals, 5)

	stats := domain.ComputeStatistics(animals, animals[0].CreatedAt)
	assert.Equal(t, 4, stats.EligibleForSacrifice)
	assert.Equal(t, 1, stats.NotYetEligible)
}
