package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSpecies(t *testing.T) {
	for _, s := range AllSpecies() {
		got, err := ParseSpecies(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
		assert.True(t, got.Valid())
	}

	got, err := ParseSpecies(" Camel ")
	require.NoError(t, err)
	assert.Equal(t, SpeciesCamel, got)

	_, err = ParseSpecies("horse")
	assert.Error(t, err)
	_, err = ParseSpecies("")
	assert.Error(t, err)
}

func TestEveryListedSpeciesHasRule(t *testing.T) {
	for _, s := range AllSpecies() {
		_, ok := s.MinSacrificeAge()
		assert.True(t, ok, s)
		assert.NotEqual(t, genericIneligibleMessage, s.IneligibilityMessage())
	}
	assert.Len(t, sacrificeRules, len(AllSpecies()))
}

func TestDefaultFarmName(t *testing.T) {
	assert.Equal(t, "Ali Eid's Farm", DefaultFarmName("Ali Eid"))
}
