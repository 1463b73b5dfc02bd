package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Species enumerates the livestock kinds a farm can hold.
type Species string

const (
	SpeciesSheep Species = "sheep"
	SpeciesGoat  Species = "goat"
	SpeciesCow   Species = "cow"
	SpeciesCamel Species = "camel"
)

// genericIneligibleMessage is only reachable for a Species that did not come through ParseSpecies.
const genericIneligibleMessage = "Animal is not eligible for sacrifice."

// sacrificeRule is the minimum age gate for one species.
type sacrificeRule struct {
	minAge  decimal.Decimal
	message string
}

var sacrificeRules = map[Species]sacrificeRule{
	SpeciesSheep: {minAge: decimal.RequireFromString("0.5"), message: "Sheep must be at least 6 months old for sacrifice."},
	SpeciesGoat:  {minAge: decimal.NewFromInt(1), message: "Goat must be at least 1 year old for sacrifice."},
	SpeciesCow:   {minAge: decimal.NewFromInt(2), message: "Cow must be at least 2 years old for sacrifice."},
	SpeciesCamel: {minAge: decimal.NewFromInt(5), message: "Camel must be at least 5 years old for sacrifice."},
}

// AllSpecies lists every supported species in display order.
func AllSpecies() []Species {
	return []Species{SpeciesSheep, SpeciesGoat, SpeciesCow, SpeciesCamel}
}

// ParseSpecies converts user input into a Species, rejecting anything outside the closed set.
func ParseSpecies(raw string) (Species, error) {
	s := Species(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := sacrificeRules[s]; !ok {
		return "", fmt.Errorf("unknown species %q", raw)
	}
	return s, nil
}

// Valid reports whether s is one of the supported species.
func (s Species) Valid() bool {
	_, ok := sacrificeRules[s]
	return ok
}

// MinSacrificeAge returns the inclusive minimum age in years and whether s is known.
func (s Species) MinSacrificeAge() (decimal.Decimal, bool) {
	rule, ok := sacrificeRules[s]
	return rule.minAge, ok
}

// IneligibilityMessage is the rationale shown when an animal of this species is too young.
func (s Species) IneligibilityMessage() string {
	if rule, ok := sacrificeRules[s]; ok {
		return rule.message
	}
	return genericIneligibleMessage
}
