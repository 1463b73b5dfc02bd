package domain

import "time"

const (
	msgCannotFeed        = "Cannot feed a sacrificed animal"
	msgCannotGroom       = "Cannot groom a sacrificed animal"
	msgAlreadySacrificed = "Animal has already been sacrificed"
)

// SacrificeResult is returned by a successful sacrifice.
type SacrificeResult struct {
	SacrificedAt time.Time
	IsSacrificed bool
}

// IsEligibleForSacrifice reports whether the animal has reached its species' minimum age.
// The boundary is inclusive and the sacrificed flag is not consulted.
func IsEligibleForSacrifice(a *Animal) bool {
	minAge, ok := a.Species.MinSacrificeAge()
	if !ok {
		return false
	}
	return a.Age.GreaterThanOrEqual(minAge)
}

// Feed records a feeding at now.
func Feed(a *Animal, now time.Time) (time.Time, error) {
	if a.IsSacrificed() {
		return time.Time{}, newPolicyError(ErrLifecycleViolation, msgCannotFeed)
	}
	t := now
	a.FedAt = &t
	return t, nil
}

// Groom records a grooming at now.
func Groom(a *Animal, now time.Time) (time.Time, error) {
	if a.IsSacrificed() {
		return time.Time{}, newPolicyError(ErrLifecycleViolation, msgCannotGroom)
	}
	t := now
	a.GroomedAt = &t
	return t, nil
}

// Sacrifice performs the terminal transition. Already-sacrificed is checked
// before eligibility, so a sacrificed animal always yields ErrAlreadySacrificed.
func Sacrifice(a *Animal, now time.Time) (SacrificeResult, error) {
	if a.IsSacrificed() {
		return SacrificeResult{}, newPolicyError(ErrAlreadySacrificed, msgAlreadySacrificed)
	}
	if !IsEligibleForSacrifice(a) {
		return SacrificeResult{}, newPolicyError(ErrNotEligible, a.Species.IneligibilityMessage())
	}
	t := now
	a.sacrificedAt = &t
	return SacrificeResult{SacrificedAt: t, IsSacrificed: a.IsSacrificed()}, nil
}
