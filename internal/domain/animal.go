package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Animal is a livestock record owned by a single farm.
//
// The sacrifice timestamp is unexported: IsSacrificed is derived from it and
// the only writers are Sacrifice and RestoreSacrifice.
type Animal struct {
	ID        string
	FarmID    string
	Species   Species
	Name      string
	Age       decimal.Decimal
	FedAt     *time.Time
	GroomedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time

	sacrificedAt *time.Time
}

// SacrificedAt returns the sacrifice time, or nil while the animal is alive.
func (a *Animal) SacrificedAt() *time.Time {
	if a.sacrificedAt == nil {
		return nil
	}
	t := *a.sacrificedAt
	return &t
}

// IsSacrificed reports whether the terminal transition has happened.
func (a *Animal) IsSacrificed() bool {
	return a.sacrificedAt != nil
}

// RestoreSacrifice sets the persisted sacrifice time when a store loads a row.
// It must not be used to perform a sacrifice; use Sacrifice for that.
func (a *Animal) RestoreSacrifice(at *time.Time) {
	if at == nil {
		a.sacrificedAt = nil
		return
	}
	t := *at
	a.sacrificedAt = &t
}
