package domain

import "time"

// Farm is the tenant boundary; animals are always looked up through their farm's owner.
type Farm struct {
	ID        string
	UserID    string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultFarmName is the name given to the farm created at registration.
func DefaultFarmName(ownerName string) string {
	return ownerName + "'s Farm"
}
