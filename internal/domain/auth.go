package domain

import "time"

// Token is metadata about an issued access token.
type Token struct {
	ID        string
	UserID    string
	Value     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
