package auth

import "time"

// User represents an authenticated user account. Accounts are provisioned
// out-of-band (see scripts/seed); the service never creates or mutates them.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
