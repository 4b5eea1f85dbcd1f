package domain

import "time"

// User is a registered account. PasswordHash holds the bcrypt hash of the
// password; the plaintext is never persisted or returned.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
