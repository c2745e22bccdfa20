package domain

import "time"

type User struct {
	ID           string // ULID
	FirstName    string
	LastName     string
	Email        string // unique, used as the login key
	Role         string // free-form, e.g. "admin" or "user"
	PasswordHash string // bcrypt encoded, never plaintext
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RoleAdmin is the role required to list users.
const RoleAdmin = "admin"
