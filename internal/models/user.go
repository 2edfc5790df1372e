package models

import "time"

const RoleUser = "ROLE_USER"

type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// AuthenticatedUser is the principal produced by a successful login: the
// backing user plus its granted authorities. It lives only for the duration
// of the login attempt and is never persisted.
type AuthenticatedUser struct {
	User        *User    `json:"user"`
	Authorities []string `json:"authorities"`
}
