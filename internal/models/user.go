package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered chat user. Stored in PostgreSQL; emails are kept
// lowercase and are unique across all users.
type User struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
	About  string `json:"about,omitempty"`
	Phone  string `json:"phone,omitempty"`
}

// NewUser assigns the identifier and creation time for a user about to be
// persisted.
func NewUser(name, email string, now time.Time) *User {
	return &User{
		ID:        uuid.New(),
		CreatedAt: now,
		Name:      name,
		Email:     email,
	}
}
