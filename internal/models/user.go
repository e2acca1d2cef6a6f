package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account row. PasswordHash holds the encoded argon2id hash and
// is never serialized.
type User struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	IsStaff      bool   `json:"is_staff"`
	IsSuperuser  bool   `json:"is_superuser"`
}

// Token is the single bearer token row of a user, reused across logins.
type Token struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Value     string
	CreatedAt time.Time
}
