package models

import "time"

// User is a dashboard account row. PasswordHash is a bcrypt hash; the
// server never sees the plain-text secret.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserPatch carries a partial update for a user row. Nil fields are left
// untouched.
type UserPatch struct {
	Email        *string `json:"email,omitempty"`
	Name         *string `json:"name,omitempty"`
	PasswordHash *string `json:"password_hash,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p *UserPatch) Empty() bool {
	return p.Email == nil && p.Name == nil && p.PasswordHash == nil
}
