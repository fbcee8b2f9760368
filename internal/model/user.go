package model

import "time"

// Roles a user account can hold.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is a registered account.
//
// Password holds whatever the configured credential verifier stored: the
// plaintext itself under the legacy scheme, a bcrypt hash otherwise. It is
// never serialised.
//
// Name and Email read back as "" when a profile update wrote NULL over them.
type User struct {
	ID        int64     `json:"id"         db:"id"`
	Email     string    `json:"email"      db:"email"`
	Password  string    `json:"-"          db:"password"`
	Name      string    `json:"name"       db:"name"`
	Phone     *string   `json:"phone"      db:"phone"`
	Role      string    `json:"role"       db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ProfilePatch carries the profile fields present in an update payload.
// Password and role are not part of a profile update.
type ProfilePatch struct {
	Name  *string
	Email *string
	Phone *string
}
