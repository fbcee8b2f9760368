// Package auth checks account credentials.
//
// Passwords are stored in whatever form the configured CredentialVerifier
// produces. Two schemes exist:
//
//	plaintext  the stored value is the password itself (legacy databases)
//	bcrypt     the stored value is a bcrypt hash
//
// The scheme is chosen once at startup with NewVerifier and used both to
// store new passwords (registration, seed data) and to check logins.
// There is no token or session: a successful check simply returns the
// account.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
)

// Scheme names accepted by NewVerifier and the CREDENTIAL_SCHEME setting.
const (
	SchemePlaintext = "plaintext"
	SchemeBcrypt    = "bcrypt"
)

// ErrMismatch is returned by Verify when the password is wrong.
var ErrMismatch = errors.New("auth: password does not match")

// CredentialVerifier turns a password into its stored form and checks a
// login attempt against a stored value.
type CredentialVerifier interface {
	// Hash returns the value to store for plain.
	Hash(plain string) (string, error)
	// Verify returns nil when plain matches stored, ErrMismatch when it
	// does not, and another error if stored cannot be interpreted.
	Verify(stored, plain string) error
}

// NewVerifier returns the verifier for the named scheme. Names are matched
// case-insensitively; an empty name selects plaintext.
func NewVerifier(scheme string) (CredentialVerifier, error) {
	switch strings.ToLower(strings.TrimSpace(scheme)) {
	case "", SchemePlaintext:
		return PlaintextVerifier{}, nil
	case SchemeBcrypt:
		return NewBcryptVerifier(), nil
	default:
		return nil, fmt.Errorf("auth: unknown credential scheme %q", scheme)
	}
}

// PlaintextVerifier stores passwords as-is. It exists for databases created
// before hashing was introduced.
type PlaintextVerifier struct{}

var _ CredentialVerifier = PlaintextVerifier{}

func (PlaintextVerifier) Hash(plain string) (string, error) {
	return plain, nil
}

// Verify compares in constant time so the response time does not reveal
// how much of the password was right.
func (PlaintextVerifier) Verify(stored, plain string) error {
	if subtle.ConstantTimeCompare([]byte(stored), []byte(plain)) != 1 {
		return ErrMismatch
	}
	return nil
}
