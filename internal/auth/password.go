package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// defaultCost is the bcrypt work factor used in production.
const defaultCost = 12

// maxPasswordBytes is the bcrypt input limit. Longer input is rejected
// rather than silently truncated.
const maxPasswordBytes = 72

// WHY BCRYPT?
// bcrypt is deliberately slow and salts every hash, and the salt and cost
// travel inside the stored string:
//
//	$2a$10$<22-char salt><31-char hash>
//	 ^   ^
//	 |   cost
//	 version
//
// CompareHashAndPassword reads both back out, so nothing else needs to be
// stored alongside the hash.

// BcryptVerifier stores bcrypt hashes.
//
// It's a struct (not free functions) so that the cost can be injected in
// tests: cost 4 hashes in well under a millisecond.
type BcryptVerifier struct {
	cost int
}

var _ CredentialVerifier = (*BcryptVerifier)(nil)

// NewBcryptVerifier creates a BcryptVerifier with the default cost.
func NewBcryptVerifier() *BcryptVerifier {
	return &BcryptVerifier{cost: defaultCost}
}

// NewBcryptVerifierWithCost creates a BcryptVerifier with a custom cost.
// Other packages use it with bcrypt.MinCost in tests.
func NewBcryptVerifierWithCost(cost int) *BcryptVerifier {
	return &BcryptVerifier{cost: cost}
}

// Hash hashes plain with a fresh random salt.
func (b *BcryptVerifier) Hash(plain string) (string, error) {
	if len(plain) > maxPasswordBytes {
		return "", fmt.Errorf("auth: password must be %d bytes or fewer", maxPasswordBytes)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), b.cost)
	if err != nil {
		return "", fmt.Errorf("auth: hashing password: %w", err)
	}
	return string(hashed), nil
}

// Verify checks plain against a stored bcrypt hash.
func (b *BcryptVerifier) Verify(stored, plain string) error {
	err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatch
		}
		return fmt.Errorf("auth: comparing password hash: %w", err)
	}
	return nil
}
