// Package passwords wraps bcrypt hashing and verification of account
// secrets. Plain-text passwords never leave this package unhashed: the
// session layer hashes on sign-up and compares on sign-in, so the remote
// row store only ever sees hashes.
package passwords

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MinLength is the shortest password accepted at sign-up.
const MinLength = 8

var ErrTooShort = errors.New("password too short")

// Hash returns a bcrypt hash of the given password.
func Hash(password []byte) (string, error) {
	if len(password) < MinLength {
		return "", ErrTooShort
	}

	hash, err := bcrypt.GenerateFromPassword(password, bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether password matches the stored bcrypt hash.
func Verify(hash string, password []byte) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), password) == nil
}
