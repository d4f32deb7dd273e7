package common

import (
	"crypto/rand"
	"encoding/hex"
)

// MakeRandHexString returns a hex string of 2*n characters built from n
// cryptographically random bytes. Used for opaque refresh tokens.
func MakeRandHexString(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// WipeByteArray overwrites the slice contents with zeroes. Callers should
// wipe password buffers as soon as they are no longer needed.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
