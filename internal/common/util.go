package common

import (
	"crypto/rand"
	"encoding/hex"
)

// MakeRandHexString returns size random bytes encoded as hex, so the
// result is 2*size characters long.
func MakeRandHexString(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// GenerateRandByteArray returns size bytes from crypto/rand.
func GenerateRandByteArray(size int) []byte {
	b := make([]byte, size)
	// Since Go 1.24 rand.Read never returns an error; it crashes the program instead.
	_, _ = rand.Read(b)
	return b
}

// WipeByteArray zeroes b in place. Use it on passwords once they are sent.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
