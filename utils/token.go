package utils

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
)

const shareAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// GenerateShareID mints a short random token used for assessment share
// links. 10 characters over a 36-letter alphabet is plenty for a
// lead-generation tool.
func GenerateShareID() string {
	buf := make([]byte, 10)
	if _, err := rand.Read(buf); err != nil {
		panic(err) // crypto/rand failure is not recoverable
	}
	for i, b := range buf {
		buf[i] = shareAlphabet[int(b)%len(shareAlphabet)]
	}
	return string(buf)
}

// GenerateResetToken returns a 32-byte hex token for password resets.
func GenerateResetToken() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}

// GenerateCSRFToken returns a random token for the NextAuth CSRF endpoint.
func GenerateCSRFToken() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}

// SecureCompare reports whether two secrets are equal in constant time.
func SecureCompare(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
