// Package roomcode generates and validates the short invite codes used
// to join a room.
package roomcode

import (
	"crypto/rand"
	"strings"
)

const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const (
	GeneratedLength = 6
	MinLength       = 4
	MaxLength       = 8
)

// New returns a random uppercase alphanumeric code. Uniqueness is the
// caller's problem.
func New() (string, error) {
	b := make([]byte, GeneratedLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	for i := range b {
		b[i] = charset[b[i]%byte(len(charset))]
	}
	return string(b), nil
}

// Normalize maps a client-supplied code to its stored form. Codes are
// case-insensitive and stored uppercase.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Valid reports whether a normalized code has an acceptable shape.
func Valid(code string) bool {
	if len(code) < MinLength || len(code) > MaxLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		if !strings.ContainsRune(charset, rune(code[i])) {
			return false
		}
	}
	return true
}
