package password

import (
	"crypto/subtle"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrMismatch        = errors.New("password mismatch")
	ErrInvalidPassword = errors.New("invalid password")
	ErrHashingFailed   = errors.New("password hashing failed")
)

func Hash(password string) (string, error) {
	if password == "" {
		return "", ErrInvalidPassword
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", ErrHashingFailed
	}

	return string(hashedBytes), nil
}

// Compare checks a supplied password against a configured credential. The
// configured value may be a bcrypt hash or plain text; plain values are
// compared in constant time.
func Compare(configured, supplied string) error {
	if configured == "" || supplied == "" {
		return ErrInvalidPassword
	}

	if isBcryptHash(configured) {
		if err := bcrypt.CompareHashAndPassword([]byte(configured), []byte(supplied)); err != nil {
			return ErrMismatch
		}
		return nil
	}

	if subtle.ConstantTimeCompare([]byte(configured), []byte(supplied)) != 1 {
		return ErrMismatch
	}
	return nil
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}
