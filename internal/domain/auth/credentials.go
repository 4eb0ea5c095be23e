package auth

import (
	"crypto/subtle"
	"errors"
	"strings"
)

// ErrBadCredentials deliberately does not distinguish an unknown username
// from a wrong password.
var ErrBadCredentials = errors.New("invalid username or password")

type Credentials struct {
	username string
	password string
}

func NewCredentials(username, password string) (Credentials, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return Credentials{}, ErrBadCredentials
	}
	return Credentials{username: username, password: password}, nil
}

func (c Credentials) Username() string {
	return c.username
}

func (c Credentials) Password() string {
	return c.password
}

// UsernameEquals compares in constant time so timing does not reveal which
// configured pair was attempted.
func (c Credentials) UsernameEquals(other string) bool {
	return subtle.ConstantTimeCompare([]byte(c.username), []byte(other)) == 1
}
