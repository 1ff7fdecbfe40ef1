package auth

import (
	"crypto/subtle"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// ErrBadToken is returned when the supplied key does not match the
// configured mutation secret.
var ErrBadToken = errors.New("api key incorrect")

// Guard gates the mutating Resource API operations behind a single shared
// secret. The secret may be configured either as plaintext, compared in
// constant time, or as a bcrypt hash so the plaintext never has to appear
// in the environment.
type Guard struct {
	secret   string
	isHashed bool
}

func NewGuard(secret string) *Guard {
	return &Guard{
		secret:   secret,
		isHashed: isBcryptHash(secret),
	}
}

// Authorize checks the caller-supplied key against the configured secret.
func (g *Guard) Authorize(suppliedKey string) error {
	if g.secret == "" || suppliedKey == "" {
		return ErrBadToken
	}
	if g.isHashed {
		if bcrypt.CompareHashAndPassword([]byte(g.secret), []byte(suppliedKey)) != nil {
			return ErrBadToken
		}
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(g.secret), []byte(suppliedKey)) != 1 {
		return ErrBadToken
	}
	return nil
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}
