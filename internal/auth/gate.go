// Package auth implements the authorization gate for destructive mutations.
// Editing or deleting people and expenses requires a session obtained by
// presenting the shared group password; reads and additive changes are open.
// The settlement engine itself has no authorization concept.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrWrongPassword is returned when a login attempt fails.
var ErrWrongPassword = errors.New("wrong password")

// Gate checks the shared password and issues session tokens.
type Gate struct {
	passwordHash []byte
	tokens       *JWTManager
}

// NewGate hashes the configured password and wires the token manager.
// The plaintext is not retained.
func NewGate(password string, tokens *JWTManager) (*Gate, error) {
	if password == "" {
		return nil, errors.New("gate password must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash gate password: %w", err)
	}
	return &Gate{passwordHash: hash, tokens: tokens}, nil
}

// Login verifies the password and returns a fresh session token.
func (g *Gate) Login(password string) (string, error) {
	if err := bcrypt.CompareHashAndPassword(g.passwordHash, []byte(password)); err != nil {
		return "", ErrWrongPassword
	}
	return g.tokens.Generate()
}

// Verify checks a session token presented with a destructive request.
func (g *Gate) Verify(token string) error {
	return g.tokens.Validate(token)
}
