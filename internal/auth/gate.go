package auth

import (
	"errors"
	"time"
)

// ErrInvalidCredentials is returned for a wrong or unset admin password.
var ErrInvalidCredentials = errors.New("auth: invalid credentials")

// Gate checks the shared admin password and the sessions it hands out.
// An empty password hash disables admin login entirely.
type Gate struct {
	passwordHash string
	tokens       *Tokens
}

func NewGate(passwordHash string, tokens *Tokens) *Gate {
	return &Gate{passwordHash: passwordHash, tokens: tokens}
}

// Login exchanges the admin password for a session token.
func (g *Gate) Login(password string) (string, time.Time, error) {
	if !CheckPassword(g.passwordHash, password) {
		return "", time.Time{}, ErrInvalidCredentials
	}
	return g.tokens.Issue(RoleAdmin, RoleAdmin, "")
}

// Authenticate reports whether token is a live admin session.
func (g *Gate) Authenticate(token string) bool {
	if token == "" {
		return false
	}
	claims, err := g.tokens.Parse(token)
	if err != nil {
		return false
	}
	return claims.Role == RoleAdmin
}
