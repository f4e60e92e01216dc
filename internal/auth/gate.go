// Package auth implements the admin session gate: a credential check
// against an injected allow-list plus ephemeral sessions. It is an
// access gate, not a security boundary.
package auth

import (
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/Dtgosha/est92-resort2/internal/metrics"
)

// ErrInvalidCredentials is returned for every failed sign-in. It is
// deliberately generic so callers cannot tell an unknown user from a
// wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Gate authenticates admins against a username -> bcrypt hash map.
type Gate struct {
	credentials map[string]string
	sessions    *SessionStore
	logger      zerolog.Logger
}

// NewGate builds a gate over the configured credentials.
func NewGate(credentials map[string]string, sessions *SessionStore, logger zerolog.Logger) *Gate {
	creds := make(map[string]string, len(credentials))
	for user, hash := range credentials {
		creds[user] = hash
	}
	return &Gate{
		credentials: creds,
		sessions:    sessions,
		logger:      logger.With().Str("component", "auth").Logger(),
	}
}

// Authenticate checks the credentials and, on success, opens a session
// and returns its token. The username is trimmed before comparison.
func (g *Gate) Authenticate(username, password string) (string, error) {
	username = strings.TrimSpace(username)

	hash, ok := g.credentials[username]
	if !ok {
		metrics.IncAuthFailure()
		g.logger.Warn().Msg("sign-in rejected")
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		metrics.IncAuthFailure()
		g.logger.Warn().Msg("sign-in rejected")
		return "", ErrInvalidCredentials
	}

	token := g.sessions.Create(Admin{Username: username})
	g.logger.Info().Str("username", username).Msg("admin signed in")
	return token, nil
}

// Session resolves a session token.
func (g *Gate) Session(token string) (Admin, bool) {
	return g.sessions.Get(token)
}

// Logout clears the session for the token.
func (g *Gate) Logout(token string) {
	g.sessions.Delete(token)
}
