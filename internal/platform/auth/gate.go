// Package auth implements the session gate: credential checks, the single
// current session, and the role queries that gate access to the entity
// services.
package auth

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/domain/record"
)

// Session is one authenticated identity. The id is minted per login so
// the presentation layer can tell sessions apart.
type Session struct {
	ID   uuid.UUID
	User record.User
}

// Gate tracks the one current session. It is anonymous until a login
// succeeds and returns to anonymous on Logout. The gate is driven from
// the single thread running the UI event loop and performs no locking; a
// second login simply replaces the current session.
type Gate struct {
	creds   map[string]record.User
	current *Session
	log     zerolog.Logger
}

// NewGate builds a gate over the given credential set.
func NewGate(creds []record.User, log zerolog.Logger) *Gate {
	byName := make(map[string]record.User, len(creds))
	for _, c := range creds {
		byName[c.Username] = c
	}
	return &Gate{
		creds: byName,
		log:   log.With().Str("component", "auth").Logger(),
	}
}

// Login checks the credentials by exact match. On success it installs and
// returns the new session. On unknown username, wrong password, or empty
// credentials it reports false and leaves the current state unchanged;
// a failed login is a normal outcome, not an error.
func (g *Gate) Login(username, password string) (*Session, bool) {
	if username == "" || password == "" {
		return nil, false
	}

	user, ok := g.creds[username]
	if !ok || user.Password != password {
		g.log.Info().Str("username", username).Msg("login rejected")
		return nil, false
	}

	user.Password = ""
	g.current = &Session{ID: uuid.New(), User: user}
	g.log.Info().Str("username", username).Str("role", user.Role).Msg("login")
	return g.current, true
}

// Logout returns the gate to anonymous, unconditionally.
func (g *Gate) Logout() {
	if g.current != nil {
		g.log.Info().Str("username", g.current.User.Username).Msg("logout")
	}
	g.current = nil
}

// Current returns the current session, if any.
func (g *Gate) Current() (*Session, bool) {
	return g.current, g.current != nil
}

// IsAuthenticated reports whether a session is active.
func (g *Gate) IsAuthenticated() bool {
	return g.current != nil
}

// HasRole answers strictly from the current identity's role; false while
// anonymous.
func (g *Gate) HasRole(role string) bool {
	return g.current != nil && g.current.User.Role == role
}

// HasAnyRole reports whether the current role is one of the given roles;
// false while anonymous.
func (g *Gate) HasAnyRole(roles ...string) bool {
	if g.current == nil {
		return false
	}
	for _, role := range roles {
		if g.current.User.Role == role {
			return true
		}
	}
	return false
}
