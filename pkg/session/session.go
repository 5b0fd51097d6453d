package session

import (
	"context"
	"time"

	"github.com/dmitrymomot/marketadmin/pkg/jwt"
)

// Session is a snapshot of the signed-in identity and its token.
type Session struct {
	Token     string
	User      User
	ExpiresAt time.Time
}

// Remaining returns how long the token stays valid at now.
func (s Session) Remaining(now time.Time) time.Duration {
	return max(s.ExpiresAt.Sub(now), 0)
}

// Session returns the current session after re-validating its token.
// The errors are those of CheckExpiry.
func (m *Manager) Session(ctx context.Context) (Session, error) {
	token, err := m.validToken(ctx)
	if err != nil {
		return Session{}, err
	}
	u := m.CurrentUser()
	if u == nil {
		return Session{}, ErrNoSession
	}
	exp, err := jwt.ExpiresAt(token)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, User: *u, ExpiresAt: exp}, nil
}
