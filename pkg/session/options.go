package session

import (
	"log/slog"
	"time"
)

// Option configures a Manager.
type Option func(*Manager)

// WithClock replaces time.Now for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithRequiredRole sets the role Login demands. Defaults to RoleAdmin.
func WithRequiredRole(r Role) Option {
	return func(m *Manager) {
		if r != "" {
			m.requiredRole = r
		}
	}
}

// WithBufferSize sets the per-subscriber buffer of identity changes.
func WithBufferSize(n int) Option {
	return func(m *Manager) { m.bufferSize = n }
}
