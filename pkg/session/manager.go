package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrymomot/marketadmin/pkg/broadcast"
	"github.com/dmitrymomot/marketadmin/pkg/jwt"
	"github.com/dmitrymomot/marketadmin/pkg/logger"
	"github.com/dmitrymomot/marketadmin/pkg/storage"
)

// LoginResult is what the backend returns for valid credentials.
type LoginResult struct {
	Token string
	User  *User
}

// Authenticator exchanges credentials for a token and user record.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (LoginResult, error)
}

// Manager owns the signed-in identity and keeps it in step with durable
// storage. The in-memory identity is only ever replaced as a whole.
// A Manager is safe for concurrent use.
type Manager struct {
	store        storage.Storage
	auth         Authenticator
	now          func() time.Time
	logger       *slog.Logger
	requiredRole Role
	bufferSize   int
	changes      *broadcast.Broadcaster[Change]

	initialized atomic.Bool
	// writeMu serializes storage mutations so token and user stay paired.
	writeMu sync.Mutex
	mu      sync.RWMutex
	current *User
}

// NewManager creates a Manager persisting to store and logging in through
// auth. auth may be nil for read-only consumers.
func NewManager(store storage.Storage, auth Authenticator, opts ...Option) *Manager {
	m := &Manager{
		store:        store,
		auth:         auth,
		now:          time.Now,
		logger:       slog.Default(),
		requiredRole: RoleAdmin,
		bufferSize:   8,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.changes = broadcast.New[Change](m.bufferSize)
	return m
}

// Initialize restores a session persisted by an earlier process. It
// returns the restored user, or nil when there is no usable session. An
// expired, undecodable or half-written session is cleared and reported
// as no session. It may run only once per Manager.
func (m *Manager) Initialize(ctx context.Context) (*User, error) {
	if !m.initialized.CompareAndSwap(false, true) {
		return nil, ErrAlreadyInitialized
	}

	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	user, err := m.loadStored(ctx)
	switch {
	case errors.Is(err, ErrNoSession):
		return nil, nil
	case errors.Is(err, ErrAuthExpired), errors.Is(err, ErrMalformedState):
		m.logger.DebugContext(ctx, "discarding stored session", logger.Error(err))
		if err := m.clearStorage(ctx); err != nil {
			return nil, err
		}
		return nil, nil
	case err != nil:
		return nil, err
	}

	m.set(user)
	m.logger.InfoContext(ctx, "session restored", logger.UserID(user.ID), logger.Role(string(user.Role)))
	m.publish(Change{User: user.clone(), Reason: ReasonRestored})
	return user.clone(), nil
}

// Login authenticates with the backend and, if the returned user holds the
// required role, persists the session and publishes it. Backend and
// transport errors are returned unchanged; on any error no state is written.
func (m *Manager) Login(ctx context.Context, email, password string) (*User, error) {
	if m.auth == nil {
		return nil, ErrNoAuthenticator
	}
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	res, err := m.auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if res.Token == "" || res.User == nil {
		return nil, ErrInvalidLoginResponse
	}
	if res.User.Role != m.requiredRole {
		m.logger.WarnContext(ctx, "login refused for role",
			logger.UserID(res.User.ID),
			logger.Role(string(res.User.Role)),
		)
		return nil, ErrAuthorizationDenied
	}

	user := res.User.clone()
	encoded, err := json.Marshal(user)
	if err != nil {
		return nil, fmt.Errorf("session: encode user: %w", err)
	}

	m.writeMu.Lock()
	if err := m.store.Set(ctx, storage.KeyToken, res.Token); err != nil {
		m.writeMu.Unlock()
		return nil, fmt.Errorf("session: persist token: %w", err)
	}
	if err := m.store.Set(ctx, storage.KeyUser, string(encoded)); err != nil {
		_ = m.clearStorage(context.WithoutCancel(ctx))
		m.writeMu.Unlock()
		return nil, fmt.Errorf("session: persist user: %w", err)
	}
	m.set(user)
	m.writeMu.Unlock()

	m.logger.InfoContext(ctx, "signed in", logger.UserID(user.ID), logger.Role(string(user.Role)))
	m.publish(Change{User: user.clone(), Reason: ReasonLogin})
	return user.clone(), nil
}

// Logout clears durable storage and the in-memory identity. It is safe to
// call without a session and any number of times. Observers are notified
// only when an identity was actually removed.
func (m *Manager) Logout(ctx context.Context) error {
	return m.end(ctx, ReasonLogout)
}

// HandleUnauthorized ends the session after the backend answered 401.
// It has the shape of an apiclient.UnauthorizedHandler.
func (m *Manager) HandleUnauthorized(ctx context.Context) {
	if err := m.end(ctx, ReasonRejected); err != nil {
		m.logger.ErrorContext(ctx, "failed to clear rejected session", logger.Error(err))
	}
}

// CurrentUser returns a copy of the in-memory identity, or nil.
// It never touches storage or the network.
func (m *Manager) CurrentUser() *User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.clone()
}

// IsAuthenticated reports whether someone is signed in.
func (m *Manager) IsAuthenticated() bool {
	return m.CurrentUser() != nil
}

// IsAdmin reports whether the signed-in user is an admin.
func (m *Manager) IsAdmin() bool {
	return m.CurrentUser().IsAdmin()
}

// CheckExpiry re-validates the stored token against the clock. An expired
// or undecodable token ends the session and returns ErrAuthExpired or
// ErrMalformedState. ErrNoSession is returned when nothing is stored.
func (m *Manager) CheckExpiry(ctx context.Context) error {
	_, err := m.validToken(ctx)
	return err
}

// Token returns the stored bearer token for an outbound request, or "" when
// there is no usable session. An expired token ends the session first.
// It satisfies apiclient.TokenSource.
func (m *Manager) Token(ctx context.Context) (string, error) {
	token, err := m.validToken(ctx)
	switch {
	case err == nil:
		return token, nil
	case errors.Is(err, ErrNoSession), errors.Is(err, ErrAuthExpired), errors.Is(err, ErrMalformedState):
		return "", nil
	default:
		return "", err
	}
}

// Subscribe returns a subscriber receiving identity changes until ctx ends.
// A subscriber whose buffer fills up is dropped and its channel closed; an
// observer that sees the channel close before ctx ends must subscribe again
// and re-read CurrentUser, since changes published meanwhile are lost.
func (m *Manager) Subscribe(ctx context.Context) broadcast.Subscriber[Change] {
	return m.changes.Subscribe(ctx)
}

// Close releases subscribers.
func (m *Manager) Close() error {
	return m.changes.Close()
}

func (m *Manager) validToken(ctx context.Context) (string, error) {
	token, ok, err := m.store.Get(ctx, storage.KeyToken)
	if errors.Is(err, storage.ErrCorruptFile) {
		if endErr := m.end(ctx, ReasonExpired); endErr != nil {
			return "", endErr
		}
		return "", errors.Join(ErrMalformedState, err)
	}
	if err != nil {
		return "", fmt.Errorf("session: read token: %w", err)
	}
	if !ok || token == "" {
		if m.CurrentUser() != nil {
			// Storage was cleared behind our back, e.g. by another process.
			if err := m.end(ctx, ReasonLogout); err != nil {
				return "", err
			}
		}
		return "", ErrNoSession
	}

	claims, err := jwt.Decode(token)
	if err != nil {
		if endErr := m.end(ctx, ReasonExpired); endErr != nil {
			return "", endErr
		}
		return "", errors.Join(ErrMalformedState, err)
	}
	if claims.Expired(m.now()) {
		m.logger.InfoContext(ctx, "session token expired", slog.Time("expired_at", claims.ExpiresAt.Time))
		if err := m.end(ctx, ReasonExpired); err != nil {
			return "", err
		}
		return "", ErrAuthExpired
	}
	return token, nil
}

// loadStored reads and validates the persisted pair.
func (m *Manager) loadStored(ctx context.Context) (*User, error) {
	token, hasToken, err := m.store.Get(ctx, storage.KeyToken)
	if errors.Is(err, storage.ErrCorruptFile) {
		return nil, errors.Join(ErrMalformedState, err)
	}
	if err != nil {
		return nil, fmt.Errorf("session: read token: %w", err)
	}
	raw, hasUser, err := m.store.Get(ctx, storage.KeyUser)
	if err != nil {
		return nil, fmt.Errorf("session: read user: %w", err)
	}

	switch {
	case !hasToken && !hasUser:
		return nil, ErrNoSession
	case !hasToken || !hasUser || token == "":
		return nil, ErrMalformedState
	}

	claims, err := jwt.Decode(token)
	if err != nil {
		return nil, errors.Join(ErrMalformedState, err)
	}
	if claims.Expired(m.now()) {
		return nil, ErrAuthExpired
	}

	var user User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, errors.Join(ErrMalformedState, err)
	}
	if user.ID == "" {
		return nil, ErrMalformedState
	}
	return &user, nil
}

// end clears storage and the in-memory identity, publishing a change only
// when an identity was removed.
func (m *Manager) end(ctx context.Context, reason Reason) error {
	m.writeMu.Lock()
	err := m.clearStorage(ctx)
	prev := m.set(nil)
	m.writeMu.Unlock()

	if prev != nil {
		m.logger.InfoContext(ctx, "session ended",
			logger.UserID(prev.ID),
			slog.String("reason", string(reason)),
		)
		m.publish(Change{Reason: reason})
	}
	return err
}

func (m *Manager) clearStorage(ctx context.Context) error {
	if err := m.store.Delete(ctx, storage.KeyToken, storage.KeyUser); err != nil {
		return fmt.Errorf("session: clear storage: %w", err)
	}
	return nil
}

// set swaps the identity and returns the previous one.
func (m *Manager) set(u *User) *User {
	m.mu.Lock()
	defer m.mu.Unlock()
	prev := m.current
	m.current = u
	return prev
}

func (m *Manager) publish(c Change) {
	m.changes.Publish(c)
}
