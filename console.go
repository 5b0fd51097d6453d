package marketadmin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/marketadmin/pkg/apiclient"
	"github.com/dmitrymomot/marketadmin/pkg/logger"
	"github.com/dmitrymomot/marketadmin/pkg/marketplace"
	"github.com/dmitrymomot/marketadmin/pkg/session"
	"github.com/dmitrymomot/marketadmin/pkg/storage"
)

// Console owns one admin console's components.
type Console struct {
	Storage storage.Storage
	Client  *apiclient.Client
	Session *session.Manager
	Market  *marketplace.Service

	loginPath string
	navigator Navigator
	logger    *slog.Logger
	closer    io.Closer

	startOnce sync.Once
	startUser *session.User
	startErr  error
}

// New builds a Console from cfg. Storage is opened from cfg.Storage unless
// WithStorage is given.
func New(ctx context.Context, cfg Config, opts ...Option) (*Console, error) {
	o := &options{logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}

	c := &Console{
		loginPath: cfg.LoginPath,
		navigator: o.navigator,
		logger:    o.logger.With(logger.Component("console")),
	}
	if c.loginPath == "" {
		c.loginPath = "/login"
	}

	c.Storage = o.store
	if c.Storage == nil {
		store, closer, err := storage.Open(ctx, cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("marketadmin: open storage: %w", err)
		}
		c.Storage, c.closer = store, closer
	}

	clientOpts := []apiclient.Option{
		apiclient.WithLogger(o.logger),
		apiclient.WithTimeout(cfg.Timeout),
		// The manager is created below; the closure reads it at send time.
		apiclient.WithTokenSource(apiclient.TokenSourceFunc(func(ctx context.Context) (string, error) {
			return c.Session.Token(ctx)
		})),
	}
	if cfg.UserAgent != "" {
		clientOpts = append(clientOpts, apiclient.WithUserAgent(cfg.UserAgent))
	}
	if o.httpClient != nil {
		clientOpts = append(clientOpts, apiclient.WithHTTPClient(o.httpClient))
	}

	client, err := apiclient.New(cfg.BaseURL, clientOpts...)
	if err != nil {
		_ = c.closeStorage()
		return nil, err
	}
	c.Client = client
	c.Session = session.NewManager(c.Storage, marketplace.NewAuth(client), session.WithLogger(o.logger))
	c.Market = marketplace.New(client)

	client.OnUnauthorized(c.handleUnauthorized)
	return c, nil
}

// Start restores the persisted session. It runs once; later calls return
// the first result.
func (c *Console) Start(ctx context.Context) (*session.User, error) {
	c.startOnce.Do(func() {
		c.startUser, c.startErr = c.Session.Initialize(ctx)
	})
	return c.startUser, c.startErr
}

// RequireAdmin gates admin-only pages. The token's expiry is checked
// before the role, so an expired admin session yields
// session.ErrAuthExpired and not ErrAuthorizationDenied.
func (c *Console) RequireAdmin(ctx context.Context) error {
	if err := c.Session.CheckExpiry(ctx); err != nil {
		return err
	}
	if !c.Session.IsAdmin() {
		if !c.Session.IsAuthenticated() {
			return session.ErrNoSession
		}
		return session.ErrAuthorizationDenied
	}
	return nil
}

// Close releases the session observers and the storage backend.
func (c *Console) Close() error {
	return errors.Join(c.Session.Close(), c.closeStorage())
}

func (c *Console) closeStorage() error {
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}

func (c *Console) handleUnauthorized(ctx context.Context) {
	c.Session.HandleUnauthorized(ctx)
	c.logger.InfoContext(ctx, "session rejected by backend", logger.Event("forced_logout"))
	if c.navigator != nil {
		c.navigator(ctx, c.loginPath)
	}
}
