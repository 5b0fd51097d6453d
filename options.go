package marketadmin

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/marketadmin/pkg/storage"
)

// Navigator moves the host to path. The console calls it with the login
// path after the backend rejected the session.
type Navigator func(ctx context.Context, path string)

// Option configures a Console.
type Option func(*options)

type options struct {
	navigator  Navigator
	logger     *slog.Logger
	store      storage.Storage
	httpClient *http.Client
}

// WithNavigator sets the callback invoked after a forced logout.
func WithNavigator(n Navigator) Option {
	return func(o *options) {
		o.navigator = n
	}
}

// WithLogger sets the logger shared by all components.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithStorage replaces the configured storage backend.
// The console does not close a storage passed this way.
func WithStorage(s storage.Storage) Option {
	return func(o *options) {
		o.store = s
	}
}

// WithHTTPClient sets the HTTP client used for backend calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		o.httpClient = hc
	}
}
