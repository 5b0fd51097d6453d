package apiclient

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// DefaultTimeout bounds every call made through a Client.
const DefaultTimeout = 15 * time.Second

// TokenSource yields the bearer token for an outbound request.
// An empty token means no session: the request is sent without
// Authorization.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenSourceFunc adapts a function to TokenSource.
type TokenSourceFunc func(ctx context.Context) (string, error)

func (f TokenSourceFunc) Token(ctx context.Context) (string, error) {
	return f(ctx)
}

// StaticToken always returns token.
func StaticToken(token string) TokenSource {
	return TokenSourceFunc(func(context.Context) (string, error) { return token, nil })
}

// UnauthorizedHandler is called for every 401 response before the call
// returns. The context is detached from the call's cancellation.
type UnauthorizedHandler func(ctx context.Context)

// RequestInterceptor may modify an outbound request after the built-in
// interceptors ran. Returning an error aborts the call.
type RequestInterceptor func(req *http.Request) error

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client. Nil is ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout overrides DefaultTimeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithTokenSource sets where the bearer token is read from at send time.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithLogger sets the logger used for failed calls.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithUnauthorizedHandler registers h for 401 responses.
func WithUnauthorizedHandler(h UnauthorizedHandler) Option {
	return func(c *Client) {
		if h != nil {
			c.onUnauthorized = append(c.onUnauthorized, h)
		}
	}
}

// WithRequestInterceptor appends a request interceptor.
func WithRequestInterceptor(i RequestInterceptor) Option {
	return func(c *Client) {
		if i != nil {
			c.interceptors = append(c.interceptors, i)
		}
	}
}

// WithHeader sets a header sent with every request.
func WithHeader(key, value string) Option {
	return func(c *Client) { c.headers.Set(key, value) }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return WithHeader("User-Agent", ua)
}
