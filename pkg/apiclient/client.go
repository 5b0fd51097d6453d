package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"github.com/dmitrymomot/marketadmin/pkg/logger"
	"github.com/dmitrymomot/marketadmin/pkg/requestid"
)

// maxBodySize caps how much of a response body is read into memory.
const maxBodySize = 10 << 20

// Client is the single gateway for calls to the marketplace backend.
// Every request gets the current bearer token and a request id; every
// failure is normalized into *Error. A Client is safe for concurrent use.
type Client struct {
	baseURL      *url.URL
	http         *http.Client
	timeout      time.Duration
	tokens       TokenSource
	logger       *slog.Logger
	headers      http.Header
	interceptors []RequestInterceptor

	mu             sync.RWMutex
	onUnauthorized []UnauthorizedHandler
}

// New creates a Client for the backend at baseURL. The base URL is fixed
// for the lifetime of the Client.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}

	c := &Client{
		baseURL: u,
		http:    &http.Client{},
		timeout: DefaultTimeout,
		logger:  slog.Default(),
		headers: http.Header{
			"Content-Type": {"application/json"},
			"Accept":       {"application/json"},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the backend origin.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Timeout returns the per-call timeout.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// OnUnauthorized registers h to run on every 401 response.
// Hosting applications use it to end the session and show the login entry.
func (c *Client) OnUnauthorized(h UnauthorizedHandler) {
	if h == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = append(c.onUnauthorized, h)
}

// Request describes one outbound call.
type Request struct {
	Method string
	// Path is relative to the base URL and may carry its own query string.
	Path  string
	Query url.Values
	// Body is JSON-encoded unless it is nil, []byte or an io.Reader.
	Body   any
	Header http.Header
}

// Response is a successful (2xx) reply, returned unmodified.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Decode unmarshals the JSON body into v. An empty body leaves v untouched.
func (r *Response) Decode(v any) error {
	if v == nil || len(bytes.TrimSpace(r.Body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return errors.Join(ErrDecodeBody, err)
	}
	return nil
}

// Do sends req and returns the response on 2xx, or *Error otherwise.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	if req.Method == "" {
		req.Method = http.MethodGet
	}

	ctx, reqID := requestid.Ensure(ctx)
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := c.build(ctx, req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, c.transportError(ctx, req, reqID, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, c.transportError(ctx, req, reqID, err)
	}

	c.logger.DebugContext(ctx, "api request",
		logger.Method(req.Method),
		logger.Path(req.Path),
		logger.Status(resp.StatusCode),
		logger.Duration(time.Since(start)),
	)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: body}, nil
	}

	statusText := reasonPhrase(resp.Status, resp.StatusCode)
	apiErr := &Error{
		Kind:       KindRequestFailed,
		Method:     req.Method,
		Path:       req.Path,
		Status:     resp.StatusCode,
		StatusText: statusText,
		Message:    Message(body, statusText),
		Body:       body,
	}

	if resp.StatusCode == http.StatusUnauthorized {
		apiErr.Kind = KindAuthRejected
		c.logger.WarnContext(ctx, "api request rejected, ending session",
			logger.Method(req.Method),
			logger.Path(req.Path),
		)
		c.unauthorized(context.WithoutCancel(ctx))
		return nil, apiErr
	}

	c.logger.ErrorContext(ctx, "api request failed",
		logger.Method(req.Method),
		logger.Path(req.Path),
		logger.Status(resp.StatusCode),
		slog.String("message", apiErr.Message),
	)
	return nil, apiErr
}

func (c *Client) build(ctx context.Context, req Request) (*http.Request, error) {
	target, err := c.resolve(req.Path, req.Query)
	if err != nil {
		return nil, err
	}

	var body io.Reader
	switch b := req.Body.(type) {
	case nil:
	case io.Reader:
		body = b
	case []byte:
		body = bytes.NewReader(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, errors.Join(ErrEncodeBody, err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, err
	}
	for k, v := range c.headers {
		httpReq.Header[k] = append([]string(nil), v...)
	}
	for k, v := range req.Header {
		httpReq.Header[k] = append([]string(nil), v...)
	}

	c.authorize(httpReq)
	requestid.Apply(httpReq)
	for _, intercept := range c.interceptors {
		if err := intercept(httpReq); err != nil {
			return nil, err
		}
	}
	return httpReq, nil
}

// authorize sets exactly one Authorization header when a token exists.
func (c *Client) authorize(req *http.Request) {
	req.Header.Del("Authorization")
	if c.tokens == nil {
		return
	}
	token, err := c.tokens.Token(req.Context())
	if err != nil {
		c.logger.WarnContext(req.Context(), "token lookup failed, sending request anonymously", logger.Error(err))
		return
	}
	if token == "" {
		return
	}
	(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}).SetAuthHeader(req)
}

// resolve joins path onto the base URL, keeping any base path prefix.
func (c *Client) resolve(path string, query url.Values) (string, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("apiclient: invalid path %q: %w", path, err)
	}

	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(ref.Path, "/")
	u.RawPath = ""

	q := u.Query()
	for k, v := range ref.Query() {
		q[k] = append(q[k], v...)
	}
	for k, v := range query {
		q[k] = append(q[k], v...)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *Client) transportError(ctx context.Context, req Request, reqID string, err error) *Error {
	kind := KindNetwork
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		kind = KindTimeout
	}
	c.logger.ErrorContext(ctx, "api request failed",
		logger.Method(req.Method),
		logger.Path(req.Path),
		logger.RequestID(reqID),
		slog.String("kind", string(kind)),
		logger.Error(err),
	)
	return &Error{
		Kind:    kind,
		Method:  req.Method,
		Path:    req.Path,
		Message: FallbackMessage,
		Err:     err,
	}
}

func (c *Client) unauthorized(ctx context.Context) {
	c.mu.RLock()
	handlers := append([]UnauthorizedHandler(nil), c.onUnauthorized...)
	c.mu.RUnlock()

	for _, h := range handlers {
		h(ctx)
	}
}
