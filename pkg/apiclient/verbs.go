package apiclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/dmitrymomot/marketadmin/pkg/logger"
)

func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query})
}

func (c *Client) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body})
}

func (c *Client) Put(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodPut, Path: path, Body: body})
}

func (c *Client) Patch(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodPatch, Path: path, Body: body})
}

func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: path})
}

// DoJSON sends req and decodes a successful body into out (which may be nil).
func (c *Client) DoJSON(ctx context.Context, req Request, out any) error {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return err
	}
	return resp.Decode(out)
}

func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, out any) error {
	return c.DoJSON(ctx, Request{Method: http.MethodGet, Path: path, Query: query}, out)
}

func (c *Client) PostJSON(ctx context.Context, path string, body, out any) error {
	return c.DoJSON(ctx, Request{Method: http.MethodPost, Path: path, Body: body}, out)
}

func (c *Client) PutJSON(ctx context.Context, path string, body, out any) error {
	return c.DoJSON(ctx, Request{Method: http.MethodPut, Path: path, Body: body}, out)
}

func (c *Client) PatchJSON(ctx context.Context, path string, body, out any) error {
	return c.DoJSON(ctx, Request{Method: http.MethodPatch, Path: path, Body: body}, out)
}

func (c *Client) DeleteJSON(ctx context.Context, path string, out any) error {
	return c.DoJSON(ctx, Request{Method: http.MethodDelete, Path: path}, out)
}

// Upload PUTs content straight to a presigned storage URL. The request
// bypasses the backend, so it carries neither the bearer token nor the
// client timeout.
func (c *Client) Upload(ctx context.Context, signedURL, contentType string, content io.Reader) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, signedURL, content)
	if err != nil {
		return fmt.Errorf("apiclient: invalid upload URL: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		kind := KindNetwork
		if errors.Is(err, context.DeadlineExceeded) {
			kind = KindTimeout
		}
		c.logger.ErrorContext(ctx, "upload failed",
			logger.Method(http.MethodPut),
			logger.Path(req.URL.Path),
			slog.String("kind", string(kind)),
			logger.Error(err),
		)
		return &Error{Kind: kind, Method: http.MethodPut, Path: req.URL.Path, Message: FallbackMessage, Err: err}
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusText := reasonPhrase(resp.Status, resp.StatusCode)
		c.logger.ErrorContext(ctx, "upload failed",
			logger.Method(http.MethodPut),
			logger.Path(req.URL.Path),
			logger.Status(resp.StatusCode),
		)
		return &Error{
			Kind:       KindRequestFailed,
			Method:     http.MethodPut,
			Path:       req.URL.Path,
			Status:     resp.StatusCode,
			StatusText: statusText,
			Message:    Message(body, statusText),
			Body:       body,
		}
	}
	return nil
}
