package marketplace

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrymomot/marketadmin/pkg/apiclient"
)

// Service exposes the backend's resources as typed calls. All calls go
// through the shared apiclient.Client, so authentication and error
// normalization are uniform.
type Service struct {
	client *apiclient.Client
}

// New creates a Service over client.
func New(client *apiclient.Client) *Service {
	return &Service{client: client}
}

// Client returns the underlying API client.
func (s *Service) Client() *apiclient.Client {
	return s.client
}

// ack is the common {success, message} envelope of mutation replies.
type ack struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
}

// check turns an explicit success:false into an *apiclient.Error.
func (a ack) check(method, path string) error {
	if a.Success == nil || *a.Success {
		return nil
	}
	return &apiclient.Error{
		Kind:    apiclient.KindRequestFailed,
		Method:  method,
		Path:    path,
		Status:  http.StatusOK,
		Message: apiclient.Message(nil, a.Message),
	}
}

// segment escapes an id for use as a path segment.
func segment(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", ErrMissingID
	}
	return url.PathEscape(id), nil
}

// pageParams builds 1-based page/limit parameters, skipping zero values.
func pageParams(q url.Values, page, limit int) {
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
}

// filterParam sets key unless value is empty or "all".
func filterParam(q url.Values, key, value string) {
	value = strings.TrimSpace(value)
	if value == "" || value == "all" {
		return
	}
	q.Set(key, value)
}
