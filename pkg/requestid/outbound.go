package requestid

import (
	"context"
	"net/http"
	"regexp"

	"github.com/google/uuid"
)

const (
	Header      = "X-Request-ID"
	maxIDLength = 128
	idPattern   = "^[a-zA-Z0-9_-]+$"
)

var validIDRegex = regexp.MustCompile(idPattern)

// New returns a fresh request id.
func New() string {
	return uuid.New().String()
}

// Ensure returns ctx together with its request id, generating and attaching
// a new one when ctx carries none or carries an invalid value.
func Ensure(ctx context.Context) (context.Context, string) {
	if id := FromContext(ctx); isValid(id) {
		return ctx, id
	}
	id := New()
	return WithContext(ctx, id), id
}

// Apply sets the X-Request-ID header on an outbound request from the
// request's context and returns the id used.
func Apply(req *http.Request) string {
	_, id := Ensure(req.Context())
	req.Header.Set(Header, id)
	return id
}

func isValid(id string) bool {
	if len(id) == 0 || len(id) > maxIDLength {
		return false
	}
	return validIDRegex.MatchString(id)
}
