package storage

import "context"

// Keys under which the session is persisted. Both are written together on
// login and removed together on logout, expiry or rejection.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// Storage is the durable key/value state that survives a restart of the
// console. Implementations must be safe for concurrent use.
type Storage interface {
	// Get returns the value stored under key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error
}
