package jwt

import "errors"

var (
	ErrMalformedToken = errors.New("jwt: malformed token")
	ErrMissingExpiry  = errors.New("jwt: token has no expiry claim")
)
