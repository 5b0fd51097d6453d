package jwt

import (
	"errors"
	"strings"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// Claims is the subset of the backend's session token payload the console
// reads. The signature is never verified on this side: the backend owns the
// key and rejects tampered tokens with 401.
type Claims struct {
	gojwt.RegisteredClaims
	UserID string `json:"id,omitempty"`
	Role   string `json:"role,omitempty"`
}

// Decode parses the payload of a compact JWS without verifying it.
// A token without an exp claim is rejected with ErrMissingExpiry.
func Decode(token string) (Claims, error) {
	var claims Claims
	token = strings.TrimSpace(token)
	if token == "" {
		return claims, ErrMalformedToken
	}

	parser := gojwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return Claims{}, errors.Join(ErrMalformedToken, err)
	}
	if claims.ExpiresAt == nil {
		return Claims{}, ErrMissingExpiry
	}
	return claims, nil
}

// ExpiresAt returns the exp claim of token.
func ExpiresAt(token string) (time.Time, error) {
	claims, err := Decode(token)
	if err != nil {
		return time.Time{}, err
	}
	return claims.ExpiresAt.Time, nil
}

// Expired reports whether the exp claim lies strictly before now.
func (c Claims) Expired(now time.Time) bool {
	if c.ExpiresAt == nil {
		return true
	}
	return c.ExpiresAt.Time.Before(now)
}
