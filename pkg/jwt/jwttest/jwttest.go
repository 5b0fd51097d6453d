// Package jwttest mints HS256 tokens shaped like the backend's session
// tokens for use in tests.
package jwttest

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

const signingKey = "test-signing-key"

// Token returns a signed token for userID and role expiring at exp.
func Token(tb testing.TB, userID, role string, exp time.Time) string {
	tb.Helper()
	claims := gojwt.MapClaims{
		"id":   userID,
		"role": role,
		"exp":  exp.Unix(),
		"iat":  time.Now().Unix(),
	}
	s, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(signingKey))
	if err != nil {
		tb.Fatalf("jwttest: sign token: %v", err)
	}
	return s
}

// Valid returns a token that expires in an hour.
func Valid(tb testing.TB, userID, role string) string {
	tb.Helper()
	return Token(tb, userID, role, time.Now().Add(time.Hour))
}

// Expired returns a token that expired an hour ago.
func Expired(tb testing.TB, userID, role string) string {
	tb.Helper()
	return Token(tb, userID, role, time.Now().Add(-time.Hour))
}

// WithoutExpiry returns a signed token that carries no exp claim.
func WithoutExpiry(tb testing.TB, userID string) string {
	tb.Helper()
	s, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.MapClaims{"id": userID}).SignedString([]byte(signingKey))
	if err != nil {
		tb.Fatalf("jwttest: sign token: %v", err)
	}
	return s
}
