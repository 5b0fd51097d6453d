// Package jwt reads the claims of the session token the marketplace backend
// issues on login.
//
// The console only needs the expiry claim to decide whether a stored session
// is still usable, so Decode parses the payload with
// github.com/golang-jwt/jwt/v5 without verifying the signature. Verification
// is the backend's job; a forged or revoked token comes back as 401.
//
//	claims, err := jwt.Decode(stored)
//	if err != nil || claims.Expired(time.Now()) {
//	    // treat as no session
//	}
package jwt
