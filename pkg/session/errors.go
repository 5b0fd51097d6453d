package session

import "errors"

var (
	// ErrAuthExpired means the stored token's expiry has passed. The session
	// has already been cleared when it is returned.
	ErrAuthExpired = errors.New("session: token expired")

	// ErrAuthorizationDenied means the backend accepted the credentials but
	// the user lacks the role this console requires. Nothing was persisted.
	ErrAuthorizationDenied = errors.New("session: admin access only")

	// ErrMalformedState means the stored token or user could not be decoded.
	// The stored values have already been cleared when it is returned.
	ErrMalformedState = errors.New("session: stored session is malformed")

	// ErrNoSession means nobody is signed in.
	ErrNoSession = errors.New("session: not signed in")

	// ErrInvalidCredentials is returned for empty email or password.
	ErrInvalidCredentials = errors.New("session: email and password are required")

	// ErrInvalidLoginResponse means the login reply lacked a token or user.
	ErrInvalidLoginResponse = errors.New("session: login response is missing token or user")

	// ErrAlreadyInitialized is returned by a second Initialize call.
	ErrAlreadyInitialized = errors.New("session: already initialized")

	// ErrNoAuthenticator is returned by Login on a manager built without one.
	ErrNoAuthenticator = errors.New("session: no authenticator configured")
)
