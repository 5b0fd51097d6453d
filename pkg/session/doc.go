// Package session owns "who is signed in" for the marketplace admin console.
//
// A Manager keeps the identity in memory and mirrors it to durable storage
// under two keys, token and user, which are always written and cleared
// together. The token is the backend-issued JWT; only its exp claim is read.
//
// # Lifecycle
//
//   - Initialize, once per process, restores a stored session. An expired,
//     undecodable or half-written session is cleared silently and reported
//     as no session.
//   - Login authenticates through an Authenticator and accepts only users
//     holding the required role (admin by default). A refused role yields
//     ErrAuthorizationDenied and writes nothing.
//   - Logout clears everything and is idempotent.
//   - CheckExpiry and Token re-validate the stored token; an expired token
//     ends the session before any role check.
//   - HandleUnauthorized is registered with the API client and ends the
//     session on 401.
//
// Observers call Subscribe to receive a Change whenever the identity is
// replaced, instead of polling CurrentUser.
//
//	m := session.NewManager(store, market.Auth())
//	if _, err := m.Initialize(ctx); err != nil {
//	    return err
//	}
//	user, err := m.Login(ctx, email, password)
//	if errors.Is(err, session.ErrAuthorizationDenied) {
//	    // show "admin access only"
//	}
package session
