package session

// Reason tells observers why the identity changed.
type Reason string

const (
	// ReasonRestored: a stored session was picked up by Initialize.
	ReasonRestored Reason = "restored"
	// ReasonLogin: Login succeeded.
	ReasonLogin Reason = "login"
	// ReasonLogout: Logout was called.
	ReasonLogout Reason = "logout"
	// ReasonExpired: the token expired or could not be decoded.
	ReasonExpired Reason = "expired"
	// ReasonRejected: the backend answered 401.
	ReasonRejected Reason = "rejected"
)

// Change is published whenever the signed-in identity is replaced.
// User is nil when the session ended.
type Change struct {
	User   *User
	Reason Reason
}
