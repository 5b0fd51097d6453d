package marketplace

import (
	"context"

	"github.com/dmitrymomot/marketadmin/pkg/apiclient"
	"github.com/dmitrymomot/marketadmin/pkg/session"
)

// Auth exchanges credentials with the backend. It implements
// session.Authenticator.
type Auth struct {
	client *apiclient.Client
}

var _ session.Authenticator = (*Auth)(nil)

// NewAuth creates an Auth over client.
func NewAuth(client *apiclient.Client) *Auth {
	return &Auth{client: client}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string        `json:"token"`
	User  *session.User `json:"user"`
}

// Login posts the credentials to /auth/login. Backend errors are returned
// unchanged so the caller sees the server's message.
func (a *Auth) Login(ctx context.Context, email, password string) (session.LoginResult, error) {
	var resp loginResponse
	if err := a.client.PostJSON(ctx, "/auth/login", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return session.LoginResult{}, err
	}
	return session.LoginResult{Token: resp.Token, User: resp.User}, nil
}
