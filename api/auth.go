package api

import (
	"context"
	"net/http"

	"github.com/medcamp/portal/users"
)

// LoginRequest is the auth endpoint payload. CampSlug is present for
// tenant-staff logins and omitted for admin logins.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	CampSlug string `json:"campSlug,omitempty"`
}

// LoginResult is the successful auth response
type LoginResult struct {
	Token string     `json:"token"`
	User  users.User `json:"user"`
}

// Login authenticates against the camp API. A 401 here is a failed login
// attempt (errs.ErrInvalidCredentials), never a session-expiry event.
func (c *Client) Login(ctx context.Context, email, password, campSlug string) (LoginResult, error) {
	var result LoginResult
	err := c.do(ctx, http.MethodPost, EndpointLogin, LoginRequest{
		Email:    email,
		Password: password,
		CampSlug: campSlug,
	}, &result)
	return result, err
}
