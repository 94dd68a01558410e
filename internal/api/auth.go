package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdfbrief/pdfbrief/pkg/models"
)

// Login exchanges credentials for an access token. The service expects the
// OAuth2 password grant shape: form-encoded username/password.
func (c *Client) Login(ctx context.Context, email, password string) (*models.TokenResponse, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	var token models.TokenResponse
	err := c.do(ctx, http.MethodPost, "/auth/jwt/login",
		strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", &token)
	if err != nil {
		return nil, err
	}
	return &token, nil
}

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Register creates a new account. It does not authenticate the session.
func (c *Client) Register(ctx context.Context, email, password, firstName, lastName string) (*models.User, error) {
	var user models.User
	err := c.postJSON(ctx, "/auth/register", registerRequest{
		Email:     email,
		Password:  password,
		FirstName: firstName,
		LastName:  lastName,
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Me fetches the identity behind the current bearer token.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.get(ctx, "/users/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}
