package backend

import (
	"context"
	"errors"
	"net/http"

	"github.com/saoodchoudhary/rbmesports/models"
)

type loginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Login exchanges credentials for a backend bearer token.
func (c *Client) Login(ctx context.Context, creds models.Credentials) (string, *models.User, error) {
	var res loginResponse
	if err := c.do(ctx, "login", http.MethodPost, "/auth/login", nil, "", creds, &res); err != nil {
		return "", nil, err
	}
	if res.Token == "" {
		return "", nil, errors.New("login: backend returned an empty token")
	}
	return res.Token, &res.User, nil
}

func (c *Client) Me(ctx context.Context, token string) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, "me", http.MethodGet, "/auth/me", nil, token, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
