package api

import (
	"context"
)

// ListUsers fetches the complete identity list.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.get(ctx, c.accountsURL, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Login authenticates an existing identity.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body := struct {
		Action   string `json:"action"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}{"login", email, password}

	result := &AuthResult{}
	if err := c.post(ctx, c.accountsURL, body, result); err != nil {
		return nil, err
	}
	return result, nil
}

// Register creates a new identity.
func (c *Client) Register(ctx context.Context, email, password, username string) (*AuthResult, error) {
	body := struct {
		Action   string `json:"action"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Username string `json:"username"`
	}{"register", email, password, username}

	result := &AuthResult{}
	if err := c.post(ctx, c.accountsURL, body, result); err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateProfile changes an identity's display name and avatar reference.
func (c *Client) UpdateProfile(ctx context.Context, userID int64, username, avatarURL string) (*User, error) {
	body := struct {
		Action    string `json:"action"`
		UserID    int64  `json:"user_id"`
		Username  string `json:"username"`
		AvatarURL string `json:"avatar_url"`
	}{"update_profile", userID, username, avatarURL}

	var result struct {
		User User `json:"user"`
	}
	if err := c.post(ctx, c.accountsURL, body, &result); err != nil {
		return nil, err
	}
	return &result.User, nil
}
