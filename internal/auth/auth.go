package auth

import "context"

// Service defines the remote authentication operations
type Service interface {
	Login(ctx context.Context, creds Credentials) (*LoginResult, error)
	CreateAccount(ctx context.Context, account NewAccount) (*CreateAccountResult, error)
}

// SessionStore receives the session token after a successful login
type SessionStore interface {
	SetToken(token string) error
}

// Credentials contains login request data
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// NewAccount contains create-account request data
type NewAccount struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResult is the server's answer to a login attempt.
// Token is only set when OK is true.
type LoginResult struct {
	OK    bool   `json:"ok"`
	Token string `json:"token,omitempty"`
	Error string `json:"error,omitempty"`
}

// CreateAccountResult is the server's answer to a sign up attempt
type CreateAccountResult struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}
