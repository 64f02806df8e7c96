package services

import (
	"context"

	"github.com/nomad-coffee/client/internal/auth"
	"github.com/nomad-coffee/client/internal/types"
)

// AuthService implements auth.Service interface
type AuthService struct {
	apiClient *ApiClient
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(apiClient *ApiClient) *AuthService {
	return &AuthService{apiClient: apiClient}
}

// Login authenticates a user with their email and password
func (s *AuthService) Login(ctx context.Context, creds auth.Credentials) (*auth.LoginResult, error) {
	var data types.LoginData
	err := s.apiClient.Mutate(ctx, "login", types.LoginMutation, map[string]interface{}{
		"email":    creds.Email,
		"password": creds.Password,
	}, &data)
	if err != nil {
		return nil, err
	}

	return &auth.LoginResult{
		OK:    data.Login.OK,
		Token: deref(data.Login.Token),
		Error: deref(data.Login.Error),
	}, nil
}

// CreateAccount registers a new user. It does not log the user in.
func (s *AuthService) CreateAccount(ctx context.Context, account auth.NewAccount) (*auth.CreateAccountResult, error) {
	var data types.CreateAccountData
	err := s.apiClient.Mutate(ctx, "createAccount", types.CreateAccountMutation, map[string]interface{}{
		"email":    account.Email,
		"username": account.Username,
		"password": account.Password,
	}, &data)
	if err != nil {
		return nil, err
	}

	return &auth.CreateAccountResult{
		OK:    data.CreateAccount.OK,
		Error: deref(data.CreateAccount.Error),
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
