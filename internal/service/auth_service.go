package service

import (
	"context"

	"github.com/zidalco/backend/pkg/auth"
	"github.com/zidalco/backend/pkg/supabase"
)

// AuthClient is the slice of the store client the auth service uses.
// Satisfied by *supabase.Client.
type AuthClient interface {
	SignInWithPassword(ctx context.Context, email, password string) (*supabase.Session, error)
	SignUp(ctx context.Context, email, password, name string) error
	Recover(ctx context.Context, email string) error
	GetUser(ctx context.Context, accessToken string) (*supabase.User, error)
}

// AuthService handles admin login, signup, and password recovery, all
// delegated to the external identity provider. It also implements
// auth.Verifier for the admin route gate.
type AuthService interface {
	auth.Verifier

	// Login exchanges credentials for an access token and the principal it
	// belongs to. Rejections map to supabase.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (token string, admin *auth.Principal, err error)

	Signup(ctx context.Context, name, email, password string) error
	ForgotPassword(ctx context.Context, email string) error
}

type authServiceImpl struct {
	client AuthClient
}

// NewAuthService creates an AuthService backed by the given auth client.
func NewAuthService(client AuthClient) AuthService {
	return &authServiceImpl{client: client}
}

func (s *authServiceImpl) Login(ctx context.Context, email, password string) (string, *auth.Principal, error) {
	session, err := s.client.SignInWithPassword(ctx, email, password)
	if err != nil {
		return "", nil, err
	}
	return session.AccessToken, principalOf(&session.User), nil
}

func (s *authServiceImpl) Signup(ctx context.Context, name, email, password string) error {
	return s.client.SignUp(ctx, email, password, name)
}

func (s *authServiceImpl) ForgotPassword(ctx context.Context, email string) error {
	return s.client.Recover(ctx, email)
}

// Verify resolves the principal for a bearer token. A live token maps to
// exactly one principal, or none.
func (s *authServiceImpl) Verify(ctx context.Context, token string) (*auth.Principal, error) {
	user, err := s.client.GetUser(ctx, token)
	if err != nil {
		return nil, err
	}
	return principalOf(user), nil
}

func principalOf(user *supabase.User) *auth.Principal {
	return &auth.Principal{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Metadata.Name,
	}
}
