package service

import (
	"context"
	"errors"
	"testing"

	"github.com/zidalco/backend/pkg/supabase"
)

type mockAuthClient struct {
	signInFunc  func(ctx context.Context, email, password string) (*supabase.Session, error)
	signUpFunc  func(ctx context.Context, email, password, name string) error
	recoverFunc func(ctx context.Context, email string) error
	getUserFunc func(ctx context.Context, accessToken string) (*supabase.User, error)
}

func (m *mockAuthClient) SignInWithPassword(ctx context.Context, email, password string) (*supabase.Session, error) {
	if m.signInFunc != nil {
		return m.signInFunc(ctx, email, password)
	}
	return nil, errors.New("not configured")
}

func (m *mockAuthClient) SignUp(ctx context.Context, email, password, name string) error {
	if m.signUpFunc != nil {
		return m.signUpFunc(ctx, email, password, name)
	}
	return nil
}

func (m *mockAuthClient) Recover(ctx context.Context, email string) error {
	if m.recoverFunc != nil {
		return m.recoverFunc(ctx, email)
	}
	return nil
}

func (m *mockAuthClient) GetUser(ctx context.Context, accessToken string) (*supabase.User, error) {
	if m.getUserFunc != nil {
		return m.getUserFunc(ctx, accessToken)
	}
	return nil, errors.New("not configured")
}

func TestAuthLogin_MapsSessionToPrincipal(t *testing.T) {
	client := &mockAuthClient{
		signInFunc: func(ctx context.Context, email, password string) (*supabase.Session, error) {
			session := &supabase.Session{AccessToken: "tok-1"}
			session.User.ID = "u-1"
			session.User.Email = email
			session.User.Metadata.Name = "Admin"
			return session, nil
		},
	}
	svc := NewAuthService(client)

	token, admin, err := svc.Login(context.Background(), "admin@zidalco.com", "pw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "tok-1" {
		t.Errorf("expected session token, got %q", token)
	}
	if admin.ID != "u-1" || admin.Name != "Admin" || admin.Email != "admin@zidalco.com" {
		t.Errorf("unexpected principal %+v", admin)
	}
}

func TestAuthLogin_RejectionPropagates(t *testing.T) {
	client := &mockAuthClient{
		signInFunc: func(ctx context.Context, email, password string) (*supabase.Session, error) {
			return nil, supabase.ErrInvalidCredentials
		},
	}
	svc := NewAuthService(client)

	_, _, err := svc.Login(context.Background(), "a@b.co", "wrong")
	if !errors.Is(err, supabase.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthVerify_ResolvesPrincipal(t *testing.T) {
	client := &mockAuthClient{
		getUserFunc: func(ctx context.Context, accessToken string) (*supabase.User, error) {
			user := &supabase.User{ID: "u-2", Email: "admin@zidalco.com"}
			user.Metadata.Name = "Admin"
			return user, nil
		},
	}
	svc := NewAuthService(client)

	p, err := svc.Verify(context.Background(), "tok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != "u-2" || p.Name != "Admin" {
		t.Errorf("unexpected principal %+v", p)
	}
}

func TestAuthVerify_RejectionPropagates(t *testing.T) {
	client := &mockAuthClient{
		getUserFunc: func(ctx context.Context, accessToken string) (*supabase.User, error) {
			return nil, supabase.ErrInvalidToken
		},
	}
	svc := NewAuthService(client)

	if _, err := svc.Verify(context.Background(), "stale"); !errors.Is(err, supabase.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
