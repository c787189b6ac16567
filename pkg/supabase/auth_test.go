package supabase

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSignInWithPassword_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/token" || r.URL.Query().Get("grant_type") != "password" {
			t.Errorf("unexpected sign-in target %s", r.URL.RequestURI())
		}
		w.Write([]byte(`{
			"access_token": "tok-123",
			"user": {"id": "u-1", "email": "admin@zidalco.com", "user_metadata": {"name": "Admin"}}
		}`))
	}))
	defer srv.Close()

	session, err := New(srv.URL, "k").SignInWithPassword(context.Background(), "admin@zidalco.com", "pw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.AccessToken != "tok-123" {
		t.Errorf("expected token, got %q", session.AccessToken)
	}
	if session.User.Metadata.Name != "Admin" {
		t.Errorf("expected metadata name, got %q", session.User.Metadata.Name)
	}
}

func TestSignInWithPassword_RejectionMapsToInvalidCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error_description":"Invalid login credentials"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, "k").SignInWithPassword(context.Background(), "a@b.co", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

// A 2xx response with no token is still a rejection.
func TestSignInWithPassword_EmptyToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"user": {"id": "u-1"}}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, "k").SignInWithPassword(context.Background(), "a@b.co", "pw")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestGetUser_SendsTokenNotAPIKey(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"id": "u-1", "email": "admin@zidalco.com"}`))
	}))
	defer srv.Close()

	user, err := New(srv.URL, "api-key").GetUser(context.Background(), "user-token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer user-token" {
		t.Errorf("expected user token in Authorization, got %q", gotAuth)
	}
	if user.ID != "u-1" {
		t.Errorf("unexpected user %+v", user)
	}
}

func TestGetUser_RejectionMapsToInvalidToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := New(srv.URL, "k").GetUser(context.Background(), "expired")
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestGetUser_EmptyIDMapsToInvalidToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, "k").GetUser(context.Background(), "tok")
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestErrorMessage_PrefersFirstPopulatedField(t *testing.T) {
	if got := errorMessage([]byte(`{"msg":"taken"}`)); got != "taken" {
		t.Errorf("expected msg field, got %q", got)
	}
	if got := errorMessage([]byte(`{"error_description":"bad"}`)); got != "bad" {
		t.Errorf("expected description field, got %q", got)
	}
	if got := errorMessage([]byte(`not json`)); got != "request rejected" {
		t.Errorf("expected fallback, got %q", got)
	}
}
