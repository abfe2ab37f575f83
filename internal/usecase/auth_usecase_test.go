package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"neurovita_checkout/internal/domain/entities"
	"neurovita_checkout/pkg/auth"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthUseCase(t *testing.T) *AuthUseCase {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	tokens := auth.TokenConfig{Secret: "jwt-secret", Issuer: "neurovita-checkout", TTL: time.Hour}
	return NewAuthUseCase("Admin@NeuroVita.com.br", string(hash), tokens, zerolog.Nop())
}

func TestAuthUseCase_Login(t *testing.T) {
	uc := newTestAuthUseCase(t)

	session, err := uc.Login(context.Background(), " admin@neurovita.com.br ", "s3cret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.Token == "" || session.Email != "admin@neurovita.com.br" {
		t.Fatalf("unexpected session: %+v", session)
	}

	claims, err := uc.Authenticate(context.Background(), session.Token)
	if err != nil {
		t.Fatalf("token should authenticate: %v", err)
	}
	if claims.Role != auth.RoleAdmin || claims.Email != session.Email {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthUseCase_Login_Rejects(t *testing.T) {
	uc := newTestAuthUseCase(t)
	cases := []struct {
		name     string
		email    string
		password string
		want     error
	}{
		{name: "empty", email: "", password: "", want: entities.ErrMissingCredentials},
		{name: "unknown email", email: "other@x.com", password: "s3cret", want: entities.ErrAuthentication},
		{name: "wrong password", email: "admin@neurovita.com.br", password: "nope", want: entities.ErrAuthentication},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Login(context.Background(), tc.email, tc.password)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	t.Run("no hash configured", func(t *testing.T) {
		bare := NewAuthUseCase("admin@neurovita.com.br", "", uc.tokens, zerolog.Nop())
		if _, err := bare.Login(context.Background(), "admin@neurovita.com.br", "s3cret"); !errors.Is(err, entities.ErrAuthentication) {
			t.Fatalf("expected ErrAuthentication, got %v", err)
		}
	})
}

func TestAuthUseCase_Authenticate_Rejects(t *testing.T) {
	uc := newTestAuthUseCase(t)

	if _, err := uc.Authenticate(context.Background(), " "); !errors.Is(err, entities.ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
	if _, err := uc.Authenticate(context.Background(), "not-a-jwt"); !errors.Is(err, entities.ErrAuthentication) {
		t.Fatalf("expected ErrAuthentication, got %v", err)
	}

	uc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	session, err := uc.Login(context.Background(), "admin@neurovita.com.br", "s3cret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := uc.Authenticate(context.Background(), session.Token); !errors.Is(err, entities.ErrAuthentication) {
		t.Fatalf("expired token must be rejected, got %v", err)
	}
}
