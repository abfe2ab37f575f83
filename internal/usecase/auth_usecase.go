package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"neurovita_checkout/internal/domain/entities"
	"neurovita_checkout/pkg/auth"
	"neurovita_checkout/pkg/logger"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// AdminSession is returned by a successful login.
type AdminSession struct {
	Token     string
	Email     string
	ExpiresAt time.Time
}

// IAuthUseCase authenticates the single store admin configured by environment.
type IAuthUseCase interface {
	Login(ctx context.Context, email, password string) (AdminSession, error)
	Authenticate(ctx context.Context, token string) (*auth.AdminClaims, error)
}

type AuthUseCase struct {
	adminEmail   string
	passwordHash []byte
	tokens       auth.TokenConfig
	log          zerolog.Logger

	now func() time.Time
}

var _ IAuthUseCase = (*AuthUseCase)(nil)

func NewAuthUseCase(adminEmail, passwordHash string, tokens auth.TokenConfig, log zerolog.Logger) *AuthUseCase {
	return &AuthUseCase{
		adminEmail:   strings.ToLower(strings.TrimSpace(adminEmail)),
		passwordHash: []byte(passwordHash),
		tokens:       tokens,
		log:          logger.Component(log, "auth", "usecase"),
		now:          utcNow,
	}
}

func (u *AuthUseCase) Login(ctx context.Context, email, password string) (AdminSession, error) {
	log := logger.FromContext(ctx, u.log)
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return AdminSession{}, entities.ErrMissingCredentials
	}
	if len(u.passwordHash) == 0 {
		log.Warn().Msg("admin login attempted without ADMIN_PASSWORD_HASH configured")
		return AdminSession{}, entities.ErrAuthentication
	}
	if email != u.adminEmail {
		log.Warn().Str("email", email).Msg("admin login unknown email")
		return AdminSession{}, entities.ErrAuthentication
	}
	if err := bcrypt.CompareHashAndPassword(u.passwordHash, []byte(password)); err != nil {
		log.Warn().Str("email", email).Msg("admin login wrong password")
		return AdminSession{}, entities.ErrAuthentication
	}

	token, expiresAt, err := auth.MintAdminToken(u.tokens, u.now(), email)
	if err != nil {
		return AdminSession{}, err
	}
	log.Info().Str("email", email).Msg("admin login success")
	return AdminSession{Token: token, Email: email, ExpiresAt: expiresAt}, nil
}

func (u *AuthUseCase) Authenticate(_ context.Context, token string) (*auth.AdminClaims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, entities.ErrMissingCredentials
	}
	claims, err := auth.ParseAdminToken(u.tokens, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrAuthentication, err)
	}
	return claims, nil
}
