package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const RoleAdmin = "admin"

var jwtSigningMethod = jwt.SigningMethodHS256

// TokenConfig is the signing setup shared by minting and parsing.
type TokenConfig struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

// AdminClaims is the JWT issued to the store admin.
type AdminClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

func (c TokenConfig) validate() error {
	if c.Secret == "" {
		return errors.New("jwt secret is required")
	}
	if c.Issuer == "" {
		return errors.New("jwt issuer is required")
	}
	return nil
}

// MintAdminToken issues a signed token for email valid for cfg.TTL from now.
func MintAdminToken(cfg TokenConfig, now time.Time, email string) (string, time.Time, error) {
	if err := cfg.validate(); err != nil {
		return "", time.Time{}, err
	}
	if cfg.TTL <= 0 {
		return "", time.Time{}, errors.New("jwt ttl must be positive")
	}
	expiresAt := now.Add(cfg.TTL)
	claims := AdminClaims{
		Email: strings.ToLower(strings.TrimSpace(email)),
		Role:  RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strings.ToLower(strings.TrimSpace(email)),
			Issuer:    cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}
	signed, err := jwt.NewWithClaims(jwtSigningMethod, claims).SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing jwt: %w", err)
	}
	return signed, expiresAt, nil
}

// ParseAdminToken validates signature, issuer and expiry and requires the admin role.
func ParseAdminToken(cfg TokenConfig, tokenString string) (*AdminClaims, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	claims := &AdminClaims{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwtSigningMethod {
				return nil, fmt.Errorf("unexpected signing method %s", token.Header["alg"])
			}
			return []byte(cfg.Secret), nil
		},
		jwt.WithValidMethods([]string{jwtSigningMethod.Alg()}),
		jwt.WithIssuer(cfg.Issuer),
	)
	if err != nil {
		return nil, err
	}
	if claims.Role != RoleAdmin {
		return nil, fmt.Errorf("unexpected role %q", claims.Role)
	}
	return claims, nil
}
