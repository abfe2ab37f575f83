package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func testConfig() TokenConfig {
	return TokenConfig{Secret: "secret", Issuer: "neurovita-checkout", TTL: time.Hour}
}

func TestMintAndParseAdminToken(t *testing.T) {
	now := time.Now()
	token, expiresAt, err := MintAdminToken(testConfig(), now, " Admin@NeuroVita.com.br ")
	require.NoError(t, err)
	require.WithinDuration(t, now.Add(time.Hour), expiresAt, time.Second)

	claims, err := ParseAdminToken(testConfig(), token)
	require.NoError(t, err)
	require.Equal(t, "admin@neurovita.com.br", claims.Email)
	require.Equal(t, RoleAdmin, claims.Role)
	require.NotEmpty(t, claims.ID)
}

func TestParseAdminToken_Rejects(t *testing.T) {
	cfg := testConfig()

	t.Run("wrong secret", func(t *testing.T) {
		token, _, err := MintAdminToken(cfg, time.Now(), "a@b.com")
		require.NoError(t, err)
		other := cfg
		other.Secret = "other"
		_, err = ParseAdminToken(other, token)
		require.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		token, _, err := MintAdminToken(cfg, time.Now().Add(-2*time.Hour), "a@b.com")
		require.NoError(t, err)
		_, err = ParseAdminToken(cfg, token)
		require.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		token, _, err := MintAdminToken(cfg, time.Now(), "a@b.com")
		require.NoError(t, err)
		other := cfg
		other.Issuer = "someone-else"
		_, err = ParseAdminToken(other, token)
		require.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)
	})

	t.Run("non admin role", func(t *testing.T) {
		claims := AdminClaims{Email: "a@b.com", Role: "customer", RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Secret))
		require.NoError(t, err)
		_, err = ParseAdminToken(cfg, token)
		require.Error(t, err)
	})

	t.Run("missing secret", func(t *testing.T) {
		_, _, err := MintAdminToken(TokenConfig{Issuer: "x", TTL: time.Hour}, time.Now(), "a@b.com")
		require.Error(t, err)
	})
}
