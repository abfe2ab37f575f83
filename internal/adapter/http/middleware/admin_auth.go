package middleware

import (
	"context"
	"net/http"
	"strings"

	"neurovita_checkout/pkg"
	"neurovita_checkout/pkg/auth"
	"neurovita_checkout/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const adminClaimsKey = "admin_claims"

// TokenAuthenticator validates an admin bearer token.
type TokenAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*auth.AdminClaims, error)
}

// AdminAuth rejects requests without a valid admin bearer token.
func AdminAuth(authenticator TokenAuthenticator, base zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader("Authorization"))
		token := raw
		if strings.HasPrefix(strings.ToLower(token), "bearer ") {
			token = strings.TrimSpace(token[7:])
		}
		if token == "" {
			abortUnauthorized(c, "missing credentials")
			return
		}

		claims, err := authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			log := logger.FromContext(c.Request.Context(), base)
			log.Warn().Err(err).Msg("[auth][middleware] invalid admin token")
			abortUnauthorized(c, "invalid token")
			return
		}

		log := logger.FromContext(c.Request.Context(), base).With().Str("admin", claims.Email).Logger()
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context(), log))
		c.Set(adminClaimsKey, claims)
		c.Next()
	}
}

// AdminClaims returns the claims stored by AdminAuth.
func AdminClaims(c *gin.Context) (*auth.AdminClaims, bool) {
	v, ok := c.Get(adminClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.AdminClaims)
	return claims, ok
}

func abortUnauthorized(c *gin.Context, msg string) {
	appErr := pkg.NewDomainErrorSimple("UNAUTHORIZED", msg, http.StatusUnauthorized)
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
}
