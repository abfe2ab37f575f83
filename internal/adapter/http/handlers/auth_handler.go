package handlers

import (
	"net/http"

	"neurovita_checkout/internal/adapter/http/dto/request"
	"neurovita_checkout/internal/adapter/http/dto/response"
	"neurovita_checkout/internal/adapter/http/middleware"
	"neurovita_checkout/internal/usecase"
	"neurovita_checkout/pkg"
	"neurovita_checkout/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

var errInvalidCredentials = pkg.NewDomainErrorSimple("INVALID_CREDENTIALS", "Email ou senha inválidos", http.StatusUnauthorized)

type AuthHandler struct {
	usecase usecase.IAuthUseCase
	log     zerolog.Logger
}

func NewAuthHandler(uc usecase.IAuthUseCase, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{usecase: uc, log: logger.Component(log, "auth", "handler")}
}

// Login godoc
// @Summary      Admin login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials  body      request.LoginRequest  true  "Admin credentials"
// @Success      200          {object}  response.LoginResponse
// @Failure      400          {object}  pkg.HTTPError
// @Failure      401          {object}  pkg.HTTPError
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var payload request.LoginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, bindingError(err))
		return
	}

	session, err := h.usecase.Login(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		log := logger.FromContext(c.Request.Context(), h.log)
		log.Warn().Err(err).Msg("admin login rejected")
		appErr := mapDomainError(err)
		if appErr.HTTPStatus == http.StatusUnauthorized {
			appErr = errInvalidCredentials
		}
		writeError(c, appErr)
		return
	}

	c.JSON(http.StatusOK, response.LoginResponse{
		Token:     session.Token,
		TokenType: "Bearer",
		Email:     session.Email,
		ExpiresAt: session.ExpiresAt,
	})
}

// Me godoc
// @Summary      Current admin
// @Tags         auth
// @Produce      json
// @Security     Bearer
// @Success      200  {object}  response.AdminResponse
// @Failure      401  {object}  pkg.HTTPError
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := middleware.AdminClaims(c)
	if !ok {
		writeError(c, pkg.NewDomainErrorSimple("UNAUTHORIZED", "missing credentials", http.StatusUnauthorized))
		return
	}
	c.JSON(http.StatusOK, response.AdminResponse{Email: claims.Email, Role: claims.Role})
}
