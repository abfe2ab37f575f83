package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"neurovita_checkout/internal/adapter/http/handlers/mocks"
	"neurovita_checkout/internal/adapter/http/middleware"
	"neurovita_checkout/internal/domain/entities"
	"neurovita_checkout/internal/usecase"
	"neurovita_checkout/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"
)

func TestAuthHandler_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIAuthUseCase(ctrl)
	h := NewAuthHandler(uc, zerolog.Nop())
	r := gin.New()
	r.POST("/v1/auth/login", h.Login)

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	if w := post(`{"email":"admin@neurovita.com.br"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without password, got %d", w.Code)
	}

	uc.EXPECT().Login(gomock.Any(), "admin@neurovita.com.br", "wrong").Return(usecase.AdminSession{}, entities.ErrAuthentication)
	w := post(`{"email":"admin@neurovita.com.br","password":"wrong"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if got := decodeError(t, w); got.Code != "INVALID_CREDENTIALS" {
		t.Fatalf("expected INVALID_CREDENTIALS, got %s", got.Code)
	}

	expires := time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)
	uc.EXPECT().Login(gomock.Any(), "admin@neurovita.com.br", "s3cret").Return(usecase.AdminSession{Token: "jwt", Email: "admin@neurovita.com.br", ExpiresAt: expires}, nil)
	w = post(`{"email":"admin@neurovita.com.br","password":"s3cret"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body["token"] != "jwt" || body["tokenType"] != "Bearer" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIAuthUseCase(ctrl)
	h := NewAuthHandler(uc, zerolog.Nop())

	r := gin.New()
	r.GET("/v1/auth/me", middleware.AdminAuth(uc, zerolog.Nop()), h.Me)

	uc.EXPECT().Authenticate(gomock.Any(), "jwt").Return(&auth.AdminClaims{Email: "admin@neurovita.com.br", Role: auth.RoleAdmin}, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer jwt")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}
}
