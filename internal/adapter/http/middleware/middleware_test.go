package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"neurovita_checkout/pkg/auth"
	"neurovita_checkout/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type fakeAuthenticator struct {
	claims *auth.AdminClaims
	err    error
	got    string
}

func (f *fakeAuthenticator) Authenticate(_ context.Context, token string) (*auth.AdminClaims, error) {
	f.got = token
	return f.claims, f.err
}

type fakeObserver struct {
	method, route string
	status        int
}

func (f *fakeObserver) ObserveHTTP(method, route string, status int, _ time.Duration) {
	f.method, f.route, f.status = method, route, status
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	r := gin.New()
	base := zerolog.New(&buf)
	r.Use(RequestLogger(base))
	component := logger.Component(base, "ping", "handler")
	r.GET("/v1/ping", func(c *gin.Context) {
		log := logger.FromContext(c.Request.Context(), component)
		log.Info().Msg("inside")
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/ping", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	w := serve(r, req)

	require.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
	require.Contains(t, buf.String(), `"message":"inside"`)
	require.Contains(t, buf.String(), `"request_id":"req-123"`)
	require.Contains(t, buf.String(), `"component":"[ping][handler]"`)
	require.Contains(t, buf.String(), `"status":200`)

	w = serve(r, httptest.NewRequest(http.MethodGet, "/v1/ping", nil))
	require.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery(zerolog.Nop()))
	r.GET("/boom", func(*gin.Context) { panic("boom") })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Contains(t, w.Body.String(), "INTERNAL_ERROR")
}

func TestAdminAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(a TokenAuthenticator) *gin.Engine {
		r := gin.New()
		r.GET("/admin", AdminAuth(a, zerolog.Nop()), func(c *gin.Context) {
			claims, ok := AdminClaims(c)
			if !ok {
				c.Status(http.StatusTeapot)
				return
			}
			c.String(http.StatusOK, claims.Email)
		})
		return r
	}

	t.Run("missing header", func(t *testing.T) {
		w := serve(newRouter(&fakeAuthenticator{}), httptest.NewRequest(http.MethodGet, "/admin", nil))
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer bad")
		w := serve(newRouter(&fakeAuthenticator{err: errors.New("expired")}), req)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		a := &fakeAuthenticator{claims: &auth.AdminClaims{Email: "admin@neurovita.com.br", Role: auth.RoleAdmin}}
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer good")
		w := serve(newRouter(a), req)
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "admin@neurovita.com.br", w.Body.String())
		require.Equal(t, "good", a.got)
	})
}

func TestMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	obs := &fakeObserver{}
	r := gin.New()
	r.Use(Metrics(obs))
	r.GET("/v1/orders/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	serve(r, httptest.NewRequest(http.MethodGet, "/v1/orders/abc", nil))
	require.Equal(t, "/v1/orders/:id", obs.route)
	require.Equal(t, http.StatusNotFound, obs.status)

	serve(r, httptest.NewRequest(http.MethodGet, "/nope", nil))
	require.Equal(t, "unmatched", obs.route)
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS([]string{"https://neurovita.com.br"}))
	r.POST("/v1/orders", func(c *gin.Context) { c.Status(http.StatusCreated) })

	preflight := httptest.NewRequest(http.MethodOptions, "/v1/orders", nil)
	preflight.Header.Set("Origin", "https://neurovita.com.br")
	preflight.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := serve(r, preflight)
	require.Equal(t, "https://neurovita.com.br", w.Header().Get("Access-Control-Allow-Origin"))

	req := httptest.NewRequest(http.MethodPost, "/v1/orders", nil)
	req.Header.Set("Origin", "https://neurovita.com.br")
	w = serve(r, req)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "https://neurovita.com.br", w.Header().Get("Access-Control-Allow-Origin"))
}
