package paymentview

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v1/payments/pix/generate" && r.URL.Query().Get("order_id") == "NV-1":
			_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "pixCode": "000201", "orderId": "id-1", "expiresAt": "2026-03-14T12:30:00Z"})
		case r.Method == http.MethodPost && r.URL.Path == "/v1/payments/pix/generate":
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"code":"GATEWAY_ERROR","message":"Erro ao gerar PIX","retryable":true}`))
		case r.Method == http.MethodGet && r.URL.Path == "/v1/payments/pix/status/NV-1":
			_, _ = w.Write([]byte(`{"orderId":"id-1","status":"paid","isPaid":true}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"code":"ORDER_NOT_FOUND","message":"Pedido não encontrado"}`))
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/v1/", nil)
	ctx := context.Background()

	pix, err := c.GeneratePix(ctx, "NV-1")
	require.NoError(t, err)
	require.Equal(t, "000201", pix.PixCode)
	require.Equal(t, 2026, pix.ExpiresAt.Year())

	_, err = c.GeneratePix(ctx, "NV-2")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	require.Equal(t, "GATEWAY_ERROR", apiErr.Body.Code)
	require.True(t, apiErr.Retryable())

	status, err := c.PaymentStatus(ctx, "NV-1")
	require.NoError(t, err)
	require.True(t, status.IsPaid)

	_, err = c.PaymentStatus(ctx, "missing")
	require.True(t, errors.As(err, &apiErr))
	require.False(t, apiErr.Retryable())
}
