package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"neurovita_checkout/internal/adapter/http/handlers/mocks"
	"neurovita_checkout/internal/domain/entities"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"
)

var paymentNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func newPaymentRouter(uc *mocks.MockIPixUseCase) *gin.Engine {
	h := NewPaymentHandler(uc, zerolog.Nop())
	h.now = func() time.Time { return paymentNow }
	r := gin.New()
	r.POST("/v1/payments/pix/generate", h.GeneratePix)
	r.GET("/v1/payments/pix/status/:orderId", h.PixStatus)
	return r
}

func TestPaymentHandler_GeneratePix(t *testing.T) {
	t.Run("missing order id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		r := newPaymentRouter(mocks.NewMockIPixUseCase(ctrl))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/payments/pix/generate", nil))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	tests := []struct {
		name      string
		err       error
		wantCode  int
		retryable bool
	}{
		{name: "not pending", err: entities.ErrOrderAlreadyPaid, wantCode: http.StatusConflict},
		{name: "not found", err: entities.ErrOrderNotFound, wantCode: http.StatusNotFound},
		{name: "gateway failure", err: &entities.GatewayError{Gateway: "orionpay", Op: "create pix", StatusCode: 500}, wantCode: http.StatusBadGateway, retryable: true},
		{name: "gateway timeout", err: &entities.GatewayError{Gateway: "orionpay", Op: "create pix", Timeout: true}, wantCode: http.StatusServiceUnavailable, retryable: true},
		{name: "unexpected", err: errors.New("boom"), wantCode: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			uc := mocks.NewMockIPixUseCase(ctrl)
			r := newPaymentRouter(uc)

			uc.EXPECT().Generate(gomock.Any(), "id-1").Return(entities.PixPayment{}, entities.Order{}, tt.err)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/payments/pix/generate?order_id=id-1", nil))
			if w.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, w.Code)
			}
			if got := decodeError(t, w); got.Retryable != tt.retryable {
				t.Fatalf("expected retryable=%v, got %+v", tt.retryable, got)
			}
		})
	}

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIPixUseCase(ctrl)
		r := newPaymentRouter(uc)

		pix := entities.PixPayment{
			Code:          "00020101021226",
			QRCodeBase64:  "iVBORw0KGgo=",
			TransactionID: "tx-1",
			Gateway:       "test",
			Amount:        235.80,
			GeneratedAt:   paymentNow,
			ExpiresAt:     paymentNow.Add(30 * time.Minute),
		}
		uc.EXPECT().Generate(gomock.Any(), "NV-20260314-ABC123").Return(pix, sampleOrder(), nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/payments/pix/generate?order_id=NV-20260314-ABC123", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body struct {
			Success          bool    `json:"success"`
			PixCode          string  `json:"pixCode"`
			TransactionID    string  `json:"transactionId"`
			RemainingSeconds int64   `json:"remainingSeconds"`
			Amount           float64 `json:"amount"`
			OrderID          string  `json:"orderId"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if !body.Success || body.TransactionID != "tx-1" || body.RemainingSeconds != 1800 || body.OrderID != "id-1" {
			t.Fatalf("unexpected body: %+v", body)
		}
	})
}

func TestPaymentHandler_PixStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIPixUseCase(ctrl)
	r := newPaymentRouter(uc)

	paid := sampleOrder()
	paid.Status = entities.OrderStatusPaid
	uc.EXPECT().CheckStatus(gomock.Any(), "id-1").Return(entities.PaymentStatusView{IsPaid: true, Order: paid}, nil)
	uc.EXPECT().CheckStatus(gomock.Any(), "nope").Return(entities.PaymentStatusView{}, entities.ErrOrderNotFound)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/payments/pix/status/id-1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		IsPaid bool   `json:"isPaid"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !body.IsPaid || body.Status != "paid" {
		t.Fatalf("unexpected body: %+v", body)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/payments/pix/status/nope", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
