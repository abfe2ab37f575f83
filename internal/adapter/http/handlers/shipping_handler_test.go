package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"neurovita_checkout/internal/adapter/http/handlers/mocks"
	"neurovita_checkout/internal/domain/entities"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestShippingHandler_Quote(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIShippingUseCase(ctrl)
	h := NewShippingHandler(uc)
	r := gin.New()
	r.GET("/v1/shipping/quote", h.Quote)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/shipping/quote", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without state, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/shipping/quote?state=RJ&quantity=two", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non numeric quantity, got %d", w.Code)
	}

	uc.EXPECT().Quote(gomock.Any(), "RJ", 4).Return(entities.ShippingQuote{}, entities.ErrInvalidQuantity)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/shipping/quote?state=RJ&quantity=4", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	uc.EXPECT().Quote(gomock.Any(), "RJ", 1).Return(entities.ShippingQuote{
		State: "RJ", Region: entities.RegionSudeste, Quantity: 1, Price: 19.40, MinPrice: 15.90, MaxPrice: 22.90, Days: "3 a 5",
	}, nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/shipping/quote?state=RJ", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body["region"] != "sudeste" || body["price"] != 19.40 || body["days"] != "3 a 5" {
		t.Fatalf("unexpected body: %v", body)
	}
}
