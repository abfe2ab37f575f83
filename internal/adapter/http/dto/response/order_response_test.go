package response

import (
	"testing"
	"time"

	"neurovita_checkout/internal/domain/entities"
)

func TestFromOrder(t *testing.T) {
	created := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	o := entities.Order{
		ID:          "id-1",
		OrderNumber: "NV-20260314-ABC123",
		Street:      "Av. Rio Branco",
		Status:      entities.OrderStatusShipped,
		CreatedAt:   created,
		Pix: &entities.PixPayment{
			Code:          "000201",
			TransactionID: "tx-1",
			ExpiresAt:     created.Add(30 * time.Minute),
		},
	}

	resp := FromOrder(o)
	if resp.Address != "Av. Rio Branco" {
		t.Fatalf("expected address from street, got %q", resp.Address)
	}
	if !resp.IsPaid {
		t.Fatalf("shipped orders are paid")
	}
	if resp.TransactionID != "tx-1" || resp.PixExpiresAt == nil || !resp.PixExpiresAt.Equal(created.Add(30*time.Minute)) {
		t.Fatalf("pix fields not mapped: %+v", resp)
	}
}

func TestFromPixPayment_RemainingSeconds(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	p := entities.PixPayment{Code: "000201", Gateway: "test", Amount: 235.80, ExpiresAt: now.Add(90 * time.Second)}

	resp := FromPixPayment(p, entities.Order{ID: "id-1", OrderNumber: "NV-1"}, now)
	if !resp.Success || resp.RemainingSeconds != 90 {
		t.Fatalf("unexpected response: %+v", resp)
	}

	expired := FromPixPayment(p, entities.Order{}, now.Add(time.Hour))
	if expired.RemainingSeconds != 0 {
		t.Fatalf("expected 0 remaining, got %d", expired.RemainingSeconds)
	}
}

func TestFromPaymentStatus(t *testing.T) {
	exp := time.Date(2026, 3, 14, 12, 30, 0, 0, time.UTC)
	v := entities.PaymentStatusView{
		IsPaid:    false,
		PixActive: true,
		ExpiresAt: &exp,
		Order: entities.Order{
			ID:          "id-1",
			OrderNumber: "NV-1",
			Status:      entities.OrderStatusPending,
			Pix:         &entities.PixPayment{Code: "000201", TransactionID: "tx-1", ExpiresAt: exp},
		},
	}

	resp := FromPaymentStatus(v)
	if resp.OrderID != "id-1" || resp.Status != "pending" || resp.TransactionID != "tx-1" || !resp.PixActive {
		t.Fatalf("unexpected response: %+v", resp)
	}
}
