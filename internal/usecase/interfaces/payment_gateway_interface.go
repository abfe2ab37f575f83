package interfaces

import (
	"context"

	"neurovita_checkout/internal/domain/entities"
)

// IPixProvider issues a PIX payload for an order (OrionPay, Mercado Pago or the local test mode).
//
// Failures from a remote provider are returned as *entities.GatewayError.
type IPixProvider interface {
	Name() string
	CreatePix(ctx context.Context, req entities.PixRequest) (entities.PixPayment, error)
}

// IPaymentLookup fetches a payment from the provider so webhook notifications that only carry an
// id can be confirmed against the source of truth.
type IPaymentLookup interface {
	GetPayment(ctx context.Context, paymentID string) (entities.GatewayPayment, error)
}
