package interfaces

import (
	"context"
	"time"

	"neurovita_checkout/internal/domain/entities"
)

// IOrderRepository abstracts persistence for Order.
//
// Lookups return a zero Order (ID == "") and a nil error when nothing matches.
//
// The conditional writes are the only way status and PIX fields change:
//   - UpdateStatus writes the transitioned order only while the stored status equals expected
//   - SavePixPayment stores pix only while the order is pending and its current pix (if any) expired at now
//
// Both return applied=false with a nil error when the condition did not hold, together with the
// order as currently stored.
type IOrderRepository interface {
	Create(ctx context.Context, o entities.Order) (entities.Order, error)
	GetByID(ctx context.Context, id string) (entities.Order, error)
	GetByOrderNumber(ctx context.Context, orderNumber string) (entities.Order, error)
	GetByPixTransactionID(ctx context.Context, transactionID string) (entities.Order, error)
	FindLatestPendingByEmail(ctx context.Context, email string) (entities.Order, error)
	List(ctx context.Context, filter entities.OrderListFilter) ([]entities.Order, error)
	UpdateStatus(ctx context.Context, o entities.Order, expected entities.OrderStatus) (entities.Order, bool, error)
	SavePixPayment(ctx context.Context, id string, pix entities.PixPayment, now time.Time) (entities.Order, bool, error)
}
