package interfaces

import (
	"context"

	"neurovita_checkout/internal/domain/entities"
)

type IOrderEventPublisher interface {
	Publish(ctx context.Context, evt entities.OrderEvent) error
}
