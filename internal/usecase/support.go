package usecase

import (
	"context"
	"time"

	"neurovita_checkout/internal/domain/entities"
	"neurovita_checkout/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type noopMetrics struct{}

func (noopMetrics) OrderCreated()                  {}
func (noopMetrics) PixIssued(string, bool)         {}
func (noopMetrics) GatewayFailure(string)          {}
func (noopMetrics) WebhookReceived(string, string) {}
func (noopMetrics) PaymentConfirmed(string)        {}
func (noopMetrics) StatusChanged(string)           {}

func metricsOrNoop(m interfaces.IMetricsRecorder) interfaces.IMetricsRecorder {
	if m == nil {
		return noopMetrics{}
	}
	return m
}

func utcNow() time.Time { return time.Now().UTC() }

// publishOrderEvent is best effort: the order is already stored, so a broker failure is only logged.
func publishOrderEvent(ctx context.Context, pub interfaces.IOrderEventPublisher, log zerolog.Logger, o entities.Order, eventType string, at time.Time) {
	if pub == nil {
		return
	}
	evt := entities.OrderEvent{
		EventID:     uuid.NewString(),
		EventType:   eventType,
		OccurredAt:  at,
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		Status:      o.Status,
		TotalPrice:  o.TotalPrice,
		Email:       o.Email,
	}
	if err := pub.Publish(ctx, evt); err != nil {
		log.Error().Err(err).Str("order_id", o.ID).Str("event_type", eventType).Msg("order event publish failed")
	}
}

func cents(v float64) decimal.Decimal { return decimal.NewFromFloat(v).Round(2) }
