package entities

import "time"

const (
	EventOrderCreated   = "order.created"
	EventOrderPaid      = "order.paid"
	EventOrderShipped   = "order.shipped"
	EventOrderDelivered = "order.delivered"
)

// OrderEvent is published after an order is created or changes status.
type OrderEvent struct {
	EventID     string      `json:"event_id"`
	EventType   string      `json:"event_type"`
	OccurredAt  time.Time   `json:"occurred_at"`
	OrderID     string      `json:"order_id"`
	OrderNumber string      `json:"order_number"`
	Status      OrderStatus `json:"status"`
	TotalPrice  float64     `json:"total_price"`
	Email       string      `json:"email"`
}

// EventTypeForStatus maps a status to the event announcing it.
func EventTypeForStatus(s OrderStatus) string {
	switch s {
	case OrderStatusPaid:
		return EventOrderPaid
	case OrderStatusShipped:
		return EventOrderShipped
	case OrderStatusDelivered:
		return EventOrderDelivered
	}
	return EventOrderCreated
}
