package entities

import "time"

// OrderStatus is the order lifecycle: pending -> paid -> shipped -> delivered.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
)

var validNext = map[OrderStatus]OrderStatus{
	OrderStatusPending: OrderStatusPaid,
	OrderStatusPaid:    OrderStatusShipped,
	OrderStatusShipped: OrderStatusDelivered,
}

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped, OrderStatusDelivered:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition exists.
func (s OrderStatus) IsTerminal() bool { return s == OrderStatusDelivered }

// CanTransition allows exactly one forward edge per state. Same-state and skipped steps are rejected.
func CanTransition(from, to OrderStatus) bool {
	next, ok := validNext[from]
	return ok && next == to
}

// Transition applies a legal edge to o and stamps the matching timestamp.
func Transition(o Order, to OrderStatus, change StatusChange) (Order, error) {
	if !to.IsValid() || !CanTransition(o.Status, to) {
		return o, &TransitionError{From: o.Status, To: to}
	}
	at := change.At.UTC()
	if at.IsZero() {
		at = time.Now().UTC()
	}

	o.Status = to
	o.UpdatedAt = at
	switch to {
	case OrderStatusPaid:
		o.PaidAt = &at
		o.PaymentEventID = change.EventID
		o.PaymentSource = change.Source
	case OrderStatusShipped:
		o.ShippedAt = &at
		if change.TrackingCode != "" {
			o.TrackingCode = change.TrackingCode
		}
	case OrderStatusDelivered:
		o.DeliveredAt = &at
	}
	return o, nil
}
