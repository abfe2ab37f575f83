package entities

import "time"

// Order is the checkout order persisted by the storefront.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (order_number-index): order_number
//   - GSI2 (pix_transaction_id-index): pix_transaction_id
//   - GSI3 (email-index): email
//
// Monetary representation:
//   - TotalPrice == ProductPrice + ShippingPrice, enforced at creation.
//   - Customer, address and price fields never change after the order is paid.
type Order struct {
	ID          string `json:"id"`
	OrderNumber string `json:"orderNumber"`

	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`

	CEP          string `json:"cep"`
	Street       string `json:"address"`
	Number       string `json:"number"`
	Complement   string `json:"complement"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`

	Quantity      int     `json:"quantity"`
	OptionLabel   string  `json:"optionLabel"`
	ProductPrice  float64 `json:"productPrice"`
	ShippingPrice float64 `json:"shippingPrice"`
	TotalPrice    float64 `json:"totalPrice"`

	Status         OrderStatus `json:"status"`
	Pix            *PixPayment `json:"pix,omitempty"`
	PaymentEventID string      `json:"paymentEventId,omitempty"`
	PaymentSource  string      `json:"paymentSource,omitempty"`
	TrackingCode   string      `json:"trackingCode,omitempty"`

	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	PaidAt      *time.Time `json:"paidAt,omitempty"`
	ShippedAt   *time.Time `json:"shippedAt,omitempty"`
	DeliveredAt *time.Time `json:"deliveredAt,omitempty"`
}

// IsPaid reports whether payment was confirmed. Shipped and delivered orders were paid first.
func (o Order) IsPaid() bool {
	switch o.Status {
	case OrderStatusPaid, OrderStatusShipped, OrderStatusDelivered:
		return true
	}
	return false
}

// ActivePix returns the canonical PIX payload when one exists and has not expired at now.
func (o Order) ActivePix(now time.Time) (PixPayment, bool) {
	if o.Pix == nil || !o.Pix.IsActive(now) {
		return PixPayment{}, false
	}
	return *o.Pix, true
}

// OrderSort is the creation-time ordering used by the admin list.
type OrderSort string

const (
	OrderSortNewest OrderSort = "newest"
	OrderSortOldest OrderSort = "oldest"
)

// OrderListFilter narrows the admin listing. Empty Status means all.
type OrderListFilter struct {
	Status OrderStatus
	Sort   OrderSort
}

// StatusChange carries the fields written together with a status transition.
type StatusChange struct {
	At           time.Time
	EventID      string
	Source       string
	TrackingCode string
}
