package response

import (
	"time"

	"neurovita_checkout/internal/domain/entities"
)

type OrderResponse struct {
	ID           string `json:"id"`
	OrderNumber  string `json:"orderNumber"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	CEP          string `json:"cep"`
	Address      string `json:"address"`
	Number       string `json:"number"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`

	Quantity      int     `json:"quantity"`
	OptionLabel   string  `json:"optionLabel,omitempty"`
	ProductPrice  float64 `json:"productPrice"`
	ShippingPrice float64 `json:"shippingPrice"`
	TotalPrice    float64 `json:"totalPrice"`

	Status        string     `json:"status"`
	IsPaid        bool       `json:"isPaid"`
	PixCode       string     `json:"pixCode,omitempty"`
	TransactionID string     `json:"transactionId,omitempty"`
	PixExpiresAt  *time.Time `json:"pixExpiresAt,omitempty"`
	PaymentSource string     `json:"paymentSource,omitempty"`
	TrackingCode  string     `json:"trackingCode,omitempty"`

	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	PaidAt      *time.Time `json:"paidAt,omitempty"`
	ShippedAt   *time.Time `json:"shippedAt,omitempty"`
	DeliveredAt *time.Time `json:"deliveredAt,omitempty"`
}

func FromOrder(o entities.Order) OrderResponse {
	resp := OrderResponse{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		Name:          o.Name,
		Email:         o.Email,
		Phone:         o.Phone,
		CEP:           o.CEP,
		Address:       o.Street,
		Number:        o.Number,
		Complement:    o.Complement,
		Neighborhood:  o.Neighborhood,
		City:          o.City,
		State:         o.State,
		Quantity:      o.Quantity,
		OptionLabel:   o.OptionLabel,
		ProductPrice:  o.ProductPrice,
		ShippingPrice: o.ShippingPrice,
		TotalPrice:    o.TotalPrice,
		Status:        string(o.Status),
		IsPaid:        o.IsPaid(),
		PaymentSource: o.PaymentSource,
		TrackingCode:  o.TrackingCode,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
		PaidAt:        o.PaidAt,
		ShippedAt:     o.ShippedAt,
		DeliveredAt:   o.DeliveredAt,
	}
	if o.Pix != nil {
		resp.PixCode = o.Pix.Code
		resp.TransactionID = o.Pix.TransactionID
		expiresAt := o.Pix.ExpiresAt
		resp.PixExpiresAt = &expiresAt
	}
	return resp
}

func FromOrders(orders []entities.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromOrder(o))
	}
	return out
}

type ProductOptionResponse struct {
	ID      int     `json:"id"`
	Label   string  `json:"label"`
	Price   float64 `json:"price"`
	Bottles int     `json:"bottles"`
}

func FromProductOptions(options []entities.ProductOption) []ProductOptionResponse {
	out := make([]ProductOptionResponse, 0, len(options))
	for _, opt := range options {
		out = append(out, ProductOptionResponse{ID: opt.ID, Label: opt.Label, Price: opt.Price, Bottles: opt.Bottles})
	}
	return out
}

type ShippingQuoteResponse struct {
	State    string  `json:"state"`
	Region   string  `json:"region"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	MinPrice float64 `json:"minPrice"`
	MaxPrice float64 `json:"maxPrice"`
	Days     string  `json:"days"`
	Fallback bool    `json:"fallback,omitempty"`
}

func FromShippingQuote(q entities.ShippingQuote) ShippingQuoteResponse {
	return ShippingQuoteResponse{
		State:    q.State,
		Region:   string(q.Region),
		Quantity: q.Quantity,
		Price:    q.Price,
		MinPrice: q.MinPrice,
		MaxPrice: q.MaxPrice,
		Days:     q.Days,
		Fallback: q.Fallback,
	}
}

// CheckoutValidationResponse answers the pre-submit form check.
type CheckoutValidationResponse struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors,omitempty"`
}
