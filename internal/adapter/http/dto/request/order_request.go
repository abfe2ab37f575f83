package request

import (
	"strings"

	"neurovita_checkout/internal/domain/entities"
	"neurovita_checkout/internal/usecase"
)

// CreateOrderRequest is the checkout form. Prices are echoed back from the page and re-checked.
type CreateOrderRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone" binding:"required,br_phone"`
	CEP          string `json:"cep" binding:"required,cep"`
	Address      string `json:"address" binding:"required"`
	Number       string `json:"number" binding:"required"`
	Complement   string `json:"complement"`
	Neighborhood string `json:"neighborhood" binding:"required"`
	City         string `json:"city" binding:"required"`
	State        string `json:"state" binding:"required,br_uf"`

	Quantity      int      `json:"quantity" binding:"required,min=1"`
	ProductPrice  *float64 `json:"productPrice" binding:"required,gte=0"`
	ShippingPrice *float64 `json:"shippingPrice" binding:"required,gte=0"`
	TotalPrice    *float64 `json:"totalPrice" binding:"required,gte=0"`
}

func (r CreateOrderRequest) ToInput() usecase.CreateOrderInput {
	return usecase.CreateOrderInput{
		Name:          r.Name,
		Email:         r.Email,
		Phone:         r.Phone,
		CEP:           r.CEP,
		Street:        r.Address,
		Number:        r.Number,
		Complement:    r.Complement,
		Neighborhood:  r.Neighborhood,
		City:          r.City,
		State:         r.State,
		Quantity:      r.Quantity,
		ProductPrice:  deref(r.ProductPrice),
		ShippingPrice: deref(r.ShippingPrice),
		TotalPrice:    deref(r.TotalPrice),
	}
}

type UpdateOrderStatusRequest struct {
	Status       string `json:"status" binding:"required,oneof=pending paid shipped delivered"`
	TrackingCode string `json:"trackingCode"`
}

func (r UpdateOrderStatusRequest) Target() entities.OrderStatus {
	return entities.OrderStatus(strings.ToLower(strings.TrimSpace(r.Status)))
}

// ValidateCheckoutRequest is the pre-submit customer check.
type ValidateCheckoutRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (r ValidateCheckoutRequest) ToInput() usecase.CustomerInput {
	return usecase.CustomerInput{Name: r.Name, Email: r.Email, Phone: r.Phone}
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
