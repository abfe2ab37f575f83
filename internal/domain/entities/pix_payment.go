package entities

import "time"

// PixPayment is the payable PIX payload issued for a pending order. Only one is canonical per
// order; a new one replaces the stored payload only after the previous one expired.
type PixPayment struct {
	Code          string    `json:"pixCode"`
	QRCodeBase64  string    `json:"qrCode,omitempty"`
	QRCodeURL     string    `json:"qrCodeUrl,omitempty"`
	TransactionID string    `json:"transactionId,omitempty"`
	Gateway       string    `json:"gateway"`
	Amount        float64   `json:"amount"`
	GeneratedAt   time.Time `json:"generatedAt"`
	ExpiresAt     time.Time `json:"expiresAt"`
}

func (p PixPayment) IsActive(now time.Time) bool {
	return p.Code != "" && now.Before(p.ExpiresAt)
}

// Remaining is the time left until expiry, never negative.
func (p PixPayment) Remaining(now time.Time) time.Duration {
	if d := p.ExpiresAt.Sub(now); d > 0 {
		return d
	}
	return 0
}

// PixRequest is what a PIX provider needs to issue a payload for an order.
type PixRequest struct {
	OrderID     string
	OrderNumber string
	Amount      float64
	Description string
	PayerName   string
	PayerEmail  string
	ExpiresAt   time.Time
}

// PaymentStatusView is the polling response for the payment page.
type PaymentStatusView struct {
	IsPaid    bool       `json:"isPaid"`
	PixActive bool       `json:"pixActive"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	Order     Order      `json:"order"`
}

// GatewayPayment is a payment as reported back by a provider lookup.
type GatewayPayment struct {
	ID                string
	Status            string
	ExternalReference string
	Amount            float64
}

func (p GatewayPayment) IsApproved() bool { return p.Status == "approved" }
