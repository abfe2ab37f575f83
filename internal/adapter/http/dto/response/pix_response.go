package response

import (
	"time"

	"neurovita_checkout/internal/domain/entities"
)

// PixResponse is what the payment page renders: copy code, QR image and countdown target.
type PixResponse struct {
	Success          bool      `json:"success"`
	PixCode          string    `json:"pixCode"`
	QRCode           string    `json:"qrCode,omitempty"`
	QRCodeURL        string    `json:"qrCodeUrl,omitempty"`
	TransactionID    string    `json:"transactionId,omitempty"`
	Gateway          string    `json:"gateway"`
	Amount           float64   `json:"amount"`
	ExpiresAt        time.Time `json:"expiresAt"`
	RemainingSeconds int64     `json:"remainingSeconds"`
	OrderID          string    `json:"orderId"`
	OrderNumber      string    `json:"orderNumber"`
}

func FromPixPayment(p entities.PixPayment, o entities.Order, now time.Time) PixResponse {
	return PixResponse{
		Success:          true,
		PixCode:          p.Code,
		QRCode:           p.QRCodeBase64,
		QRCodeURL:        p.QRCodeURL,
		TransactionID:    p.TransactionID,
		Gateway:          p.Gateway,
		Amount:           p.Amount,
		ExpiresAt:        p.ExpiresAt,
		RemainingSeconds: int64(p.Remaining(now).Seconds()),
		OrderID:          o.ID,
		OrderNumber:      o.OrderNumber,
	}
}

type PaymentStatusResponse struct {
	OrderID       string        `json:"orderId"`
	OrderNumber   string        `json:"orderNumber"`
	Status        string        `json:"status"`
	IsPaid        bool          `json:"isPaid"`
	PixActive     bool          `json:"pixActive"`
	PixCode       string        `json:"pixCode,omitempty"`
	TransactionID string        `json:"transactionId,omitempty"`
	ExpiresAt     *time.Time    `json:"expiresAt,omitempty"`
	Order         OrderResponse `json:"order"`
}

func FromPaymentStatus(v entities.PaymentStatusView) PaymentStatusResponse {
	resp := PaymentStatusResponse{
		OrderID:     v.Order.ID,
		OrderNumber: v.Order.OrderNumber,
		Status:      string(v.Order.Status),
		IsPaid:      v.IsPaid,
		PixActive:   v.PixActive,
		ExpiresAt:   v.ExpiresAt,
		Order:       FromOrder(v.Order),
	}
	if v.Order.Pix != nil {
		resp.PixCode = v.Order.Pix.Code
		resp.TransactionID = v.Order.Pix.TransactionID
	}
	return resp
}

// WebhookAckResponse is returned to gateways. Replays and ignored events are acknowledged too.
type WebhookAckResponse struct {
	Received bool   `json:"received"`
	Event    string `json:"event,omitempty"`
	Outcome  string `json:"outcome,omitempty"`
	OrderID  string `json:"orderId,omitempty"`
}
