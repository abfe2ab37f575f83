package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"neurovita_checkout/internal/domain/entities"
	"neurovita_checkout/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/rs/zerolog"
)

const (
	GatewayMercadoPago = "mercadopago"

	mercadoPagoDateLayout = "2006-01-02T15:04:05.000Z07:00"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")

// mercadoPagoClient is the part of payment.Client the gateway uses.
type mercadoPagoClient interface {
	Create(ctx context.Context, request payment.Request) (*payment.Response, error)
	Get(ctx context.Context, id int) (*payment.Response, error)
}

// mercadoPagoPayment holds the response fields read back through JSON, like the stored payloads.
type mercadoPagoPayment struct {
	ID                 int     `json:"id"`
	Status             string  `json:"status"`
	ExternalReference  string  `json:"external_reference"`
	TransactionAmount  float64 `json:"transaction_amount"`
	PointOfInteraction struct {
		TransactionData struct {
			QRCode       string `json:"qr_code"`
			QRCodeBase64 string `json:"qr_code_base64"`
			TicketURL    string `json:"ticket_url"`
		} `json:"transaction_data"`
	} `json:"point_of_interaction"`
}

// MercadoPagoGateway issues PIX charges through the Mercado Pago payments API and looks payments
// up when a notification arrives.
type MercadoPagoGateway struct {
	client mercadoPagoClient
	log    zerolog.Logger
}

var (
	_ interfaces.IPixProvider   = (*MercadoPagoGateway)(nil)
	_ interfaces.IPaymentLookup = (*MercadoPagoGateway)(nil)
)

func NewMercadoPagoGateway(accessToken string, log zerolog.Logger) (*MercadoPagoGateway, error) {
	if strings.TrimSpace(accessToken) == "" {
		log.Error().Msg("missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}
	cfg, err := config.New(accessToken)
	if err != nil {
		log.Error().Err(err).Msg("failed creating mercado pago sdk config")
		return nil, err
	}
	log.Info().Msg("mercado pago client initialized")
	return &MercadoPagoGateway{client: payment.NewClient(cfg), log: log}, nil
}

func (g *MercadoPagoGateway) Name() string { return GatewayMercadoPago }

func (g *MercadoPagoGateway) CreatePix(ctx context.Context, req entities.PixRequest) (entities.PixPayment, error) {
	payload := map[string]any{
		"transaction_amount": req.Amount,
		"description":        req.Description,
		"payment_method_id":  "pix",
		"external_reference": req.OrderID,
		"payer": map[string]any{
			"email":      req.PayerEmail,
			"first_name": firstName(req.PayerName),
		},
	}
	if !req.ExpiresAt.IsZero() {
		payload["date_of_expiration"] = req.ExpiresAt.Format(mercadoPagoDateLayout)
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return entities.PixPayment{}, err
	}
	var request payment.Request
	if err := json.Unmarshal(raw, &request); err != nil {
		return entities.PixPayment{}, err
	}

	g.log.Info().Str("order_id", req.OrderID).Float64("amount", req.Amount).Msg("mercadopago create pix start")
	resp, err := g.client.Create(ctx, request)
	if err != nil {
		g.log.Error().Err(err).Str("order_id", req.OrderID).Msg("mercadopago create pix failed")
		return entities.PixPayment{}, g.gatewayError("create pix", err)
	}

	p, err := decodeMercadoPagoPayment(resp)
	if err != nil {
		return entities.PixPayment{}, g.gatewayError("create pix", err)
	}
	td := p.PointOfInteraction.TransactionData
	if strings.TrimSpace(td.QRCode) == "" {
		return entities.PixPayment{}, g.gatewayError("create pix", errors.New("malformed response: missing qr_code"))
	}
	g.log.Info().Str("order_id", req.OrderID).Int("provider_payment_id", p.ID).Str("provider_status", p.Status).Msg("mercadopago create pix success")

	return entities.PixPayment{
		Code:          td.QRCode,
		QRCodeBase64:  td.QRCodeBase64,
		QRCodeURL:     td.TicketURL,
		TransactionID: strconv.Itoa(p.ID),
		Amount:        req.Amount,
		ExpiresAt:     req.ExpiresAt,
	}, nil
}

func (g *MercadoPagoGateway) GetPayment(ctx context.Context, paymentID string) (entities.GatewayPayment, error) {
	id, err := strconv.Atoi(strings.TrimSpace(paymentID))
	if err != nil {
		return entities.GatewayPayment{}, fmt.Errorf("%w: payment id %q", entities.ErrValidation, paymentID)
	}
	resp, err := g.client.Get(ctx, id)
	if err != nil {
		g.log.Error().Err(err).Int("provider_payment_id", id).Msg("mercadopago get payment failed")
		return entities.GatewayPayment{}, g.gatewayError("get payment", err)
	}
	p, err := decodeMercadoPagoPayment(resp)
	if err != nil {
		return entities.GatewayPayment{}, g.gatewayError("get payment", err)
	}
	return entities.GatewayPayment{
		ID:                strconv.Itoa(p.ID),
		Status:            p.Status,
		ExternalReference: p.ExternalReference,
		Amount:            p.TransactionAmount,
	}, nil
}

func decodeMercadoPagoPayment(resp *payment.Response) (mercadoPagoPayment, error) {
	if resp == nil {
		return mercadoPagoPayment{}, errors.New("empty response")
	}
	b, err := json.Marshal(resp)
	if err != nil {
		return mercadoPagoPayment{}, err
	}
	var p mercadoPagoPayment
	if err := json.Unmarshal(b, &p); err != nil {
		return mercadoPagoPayment{}, err
	}
	return p, nil
}

func (g *MercadoPagoGateway) gatewayError(op string, err error) error {
	return &entities.GatewayError{Gateway: GatewayMercadoPago, Op: op, Timeout: isTimeout(err), Err: err}
}

func firstName(name string) string {
	if f := strings.Fields(name); len(f) > 0 {
		return f[0]
	}
	return ""
}
