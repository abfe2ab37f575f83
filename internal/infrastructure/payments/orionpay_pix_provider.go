package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"neurovita_checkout/internal/domain/entities"
	"neurovita_checkout/internal/usecase/interfaces"

	"github.com/rs/zerolog"
)

const (
	GatewayOrionPay        = "orionpay"
	DefaultOrionPayBaseURL = "https://payapi.orion.moe/api/v1"
)

var ErrMissingOrionPayAPIKey = errors.New("missing ORIONPAY_API_KEY")

type orionPayGenerateRequest struct {
	Amount float64 `json:"amount"`
	Email  string  `json:"email"`
	Name   string  `json:"name"`
}

type orionPayPix struct {
	ID      string `json:"id"`
	PixCode string `json:"pixCode"`
	QRCode  string `json:"qrCode"`
}

// OrionPayPixProvider calls POST {base}/pix/generate authenticated by X-API-Key.
type OrionPayPixProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
	log     zerolog.Logger
}

var _ interfaces.IPixProvider = (*OrionPayPixProvider)(nil)

func NewOrionPayPixProvider(baseURL, apiKey string, timeout time.Duration, log zerolog.Logger) (*OrionPayPixProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingOrionPayAPIKey
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultOrionPayBaseURL
	}
	return &OrionPayPixProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
		log:     log,
	}, nil
}

func (p *OrionPayPixProvider) Name() string { return GatewayOrionPay }

func (p *OrionPayPixProvider) CreatePix(ctx context.Context, req entities.PixRequest) (entities.PixPayment, error) {
	body, err := json.Marshal(orionPayGenerateRequest{Amount: req.Amount, Email: req.PayerEmail, Name: req.PayerName})
	if err != nil {
		return entities.PixPayment{}, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/pix/generate", bytes.NewReader(body))
	if err != nil {
		return entities.PixPayment{}, p.gatewayError(0, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-API-Key", p.apiKey)

	p.log.Info().Str("order_id", req.OrderID).Float64("amount", req.Amount).Msg("orionpay generate start")
	resp, err := p.client.Do(httpReq)
	if err != nil {
		return entities.PixPayment{}, p.gatewayError(0, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return entities.PixPayment{}, p.gatewayError(resp.StatusCode, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		p.log.Error().Int("status", resp.StatusCode).Str("body", truncate(string(raw), 512)).Msg("orionpay generate failed")
		return entities.PixPayment{}, p.gatewayError(resp.StatusCode, fmt.Errorf("unexpected status: %s", truncate(string(raw), 200)))
	}

	pix, err := decodeOrionPayPix(raw)
	if err != nil {
		return entities.PixPayment{}, p.gatewayError(resp.StatusCode, err)
	}
	p.log.Info().Str("order_id", req.OrderID).Str("transaction_id", pix.ID).Msg("orionpay generate success")

	return entities.PixPayment{
		Code:          pix.PixCode,
		QRCodeBase64:  pix.QRCode,
		TransactionID: pix.ID,
		Amount:        req.Amount,
		ExpiresAt:     req.ExpiresAt,
	}, nil
}

// decodeOrionPayPix accepts both {"data":{...}} and a bare object.
func decodeOrionPayPix(raw []byte) (orionPayPix, error) {
	var envelope struct {
		Data *orionPayPix `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return orionPayPix{}, fmt.Errorf("malformed response: %w", err)
	}
	pix := envelope.Data
	if pix == nil {
		pix = &orionPayPix{}
		if err := json.Unmarshal(raw, pix); err != nil {
			return orionPayPix{}, fmt.Errorf("malformed response: %w", err)
		}
	}
	if strings.TrimSpace(pix.PixCode) == "" {
		return orionPayPix{}, errors.New("malformed response: missing pixCode")
	}
	return *pix, nil
}

func (p *OrionPayPixProvider) gatewayError(status int, err error) error {
	return &entities.GatewayError{
		Gateway:    GatewayOrionPay,
		Op:         "pix generate",
		StatusCode: status,
		Timeout:    isTimeout(err),
		Err:        err,
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
