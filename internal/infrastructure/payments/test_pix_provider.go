package payments

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"neurovita_checkout/internal/domain/entities"
	"neurovita_checkout/internal/usecase/interfaces"

	"github.com/rs/zerolog"
	"github.com/skip2/go-qrcode"
)

const GatewayTest = "test"

// TestPixProvider builds a locally valid static BR Code and its QR image without calling any
// gateway. Nothing pays it; orders are confirmed through the simulate endpoint.
type TestPixProvider struct {
	pixKey       string
	merchantName string
	merchantCity string
	log          zerolog.Logger
}

var _ interfaces.IPixProvider = (*TestPixProvider)(nil)

func NewTestPixProvider(pixKey, merchantName, merchantCity string, log zerolog.Logger) *TestPixProvider {
	return &TestPixProvider{pixKey: pixKey, merchantName: merchantName, merchantCity: merchantCity, log: log}
}

func (p *TestPixProvider) Name() string { return GatewayTest }

func (p *TestPixProvider) CreatePix(ctx context.Context, req entities.PixRequest) (entities.PixPayment, error) {
	if err := ctx.Err(); err != nil {
		return entities.PixPayment{}, err
	}
	code := BRCode{
		Key:          p.pixKey,
		MerchantName: p.merchantName,
		MerchantCity: p.merchantCity,
		Amount:       req.Amount,
		TxID:         req.OrderNumber,
	}.String()

	png, err := qrcode.Encode(code, qrcode.Medium, 256)
	if err != nil {
		return entities.PixPayment{}, fmt.Errorf("encoding qr code: %w", err)
	}
	p.log.Info().Str("order_id", req.OrderID).Float64("amount", req.Amount).Msg("test pix generated")

	return entities.PixPayment{
		Code:         code,
		QRCodeBase64: base64.StdEncoding.EncodeToString(png),
		Amount:       req.Amount,
		GeneratedAt:  time.Now().UTC(),
		ExpiresAt:    req.ExpiresAt,
	}, nil
}
