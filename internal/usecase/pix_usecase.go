package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"neurovita_checkout/internal/domain/entities"
	"neurovita_checkout/internal/usecase/interfaces"
	"neurovita_checkout/pkg/logger"

	"github.com/rs/zerolog"
)

const (
	DefaultPixExpiration  = 30 * time.Minute
	DefaultGatewayTimeout = 8 * time.Second
)

// IPixUseCase issues the payable PIX for a pending order and serves the polling endpoint.
//
// At most one active PIX exists per order: while the stored one is active it is returned as is,
// and a new one is stored only once the previous one expired.
type IPixUseCase interface {
	Generate(ctx context.Context, ref string) (entities.PixPayment, entities.Order, error)
	CheckStatus(ctx context.Context, ref string) (entities.PaymentStatusView, error)
}

type PixUseCase struct {
	repo       interfaces.IOrderRepository
	provider   interfaces.IPixProvider
	expiration time.Duration
	timeout    time.Duration
	metrics    interfaces.IMetricsRecorder
	log        zerolog.Logger

	now func() time.Time
}

var _ IPixUseCase = (*PixUseCase)(nil)

func NewPixUseCase(repo interfaces.IOrderRepository, provider interfaces.IPixProvider, expiration, timeout time.Duration, metrics interfaces.IMetricsRecorder, log zerolog.Logger) *PixUseCase {
	if expiration <= 0 {
		expiration = DefaultPixExpiration
	}
	if timeout <= 0 {
		timeout = DefaultGatewayTimeout
	}
	return &PixUseCase{
		repo:       repo,
		provider:   provider,
		expiration: expiration,
		timeout:    timeout,
		metrics:    metricsOrNoop(metrics),
		log:        logger.Component(log, "pix", "usecase"),
		now:        utcNow,
	}
}

func (u *PixUseCase) Generate(ctx context.Context, ref string) (entities.PixPayment, entities.Order, error) {
	log := logger.FromContext(ctx, u.log)
	o, err := findOrder(ctx, u.repo, ref)
	if err != nil {
		return entities.PixPayment{}, entities.Order{}, err
	}
	log.Info().Str("order_id", o.ID).Str("status", string(o.Status)).Msg("generate pix start")

	if o.IsPaid() {
		return entities.PixPayment{}, o, entities.ErrOrderAlreadyPaid
	}
	if o.Status != entities.OrderStatusPending {
		return entities.PixPayment{}, o, fmt.Errorf("%w: %s", entities.ErrInvalidOrderState, o.Status)
	}

	now := u.now()
	if pix, ok := o.ActivePix(now); ok {
		u.metrics.PixIssued(pix.Gateway, true)
		log.Info().Str("order_id", o.ID).Time("expires_at", pix.ExpiresAt).Msg("returning active pix")
		return pix, o, nil
	}

	expiresAt := now.Add(u.expiration)
	req := entities.PixRequest{
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		Amount:      o.TotalPrice,
		Description: "NeuroVita - Pedido " + o.OrderNumber,
		PayerName:   o.Name,
		PayerEmail:  o.Email,
		ExpiresAt:   expiresAt,
	}

	callCtx, cancel := context.WithTimeout(ctx, u.timeout)
	pix, err := u.provider.CreatePix(callCtx, req)
	cancel()
	if err != nil {
		u.metrics.GatewayFailure(u.provider.Name())
		log.Error().Err(err).Str("order_id", o.ID).Str("gateway", u.provider.Name()).Msg("pix provider failed")
		var gwErr *entities.GatewayError
		if !errors.As(err, &gwErr) {
			err = &entities.GatewayError{
				Gateway: u.provider.Name(),
				Op:      "create pix",
				Timeout: errors.Is(err, context.DeadlineExceeded),
				Err:     err,
			}
		}
		return entities.PixPayment{}, o, err
	}

	pix.Gateway = u.provider.Name()
	pix.Amount = o.TotalPrice
	pix.GeneratedAt = now
	if pix.ExpiresAt.IsZero() || pix.ExpiresAt.After(expiresAt) {
		pix.ExpiresAt = expiresAt
	}

	stored, applied, err := u.repo.SavePixPayment(ctx, o.ID, pix, now)
	if err != nil {
		log.Error().Err(err).Str("order_id", o.ID).Msg("order repository save pix failed")
		return entities.PixPayment{}, o, err
	}
	if !applied {
		// Lost the race against another generate or a payment confirmation.
		if stored.IsPaid() {
			return entities.PixPayment{}, stored, entities.ErrOrderAlreadyPaid
		}
		if active, ok := stored.ActivePix(now); ok {
			log.Warn().Str("order_id", o.ID).Str("discarded_transaction_id", pix.TransactionID).Msg("concurrent pix generation, returning stored pix")
			u.metrics.PixIssued(active.Gateway, true)
			return active, stored, nil
		}
		return entities.PixPayment{}, stored, fmt.Errorf("%w: pix for %s", entities.ErrConcurrentUpdate, o.ID)
	}

	u.metrics.PixIssued(pix.Gateway, false)
	log.Info().Str("order_id", o.ID).Str("gateway", pix.Gateway).Str("transaction_id", pix.TransactionID).Time("expires_at", pix.ExpiresAt).Msg("generate pix success")
	return pix, stored, nil
}

// CheckStatus is a read only projection, safe to poll.
func (u *PixUseCase) CheckStatus(ctx context.Context, ref string) (entities.PaymentStatusView, error) {
	o, err := findOrder(ctx, u.repo, ref)
	if err != nil {
		return entities.PaymentStatusView{}, err
	}
	view := entities.PaymentStatusView{IsPaid: o.IsPaid(), Order: o}
	if pix, ok := o.ActivePix(u.now()); ok && !view.IsPaid {
		view.PixActive = true
		expiresAt := pix.ExpiresAt
		view.ExpiresAt = &expiresAt
	}
	return view, nil
}
