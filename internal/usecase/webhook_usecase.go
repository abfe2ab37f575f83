package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"neurovita_checkout/internal/domain/entities"
	"neurovita_checkout/internal/usecase/interfaces"
	"neurovita_checkout/pkg/logger"

	"github.com/rs/zerolog"
)

const (
	SourceOrionPay        = "orionpay"
	SourceMercadoPago     = "mercadopago"
	SourceAdminSimulation = "admin_simulation"

	OrionPayEventPaymentSuccess  = "payment.success"
	OrionPayEventPurchaseCreated = "purchase.created"

	OutcomeConfirmed   = "confirmed"
	OutcomeAlreadyPaid = "already_paid"
	OutcomeDuplicate   = "duplicate"
	OutcomeIgnored     = "ignored"
)

var ErrInvalidWebhookPayload = errors.New("invalid webhook payload")

// WebhookConfig holds the shared secrets. RequireSignature rejects deliveries when no secret is set.
type WebhookConfig struct {
	OrionPaySecret    string
	MercadoPagoSecret string
	RequireSignature  bool
}

// WebhookResult is what the receiver acknowledges with. Replays come back as success no-ops.
type WebhookResult struct {
	Received bool   `json:"received"`
	Event    string `json:"event"`
	Outcome  string `json:"outcome"`
	OrderID  string `json:"orderId,omitempty"`
}

// MercadoPagoNotification carries the raw body plus the headers the signature covers.
type MercadoPagoNotification struct {
	Body      []byte
	Signature string
	RequestID string
	DataID    string
}

type orionPayPayload struct {
	ID    string `json:"id"`
	Event string `json:"event"`
	Data  struct {
		TransactionID     string  `json:"transactionId"`
		PurchaseID        string  `json:"purchaseId"`
		BuyerEmail        string  `json:"buyerEmail"`
		OrderID           string  `json:"orderId"`
		OrderNumber       string  `json:"orderNumber"`
		ExternalReference string  `json:"externalReference"`
		Amount            float64 `json:"amount"`
	} `json:"data"`
}

type mercadoPagoPayload struct {
	Type   string `json:"type"`
	Action string `json:"action"`
	Data   struct {
		ID string `json:"id"`
	} `json:"data"`
}

// IWebhookUseCase receives payment confirmations. Delivery is at least once and possibly out of
// order, so confirming an order that is already paid is a success no-op.
type IWebhookUseCase interface {
	HandleOrionPay(ctx context.Context, body []byte, signature string) (WebhookResult, error)
	HandleMercadoPago(ctx context.Context, n MercadoPagoNotification) (WebhookResult, error)
	SimulatePayment(ctx context.Context, ref string) (WebhookResult, error)
}

type WebhookUseCase struct {
	repo      interfaces.IOrderRepository
	dedup     interfaces.IWebhookDedup
	lookup    interfaces.IPaymentLookup
	publisher interfaces.IOrderEventPublisher
	metrics   interfaces.IMetricsRecorder
	cfg       WebhookConfig
	log       zerolog.Logger

	now func() time.Time
}

var _ IWebhookUseCase = (*WebhookUseCase)(nil)

func NewWebhookUseCase(repo interfaces.IOrderRepository, dedup interfaces.IWebhookDedup, lookup interfaces.IPaymentLookup, publisher interfaces.IOrderEventPublisher, metrics interfaces.IMetricsRecorder, cfg WebhookConfig, log zerolog.Logger) *WebhookUseCase {
	return &WebhookUseCase{
		repo:      repo,
		dedup:     dedup,
		lookup:    lookup,
		publisher: publisher,
		metrics:   metricsOrNoop(metrics),
		cfg:       cfg,
		log:       logger.Component(log, "webhook", "usecase"),
		now:       utcNow,
	}
}

func (u *WebhookUseCase) HandleOrionPay(ctx context.Context, body []byte, signature string) (WebhookResult, error) {
	log := logger.FromContext(ctx, u.log)

	if u.cfg.OrionPaySecret == "" {
		if u.cfg.RequireSignature {
			log.Warn().Msg("orionpay webhook rejected, no secret configured")
			u.metrics.WebhookReceived(SourceOrionPay, "unauthorized")
			return WebhookResult{}, entities.ErrMissingCredentials
		}
		log.Warn().Msg("orionpay webhook accepted without signature check, no secret configured")
	} else if !verifyOrionPaySignature(u.cfg.OrionPaySecret, body, signature) {
		log.Warn().Bool("signature_present", signature != "").Msg("orionpay webhook invalid signature")
		u.metrics.WebhookReceived(SourceOrionPay, "unauthorized")
		return WebhookResult{}, entities.ErrInvalidSignature
	}

	var p orionPayPayload
	if err := json.Unmarshal(body, &p); err != nil {
		u.metrics.WebhookReceived(SourceOrionPay, "invalid")
		return WebhookResult{}, fmt.Errorf("%w: %v", ErrInvalidWebhookPayload, err)
	}
	log.Info().Str("event", p.Event).Str("transaction_id", p.Data.TransactionID).Msg("orionpay webhook received")

	if p.Event != OrionPayEventPaymentSuccess {
		if p.Event == OrionPayEventPurchaseCreated {
			log.Info().Str("purchase_id", p.Data.PurchaseID).Msg("purchase created")
		} else {
			log.Info().Str("event", p.Event).Msg("ignoring orionpay event")
		}
		u.metrics.WebhookReceived(SourceOrionPay, OutcomeIgnored)
		return WebhookResult{Received: true, Event: p.Event, Outcome: OutcomeIgnored}, nil
	}

	eventID := orionPayEventID(p, body)
	res, err := u.deduplicated(ctx, SourceOrionPay, eventID, func() (WebhookResult, error) {
		o, err := u.resolveOrionPayOrder(ctx, p)
		if err != nil {
			return WebhookResult{}, err
		}
		return u.confirm(ctx, o, eventID, SourceOrionPay)
	})
	res.Event = p.Event
	return res, err
}

func orionPayEventID(p orionPayPayload, body []byte) string {
	switch {
	case p.ID != "":
		return p.ID
	case p.Data.TransactionID != "":
		return p.Event + ":" + p.Data.TransactionID
	}
	sum := sha256.Sum256(body)
	return p.Event + ":" + hex.EncodeToString(sum[:])
}

// resolveOrionPayOrder tries the gateway transaction id, then references in the payload, then the
// buyer's most recent pending order.
func (u *WebhookUseCase) resolveOrionPayOrder(ctx context.Context, p orionPayPayload) (entities.Order, error) {
	log := logger.FromContext(ctx, u.log)
	if tx := strings.TrimSpace(p.Data.TransactionID); tx != "" {
		o, err := u.repo.GetByPixTransactionID(ctx, tx)
		if err != nil {
			return entities.Order{}, err
		}
		if o.ID != "" {
			return o, nil
		}
	}
	for _, ref := range []string{p.Data.OrderID, p.Data.OrderNumber, p.Data.ExternalReference} {
		if strings.TrimSpace(ref) == "" {
			continue
		}
		o, err := findOrder(ctx, u.repo, ref)
		if err == nil {
			return o, nil
		}
		if !errors.Is(err, entities.ErrNotFound) {
			return entities.Order{}, err
		}
	}
	if email := strings.ToLower(strings.TrimSpace(p.Data.BuyerEmail)); email != "" {
		o, err := u.repo.FindLatestPendingByEmail(ctx, email)
		if err != nil {
			return entities.Order{}, err
		}
		if o.ID != "" {
			log.Warn().Str("order_id", o.ID).Msg("order resolved by buyer email")
			return o, nil
		}
	}
	log.Warn().Str("transaction_id", p.Data.TransactionID).Str("buyer_email", p.Data.BuyerEmail).Msg("order not found for webhook")
	return entities.Order{}, entities.ErrOrderNotFound
}

func (u *WebhookUseCase) HandleMercadoPago(ctx context.Context, n MercadoPagoNotification) (WebhookResult, error) {
	log := logger.FromContext(ctx, u.log)

	var p mercadoPagoPayload
	if len(n.Body) > 0 {
		if err := json.Unmarshal(n.Body, &p); err != nil {
			u.metrics.WebhookReceived(SourceMercadoPago, "invalid")
			return WebhookResult{}, fmt.Errorf("%w: %v", ErrInvalidWebhookPayload, err)
		}
	}
	dataID := strings.TrimSpace(n.DataID)
	if dataID == "" {
		dataID = strings.TrimSpace(p.Data.ID)
	}

	if u.cfg.MercadoPagoSecret == "" {
		if u.cfg.RequireSignature {
			u.metrics.WebhookReceived(SourceMercadoPago, "unauthorized")
			return WebhookResult{}, entities.ErrMissingCredentials
		}
		log.Warn().Msg("mercadopago webhook accepted without signature check, no secret configured")
	} else if !verifyMercadoPagoSignature(u.cfg.MercadoPagoSecret, n.Signature, n.RequestID, dataID) {
		log.Warn().Str("request_id", n.RequestID).Msg("mercadopago webhook invalid signature")
		u.metrics.WebhookReceived(SourceMercadoPago, "unauthorized")
		return WebhookResult{}, entities.ErrInvalidSignature
	}

	event := p.Type
	if p.Action != "" {
		event = p.Action
	}
	if p.Type != "payment" || dataID == "" {
		log.Info().Str("type", p.Type).Str("action", p.Action).Msg("ignoring mercadopago notification")
		u.metrics.WebhookReceived(SourceMercadoPago, OutcomeIgnored)
		return WebhookResult{Received: true, Event: event, Outcome: OutcomeIgnored}, nil
	}
	if u.lookup == nil {
		return WebhookResult{}, &entities.GatewayError{Gateway: SourceMercadoPago, Op: "get payment", Err: errors.New("payment lookup not configured")}
	}

	payment, err := u.lookup.GetPayment(ctx, dataID)
	if err != nil {
		log.Error().Err(err).Str("payment_id", dataID).Msg("mercadopago payment lookup failed")
		u.metrics.WebhookReceived(SourceMercadoPago, "gateway_error")
		return WebhookResult{}, err
	}
	if !payment.IsApproved() {
		log.Info().Str("payment_id", payment.ID).Str("status", payment.Status).Msg("mercadopago payment not approved yet")
		u.metrics.WebhookReceived(SourceMercadoPago, OutcomeIgnored)
		return WebhookResult{Received: true, Event: event, Outcome: OutcomeIgnored}, nil
	}

	eventID := "payment.approved:" + payment.ID
	res, err := u.deduplicated(ctx, SourceMercadoPago, eventID, func() (WebhookResult, error) {
		o, err := u.repo.GetByPixTransactionID(ctx, payment.ID)
		if err != nil {
			return WebhookResult{}, err
		}
		if o.ID == "" {
			if strings.TrimSpace(payment.ExternalReference) == "" {
				log.Warn().Str("payment_id", payment.ID).Msg("approved payment without external reference")
				return WebhookResult{}, entities.ErrOrderNotFound
			}
			if o, err = findOrder(ctx, u.repo, payment.ExternalReference); err != nil {
				return WebhookResult{}, err
			}
		}
		return u.confirm(ctx, o, eventID, SourceMercadoPago)
	})
	res.Event = event
	return res, err
}

// SimulatePayment is the admin override; it bypasses signatures and is gated by admin auth upstream.
func (u *WebhookUseCase) SimulatePayment(ctx context.Context, ref string) (WebhookResult, error) {
	o, err := findOrder(ctx, u.repo, ref)
	if err != nil {
		return WebhookResult{}, err
	}
	res, err := u.confirm(ctx, o, "simulate:"+o.ID, SourceAdminSimulation)
	res.Event = "payment.simulated"
	return res, err
}

// deduplicated runs fn once per event id. A failed run releases the key so the provider can retry.
func (u *WebhookUseCase) deduplicated(ctx context.Context, source, eventID string, fn func() (WebhookResult, error)) (WebhookResult, error) {
	log := logger.FromContext(ctx, u.log)
	if u.dedup != nil {
		first, err := u.dedup.CheckAndMark(ctx, source, eventID)
		switch {
		case err != nil:
			log.Warn().Err(err).Str("event_id", eventID).Msg("webhook dedup unavailable, relying on order status")
		case !first:
			log.Info().Str("event_id", eventID).Msg("duplicate webhook delivery")
			u.metrics.WebhookReceived(source, OutcomeDuplicate)
			return WebhookResult{Received: true, Outcome: OutcomeDuplicate}, nil
		}
	}

	res, err := fn()
	if err != nil {
		u.metrics.WebhookReceived(source, "error")
		if u.dedup != nil {
			if rerr := u.dedup.Release(ctx, source, eventID); rerr != nil {
				log.Warn().Err(rerr).Str("event_id", eventID).Msg("webhook dedup release failed")
			}
		}
		return WebhookResult{}, err
	}
	u.metrics.WebhookReceived(source, res.Outcome)
	return res, nil
}

// confirm moves a pending order to paid. Orders already paid (or further along) are left untouched.
func (u *WebhookUseCase) confirm(ctx context.Context, o entities.Order, eventID, source string) (WebhookResult, error) {
	log := logger.FromContext(ctx, u.log)
	if o.IsPaid() {
		log.Info().Str("order_id", o.ID).Str("status", string(o.Status)).Str("event_id", eventID).Msg("order already paid, webhook is a no-op")
		return WebhookResult{Received: true, Outcome: OutcomeAlreadyPaid, OrderID: o.ID}, nil
	}

	now := u.now()
	next, err := entities.Transition(o, entities.OrderStatusPaid, entities.StatusChange{At: now, EventID: eventID, Source: source})
	if err != nil {
		return WebhookResult{}, err
	}
	stored, applied, err := u.repo.UpdateStatus(ctx, next, entities.OrderStatusPending)
	if err != nil {
		log.Error().Err(err).Str("order_id", o.ID).Msg("order repository mark paid failed")
		return WebhookResult{}, err
	}
	if !applied {
		if stored.IsPaid() {
			log.Info().Str("order_id", o.ID).Str("event_id", eventID).Msg("order paid concurrently, webhook is a no-op")
			return WebhookResult{Received: true, Outcome: OutcomeAlreadyPaid, OrderID: o.ID}, nil
		}
		return WebhookResult{}, fmt.Errorf("%w: %s is %s", entities.ErrConcurrentUpdate, o.ID, stored.Status)
	}

	u.metrics.PaymentConfirmed(source)
	u.metrics.StatusChanged(string(entities.OrderStatusPaid))
	publishOrderEvent(ctx, u.publisher, log, stored, entities.EventOrderPaid, now)
	log.Info().Str("order_id", stored.ID).Str("order_number", stored.OrderNumber).Str("source", source).Str("event_id", eventID).Msg("order marked as paid")
	return WebhookResult{Received: true, Outcome: OutcomeConfirmed, OrderID: stored.ID}, nil
}
