package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"neurovita_checkout/internal/domain/entities"
	mock_interfaces "neurovita_checkout/internal/usecase/interfaces/mocks"

	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"
)

const testWebhookSecret = "whsec_test"

var webhookNow = time.Date(2026, 3, 14, 12, 5, 0, 0, time.UTC)

const paymentSuccessBody = `{"event":"payment.success","data":{"transactionId":"tx-1","buyerEmail":"m@x.com","amount":235.8}}`

func newTestWebhookUseCase(repo *mock_interfaces.MockIOrderRepository, dedup *mock_interfaces.MockIWebhookDedup, cfg WebhookConfig) *WebhookUseCase {
	uc := NewWebhookUseCase(repo, nil, nil, nil, nil, cfg, zerolog.Nop())
	if dedup != nil {
		uc.dedup = dedup
	}
	uc.now = func() time.Time { return webhookNow }
	return uc
}

func signedConfig() WebhookConfig {
	return WebhookConfig{OrionPaySecret: testWebhookSecret, MercadoPagoSecret: testWebhookSecret, RequireSignature: true}
}

func expectMarkPaid(t *testing.T, repo *mock_interfaces.MockIOrderRepository, source string) *gomock.Call {
	t.Helper()
	return repo.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), entities.OrderStatusPending).DoAndReturn(
		func(_ context.Context, o entities.Order, _ entities.OrderStatus) (entities.Order, bool, error) {
			if o.Status != entities.OrderStatusPaid || o.PaidAt == nil || !o.PaidAt.Equal(webhookNow) {
				t.Fatalf("unexpected paid order: %+v", o)
			}
			if o.PaymentSource != source || o.PaymentEventID == "" {
				t.Fatalf("expected payment source %s and event id, got %+v", source, o)
			}
			return o, true, nil
		},
	)
}

func TestWebhookUseCase_OrionPay_Signature(t *testing.T) {
	body := []byte(paymentSuccessBody)

	t.Run("valid signature confirms the order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		uc := newTestWebhookUseCase(repo, nil, signedConfig())

		repo.EXPECT().GetByPixTransactionID(gomock.Any(), "tx-1").Return(pendingOrder(), nil)
		expectMarkPaid(t, repo, SourceOrionPay)

		res, err := uc.HandleOrionPay(context.Background(), body, hmacSHA256Hex(testWebhookSecret, body))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.Received || res.Outcome != OutcomeConfirmed || res.OrderID != "id-1" || res.Event != OrionPayEventPaymentSuccess {
			t.Fatalf("unexpected result: %+v", res)
		}
	})

	t.Run("sha256= prefix is accepted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		uc := newTestWebhookUseCase(repo, nil, signedConfig())

		repo.EXPECT().GetByPixTransactionID(gomock.Any(), "tx-1").Return(pendingOrder(), nil)
		expectMarkPaid(t, repo, SourceOrionPay)

		if _, err := uc.HandleOrionPay(context.Background(), body, "sha256="+hmacSHA256Hex(testWebhookSecret, body)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	rejected := []struct {
		name      string
		signature string
	}{
		{name: "missing", signature: ""},
		{name: "wrong secret", signature: hmacSHA256Hex("other", body)},
		{name: "garbage", signature: "zzz"},
	}
	for _, tc := range rejected {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			uc := newTestWebhookUseCase(mock_interfaces.NewMockIOrderRepository(ctrl), nil, signedConfig())

			_, err := uc.HandleOrionPay(context.Background(), body, tc.signature)
			if !errors.Is(err, entities.ErrInvalidSignature) || !errors.Is(err, entities.ErrAuthentication) {
				t.Fatalf("expected ErrInvalidSignature, got %v", err)
			}
		})
	}

	t.Run("no secret in production is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := newTestWebhookUseCase(mock_interfaces.NewMockIOrderRepository(ctrl), nil, WebhookConfig{RequireSignature: true})

		_, err := uc.HandleOrionPay(context.Background(), body, "")
		if !errors.Is(err, entities.ErrAuthentication) {
			t.Fatalf("expected ErrAuthentication, got %v", err)
		}
	})

	t.Run("no secret in development is accepted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		uc := newTestWebhookUseCase(repo, nil, WebhookConfig{})

		repo.EXPECT().GetByPixTransactionID(gomock.Any(), "tx-1").Return(pendingOrder(), nil)
		expectMarkPaid(t, repo, SourceOrionPay)

		if _, err := uc.HandleOrionPay(context.Background(), body, ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestWebhookUseCase_OrionPay_Replay(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIOrderRepository(ctrl)
	uc := newTestWebhookUseCase(repo, nil, WebhookConfig{})
	body := []byte(paymentSuccessBody)

	var stored entities.Order
	gomock.InOrder(
		repo.EXPECT().GetByPixTransactionID(gomock.Any(), "tx-1").Return(pendingOrder(), nil),
		repo.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), entities.OrderStatusPending).DoAndReturn(
			func(_ context.Context, o entities.Order, _ entities.OrderStatus) (entities.Order, bool, error) {
				stored = o
				return o, true, nil
			},
		).Times(1),
		repo.EXPECT().GetByPixTransactionID(gomock.Any(), "tx-1").DoAndReturn(
			func(context.Context, string) (entities.Order, error) { return stored, nil },
		),
	)

	first, err := uc.HandleOrionPay(context.Background(), body, "")
	if err != nil || first.Outcome != OutcomeConfirmed {
		t.Fatalf("first delivery: err=%v res=%+v", err, first)
	}
	paidAt := *stored.PaidAt

	uc.now = func() time.Time { return webhookNow.Add(time.Minute) }
	second, err := uc.HandleOrionPay(context.Background(), body, "")
	if err != nil || second.Outcome != OutcomeAlreadyPaid {
		t.Fatalf("replay must be a success no-op: err=%v res=%+v", err, second)
	}
	if stored.Status != entities.OrderStatusPaid || !stored.PaidAt.Equal(paidAt) {
		t.Fatalf("replay changed the order: %+v", stored)
	}
}

func TestWebhookUseCase_OrionPay_Events(t *testing.T) {
	for _, body := range []string{
		`{"event":"purchase.created","data":{"purchaseId":"p-1"}}`,
		`{"event":"payment.refunded","data":{}}`,
	} {
		ctrl := gomock.NewController(t)
		uc := newTestWebhookUseCase(mock_interfaces.NewMockIOrderRepository(ctrl), nil, WebhookConfig{})
		res, err := uc.HandleOrionPay(context.Background(), []byte(body), "")
		if err != nil || res.Outcome != OutcomeIgnored || !res.Received {
			t.Fatalf("body %s: err=%v res=%+v", body, err, res)
		}
		ctrl.Finish()
	}

	t.Run("invalid json", func(t *testing.T) {
		uc := newTestWebhookUseCase(nil, nil, WebhookConfig{})
		_, err := uc.HandleOrionPay(context.Background(), []byte("{"), "")
		if !errors.Is(err, ErrInvalidWebhookPayload) {
			t.Fatalf("expected ErrInvalidWebhookPayload, got %v", err)
		}
	})
}

func TestWebhookUseCase_OrionPay_Resolution(t *testing.T) {
	t.Run("order reference in payload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		uc := newTestWebhookUseCase(repo, nil, WebhookConfig{})

		repo.EXPECT().GetByPixTransactionID(gomock.Any(), "tx-unknown").Return(entities.Order{}, nil)
		repo.EXPECT().GetByOrderNumber(gomock.Any(), "NV-20260314-ABC123").Return(pendingOrder(), nil)
		expectMarkPaid(t, repo, SourceOrionPay)

		body := `{"event":"payment.success","data":{"transactionId":"tx-unknown","orderNumber":"NV-20260314-ABC123"}}`
		res, err := uc.HandleOrionPay(context.Background(), []byte(body), "")
		if err != nil || res.Outcome != OutcomeConfirmed {
			t.Fatalf("unexpected result err=%v res=%+v", err, res)
		}
	})

	t.Run("latest pending order by email", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		uc := newTestWebhookUseCase(repo, nil, WebhookConfig{})

		repo.EXPECT().FindLatestPendingByEmail(gomock.Any(), "m@x.com").Return(pendingOrder(), nil)
		expectMarkPaid(t, repo, SourceOrionPay)

		body := `{"id":"evt-1","event":"payment.success","data":{"buyerEmail":" M@X.com "}}`
		res, err := uc.HandleOrionPay(context.Background(), []byte(body), "")
		if err != nil || res.OrderID != "id-1" {
			t.Fatalf("unexpected result err=%v res=%+v", err, res)
		}
	})

	t.Run("unresolvable releases the dedup key", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		dedup := mock_interfaces.NewMockIWebhookDedup(ctrl)
		uc := newTestWebhookUseCase(repo, dedup, WebhookConfig{})

		dedup.EXPECT().CheckAndMark(gomock.Any(), SourceOrionPay, "payment.success:tx-1").Return(true, nil)
		repo.EXPECT().GetByPixTransactionID(gomock.Any(), "tx-1").Return(entities.Order{}, nil)
		repo.EXPECT().FindLatestPendingByEmail(gomock.Any(), "m@x.com").Return(entities.Order{}, nil)
		dedup.EXPECT().Release(gomock.Any(), SourceOrionPay, "payment.success:tx-1").Return(nil)

		_, err := uc.HandleOrionPay(context.Background(), []byte(paymentSuccessBody), "")
		if !errors.Is(err, entities.ErrOrderNotFound) {
			t.Fatalf("expected ErrOrderNotFound, got %v", err)
		}
	})
}

func TestWebhookUseCase_Dedup(t *testing.T) {
	t.Run("duplicate event id short circuits", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		dedup := mock_interfaces.NewMockIWebhookDedup(ctrl)
		uc := newTestWebhookUseCase(repo, dedup, WebhookConfig{})

		dedup.EXPECT().CheckAndMark(gomock.Any(), SourceOrionPay, "payment.success:tx-1").Return(false, nil)

		res, err := uc.HandleOrionPay(context.Background(), []byte(paymentSuccessBody), "")
		if err != nil || res.Outcome != OutcomeDuplicate {
			t.Fatalf("unexpected result err=%v res=%+v", err, res)
		}
	})

	t.Run("dedup outage falls back to status check", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		dedup := mock_interfaces.NewMockIWebhookDedup(ctrl)
		uc := newTestWebhookUseCase(repo, dedup, WebhookConfig{})

		paid := pendingOrder()
		paid.Status = entities.OrderStatusPaid
		dedup.EXPECT().CheckAndMark(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, errors.New("redis down"))
		repo.EXPECT().GetByPixTransactionID(gomock.Any(), "tx-1").Return(paid, nil)

		res, err := uc.HandleOrionPay(context.Background(), []byte(paymentSuccessBody), "")
		if err != nil || res.Outcome != OutcomeAlreadyPaid {
			t.Fatalf("unexpected result err=%v res=%+v", err, res)
		}
	})

	t.Run("lost compare and set to a concurrent payment", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		uc := newTestWebhookUseCase(repo, nil, WebhookConfig{})

		paid := pendingOrder()
		paid.Status = entities.OrderStatusPaid
		repo.EXPECT().GetByPixTransactionID(gomock.Any(), "tx-1").Return(pendingOrder(), nil)
		repo.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), entities.OrderStatusPending).Return(paid, false, nil)

		res, err := uc.HandleOrionPay(context.Background(), []byte(paymentSuccessBody), "")
		if err != nil || res.Outcome != OutcomeAlreadyPaid {
			t.Fatalf("unexpected result err=%v res=%+v", err, res)
		}
	})
}

func mercadoPagoNotification(secret string) MercadoPagoNotification {
	n := MercadoPagoNotification{
		Body:      []byte(`{"type":"payment","action":"payment.updated","data":{"id":"555"}}`),
		RequestID: "req-1",
		DataID:    "555",
	}
	ts := "1742505638683"
	n.Signature = "ts=" + ts + ",v1=" + hmacSHA256Hex(secret, []byte(mercadoPagoManifest("555", "req-1", ts)))
	return n
}

func TestWebhookUseCase_MercadoPago(t *testing.T) {
	t.Run("approved payment confirms the order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		lookup := mock_interfaces.NewMockIPaymentLookup(ctrl)
		uc := newTestWebhookUseCase(repo, nil, signedConfig())
		uc.lookup = lookup

		lookup.EXPECT().GetPayment(gomock.Any(), "555").Return(entities.GatewayPayment{ID: "555", Status: "approved", ExternalReference: "id-1"}, nil)
		repo.EXPECT().GetByPixTransactionID(gomock.Any(), "555").Return(entities.Order{}, nil)
		repo.EXPECT().GetByID(gomock.Any(), "id-1").Return(pendingOrder(), nil)
		expectMarkPaid(t, repo, SourceMercadoPago)

		res, err := uc.HandleMercadoPago(context.Background(), mercadoPagoNotification(testWebhookSecret))
		if err != nil || res.Outcome != OutcomeConfirmed || res.Event != "payment.updated" {
			t.Fatalf("unexpected result err=%v res=%+v", err, res)
		}
	})

	t.Run("pending payment is acknowledged", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		lookup := mock_interfaces.NewMockIPaymentLookup(ctrl)
		uc := newTestWebhookUseCase(mock_interfaces.NewMockIOrderRepository(ctrl), nil, signedConfig())
		uc.lookup = lookup

		lookup.EXPECT().GetPayment(gomock.Any(), "555").Return(entities.GatewayPayment{ID: "555", Status: "pending"}, nil)

		res, err := uc.HandleMercadoPago(context.Background(), mercadoPagoNotification(testWebhookSecret))
		if err != nil || res.Outcome != OutcomeIgnored {
			t.Fatalf("unexpected result err=%v res=%+v", err, res)
		}
	})

	t.Run("invalid signature", func(t *testing.T) {
		uc := newTestWebhookUseCase(nil, nil, signedConfig())
		_, err := uc.HandleMercadoPago(context.Background(), mercadoPagoNotification("other"))
		if !errors.Is(err, entities.ErrInvalidSignature) {
			t.Fatalf("expected ErrInvalidSignature, got %v", err)
		}
	})

	t.Run("lookup failure is a gateway error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		lookup := mock_interfaces.NewMockIPaymentLookup(ctrl)
		uc := newTestWebhookUseCase(nil, nil, signedConfig())
		uc.lookup = lookup

		lookup.EXPECT().GetPayment(gomock.Any(), "555").Return(entities.GatewayPayment{}, &entities.GatewayError{Gateway: "mercadopago", Op: "get payment"})

		_, err := uc.HandleMercadoPago(context.Background(), mercadoPagoNotification(testWebhookSecret))
		if !errors.Is(err, entities.ErrGateway) {
			t.Fatalf("expected ErrGateway, got %v", err)
		}
	})

	t.Run("non payment topic is ignored", func(t *testing.T) {
		uc := newTestWebhookUseCase(nil, nil, WebhookConfig{})
		res, err := uc.HandleMercadoPago(context.Background(), MercadoPagoNotification{Body: []byte(`{"type":"merchant_order","data":{"id":"9"}}`)})
		if err != nil || res.Outcome != OutcomeIgnored {
			t.Fatalf("unexpected result err=%v res=%+v", err, res)
		}
	})
}

func TestWebhookUseCase_SimulatePayment(t *testing.T) {
	t.Run("pending order is confirmed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		uc := newTestWebhookUseCase(repo, nil, signedConfig())

		repo.EXPECT().GetByID(gomock.Any(), "id-1").Return(pendingOrder(), nil)
		expectMarkPaid(t, repo, SourceAdminSimulation)

		res, err := uc.SimulatePayment(context.Background(), "id-1")
		if err != nil || res.Outcome != OutcomeConfirmed {
			t.Fatalf("unexpected result err=%v res=%+v", err, res)
		}
	})

	t.Run("already paid is a no-op", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		uc := newTestWebhookUseCase(repo, nil, signedConfig())

		paid := pendingOrder()
		paid.Status = entities.OrderStatusDelivered
		repo.EXPECT().GetByID(gomock.Any(), "id-1").Return(paid, nil)

		res, err := uc.SimulatePayment(context.Background(), "id-1")
		if err != nil || res.Outcome != OutcomeAlreadyPaid {
			t.Fatalf("unexpected result err=%v res=%+v", err, res)
		}
	})
}

func TestMercadoPagoSignatureHelpers(t *testing.T) {
	ts, v1 := parseMercadoPagoSignature(" ts=123 , v1=abc,extra")
	if ts != "123" || v1 != "abc" {
		t.Fatalf("unexpected parse ts=%q v1=%q", ts, v1)
	}
	if got := mercadoPagoManifest("ABC", "", "1"); got != "id:abc;ts:1;" {
		t.Fatalf("unexpected manifest %q", got)
	}
	if verifyMercadoPagoSignature("s", "v1=abc", "r", "1") {
		t.Fatalf("missing ts must fail")
	}
}
