package usecase

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"neurovita_checkout/internal/adapter/persistence/repository"
	"neurovita_checkout/internal/domain/entities"

	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newSQLiteOrderRepository(t *testing.T) *repository.OrderGormRepository {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "orders.db") + "?_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := repository.MigrateOrders(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return repository.NewOrderGormRepository(db)
}

func TestWebhookUseCase_ConcurrentConfirmationsTransitionOnce(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteOrderRepository(t)

	order := pendingOrder()
	order.CreatedAt = webhookNow.Add(-time.Hour)
	order.UpdatedAt = order.CreatedAt
	if _, err := repo.Create(ctx, order); err != nil {
		t.Fatalf("create order: %v", err)
	}

	uc := NewWebhookUseCase(repo, nil, nil, nil, nil, WebhookConfig{}, zerolog.Nop())
	body := []byte(`{"event":"payment.success","data":{"orderId":"id-1","amount":235.8}}`)

	const workers = 16
	outcomes := make([]string, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			var res WebhookResult
			if i%2 == 0 {
				res, errs[i] = uc.HandleOrionPay(ctx, body, "")
			} else {
				res, errs[i] = uc.SimulatePayment(ctx, "id-1")
			}
			outcomes[i] = res.Outcome
		}(i)
	}
	close(start)
	wg.Wait()

	counts := map[string]int{}
	for i := range outcomes {
		if errs[i] != nil {
			t.Fatalf("worker %d failed: %v", i, errs[i])
		}
		counts[outcomes[i]]++
	}
	if counts[OutcomeConfirmed] != 1 || counts[OutcomeAlreadyPaid] != workers-1 {
		t.Fatalf("expected one confirmation and %d no-ops, got %v", workers-1, counts)
	}

	paid, err := repo.GetByID(ctx, "id-1")
	if err != nil {
		t.Fatalf("reload order: %v", err)
	}
	if paid.Status != entities.OrderStatusPaid || paid.PaidAt == nil {
		t.Fatalf("expected paid order, got %+v", paid)
	}
	paidAt := *paid.PaidAt

	// late replays of both kinds leave the order untouched
	if res, err := uc.HandleOrionPay(ctx, body, ""); err != nil || res.Outcome != OutcomeAlreadyPaid {
		t.Fatalf("unexpected replay result err=%v res=%+v", err, res)
	}
	if res, err := uc.SimulatePayment(ctx, "id-1"); err != nil || res.Outcome != OutcomeAlreadyPaid {
		t.Fatalf("unexpected simulate result err=%v res=%+v", err, res)
	}
	again, err := repo.GetByID(ctx, "id-1")
	if err != nil {
		t.Fatalf("reload order: %v", err)
	}
	if again.PaidAt == nil || !again.PaidAt.Equal(paidAt) || again.PaymentEventID != paid.PaymentEventID {
		t.Fatalf("paid order changed on replay: before=%+v after=%+v", paid, again)
	}
}
