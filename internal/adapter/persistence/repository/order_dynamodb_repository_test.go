package repository

import (
	"context"
	"strings"
	"testing"
	"time"

	"neurovita_checkout/internal/domain/entities"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type fakeDynamo struct {
	put        *dynamodb.PutItemInput
	update     *dynamodb.UpdateItemInput
	queries    []*dynamodb.QueryInput
	scans      []*dynamodb.ScanInput
	getItem    map[string]types.AttributeValue
	items      []map[string]types.AttributeValue
	updateOut  map[string]types.AttributeValue
	updateErr  error
	scanPages  [][]map[string]types.AttributeValue
	scanCalled int
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.put = in
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) GetItem(context.Context, *dynamodb.GetItemInput, ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	return &dynamodb.GetItemOutput{Item: f.getItem}, nil
}

func (f *fakeDynamo) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.update = in
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &dynamodb.UpdateItemOutput{Attributes: f.updateOut}, nil
}

func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.queries = append(f.queries, in)
	return &dynamodb.QueryOutput{Items: f.items}, nil
}

func (f *fakeDynamo) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.scans = append(f.scans, in)
	out := &dynamodb.ScanOutput{}
	if f.scanCalled < len(f.scanPages) {
		out.Items = f.scanPages[f.scanCalled]
	}
	f.scanCalled++
	if f.scanCalled < len(f.scanPages) {
		out.LastEvaluatedKey = orderKey("cursor")
	}
	return out, nil
}

var repoNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func sampleOrder() entities.Order {
	return entities.Order{
		ID:            "id-1",
		OrderNumber:   "NV-20260314-ABC123",
		Name:          "Maria",
		Email:         "m@x.com",
		Phone:         "11999999999",
		CEP:           "01001000",
		Street:        "Rua A",
		Number:        "10",
		Neighborhood:  "Centro",
		City:          "Sao Paulo",
		State:         "SP",
		Quantity:      2,
		OptionLabel:   "2 Amostras + 1 Frasco",
		ProductPrice:  197,
		ShippingPrice: 38.80,
		TotalPrice:    235.80,
		Status:        entities.OrderStatusPending,
		CreatedAt:     repoNow,
		UpdatedAt:     repoNow,
	}
}

func marshalOrder(t *testing.T, o entities.Order) map[string]types.AttributeValue {
	t.Helper()
	av, err := attributevalue.MarshalMap(toOrderItem(o))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return av
}

func TestOrderItemRoundTrip(t *testing.T) {
	o := sampleOrder()
	paid := repoNow.Add(time.Minute)
	o.Status = entities.OrderStatusPaid
	o.PaidAt = &paid
	o.PaymentSource = "orionpay"
	o.Pix = &entities.PixPayment{
		Code:          "000201...",
		TransactionID: "tx-1",
		Gateway:       "orionpay",
		Amount:        235.80,
		GeneratedAt:   repoNow,
		ExpiresAt:     repoNow.Add(30 * time.Minute),
	}

	got := fromOrderItem(toOrderItem(o))
	if got.TotalPrice != 235.80 || got.ShippingPrice != 38.80 {
		t.Fatalf("prices not preserved: %+v", got)
	}
	if got.PaidAt == nil || !got.PaidAt.Equal(paid) {
		t.Fatalf("paidAt not preserved: %v", got.PaidAt)
	}
	if got.Pix == nil || got.Pix.TransactionID != "tx-1" || !got.Pix.ExpiresAt.Equal(o.Pix.ExpiresAt) {
		t.Fatalf("pix not preserved: %+v", got.Pix)
	}
	if got.ShippedAt != nil || got.DeliveredAt != nil {
		t.Fatalf("unset timestamps should stay nil")
	}
}

func TestOrderDynamoRepository_Create(t *testing.T) {
	fake := &fakeDynamo{}
	repo := newOrderDynamoRepository(fake, "")

	if _, err := repo.Create(context.Background(), sampleOrder()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if aws.ToString(fake.put.TableName) != defaultOrdersTableName {
		t.Fatalf("expected default table, got %s", aws.ToString(fake.put.TableName))
	}
	if _, ok := fake.put.Item["pix_transaction_id"]; ok {
		t.Fatalf("empty index keys must be omitted")
	}
	if v, ok := fake.put.Item["total_price"].(*types.AttributeValueMemberS); !ok || v.Value != "235.8" {
		t.Fatalf("unexpected total_price attribute: %#v", fake.put.Item["total_price"])
	}
}

func TestOrderDynamoRepository_Lookups(t *testing.T) {
	ctx := context.Background()

	t.Run("missing item is a zero order", func(t *testing.T) {
		repo := newOrderDynamoRepository(&fakeDynamo{}, "orders")
		o, err := repo.GetByID(ctx, "nope")
		if err != nil || o.ID != "" {
			t.Fatalf("expected zero order, got %+v err=%v", o, err)
		}
	})

	t.Run("order number uses its index", func(t *testing.T) {
		fake := &fakeDynamo{items: []map[string]types.AttributeValue{marshalOrder(t, sampleOrder())}}
		repo := newOrderDynamoRepository(fake, "orders")
		o, err := repo.GetByOrderNumber(ctx, "NV-20260314-ABC123")
		if err != nil || o.ID != "id-1" {
			t.Fatalf("unexpected result %+v err=%v", o, err)
		}
		if aws.ToString(fake.queries[0].IndexName) != "order_number-index" {
			t.Fatalf("unexpected index %s", aws.ToString(fake.queries[0].IndexName))
		}
	})

	t.Run("empty transaction id skips the query", func(t *testing.T) {
		fake := &fakeDynamo{}
		repo := newOrderDynamoRepository(fake, "orders")
		if _, err := repo.GetByPixTransactionID(ctx, ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(fake.queries) != 0 {
			t.Fatalf("expected no query")
		}
	})

	t.Run("latest pending by email", func(t *testing.T) {
		older := sampleOrder()
		newer := sampleOrder()
		newer.ID = "id-2"
		newer.CreatedAt = repoNow.Add(time.Hour)
		fake := &fakeDynamo{items: []map[string]types.AttributeValue{marshalOrder(t, older), marshalOrder(t, newer)}}
		repo := newOrderDynamoRepository(fake, "orders")

		o, err := repo.FindLatestPendingByEmail(ctx, " M@X.com ")
		if err != nil || o.ID != "id-2" {
			t.Fatalf("expected newest order, got %+v err=%v", o, err)
		}
		email := fake.queries[0].ExpressionAttributeValues[":email"].(*types.AttributeValueMemberS)
		if email.Value != "m@x.com" {
			t.Fatalf("email should be normalized, got %s", email.Value)
		}
	})
}

func TestOrderDynamoRepository_ListPaginates(t *testing.T) {
	a, b := sampleOrder(), sampleOrder()
	b.ID = "id-2"
	fake := &fakeDynamo{scanPages: [][]map[string]types.AttributeValue{
		{marshalOrder(t, a)},
		{marshalOrder(t, b)},
	}}
	repo := newOrderDynamoRepository(fake, "orders")

	orders, err := repo.List(context.Background(), entities.OrderListFilter{Status: entities.OrderStatusPending})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders) != 2 || len(fake.scans) != 2 {
		t.Fatalf("expected two pages, got %d orders over %d scans", len(orders), len(fake.scans))
	}
	if aws.ToString(fake.scans[0].FilterExpression) != "#status = :status" {
		t.Fatalf("expected status filter")
	}
}

func TestOrderDynamoRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	next := sampleOrder()
	paidAt := repoNow.Add(time.Minute)
	next.Status = entities.OrderStatusPaid
	next.PaidAt = &paidAt
	next.PaymentEventID = "evt-1"

	t.Run("applied", func(t *testing.T) {
		fake := &fakeDynamo{updateOut: marshalOrder(t, next)}
		repo := newOrderDynamoRepository(fake, "orders")

		stored, applied, err := repo.UpdateStatus(ctx, next, entities.OrderStatusPending)
		if err != nil || !applied || stored.Status != entities.OrderStatusPaid {
			t.Fatalf("unexpected result %+v applied=%v err=%v", stored, applied, err)
		}
		expr := aws.ToString(fake.update.UpdateExpression)
		if !strings.Contains(expr, "#paid_at = :paid_at") || strings.Contains(expr, "shipped_at") {
			t.Fatalf("unexpected update expression %s", expr)
		}
		if !strings.Contains(aws.ToString(fake.update.ConditionExpression), "#status = :expected") {
			t.Fatalf("status must be compared")
		}
	})

	t.Run("condition failed returns stored order", func(t *testing.T) {
		current := next
		current.PaymentEventID = "evt-other"
		fake := &fakeDynamo{updateErr: &types.ConditionalCheckFailedException{Item: marshalOrder(t, current)}}
		repo := newOrderDynamoRepository(fake, "orders")

		stored, applied, err := repo.UpdateStatus(ctx, next, entities.OrderStatusPending)
		if err != nil || applied {
			t.Fatalf("expected not applied, got applied=%v err=%v", applied, err)
		}
		if stored.PaymentEventID != "evt-other" {
			t.Fatalf("expected stored order, got %+v", stored)
		}
	})

	t.Run("condition failed without item reads it back", func(t *testing.T) {
		fake := &fakeDynamo{
			updateErr: &types.ConditionalCheckFailedException{},
			getItem:   marshalOrder(t, next),
		}
		repo := newOrderDynamoRepository(fake, "orders")

		stored, applied, err := repo.UpdateStatus(ctx, next, entities.OrderStatusPending)
		if err != nil || applied || stored.ID != "id-1" {
			t.Fatalf("unexpected result %+v applied=%v err=%v", stored, applied, err)
		}
	})
}

func TestOrderDynamoRepository_SavePixPayment(t *testing.T) {
	pix := entities.PixPayment{
		Code:        "000201...",
		Gateway:     "test",
		Amount:      235.80,
		GeneratedAt: repoNow,
		ExpiresAt:   repoNow.Add(30 * time.Minute),
	}
	withPix := sampleOrder()
	withPix.Pix = &pix
	fake := &fakeDynamo{updateOut: marshalOrder(t, withPix)}
	repo := newOrderDynamoRepository(fake, "orders")

	stored, applied, err := repo.SavePixPayment(context.Background(), "id-1", pix, repoNow)
	if err != nil || !applied || stored.Pix == nil {
		t.Fatalf("unexpected result %+v applied=%v err=%v", stored, applied, err)
	}
	expr := aws.ToString(fake.update.UpdateExpression)
	if !strings.Contains(expr, "REMOVE") || !strings.Contains(expr, "#pix_transaction_id") {
		t.Fatalf("stale transaction id must be removed, got %s", expr)
	}
	cond := aws.ToString(fake.update.ConditionExpression)
	if !strings.Contains(cond, "#pix_expires_at <= :now") || !strings.Contains(cond, "#status = :pending") {
		t.Fatalf("unexpected condition %s", cond)
	}
	now := fake.update.ExpressionAttributeValues[":now"].(*types.AttributeValueMemberS)
	if now.Value != "2026-03-14T12:00:00.000000000Z" {
		t.Fatalf("unexpected now encoding %s", now.Value)
	}
}
