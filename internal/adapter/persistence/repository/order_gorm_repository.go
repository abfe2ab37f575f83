package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"neurovita_checkout/internal/domain/entities"
	"neurovita_checkout/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// orderRecord is the relational shape of an order for the Postgres store.
type orderRecord struct {
	ID           string `gorm:"primaryKey;size:36"`
	OrderNumber  string `gorm:"size:32;uniqueIndex"`
	Name         string `gorm:"size:200"`
	Email        string `gorm:"size:254;index"`
	Phone        string `gorm:"size:20"`
	CEP          string `gorm:"column:cep;size:8"`
	Street       string `gorm:"size:200"`
	Number       string `gorm:"size:20"`
	Complement   string `gorm:"size:200"`
	Neighborhood string `gorm:"size:120"`
	City         string `gorm:"size:120"`
	State        string `gorm:"size:2"`

	Quantity      int
	OptionLabel   string          `gorm:"size:120"`
	ProductPrice  decimal.Decimal `gorm:"type:numeric(10,2)"`
	ShippingPrice decimal.Decimal `gorm:"type:numeric(10,2)"`
	TotalPrice    decimal.Decimal `gorm:"type:numeric(10,2)"`

	Status         string `gorm:"size:16;index"`
	PaymentEventID string `gorm:"size:200"`
	PaymentSource  string `gorm:"size:32"`
	TrackingCode   string `gorm:"size:64"`

	PixCode          string
	PixQRCodeBase64  string          `gorm:"column:pix_qr_code_base64"`
	PixQRCodeURL     string          `gorm:"column:pix_qr_code_url"`
	PixTransactionID *string         `gorm:"size:128;index"`
	PixGateway       string          `gorm:"size:32"`
	PixAmount        decimal.Decimal `gorm:"type:numeric(10,2)"`
	PixGeneratedAt   *time.Time
	PixExpiresAt     *time.Time

	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time
	PaidAt      *time.Time
	ShippedAt   *time.Time
	DeliveredAt *time.Time
}

func (orderRecord) TableName() string { return "orders" }

// OrderGormRepository is the relational alternative to the DynamoDB store. Conditional writes are
// single UPDATE statements guarded by a WHERE on the expected state.
type OrderGormRepository struct {
	db *gorm.DB
}

var _ interfaces.IOrderRepository = (*OrderGormRepository)(nil)

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

// MigrateOrders creates or updates the orders table.
func MigrateOrders(db *gorm.DB) error {
	return db.AutoMigrate(&orderRecord{})
}

func (r *OrderGormRepository) Create(ctx context.Context, o entities.Order) (entities.Order, error) {
	rec := toOrderRecord(o)
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return entities.Order{}, err
	}
	return o, nil
}

func (r *OrderGormRepository) GetByID(ctx context.Context, id string) (entities.Order, error) {
	return r.first(r.db.WithContext(ctx).Where("id = ?", id))
}

func (r *OrderGormRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (entities.Order, error) {
	return r.first(r.db.WithContext(ctx).Where("order_number = ?", orderNumber))
}

func (r *OrderGormRepository) GetByPixTransactionID(ctx context.Context, transactionID string) (entities.Order, error) {
	if strings.TrimSpace(transactionID) == "" {
		return entities.Order{}, nil
	}
	return r.first(r.db.WithContext(ctx).Where("pix_transaction_id = ?", transactionID))
}

func (r *OrderGormRepository) FindLatestPendingByEmail(ctx context.Context, email string) (entities.Order, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return entities.Order{}, nil
	}
	q := r.db.WithContext(ctx).
		Where("email = ? AND status = ?", email, string(entities.OrderStatusPending)).
		Order("created_at DESC")
	return r.first(q)
}

func (r *OrderGormRepository) List(ctx context.Context, filter entities.OrderListFilter) ([]entities.Order, error) {
	q := r.db.WithContext(ctx).Model(&orderRecord{})
	if filter.Status != "" {
		q = q.Where("status = ?", string(filter.Status))
	}
	var recs []orderRecord
	if err := q.Find(&recs).Error; err != nil {
		return nil, err
	}
	orders := make([]entities.Order, 0, len(recs))
	for _, rec := range recs {
		orders = append(orders, fromOrderRecord(rec))
	}
	return orders, nil
}

func (r *OrderGormRepository) UpdateStatus(ctx context.Context, o entities.Order, expected entities.OrderStatus) (entities.Order, bool, error) {
	rec := toOrderRecord(o)
	updates := map[string]any{
		"status":     rec.Status,
		"updated_at": rec.UpdatedAt,
	}
	if rec.PaidAt != nil {
		updates["paid_at"] = rec.PaidAt
	}
	if rec.ShippedAt != nil {
		updates["shipped_at"] = rec.ShippedAt
	}
	if rec.DeliveredAt != nil {
		updates["delivered_at"] = rec.DeliveredAt
	}
	for col, v := range map[string]string{
		"payment_event_id": rec.PaymentEventID,
		"payment_source":   rec.PaymentSource,
		"tracking_code":    rec.TrackingCode,
	} {
		if v != "" {
			updates[col] = v
		}
	}

	res := r.db.WithContext(ctx).
		Model(&orderRecord{}).
		Where("id = ? AND status = ?", o.ID, string(expected)).
		Updates(updates)
	return r.afterConditionalWrite(ctx, o.ID, res)
}

func (r *OrderGormRepository) SavePixPayment(ctx context.Context, id string, pix entities.PixPayment, now time.Time) (entities.Order, bool, error) {
	rec := toOrderRecord(entities.Order{Pix: &pix})
	updates := map[string]any{
		"pix_code":           rec.PixCode,
		"pix_qr_code_base64": rec.PixQRCodeBase64,
		"pix_qr_code_url":    rec.PixQRCodeURL,
		"pix_transaction_id": rec.PixTransactionID,
		"pix_gateway":        rec.PixGateway,
		"pix_amount":         rec.PixAmount,
		"pix_generated_at":   rec.PixGeneratedAt,
		"pix_expires_at":     rec.PixExpiresAt,
		"updated_at":         now.UTC(),
	}
	res := r.db.WithContext(ctx).
		Model(&orderRecord{}).
		Where("id = ? AND status = ? AND (pix_expires_at IS NULL OR pix_expires_at <= ?)", id, string(entities.OrderStatusPending), now.UTC()).
		Updates(updates)
	return r.afterConditionalWrite(ctx, id, res)
}

func (r *OrderGormRepository) afterConditionalWrite(ctx context.Context, id string, res *gorm.DB) (entities.Order, bool, error) {
	if res.Error != nil {
		return entities.Order{}, false, res.Error
	}
	stored, err := r.GetByID(ctx, id)
	if err != nil {
		return entities.Order{}, false, err
	}
	return stored, res.RowsAffected == 1, nil
}

func (r *OrderGormRepository) first(q *gorm.DB) (entities.Order, error) {
	var rec orderRecord
	if err := q.First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Order{}, nil
		}
		return entities.Order{}, err
	}
	return fromOrderRecord(rec), nil
}

func toOrderRecord(o entities.Order) orderRecord {
	rec := orderRecord{
		ID:             o.ID,
		OrderNumber:    o.OrderNumber,
		Name:           o.Name,
		Email:          o.Email,
		Phone:          o.Phone,
		CEP:            o.CEP,
		Street:         o.Street,
		Number:         o.Number,
		Complement:     o.Complement,
		Neighborhood:   o.Neighborhood,
		City:           o.City,
		State:          o.State,
		Quantity:       o.Quantity,
		OptionLabel:    o.OptionLabel,
		ProductPrice:   decimal.NewFromFloat(o.ProductPrice).Round(2),
		ShippingPrice:  decimal.NewFromFloat(o.ShippingPrice).Round(2),
		TotalPrice:     decimal.NewFromFloat(o.TotalPrice).Round(2),
		Status:         string(o.Status),
		PaymentEventID: o.PaymentEventID,
		PaymentSource:  o.PaymentSource,
		TrackingCode:   o.TrackingCode,
		CreatedAt:      o.CreatedAt.UTC(),
		UpdatedAt:      o.UpdatedAt.UTC(),
		PaidAt:         utcPtr(o.PaidAt),
		ShippedAt:      utcPtr(o.ShippedAt),
		DeliveredAt:    utcPtr(o.DeliveredAt),
	}
	if o.Pix != nil {
		rec.PixCode = o.Pix.Code
		rec.PixQRCodeBase64 = o.Pix.QRCodeBase64
		rec.PixQRCodeURL = o.Pix.QRCodeURL
		if o.Pix.TransactionID != "" {
			tx := o.Pix.TransactionID
			rec.PixTransactionID = &tx
		}
		rec.PixGateway = o.Pix.Gateway
		rec.PixAmount = decimal.NewFromFloat(o.Pix.Amount).Round(2)
		rec.PixGeneratedAt = utcPtr(&o.Pix.GeneratedAt)
		rec.PixExpiresAt = utcPtr(&o.Pix.ExpiresAt)
	}
	return rec
}

func fromOrderRecord(rec orderRecord) entities.Order {
	o := entities.Order{
		ID:             rec.ID,
		OrderNumber:    rec.OrderNumber,
		Name:           rec.Name,
		Email:          rec.Email,
		Phone:          rec.Phone,
		CEP:            rec.CEP,
		Street:         rec.Street,
		Number:         rec.Number,
		Complement:     rec.Complement,
		Neighborhood:   rec.Neighborhood,
		City:           rec.City,
		State:          rec.State,
		Quantity:       rec.Quantity,
		OptionLabel:    rec.OptionLabel,
		ProductPrice:   rec.ProductPrice.InexactFloat64(),
		ShippingPrice:  rec.ShippingPrice.InexactFloat64(),
		TotalPrice:     rec.TotalPrice.InexactFloat64(),
		Status:         entities.OrderStatus(rec.Status),
		PaymentEventID: rec.PaymentEventID,
		PaymentSource:  rec.PaymentSource,
		TrackingCode:   rec.TrackingCode,
		CreatedAt:      rec.CreatedAt.UTC(),
		UpdatedAt:      rec.UpdatedAt.UTC(),
		PaidAt:         utcPtr(rec.PaidAt),
		ShippedAt:      utcPtr(rec.ShippedAt),
		DeliveredAt:    utcPtr(rec.DeliveredAt),
	}
	if rec.PixCode != "" {
		pix := &entities.PixPayment{
			Code:         rec.PixCode,
			QRCodeBase64: rec.PixQRCodeBase64,
			QRCodeURL:    rec.PixQRCodeURL,
			Gateway:      rec.PixGateway,
			Amount:       rec.PixAmount.InexactFloat64(),
		}
		if rec.PixTransactionID != nil {
			pix.TransactionID = *rec.PixTransactionID
		}
		if rec.PixGeneratedAt != nil {
			pix.GeneratedAt = rec.PixGeneratedAt.UTC()
		}
		if rec.PixExpiresAt != nil {
			pix.ExpiresAt = rec.PixExpiresAt.UTC()
		}
		o.Pix = pix
	}
	return o
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	u := t.UTC()
	return &u
}
