package usecase

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"time"

	"neurovita_checkout/internal/domain/entities"
	"neurovita_checkout/internal/domain/validation"
	"neurovita_checkout/internal/usecase/interfaces"
	"neurovita_checkout/pkg/logger"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const orderNumberAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// CreateOrderInput is the checkout form as submitted. Prices are recomputed server side and
// compared, never trusted.
type CreateOrderInput struct {
	Name         string
	Email        string
	Phone        string
	CEP          string
	Street       string
	Number       string
	Complement   string
	Neighborhood string
	City         string
	State        string

	Quantity      int
	ProductPrice  float64
	ShippingPrice float64
	TotalPrice    float64
}

// CustomerInput is what the checkout form pre-validates before submission.
type CustomerInput struct {
	Name  string
	Email string
	Phone string
}

// IOrderUseCase is the Order Store surface.
type IOrderUseCase interface {
	Create(ctx context.Context, in CreateOrderInput) (entities.Order, error)
	Get(ctx context.Context, ref string) (entities.Order, error)
	List(ctx context.Context, status string, sort string) ([]entities.Order, error)
	UpdateStatus(ctx context.Context, ref string, to entities.OrderStatus, trackingCode string) (entities.Order, error)
	ProductOptions(ctx context.Context) []entities.ProductOption
	ValidateCustomer(ctx context.Context, in CustomerInput) error
}

type OrderUseCase struct {
	repo      interfaces.IOrderRepository
	shipping  IShippingUseCase
	options   []entities.ProductOption
	publisher interfaces.IOrderEventPublisher
	metrics   interfaces.IMetricsRecorder
	log       zerolog.Logger

	now         func() time.Time
	orderNumber func(time.Time) string
}

var _ IOrderUseCase = (*OrderUseCase)(nil)

func NewOrderUseCase(repo interfaces.IOrderRepository, shipping IShippingUseCase, options []entities.ProductOption, publisher interfaces.IOrderEventPublisher, metrics interfaces.IMetricsRecorder, log zerolog.Logger) *OrderUseCase {
	if len(options) == 0 {
		options = entities.DefaultProductOptions()
	}
	return &OrderUseCase{
		repo:        repo,
		shipping:    shipping,
		options:     options,
		publisher:   publisher,
		metrics:     metricsOrNoop(metrics),
		log:         logger.Component(log, "order", "usecase"),
		now:         utcNow,
		orderNumber: newOrderNumber,
	}
}

// newOrderNumber formats NV-YYYYMMDD-XXXXXX using the UTC date.
func newOrderNumber(now time.Time) string {
	var b strings.Builder
	b.WriteString("NV-")
	b.WriteString(now.UTC().Format("20060102"))
	b.WriteByte('-')
	for i := 0; i < 6; i++ {
		b.WriteByte(orderNumberAlphabet[rand.IntN(len(orderNumberAlphabet))])
	}
	return b.String()
}

func (u *OrderUseCase) option(id int) (entities.ProductOption, bool) {
	for _, o := range u.options {
		if o.ID == id {
			return o, true
		}
	}
	return entities.ProductOption{}, false
}

func (u *OrderUseCase) Create(ctx context.Context, in CreateOrderInput) (entities.Order, error) {
	log := logger.FromContext(ctx, u.log)
	in = normalizeOrderInput(in)
	log.Info().Str("email", in.Email).Int("quantity", in.Quantity).Str("state", in.State).Msg("create order start")

	verr := entities.NewValidationError()
	required := map[string]string{
		"name": in.Name, "email": in.Email, "phone": in.Phone, "cep": in.CEP, "address": in.Street,
		"number": in.Number, "neighborhood": in.Neighborhood, "city": in.City, "state": in.State,
	}
	for field, v := range required {
		if v == "" {
			verr.Add(field, "campo obrigatório")
		}
	}
	if in.Email != "" && !validation.EmailFormat(in.Email) {
		verr.Add("email", "Formato de email inválido")
	}
	if in.Phone != "" && !validation.PhoneDigits(in.Phone) {
		verr.Add("phone", "Telefone deve ter 10 ou 11 dígitos")
	}
	if in.CEP != "" && !validation.CEP(in.CEP) {
		verr.Add("cep", "CEP inválido")
	}
	if in.State != "" && !validation.UF(in.State) {
		verr.Add("state", "UF inválida")
	}
	opt, ok := u.option(in.Quantity)
	if !ok {
		verr.Add("quantity", "opção inválida")
	}
	if in.ProductPrice < 0 {
		verr.Add("productPrice", "valor não pode ser negativo")
	}
	if in.ShippingPrice < 0 {
		verr.Add("shippingPrice", "valor não pode ser negativo")
	}
	if in.TotalPrice < 0 {
		verr.Add("totalPrice", "valor não pode ser negativo")
	}
	if err := verr.OrNil(); err != nil {
		log.Warn().Err(err).Msg("create order validation failed")
		return entities.Order{}, err
	}

	if !cents(in.ProductPrice).Equal(cents(opt.Price)) {
		log.Warn().Float64("product_price", in.ProductPrice).Float64("expected", opt.Price).Msg("product price mismatch")
		return entities.Order{}, fmt.Errorf("%w: product price %.2f does not match option %d (%.2f)", entities.ErrInvalidAmount, in.ProductPrice, opt.ID, opt.Price)
	}
	if u.shipping != nil {
		band, err := u.shipping.Band(in.State, in.Quantity)
		if err != nil {
			return entities.Order{}, err
		}
		shipping := cents(in.ShippingPrice)
		if shipping.LessThan(cents(band.MinPrice)) || shipping.GreaterThan(cents(band.MaxPrice)) {
			log.Warn().Float64("shipping_price", in.ShippingPrice).Float64("min", band.MinPrice).Float64("max", band.MaxPrice).Msg("shipping price outside band")
			return entities.Order{}, fmt.Errorf("%w: shipping %.2f outside [%.2f, %.2f] for %s", entities.ErrInvalidAmount, in.ShippingPrice, band.MinPrice, band.MaxPrice, band.Region)
		}
	}
	sum := cents(in.ProductPrice).Add(cents(in.ShippingPrice))
	if !cents(in.TotalPrice).Equal(sum) {
		log.Warn().Float64("total_price", in.TotalPrice).Str("expected", sum.StringFixed(2)).Msg("total mismatch")
		return entities.Order{}, fmt.Errorf("%w: total %.2f != product %.2f + shipping %.2f", entities.ErrInvalidAmount, in.TotalPrice, in.ProductPrice, in.ShippingPrice)
	}

	now := u.now()
	o := entities.Order{
		ID:            uuid.NewString(),
		OrderNumber:   u.orderNumber(now),
		Name:          in.Name,
		Email:         in.Email,
		Phone:         in.Phone,
		CEP:           in.CEP,
		Street:        in.Street,
		Number:        in.Number,
		Complement:    in.Complement,
		Neighborhood:  in.Neighborhood,
		City:          in.City,
		State:         in.State,
		Quantity:      in.Quantity,
		OptionLabel:   opt.Label,
		ProductPrice:  cents(in.ProductPrice).InexactFloat64(),
		ShippingPrice: cents(in.ShippingPrice).InexactFloat64(),
		TotalPrice:    sum.InexactFloat64(),
		Status:        entities.OrderStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := u.repo.Create(ctx, o)
	if err != nil {
		log.Error().Err(err).Str("order_id", o.ID).Msg("order repository create failed")
		return entities.Order{}, err
	}
	u.metrics.OrderCreated()
	publishOrderEvent(ctx, u.publisher, log, created, entities.EventOrderCreated, now)
	log.Info().Str("order_id", created.ID).Str("order_number", created.OrderNumber).Float64("total", created.TotalPrice).Msg("create order success")
	return created, nil
}

func normalizeOrderInput(in CreateOrderInput) CreateOrderInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	in.CEP = strings.TrimSpace(in.CEP)
	in.Street = strings.TrimSpace(in.Street)
	in.Number = strings.TrimSpace(in.Number)
	in.Complement = strings.TrimSpace(in.Complement)
	in.Neighborhood = strings.TrimSpace(in.Neighborhood)
	in.City = strings.TrimSpace(in.City)
	in.State = strings.ToUpper(strings.TrimSpace(in.State))
	return in
}

// Get accepts either the internal id or the NV- order number.
func (u *OrderUseCase) Get(ctx context.Context, ref string) (entities.Order, error) {
	return findOrder(ctx, u.repo, ref)
}

func findOrder(ctx context.Context, repo interfaces.IOrderRepository, ref string) (entities.Order, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		verr := entities.NewValidationError()
		verr.Add("id", "campo obrigatório")
		return entities.Order{}, verr
	}

	byNumber := strings.HasPrefix(strings.ToUpper(ref), "NV-")
	var (
		o   entities.Order
		err error
	)
	if byNumber {
		o, err = repo.GetByOrderNumber(ctx, strings.ToUpper(ref))
	} else {
		o, err = repo.GetByID(ctx, ref)
	}
	if err != nil {
		return entities.Order{}, err
	}
	if o.ID == "" {
		return entities.Order{}, entities.ErrOrderNotFound
	}
	return o, nil
}

// List filters by status ("" or "all" for every order) and sorts by creation time.
func (u *OrderUseCase) List(ctx context.Context, status string, sortOrder string) ([]entities.Order, error) {
	filter, err := parseListFilter(status, sortOrder)
	if err != nil {
		return nil, err
	}
	orders, err := u.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []entities.Order{}
	}
	sort.SliceStable(orders, func(i, j int) bool {
		if filter.Sort == entities.OrderSortOldest {
			return orders[i].CreatedAt.Before(orders[j].CreatedAt)
		}
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

func parseListFilter(status, sortOrder string) (entities.OrderListFilter, error) {
	verr := entities.NewValidationError()
	f := entities.OrderListFilter{Sort: entities.OrderSortNewest}

	switch s := strings.ToLower(strings.TrimSpace(status)); s {
	case "", "all":
	default:
		f.Status = entities.OrderStatus(s)
		if !f.Status.IsValid() {
			verr.Add("status", "status inválido")
		}
	}
	switch s := strings.ToLower(strings.TrimSpace(sortOrder)); s {
	case "", string(entities.OrderSortNewest):
	case string(entities.OrderSortOldest):
		f.Sort = entities.OrderSortOldest
	default:
		verr.Add("sort", "ordenação inválida")
	}
	return f, verr.OrNil()
}

// UpdateStatus is the admin driven transition. It is strict: paid -> paid is illegal here, the
// idempotent path belongs to payment confirmation.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, ref string, to entities.OrderStatus, trackingCode string) (entities.Order, error) {
	log := logger.FromContext(ctx, u.log)
	current, err := findOrder(ctx, u.repo, ref)
	if err != nil {
		return entities.Order{}, err
	}

	now := u.now()
	next, err := entities.Transition(current, to, entities.StatusChange{
		At:           now,
		Source:       "admin",
		TrackingCode: strings.TrimSpace(trackingCode),
	})
	if err != nil {
		log.Warn().Str("order_id", current.ID).Str("from", string(current.Status)).Str("to", string(to)).Msg("illegal status transition")
		return entities.Order{}, err
	}

	stored, applied, err := u.repo.UpdateStatus(ctx, next, current.Status)
	if err != nil {
		log.Error().Err(err).Str("order_id", current.ID).Msg("order repository update status failed")
		return entities.Order{}, err
	}
	if !applied {
		log.Warn().Str("order_id", current.ID).Str("expected", string(current.Status)).Str("stored", string(stored.Status)).Msg("status changed concurrently")
		return entities.Order{}, fmt.Errorf("%w: %s is now %s", entities.ErrConcurrentUpdate, current.ID, stored.Status)
	}

	u.metrics.StatusChanged(string(to))
	publishOrderEvent(ctx, u.publisher, log, stored, entities.EventTypeForStatus(to), now)
	log.Info().Str("order_id", stored.ID).Str("from", string(current.Status)).Str("to", string(stored.Status)).Msg("order status updated")
	return stored, nil
}

func (u *OrderUseCase) ProductOptions(_ context.Context) []entities.ProductOption {
	out := make([]entities.ProductOption, len(u.options))
	copy(out, u.options)
	return out
}

// ValidateCustomer runs the anti-fake checks the checkout form shows inline.
func (u *OrderUseCase) ValidateCustomer(_ context.Context, in CustomerInput) error {
	verr := entities.NewValidationError()
	if msg := validation.Name(in.Name); msg != "" {
		verr.Add("name", msg)
	}
	if msg := validation.Email(in.Email); msg != "" {
		verr.Add("email", msg)
	}
	if msg := validation.Phone(in.Phone); msg != "" {
		verr.Add("phone", msg)
	}
	return verr.OrNil()
}
