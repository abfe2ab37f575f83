package usecase

import (
	"context"
	"math/rand/v2"
	"strings"

	"neurovita_checkout/internal/domain/entities"
	"neurovita_checkout/pkg/logger"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// RandomSource draws uniformly from [0,1). *rand.Rand satisfies it, so tests can seed.
type RandomSource interface {
	Float64() float64
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

// IShippingUseCase simulates the carrier fee for a destination state.
//
// Price is (min + r*(max-min)) * quantity for the region band, rounded to cents.
type IShippingUseCase interface {
	Quote(ctx context.Context, state string, quantity int) (entities.ShippingQuote, error)
	Band(state string, quantity int) (entities.ShippingQuote, error)
}

type ShippingUseCase struct {
	rates   map[entities.Region]entities.RegionRate
	regions map[string]entities.Region
	rnd     RandomSource
	log     zerolog.Logger
}

var _ IShippingUseCase = (*ShippingUseCase)(nil)

func NewShippingUseCase(rates map[entities.Region]entities.RegionRate, regions map[string]entities.Region, rnd RandomSource, log zerolog.Logger) *ShippingUseCase {
	if len(rates) == 0 {
		rates = entities.DefaultShippingRates()
	}
	if len(regions) == 0 {
		regions = entities.DefaultRegionByState()
	}
	if rnd == nil {
		rnd = globalRand{}
	}
	return &ShippingUseCase{rates: rates, regions: regions, rnd: rnd, log: logger.Component(log, "shipping", "usecase")}
}

// Band resolves the region and the [min, max] * quantity price range without drawing a price.
func (u *ShippingUseCase) Band(state string, quantity int) (entities.ShippingQuote, error) {
	if quantity <= 0 {
		return entities.ShippingQuote{}, entities.ErrInvalidQuantity
	}
	state = strings.ToUpper(strings.TrimSpace(state))
	region, ok := u.regions[state]
	fallback := false
	if !ok {
		region = entities.DefaultRegion
		fallback = true
	}
	rate, ok := u.rates[region]
	if !ok {
		region = entities.DefaultRegion
		rate = u.rates[region]
		fallback = true
	}
	qty := decimal.NewFromInt(int64(quantity))
	return entities.ShippingQuote{
		State:    state,
		Region:   region,
		Quantity: quantity,
		MinPrice: decimal.NewFromFloat(rate.Min).Mul(qty).Round(2).InexactFloat64(),
		MaxPrice: decimal.NewFromFloat(rate.Max).Mul(qty).Round(2).InexactFloat64(),
		Days:     rate.Days,
		Fallback: fallback,
	}, nil
}

func (u *ShippingUseCase) Quote(ctx context.Context, state string, quantity int) (entities.ShippingQuote, error) {
	log := logger.FromContext(ctx, u.log)
	q, err := u.Band(state, quantity)
	if err != nil {
		log.Warn().Str("state", state).Int("quantity", quantity).Msg("invalid shipping quantity")
		return entities.ShippingQuote{}, err
	}
	if q.Fallback {
		log.Warn().Str("state", q.State).Str("region", string(q.Region)).Msg("unmapped state, using default shipping region")
	}

	rate := u.rates[q.Region]
	r := u.rnd.Float64()
	base := decimal.NewFromFloat(rate.Min).Add(decimal.NewFromFloat(r).Mul(decimal.NewFromFloat(rate.Max - rate.Min)))
	price := base.Mul(decimal.NewFromInt(int64(quantity))).Round(2)

	// Rounding can only push a draw close to max above the band by a cent fraction.
	if price.GreaterThan(decimal.NewFromFloat(q.MaxPrice)) {
		price = decimal.NewFromFloat(q.MaxPrice)
	}
	q.Price = price.InexactFloat64()

	log.Debug().Str("state", q.State).Str("region", string(q.Region)).Int("quantity", quantity).Float64("price", q.Price).Msg("shipping quoted")
	return q, nil
}
