// Package paymentview is the client side of the PIX payment page: it renders the copy-paste code,
// counts down to the server-issued expiry and polls the payment status until the order is paid.
package paymentview

import (
	"context"
	"errors"
	"sync"
	"time"

	"neurovita_checkout/internal/adapter/http/dto/response"

	"github.com/rs/zerolog"
)

type State string

const (
	StateLoading  State = "loading"
	StateAwaiting State = "awaiting"
	StateExpired  State = "expired"
	StatePaid     State = "paid"
	StateError    State = "error"
)

const (
	DefaultPollInterval = 5 * time.Second
	countdownTick       = time.Second
)

// Snapshot is what a renderer needs to draw the page.
type Snapshot struct {
	State       State
	OrderID     string
	OrderNumber string
	Code        string
	QRCode      string
	QRCodeURL   string
	Amount      float64
	ExpiresAt   time.Time
	Remaining   time.Duration
	Err         error
	Retryable   bool
}

type Option func(*View)

func WithPollInterval(d time.Duration) Option {
	return func(v *View) {
		if d > 0 {
			v.interval = d
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(v *View) { v.now = now }
}

// WithOnChange registers a render callback. It runs on state changes and on every countdown tick.
func WithOnChange(fn func(Snapshot)) Option {
	return func(v *View) { v.onChange = fn }
}

type View struct {
	api      API
	orderRef string
	log      zerolog.Logger
	interval time.Duration
	now      func() time.Time
	onChange func(Snapshot)

	mu    sync.Mutex
	state State
	pix   response.PixResponse
	err   error
}

func New(api API, orderRef string, log zerolog.Logger, opts ...Option) *View {
	v := &View{
		api:      api,
		orderRef: orderRef,
		log:      log.With().Str("component", "[pix][view]").Str("order_ref", orderRef).Logger(),
		interval: DefaultPollInterval,
		now:      time.Now,
		state:    StateLoading,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Load fetches the payable PIX. The server returns the active one when it still exists.
func (v *View) Load(ctx context.Context) error {
	return v.Regenerate(ctx)
}

// Regenerate is the "generate new code" action. A failure leaves the view in the error state with a
// retry affordance; nothing is retried automatically.
func (v *View) Regenerate(ctx context.Context) error {
	v.setState(StateLoading, nil)

	pix, err := v.api.GeneratePix(ctx, v.orderRef)
	if err != nil {
		v.log.Warn().Err(err).Msg("pix generation failed")
		if isAlreadyPaid(err) {
			v.setState(StatePaid, nil)
			return nil
		}
		v.setState(StateError, err)
		return err
	}

	v.mu.Lock()
	v.pix = pix
	v.mu.Unlock()
	v.setState(StateAwaiting, nil)
	v.refreshExpiry()
	return nil
}

// CopyCode returns the PIX copy-paste code, empty until one was loaded.
func (v *View) CopyCode() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pix.PixCode
}

func (v *View) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshotLocked()
}

func (v *View) snapshotLocked() Snapshot {
	s := Snapshot{
		State:       v.state,
		OrderID:     v.pix.OrderID,
		OrderNumber: v.pix.OrderNumber,
		Code:        v.pix.PixCode,
		QRCode:      v.pix.QRCode,
		QRCodeURL:   v.pix.QRCodeURL,
		Amount:      v.pix.Amount,
		ExpiresAt:   v.pix.ExpiresAt,
		Err:         v.err,
	}
	if !v.pix.ExpiresAt.IsZero() {
		if d := v.pix.ExpiresAt.Sub(v.now()); d > 0 {
			s.Remaining = d
		}
	}
	var apiErr *APIError
	if errors.As(v.err, &apiErr) {
		s.Retryable = apiErr.Retryable()
	} else if v.err != nil {
		s.Retryable = true
	}
	return s
}

// Run polls the payment status until the order is paid or ctx ends. Polling failures are logged and
// retried on the next tick. Polling continues after expiry since a late payment still settles.
func (v *View) Run(ctx context.Context) error {
	poll := time.NewTicker(v.interval)
	defer poll.Stop()
	countdown := time.NewTicker(countdownTick)
	defer countdown.Stop()

	if v.State() == StatePaid {
		return nil
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-countdown.C:
			v.refreshExpiry()
			v.emit()
		case <-poll.C:
			if v.poll(ctx) {
				return nil
			}
		}
	}
}

// poll reports true once the order is paid.
func (v *View) poll(ctx context.Context) bool {
	st := v.State()
	if st == StateLoading || st == StateError {
		return false
	}

	status, err := v.api.PaymentStatus(ctx, v.orderRef)
	if err != nil {
		v.log.Warn().Err(err).Msg("payment status poll failed")
		return false
	}
	if status.IsPaid {
		v.log.Info().Str("order_id", status.OrderID).Msg("payment confirmed")
		v.setState(StatePaid, nil)
		return true
	}
	v.refreshExpiry()
	return false
}

// refreshExpiry switches an awaiting view to expired once the countdown reaches zero.
func (v *View) refreshExpiry() {
	v.mu.Lock()
	expired := v.state == StateAwaiting && !v.pix.ExpiresAt.IsZero() && !v.now().Before(v.pix.ExpiresAt)
	v.mu.Unlock()
	if expired {
		v.setState(StateExpired, nil)
	}
}

func (v *View) setState(s State, err error) {
	v.mu.Lock()
	changed := v.state != s || v.err != err
	v.state = s
	v.err = err
	v.mu.Unlock()
	if changed {
		v.emit()
	}
}

func (v *View) emit() {
	if v.onChange == nil {
		return
	}
	v.onChange(v.Snapshot())
}

func isAlreadyPaid(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Body.Code == "ORDER_ALREADY_PAID"
}
