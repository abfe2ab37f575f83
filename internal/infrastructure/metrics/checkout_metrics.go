package metrics

import (
	"strconv"
	"time"

	"neurovita_checkout/internal/usecase/interfaces"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "neurovita_checkout"

// CheckoutMetrics exports order, PIX and webhook counters. A nil or unregistered value is a no-op.
type CheckoutMetrics struct {
	ordersCreated    prometheus.Counter
	pixIssued        *prometheus.CounterVec
	gatewayFailures  *prometheus.CounterVec
	webhooks         *prometheus.CounterVec
	paymentsApproved *prometheus.CounterVec
	statusChanges    *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

var _ interfaces.IMetricsRecorder = (*CheckoutMetrics)(nil)

// NewCheckoutMetrics registers the collectors on reg.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	m := &CheckoutMetrics{
		ordersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_created_total",
			Help:      "Orders accepted by the checkout.",
		}),
		pixIssued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pix_issued_total",
			Help:      "PIX charges returned to buyers, by gateway and whether an active charge was reused.",
		}, []string{"gateway", "reused"}),
		gatewayFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gateway_failures_total",
			Help:      "Failed payment gateway calls.",
		}, []string{"gateway"}),
		webhooks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "webhooks_received_total",
			Help:      "Webhook deliveries by source and outcome.",
		}, []string{"source", "outcome"}),
		paymentsApproved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payments_confirmed_total",
			Help:      "Orders moved to paid, by confirmation source.",
		}, []string{"source"}),
		statusChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_status_changes_total",
			Help:      "Applied order status transitions by target status.",
		}, []string{"status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	reg.MustRegister(m.ordersCreated, m.pixIssued, m.gatewayFailures, m.webhooks, m.paymentsApproved, m.statusChanges, m.httpDuration)
	return m
}

func (m *CheckoutMetrics) OrderCreated() {
	if m == nil || m.ordersCreated == nil {
		return
	}
	m.ordersCreated.Inc()
}

func (m *CheckoutMetrics) PixIssued(gateway string, reused bool) {
	if m == nil || m.pixIssued == nil {
		return
	}
	m.pixIssued.WithLabelValues(normalizeLabel(gateway), strconv.FormatBool(reused)).Inc()
}

func (m *CheckoutMetrics) GatewayFailure(gateway string) {
	if m == nil || m.gatewayFailures == nil {
		return
	}
	m.gatewayFailures.WithLabelValues(normalizeLabel(gateway)).Inc()
}

func (m *CheckoutMetrics) WebhookReceived(source, outcome string) {
	if m == nil || m.webhooks == nil {
		return
	}
	m.webhooks.WithLabelValues(normalizeLabel(source), normalizeLabel(outcome)).Inc()
}

func (m *CheckoutMetrics) PaymentConfirmed(source string) {
	if m == nil || m.paymentsApproved == nil {
		return
	}
	m.paymentsApproved.WithLabelValues(normalizeLabel(source)).Inc()
}

func (m *CheckoutMetrics) StatusChanged(to string) {
	if m == nil || m.statusChanges == nil {
		return
	}
	m.statusChanges.WithLabelValues(normalizeLabel(to)).Inc()
}

// ObserveHTTP records one served request. route is the gin route template, not the raw path.
func (m *CheckoutMetrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil || m.httpDuration == nil {
		return
	}
	m.httpDuration.WithLabelValues(method, normalizeLabel(route), strconv.Itoa(status)).Observe(elapsed.Seconds())
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
