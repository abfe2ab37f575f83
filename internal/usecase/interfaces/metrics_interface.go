package interfaces

// IMetricsRecorder receives checkout counters. Implementations must be safe for concurrent use.
type IMetricsRecorder interface {
	OrderCreated()
	PixIssued(gateway string, reused bool)
	GatewayFailure(gateway string)
	WebhookReceived(source, outcome string)
	PaymentConfirmed(source string)
	StatusChanged(to string)
}
