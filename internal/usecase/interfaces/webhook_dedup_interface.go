package interfaces

import "context"

// IWebhookDedup remembers processed webhook event ids.
//
// CheckAndMark returns true the first time an event is seen. Release forgets an event so a failed
// delivery can be retried by the provider.
type IWebhookDedup interface {
	CheckAndMark(ctx context.Context, source, eventID string) (bool, error)
	Release(ctx context.Context, source, eventID string) error
}
