package ports

import "context"

// EventPublisher publishes challenge lifecycle events to notify other instances
type EventPublisher interface {
	PublishCreated(ctx context.Context, captchaID string) error
	PublishConsumed(ctx context.Context, captchaID string, success bool) error
}
