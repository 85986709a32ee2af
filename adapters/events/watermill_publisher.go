package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/layer-3/clickcha/ports"
)

const (
	// CreatedTopic carries events for freshly issued challenges
	CreatedTopic = "clickcha.captcha.created"

	// ConsumedTopic carries events for challenges consumed by a verify
	// attempt, whatever the outcome
	ConsumedTopic = "clickcha.captcha.consumed"
)

// CreatedEvent is published when a challenge is issued
type CreatedEvent struct {
	CaptchaID string    `json:"captcha_id"`
	CreatedAt time.Time `json:"created_at"`
}

// ConsumedEvent is published when a challenge is consumed
type ConsumedEvent struct {
	CaptchaID  string    `json:"captcha_id"`
	Success    bool      `json:"success"`
	ConsumedAt time.Time `json:"consumed_at"`
}

// WatermillPublisher implements the EventPublisher interface using Watermill
type WatermillPublisher struct {
	publisher message.Publisher
}

// NewWatermillPublisher creates a new Watermill publisher
func NewWatermillPublisher(publisher message.Publisher) ports.EventPublisher {
	return &WatermillPublisher{publisher: publisher}
}

// PublishCreated publishes a challenge-created event
func (p *WatermillPublisher) PublishCreated(ctx context.Context, captchaID string) error {
	return p.publish(CreatedTopic, captchaID, CreatedEvent{
		CaptchaID: captchaID,
		CreatedAt: time.Now(),
	})
}

// PublishConsumed publishes a challenge-consumed event
func (p *WatermillPublisher) PublishConsumed(ctx context.Context, captchaID string, success bool) error {
	return p.publish(ConsumedTopic, captchaID, ConsumedEvent{
		CaptchaID:  captchaID,
		Success:    success,
		ConsumedAt: time.Now(),
	})
}

func (p *WatermillPublisher) publish(topic, id string, event interface{}) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(id, payload)

	if err := p.publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}
