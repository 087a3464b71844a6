package rabbitmq

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// Exchange is the topic exchange every domain event is published to.
const Exchange = "events"

type EventType string

const (
	CustomerCreated EventType = "customer.created"
	CustomerUpdated EventType = "customer.updated"
	CustomerDeleted EventType = "customer.deleted"

	CustomerAccountCreated EventType = "customer_account.created"
	CustomerAccountUpdated EventType = "customer_account.updated"
	CustomerAccountDeleted EventType = "customer_account.deleted"

	ProductCreated EventType = "product.created"
	ProductUpdated EventType = "product.updated"
	ProductDeleted EventType = "product.deleted"

	OrderCreated EventType = "order.created"
)

// Event is the JSON envelope of every published message.
type Event struct {
	Type      EventType `json:"type"`
	ID        uint      `json:"id"`
	Data      any       `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

func NewEvent(eventType EventType, id uint, data any) Event {
	return Event{
		Type:      eventType,
		ID:        id,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
}

// Publishing builds the AMQP message for an event.
func (e Event) Publishing() (amqp.Publishing, error) {
	body, err := json.Marshal(e)
	if err != nil {
		return amqp.Publishing{}, err
	}

	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    e.Timestamp,
		Type:         string(e.Type),
		Body:         body,
	}, nil
}

// PublishEvent publishes an event for the entity with the given id. A nil
// channel disables publishing. Publishing ignores cancellation of ctx.
func PublishEvent(ctx context.Context, ch *amqp.Channel, eventType EventType, id uint, data any) error {
	if ch == nil {
		return nil
	}
	logger := zerolog.Ctx(ctx)

	msg, err := NewEvent(eventType, id, data).Publishing()
	if err != nil {
		logger.Error().Err(err).Str("event", string(eventType)).Msg("marshal event")
		return err
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	err = ch.PublishWithContext(
		pubCtx,
		Exchange,
		string(eventType), // routing key
		false,             // mandatory
		false,             // immediate
		msg,
	)
	if err != nil {
		logger.Error().Err(err).Str("event", string(eventType)).Uint("id", id).Msg("publish event")
		return err
	}

	logger.Debug().Str("event", string(eventType)).Uint("id", id).Msg("published event")
	return nil
}
