package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/labstack/gommon/log"
	amqp "github.com/rabbitmq/amqp091-go"

	q "github.com/iliyamo/bootcamp-directory/internal/queue"
)

// EventPublisher announces committed bootcamp changes.  Publishing is best
// effort: callers log failures and carry on.
type EventPublisher interface {
	Publish(ctx context.Context, event q.BootcampEvent) error
}

// NopPublisher drops every event.  Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, q.BootcampEvent) error { return nil }

// AMQPPublisher publishes events to the bootcamp.events queue on RabbitMQ.
// Each call opens and closes its own connection so a broker outage never
// leaves a broken connection behind.
type AMQPPublisher struct {
	URL         string
	DialTimeout time.Duration
}

// Publish implements EventPublisher.  Messages are persistent JSON.
func (p AMQPPublisher) Publish(ctx context.Context, event q.BootcampEvent) error {
	timeout := p.DialTimeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	conn, err := amqp.DialConfig(p.URL, amqp.Config{Dial: amqp.DefaultDial(timeout)})
	if err != nil {
		log.Warnf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Warnf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Durable so events survive broker restarts.
	if _, err := ch.QueueDeclare(q.BootcampEventsQueue, true, false, false, false, nil); err != nil {
		log.Warnf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         event.Type,
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", q.BootcampEventsQueue, false, false, pub); err != nil {
		log.Warnf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}
