package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/labstack/gommon/log"
	amqp "github.com/rabbitmq/amqp091-go"
)

// DefaultAuditLog is where StartBootcampEventConsumer appends events.
var DefaultAuditLog = filepath.Join("logs", "bootcamp-events.log")

// StartBootcampEventConsumer consumes the bootcamp.events queue and appends
// one line per event to auditPath.  It reconnects with exponential backoff
// (capped at 30s) until ctx is cancelled, which is the only way it returns.
func StartBootcampEventConsumer(ctx context.Context, url, auditPath string) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Warnf("bootcamp-consumer: dial broker: %v; retrying in %s", err, backoff)
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = consume(ctx, conn, auditPath)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Warnf("bootcamp-consumer: %v; reconnecting", err)
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func consume(ctx context.Context, conn *amqp.Connection, auditPath string) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Warnf("bootcamp-consumer: set QoS: %v", err)
	}
	if _, err := ch.QueueDeclare(BootcampEventsQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.ConsumeWithContext(ctx, BootcampEventsQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := appendEvent(auditPath, d.Body); err != nil {
			log.Errorf("bootcamp-consumer: %v", err)
			_ = d.Nack(false, false) // dropped, never requeued
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

// appendEvent decodes one message body and appends its audit line.
func appendEvent(path string, body []byte) error {
	var ev BootcampEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("decode event: %w", err)
	}
	if ev.Type == "" || ev.BootcampID == "" {
		return errors.New("decode event: missing type or bootcamp_id")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()
	return WriteAuditLine(f, ev)
}

// WriteAuditLine renders ev as a single human readable line.
func WriteAuditLine(w io.Writer, ev BootcampEvent) error {
	city := ev.City
	if city == "" {
		city = "-"
	}
	_, err := fmt.Fprintf(w, "[%s] %s | bootcamp_id=%s | name=%q | slug=%s | city=%q\n",
		ev.OccurredAt, ev.Type, ev.BootcampID, ev.Name, ev.Slug, city)
	return err
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
