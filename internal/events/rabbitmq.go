// Package events publishes booking lifecycle events to RabbitMQ.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/metinatakli/showtime-booking/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

const DefaultBookingConfirmedQueue = "booking.confirmed"

type RabbitMQPublisher struct {
	logger *slog.Logger
	url    string
	queue  string

	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
}

func NewRabbitMQPublisher(logger *slog.Logger, url, queue string) (*RabbitMQPublisher, error) {
	if queue == "" {
		queue = DefaultBookingConfirmedQueue
	}

	p := &RabbitMQPublisher{
		logger: logger,
		url:    url,
		queue:  queue,
	}

	err := p.connect()
	if err != nil {
		return nil, err
	}

	return p, nil
}

// connect must be called with mu held, or before the publisher is shared.
func (p *RabbitMQPublisher) connect() error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		p.queue,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return fmt.Errorf("declare queue %s: %w", p.queue, err)
	}

	p.conn = conn
	p.channel = ch

	return nil
}

func (p *RabbitMQPublisher) PublishBookingConfirmed(ctx context.Context, event domain.BookingConfirmedEvent) error {
	msg, err := newPublishing(event, time.Now())
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil || p.conn.IsClosed() || p.channel == nil || p.channel.IsClosed() {
		p.logger.Warn("rabbitmq connection lost, reconnecting", "queue", p.queue)

		err = p.connect()
		if err != nil {
			return err
		}
	}

	err = p.channel.PublishWithContext(ctx,
		"",
		p.queue,
		false,
		false,
		msg,
	)
	if err != nil {
		return fmt.Errorf("publish to %s: %w", p.queue, err)
	}

	p.logger.Debug("published booking confirmed event", "booking_id", event.BookingID, "queue", p.queue)

	return nil
}

func (p *RabbitMQPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error

	if p.channel != nil && !p.channel.IsClosed() {
		errs = append(errs, p.channel.Close())
	}

	if p.conn != nil && !p.conn.IsClosed() {
		errs = append(errs, p.conn.Close())
	}

	return errors.Join(errs...)
}

func newPublishing(event domain.BookingConfirmedEvent, now time.Time) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("marshal booking confirmed event: %w", err)
	}

	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.BookingID.String(),
		Type:         DefaultBookingConfirmedQueue,
		Timestamp:    now.UTC(),
		Body:         body,
	}, nil
}

// NopPublisher discards events. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishBookingConfirmed(context.Context, domain.BookingConfirmedEvent) error {
	return nil
}
