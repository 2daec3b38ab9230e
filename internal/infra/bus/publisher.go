// Package bus publishes lifecycle notifications to RabbitMQ. The broker is
// strictly a notification channel: the trade ledger is the system of record,
// and a publish failure never fails the saga that triggered it.
package bus

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"ticketing-orchestrator/internal/pkg/config"
)

const (
	TradeEventsQueue    = "trade.events"
	PurchaseEventsQueue = "purchase.events"
)

// Event is the envelope for every notification.
type Event struct {
	Kind       string         `json:"kind"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, queue string, ev Event) error
}

// AMQPPublisher lazily dials the broker and redials after a connection loss.
// With a configured exchange, events route through it with the queue name as
// the binding key; an empty exchange publishes straight to the queues.
type AMQPPublisher struct {
	url      string
	exchange string

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewAMQPPublisher(cfg config.AMQPConfig) *AMQPPublisher {
	return &AMQPPublisher{url: cfg.URL, exchange: cfg.Exchange}
}

func (p *AMQPPublisher) channel() (*amqp.Channel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch != nil && !p.conn.IsClosed() {
		return p.ch, nil
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	teardown := func() {
		_ = ch.Close()
		_ = conn.Close()
	}

	if p.exchange != "" {
		if err := ch.ExchangeDeclare(p.exchange, "direct", true, false, false, false, nil); err != nil {
			teardown()
			return nil, err
		}
	}
	for _, q := range []string{TradeEventsQueue, PurchaseEventsQueue} {
		if _, err := ch.QueueDeclare(q, true, false, false, false, nil); err != nil {
			teardown()
			return nil, err
		}
		if p.exchange != "" {
			if err := ch.QueueBind(q, q, p.exchange, false, nil); err != nil {
				teardown()
				return nil, err
			}
		}
	}

	p.conn = conn
	p.ch = ch
	return ch, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, queue string, ev Event) error {
	ch, err := p.channel()
	if err != nil {
		slog.Warn("amqp: connect failed", "error", err)
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	err = ch.PublishWithContext(ctx,
		p.exchange, // "" falls back to the default exchange
		queue,      // routing key = queue name
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    ev.OccurredAt,
			Body:         body,
		},
	)
	if err != nil {
		slog.Warn("amqp: publish failed", "queue", queue, "kind", ev.Kind, "error", err)
		// Force a redial on the next publish.
		p.mu.Lock()
		p.ch = nil
		p.mu.Unlock()
	}
	return err
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// NopPublisher drops every event; used when AMQP is disabled and in tests.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, Event) error { return nil }
