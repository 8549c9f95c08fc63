package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"heavyrent-backend/internal/logger"
)

const appID = "heavyrent-backend"

type amqpPublisher struct {
	mu       sync.Mutex // amqp channels are not safe for concurrent publishing
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

// NewAMQPPublisher dials the broker and declares a durable topic exchange.
func NewAMQPPublisher(url, exchange string) (Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &amqpPublisher{conn: conn, ch: ch, exchange: exchange}, nil
}

func (p *amqpPublisher) Publish(ctx context.Context, key string, v any) error {
	msg, err := newMessage(v, time.Now())
	if err != nil {
		return err
	}

	logger.ExternalServiceCall(ctx, "rabbitmq", "publish", "exchange", p.exchange, "key", key)
	p.mu.Lock()
	err = p.ch.PublishWithContext(ctx, p.exchange, key, false, false, msg)
	p.mu.Unlock()
	logger.ExternalServiceResult(ctx, "rabbitmq", "publish", err, "key", key)
	return err
}

func newMessage(v any, now time.Time) (amqp.Publishing, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("encode event: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    now.UTC(),
		AppId:        appID,
		Body:         body,
	}, nil
}

func (p *amqpPublisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
