package broker

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	amqp "github.com/rabbitmq/amqp091-go"

	"fdp_backend/internals/configs"
)

const (
	KeyRegistrationCreated = "registration.created"
	KeyPaymentConfirmed    = "payment.confirmed"
	KeyPaymentFailed       = "payment.failed"
	KeyPaymentRefunded     = "payment.refunded"
	KeyCertificateIssued   = "certificate.issued"
)

// Envelope is the JSON body of every published message.
type Envelope struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	Data       any       `json:"data"`
}

func Encode(routingKey string, data any, at time.Time) ([]byte, error) {
	return sonic.Marshal(Envelope{Type: routingKey, OccurredAt: at.UTC(), Data: data})
}

type Publisher interface {
	Publish(ctx context.Context, routingKey string, data any) error
	Close()
}

// New dials RabbitMQ when AMQP_URL is set; otherwise events are dropped.
func New(cfg configs.Broker) Publisher {
	if cfg.URL == "" {
		return NoopPublisher{}
	}
	p, err := NewRabbitPublisher(cfg.URL, cfg.Exchange)
	if err != nil {
		log.Printf("[BROKER] disabled: %v", err)
		return NoopPublisher{}
	}
	return p
}

type RabbitPublisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

func NewRabbitPublisher(url, exchange string) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(
		exchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	log.Printf("[BROKER] RabbitMQ initialized (exchange=%s)", exchange)
	return &RabbitPublisher{conn: conn, channel: ch, exchange: exchange}, nil
}

func (p *RabbitPublisher) Publish(ctx context.Context, routingKey string, data any) error {
	now := time.Now()
	body, err := Encode(routingKey, data, now)
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.channel.PublishWithContext(ctx,
		p.exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
			Timestamp:    now,
		},
	)
}

func (p *RabbitPublisher) Close() {
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
	log.Println("[BROKER] RabbitMQ connection closed")
}

type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, any) error { return nil }
func (NoopPublisher) Close() {}
