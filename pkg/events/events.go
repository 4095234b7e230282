package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/streadway/amqp"
)

// Queue that receives every product lifecycle event.
const productQueue = "product_events"

// Event names published by the catalog service.
const (
	ProductCreated       = "product.created"
	ProductUpdated       = "product.updated"
	ProductDeleted       = "product.deleted"
	ProductRatingUpdated = "product.rating.updated"
)

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

// Publisher publishes product lifecycle events to RabbitMQ.
// A nil Publisher is valid and drops every event, so callers can run without
// a broker configured.
type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// envelope is the wire format of a product event.
type envelope struct {
	EventID   string    `json:"event_id"`
	Event     string    `json:"event"`
	ProductID int64     `json:"product_id"`
	Timestamp time.Time `json:"timestamp"`
}

// NewPublisher connects to RabbitMQ and declares the product event queue.
func NewPublisher(cfg Config) (*Publisher, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		productQueue, // name
		true,         // durable
		false,        // delete when unused
		false,        // exclusive
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare %s queue: %w", productQueue, err)
	}

	return &Publisher{
		conn:    conn,
		channel: ch,
	}, nil
}

// Close closes the RabbitMQ connection and channel.
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	var errs []error
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors closing event publisher: %v", errs)
	}
	return nil
}

// PublishProductEvent publishes one event for the given product id.
// Events are persistent and published synchronously; there is no retry.
func (p *Publisher) PublishProductEvent(event string, productID int64) error {
	if p == nil || p.channel == nil {
		return nil
	}

	body, err := json.Marshal(envelope{
		EventID:   uuid.New().String(),
		Event:     event,
		ProductID: productID,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal product event: %w", err)
	}

	err = p.channel.Publish(
		"",           // exchange: default exchange
		productQueue, // routing key: the queue name
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish product event: %w", err)
	}
	return nil
}
