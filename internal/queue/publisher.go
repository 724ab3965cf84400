package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// amqpPublisher publishes view events on a durable queue / Publie les événements de vue sur une file durable
type amqpPublisher struct {
	url       string
	queueName string

	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
}

// NewPublisher connects to the broker and declares the queue. The connection
// is retried lazily on publish if it drops.
func NewPublisher(url, queueName string) (Publisher, error) {
	p := &amqpPublisher{url: url, queueName: queueName}
	if err := p.connect(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *amqpPublisher) connect() error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("amqp dial: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("amqp channel: %w", err)
	}

	if _, err := channel.QueueDeclare(p.queueName, true, false, false, false, nil); err != nil {
		channel.Close()
		conn.Close()
		return fmt.Errorf("amqp queue declare: %w", err)
	}

	p.conn = conn
	p.channel = channel
	return nil
}

// PublishView sends one view event, reconnecting once if the channel died /
// Envoie un événement de vue, avec une reconnexion si le canal est mort
func (p *amqpPublisher) PublishView(event ViewEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal view event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.publish(body); err != nil {
		slog.Warn("view event publish failed, reconnecting", "err", err)
		if err := p.connect(); err != nil {
			return err
		}
		return p.publish(body)
	}
	return nil
}

func (p *amqpPublisher) publish(body []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return p.channel.PublishWithContext(ctx, "", p.queueName, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	})
}

// Ping reports whether the broker connection is still alive / Indique si la
// connexion au broker est encore vivante
func (p *amqpPublisher) Ping() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil || p.conn.IsClosed() {
		return fmt.Errorf("amqp connection closed")
	}
	return nil
}

// Close tears down the channel and connection / Ferme le canal et la connexion
func (p *amqpPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
