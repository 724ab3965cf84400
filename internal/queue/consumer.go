package queue

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ViewHandler applies one view event to storage / Applique un événement de vue au stockage
type ViewHandler func(ctx context.Context, event ViewEvent) error

// Consumer drains view events and applies them / Consomme les événements de vue et les applique
type Consumer struct {
	url       string
	queueName string
	handler   ViewHandler
}

// NewConsumer creates a consumer bound to a handler / Crée un consommateur lié à un handler
func NewConsumer(url, queueName string, handler ViewHandler) *Consumer {
	return &Consumer{url: url, queueName: queueName, handler: handler}
}

// Run consumes until the context is cancelled, reconnecting with backoff on
// broker failures / Consomme jusqu'à annulation du contexte, avec reconnexion
func (c *Consumer) Run(ctx context.Context) {
	backoff := time.Second
	for {
		if err := c.consume(ctx); err != nil {
			slog.Warn("view consumer disconnected", "err", err, "retry_in", backoff)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}

		if backoff < 30*time.Second {
			backoff *= 2
		}
	}
}

func (c *Consumer) consume(ctx context.Context) error {
	conn, err := amqp.Dial(c.url)
	if err != nil {
		return err
	}
	defer conn.Close()

	channel, err := conn.Channel()
	if err != nil {
		return err
	}
	defer channel.Close()

	if _, err := channel.QueueDeclare(c.queueName, true, false, false, false, nil); err != nil {
		return err
	}

	deliveries, err := channel.Consume(c.queueName, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	slog.Info("view consumer started", "queue", c.queueName)

	for {
		select {
		case <-ctx.Done():
			return nil
		case delivery, ok := <-deliveries:
			if !ok {
				return amqp.ErrClosed
			}
			c.handle(ctx, delivery)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, delivery amqp.Delivery) {
	var event ViewEvent
	if err := json.Unmarshal(delivery.Body, &event); err != nil {
		slog.Error("malformed view event, dropping", "err", err)
		delivery.Nack(false, false)
		return
	}

	if err := c.handler(ctx, event); err != nil {
		slog.Error("view event apply failed", "kind", event.Kind, "content_id", event.ContentID, "err", err)
		// Requeue once, the broker redelivers / Remis en file, le broker redistribue
		delivery.Nack(false, true)
		return
	}

	delivery.Ack(false)
}
