package kitchen

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// QueueName is the RabbitMQ queue consumed by kitchen display clients.
const QueueName = "kitchen_tickets"

// Publisher pushes dispatched tickets to the kitchen display.
type Publisher interface {
	PublishTicket(ctx context.Context, t *Ticket) error
	Close()
}

type amqpPublisher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewAMQPPublisher connects to RabbitMQ and declares the kitchen queue.
func NewAMQPPublisher(url string) (Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if _, err := ch.QueueDeclare(QueueName, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue: %w", err)
	}
	return &amqpPublisher{conn: conn, ch: ch}, nil
}

func (p *amqpPublisher) PublishTicket(ctx context.Context, t *Ticket) error {
	body, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return p.ch.PublishWithContext(ctx, "", QueueName, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
}

func (p *amqpPublisher) Close() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}
