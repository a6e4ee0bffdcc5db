package reminderinfra

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Abraxas-365/relaycrm/pkg/logx"
	"github.com/Abraxas-365/relaycrm/pkg/reminder"
	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
)

// AMQPPublisher publishes reminder events to a RabbitMQ topic exchange.
type AMQPPublisher struct {
	conn     *amqp091.Connection
	exchange string
}

// NewAMQPPublisher dials RabbitMQ and declares the topic exchange. Publisher
// confirms are enabled so a lost broker does not silently drop events.
func NewAMQPPublisher(url, exchange string) (*AMQPPublisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, err
	}

	return &AMQPPublisher{conn: conn, exchange: exchange}, nil
}

// PublishDue emits one DueEvent under the reminder.due routing key.
func (p *AMQPPublisher) PublishDue(ctx context.Context, event reminder.DueEvent) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return reminder.ErrPublishFailed(err)
	}
	defer ch.Close()

	if err := ch.Confirm(false); err != nil {
		return reminder.ErrPublishFailed(err)
	}

	body, err := json.Marshal(event)
	if err != nil {
		return reminder.ErrPublishFailed(err)
	}

	confirm, err := ch.PublishWithDeferredConfirmWithContext(
		ctx, p.exchange, reminder.RoutingKey, false, false,
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    uuid.NewString(),
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return reminder.ErrPublishFailed(err)
	}
	if ok, err := confirm.WaitContext(ctx); err != nil || !ok {
		if err == nil {
			err = amqp091.ErrClosed
		}
		return reminder.ErrPublishFailed(err)
	}

	logx.WithFields(logx.Fields{
		"key":         reminder.RoutingKey,
		"exchange":    p.exchange,
		"reminder_id": event.ReminderID,
	}).Debug("reminder event published")
	return nil
}

// Close closes the broker connection.
func (p *AMQPPublisher) Close() error {
	return p.conn.Close()
}
