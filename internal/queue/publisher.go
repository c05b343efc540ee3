// internal/queue/publisher.go
package queue

import (
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"

	"github.com/swapsync/broadcast-backend/internal/model"
)

// ReportPublisher pushes finished delivery reports onto the audit stream.
// Publishing is best effort; a broken broker never fails a dispatch.
type ReportPublisher interface {
	PublishReport(report *model.DeliveryReport) error
}

const reportQueue = "broadcast_reports"

// AMQPPublisher publishes reports to a durable RabbitMQ queue.
type AMQPPublisher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewAMQPPublisher(url string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		reportQueue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	return &AMQPPublisher{conn: conn, ch: ch}, nil
}

func (p *AMQPPublisher) PublishReport(report *model.DeliveryReport) error {
	body, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return p.ch.Publish(
		"",          // default exchange
		reportQueue, // routing key
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

func (p *AMQPPublisher) Close() {
	p.ch.Close()
	p.conn.Close()
}

// NopPublisher drops reports. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishReport(report *model.DeliveryReport) error { return nil }

var (
	_ ReportPublisher = (*AMQPPublisher)(nil)
	_ ReportPublisher = NopPublisher{}
)
