package mq

import (
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

// 分析事件走同一个 topic exchange：email.received 进，email.analyzed 出
const ExchangeName = "events"

// NewConnection dials RabbitMQ with a named connection so the broker UI
// shows which service holds it.
func NewConnection(url string) (*amqp091.Connection, error) {
	conn, err := amqp091.DialConfig(url, amqp091.Config{
		Heartbeat:  10 * time.Second,
		Locale:     "en_US",
		Properties: amqp091.Table{"connection_name": "mailintel"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	return conn, nil
}

// DeclareExchange declares the events exchange.
func DeclareExchange(ch *amqp091.Channel) error {
	return ch.ExchangeDeclare(
		ExchangeName,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
}
