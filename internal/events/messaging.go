package events

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	EventsExchange         = "portal.events"
	OrderPlacedRoutingKey  = "order.placed.v1"
	defaultProducer        = "portal"
	guestPartitionKey      = "orders:guest"
	userPartitionKeyPrefix = "orders:user:"
)

func declareEventsExchange(ch channel) error {
	return ch.ExchangeDeclare(
		EventsExchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
}

// Dial connects to the broker.
func Dial(url string) (*amqp.Connection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	return conn, nil
}

func partitionKey(userID string) string {
	if userID == "" {
		return guestPartitionKey
	}
	return userPartitionKeyPrefix + userID
}
