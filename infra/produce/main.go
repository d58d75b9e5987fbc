package produce

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const TicketExchange = "ticket.exchange"

// Channel is the subset of *amqp.Channel the producers use.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type Produce struct {
	BookingService *BookingService
	MirrorService  *MirrorService
}

func InitProduce(channel Channel) (*Produce, error) {
	if err := channel.ExchangeDeclare(
		TicketExchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return nil, fmt.Errorf("failed to declare ticket exchange: %w", err)
	}

	bookingService, err := InitBookingService(channel)
	if err != nil {
		return nil, err
	}

	mirrorService, err := InitMirrorService(channel)
	if err != nil {
		return nil, err
	}

	return &Produce{
		BookingService: bookingService,
		MirrorService:  mirrorService,
	}, nil
}

// DeclareQueue declares a durable queue and binds it to the ticket exchange.
// Consumers call it too so either side can start first.
func DeclareQueue(channel Channel, queue, routingKey string) error {
	_, err := channel.QueueDeclare(
		queue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", queue, err)
	}

	if err := channel.QueueBind(queue, routingKey, TicketExchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue %s: %w", queue, err)
	}
	return nil
}

func publishJSON(ctx context.Context, channel Channel, routingKey string, message interface{}) error {
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal %s message: %w", routingKey, err)
	}

	err = channel.PublishWithContext(
		ctx,
		TicketExchange, // exchange
		routingKey,     // routing key
		false,          // mandatory
		false,          // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    uuid.NewString(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish %s message: %w", routingKey, err)
	}
	return nil
}
