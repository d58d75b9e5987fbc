package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/tnqbao/gau-ticketing-service/infra"
	"github.com/tnqbao/gau-ticketing-service/infra/produce"
	"github.com/tnqbao/gau-ticketing-service/service"
)

// ConsumeChannel is the subset of *amqp.Channel the consumers use.
type ConsumeChannel interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

// Remirrorer rewrites mirror blobs from the relational store. *service.TicketService satisfies it.
type Remirrorer interface {
	Remirror(ctx context.Context, id uint) error
	RemirrorAll(ctx context.Context) (int, error)
}

type MirrorConsumer struct {
	channel ConsumeChannel
	tickets Remirrorer
	logger  service.Logger

	maxRetries int
	backoff    time.Duration
}

func NewMirrorConsumer(channel ConsumeChannel, tickets Remirrorer, logger service.Logger) *MirrorConsumer {
	return &MirrorConsumer{
		channel:    channel,
		tickets:    tickets,
		logger:     logger,
		maxRetries: 3,
		backoff:    2 * time.Second,
	}
}

func (c *MirrorConsumer) Start(ctx context.Context) error {
	msgs, err := c.channel.Consume(
		produce.MirrorResyncQueue,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register mirror resync consumer: %w", err)
	}

	c.logger.InfoWithContextf(ctx, "[Mirror Consumer] Started listening for resync jobs on queue: %s", produce.MirrorResyncQueue)

	go func() {
		for {
			select {
			case <-ctx.Done():
				c.logger.InfoWithContextf(ctx, "[Mirror Consumer] Shutting down...")
				return
			case msg, ok := <-msgs:
				if !ok {
					c.logger.WarningWithContextf(ctx, "[Mirror Consumer] Channel closed")
					return
				}
				c.handleResync(ctx, msg)
			}
		}
	}()

	return nil
}

func (c *MirrorConsumer) handleResync(ctx context.Context, msg amqp.Delivery) {
	var payload produce.MirrorResyncMessage
	if err := json.Unmarshal(msg.Body, &payload); err != nil {
		c.logger.ErrorWithContextf(ctx, err, "[Mirror Consumer] Failed to unmarshal message: %v", err)
		_ = msg.Nack(false, false)
		return
	}
	if !payload.All && payload.TicketID == 0 {
		c.logger.ErrorWithContextf(ctx, nil, "[Mirror Consumer] Message has neither ticket_id nor all: %s", string(msg.Body))
		_ = msg.Nack(false, false)
		return
	}

	if payload.RequestID != "" {
		ctx = infra.ContextWithRequestID(ctx, payload.RequestID)
	}

	var err error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		err = c.execute(ctx, payload)
		if err == nil {
			_ = msg.Ack(false)
			return
		}

		// The ticket was deleted after the resync was queued
		if errors.Is(err, service.ErrNotFound) {
			c.logger.WarningWithContextf(ctx, "[Mirror Consumer] Dropping resync: %v", err)
			_ = msg.Ack(false)
			return
		}

		c.logger.ErrorWithContextf(ctx, err, "[Mirror Consumer] Attempt %d/%d failed: %v", attempt, c.maxRetries, err)

		if attempt < c.maxRetries {
			select {
			case <-ctx.Done():
				_ = msg.Nack(false, true)
				return
			case <-time.After(time.Duration(attempt) * c.backoff):
			}
		}
	}

	// After max retries, reject and requeue
	c.logger.ErrorWithContextf(ctx, err, "[Mirror Consumer] Failed after %d attempts, requeueing message", c.maxRetries)
	_ = msg.Nack(false, true)
}

func (c *MirrorConsumer) execute(ctx context.Context, payload produce.MirrorResyncMessage) error {
	if payload.All {
		written, err := c.tickets.RemirrorAll(ctx)
		c.logger.InfoWithContextf(ctx, "[Mirror Consumer] Resynced %d tickets", written)
		return err
	}

	if err := c.tickets.Remirror(ctx, payload.TicketID); err != nil {
		return err
	}
	c.logger.InfoWithContextf(ctx, "[Mirror Consumer] Resynced ticket %d", payload.TicketID)
	return nil
}
