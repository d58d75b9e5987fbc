package produce

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tnqbao/gau-ticketing-service/entity"
)

type publishCall struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type fakeChannel struct {
	exchanges  []string
	queues     []string
	bindings   map[string]string
	published  []publishCall
	publishErr error
}

func newFakeChannel() *fakeChannel {
	return &fakeChannel{bindings: make(map[string]string)}
}

func (f *fakeChannel) ExchangeDeclare(name, _ string, _, _, _, _ bool, _ amqp.Table) error {
	f.exchanges = append(f.exchanges, name)
	return nil
}

func (f *fakeChannel) QueueDeclare(name string, _, _, _, _ bool, _ amqp.Table) (amqp.Queue, error) {
	f.queues = append(f.queues, name)
	return amqp.Queue{Name: name}, nil
}

func (f *fakeChannel) QueueBind(name, key, _ string, _ bool, _ amqp.Table) error {
	f.bindings[name] = key
	return nil
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.published = append(f.published, publishCall{exchange: exchange, key: key, msg: msg})
	return nil
}

func TestInitProduce_DeclaresTopology(t *testing.T) {
	ch := newFakeChannel()
	_, err := InitProduce(ch)
	require.NoError(t, err)

	assert.Equal(t, []string{TicketExchange}, ch.exchanges)
	assert.ElementsMatch(t, []string{BookingCreatedQueue, MirrorResyncQueue}, ch.queues)
	assert.Equal(t, MirrorResyncRoutingKey, ch.bindings[MirrorResyncQueue])
}

func TestBookingService_PublishBookingCreated(t *testing.T) {
	ch := newFakeChannel()
	p, err := InitProduce(ch)
	require.NoError(t, err)

	booking := entity.Booking{
		ID:          4,
		TicketID:    2,
		Ticket:      entity.Ticket{ID: 2, Event: "Concert", Seat: "A1", Price: decimal.NewFromInt(100)},
		User:        "alice",
		BookingDate: time.Date(2024, 8, 15, 19, 30, 0, 0, time.UTC),
	}
	require.NoError(t, p.BookingService.PublishBookingCreated(context.Background(), booking))

	require.Len(t, ch.published, 1)
	call := ch.published[0]
	assert.Equal(t, TicketExchange, call.exchange)
	assert.Equal(t, BookingCreatedRoutingKey, call.key)
	assert.Equal(t, amqp.Persistent, call.msg.DeliveryMode)
	_, err = uuid.Parse(call.msg.MessageId)
	assert.NoError(t, err)

	var msg BookingCreatedMessage
	require.NoError(t, json.Unmarshal(call.msg.Body, &msg))
	assert.Equal(t, uint(4), msg.BookingID)
	assert.Equal(t, "Concert", msg.Event)
}

func TestMirrorService_Publish(t *testing.T) {
	ch := newFakeChannel()
	p, err := InitProduce(ch)
	require.NoError(t, err)

	require.NoError(t, p.MirrorService.PublishResync(context.Background(), 7, "req-1"))
	require.NoError(t, p.MirrorService.PublishResyncAll(context.Background(), "req-2"))

	require.Len(t, ch.published, 2)
	var one, all MirrorResyncMessage
	require.NoError(t, json.Unmarshal(ch.published[0].msg.Body, &one))
	require.NoError(t, json.Unmarshal(ch.published[1].msg.Body, &all))
	assert.Equal(t, uint(7), one.TicketID)
	assert.False(t, one.All)
	assert.True(t, all.All)
	assert.Equal(t, "req-2", all.RequestID)

	ch.publishErr = errors.New("channel/connection is not open")
	assert.Error(t, p.MirrorService.PublishResync(context.Background(), 7, ""))
}
