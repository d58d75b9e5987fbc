package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tnqbao/gau-ticketing-service/clock"
	"github.com/tnqbao/gau-ticketing-service/entity"
)

func newBookingFixture(t *testing.T) (*BookingService, *fakeBookingStore, *fakeNotifier, entity.Ticket) {
	t.Helper()
	tickets := newFakeTicketStore()
	ticket := entity.Ticket{Event: "Concert", Seat: "A1", Price: decimal.NewFromInt(100)}
	require.NoError(t, tickets.Save(context.Background(), &ticket))

	bookings := newFakeBookingStore()
	notifier := &fakeNotifier{}
	now := time.Date(2024, 8, 15, 19, 30, 0, 0, time.UTC)
	svc := NewBookingService(bookings, tickets, &nopLogger{},
		WithBookingNotifier(notifier),
		WithBookingClock(clock.NewFixed(now)),
	)
	return svc, bookings, notifier, ticket
}

func TestBookingService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("stamps and publishes", func(t *testing.T) {
		svc, _, notifier, ticket := newBookingFixture(t)

		booking, err := svc.Create(ctx, ticket.ID, "alice")
		require.NoError(t, err)
		assert.NotZero(t, booking.ID)
		assert.Equal(t, ticket, booking.Ticket)
		assert.Equal(t, time.Date(2024, 8, 15, 19, 30, 0, 0, time.UTC), booking.BookingDate)
		require.Len(t, notifier.published, 1)
		assert.Equal(t, booking.ID, notifier.published[0].ID)
	})

	t.Run("unknown ticket", func(t *testing.T) {
		svc, bookings, _, _ := newBookingFixture(t)

		_, err := svc.Create(ctx, 42, "alice")
		require.ErrorIs(t, err, ErrNotFound)
		assert.EqualError(t, err, "Ticket not found for this id :: 42")
		assert.Zero(t, bookings.saves)
	})

	t.Run("duplicate pair", func(t *testing.T) {
		svc, bookings, _, ticket := newBookingFixture(t)

		_, err := svc.Create(ctx, ticket.ID, "alice")
		require.NoError(t, err)
		_, err = svc.Create(ctx, ticket.ID, "alice")
		require.ErrorIs(t, err, ErrConflict)
		assert.EqualError(t, err, "Booking already exists for user: alice and ticket ID: 1")

		_, err = svc.Create(ctx, ticket.ID, "bob")
		require.NoError(t, err)
		assert.Equal(t, 2, bookings.saves)
	})

	t.Run("duplicate caught by the store", func(t *testing.T) {
		svc, bookings, notifier, ticket := newBookingFixture(t)
		bookings.saveErr = fmt.Errorf("booking for ticket %d and user %q: %w", ticket.ID, "alice", ErrConflict)

		_, err := svc.Create(ctx, ticket.ID, "alice")
		require.ErrorIs(t, err, ErrConflict)
		assert.EqualError(t, err, "Booking already exists for user: alice and ticket ID: 1")
		assert.Empty(t, notifier.published)
	})

	t.Run("store failure", func(t *testing.T) {
		svc, bookings, _, ticket := newBookingFixture(t)
		bookings.saveErr = errors.New("connection reset")

		_, err := svc.Create(ctx, ticket.ID, "alice")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrConflict)
	})

	t.Run("publish failure does not fail the booking", func(t *testing.T) {
		svc, bookings, notifier, ticket := newBookingFixture(t)
		notifier.err = errors.New("channel closed")

		_, err := svc.Create(ctx, ticket.ID, "alice")
		require.NoError(t, err)
		assert.Equal(t, 1, bookings.saves)
	})

	t.Run("user length", func(t *testing.T) {
		svc, _, _, ticket := newBookingFixture(t)

		_, err := svc.Create(ctx, ticket.ID, "al")
		var vErr *ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, "User name must be between 3 and 100 characters", vErr.Fields["user"])

		_, err = svc.Create(ctx, ticket.ID, "")
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, "User is required", vErr.Fields["user"])
	})
}

func TestBookingService_Lists(t *testing.T) {
	ctx := context.Background()
	svc, _, _, ticket := newBookingFixture(t)

	_, err := svc.List(ctx)
	assert.EqualError(t, err, "No bookings found")

	_, err = svc.ListByUser(ctx, "carol")
	require.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, "No bookings found for user: carol")

	created, err := svc.Create(ctx, ticket.ID, "carol")
	require.NoError(t, err)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	mine, err := svc.ListByUser(ctx, "carol")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	got, found, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "carol", got.User)

	_, found, err = svc.GetByID(ctx, 100)
	require.NoError(t, err)
	assert.False(t, found)
}
