package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tnqbao/gau-ticketing-service/clock"
	"gorm.io/datatypes"
)

func TestEventService_CRUD(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
	store := newFakeEventStore()
	svc := NewEventService(store, &nopLogger{}, WithEventClock(clock.NewFixed(now)))

	events, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, events)

	created, err := svc.Create(ctx, EventFields{Name: "Summer Fest", Location: "Hanoi"})
	require.NoError(t, err)
	assert.Equal(t, datatypes.Date(now), created.Date)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Summer Fest", got.Name)

	updated, err := svc.Update(ctx, created.ID, EventFields{Name: "Summer Fest", Location: "Da Nang"})
	require.NoError(t, err)
	assert.Equal(t, "Da Nang", updated.Location)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.GetByID(ctx, created.ID)
	require.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, "Event not found with id: 1")

	_, err = svc.Update(ctx, created.ID, EventFields{Name: "x", Location: "y"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), ErrNotFound)
}

func TestEventService_Validation(t *testing.T) {
	svc := NewEventService(newFakeEventStore(), &nopLogger{})

	_, err := svc.Create(context.Background(), EventFields{Name: "", Location: strings.Repeat("x", 101)})
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, map[string]string{
		"name":     "Event name is mandatory",
		"location": "Location should not exceed 100 characters",
	}, vErr.Fields)
}

func TestEventService_Cache(t *testing.T) {
	ctx := context.Background()
	store := newFakeEventStore()
	cache := newMapCache()
	svc := NewEventService(store, &nopLogger{}, WithEventCache(cache, time.Minute))

	created, err := svc.Create(ctx, EventFields{Name: "Expo", Location: "Hall 1"})
	require.NoError(t, err)

	_, err = svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	_, err = svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, store.finds)

	_, err = svc.Update(ctx, created.ID, EventFields{Name: "Expo", Location: "Hall 2"})
	require.NoError(t, err)
	assert.Contains(t, cache.deletes, "event:1")

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hall 2", got.Location)

	t.Run("cache errors fall back to the store", func(t *testing.T) {
		cache.getErr = errors.New("redis: connection pool timeout")
		got, err := svc.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Hall 2", got.Location)
	})
}
