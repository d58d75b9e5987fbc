package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tnqbao/gau-ticketing-service/clock"
	"github.com/tnqbao/gau-ticketing-service/entity"
	"gorm.io/datatypes"
)

const (
	maxEventNameLength     = 100
	maxEventLocationLength = 100

	eventCacheKeyPrefix = "event:"
)

// ErrCacheMiss is wrapped by EventCache.Get when the key is absent.
var ErrCacheMiss = errors.New("key not found in cache")

type EventStore interface {
	Save(ctx context.Context, e *entity.Event) error
	FindByID(ctx context.Context, id uint) (entity.Event, bool, error)
	FindAll(ctx context.Context) ([]entity.Event, error)
	Delete(ctx context.Context, e *entity.Event) error
}

// EventCache is a JSON key/value cache. infra.RedisClient satisfies it.
type EventCache interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, keys ...string) error
}

type EventFields struct {
	Name     string
	Location string
}

type EventOption func(*EventService)

// WithEventCache reads events through cache, keeping entries for ttl.
func WithEventCache(cache EventCache, ttl time.Duration) EventOption {
	return func(s *EventService) {
		s.cache = cache
		s.cacheTTL = ttl
	}
}

func WithEventClock(c clock.Clock) EventOption {
	return func(s *EventService) { s.clock = c }
}

type EventService struct {
	store    EventStore
	cache    EventCache
	cacheTTL time.Duration
	clock    clock.Clock
	logger   Logger
}

func NewEventService(store EventStore, logger Logger, opts ...EventOption) *EventService {
	s := &EventService{
		store:  store,
		clock:  clock.NewSystem(),
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *EventService) Create(ctx context.Context, fields EventFields) (entity.Event, error) {
	if err := validateEvent(fields); err != nil {
		return entity.Event{}, err
	}

	s.logger.DebugWithContextf(ctx, "[Event] Creating event: name=%q location=%q", fields.Name, fields.Location)

	event := entity.Event{
		Name:     fields.Name,
		Location: fields.Location,
		Date:     datatypes.Date(s.clock.Now()),
	}
	if err := s.store.Save(ctx, &event); err != nil {
		return entity.Event{}, fmt.Errorf("save event: %w", err)
	}
	return event, nil
}

func (s *EventService) List(ctx context.Context) ([]entity.Event, error) {
	s.logger.DebugWithContextf(ctx, "[Event] Fetching all events")

	events, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("find events: %w", err)
	}
	return events, nil
}

// GetByID serves from the cache when one is configured and falls back to the store.
func (s *EventService) GetByID(ctx context.Context, id uint) (entity.Event, error) {
	s.logger.DebugWithContextf(ctx, "[Event] Fetching event by id: %d", id)

	key := eventCacheKey(id)
	if s.cache != nil {
		var cached entity.Event
		err := s.cache.Get(ctx, key, &cached)
		switch {
		case err == nil:
			return cached, nil
		case !errors.Is(err, ErrCacheMiss):
			s.logger.WarningWithContextf(ctx, "[Event] Cache read failed for %s: %v", key, err)
		}
	}

	event, err := s.load(ctx, id)
	if err != nil {
		return entity.Event{}, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, event, s.cacheTTL); err != nil {
			s.logger.WarningWithContextf(ctx, "[Event] Cache write failed for %s: %v", key, err)
		}
	}
	return event, nil
}

func (s *EventService) Update(ctx context.Context, id uint, fields EventFields) (entity.Event, error) {
	if err := validateEvent(fields); err != nil {
		return entity.Event{}, err
	}

	s.logger.DebugWithContextf(ctx, "[Event] Updating event id: %d", id)

	event, err := s.load(ctx, id)
	if err != nil {
		return entity.Event{}, err
	}

	event.Name = fields.Name
	event.Location = fields.Location
	event.Date = datatypes.Date(s.clock.Now())

	if err := s.store.Save(ctx, &event); err != nil {
		return entity.Event{}, fmt.Errorf("save event %d: %w", id, err)
	}

	s.invalidate(ctx, id)
	return event, nil
}

func (s *EventService) Delete(ctx context.Context, id uint) error {
	s.logger.DebugWithContextf(ctx, "[Event] Deleting event id: %d", id)

	event, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, &event); err != nil {
		return fmt.Errorf("delete event %d: %w", id, err)
	}

	s.invalidate(ctx, id)
	return nil
}

func (s *EventService) load(ctx context.Context, id uint) (entity.Event, error) {
	event, found, err := s.store.FindByID(ctx, id)
	if err != nil {
		return entity.Event{}, fmt.Errorf("find event %d: %w", id, err)
	}
	if !found {
		return entity.Event{}, NotFound("Event not found with id: %d", id)
	}
	return event, nil
}

func (s *EventService) invalidate(ctx context.Context, id uint) {
	if s.cache == nil {
		return
	}
	key := eventCacheKey(id)
	if err := s.cache.Delete(ctx, key); err != nil {
		s.logger.WarningWithContextf(ctx, "[Event] Cache invalidation failed for %s: %v", key, err)
	}
}

func eventCacheKey(id uint) string {
	return fmt.Sprintf("%s%d", eventCacheKeyPrefix, id)
}

func validateEvent(f EventFields) error {
	var v ValidationError

	switch {
	case strings.TrimSpace(f.Name) == "":
		v.add("name", "Event name is mandatory")
	case utf8.RuneCountInString(f.Name) > maxEventNameLength:
		v.add("name", fmt.Sprintf("Event name should not exceed %d characters", maxEventNameLength))
	}

	switch {
	case strings.TrimSpace(f.Location) == "":
		v.add("location", "Location is mandatory")
	case utf8.RuneCountInString(f.Location) > maxEventLocationLength:
		v.add("location", fmt.Sprintf("Location should not exceed %d characters", maxEventLocationLength))
	}

	return v.orNil()
}
