package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/tnqbao/gau-ticketing-service/entity"
)

type nopLogger struct {
	mu     sync.Mutex
	errors []error
}

func (*nopLogger) DebugWithContextf(context.Context, string, ...interface{})   {}
func (*nopLogger) InfoWithContextf(context.Context, string, ...interface{})    {}
func (*nopLogger) WarningWithContextf(context.Context, string, ...interface{}) {}

func (l *nopLogger) ErrorWithContextf(_ context.Context, err error, _ string, _ ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, err)
}

func (l *nopLogger) loggedErrors() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.errors)
}

type fakeTicketStore struct {
	mu      sync.Mutex
	tickets map[uint]entity.Ticket
	nextID  uint
	saves   int
	deletes int
	saveErr error
}

func newFakeTicketStore() *fakeTicketStore {
	return &fakeTicketStore{tickets: make(map[uint]entity.Ticket), nextID: 1}
}

func (f *fakeTicketStore) Save(_ context.Context, t *entity.Ticket) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	if t.ID == 0 {
		t.ID = f.nextID
		f.nextID++
	}
	f.tickets[t.ID] = *t
	f.saves++
	return nil
}

func (f *fakeTicketStore) FindByID(_ context.Context, id uint) (entity.Ticket, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tickets[id]
	return t, ok, nil
}

func (f *fakeTicketStore) FindAll(context.Context) ([]entity.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entity.Ticket, 0, len(f.tickets))
	for _, t := range f.tickets {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeTicketStore) Delete(_ context.Context, t *entity.Ticket) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tickets, t.ID)
	f.deletes++
	return nil
}

type fakeObjectStore struct {
	mu        sync.Mutex
	blobs     map[string][]byte
	putErr    error
	getErr    error
	listErr   error
	deleteErr error
	puts      int
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{blobs: make(map[string][]byte)}
}

func (f *fakeObjectStore) Put(_ context.Context, key string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.puts++
	if f.putErr != nil {
		return f.putErr
	}
	f.blobs[key] = append([]byte(nil), data...)
	return nil
}

func (f *fakeObjectStore) Get(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	data, ok := f.blobs[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, key)
	}
	return data, nil
}

func (f *fakeObjectStore) List(_ context.Context, prefix string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var keys []string
	for k := range f.blobs {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (f *fakeObjectStore) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.blobs[key]; !ok {
		return fmt.Errorf("%w: %s", ErrObjectNotFound, key)
	}
	delete(f.blobs, key)
	return nil
}

func (f *fakeObjectStore) has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.blobs[key]
	return ok
}

func (f *fakeObjectStore) set(key string, data []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blobs[key] = data
}

var errUnreachable = errors.New("dial tcp 10.0.0.1:9000: connection refused")

type fakeBookingStore struct {
	mu       sync.Mutex
	bookings map[uint]entity.Booking
	nextID   uint
	saves    int
	saveErr  error
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{bookings: make(map[uint]entity.Booking), nextID: 1}
}

func (f *fakeBookingStore) Save(_ context.Context, b *entity.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	if b.ID == 0 {
		b.ID = f.nextID
		f.nextID++
	}
	f.bookings[b.ID] = *b
	f.saves++
	return nil
}

func (f *fakeBookingStore) FindByID(_ context.Context, id uint) (entity.Booking, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	return b, ok, nil
}

func (f *fakeBookingStore) FindAll(context.Context) ([]entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entity.Booking, 0, len(f.bookings))
	for _, b := range f.bookings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeBookingStore) FindByUser(ctx context.Context, user string) ([]entity.Booking, error) {
	all, _ := f.FindAll(ctx)
	var out []entity.Booking
	for _, b := range all {
		if b.User == user {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingStore) ExistsByTicketAndUser(_ context.Context, ticketID uint, user string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.TicketID == ticketID && b.User == user {
			return true, nil
		}
	}
	return false, nil
}

type fakeNotifier struct {
	published []entity.Booking
	err       error
}

func (f *fakeNotifier) PublishBookingCreated(_ context.Context, b entity.Booking) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, b)
	return nil
}

type fakeEventStore struct {
	mu     sync.Mutex
	events map[uint]entity.Event
	nextID uint
	finds  int
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{events: make(map[uint]entity.Event), nextID: 1}
}

func (f *fakeEventStore) Save(_ context.Context, e *entity.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e.ID == 0 {
		e.ID = f.nextID
		f.nextID++
	}
	f.events[e.ID] = *e
	return nil
}

func (f *fakeEventStore) FindByID(_ context.Context, id uint) (entity.Event, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.finds++
	e, ok := f.events[id]
	return e, ok, nil
}

func (f *fakeEventStore) FindAll(context.Context) ([]entity.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entity.Event, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeEventStore) Delete(_ context.Context, e *entity.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.events, e.ID)
	return nil
}

// mapCache holds events in memory and reports misses like the Redis client does.
type mapCache struct {
	mu      sync.Mutex
	entries map[string]entity.Event
	getErr  error
	deletes []string
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string]entity.Event)}
}

func (c *mapCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value.(entity.Event)
	return nil
}

func (c *mapCache) Get(_ context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return c.getErr
	}
	e, ok := c.entries[key]
	if !ok {
		return ErrCacheMiss
	}
	*dest.(*entity.Event) = e
	return nil
}

func (c *mapCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.entries, k)
		c.deletes = append(c.deletes, k)
	}
	return nil
}
