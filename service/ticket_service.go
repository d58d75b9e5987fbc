package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/tnqbao/gau-ticketing-service/entity"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

const (
	maxEventLength = 100
	maxSeatLength  = 10
)

// ErrObjectNotFound is wrapped by ObjectStore implementations when a key does not exist.
var ErrObjectNotFound = errors.New("object not found")

// TicketStore is the relational, authoritative ticket store.
type TicketStore interface {
	// Save inserts t when t.ID is zero (assigning the ID) and updates it otherwise.
	Save(ctx context.Context, t *entity.Ticket) error
	FindByID(ctx context.Context, id uint) (entity.Ticket, bool, error)
	FindAll(ctx context.Context) ([]entity.Ticket, error)
	Delete(ctx context.Context, t *entity.Ticket) error
}

// ObjectStore is the blob store holding ticket mirrors.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	List(ctx context.Context, prefix string) ([]string, error)
	Delete(ctx context.Context, key string) error
}

// TicketFields are the caller-writable ticket attributes. A nil Price means
// the caller did not supply one.
type TicketFields struct {
	Event string
	Seat  string
	Price *decimal.Decimal
}

type ticketOptions struct {
	meter  metric.Meter
	tracer trace.Tracer
}

type TicketOption func(*ticketOptions)

// WithMeter records mirror failure counters on m.
func WithMeter(m metric.Meter) TicketOption {
	return func(o *ticketOptions) { o.meter = m }
}

// WithTracer opens one span per operation on t.
func WithTracer(t trace.Tracer) TicketOption {
	return func(o *ticketOptions) { o.tracer = t }
}

// TicketService keeps each ticket in the relational store and mirrors it to the
// object store. The relational store is authoritative. Mirror writes are best
// effort and never fail or roll back a relational write.
type TicketService struct {
	store   TicketStore
	objects ObjectStore
	logger  Logger
	tracer  trace.Tracer

	mirrorWriteFailures metric.Int64Counter
	mirrorReadFailures  metric.Int64Counter
}

func NewTicketService(store TicketStore, objects ObjectStore, logger Logger, opts ...TicketOption) *TicketService {
	o := ticketOptions{
		meter:  metricnoop.NewMeterProvider().Meter(""),
		tracer: tracenoop.NewTracerProvider().Tracer(""),
	}
	for _, opt := range opts {
		opt(&o)
	}

	s := &TicketService{
		store:   store,
		objects: objects,
		logger:  logger,
		tracer:  o.tracer,
	}

	var err error
	if s.mirrorWriteFailures, err = o.meter.Int64Counter("ticket.mirror.write.failures",
		metric.WithDescription("Mirror writes that failed and were dropped")); err != nil {
		s.mirrorWriteFailures = metricnoop.Int64Counter{}
	}
	if s.mirrorReadFailures, err = o.meter.Int64Counter("ticket.mirror.read.failures",
		metric.WithDescription("Mirror reads that failed and were reported as not found")); err != nil {
		s.mirrorReadFailures = metricnoop.Int64Counter{}
	}
	return s
}

func (s *TicketService) Create(ctx context.Context, fields TicketFields) (entity.Ticket, error) {
	ctx, span := s.tracer.Start(ctx, "TicketService.Create")
	defer span.End()

	if err := validateTicket(fields); err != nil {
		return entity.Ticket{}, err
	}

	s.logger.DebugWithContextf(ctx, "[Ticket] Creating ticket: event=%q seat=%q price=%s", fields.Event, fields.Seat, fields.Price)

	ticket := entity.Ticket{
		Event: fields.Event,
		Seat:  fields.Seat,
		Price: *fields.Price,
	}
	if err := s.store.Save(ctx, &ticket); err != nil {
		return entity.Ticket{}, spanError(span, fmt.Errorf("save ticket: %w", err))
	}

	s.mirror(ctx, "create", ticket)
	return ticket, nil
}

// List returns every relational ticket. An empty store is reported as ErrNotFound.
func (s *TicketService) List(ctx context.Context) ([]entity.Ticket, error) {
	ctx, span := s.tracer.Start(ctx, "TicketService.List")
	defer span.End()

	s.logger.DebugWithContextf(ctx, "[Ticket] Fetching all tickets")

	tickets, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, spanError(span, fmt.Errorf("find tickets: %w", err))
	}
	if len(tickets) == 0 {
		return nil, NotFound("No tickets found")
	}
	return tickets, nil
}

// GetByID looks the ticket up in the relational store. found is false when no
// such ticket exists.
func (s *TicketService) GetByID(ctx context.Context, id uint) (ticket entity.Ticket, found bool, err error) {
	ctx, span := s.tracer.Start(ctx, "TicketService.GetByID", trace.WithAttributes(attribute.Int64("ticket.id", int64(id))))
	defer span.End()

	s.logger.DebugWithContextf(ctx, "[Ticket] Fetching ticket by id: %d", id)

	ticket, found, err = s.store.FindByID(ctx, id)
	if err != nil {
		return entity.Ticket{}, false, spanError(span, fmt.Errorf("find ticket %d: %w", id, err))
	}
	return ticket, found, nil
}

func (s *TicketService) Update(ctx context.Context, id uint, fields TicketFields) (entity.Ticket, error) {
	ctx, span := s.tracer.Start(ctx, "TicketService.Update", trace.WithAttributes(attribute.Int64("ticket.id", int64(id))))
	defer span.End()

	if err := validateTicket(fields); err != nil {
		return entity.Ticket{}, err
	}

	s.logger.DebugWithContextf(ctx, "[Ticket] Updating ticket id: %d", id)

	ticket, err := s.load(ctx, id)
	if err != nil {
		return entity.Ticket{}, spanError(span, err)
	}

	ticket.Event = fields.Event
	ticket.Seat = fields.Seat
	ticket.Price = *fields.Price

	if err := s.store.Save(ctx, &ticket); err != nil {
		return entity.Ticket{}, spanError(span, fmt.Errorf("save ticket %d: %w", id, err))
	}

	s.mirror(ctx, "update", ticket)
	return ticket, nil
}

// Delete removes the relational record only. The mirror blob, if any, stays
// until DeleteMirrored is called.
func (s *TicketService) Delete(ctx context.Context, id uint) error {
	ctx, span := s.tracer.Start(ctx, "TicketService.Delete", trace.WithAttributes(attribute.Int64("ticket.id", int64(id))))
	defer span.End()

	s.logger.DebugWithContextf(ctx, "[Ticket] Deleting ticket id: %d", id)

	ticket, err := s.load(ctx, id)
	if err != nil {
		return spanError(span, err)
	}
	if err := s.store.Delete(ctx, &ticket); err != nil {
		return spanError(span, fmt.Errorf("delete ticket %d: %w", id, err))
	}
	return nil
}

// GetMirroredByID reads the ticket from its mirror blob. Every failure, whether
// a missing key, a transport error or an undecodable blob, is reported as ErrNotFound.
func (s *TicketService) GetMirroredByID(ctx context.Context, id uint) (entity.Ticket, error) {
	ctx, span := s.tracer.Start(ctx, "TicketService.GetMirroredByID", trace.WithAttributes(attribute.Int64("ticket.id", int64(id))))
	defer span.End()

	key := MirrorKey(id)
	s.logger.DebugWithContextf(ctx, "[Mirror] Getting ticket from mirror with key: %s", key)

	data, err := s.objects.Get(ctx, key)
	if err != nil {
		s.mirrorReadFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("op", "get")))
		if errors.Is(err, ErrObjectNotFound) {
			s.logger.WarningWithContextf(ctx, "[Mirror] Ticket not found in mirror with id: %d", id)
			return entity.Ticket{}, notFoundCause(err, "Ticket not found in mirror with id: %d", id)
		}
		s.logger.ErrorWithContextf(ctx, err, "[Mirror] Failed to get ticket %d from mirror: %v", id, err)
		return entity.Ticket{}, spanError(span, notFoundCause(transport("get "+key, err), "Failed to get ticket from mirror"))
	}

	ticket, err := DecodeTicket(data)
	if err != nil {
		s.mirrorReadFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("op", "decode")))
		s.logger.ErrorWithContextf(ctx, err, "[Mirror] Failed to decode mirror blob %s: %v", key, err)
		return entity.Ticket{}, spanError(span, notFoundCause(err, "Failed to get ticket from mirror"))
	}
	return ticket, nil
}

// ListMirrored decodes every blob under the mirror prefix. It is all or nothing:
// one unreadable blob fails the whole listing with ErrNotFound.
func (s *TicketService) ListMirrored(ctx context.Context) ([]entity.Ticket, error) {
	ctx, span := s.tracer.Start(ctx, "TicketService.ListMirrored")
	defer span.End()

	s.logger.DebugWithContextf(ctx, "[Mirror] Getting all tickets from mirror")

	keys, err := s.objects.List(ctx, MirrorPrefix)
	if err != nil {
		s.mirrorReadFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("op", "list")))
		s.logger.ErrorWithContextf(ctx, err, "[Mirror] Failed to list tickets from mirror: %v", err)
		return nil, spanError(span, notFoundCause(transport("list "+MirrorPrefix, err), "Failed to list tickets from mirror"))
	}

	tickets := make([]entity.Ticket, 0, len(keys))
	for _, key := range keys {
		data, err := s.objects.Get(ctx, key)
		if err != nil {
			s.mirrorReadFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("op", "list")))
			s.logger.ErrorWithContextf(ctx, err, "[Mirror] Failed to get %s while listing: %v", key, err)
			return nil, spanError(span, notFoundCause(transport("get "+key, err), "Failed to list tickets from mirror"))
		}

		ticket, err := DecodeTicket(data)
		if err != nil {
			s.mirrorReadFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("op", "decode")))
			s.logger.ErrorWithContextf(ctx, err, "[Mirror] Failed to decode %s while listing: %v", key, err)
			return nil, spanError(span, notFoundCause(err, "Failed to deserialize tickets from mirror"))
		}
		tickets = append(tickets, ticket)
	}

	s.logger.InfoWithContextf(ctx, "[Mirror] Fetched %d tickets from mirror", len(tickets))
	return tickets, nil
}

// DeleteMirrored removes the mirror blob of id. Failures are logged and dropped;
// the caller always sees success.
func (s *TicketService) DeleteMirrored(ctx context.Context, id uint) {
	ctx, span := s.tracer.Start(ctx, "TicketService.DeleteMirrored", trace.WithAttributes(attribute.Int64("ticket.id", int64(id))))
	defer span.End()

	key := MirrorKey(id)
	s.logger.DebugWithContextf(ctx, "[Mirror] Deleting ticket from mirror with key: %s", key)

	if err := s.objects.Delete(ctx, key); err != nil {
		if errors.Is(err, ErrObjectNotFound) {
			s.logger.WarningWithContextf(ctx, "[Mirror] Ticket not found in mirror with id: %d", id)
			return
		}
		s.logger.ErrorWithContextf(ctx, err, "[Mirror] Failed to delete ticket %d from mirror: %v", id, err)
		return
	}
	s.logger.InfoWithContextf(ctx, "[Mirror] Ticket deleted from mirror with id: %d", id)
}

// Remirror rewrites the mirror blob of id from its relational record. Unlike
// Create and Update it reports mirror failures to the caller.
func (s *TicketService) Remirror(ctx context.Context, id uint) error {
	ctx, span := s.tracer.Start(ctx, "TicketService.Remirror", trace.WithAttributes(attribute.Int64("ticket.id", int64(id))))
	defer span.End()

	ticket, err := s.load(ctx, id)
	if err != nil {
		return spanError(span, err)
	}
	if err := s.writeMirror(ctx, ticket); err != nil {
		return spanError(span, err)
	}
	s.logger.InfoWithContextf(ctx, "[Mirror] Resynced ticket %d to key: %s", id, MirrorKey(id))
	return nil
}

// RemirrorAll rewrites the mirror blob of every relational ticket and returns
// how many were written. Individual failures are joined into the returned error.
func (s *TicketService) RemirrorAll(ctx context.Context) (int, error) {
	ctx, span := s.tracer.Start(ctx, "TicketService.RemirrorAll")
	defer span.End()

	tickets, err := s.store.FindAll(ctx)
	if err != nil {
		return 0, spanError(span, fmt.Errorf("find tickets: %w", err))
	}

	var (
		written int
		errs    []error
	)
	for _, ticket := range tickets {
		if err := s.writeMirror(ctx, ticket); err != nil {
			errs = append(errs, err)
			continue
		}
		written++
	}

	s.logger.InfoWithContextf(ctx, "[Mirror] Resynced %d/%d tickets", written, len(tickets))
	if len(errs) > 0 {
		return written, spanError(span, errors.Join(errs...))
	}
	return written, nil
}

func (s *TicketService) load(ctx context.Context, id uint) (entity.Ticket, error) {
	ticket, found, err := s.store.FindByID(ctx, id)
	if err != nil {
		return entity.Ticket{}, fmt.Errorf("find ticket %d: %w", id, err)
	}
	if !found {
		return entity.Ticket{}, NotFound("Ticket not found with id: %d", id)
	}
	return ticket, nil
}

// mirror is the second step of every write. Its error is logged, counted and
// discarded.
func (s *TicketService) mirror(ctx context.Context, op string, ticket entity.Ticket) {
	if err := s.writeMirror(ctx, ticket); err != nil {
		s.mirrorWriteFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("op", op)))
		s.logger.ErrorWithContextf(ctx, err, "[Mirror] Failed to mirror ticket %d after %s: %v", ticket.ID, op, err)
		return
	}
	s.logger.InfoWithContextf(ctx, "[Mirror] Ticket saved to mirror with key: %s", MirrorKey(ticket.ID))
}

func (s *TicketService) writeMirror(ctx context.Context, ticket entity.Ticket) error {
	data, err := EncodeTicket(ticket)
	if err != nil {
		return fmt.Errorf("encode ticket %d: %w", ticket.ID, err)
	}
	key := MirrorKey(ticket.ID)
	if err := s.objects.Put(ctx, key, data); err != nil {
		return transport("put "+key, err)
	}
	return nil
}

func validateTicket(f TicketFields) error {
	var v ValidationError

	switch {
	case strings.TrimSpace(f.Event) == "":
		v.add("event", "Event name is mandatory")
	case utf8.RuneCountInString(f.Event) > maxEventLength:
		v.add("event", fmt.Sprintf("Event name should not exceed %d characters", maxEventLength))
	}

	switch {
	case strings.TrimSpace(f.Seat) == "":
		v.add("seat", "Seat is mandatory")
	case utf8.RuneCountInString(f.Seat) > maxSeatLength:
		v.add("seat", fmt.Sprintf("Seat should not exceed %d characters", maxSeatLength))
	}

	switch {
	case f.Price == nil:
		v.add("price", "Price is mandatory")
	case !f.Price.IsPositive():
		v.add("price", "Price must be greater than 0")
	}

	return v.orNil()
}

func spanError(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
