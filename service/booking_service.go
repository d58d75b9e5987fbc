package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/tnqbao/gau-ticketing-service/clock"
	"github.com/tnqbao/gau-ticketing-service/entity"
)

const (
	minUserLength = 3
	maxUserLength = 100
)

type BookingStore interface {
	Save(ctx context.Context, b *entity.Booking) error
	FindByID(ctx context.Context, id uint) (entity.Booking, bool, error)
	FindAll(ctx context.Context) ([]entity.Booking, error)
	FindByUser(ctx context.Context, user string) ([]entity.Booking, error)
	ExistsByTicketAndUser(ctx context.Context, ticketID uint, user string) (bool, error)
}

// TicketFinder is the read side of TicketStore that bookings need.
type TicketFinder interface {
	FindByID(ctx context.Context, id uint) (entity.Ticket, bool, error)
}

// BookingNotifier announces new bookings to other services.
type BookingNotifier interface {
	PublishBookingCreated(ctx context.Context, booking entity.Booking) error
}

type BookingOption func(*BookingService)

func WithBookingNotifier(n BookingNotifier) BookingOption {
	return func(s *BookingService) { s.notifier = n }
}

func WithBookingClock(c clock.Clock) BookingOption {
	return func(s *BookingService) { s.clock = c }
}

type BookingService struct {
	bookings BookingStore
	tickets  TicketFinder
	notifier BookingNotifier
	clock    clock.Clock
	logger   Logger
}

func NewBookingService(bookings BookingStore, tickets TicketFinder, logger Logger, opts ...BookingOption) *BookingService {
	s := &BookingService{
		bookings: bookings,
		tickets:  tickets,
		clock:    clock.NewSystem(),
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create books ticketID for user. At most one booking exists per ticket and
// user pair.
func (s *BookingService) Create(ctx context.Context, ticketID uint, user string) (entity.Booking, error) {
	if err := validateBooking(ticketID, user); err != nil {
		return entity.Booking{}, err
	}

	s.logger.DebugWithContextf(ctx, "[Booking] Creating booking: ticket=%d user=%q", ticketID, user)

	ticket, found, err := s.tickets.FindByID(ctx, ticketID)
	if err != nil {
		return entity.Booking{}, fmt.Errorf("find ticket %d: %w", ticketID, err)
	}
	if !found {
		return entity.Booking{}, NotFound("Ticket not found for this id :: %d", ticketID)
	}

	exists, err := s.bookings.ExistsByTicketAndUser(ctx, ticketID, user)
	if err != nil {
		return entity.Booking{}, fmt.Errorf("check booking: %w", err)
	}
	if exists {
		return entity.Booking{}, Conflict("Booking already exists for user: %s and ticket ID: %d", user, ticketID)
	}

	booking := entity.Booking{
		TicketID:    ticket.ID,
		Ticket:      ticket,
		User:        user,
		BookingDate: s.clock.Now(),
	}
	if err := s.bookings.Save(ctx, &booking); err != nil {
		// Lost a race with a concurrent identical booking
		if errors.Is(err, ErrConflict) {
			return entity.Booking{}, Conflict("Booking already exists for user: %s and ticket ID: %d", user, ticketID)
		}
		return entity.Booking{}, fmt.Errorf("save booking: %w", err)
	}

	if s.notifier != nil {
		if err := s.notifier.PublishBookingCreated(ctx, booking); err != nil {
			// Don't fail the request, the booking is already stored
			s.logger.ErrorWithContextf(ctx, err, "[Booking] Failed to publish booking %d: %v", booking.ID, err)
		}
	}

	s.logger.InfoWithContextf(ctx, "[Booking] Booking %d created for user %q", booking.ID, user)
	return booking, nil
}

func (s *BookingService) List(ctx context.Context) ([]entity.Booking, error) {
	s.logger.DebugWithContextf(ctx, "[Booking] Fetching all bookings")

	bookings, err := s.bookings.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("find bookings: %w", err)
	}
	if len(bookings) == 0 {
		return nil, NotFound("No bookings found")
	}
	return bookings, nil
}

func (s *BookingService) GetByID(ctx context.Context, id uint) (entity.Booking, bool, error) {
	s.logger.DebugWithContextf(ctx, "[Booking] Fetching booking by id: %d", id)

	booking, found, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return entity.Booking{}, false, fmt.Errorf("find booking %d: %w", id, err)
	}
	return booking, found, nil
}

func (s *BookingService) ListByUser(ctx context.Context, user string) ([]entity.Booking, error) {
	s.logger.DebugWithContextf(ctx, "[Booking] Fetching bookings of user: %s", user)

	bookings, err := s.bookings.FindByUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("find bookings of %q: %w", user, err)
	}
	if len(bookings) == 0 {
		return nil, NotFound("No bookings found for user: %s", user)
	}
	return bookings, nil
}

func validateBooking(ticketID uint, user string) error {
	var v ValidationError

	if ticketID == 0 {
		v.add("ticket", "Ticket is required")
	}

	n := utf8.RuneCountInString(user)
	switch {
	case strings.TrimSpace(user) == "":
		v.add("user", "User is required")
	case n < minUserLength || n > maxUserLength:
		v.add("user", fmt.Sprintf("User name must be between %d and %d characters", minUserLength, maxUserLength))
	}

	return v.orNil()
}
