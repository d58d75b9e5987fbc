package produce

import (
	"context"
	"time"

	"github.com/tnqbao/gau-ticketing-service/entity"
)

const (
	BookingCreatedQueue      = "booking.created"
	BookingCreatedRoutingKey = "booking.created"
)

type BookingCreatedMessage struct {
	BookingID   uint      `json:"booking_id"`
	TicketID    uint      `json:"ticket_id"`
	User        string    `json:"user"`
	Event       string    `json:"event"`
	Seat        string    `json:"seat"`
	BookingDate time.Time `json:"booking_date"`
}

type BookingService struct {
	channel Channel
}

func InitBookingService(channel Channel) (*BookingService, error) {
	if err := DeclareQueue(channel, BookingCreatedQueue, BookingCreatedRoutingKey); err != nil {
		return nil, err
	}
	return &BookingService{channel: channel}, nil
}

func (s *BookingService) PublishBookingCreated(ctx context.Context, booking entity.Booking) error {
	message := BookingCreatedMessage{
		BookingID:   booking.ID,
		TicketID:    booking.TicketID,
		User:        booking.User,
		Event:       booking.Ticket.Event,
		Seat:        booking.Ticket.Seat,
		BookingDate: booking.BookingDate,
	}
	return publishJSON(ctx, s.channel, BookingCreatedRoutingKey, message)
}
