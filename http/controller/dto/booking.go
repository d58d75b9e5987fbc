package dto

import (
	"time"

	"github.com/tnqbao/gau-ticketing-service/entity"
)

type BookingTicketRefDTO struct {
	ID uint `json:"id"`
}

type BookingRequestDTO struct {
	Ticket *BookingTicketRefDTO `json:"ticket"`
	User   string               `json:"user"`
}

func (r BookingRequestDTO) TicketID() uint {
	if r.Ticket == nil {
		return 0
	}
	return r.Ticket.ID
}

type BookingResponseDTO struct {
	ID          uint              `json:"id"`
	Ticket      TicketResponseDTO `json:"ticket"`
	User        string            `json:"user"`
	BookingDate time.Time         `json:"bookingDate"`
}

func NewBookingResponse(b entity.Booking) BookingResponseDTO {
	return BookingResponseDTO{
		ID:          b.ID,
		Ticket:      NewTicketResponse(b.Ticket),
		User:        b.User,
		BookingDate: b.BookingDate,
	}
}

func NewBookingListResponse(bookings []entity.Booking) []BookingResponseDTO {
	out := make([]BookingResponseDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, NewBookingResponse(b))
	}
	return out
}
