package entity

import "time"

// Booking reserves one ticket for one user. The (ticket, user) pair is unique.
type Booking struct {
	ID          uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	TicketID    uint      `json:"-" gorm:"not null;uniqueIndex:idx_booking_ticket_user"`
	Ticket      Ticket    `json:"ticket" gorm:"foreignKey:TicketID;constraint:OnDelete:CASCADE"`
	User        string    `json:"user" gorm:"column:user_name;type:varchar(100);not null;uniqueIndex:idx_booking_ticket_user;index"`
	BookingDate time.Time `json:"bookingDate" gorm:"not null"`
}
