package repository

import (
	"context"
	"fmt"

	"github.com/tnqbao/gau-ticketing-service/entity"
	"gorm.io/gorm"
)

type Repository struct {
	TicketRepo  *TicketRepository
	BookingRepo *BookingRepository
	EventRepo   *EventRepository

	db *gorm.DB
}

func InitRepository(db *gorm.DB) *Repository {
	return &Repository{
		TicketRepo:  NewTicketRepository(db),
		BookingRepo: NewBookingRepository(db),
		EventRepo:   NewEventRepository(db),
		db:          db,
	}
}

// AutoMigrate creates or updates the tables of every entity. Tickets come
// before bookings because of the foreign key.
func (r *Repository) AutoMigrate() error {
	if err := r.db.AutoMigrate(&entity.Ticket{}, &entity.Event{}, &entity.Booking{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

func (r *Repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
