package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/tnqbao/gau-ticketing-service/entity"
	"github.com/tnqbao/gau-ticketing-service/service"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Save writes the booking row only; the referenced ticket is never touched.
// A second booking for the same ticket and user wraps service.ErrConflict.
func (r *BookingRepository) Save(ctx context.Context, booking *entity.Booking) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Save(booking).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("booking for ticket %d and user %q: %w", booking.TicketID, booking.User, service.ErrConflict)
	}
	return err
}

func (r *BookingRepository) FindByID(ctx context.Context, id uint) (entity.Booking, bool, error) {
	var booking entity.Booking
	err := r.db.WithContext(ctx).Preload("Ticket").First(&booking, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entity.Booking{}, false, nil
		}
		return entity.Booking{}, false, err
	}
	return booking, true, nil
}

func (r *BookingRepository) FindAll(ctx context.Context) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := r.db.WithContext(ctx).Preload("Ticket").Order("id").Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingRepository) FindByUser(ctx context.Context, user string) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := r.db.WithContext(ctx).Preload("Ticket").
		Where("user_name = ?", user).
		Order("id").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingRepository) ExistsByTicketAndUser(ctx context.Context, ticketID uint, user string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Booking{}).
		Where("ticket_id = ? AND user_name = ?", ticketID, user).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
