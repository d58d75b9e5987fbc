package repository

import (
	"context"
	"errors"

	"github.com/tnqbao/gau-ticketing-service/entity"
	"gorm.io/gorm"
)

type TicketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

// Save inserts the ticket when its ID is zero and updates every column otherwise.
func (r *TicketRepository) Save(ctx context.Context, ticket *entity.Ticket) error {
	return r.db.WithContext(ctx).Save(ticket).Error
}

func (r *TicketRepository) FindByID(ctx context.Context, id uint) (entity.Ticket, bool, error) {
	var ticket entity.Ticket
	err := r.db.WithContext(ctx).First(&ticket, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entity.Ticket{}, false, nil
		}
		return entity.Ticket{}, false, err
	}
	return ticket, true, nil
}

func (r *TicketRepository) FindAll(ctx context.Context) ([]entity.Ticket, error) {
	var tickets []entity.Ticket
	err := r.db.WithContext(ctx).Order("id").Find(&tickets).Error
	if err != nil {
		return nil, err
	}
	return tickets, nil
}

func (r *TicketRepository) Delete(ctx context.Context, ticket *entity.Ticket) error {
	return r.db.WithContext(ctx).Delete(ticket).Error
}
