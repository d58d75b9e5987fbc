package repository

import (
	"context"
	"errors"

	"github.com/tnqbao/gau-ticketing-service/entity"
	"gorm.io/gorm"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Save(ctx context.Context, event *entity.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

func (r *EventRepository) FindByID(ctx context.Context, id uint) (entity.Event, bool, error) {
	var event entity.Event
	err := r.db.WithContext(ctx).First(&event, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entity.Event{}, false, nil
		}
		return entity.Event{}, false, err
	}
	return event, true, nil
}

func (r *EventRepository) FindAll(ctx context.Context) ([]entity.Event, error) {
	var events []entity.Event
	if err := r.db.WithContext(ctx).Order("id").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *EventRepository) Delete(ctx context.Context, event *entity.Event) error {
	return r.db.WithContext(ctx).Delete(event).Error
}
