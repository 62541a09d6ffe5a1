package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"event-notifier/internal/model"
)

// EventRepository handles CRUD for events.
type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, event *model.Event) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

// ListEndingOnOrAfter returns events still running on the given day or
// later, soonest start first. day must be a midnight-UTC calendar date.
func (r *EventRepository) ListEndingOnOrAfter(ctx context.Context, day time.Time) ([]model.Event, error) {
	var events []model.Event
	if err := r.db.WithContext(ctx).Where("end_date >= ?", day).
		Order("start_date ASC").
		Find(&events).Error; err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (r *EventRepository) FindByID(ctx context.Context, id uint) (*model.Event, error) {
	var event model.Event
	if err := r.db.WithContext(ctx).First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// Update writes the full row back in a single statement, so a failed update
// never leaves a partially changed event behind.
func (r *EventRepository) Update(ctx context.Context, event *model.Event) error {
	if err := r.db.WithContext(ctx).Save(event).Error; err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	return nil
}

// Delete removes one event. A missing id reports gorm.ErrRecordNotFound so
// callers can answer "not found" instead of pretending success.
func (r *EventRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Event{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete event: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
