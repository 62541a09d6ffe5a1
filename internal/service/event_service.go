package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"event-notifier/internal/model"
	"event-notifier/internal/repository"
)

// EventInput carries raw form fields for creating or updating an event.
// Dates arrive as YYYY-MM-DD strings and the category as its id.
type EventInput struct {
	Title       string
	Description string
	Location    string
	StartDate   string
	EndDate     string
	CategoryID  string
}

// EventService wraps event-related business logic.
type EventService struct {
	eventRepo    *repository.EventRepository
	categoryRepo *repository.CategoryRepository
}

func NewEventService(eventRepo *repository.EventRepository, categoryRepo *repository.CategoryRepository) *EventService {
	return &EventService{eventRepo: eventRepo, categoryRepo: categoryRepo}
}

// parseInput validates the raw form fields and builds an event row from
// them. All checks run before anything touches the store, so a rejected
// input never leaves a half-written event behind.
func (s *EventService) parseInput(ctx context.Context, input EventInput) (*model.Event, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, validationf("제목을 입력해주세요.")
	}

	location := strings.TrimSpace(input.Location)
	if location == "" {
		return nil, validationf("장소를 입력해주세요.")
	}

	start, err := model.ParseDate(input.StartDate)
	if err != nil {
		return nil, validationf("시작일은 YYYY-MM-DD 형식이어야 합니다.")
	}
	end, err := model.ParseDate(input.EndDate)
	if err != nil {
		return nil, validationf("종료일은 YYYY-MM-DD 형식이어야 합니다.")
	}

	categoryID, err := strconv.ParseUint(strings.TrimSpace(input.CategoryID), 10, 32)
	if err != nil {
		return nil, validationf("카테고리를 선택해주세요.")
	}
	category, err := s.categoryRepo.GetByID(ctx, uint(categoryID))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, validationf("존재하지 않는 카테고리입니다.")
	}
	if err != nil {
		return nil, err
	}

	return &model.Event{
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Location:    location,
		StartDate:   start,
		EndDate:     end,
		CategoryID:  category.ID,
	}, nil
}

func (s *EventService) Create(ctx context.Context, input EventInput) (*model.Event, error) {
	event, err := s.parseInput(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// ListCurrent returns events that have not ended before the given moment's
// calendar date, soonest start first.
func (s *EventService) ListCurrent(ctx context.Context, now time.Time) ([]model.Event, error) {
	return s.eventRepo.ListEndingOnOrAfter(ctx, model.DateOf(now))
}

func (s *EventService) Get(ctx context.Context, id uint) (*model.Event, error) {
	return s.eventRepo.FindByID(ctx, id)
}

// Update replaces every user-editable field of an existing event. Missing
// events report gorm.ErrRecordNotFound; invalid input reports a
// ValidationError before any write happens.
func (s *EventService) Update(ctx context.Context, id uint, input EventInput) (*model.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	parsed, err := s.parseInput(ctx, input)
	if err != nil {
		return nil, err
	}

	event.Title = parsed.Title
	event.Description = parsed.Description
	event.Location = parsed.Location
	event.StartDate = parsed.StartDate
	event.EndDate = parsed.EndDate
	event.CategoryID = parsed.CategoryID

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *EventService) Delete(ctx context.Context, id uint) error {
	return s.eventRepo.Delete(ctx, id)
}
