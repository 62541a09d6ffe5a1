package service

import (
	"context"

	"event-notifier/internal/model"
	"event-notifier/internal/repository"
)

// CategoryService provides read helpers around the fixed category catalog.
type CategoryService struct {
	repo *repository.CategoryRepository
}

func NewCategoryService(repo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.repo.List(ctx)
}

// Names returns a lookup of category id to name for rendering.
func (s *CategoryService) Names(ctx context.Context) (map[uint]string, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(categories))
	for _, category := range categories {
		names[category.ID] = category.Name
	}
	return names, nil
}
