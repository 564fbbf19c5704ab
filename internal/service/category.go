package service

import (
	"context"

	"github.com/eventlane/eventlane/internal/domain"
	"github.com/eventlane/eventlane/internal/store"
)

type CategoryService struct {
	Store store.Store
}

// ListCategories returns the category catalogue.
func (s *CategoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.Store.Categories().ListCategories(ctx)
}
