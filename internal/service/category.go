package service

import (
	"context"

	"github.com/lectoria/library-service/internal/model"
)

func (s *Service) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *Service) GetCategory(ctx context.Context, id int64) (model.Category, error) {
	return s.repo.GetCategory(ctx, id)
}

func (s *Service) CreateCategory(ctx context.Context, req model.CreateCategoryRequest) (model.Category, error) {
	return s.repo.CreateCategory(ctx, req)
}

func (s *Service) UpdateCategory(ctx context.Context, id int64, req model.UpdateCategoryRequest) (model.Category, error) {
	return s.repo.UpdateCategory(ctx, id, req)
}

func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	return s.repo.DeleteCategory(ctx, id)
}
