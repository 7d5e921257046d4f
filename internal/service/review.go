package service

import (
	"context"

	"github.com/lectoria/library-service/internal/model"
)

func (s *Service) ListReviews(ctx context.Context) ([]model.Review, error) {
	return s.repo.ListReviews(ctx)
}

func (s *Service) GetReview(ctx context.Context, id int64) (model.Review, error) {
	return s.repo.GetReview(ctx, id)
}

func (s *Service) CreateReview(ctx context.Context, req model.CreateReviewRequest) (model.Review, error) {
	reviewDate := model.DateOf(s.nowFunc())
	if req.ReviewDate != nil {
		reviewDate = *req.ReviewDate
	}
	return s.repo.CreateReview(ctx, model.Review{
		Rating:     req.Rating,
		Comment:    req.Comment,
		ReviewDate: reviewDate,
		UserID:     req.UserID,
		BookID:     req.BookID,
	})
}

func (s *Service) UpdateReview(ctx context.Context, id int64, req model.UpdateReviewRequest) (model.Review, error) {
	return s.repo.UpdateReview(ctx, id, req)
}

func (s *Service) DeleteReview(ctx context.Context, id int64) error {
	return s.repo.DeleteReview(ctx, id)
}
