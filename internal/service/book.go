package service

import (
	"context"

	"github.com/lectoria/library-service/internal/model"
)

func (s *Service) ListBooks(ctx context.Context) ([]model.Book, error) {
	return s.repo.ListBooks(ctx)
}

func (s *Service) GetBook(ctx context.Context, id int64) (model.Book, error) {
	return s.repo.GetBook(ctx, id)
}

func (s *Service) CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error) {
	return s.repo.CreateBook(ctx, req)
}

func (s *Service) UpdateBook(ctx context.Context, id int64, req model.UpdateBookRequest) (model.Book, error) {
	return s.repo.UpdateBook(ctx, id, req)
}

func (s *Service) DeleteBook(ctx context.Context, id int64) error {
	return s.repo.DeleteBook(ctx, id)
}

func (s *Service) AvailableBooks(ctx context.Context) ([]model.Book, error) {
	return s.repo.AvailableBooks(ctx)
}

func (s *Service) BooksByCategory(ctx context.Context, categoryID int64) ([]model.Book, error) {
	return s.repo.BooksByCategory(ctx, categoryID)
}

func (s *Service) MostReviewedBooks(ctx context.Context, limit int) ([]model.Book, error) {
	return s.repo.MostReviewedBooks(ctx, limit)
}

func (s *Service) BooksWithNegativeReviews(ctx context.Context, minCount int) ([]model.Book, error) {
	return s.repo.BooksWithNegativeReviews(ctx, minCount)
}

func (s *Service) SearchByAuthor(ctx context.Context, author string) ([]model.Book, error) {
	return s.repo.SearchByAuthor(ctx, author)
}

func (s *Service) SearchByTitle(ctx context.Context, title string) ([]model.Book, error) {
	return s.repo.SearchByTitle(ctx, title)
}

func (s *Service) BooksByYearRange(ctx context.Context, from, to int) ([]model.Book, error) {
	return s.repo.BooksByYearRange(ctx, from, to)
}

func (s *Service) RecentBooks(ctx context.Context, limit int) ([]model.Book, error) {
	return s.repo.RecentBooks(ctx, limit)
}

func (s *Service) BookStats(ctx context.Context) (model.BookStats, error) {
	return s.repo.BookStats(ctx)
}

func (s *Service) UpdateStock(ctx context.Context, bookID int64, quantity int) (model.Book, error) {
	return s.repo.UpdateStock(ctx, bookID, quantity)
}
