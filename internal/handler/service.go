package handler

import (
	"context"

	"github.com/lectoria/library-service/internal/model"
)

//go:generate mockgen -source=service.go -destination=mocks/mock.go -package=mocks

type BookService interface {
	ListBooks(ctx context.Context) ([]model.Book, error)
	GetBook(ctx context.Context, id int64) (model.Book, error)
	CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error)
	UpdateBook(ctx context.Context, id int64, req model.UpdateBookRequest) (model.Book, error)
	DeleteBook(ctx context.Context, id int64) error
	AvailableBooks(ctx context.Context) ([]model.Book, error)
	BooksByCategory(ctx context.Context, categoryID int64) ([]model.Book, error)
	MostReviewedBooks(ctx context.Context, limit int) ([]model.Book, error)
	BooksWithNegativeReviews(ctx context.Context, minCount int) ([]model.Book, error)
	SearchByAuthor(ctx context.Context, author string) ([]model.Book, error)
	SearchByTitle(ctx context.Context, title string) ([]model.Book, error)
	BooksByYearRange(ctx context.Context, from, to int) ([]model.Book, error)
	RecentBooks(ctx context.Context, limit int) ([]model.Book, error)
	BookStats(ctx context.Context) (model.BookStats, error)
	UpdateStock(ctx context.Context, bookID int64, quantity int) (model.Book, error)
}

type UserService interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	GetUser(ctx context.Context, id int64) (model.User, error)
	CreateUser(ctx context.Context, req model.CreateUserRequest) (model.User, error)
	UpdateUser(ctx context.Context, id int64, req model.UpdateUserRequest) (model.User, error)
	UpdatePassword(ctx context.Context, id int64, req model.UpdatePasswordRequest) error
	DeleteUser(ctx context.Context, id int64) error
}

type CategoryService interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	GetCategory(ctx context.Context, id int64) (model.Category, error)
	CreateCategory(ctx context.Context, req model.CreateCategoryRequest) (model.Category, error)
	UpdateCategory(ctx context.Context, id int64, req model.UpdateCategoryRequest) (model.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}

type ReviewService interface {
	ListReviews(ctx context.Context) ([]model.Review, error)
	GetReview(ctx context.Context, id int64) (model.Review, error)
	CreateReview(ctx context.Context, req model.CreateReviewRequest) (model.Review, error)
	UpdateReview(ctx context.Context, id int64, req model.UpdateReviewRequest) (model.Review, error)
	DeleteReview(ctx context.Context, id int64) error
}

type LoanService interface {
	ListLoans(ctx context.Context) ([]model.Loan, error)
	GetLoan(ctx context.Context, id int64) (model.Loan, error)
	CreateLoan(ctx context.Context, req model.CreateLoanRequest) (model.Loan, error)
	ReturnLoan(ctx context.Context, id int64) (model.Loan, error)
	UpdateLoan(ctx context.Context, id int64, req model.UpdateLoanRequest) (model.Loan, error)
	DeleteLoan(ctx context.Context, id int64) error
	ActiveLoans(ctx context.Context, userID int64) ([]model.Loan, error)
	OverdueLoans(ctx context.Context) ([]model.Loan, error)
	LoanHistory(ctx context.Context, userID int64) ([]model.Loan, error)
}

type AuthService interface {
	Login(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error)
}
