package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/lectoria/library-service/internal/errs"
	"github.com/lectoria/library-service/internal/model"
)

type BookRepository interface {
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

type UserRepository interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	GetUser(ctx context.Context, id int64) (model.User, error)
	GetUserByUsername(ctx context.Context, username string) (model.User, error)
	CreateUser(ctx context.Context, user model.User) (model.User, error)
	UpdateUser(ctx context.Context, id int64, req model.UpdateUserRequest) (model.User, error)
	UpdateUserPassword(ctx context.Context, id int64, hashed string) error
	DeleteUser(ctx context.Context, id int64) error
}

type CategoryRepository interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	GetCategory(ctx context.Context, id int64) (model.Category, error)
	CreateCategory(ctx context.Context, req model.CreateCategoryRequest) (model.Category, error)
	UpdateCategory(ctx context.Context, id int64, req model.UpdateCategoryRequest) (model.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}

type ReviewRepository interface {
	ListReviews(ctx context.Context) ([]model.Review, error)
	GetReview(ctx context.Context, id int64) (model.Review, error)
	CreateReview(ctx context.Context, review model.Review) (model.Review, error)
	UpdateReview(ctx context.Context, id int64, req model.UpdateReviewRequest) (model.Review, error)
	DeleteReview(ctx context.Context, id int64) error
}

type LoanRepository interface {
	ListLoans(ctx context.Context) ([]model.Loan, error)
	GetLoan(ctx context.Context, id int64) (model.Loan, error)
	CreateLoan(ctx context.Context, loan model.Loan) (model.Loan, error)
	ReturnLoan(ctx context.Context, id int64, returnDt model.Date, fine *decimal.Decimal) (model.Loan, bool, error)
	UpdateLoanStatus(ctx context.Context, id int64, status model.LoanStatus) (model.Loan, error)
	DeleteLoan(ctx context.Context, id int64) error
	ActiveLoans(ctx context.Context, userID int64) ([]model.Loan, error)
	OverdueLoans(ctx context.Context, today model.Date) ([]model.Loan, error)
	LoanHistory(ctx context.Context, userID int64) ([]model.Loan, error)
}

type Repository interface {
	BookRepository
	UserRepository
	CategoryRepository
	ReviewRepository
	LoanRepository
}

type repository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewRepository(db *sqlx.DB, log *zap.Logger) (*repository, error) {
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

const (
	usersTableName          = `users`
	booksTableName          = `books`
	categoriesTableName     = `categories`
	bookCategoriesTableName = `book_categories`
	loansTableName          = `loans`
	reviewsTableName        = `reviews`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// wrapDBError translates store-level failures into domain sentinels:
// missing rows become ErrNotFound, unique violations become ErrConflict.
func wrapDBError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return errs.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return errors.Wrap(errs.ErrConflict, pgErr.ConstraintName)
		case pgerrcode.ForeignKeyViolation:
			return errors.Wrap(errs.ErrNotFound, pgErr.ConstraintName)
		}
	}
	return err
}
