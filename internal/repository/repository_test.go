package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/lectoria/library-service/internal/errs"
	"github.com/lectoria/library-service/internal/model"
	"github.com/lectoria/library-service/internal/repository"
	"github.com/lectoria/library-service/migrations"
	"github.com/lectoria/library-service/pkg/postgres"
)

// setupRepo starts a throwaway postgres container, applies the embedded
// migrations and hands back a repository over it.
func setupRepo(t *testing.T) repository.Repository {
	t.Helper()
	if testing.Short() {
		t.Skip("requires docker")
	}
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:14-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	db, err := postgres.NewPostgresDB(ctx, postgres.Config{
		Host:            host,
		Port:            port.Port(),
		User:            "testuser",
		Password:        "testpass",
		Name:            "testdb",
		SSLMode:         "disable",
		MaxOpenConns:    5,
		ConnMaxLifetime: time.Minute,
	}, migrations.MigrationFiles)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo, err := repository.NewRepository(db, zap.NewNop())
	require.NoError(t, err)
	return repo
}

func seedUser(t *testing.T, repo repository.Repository, username string) model.User {
	t.Helper()
	user, err := repo.CreateUser(context.Background(), model.User{
		Username: username,
		FullName: "Test Reader",
		Password: "hash",
		Email:    username + "@example.com",
		IsActive: true,
	})
	require.NoError(t, err)
	return user
}

func seedBook(t *testing.T, repo repository.Repository, title string, stock int, categoryIDs ...int64) model.Book {
	t.Helper()
	book, err := repo.CreateBook(context.Background(), model.CreateBookRequest{
		Title:         title,
		Author:        "Test Author",
		ISBN:          "isbn-" + title,
		Pages:         100,
		PublishedYear: 2001,
		Stock:         &stock,
		CategoryIDs:   categoryIDs,
	})
	require.NoError(t, err)
	return book
}

func seedLoan(t *testing.T, repo repository.Repository, userID, bookID int64, loanDt, dueDate model.Date) model.Loan {
	t.Helper()
	loan, err := repo.CreateLoan(context.Background(), model.Loan{
		UserID:  userID,
		BookID:  bookID,
		LoanDt:  loanDt,
		DueDate: dueDate,
		Status:  model.LoanStatusActive,
	})
	require.NoError(t, err)
	return loan
}

func TestRepository_CreateLoan_insufficientStock(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	user := seedUser(t, repo, "reader")
	book := seedBook(t, repo, "Ficciones", 1)
	today := model.Today()

	// last copy goes out
	seedLoan(t, repo, user.ID, book.ID, today, today.AddDays(14))
	got, err := repo.GetBook(ctx, book.ID)
	require.NoError(t, err)
	require.Equal(t, 0, got.Stock)

	// second checkout is rejected without leaving a loan row behind
	_, err = repo.CreateLoan(ctx, model.Loan{
		UserID:  user.ID,
		BookID:  book.ID,
		LoanDt:  today,
		DueDate: today.AddDays(14),
		Status:  model.LoanStatusActive,
	})
	require.ErrorIs(t, err, errs.ErrInsufficientStock)

	loans, err := repo.ListLoans(ctx)
	require.NoError(t, err)
	require.Len(t, loans, 1)

	got, err = repo.GetBook(ctx, book.ID)
	require.NoError(t, err)
	require.Equal(t, 0, got.Stock)
}

func TestRepository_CreateLoan_unknownBook(t *testing.T) {
	repo := setupRepo(t)

	user := seedUser(t, repo, "reader")
	today := model.Today()

	_, err := repo.CreateLoan(context.Background(), model.Loan{
		UserID:  user.ID,
		BookID:  777,
		LoanDt:  today,
		DueDate: today.AddDays(14),
		Status:  model.LoanStatusActive,
	})
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestRepository_OverdueLoans_sweepIdempotent(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	user := seedUser(t, repo, "reader")
	today := model.Today()

	var overdueIDs []int64
	for i, daysLate := range []int{10, 3} {
		book := seedBook(t, repo, fmt.Sprintf("Late %d", i), 1)
		loan := seedLoan(t, repo, user.ID, book.ID,
			today.AddDays(-daysLate-14), today.AddDays(-daysLate))
		overdueIDs = append(overdueIDs, loan.ID)
	}
	currentBook := seedBook(t, repo, "Current", 1)
	current := seedLoan(t, repo, user.ID, currentBook.ID, today, today.AddDays(14))

	first, err := repo.OverdueLoans(ctx, today)
	require.NoError(t, err)
	require.Len(t, first, 2)
	// ordered by due date ascending: the 10-days-late loan comes first
	require.Equal(t, overdueIDs[0], first[0].ID)
	require.Equal(t, overdueIDs[1], first[1].ID)
	for _, loan := range first {
		require.Equal(t, model.LoanStatusOverdue, loan.Status)
	}

	second, err := repo.OverdueLoans(ctx, today)
	require.NoError(t, err)
	require.Equal(t, first, second)

	got, err := repo.GetLoan(ctx, current.ID)
	require.NoError(t, err)
	require.Equal(t, model.LoanStatusActive, got.Status)
}

func TestRepository_UpdateStock_guarded(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	book := seedBook(t, repo, "Rayuela", 3)

	got, err := repo.UpdateStock(ctx, book.ID, -1)
	require.NoError(t, err)
	require.Equal(t, 2, got.Stock)

	// would go negative: rejected, stock untouched
	_, err = repo.UpdateStock(ctx, book.ID, -3)
	require.ErrorIs(t, err, errs.ErrNegativeStock)

	got, err = repo.GetBook(ctx, book.ID)
	require.NoError(t, err)
	require.Equal(t, 2, got.Stock)

	_, err = repo.UpdateStock(ctx, 777, 5)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestRepository_ReturnLoan_cycle(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	user := seedUser(t, repo, "reader")
	book := seedBook(t, repo, "Pedro Paramo", 1)
	today := model.Today()
	loan := seedLoan(t, repo, user.ID, book.ID, today.AddDays(-20), today.AddDays(-5))

	fine := decimal.NewFromInt(25000)
	returned, applied, err := repo.ReturnLoan(ctx, loan.ID, today, &fine)
	require.NoError(t, err)
	require.True(t, applied)
	require.Equal(t, model.LoanStatusReturned, returned.Status)
	require.NotNil(t, returned.ReturnDt)
	require.Equal(t, today, *returned.ReturnDt)
	require.NotNil(t, returned.FineAmount)
	require.True(t, returned.FineAmount.Equal(fine))

	got, err := repo.GetBook(ctx, book.ID)
	require.NoError(t, err)
	require.Equal(t, 1, got.Stock)

	// repeating the return applies nothing and does not restock again
	again, applied, err := repo.ReturnLoan(ctx, loan.ID, today.AddDays(1), &fine)
	require.NoError(t, err)
	require.False(t, applied)
	require.Equal(t, returned.ID, again.ID)
	require.Equal(t, today, *again.ReturnDt)

	got, err = repo.GetBook(ctx, book.ID)
	require.NoError(t, err)
	require.Equal(t, 1, got.Stock)

	_, _, err = repo.ReturnLoan(ctx, 777, today, nil)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestRepository_BookCategories(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	novel, err := repo.CreateCategory(ctx, model.CreateCategoryRequest{Name: "Novel"})
	require.NoError(t, err)
	poetry, err := repo.CreateCategory(ctx, model.CreateCategoryRequest{Name: "Poetry"})
	require.NoError(t, err)

	book := seedBook(t, repo, "Rayuela", 1, novel.ID)

	books, err := repo.BooksByCategory(ctx, novel.ID)
	require.NoError(t, err)
	require.Len(t, books, 1)
	require.Equal(t, book.ID, books[0].ID)

	books, err = repo.BooksByCategory(ctx, poetry.ID)
	require.NoError(t, err)
	require.Empty(t, books)

	// a non-nil slice replaces the links
	_, err = repo.UpdateBook(ctx, book.ID, model.UpdateBookRequest{CategoryIDs: []int64{poetry.ID}})
	require.NoError(t, err)

	books, err = repo.BooksByCategory(ctx, novel.ID)
	require.NoError(t, err)
	require.Empty(t, books)

	books, err = repo.BooksByCategory(ctx, poetry.ID)
	require.NoError(t, err)
	require.Len(t, books, 1)

	// unknown category surfaces as not found via the FK
	_, err = repo.UpdateBook(ctx, book.ID, model.UpdateBookRequest{CategoryIDs: []int64{777}})
	require.ErrorIs(t, err, errs.ErrNotFound)
}
