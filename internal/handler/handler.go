package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/lectoria/library-service/internal/errs"
	md "github.com/lectoria/library-service/pkg/middleware"
	"github.com/lectoria/library-service/pkg/validate"
)

type Handler struct {
	bookSvc     BookService
	userSvc     UserService
	categorySvc CategoryService
	reviewSvc   ReviewService
	loanSvc     LoanService
	authSvc     AuthService
	jwtKey      []byte
	log         *zap.Logger
}

type Services struct {
	Book     BookService
	User     UserService
	Category CategoryService
	Review   ReviewService
	Loan     LoanService
	Auth     AuthService
}

func New(svcs Services, jwtKey []byte, log *zap.Logger) *Handler {
	return &Handler{
		bookSvc:     svcs.Book,
		userSvc:     svcs.User,
		categorySvc: svcs.Category,
		reviewSvc:   svcs.Review,
		loanSvc:     svcs.Loan,
		authSvc:     svcs.Auth,
		jwtKey:      jwtKey,
		log:         log,
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig()),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
	)

	api.POST("/auth/login", h.Login)

	jwtMW := md.JwtAuthentication(h.jwtKey)

	api.GET("/books", h.ListBooks)
	api.POST("/books", h.CreateBook)
	api.GET("/books/available", h.AvailableBooks)
	api.GET("/books/most-reviewed", h.MostReviewedBooks)
	api.GET("/books/negative-reviews", h.BooksWithNegativeReviews)
	api.GET("/books/by-author", h.SearchByAuthor)
	api.GET("/books/search", h.SearchByTitle)
	api.GET("/books/filter", h.BooksByYearRange)
	api.GET("/books/recent", h.RecentBooks)
	api.GET("/books/stats", h.BookStats)
	api.GET("/books/by-category/:categoryId", h.BooksByCategory)
	api.GET("/books/:id", h.GetBook)
	api.PATCH("/books/:id", h.UpdateBook)
	api.DELETE("/books/:id", h.DeleteBook)
	api.PATCH("/books/:id/stock", h.UpdateStock)

	api.GET("/users", h.ListUsers, jwtMW)
	api.POST("/users", h.CreateUser)
	api.GET("/users/:id", h.GetUser, jwtMW)
	api.PATCH("/users/:id", h.UpdateUser, jwtMW)
	api.DELETE("/users/:id", h.DeleteUser, jwtMW)
	api.POST("/users/:id/password", h.UpdatePassword, jwtMW)

	api.GET("/categories", h.ListCategories)
	api.POST("/categories", h.CreateCategory)
	api.GET("/categories/:id", h.GetCategory)
	api.PATCH("/categories/:id", h.UpdateCategory)
	api.DELETE("/categories/:id", h.DeleteCategory)

	api.GET("/reviews", h.ListReviews)
	api.POST("/reviews", h.CreateReview)
	api.GET("/reviews/:id", h.GetReview)
	api.PATCH("/reviews/:id", h.UpdateReview)
	api.DELETE("/reviews/:id", h.DeleteReview)

	api.GET("/loans", h.ListLoans)
	api.POST("/loans", h.CreateLoan)
	api.GET("/loans/overdue", h.OverdueLoans)
	api.GET("/loans/active/:userId", h.ActiveLoans)
	api.GET("/loans/user/:userId/history", h.LoanHistory)
	api.GET("/loans/:id", h.GetLoan)
	api.PATCH("/loans/:id", h.UpdateLoan)
	api.DELETE("/loans/:id", h.DeleteLoan)
	api.POST("/loans/:id/return", h.ReturnLoan)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// svcError maps domain sentinels onto HTTP status codes.
func svcError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrInsufficientStock), errors.Is(err, errs.ErrNegativeStock):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, errs.ErrBadCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, errors.Errorf("%s is invalid", name).Error())
	}
	return id, nil
}
