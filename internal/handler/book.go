package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/lectoria/library-service/internal/model"
)

func (h *Handler) ListBooks(c echo.Context) error {
	books, err := h.bookSvc.ListBooks(c.Request().Context())
	if err != nil {
		return svcError(err)
	}
	return c.JSON(http.StatusOK, books)
}

func (h *Handler) GetBook(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	book, err := h.bookSvc.GetBook(c.Request().Context(), id)
	if err != nil {
		return svcError(err)
	}
	return c.JSON(http.StatusOK, book)
}

func (h *Handler) CreateBook(c echo.Context) error {
	var req model.CreateBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	// Absent stock defaults to a single copy; an explicit zero is rejected.
	if req.Stock == nil {
		one := 1
		req.Stock = &one
	} else if *req.Stock <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "stock must be greater than 0")
	}
	if req.PublishedYear > time.Now().Year() {
		return echo.NewHTTPError(http.StatusBadRequest, "publishedYear must not be in the future")
	}
	book, err := h.bookSvc.CreateBook(c.Request().Context(), req)
	if err != nil {
		return svcError(err)
	}
	return c.JSON(http.StatusCreated, book)
}

func (h *Handler) UpdateBook(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req model.UpdateBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	if req.PublishedYear != nil && *req.PublishedYear > time.Now().Year() {
		return echo.NewHTTPError(http.StatusBadRequest, "publishedYear must not be in the future")
	}
	book, err := h.bookSvc.UpdateBook(c.Request().Context(), id, req)
	if err != nil {
		return svcError(err)
	}
	return c.JSON(http.StatusOK, book)
}

func (h *Handler) DeleteBook(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.bookSvc.DeleteBook(c.Request().Context(), id); err != nil {
		return svcError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) AvailableBooks(c echo.Context) error {
	books, err := h.bookSvc.AvailableBooks(c.Request().Context())
	if err != nil {
		return svcError(err)
	}
	return c.JSON(http.StatusOK, books)
}

func (h *Handler) BooksByCategory(c echo.Context) error {
	categoryID, err := pathID(c, "categoryId")
	if err != nil {
		return err
	}
	books, err := h.bookSvc.BooksByCategory(c.Request().Context(), categoryID)
	if err != nil {
		return svcError(err)
	}
	return c.JSON(http.StatusOK, books)
}

func (h *Handler) MostReviewedBooks(c echo.Context) error {
	limit, err := queryInt(c, "limit", 10)
	if err != nil {
		return err
	}
	books, err := h.bookSvc.MostReviewedBooks(c.Request().Context(), limit)
	if err != nil {
		return svcError(err)
	}
	return c.JSON(http.StatusOK, books)
}

func (h *Handler) BooksWithNegativeReviews(c echo.Context) error {
	minCount, err := queryInt(c, "minCount", 1)
	if err != nil {
		return err
	}
	books, err := h.bookSvc.BooksWithNegativeReviews(c.Request().Context(), minCount)
	if err != nil {
		return svcError(err)
	}
	return c.JSON(http.StatusOK, books)
}

func (h *Handler) SearchByAuthor(c echo.Context) error {
	author := c.QueryParam("author")
	if author == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "author is required")
	}
	books, err := h.bookSvc.SearchByAuthor(c.Request().Context(), author)
	if err != nil {
		return svcError(err)
	}
	return c.JSON(http.StatusOK, books)
}

func (h *Handler) SearchByTitle(c echo.Context) error {
	title := c.QueryParam("title")
	if title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}
	books, err := h.bookSvc.SearchByTitle(c.Request().Context(), title)
	if err != nil {
		return svcError(err)
	}
	return c.JSON(http.StatusOK, books)
}

func (h *Handler) BooksByYearRange(c echo.Context) error {
	from, err := queryInt(c, "from", 0)
	if err != nil {
		return err
	}
	to, err := queryInt(c, "to", 0)
	if err != nil {
		return err
	}
	if from == 0 || to == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "from and to are required")
	}
	books, err := h.bookSvc.BooksByYearRange(c.Request().Context(), from, to)
	if err != nil {
		return svcError(err)
	}
	return c.JSON(http.StatusOK, books)
}

func (h *Handler) RecentBooks(c echo.Context) error {
	limit, err := queryInt(c, "limit", 10)
	if err != nil {
		return err
	}
	books, err := h.bookSvc.RecentBooks(c.Request().Context(), limit)
	if err != nil {
		return svcError(err)
	}
	return c.JSON(http.StatusOK, books)
}

func (h *Handler) BookStats(c echo.Context) error {
	stats, err := h.bookSvc.BookStats(c.Request().Context())
	if err != nil {
		return svcError(err)
	}
	return c.JSON(http.StatusOK, stats)
}

// UpdateStock adjusts a book's stock by a signed quantity.
func (h *Handler) UpdateStock(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req model.UpdateStockRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	book, err := h.bookSvc.UpdateStock(c.Request().Context(), id, req.Quantity)
	if err != nil {
		return svcError(err)
	}
	return c.JSON(http.StatusOK, book)
}

func queryInt(c echo.Context, name string, def int) (int, error) {
	param := c.QueryParam(name)
	if param == "" {
		return def, nil
	}
	v, err := strconv.Atoi(param)
	if err != nil || v < 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, errors.Errorf("%s is invalid", name).Error())
	}
	return v, nil
}
