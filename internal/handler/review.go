package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lectoria/library-service/internal/model"
)

func (h *Handler) ListReviews(c echo.Context) error {
	reviews, err := h.reviewSvc.ListReviews(c.Request().Context())
	if err != nil {
		return svcError(err)
	}
	return c.JSON(http.StatusOK, reviews)
}

func (h *Handler) GetReview(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	review, err := h.reviewSvc.GetReview(c.Request().Context(), id)
	if err != nil {
		return svcError(err)
	}
	return c.JSON(http.StatusOK, review)
}

func (h *Handler) CreateReview(c echo.Context) error {
	var req model.CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	review, err := h.reviewSvc.CreateReview(c.Request().Context(), req)
	if err != nil {
		return svcError(err)
	}
	return c.JSON(http.StatusCreated, review)
}

func (h *Handler) UpdateReview(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req model.UpdateReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	review, err := h.reviewSvc.UpdateReview(c.Request().Context(), id, req)
	if err != nil {
		return svcError(err)
	}
	return c.JSON(http.StatusOK, review)
}

func (h *Handler) DeleteReview(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.reviewSvc.DeleteReview(c.Request().Context(), id); err != nil {
		return svcError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
