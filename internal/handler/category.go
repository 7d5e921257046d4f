package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lectoria/library-service/internal/model"
)

func (h *Handler) ListCategories(c echo.Context) error {
	categories, err := h.categorySvc.ListCategories(c.Request().Context())
	if err != nil {
		return svcError(err)
	}
	return c.JSON(http.StatusOK, categories)
}

func (h *Handler) GetCategory(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	category, err := h.categorySvc.GetCategory(c.Request().Context(), id)
	if err != nil {
		return svcError(err)
	}
	return c.JSON(http.StatusOK, category)
}

func (h *Handler) CreateCategory(c echo.Context) error {
	var req model.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	category, err := h.categorySvc.CreateCategory(c.Request().Context(), req)
	if err != nil {
		return svcError(err)
	}
	return c.JSON(http.StatusCreated, category)
}

func (h *Handler) UpdateCategory(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req model.UpdateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	category, err := h.categorySvc.UpdateCategory(c.Request().Context(), id, req)
	if err != nil {
		return svcError(err)
	}
	return c.JSON(http.StatusOK, category)
}

func (h *Handler) DeleteCategory(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.categorySvc.DeleteCategory(c.Request().Context(), id); err != nil {
		return svcError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
