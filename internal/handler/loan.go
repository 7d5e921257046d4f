package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lectoria/library-service/internal/model"
)

func (h *Handler) ListLoans(c echo.Context) error {
	loans, err := h.loanSvc.ListLoans(c.Request().Context())
	if err != nil {
		return svcError(err)
	}
	return c.JSON(http.StatusOK, loans)
}

func (h *Handler) GetLoan(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	loan, err := h.loanSvc.GetLoan(c.Request().Context(), id)
	if err != nil {
		return svcError(err)
	}
	return c.JSON(http.StatusOK, loan)
}

func (h *Handler) CreateLoan(c echo.Context) error {
	var req model.CreateLoanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	loan, err := h.loanSvc.CreateLoan(c.Request().Context(), req)
	if err != nil {
		return svcError(err)
	}
	return c.JSON(http.StatusCreated, loan)
}

func (h *Handler) ReturnLoan(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	loan, err := h.loanSvc.ReturnLoan(c.Request().Context(), id)
	if err != nil {
		return svcError(err)
	}
	return c.JSON(http.StatusOK, loan)
}

func (h *Handler) UpdateLoan(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req model.UpdateLoanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	loan, err := h.loanSvc.UpdateLoan(c.Request().Context(), id, req)
	if err != nil {
		return svcError(err)
	}
	return c.JSON(http.StatusOK, loan)
}

func (h *Handler) DeleteLoan(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.loanSvc.DeleteLoan(c.Request().Context(), id); err != nil {
		return svcError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ActiveLoans(c echo.Context) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return err
	}
	loans, err := h.loanSvc.ActiveLoans(c.Request().Context(), userID)
	if err != nil {
		return svcError(err)
	}
	return c.JSON(http.StatusOK, loans)
}

// OverdueLoans runs the overdue sweep and reports the resulting set,
// ordered by due date ascending.
func (h *Handler) OverdueLoans(c echo.Context) error {
	loans, err := h.loanSvc.OverdueLoans(c.Request().Context())
	if err != nil {
		return svcError(err)
	}
	return c.JSON(http.StatusOK, loans)
}

func (h *Handler) LoanHistory(c echo.Context) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return err
	}
	loans, err := h.loanSvc.LoanHistory(c.Request().Context(), userID)
	if err != nil {
		return svcError(err)
	}
	return c.JSON(http.StatusOK, loans)
}
