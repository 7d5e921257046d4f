package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lectoria/library-service/internal/errs"
	"github.com/lectoria/library-service/internal/handler"
	service_mocks "github.com/lectoria/library-service/internal/handler/mocks"
	"github.com/lectoria/library-service/internal/model"
	"github.com/lectoria/library-service/pkg/validate"
)

func newLoanRouter(t *testing.T) (*echo.Echo, *service_mocks.MockLoanService) {
	t.Helper()
	c := gomock.NewController(t)
	t.Cleanup(c.Finish)
	svc := service_mocks.NewMockLoanService(c)
	log := zap.NewExample().Named("test")
	h := handler.New(handler.Services{Loan: svc}, []byte("test-key"), log)

	e := echo.New()
	e.Validator = validate.NewCustomValidator()
	e.POST("/loans", h.CreateLoan)
	e.POST("/loans/:id/return", h.ReturnLoan)
	e.GET("/loans/overdue", h.OverdueLoans)
	e.GET("/loans/active/:userId", h.ActiveLoans)
	e.GET("/loans/user/:userId/history", h.LoanHistory)
	return e, svc
}

func TestHandler_CreateLoan(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockLoanService)

	loanDt := model.NewDate(2024, 1, 1)

	var tests = []struct {
		name         string
		body         string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "ok",
			body: `{"userId":1,"bookId":2,"loanDt":"2024-01-01"}`,
			mockBehavior: func(r *service_mocks.MockLoanService) {
				r.EXPECT().
					CreateLoan(context.Background(), model.CreateLoanRequest{
						UserID: 1,
						BookID: 2,
						LoanDt: &loanDt,
					}).
					Return(model.Loan{
						ID:      10,
						UserID:  1,
						BookID:  2,
						LoanDt:  loanDt,
						DueDate: loanDt.AddDays(14),
						Status:  model.LoanStatusActive,
					}, nil)
			},
			response: response{
				expectedCode: http.StatusCreated,
				expectedBody: `{"id":10,"userId":1,"bookId":2,"loanDt":"2024-01-01","dueDate":"2024-01-15","returnDt":null,"fineAmount":null,"status":"ACTIVE"}`,
			},
		},
		{
			name: "err. no stock",
			body: `{"userId":1,"bookId":2}`,
			mockBehavior: func(r *service_mocks.MockLoanService) {
				r.EXPECT().
					CreateLoan(context.Background(), model.CreateLoanRequest{UserID: 1, BookID: 2}).
					Return(model.Loan{}, errs.ErrInsufficientStock)
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"no stock available for this book"}`,
			},
		},
		{
			name: "err. book not found",
			body: `{"userId":1,"bookId":777}`,
			mockBehavior: func(r *service_mocks.MockLoanService) {
				r.EXPECT().
					CreateLoan(context.Background(), model.CreateLoanRequest{UserID: 1, BookID: 777}).
					Return(model.Loan{}, errs.ErrNotFound)
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"not found"}`,
			},
		},
		{
			name:         "err. bookId required",
			body:         `{"userId":1}`,
			mockBehavior: func(r *service_mocks.MockLoanService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e, svc := newLoanRouter(t)
			tt.mockBehavior(svc)

			r := httptest.NewRequest(http.MethodPost, "/loans", strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			if tt.response.expectedBody != "" {
				require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
		})
	}
}

func TestHandler_ReturnLoan(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockLoanService)

	var (
		loanDt   = model.NewDate(2024, 1, 1)
		dueDate  = model.NewDate(2024, 1, 15)
		returnDt = model.NewDate(2024, 1, 20)
		fine     = decimal.RequireFromString("25000")
	)

	var tests = []struct {
		name         string
		target       string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name:   "ok. overdue return with fine",
			target: "/loans/10/return",
			mockBehavior: func(r *service_mocks.MockLoanService) {
				r.EXPECT().
					ReturnLoan(context.Background(), int64(10)).
					Return(model.Loan{
						ID:         10,
						UserID:     1,
						BookID:     2,
						LoanDt:     loanDt,
						DueDate:    dueDate,
						ReturnDt:   &returnDt,
						FineAmount: &fine,
						Status:     model.LoanStatusReturned,
					}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"id":10,"userId":1,"bookId":2,"loanDt":"2024-01-01","dueDate":"2024-01-15","returnDt":"2024-01-20","fineAmount":"25000","status":"RETURNED"}`,
			},
		},
		{
			name:   "ok. on-time return without fine",
			target: "/loans/11/return",
			mockBehavior: func(r *service_mocks.MockLoanService) {
				ret := model.NewDate(2024, 1, 10)
				r.EXPECT().
					ReturnLoan(context.Background(), int64(11)).
					Return(model.Loan{
						ID:       11,
						UserID:   1,
						BookID:   2,
						LoanDt:   loanDt,
						DueDate:  dueDate,
						ReturnDt: &ret,
						Status:   model.LoanStatusReturned,
					}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"id":11,"userId":1,"bookId":2,"loanDt":"2024-01-01","dueDate":"2024-01-15","returnDt":"2024-01-10","fineAmount":null,"status":"RETURNED"}`,
			},
		},
		{
			name:   "err. loan not found",
			target: "/loans/777/return",
			mockBehavior: func(r *service_mocks.MockLoanService) {
				r.EXPECT().
					ReturnLoan(context.Background(), int64(777)).
					Return(model.Loan{}, errs.ErrNotFound)
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"not found"}`,
			},
		},
		{
			name:         "err. id invalid",
			target:       "/loans/abc/return",
			mockBehavior: func(r *service_mocks.MockLoanService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"id is invalid"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e, svc := newLoanRouter(t)
			tt.mockBehavior(svc)

			r := httptest.NewRequest(http.MethodPost, tt.target, http.NoBody)
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			if tt.response.expectedBody != "" {
				require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
		})
	}
}

func TestHandler_OverdueLoans(t *testing.T) {
	t.Parallel()

	e, svc := newLoanRouter(t)
	svc.EXPECT().
		OverdueLoans(context.Background()).
		Return([]model.Loan{
			{
				ID:      1,
				UserID:  1,
				BookID:  2,
				LoanDt:  model.NewDate(2024, 1, 1),
				DueDate: model.NewDate(2024, 1, 15),
				Status:  model.LoanStatusOverdue,
			},
			{
				ID:      2,
				UserID:  3,
				BookID:  4,
				LoanDt:  model.NewDate(2024, 1, 10),
				DueDate: model.NewDate(2024, 1, 24),
				Status:  model.LoanStatusOverdue,
			},
		}, nil)

	r := httptest.NewRequest(http.MethodGet, "/loans/overdue", http.NoBody)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t,
		`[{"id":1,"userId":1,"bookId":2,"loanDt":"2024-01-01","dueDate":"2024-01-15","returnDt":null,"fineAmount":null,"status":"OVERDUE"},`+
			`{"id":2,"userId":3,"bookId":4,"loanDt":"2024-01-10","dueDate":"2024-01-24","returnDt":null,"fineAmount":null,"status":"OVERDUE"}]`,
		strings.Trim(w.Body.String(), "\n"))
}

func TestHandler_ActiveLoans(t *testing.T) {
	t.Parallel()

	e, svc := newLoanRouter(t)
	svc.EXPECT().
		ActiveLoans(context.Background(), int64(5)).
		Return([]model.Loan{}, nil)

	r := httptest.NewRequest(http.MethodGet, "/loans/active/5", http.NoBody)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, `[]`, strings.Trim(w.Body.String(), "\n"))
}
