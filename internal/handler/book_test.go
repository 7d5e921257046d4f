package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lectoria/library-service/internal/errs"
	"github.com/lectoria/library-service/internal/handler"
	service_mocks "github.com/lectoria/library-service/internal/handler/mocks"
	"github.com/lectoria/library-service/internal/model"
	"github.com/lectoria/library-service/pkg/validate"
)

func newBookRouter(t *testing.T) (*echo.Echo, *service_mocks.MockBookService) {
	t.Helper()
	c := gomock.NewController(t)
	t.Cleanup(c.Finish)
	svc := service_mocks.NewMockBookService(c)
	log := zap.NewExample().Named("test")
	h := handler.New(handler.Services{Book: svc}, []byte("test-key"), log)

	e := echo.New()
	e.Validator = validate.NewCustomValidator()
	e.POST("/books", h.CreateBook)
	e.GET("/books/most-reviewed", h.MostReviewedBooks)
	e.GET("/books/stats", h.BookStats)
	e.PATCH("/books/:id/stock", h.UpdateStock)
	return e, svc
}

func TestHandler_UpdateStock(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockBookService)

	var tests = []struct {
		name         string
		target       string
		body         string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name:   "ok. decrement",
			target: "/books/1/stock",
			body:   `{"quantity":-3}`,
			mockBehavior: func(r *service_mocks.MockBookService) {
				r.EXPECT().
					UpdateStock(context.Background(), int64(1), -3).
					Return(model.Book{
						ID:            1,
						Title:         "Cien anos de soledad",
						Author:        "Gabriel Garcia Marquez",
						ISBN:          "978-84-376-0494-7",
						Pages:         471,
						PublishedYear: 1967,
						Stock:         2,
					}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"id":1,"title":"Cien anos de soledad","author":"Gabriel Garcia Marquez","isbn":"978-84-376-0494-7","pages":471,"publishedYear":1967,"stock":2,"description":null,"language":null,"publisher":null}`,
			},
		},
		{
			name:   "err. would go negative",
			target: "/books/1/stock",
			body:   `{"quantity":-10}`,
			mockBehavior: func(r *service_mocks.MockBookService) {
				r.EXPECT().
					UpdateStock(context.Background(), int64(1), -10).
					Return(model.Book{}, errs.ErrNegativeStock)
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"stock cannot be negative"}`,
			},
		},
		{
			name:   "err. book not found",
			target: "/books/777/stock",
			body:   `{"quantity":5}`,
			mockBehavior: func(r *service_mocks.MockBookService) {
				r.EXPECT().
					UpdateStock(context.Background(), int64(777), 5).
					Return(model.Book{}, errs.ErrNotFound)
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"not found"}`,
			},
		},
		{
			name:         "err. quantity required",
			target:       "/books/1/stock",
			body:         `{}`,
			mockBehavior: func(r *service_mocks.MockBookService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e, svc := newBookRouter(t)
			tt.mockBehavior(svc)

			r := httptest.NewRequest(http.MethodPatch, tt.target, strings.NewReader(tt.body))
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

func TestHandler_CreateBook(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockBookService)

	lang := "es"
	one := 1

	var tests = []struct {
		name         string
		body         string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "ok. stock omitted defaults to 1",
			body: `{"title":"Rayuela","author":"Julio Cortazar","isbn":"978-84-204-0538-7","pages":736,"publishedYear":1963,"language":"es","categoryIds":[2]}`,
			mockBehavior: func(r *service_mocks.MockBookService) {
				r.EXPECT().
					CreateBook(context.Background(), model.CreateBookRequest{
						Title:         "Rayuela",
						Author:        "Julio Cortazar",
						ISBN:          "978-84-204-0538-7",
						Pages:         736,
						PublishedYear: 1963,
						Stock:         &one,
						Language:      &lang,
						CategoryIDs:   []int64{2},
					}).
					Return(model.Book{
						ID:            7,
						Title:         "Rayuela",
						Author:        "Julio Cortazar",
						ISBN:          "978-84-204-0538-7",
						Pages:         736,
						PublishedYear: 1963,
						Stock:         1,
						Language:      &lang,
					}, nil)
			},
			response: response{
				expectedCode: http.StatusCreated,
				expectedBody: `{"id":7,"title":"Rayuela","author":"Julio Cortazar","isbn":"978-84-204-0538-7","pages":736,"publishedYear":1963,"stock":1,"description":null,"language":"es","publisher":null}`,
			},
		},
		{
			name:         "err. explicit zero stock",
			body:         `{"title":"Rayuela","author":"Julio Cortazar","isbn":"978-84-204-0538-7","pages":736,"publishedYear":1963,"stock":0}`,
			mockBehavior: func(r *service_mocks.MockBookService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"stock must be greater than 0"}`,
			},
		},
		{
			name:         "err. published year in the future",
			body:         `{"title":"Rayuela","author":"Julio Cortazar","isbn":"978-84-204-0538-7","pages":736,"publishedYear":3000}`,
			mockBehavior: func(r *service_mocks.MockBookService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"publishedYear must not be in the future"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e, svc := newBookRouter(t)
			tt.mockBehavior(svc)

			r := httptest.NewRequest(http.MethodPost, "/books", strings.NewReader(tt.body))
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

func TestHandler_MostReviewedBooks(t *testing.T) {
	t.Parallel()

	e, svc := newBookRouter(t)
	svc.EXPECT().
		MostReviewedBooks(context.Background(), 2).
		Return([]model.Book{
			{ID: 3, Title: "Ficciones", Author: "Jorge Luis Borges", ISBN: "i3", Pages: 200, PublishedYear: 1944, Stock: 4},
			{ID: 5, Title: "Pedro Paramo", Author: "Juan Rulfo", ISBN: "i5", Pages: 128, PublishedYear: 1955, Stock: 1},
		}, nil)

	r := httptest.NewRequest(http.MethodGet, "/books/most-reviewed?limit=2", http.NoBody)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t,
		`[{"id":3,"title":"Ficciones","author":"Jorge Luis Borges","isbn":"i3","pages":200,"publishedYear":1944,"stock":4,"description":null,"language":null,"publisher":null},`+
			`{"id":5,"title":"Pedro Paramo","author":"Juan Rulfo","isbn":"i5","pages":128,"publishedYear":1955,"stock":1,"description":null,"language":null,"publisher":null}]`,
		strings.Trim(w.Body.String(), "\n"))
}

func TestHandler_MostReviewedBooks_negativeLimit(t *testing.T) {
	t.Parallel()

	e, _ := newBookRouter(t)

	r := httptest.NewRequest(http.MethodGet, "/books/most-reviewed?limit=-1", http.NoBody)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, `{"message":"limit is invalid"}`, strings.Trim(w.Body.String(), "\n"))
}

func TestHandler_BookStats(t *testing.T) {
	t.Parallel()

	e, svc := newBookRouter(t)
	oldest, newest := 1944, 1967
	svc.EXPECT().
		BookStats(context.Background()).
		Return(model.BookStats{
			TotalBooks:   3,
			AveragePages: 266.33,
			OldestYear:   &oldest,
			NewestYear:   &newest,
		}, nil)

	r := httptest.NewRequest(http.MethodGet, "/books/stats", http.NoBody)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t,
		`{"totalBooks":3,"averagePages":266.33,"oldestPublicationYear":1944,"newestPublicationYear":1967}`,
		strings.Trim(w.Body.String(), "\n"))
}
