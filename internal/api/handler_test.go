package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/salesdata/internal/daterange"
	"github.com/guttosm/salesdata/internal/domain/dto"
	"github.com/guttosm/salesdata/internal/domain/models"
	"github.com/guttosm/salesdata/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore implements storage.DateRangeOrderStore and records the interval it was asked for.
type fakeStore struct {
	page  *models.OrderPage
	err   error
	calls int
	got   models.Interval
}

func (f *fakeStore) QueryOrders(_ context.Context, iv models.Interval) (*models.OrderPage, error) {
	f.calls++
	f.got = iv
	return f.page, f.err
}

// recordingSink implements ResponseSink for direct Handle calls.
type recordingSink struct {
	success []any
	client  []any
}

func (s *recordingSink) Success(p any)     { s.success = append(s.success, p) }
func (s *recordingSink) ClientError(p any) { s.client = append(s.client, p) }

func total(s string) models.OrderTotals {
	return models.OrderTotals{Total: decimal.NewNullDecimal(decimal.RequireFromString(s))}
}

func setupRouterWithStore(store *fakeStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(service.NewSalesService(store), time.UTC, 0)
	r := gin.New()
	v1 := r.Group("/api/v1")
	v1.GET("/sales", h.GetSalesData)
	return r
}

func TestGetSalesData_Validation(t *testing.T) {
	cases := []struct {
		name  string
		query string
		want  dto.SalesErrorResponse
	}{
		{
			name:  "missing end",
			query: "start=01-09-2025",
			want: dto.SalesErrorResponse{
				Error:   "Missing required parameters",
				Message: "Both start and end date parameters are required",
				Example: "?start=01-09-2025&end=04-10-2025",
				Format:  "DD-MM-YYYY",
			},
		},
		{
			name:  "missing both",
			query: "",
			want: dto.SalesErrorResponse{
				Error:   "Missing required parameters",
				Message: "Both start and end date parameters are required",
				Example: "?start=01-09-2025&end=04-10-2025",
				Format:  "DD-MM-YYYY",
			},
		},
		{
			name:  "start in iso order",
			query: "start=2025-09-01&end=04-10-2025",
			want: dto.SalesErrorResponse{
				Error:    "Invalid start date format",
				Message:  `"2025-09-01" is not in DD-MM-YYYY format`,
				Expected: "DD-MM-YYYY",
				Example:  "01-09-2025",
			},
		},
		{
			name:  "end with slashes",
			query: "start=01-09-2025&end=04/10/2025",
			want: dto.SalesErrorResponse{
				Error:    "Invalid end date format",
				Message:  `"04/10/2025" is not in DD-MM-YYYY format`,
				Expected: "DD-MM-YYYY",
				Example:  "04-10-2025",
			},
		},
		{
			name:  "end format checked before start bounds",
			query: "start=32-01-2025&end=2025",
			want: dto.SalesErrorResponse{
				Error:    "Invalid end date format",
				Message:  `"2025" is not in DD-MM-YYYY format`,
				Expected: "DD-MM-YYYY",
				Example:  "04-10-2025",
			},
		},
		{
			name:  "day 32",
			query: "start=32-01-2025&end=04-10-2025",
			want: dto.SalesErrorResponse{
				Error:   "Date parsing error",
				Message: "Invalid day: 32. Day must be between 1 and 31",
				Format:  "DD-MM-YYYY",
				Example: "?start=01-09-2025&end=04-10-2025",
			},
		},
		{
			name:  "month 13",
			query: "start=01-13-2025&end=04-10-2025",
			want: dto.SalesErrorResponse{
				Error:   "Date parsing error",
				Message: "Invalid month: 13. Month must be between 1 and 12",
				Format:  "DD-MM-YYYY",
				Example: "?start=01-09-2025&end=04-10-2025",
			},
		},
		{
			name:  "year 1999",
			query: "start=01-01-1999&end=04-10-2025",
			want: dto.SalesErrorResponse{
				Error:   "Date parsing error",
				Message: "Invalid year: 1999. Year must be between 2000 and 2100",
				Format:  "DD-MM-YYYY",
				Example: "?start=01-09-2025&end=04-10-2025",
			},
		},
		{
			name:  "start bounds before end calendar",
			query: "start=01-13-2025&end=31-02-2025",
			want: dto.SalesErrorResponse{
				Error:   "Date parsing error",
				Message: "Invalid month: 13. Month must be between 1 and 12",
				Format:  "DD-MM-YYYY",
				Example: "?start=01-09-2025&end=04-10-2025",
			},
		},
		{
			name:  "start 31 february",
			query: "start=31-02-2025&end=04-10-2025",
			want: dto.SalesErrorResponse{
				Error:   "Invalid start date",
				Message: `"31-02-2025" is not a valid calendar date`,
				Example: "Valid: 01-09-2025, Invalid: 31-02-2025",
			},
		},
		{
			name:  "end 31 april",
			query: "start=01-04-2025&end=31-04-2025",
			want: dto.SalesErrorResponse{
				Error:   "Invalid end date",
				Message: `"31-04-2025" is not a valid calendar date`,
				Example: "Valid: 04-10-2025, Invalid: 31-02-2025",
			},
		},
		{
			name:  "inverted range",
			query: "start=04-10-2025&end=01-09-2025",
			want: dto.SalesErrorResponse{
				Error:     "Invalid date range",
				Message:   "Start date cannot be after end date",
				StartDate: "04-10-2025",
				EndDate:   "01-09-2025",
			},
		},
		{
			name:  "more than 730 days",
			query: "start=01-01-2020&end=01-01-2023",
			want: dto.SalesErrorResponse{
				Error:         "Date range too large",
				Message:       "Date range cannot exceed 2 years (730 days)",
				RequestedDays: 1096,
				MaxDays:       730,
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &fakeStore{}
			r := setupRouterWithStore(store)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/sales?"+tc.query, nil))

			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			var got dto.SalesErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.Equal(t, tc.want, got)
			assert.Zero(t, store.calls, "store must not be queried on invalid input")
		})
	}
}

func TestGetSalesData_OmitsUnsetFields(t *testing.T) {
	r := setupRouterWithStore(&fakeStore{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/sales?start=04-10-2025&end=01-09-2025", nil))

	var raw map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	assert.Len(t, raw, 4)
	assert.NotContains(t, raw, "requestedDays")
	assert.NotContains(t, raw, "example")
}

func TestGetSalesData_SingleDayInclusive(t *testing.T) {
	store := &fakeStore{page: &models.OrderPage{
		TotalCount: 2,
		Items: []models.Order{
			{ID: "a", DateCreated: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), Totals: total("1")},
			{ID: "b", DateCreated: time.Date(2025, 9, 1, 23, 59, 59, 0, time.UTC), Totals: total("2.5")},
		},
	}}
	r := setupRouterWithStore(store)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/sales?start=01-09-2025&end=01-09-2025", nil))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), store.got.Start)
	assert.Equal(t, time.Date(2025, 9, 1, 23, 59, 59, 999_000_000, time.UTC), store.got.End)
	for _, o := range store.page.Items {
		inside := !o.DateCreated.Before(store.got.Start) && !o.DateCreated.After(store.got.End)
		assert.True(t, inside, "order %s must fall inside the interval", o.ID)
	}

	var got dto.SalesDataResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, dto.SalesDataResponse{Purchases: 2, Revenue: 3.5}, got)
}

func TestGetSalesData_Aggregation(t *testing.T) {
	day := time.Date(2025, 9, 2, 10, 0, 0, 0, time.UTC)

	capped := make([]models.Order, 100)
	for i := range capped {
		capped[i] = models.Order{ID: "o", DateCreated: day, Totals: total("1")}
	}

	cases := []struct {
		name string
		page *models.OrderPage
		want dto.SalesDataResponse
	}{
		{
			name: "rounded once half away from zero",
			page: &models.OrderPage{TotalCount: 3, Items: []models.Order{
				{ID: "a", DateCreated: day, Totals: total("10.005")},
				{ID: "b", DateCreated: day, Totals: total("5")},
				{ID: "c", DateCreated: day},
			}},
			want: dto.SalesDataResponse{Purchases: 3, Revenue: 15.01},
		},
		{
			name: "count comes from the store total",
			page: &models.OrderPage{TotalCount: 150, Items: capped},
			want: dto.SalesDataResponse{Purchases: 150, Revenue: 100},
		},
		{
			name: "empty range",
			page: &models.OrderPage{},
			want: dto.SalesDataResponse{Purchases: 0, Revenue: 0},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupRouterWithStore(&fakeStore{page: tc.page})
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/sales?start=01-09-2025&end=04-10-2025", nil))

			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			var got dto.SalesDataResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestGetSalesData_StoreFailure(t *testing.T) {
	r := setupRouterWithStore(&fakeStore{err: errors.New("connection refused")})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/sales?start=01-09-2025&end=04-10-2025", nil))

	require.Equal(t, http.StatusBadRequest, w.Code)
	var got dto.SalesErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Internal server error", got.Error)
	assert.Equal(t, "query orders: connection refused", got.Message)
}

func TestReject_NonValidationErrorIsInternal(t *testing.T) {
	h := NewHandler(service.NewSalesService(&fakeStore{}), time.UTC, 0)
	q := SalesQuery{Start: "01-09-2025", End: "04-10-2025"}

	sink := &recordingSink{}
	h.reject(context.Background(), q, fmt.Errorf("load zone: %w", errors.New("unknown time zone")), sink)
	assert.Empty(t, sink.success)
	require.Len(t, sink.client, 1)
	assert.Equal(t, dto.SalesErrorResponse{
		Error:   "Internal server error",
		Message: "load zone: unknown time zone",
	}, sink.client[0])

	// wrapped validation errors keep their own body
	sink = &recordingSink{}
	_, derr := daterange.ParseDate("end", "2025-10-04")
	h.reject(context.Background(), q, fmt.Errorf("end: %w", derr), sink)
	require.Len(t, sink.client, 1)
	assert.Equal(t, "Invalid end date format", sink.client[0].(dto.SalesErrorResponse).Error)
}

func TestHandle_SinkReceivesOneOutcome(t *testing.T) {
	store := &fakeStore{page: &models.OrderPage{TotalCount: 1, Items: []models.Order{{ID: "a", Totals: total("0.1")}}}}
	h := NewHandler(service.NewSalesService(store), time.UTC, 0)

	ok := &recordingSink{}
	h.Handle(context.Background(), SalesQuery{Start: "01-09-2025", End: "04-10-2025"}, ok)
	require.Len(t, ok.success, 1)
	assert.Empty(t, ok.client)
	assert.Equal(t, dto.SalesDataResponse{Purchases: 1, Revenue: 0.1}, ok.success[0])

	bad := &recordingSink{}
	h.Handle(context.Background(), SalesQuery{Start: "01-09-2025"}, bad)
	assert.Empty(t, bad.success)
	require.Len(t, bad.client, 1)
	assert.Equal(t, "Missing required parameters", bad.client[0].(dto.SalesErrorResponse).Error)
}

func TestHandle_Location(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*60*60)
	store := &fakeStore{page: &models.OrderPage{}}
	h := NewHandler(service.NewSalesService(store), loc, 0)

	h.Handle(context.Background(), SalesQuery{Start: "01-09-2025", End: "01-09-2025"}, &recordingSink{})

	assert.Equal(t, time.Date(2025, 9, 1, 3, 0, 0, 0, time.UTC), store.got.Start.UTC())
	assert.Equal(t, time.Date(2025, 9, 2, 2, 59, 59, 999_000_000, time.UTC), store.got.End.UTC())
}

func TestHandle_DayStartingInsideDSTGap(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	store := &fakeStore{page: &models.OrderPage{}}
	h := NewHandler(service.NewSalesService(store), loc, 0)

	sink := &recordingSink{}
	h.Handle(context.Background(), SalesQuery{Start: "04-11-2018", End: "04-11-2018"}, sink)

	require.Empty(t, sink.client, "%v", sink.client)
	require.Len(t, sink.success, 1)
	assert.Equal(t, time.Date(2018, 11, 4, 3, 0, 0, 0, time.UTC), store.got.Start.UTC())
	assert.Equal(t, time.Date(2018, 11, 5, 1, 59, 59, 999_000_000, time.UTC), store.got.End.UTC())
}

func TestHandle_CustomMaxDays(t *testing.T) {
	h := NewHandler(service.NewSalesService(&fakeStore{}), time.UTC, 30)
	sink := &recordingSink{}
	h.Handle(context.Background(), SalesQuery{Start: "01-09-2025", End: "04-10-2025"}, sink)

	require.Len(t, sink.client, 1)
	body := sink.client[0].(dto.SalesErrorResponse)
	assert.Equal(t, "Date range too large", body.Error)
	assert.Equal(t, "Date range cannot exceed 30 days", body.Message)
	assert.Equal(t, 33, body.RequestedDays)
	assert.Equal(t, 30, body.MaxDays)
}

func TestNewHandler_Defaults(t *testing.T) {
	h := NewHandler(nil, nil, -1)
	assert.Equal(t, time.Local, h.loc)
	assert.Equal(t, 730, h.maxDays)
}
