package tests

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpapi "overcooked-ordering/analytics-svc/internal/api/http"
	"overcooked-ordering/analytics-svc/internal/domain"
	"overcooked-ordering/analytics-svc/internal/mocks"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, svc *mocks.AnalyticsInterface, path string) *httptest.ResponseRecorder {
	t.Helper()
	router := httpapi.NewRouter(httpapi.NewHandler(svc))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestTopHandlers(t *testing.T) {
	burger := domain.FoodAnalytics{FoodID: 5, FoodName: "Burger", VenueID: 2, Score: 7}

	tests := []struct {
		name      string
		path      string
		setupMock func(*mocks.AnalyticsInterface)
		wantBody  []domain.FoodAnalytics
	}{
		{
			name: "today with default limit",
			path: "/api/analytics/venues/2/top-today",
			setupMock: func(m *mocks.AnalyticsInterface) {
				m.On("TopToday", mock.Anything, int64(2), 10).Return([]domain.FoodAnalytics{burger}, nil).Once()
			},
			wantBody: []domain.FoodAnalytics{burger},
		},
		{
			name: "all time with limit",
			path: "/api/analytics/venues/2/top-alltime?limit=3",
			setupMock: func(m *mocks.AnalyticsInterface) {
				m.On("TopAllTime", mock.Anything, int64(2), 3).Return([]domain.FoodAnalytics{burger}, nil).Once()
			},
			wantBody: []domain.FoodAnalytics{burger},
		},
		{
			name: "limit is capped",
			path: "/api/analytics/venues/2/top-alltime?limit=500",
			setupMock: func(m *mocks.AnalyticsInterface) {
				m.On("TopAllTime", mock.Anything, int64(2), 50).Return(nil, nil).Once()
			},
			wantBody: []domain.FoodAnalytics{},
		},
		{
			name: "bad limit falls back",
			path: "/api/analytics/venues/2/top-today?limit=-4",
			setupMock: func(m *mocks.AnalyticsInterface) {
				m.On("TopToday", mock.Anything, int64(2), 10).Return([]domain.FoodAnalytics{}, nil).Once()
			},
			wantBody: []domain.FoodAnalytics{},
		},
		{
			name: "error yields empty list",
			path: "/api/analytics/venues/2/top-today",
			setupMock: func(m *mocks.AnalyticsInterface) {
				m.On("TopToday", mock.Anything, int64(2), 10).Return(nil, assert.AnError).Once()
			},
			wantBody: []domain.FoodAnalytics{},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			svc := mocks.NewAnalyticsInterface(t)
			testCase.setupMock(svc)

			w := serve(t, svc, testCase.path)

			require.Equal(t, http.StatusOK, w.Code)
			var got []domain.FoodAnalytics
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.Equal(t, testCase.wantBody, got)
		})
	}
}

func TestSalesHandler(t *testing.T) {
	day := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		path       string
		setupMock  func(*mocks.AnalyticsInterface)
		wantStatus int
		wantRows   int
	}{
		{
			name: "default window",
			path: "/api/analytics/venues/2/sales",
			setupMock: func(m *mocks.AnalyticsInterface) {
				m.On("Sales", mock.Anything, int64(2), 7).Return([]domain.DailySales{
					{VenueID: 2, Day: day, Orders: 3, Revenue: decimal.RequireFromString("42.50")},
				}, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantRows:   1,
		},
		{
			name: "days capped",
			path: "/api/analytics/venues/2/sales?days=1000",
			setupMock: func(m *mocks.AnalyticsInterface) {
				m.On("Sales", mock.Anything, int64(2), 90).Return(nil, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantRows:   0,
		},
		{
			name: "query failure",
			path: "/api/analytics/venues/2/sales?days=3",
			setupMock: func(m *mocks.AnalyticsInterface) {
				m.On("Sales", mock.Anything, int64(2), 3).Return(nil, assert.AnError).Once()
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			svc := mocks.NewAnalyticsInterface(t)
			testCase.setupMock(svc)

			w := serve(t, svc, testCase.path)

			require.Equal(t, testCase.wantStatus, w.Code)
			if testCase.wantStatus != http.StatusOK {
				return
			}
			var got []domain.DailySales
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.Len(t, got, testCase.wantRows)
		})
	}
}

func TestRoutes_NonNumericVenue(t *testing.T) {
	w := serve(t, mocks.NewAnalyticsInterface(t), "/api/analytics/venues/abc/top-today")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealth(t *testing.T) {
	w := serve(t, mocks.NewAnalyticsInterface(t), "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
