package httpapi_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpapi "restaurant-storefront/analytics-svc/internal/api/http"
	"restaurant-storefront/analytics-svc/internal/domain"
	"restaurant-storefront/analytics-svc/internal/mocks"
	"restaurant-storefront/analytics-svc/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

func orders() []domain.Order {
	return []domain.Order{
		{
			ID: "ORD-1", BranchID: "centro", Status: "delivered", Total: decimal.RequireFromString("25.30"),
			Customer:  domain.Customer{Email: "ana@example.com"},
			CreatedAt: time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC),
			Items: []domain.OrderItem{
				{ProductID: "margherita", Name: "Margherita", CategoryID: "pizzas", Quantity: 2, LineTotal: decimal.RequireFromString("20.80")},
			},
		},
		{
			ID: "ORD-2", BranchID: "centro", Status: "pending", Total: decimal.RequireFromString("10.00"), IsNew: true,
			Customer:  domain.Customer{Email: "bia@example.com"},
			CreatedAt: time.Date(2026, 9, 20, 9, 0, 0, 0, time.UTC),
		},
	}
}

func newServer(t *testing.T) http.Handler {
	source := mocks.NewOrderSource(t)
	source.On("Orders", mock.Anything).Return(orders(), nil).Maybe()

	clock := func() time.Time { return fixedNow }
	svc := service.NewAnalyticsService(source, nil, clock, zap.NewNop().Sugar())
	return httpapi.NewRouter(httpapi.NewHandler(svc, clock, zap.NewNop().Sugar()))
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func TestRanges(t *testing.T) {
	h := newServer(t)

	type testCase struct {
		name           string
		path           string
		expectedStatus int
		expectedOrders int
	}

	tests := []testCase{
		{name: "default last 30 days", path: "/api/analytics/summary", expectedStatus: http.StatusOK, expectedOrders: 2},
		{name: "explicit range", path: "/api/analytics/summary?from=2026-10-01&to=2026-10-14", expectedStatus: http.StatusOK, expectedOrders: 1},
		{name: "inclusive single day", path: "/api/analytics/summary?from=2026-09-20&to=2026-09-20", expectedStatus: http.StatusOK, expectedOrders: 1},
		{name: "bad date", path: "/api/analytics/summary?from=yesterday", expectedStatus: http.StatusBadRequest},
		{name: "inverted range", path: "/api/analytics/summary?from=2026-10-14&to=2026-10-01", expectedStatus: http.StatusBadRequest},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			rr := get(t, h, testCase.path)
			require.Equal(t, testCase.expectedStatus, rr.Code)
			if testCase.expectedStatus != http.StatusOK {
				return
			}
			var summary domain.Summary
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &summary))
			assert.Equal(t, testCase.expectedOrders, summary.Orders)
		})
	}
}

func TestDashboardAndReports(t *testing.T) {
	h := newServer(t)

	rr := get(t, h, "/api/analytics/dashboard?from=2026-10-14&to=2026-10-14")
	require.Equal(t, http.StatusOK, rr.Code)
	var dashboard domain.Dashboard
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &dashboard))
	assert.Equal(t, 1, dashboard.Summary.Orders)
	assert.Len(t, dashboard.SalesByDate, 1)
	assert.Len(t, dashboard.OrdersByHour, 24)
	require.Len(t, dashboard.TopProducts, 1)
	assert.Equal(t, "margherita", dashboard.TopProducts[0].ProductID)

	for _, path := range []string{
		"/api/analytics/sales-by-date",
		"/api/analytics/sales-by-category",
		"/api/analytics/sales-by-branch",
		"/api/analytics/orders-by-hour",
		"/api/analytics/status-distribution",
		"/api/analytics/top-products?limit=3",
		"/api/analytics/top-today",
	} {
		assert.Equal(t, http.StatusOK, get(t, h, path).Code, path)
	}

	assert.Equal(t, http.StatusBadRequest, get(t, h, "/api/analytics/top-products?limit=0").Code)

	rr = get(t, h, "/api/analytics/unseen-count")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"count":1}`, rr.Body.String())
}

func TestSourceFailure(t *testing.T) {
	source := mocks.NewOrderSource(t)
	source.On("Orders", mock.Anything).Return(nil, errors.New("db down"))

	clock := func() time.Time { return fixedNow }
	svc := service.NewAnalyticsService(source, nil, clock, zap.NewNop().Sugar())
	h := httpapi.NewRouter(httpapi.NewHandler(svc, clock, zap.NewNop().Sugar()))

	assert.Equal(t, http.StatusInternalServerError, get(t, h, "/api/analytics/summary").Code)
}

func TestHealth(t *testing.T) {
	rr := get(t, newServer(t), "/health")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}
