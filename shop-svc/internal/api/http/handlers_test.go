package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpapi "restaurant-storefront/shop-svc/internal/api/http"
	"restaurant-storefront/shop-svc/internal/domain"
	"restaurant-storefront/shop-svc/internal/mocks"
	"restaurant-storefront/shop-svc/internal/service"
	"restaurant-storefront/shop-svc/internal/storage"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

type testServer struct {
	router   http.Handler
	orders   *service.OrderService
	notifier *mocks.Notifier
	verifier *mocks.PaymentVerifier
}

func newTestServer(t *testing.T) *testServer {
	logger := zap.NewNop().Sugar()
	repo := storage.NewBlobRepository(storage.NewMemoryStore(), logger)
	n := 0
	ids := func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	clock := func() time.Time { return fixedNow }
	notifier := mocks.NewNotifier(t)
	verifier := mocks.NewPaymentVerifier(t)

	catalog := service.NewCatalogService(repo, ids, clock, logger)
	orders := service.NewOrderService(repo, domain.PermissivePolicy{}, notifier, clock, logger)
	customers := service.NewCustomerService(repo, ids)
	settings := service.NewSettingsService(repo, ids, clock)
	checkout := service.NewCheckoutService(service.CheckoutDeps{
		Sessions:  repo,
		Catalog:   catalog,
		Orders:    orders,
		Customers: customers,
		Settings:  repo,
		Verifier:  verifier,
		Notifier:  notifier,
		Clock:     clock,
		IDs:       ids,
		Logger:    logger,
	})

	handler := &httpapi.Handler{
		Catalog:   catalog,
		Orders:    orders,
		Checkout:  checkout,
		Customers: customers,
		Settings:  settings,
		QR:        service.ReceiptQRGenerator{BaseURL: "http://localhost:8080"},
		Logger:    logger,
	}
	return &testServer{router: httpapi.NewRouter(handler), orders: orders, notifier: notifier, verifier: verifier}
}

func (s *testServer) do(t *testing.T, method, path, body string, admin bool) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if admin {
		req.Header.Set("Authorization", "Bearer token")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, "GET", "/health", "", false)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "shop-svc")
}

func TestAdminRoutesRequireToken(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		wantCode int
	}{
		{name: "missing header", wantCode: http.StatusUnauthorized},
		{name: "empty bearer", header: "Bearer ", wantCode: http.StatusUnauthorized},
		{name: "token present", header: "Bearer abc", wantCode: http.StatusOK},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			s := newTestServer(t)
			req := httptest.NewRequest("GET", "/api/admin/orders", nil)
			if testCase.header != "" {
				req.Header.Set("Authorization", testCase.header)
			}
			w := httptest.NewRecorder()
			s.router.ServeHTTP(w, req)

			assert.Equal(t, testCase.wantCode, w.Code)
		})
	}
}

func TestCatalogHandlers(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		path     string
		body     string
		admin    bool
		wantCode int
	}{
		{name: "list branches", method: "GET", path: "/api/branches", wantCode: http.StatusOK},
		{name: "unknown branch", method: "GET", path: "/api/branches/nope", wantCode: http.StatusNotFound},
		{name: "branch status", method: "GET", path: "/api/branches/branch-centro/status", wantCode: http.StatusOK},
		{name: "products by category", method: "GET", path: "/api/products?category=cat-pizzas", wantCode: http.StatusOK},
		{name: "create product", method: "POST", path: "/api/admin/products", body: `{"name":"Fries","price":"3.00","category_id":"cat-burgers"}`, admin: true, wantCode: http.StatusCreated},
		{name: "invalid product", method: "POST", path: "/api/admin/products", body: `{"name":"","price":"3.00"}`, admin: true, wantCode: http.StatusBadRequest},
		{name: "malformed body", method: "POST", path: "/api/admin/categories", body: `{invalid}`, admin: true, wantCode: http.StatusBadRequest},
		{name: "negative stock", method: "PUT", path: "/api/admin/stock", body: `{"product_id":"prod-lemonade","branch_id":"branch-centro","quantity":-2}`, admin: true, wantCode: http.StatusBadRequest},
		{name: "set stock", method: "PUT", path: "/api/admin/stock", body: `{"product_id":"prod-lemonade","branch_id":"branch-centro","quantity":7}`, admin: true, wantCode: http.StatusOK},
		{name: "invalid schedule", method: "PUT", path: "/api/admin/branches/branch-centro/schedule", body: `{"days":[]}`, admin: true, wantCode: http.StatusBadRequest},
		{name: "delete missing category", method: "DELETE", path: "/api/admin/categories/nope", admin: true, wantCode: http.StatusNotFound},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			s := newTestServer(t)
			w := s.do(t, testCase.method, testCase.path, testCase.body, testCase.admin)
			assert.Equal(t, testCase.wantCode, w.Code, w.Body.String())
		})
	}
}

func decodeSession(t *testing.T, w *httptest.ResponseRecorder) domain.CheckoutSession {
	t.Helper()
	var session domain.CheckoutSession
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))
	return session
}

func TestCheckoutFlow(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, "POST", "/api/checkout", "", false)
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeSession(t, w).ID
	base := "/api/checkout/" + id

	w = s.do(t, "POST", base+"/next", "", false)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, "PUT", base+"/branch", `{"branch_id":"branch-centro"}`, false)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, "POST", base+"/items", `{"product_id":"prod-margherita","quantity":2,"extras":[{"extra_id":"ext-mozzarella","quantity":1}]}`, false)
	require.Equal(t, http.StatusOK, w.Code)
	session := decodeSession(t, w)
	assert.True(t, session.Cart.Total().Equal(decimal.RequireFromString("23.00")))

	w = s.do(t, "PUT", base+"/items/0", `{"quantity":1}`, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decodeSession(t, w).Cart.Items[0].Quantity)

	w = s.do(t, "POST", base+"/next", "", false)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, "PUT", base+"/customer", `{"name":"Ana","email":"ana@example.com","phone":"3001234567","address":"Calle 1"}`, false)
	require.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, "POST", base+"/next", "", false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.StepPayment, decodeSession(t, w).Step)

	s.verifier.On("Verify", "9999").Return(false).Once()
	w = s.do(t, "POST", base+"/next", `{"code":"9999"}`, false)
	assert.Equal(t, http.StatusPaymentRequired, w.Code)

	s.verifier.On("Verify", "1234").Return(true).Once()
	s.notifier.On("Notify", mock.Anything, mock.MatchedBy(func(e domain.Event) bool {
		return e.Kind == domain.EventOrderCreated
	})).Return(nil).Once()
	w = s.do(t, "POST", base+"/next", `{"code":"1234"}`, false)
	require.Equal(t, http.StatusOK, w.Code)
	session = decodeSession(t, w)
	assert.Equal(t, domain.StepConfirmation, session.Step)

	w = s.do(t, "GET", "/api/check/"+session.OrderID, "", false)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, "GET", "/api/orders/"+session.OrderID+"/qrcode", "", false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))

	w = s.do(t, "POST", base+"/back", "", false)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, "GET", "/api/checkout/missing", "", false)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderAdminHandlers(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, s.orders.Place(context.Background(), domain.Order{
		ID:       "ORD-1",
		BranchID: "branch-centro",
		Customer: domain.CustomerInfo{Name: "Ana", Phone: "300"},
		Status:   domain.StatusPending,
		IsNew:    true,
		Total:    decimal.RequireFromString("12.00"),
	}))

	s.notifier.On("Notify", mock.Anything, mock.Anything).Return(nil).Once()

	w := s.do(t, "PUT", "/api/admin/orders/ORD-1/status", `{"status":"ready"}`, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"to":"ready"`)

	w = s.do(t, "PUT", "/api/admin/orders/ORD-1/status", `{"status":"lost"}`, true)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, "PUT", "/api/admin/orders/ORD-9/status", `{"status":"ready"}`, true)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, "GET", "/api/admin/orders/ORD-1/history", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	var history []domain.StatusTransition
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &history))
	assert.Len(t, history, 1)

	w = s.do(t, "GET", "/api/admin/orders?status=ready", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	var orders []domain.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	assert.Len(t, orders, 1)

	w = s.do(t, "POST", "/api/admin/orders/ORD-1/seen", "", true)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(t, "GET", "/api/admin/orders/ORD-1/whatsapp", "", true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, "PUT", "/api/admin/settings/whatsapp", `{"enabled":true,"phone":"+57 300 000 0000","template":"{order-number} {branch-name}"}`, true)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, "GET", "/api/admin/orders/ORD-1/whatsapp", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	var link map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &link))
	assert.Equal(t, "ORD-1 Centro", link["message"])
	assert.True(t, strings.HasPrefix(link["link"], "https://wa.me/573000000000?text="))
}

func TestSettingsAndGalleryHandlers(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, "PUT", "/api/admin/settings/unknown", `{}`, true)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, "PUT", "/api/admin/settings/general", `{"delivery_fee":"3.50"}`, true)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, "GET", "/api/settings", "", false)
	require.Equal(t, http.StatusOK, w.Code)
	var settings domain.Settings
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &settings))
	assert.True(t, settings.General.DeliveryFee.Equal(decimal.RequireFromString("3.50")))

	w = s.do(t, "POST", "/api/admin/gallery", `{"name":"logo","data_url":"data:text/plain,hi"}`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, "POST", "/api/admin/gallery", `{"name":"logo","data_url":"data:image/png;base64,AAAA"}`, true)
	require.Equal(t, http.StatusCreated, w.Code)
	var image domain.GalleryImage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &image))

	w = s.do(t, "DELETE", "/api/admin/gallery/"+image.ID, "", true)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(t, "GET", "/api/admin/customers", "", true)
	assert.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, "GET", "/api/admin/customers/nope", "", true)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
