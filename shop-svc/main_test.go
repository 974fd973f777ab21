package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	httpapi "restaurant-storefront/shop-svc/internal/api/http"
	"restaurant-storefront/shop-svc/internal/domain"
	"restaurant-storefront/shop-svc/internal/service"
	"restaurant-storefront/shop-svc/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewStore(t *testing.T) {
	logger := zap.NewNop().Sugar()

	store, closeStore, err := newStore("memory", logger)
	require.NoError(t, err)
	defer closeStore()
	assert.IsType(t, &storage.MemoryStore{}, store)

	_, _, err = newStore("cassandra", logger)
	assert.Error(t, err)
}

func TestNewPolicy(t *testing.T) {
	assert.Equal(t, domain.StrictPolicy{}, newPolicy(true))
	assert.Equal(t, domain.PermissivePolicy{}, newPolicy(false))
}

func TestNewNotifierWithoutBroker(t *testing.T) {
	t.Setenv("KAFKA_BROKER", "")

	notifier, closeNotifier := newNotifier(zap.NewNop().Sugar())
	defer closeNotifier()

	multi, ok := notifier.(service.MultiNotifier)
	require.True(t, ok)
	assert.Len(t, multi, 1)
}

func TestAppServesCatalog(t *testing.T) {
	logger := zap.NewNop().Sugar()
	a := newApp(storage.NewBlobRepository(storage.NewMemoryStore(), logger), service.LogNotifier{Logger: logger}, logger)

	req := httptest.NewRequest(http.MethodGet, "/api/branches", nil)
	rr := httptest.NewRecorder()
	httpapi.NewRouter(a.handler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "branch-centro")
}
