package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"voucherhub/internal/blacklist"
	"voucherhub/internal/handler"
	"voucherhub/internal/metrics"
	"voucherhub/internal/model"
	"voucherhub/internal/repository"
	"voucherhub/internal/router"
	"voucherhub/internal/service"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestServer(t *testing.T, testDB *TestDB, blacklistFiles ...string) http.Handler {
	t.Helper()

	logger := zerolog.Nop()
	ctx := context.Background()

	// Initialize repositories
	customerRepo := repository.NewCustomerRepository(testDB.Pool, logger)
	voucherRepo := repository.NewVoucherRepository(testDB.Pool, logger)
	orderRepo := repository.NewOrderRepository(testDB.Pool, logger)

	registry, err := blacklist.NewRegistry(ctx, blacklistFiles, blacklist.NewFileLoader(logger), logger)
	require.NoError(t, err)

	// Initialize services
	customerService := service.NewCustomerService(customerRepo, registry, logger)
	voucherService := service.NewVoucherService(voucherRepo, customerRepo, logger)
	orderService := service.NewOrderService(orderRepo, voucherRepo, customerRepo, logger)

	reg := prometheus.NewRegistry()

	// Create router
	return router.New(router.Handlers{
		Health:   handler.NewHealthHandler(testDB.Pool, logger),
		Customer: handler.NewCustomerHandler(customerService, voucherService, orderService, logger),
		Voucher:  handler.NewVoucherHandler(voucherService, logger),
		Order:    handler.NewOrderHandler(orderService, logger),
	}, router.Options{
		APIKey:   TestAPIKey,
		Metrics:  metrics.NewHTTPMetrics(reg),
		Gatherer: reg,
	}, logger)
}

// do sends an authenticated JSON request and decodes the response into out
// when out is not nil.
func do(t *testing.T, server http.Handler, method, path string, body any, out any) int {
	t.Helper()

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", TestAPIKey)
	w := httptest.NewRecorder()

	server.ServeHTTP(w, req)

	if out != nil && w.Body.Len() > 0 {
		require.NoError(t, json.NewDecoder(w.Body).Decode(out))
	}
	return w.Code
}

func TestOrderAPI_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	server := setupTestServer(t, testDB)

	t.Run("Customer, voucher and order round trip", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		var customer model.Customer
		status := do(t, server, http.MethodPost, "/api/customers",
			&model.CustomerCreateRequest{Name: "tester", Email: "tester@example.com"}, &customer)
		require.Equal(t, http.StatusCreated, status)
		assert.Equal(t, model.CustomerTypeNormal, customer.Type)

		var voucher model.VoucherView
		status = do(t, server, http.MethodPost, "/api/vouchers", &model.VoucherCreateRequest{
			Type:          model.VoucherTypePercentDiscount,
			DiscountValue: 10,
			CustomerID:    &customer.ID,
		}, &voucher)
		require.Equal(t, http.StatusCreated, status)

		var order model.OrderResponse
		status = do(t, server, http.MethodPost, "/api/orders", &model.OrderRequest{
			CustomerID: customer.ID,
			VoucherID:  &voucher.ID,
			Items:      []model.OrderItemRequest{{ProductID: uuid.New(), Price: 100, Quantity: 1}},
		}, &order)
		require.Equal(t, http.StatusCreated, status)
		assert.Equal(t, int64(90), order.TotalAmount)
		assert.Equal(t, model.OrderStatusAccepted, order.Status)

		var fetched model.OrderResponse
		status = do(t, server, http.MethodGet, "/api/orders/"+order.ID.String(), nil, &fetched)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, order.ID, fetched.ID)
		assert.Equal(t, int64(90), fetched.TotalAmount)

		var orders []model.OrderResponse
		status = do(t, server, http.MethodGet, "/api/customers/"+customer.ID.String()+"/orders", nil, &orders)
		require.Equal(t, http.StatusOK, status)
		assert.Len(t, orders, 1)

		var patched model.OrderResponse
		status = do(t, server, http.MethodPatch, "/api/orders/"+order.ID.String()+"/status",
			&model.OrderStatusRequest{Status: "PAYING"}, &patched)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, model.OrderStatusPaying, patched.Status)
	})

	t.Run("Validation errors list every field", func(t *testing.T) {
		var resp model.ErrorResponse
		status := do(t, server, http.MethodPost, "/api/orders", &model.OrderRequest{
			Items: []model.OrderItemRequest{{ProductID: uuid.New(), Price: -1, Quantity: 0}},
		}, &resp)

		require.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, model.ErrCodeValidationFailed, resp.Error)
		assert.Equal(t, []model.FieldError{
			{Field: "customerId", Message: "is required"},
			{Field: "items[0].price", Message: "must be at least 0"},
			{Field: "items[0].quantity", Message: "must be at least 1"},
		}, resp.Details)
		assert.NotEmpty(t, resp.CorrelationID)
	})

	t.Run("Unknown voucher is a 404", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		var customer model.Customer
		require.Equal(t, http.StatusCreated, do(t, server, http.MethodPost, "/api/customers",
			&model.CustomerCreateRequest{Name: "kim", Email: "kim@example.com"}, &customer))

		missing := uuid.New()
		var resp model.ErrorResponse
		status := do(t, server, http.MethodPost, "/api/orders", &model.OrderRequest{
			CustomerID: customer.ID,
			VoucherID:  &missing,
			Items:      []model.OrderItemRequest{{ProductID: uuid.New(), Price: 100, Quantity: 1}},
		}, &resp)

		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, model.ErrCodeNotFound, resp.Error)
	})

	t.Run("Request without API key returns 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewBufferString(`{}`))
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestVoucherAPI_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	server := setupTestServer(t, testDB)

	t.Run("Filter by type and creation day", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		for _, req := range []*model.VoucherCreateRequest{
			{Type: model.VoucherTypeFixedAmount, DiscountValue: 100},
			{Type: model.VoucherTypePercentDiscount, DiscountValue: 5},
			{Type: model.VoucherTypePercentDiscount, DiscountValue: 15},
		} {
			require.Equal(t, http.StatusCreated, do(t, server, http.MethodPost, "/api/vouchers", req, nil))
		}

		today := time.Now().UTC().Format("2006-01-02")
		tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")

		var percent []model.VoucherView
		require.Equal(t, http.StatusOK, do(t, server, http.MethodGet,
			"/api/vouchers?type=PERCENT_DISCOUNT&date="+today, nil, &percent))
		assert.Len(t, percent, 2)

		var none []model.VoucherView
		require.Equal(t, http.StatusOK, do(t, server, http.MethodGet,
			"/api/vouchers?type=PERCENT_DISCOUNT&date="+tomorrow, nil, &none))
		assert.Empty(t, none)

		var all []model.VoucherView
		require.Equal(t, http.StatusOK, do(t, server, http.MethodGet, "/api/vouchers", nil, &all))
		assert.Len(t, all, 3)
	})

	t.Run("Update changes type and keeps id", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		var created model.VoucherView
		require.Equal(t, http.StatusCreated, do(t, server, http.MethodPost, "/api/vouchers",
			&model.VoucherCreateRequest{Type: model.VoucherTypeFixedAmount, DiscountValue: 100}, &created))

		var updated model.VoucherView
		status := do(t, server, http.MethodPut, "/api/vouchers/"+created.ID.String(),
			&model.VoucherUpdateRequest{Type: model.VoucherTypePercentDiscount, DiscountValue: 15}, &updated)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, model.VoucherTypePercentDiscount, updated.Type)
		assert.Equal(t, int64(15), updated.DiscountValue)

		var resp model.ErrorResponse
		status = do(t, server, http.MethodPut, "/api/vouchers/"+uuid.NewString(),
			&model.VoucherUpdateRequest{Type: model.VoucherTypeFixedAmount, DiscountValue: 10}, &resp)
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("Invalid percent is a 400", func(t *testing.T) {
		var resp model.ErrorResponse
		status := do(t, server, http.MethodPost, "/api/vouchers",
			&model.VoucherCreateRequest{Type: model.VoucherTypePercentDiscount, DiscountValue: 101}, &resp)

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, model.ErrCodeInvalidArgument, resp.Error)
	})
}

func TestBlacklistAPI_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	dir := t.TempDir()
	file := filepath.Join(dir, "blacklist.csv")
	require.NoError(t, os.WriteFile(file, []byte("email\nBlocked@Example.com\n"), 0o600))

	testDB := SetupTestDB(t)
	server := setupTestServer(t, testDB, file)

	CleanupDB(t, testDB.Pool)

	requests := []*model.CustomerCreateRequest{
		{Name: "normal", Email: "normal@example.com"},
		{Name: "flagged", Email: "flagged@example.com", Type: model.CustomerTypeBlacklist},
		{Name: "blocked", Email: "blocked@example.com"},
	}
	for _, req := range requests {
		require.Equal(t, http.StatusCreated, do(t, server, http.MethodPost, "/api/customers", req, nil))
	}

	var blocked []model.Customer
	require.Equal(t, http.StatusOK, do(t, server, http.MethodGet, "/api/customers/blacklist", nil, &blocked))

	emails := make([]string, 0, len(blocked))
	for _, c := range blocked {
		emails = append(emails, c.Email)
	}
	assert.ElementsMatch(t, []string{"flagged@example.com", "blocked@example.com"}, emails)
}

func TestHealthAndMetrics_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	server := setupTestServer(t, testDB)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w = httptest.NewRecorder()
	server.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `voucherhub_http_requests_total{method="GET",route="/health",status="200"} 1`)
}
