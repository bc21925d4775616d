package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"go-stock-ledger/internal/model"
	"go-stock-ledger/internal/repository"
	"go-stock-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

func TestDeltaFor(t *testing.T) {
	cases := []struct {
		txType   model.TransactionType
		quantity int
		want     int
		wantErr  bool
	}{
		{model.TxSale, 5, -5, false},
		{model.TxRestock, 5, 5, false},
		{model.TxReturn, 2, 2, false},
		{model.TxAdjustment, 7, 7, false},
		{model.TxAdjustment, -7, -7, false},
		{model.TxAdjustment, 0, 0, true},
		{model.TxSale, 0, 0, true},
		{model.TxSale, -5, 0, true},
		{model.TxRestock, -1, 0, true},
		{"refund", 5, 0, true},
	}

	for _, tc := range cases {
		got, err := deltaFor(tc.txType, tc.quantity)
		if tc.wantErr {
			if err == nil {
				t.Errorf("deltaFor(%q, %d): expected error", tc.txType, tc.quantity)
			}
			continue
		}
		if err != nil {
			t.Errorf("deltaFor(%q, %d): unexpected error: %v", tc.txType, tc.quantity, err)
			continue
		}
		if got != tc.want {
			t.Errorf("deltaFor(%q, %d): expected %d, got %d", tc.txType, tc.quantity, tc.want, got)
		}
	}
}

func TestStatusForErrorClasses(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{repository.ErrProductNotFound, 404},
		{repository.ErrUserNotFound, 404},
		{repository.ErrInsufficientStock, 409},
		{service.ErrUsernameTaken, 409},
		{repository.ErrZeroDelta, 400},
		{service.ErrUnknownCategory, 400},
		{fmt.Errorf("%w: product name must be at least 2 characters", service.ErrValidation), 400},
		{errors.New("pq: connection refused"), 500},
	}

	for _, tc := range cases {
		if got := statusFor(tc.err); got != tc.want {
			t.Errorf("statusFor(%v): expected %d, got %d", tc.err, tc.want, got)
		}
	}
}

// stubInventory returns canned results so handler status mapping can be
// exercised without a database.
type stubInventory struct {
	adjustErr error
	newQty    int
}

func (s *stubInventory) AddProduct(req *service.AddProductRequest) (*model.Product, error) {
	return &model.Product{ID: 1, Name: req.Name}, nil
}
func (s *stubInventory) UpdateProduct(id uint, req *service.UpdateProductRequest) (*model.Product, error) {
	return nil, repository.ErrProductNotFound
}
func (s *stubInventory) DeleteProduct(id uint) error { return nil }
func (s *stubInventory) ApplyAdjustment(req *service.AdjustmentRequest, actor *model.User) (int, error) {
	if s.adjustErr != nil {
		return 0, s.adjustErr
	}
	return s.newQty, nil
}
func (s *stubInventory) GetProducts() ([]model.Product, error) { return nil, nil }
func (s *stubInventory) GetProduct(id uint) (*model.Product, error) {
	return nil, repository.ErrProductNotFound
}
func (s *stubInventory) SearchProducts(string) ([]model.Product, error) { return nil, nil }
func (s *stubInventory) GetLowStockProducts() ([]model.Product, error)  { return nil, nil }
func (s *stubInventory) GetTransactions() ([]repository.TransactionRecord, error) {
	return nil, nil
}
func (s *stubInventory) GetProductTransactions(uint) ([]repository.TransactionRecord, error) {
	return nil, nil
}

func newTestApp(stub *stubInventory) *fiber.App {
	h := NewInventoryHandler(stub)
	app := fiber.New()
	app.Post("/adjustments", h.CreateAdjustment)
	app.Get("/products/:id", h.GetProduct)
	app.Put("/products/:id", h.UpdateProduct)
	return app
}

func TestCreateAdjustmentStatusCodes(t *testing.T) {
	cases := []struct {
		name       string
		body       string
		adjustErr  error
		wantStatus int
	}{
		{"success", `{"product_id":1,"type":"sale","quantity":3}`, nil, 201},
		{"insufficient stock", `{"product_id":1,"type":"sale","quantity":3}`, repository.ErrInsufficientStock, 409},
		{"missing product", `{"product_id":99,"type":"sale","quantity":3}`, repository.ErrProductNotFound, 404},
		{"unknown category", `{"product_id":1,"type":"refund","quantity":3}`, nil, 400},
		{"zero quantity", `{"product_id":1,"type":"sale","quantity":0}`, nil, 400},
		{"bad json", `{`, nil, 400},
		{"storage failure", `{"product_id":1,"type":"sale","quantity":3}`, errors.New("driver: bad connection"), 500},
	}

	for _, tc := range cases {
		app := newTestApp(&stubInventory{adjustErr: tc.adjustErr, newQty: 7})

		req := httptest.NewRequest("POST", "/adjustments", strings.NewReader(tc.body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("%s: app.Test: %v", tc.name, err)
		}
		if resp.StatusCode != tc.wantStatus {
			t.Errorf("%s: expected status %d, got %d", tc.name, tc.wantStatus, resp.StatusCode)
		}
	}
}

func TestStorageFailureHidesDriverError(t *testing.T) {
	app := newTestApp(&stubInventory{adjustErr: errors.New("driver: bad connection")})

	req := httptest.NewRequest("POST", "/adjustments", strings.NewReader(`{"product_id":1,"type":"sale","quantity":3}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != 500 {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	if strings.Contains(string(body), "driver") {
		t.Errorf("driver error text leaked to client: %s", body)
	}
	if !strings.Contains(string(body), "Internal Server Error") {
		t.Errorf("expected generic message, got %s", body)
	}
}

func TestGetProductNotFound(t *testing.T) {
	app := newTestApp(&stubInventory{})

	resp, err := app.Test(httptest.NewRequest("GET", "/products/42", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != 404 {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
}

func TestGetProductBadID(t *testing.T) {
	app := newTestApp(&stubInventory{})

	resp, err := app.Test(httptest.NewRequest("GET", "/products/abc", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}
