package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go-stock-ledger/internal/model"
	"go-stock-ledger/internal/repository"
	"go-stock-ledger/internal/ws"
	"go-stock-ledger/pkg/validator"
)

var (
	ErrUnknownCategory = errors.New("unknown transaction category")
	ErrValidation      = errors.New("validation failed")
)

// AddProductRequest carries the attributes for a new product. The initial
// quantity needs no audit row since there is no prior state to reconcile.
type AddProductRequest struct {
	Name          string  `json:"name" validate:"required"`
	Description   string  `json:"description"`
	Category      string  `json:"category"`
	Price         float64 `json:"price" validate:"gte=0"`
	Quantity      int     `json:"quantity" validate:"gte=0"`
	MinStockLevel *int    `json:"min_stock_level" validate:"omitempty,gte=0"`
	Supplier      string  `json:"supplier"`
}

// UpdateProductRequest replaces descriptive attributes. Quantity replacement
// here is the deliberate unaudited correction path; audited changes go
// through ApplyAdjustment.
type UpdateProductRequest struct {
	Name          string  `json:"name" validate:"required"`
	Description   string  `json:"description"`
	Category      string  `json:"category"`
	Price         float64 `json:"price" validate:"gte=0"`
	Quantity      int     `json:"quantity" validate:"gte=0"`
	MinStockLevel int     `json:"min_stock_level" validate:"gte=0"`
	Supplier      string  `json:"supplier"`
}

// AdjustmentRequest is the ledger's input: one signed delta plus a category
// label. Callers map category semantics to the sign before calling in.
type AdjustmentRequest struct {
	ProductID uint                  `json:"product_id" validate:"required"`
	Delta     int                   `json:"delta"`
	Type      model.TransactionType `json:"type" validate:"required"`
	Notes     string                `json:"notes"`
}

type InventoryService interface {
	AddProduct(req *AddProductRequest) (*model.Product, error)
	UpdateProduct(id uint, req *UpdateProductRequest) (*model.Product, error)
	DeleteProduct(id uint) error
	ApplyAdjustment(req *AdjustmentRequest, actor *model.User) (int, error)
	GetProducts() ([]model.Product, error)
	GetProduct(id uint) (*model.Product, error)
	SearchProducts(term string) ([]model.Product, error)
	GetLowStockProducts() ([]model.Product, error)
	GetTransactions() ([]repository.TransactionRecord, error)
	GetProductTransactions(productID uint) ([]repository.TransactionRecord, error)
}

type inventoryService struct {
	productRepo repository.ProductRepository
	txRepo      repository.TransactionRepository
	wsHub       *ws.Hub
}

func NewInventoryService(pRepo repository.ProductRepository, tRepo repository.TransactionRepository, hub *ws.Hub) InventoryService {
	return &inventoryService{
		productRepo: pRepo,
		txRepo:      tRepo,
		wsHub:       hub,
	}
}

func validationError(errs []*validator.ErrorResponse) error {
	first := errs[0]
	return fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, first.FailedField, first.Tag)
}

func (s *inventoryService) AddProduct(req *AddProductRequest) (*model.Product, error) {
	req.Name = strings.TrimSpace(req.Name)
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}
	if len(req.Name) < 2 {
		return nil, fmt.Errorf("%w: product name must be at least 2 characters", ErrValidation)
	}

	minStock := model.DefaultMinStockLevel
	if req.MinStockLevel != nil {
		minStock = *req.MinStockLevel
	}

	product := &model.Product{
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		Price:         req.Price,
		Quantity:      req.Quantity,
		MinStockLevel: minStock,
		Supplier:      req.Supplier,
	}

	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}

	s.broadcast("product_created", map[string]interface{}{
		"id":       product.ID,
		"name":     product.Name,
		"quantity": product.Quantity,
		"price":    product.Price,
	})

	return product, nil
}

func (s *inventoryService) UpdateProduct(id uint, req *UpdateProductRequest) (*model.Product, error) {
	req.Name = strings.TrimSpace(req.Name)
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}
	if len(req.Name) < 2 {
		return nil, fmt.Errorf("%w: product name must be at least 2 characters", ErrValidation)
	}

	existing, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	oldQuantity := existing.Quantity

	existing.Name = req.Name
	existing.Description = req.Description
	existing.Category = req.Category
	existing.Price = req.Price
	existing.Quantity = req.Quantity
	existing.MinStockLevel = req.MinStockLevel
	existing.Supplier = req.Supplier

	if err := s.productRepo.Update(existing); err != nil {
		return nil, err
	}

	s.broadcast("product_updated", map[string]interface{}{
		"id":           existing.ID,
		"name":         existing.Name,
		"old_quantity": oldQuantity,
		"new_quantity": existing.Quantity,
		"price":        existing.Price,
	})

	return existing, nil
}

func (s *inventoryService) DeleteProduct(id uint) error {
	if err := s.productRepo.Delete(id); err != nil {
		return err
	}
	s.broadcast("product_deleted", map[string]interface{}{"id": id})
	return nil
}

// ApplyAdjustment is the only sanctioned path for audited quantity changes:
// the repository applies the quantity write and the audit row in one
// database transaction.
func (s *inventoryService) ApplyAdjustment(req *AdjustmentRequest, actor *model.User) (int, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return 0, validationError(errs)
	}
	if !req.Type.Valid() {
		return 0, ErrUnknownCategory
	}
	if req.Delta == 0 {
		return 0, repository.ErrZeroDelta
	}

	actorID := uint(0)
	actorName := ""
	if actor != nil {
		actorID = actor.ID
		actorName = actor.Username
	}

	newQuantity, err := s.productRepo.ApplyAdjustment(req.ProductID, req.Delta, req.Type, actorID, req.Notes)
	if err != nil {
		return 0, err
	}

	s.broadcast("stock_adjusted", map[string]interface{}{
		"product_id":   req.ProductID,
		"type":         req.Type,
		"delta":        req.Delta,
		"new_quantity": newQuantity,
		"user":         actorName,
	})

	return newQuantity, nil
}

func (s *inventoryService) GetProducts() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *inventoryService) GetProduct(id uint) (*model.Product, error) {
	return s.productRepo.FindByID(id)
}

func (s *inventoryService) SearchProducts(term string) ([]model.Product, error) {
	return s.productRepo.Search(term)
}

func (s *inventoryService) GetLowStockProducts() ([]model.Product, error) {
	return s.productRepo.FindLowStock()
}

func (s *inventoryService) GetTransactions() ([]repository.TransactionRecord, error) {
	return s.txRepo.FindAll()
}

func (s *inventoryService) GetProductTransactions(productID uint) ([]repository.TransactionRecord, error) {
	return s.txRepo.FindByProduct(productID)
}

func (s *inventoryService) broadcast(action string, payload map[string]interface{}) {
	if s.wsHub == nil {
		return
	}
	go func() {
		msg, _ := json.Marshal(map[string]interface{}{
			"type":    "stock_update",
			"action":  action,
			"payload": payload,
		})
		s.wsHub.Broadcast <- msg
	}()
}
