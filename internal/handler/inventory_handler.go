package handler

import (
	"errors"
	"strconv"

	"go-stock-ledger/internal/model"
	"go-stock-ledger/internal/repository"
	"go-stock-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(s service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

func currentUser(c *fiber.Ctx) *model.User {
	if user, ok := c.Locals("user").(*model.User); ok {
		return user
	}
	return nil
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// statusFor maps known service and repository errors to HTTP status codes.
// Anything unrecognized is treated as a storage failure.
func statusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrProductNotFound),
		errors.Is(err, repository.ErrUserNotFound):
		return 404
	case errors.Is(err, repository.ErrInsufficientStock),
		errors.Is(err, service.ErrUsernameTaken):
		return 409
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrUnknownCategory),
		errors.Is(err, repository.ErrZeroDelta):
		return 400
	default:
		return 500
	}
}

// errorJSON writes the mapped status; driver error text never reaches the
// client on storage failures.
func errorJSON(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	message := err.Error()
	if status == 500 {
		message = "Internal Server Error"
	}
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// AdjustmentForm is the boundary shape: an unsigned quantity plus a category.
// The category decides the sign before the ledger sees the request; only the
// "adjustment" category passes a caller-supplied sign through.
type AdjustmentForm struct {
	ProductID uint                  `json:"product_id"`
	Type      model.TransactionType `json:"type"`
	Quantity  int                   `json:"quantity"`
	Notes     string                `json:"notes"`
}

func deltaFor(t model.TransactionType, quantity int) (int, error) {
	switch t {
	case model.TxSale:
		if quantity <= 0 {
			return 0, errors.New("quantity must be positive for sale")
		}
		return -quantity, nil
	case model.TxRestock, model.TxReturn:
		if quantity <= 0 {
			return 0, errors.New("quantity must be positive for " + string(t))
		}
		return quantity, nil
	case model.TxAdjustment:
		if quantity == 0 {
			return 0, errors.New("quantity must be non-zero for adjustment")
		}
		return quantity, nil
	default:
		return 0, service.ErrUnknownCategory
	}
}

func (h *InventoryHandler) CreateProduct(c *fiber.Ctx) error {
	var req service.AddProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.service.AddProduct(&req)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Product created", "data": product})
}

func (h *InventoryHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var req service.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.service.UpdateProduct(id, &req)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(fiber.Map{"message": "Product updated", "data": updated})
}

func (h *InventoryHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	if err := h.service.DeleteProduct(id); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}

func (h *InventoryHandler) CreateAdjustment(c *fiber.Ctx) error {
	var form AdjustmentForm
	if err := c.BodyParser(&form); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	delta, err := deltaFor(form.Type, form.Quantity)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	req := service.AdjustmentRequest{
		ProductID: form.ProductID,
		Delta:     delta,
		Type:      form.Type,
		Notes:     form.Notes,
	}

	newQuantity, err := h.service.ApplyAdjustment(&req, currentUser(c))
	if err != nil {
		return errorJSON(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"message":      "Adjustment recorded",
		"new_quantity": newQuantity,
	})
}

func (h *InventoryHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetProducts()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(products)
}

func (h *InventoryHandler) GetProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	product, err := h.service.GetProduct(id)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(product)
}

func (h *InventoryHandler) SearchProducts(c *fiber.Ctx) error {
	term := c.Query("q")
	products, err := h.service.SearchProducts(term)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(products)
}

func (h *InventoryHandler) GetLowStockProducts(c *fiber.Ctx) error {
	products, err := h.service.GetLowStockProducts()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(products)
}

func (h *InventoryHandler) GetTransactions(c *fiber.Ctx) error {
	records, err := h.service.GetTransactions()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(records)
}

func (h *InventoryHandler) GetProductTransactions(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	records, err := h.service.GetProductTransactions(id)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(records)
}
