package repository

import (
	"errors"
	"time"

	"go-stock-ledger/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock remaining")
	ErrZeroDelta         = errors.New("quantity delta must be non-zero")
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll() ([]model.Product, error)
	FindByID(id uint) (*model.Product, error)
	Search(term string) ([]model.Product, error)
	FindLowStock() ([]model.Product, error)
	Update(product *model.Product) error
	Delete(id uint) error
	ApplyAdjustment(id uint, delta int, txType model.TransactionType, userID uint, notes string) (int, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uint) (*model.Product, error) {
	var product model.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

// Search matches the term case-insensitively against name, description and
// category, partial matches included.
func (r *productRepo) Search(term string) ([]model.Product, error) {
	var products []model.Product
	pattern := "%" + term + "%"
	err := r.db.
		Where("name ILIKE ? OR description ILIKE ? OR category ILIKE ?", pattern, pattern, pattern).
		Order("name ASC").
		Find(&products).Error
	return products, err
}

// FindLowStock returns products at or below their own threshold, most
// critical first.
func (r *productRepo) FindLowStock() ([]model.Product, error) {
	var products []model.Product
	err := r.db.
		Where("quantity <= min_stock_level").
		Order("quantity ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

// Delete removes the product only. Historical transactions keep their
// product_id and become orphaned reads.
func (r *productRepo) Delete(id uint) error {
	res := r.db.Delete(&model.Product{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// ApplyAdjustment is the only write path that changes a product's quantity.
// The row is locked FOR UPDATE for the duration of the transaction so the
// check-then-act on quantity is serialized per product; the quantity update
// and the audit row commit together or not at all.
func (r *productRepo) ApplyAdjustment(id uint, delta int, txType model.TransactionType, userID uint, notes string) (int, error) {
	newQuantity := 0

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var product model.Product
		if err := lockProduct(tx, id, &product).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		next, magnitude, err := adjustOutcome(product.Quantity, delta)
		if err != nil {
			return err
		}
		newQuantity = next

		if err := tx.Model(&model.Product{}).
			Where("id = ?", product.ID).
			Updates(map[string]interface{}{
				"quantity":   next,
				"updated_at": time.Now(),
			}).Error; err != nil {
			return err
		}

		entry := model.Transaction{
			ProductID: product.ID,
			Type:      txType,
			Quantity:  magnitude,
			Price:     product.Price, // snapshot, not live-joined
			UserID:    userID,
			Notes:     notes,
		}
		return tx.Create(&entry).Error
	})

	if err != nil {
		return 0, err
	}
	return newQuantity, nil
}

// lockProduct selects the product row FOR UPDATE within tx so competing
// adjustments on the same product serialize at the database.
func lockProduct(tx *gorm.DB, id uint, product *model.Product) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(product, "id = ?", id)
}

// adjustOutcome computes the resulting quantity and the unsigned magnitude to
// record, rejecting zero deltas and anything that would drive stock negative.
func adjustOutcome(current, delta int) (next, magnitude int, err error) {
	if delta == 0 {
		return 0, 0, ErrZeroDelta
	}
	next = current + delta
	if next < 0 {
		return 0, 0, ErrInsufficientStock
	}
	magnitude = delta
	if magnitude < 0 {
		magnitude = -magnitude
	}
	return next, magnitude, nil
}
