package model

import (
	"time"
)

// Stock status codes used by the presentation layer for display.
const (
	StatusOutOfStock = "out_of_stock"
	StatusLowStock   = "low_stock"
	StatusInStock    = "in_stock"
)

const DefaultMinStockLevel = 10

type Product struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"type:varchar(255);not null" json:"name" validate:"required,min=2"`
	Description   string    `gorm:"type:text" json:"description"`
	Category      string    `gorm:"type:varchar(100)" json:"category"`
	Price         float64   `gorm:"not null;default:0" json:"price" validate:"gte=0"`
	Quantity      int       `gorm:"not null;default:0" json:"quantity" validate:"gte=0"`
	MinStockLevel int       `gorm:"not null;default:10" json:"min_stock_level" validate:"gte=0"`
	Supplier      string    `gorm:"type:varchar(255)" json:"supplier"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// StockStatus classifies the product for display. MinStockLevel is a warning
// threshold only, never a hard floor.
func (p *Product) StockStatus() string {
	switch {
	case p.Quantity <= 0:
		return StatusOutOfStock
	case p.Quantity <= p.MinStockLevel:
		return StatusLowStock
	default:
		return StatusInStock
	}
}
