package model

import "time"

type TransactionType string

const (
	TxRestock    TransactionType = "restock"
	TxSale       TransactionType = "sale"
	TxAdjustment TransactionType = "adjustment"
	TxReturn     TransactionType = "return"
)

// Valid reports whether t is one of the four known category tags.
func (t TransactionType) Valid() bool {
	switch t {
	case TxRestock, TxSale, TxAdjustment, TxReturn:
		return true
	}
	return false
}

// Transaction is one row of the append-only stock audit log. Rows are never
// updated or deleted; Quantity is the unsigned magnitude of the change and
// Price is a snapshot of the product price at the time it was recorded.
type Transaction struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	ProductID uint            `gorm:"not null;index" json:"product_id"`
	Type      TransactionType `gorm:"type:varchar(20);not null" json:"type" validate:"required,oneof=restock sale adjustment return"`
	Quantity  int             `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	Price     float64         `gorm:"not null" json:"price"`
	UserID    uint            `gorm:"index" json:"user_id"`
	Notes     string          `gorm:"type:text" json:"notes"`
	CreatedAt time.Time       `json:"created_at"`
}
