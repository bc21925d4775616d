package repository

import (
	"time"

	"go-stock-ledger/internal/model"

	"gorm.io/gorm"
)

// TransactionRecord is one history row joined with product and user names.
// Joins are LEFT so rows survive product or user deletion.
type TransactionRecord struct {
	ID          uint                  `json:"id"`
	ProductID   uint                  `json:"product_id"`
	ProductName string                `json:"product_name"`
	Type        model.TransactionType `json:"type"`
	Quantity    int                   `json:"quantity"`
	Price       float64               `json:"price"`
	Username    string                `json:"username"`
	Notes       string                `json:"notes"`
	CreatedAt   time.Time             `json:"created_at"`
}

// SalesSummary aggregates sold quantity and revenue per product.
type SalesSummary struct {
	ProductID    uint    `json:"product_id"`
	ProductName  string  `json:"product_name"`
	TotalSold    int     `json:"total_sold"`
	TotalRevenue float64 `json:"total_revenue"`
}

// StockMovementData for chart data
type StockMovementData struct {
	Date     string `json:"date"`
	Inbound  int    `json:"inbound"`
	Outbound int    `json:"outbound"`
}

// DashboardStats for overview stats
type DashboardStats struct {
	TotalProducts  int64   `json:"total_products"`
	LowStockCount  int64   `json:"low_stock_count"`
	TotalValuation float64 `json:"total_valuation"`
}

type TransactionRepository interface {
	FindAll() ([]TransactionRecord, error)
	FindByProduct(productID uint) ([]TransactionRecord, error)
	GetSalesSummary(start, end *time.Time) ([]SalesSummary, error)
	GetStockMovement(startDate, endDate time.Time) ([]StockMovementData, error)
	GetDashboardStats() (*DashboardStats, error)
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

const recordSelect = `
	transactions.id,
	transactions.product_id,
	COALESCE(products.name, '') AS product_name,
	transactions.type,
	transactions.quantity,
	transactions.price,
	COALESCE(users.username, '') AS username,
	transactions.notes,
	transactions.created_at`

func (r *transactionRepo) FindAll() ([]TransactionRecord, error) {
	var records []TransactionRecord
	err := r.db.Model(&model.Transaction{}).
		Select(recordSelect).
		Joins("LEFT JOIN products ON products.id = transactions.product_id").
		Joins("LEFT JOIN users ON users.id = transactions.user_id").
		Order("transactions.created_at DESC").
		Scan(&records).Error
	return records, err
}

func (r *transactionRepo) FindByProduct(productID uint) ([]TransactionRecord, error) {
	var records []TransactionRecord
	err := r.db.Model(&model.Transaction{}).
		Select(recordSelect).
		Joins("LEFT JOIN products ON products.id = transactions.product_id").
		Joins("LEFT JOIN users ON users.id = transactions.user_id").
		Where("transactions.product_id = ?", productID).
		Order("transactions.created_at DESC").
		Scan(&records).Error
	return records, err
}

// GetSalesSummary aggregates category "sale" rows per product, revenue
// computed against the snapshot price, optionally bounded by an inclusive
// timestamp range.
func (r *transactionRepo) GetSalesSummary(start, end *time.Time) ([]SalesSummary, error) {
	var summary []SalesSummary

	q := r.db.Model(&model.Transaction{}).
		Select(`
			transactions.product_id,
			COALESCE(products.name, '') AS product_name,
			COALESCE(SUM(transactions.quantity), 0) AS total_sold,
			COALESCE(SUM(transactions.quantity * transactions.price), 0) AS total_revenue`).
		Joins("LEFT JOIN products ON products.id = transactions.product_id").
		Where("transactions.type = ?", model.TxSale)

	if start != nil {
		q = q.Where("transactions.created_at >= ?", *start)
	}
	if end != nil {
		q = q.Where("transactions.created_at <= ?", *end)
	}

	err := q.Group("transactions.product_id, products.name").
		Order("total_revenue DESC").
		Scan(&summary).Error
	return summary, err
}

func (r *transactionRepo) GetStockMovement(startDate, endDate time.Time) ([]StockMovementData, error) {
	var results []StockMovementData

	// Adjustment rows carry no sign, so they are excluded from both sides.
	rows, err := r.db.Model(&model.Transaction{}).
		Select(`
			DATE(created_at) as date,
			COALESCE(SUM(CASE WHEN type IN ('restock', 'return') THEN quantity ELSE 0 END), 0) as inbound,
			COALESCE(SUM(CASE WHEN type = 'sale' THEN quantity ELSE 0 END), 0) as outbound
		`).
		Where("created_at BETWEEN ? AND ?", startDate, endDate).
		Group("DATE(created_at)").
		Order("date ASC").
		Rows()

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data StockMovementData
		if err := rows.Scan(&data.Date, &data.Inbound, &data.Outbound); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, nil
}

func (r *transactionRepo) GetDashboardStats() (*DashboardStats, error) {
	var stats DashboardStats

	if err := r.db.Model(&model.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&model.Product{}).
		Where("quantity <= min_stock_level").
		Count(&stats.LowStockCount).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&model.Product{}).
		Select("COALESCE(SUM(quantity * price), 0)").
		Scan(&stats.TotalValuation).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
