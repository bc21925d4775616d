package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"go-stock-ledger/internal/model"
	"go-stock-ledger/internal/repository"
)

const csvTimeLayout = "2006-01-02 15:04:05"

type ReportService interface {
	GetSalesSummary(start, end *time.Time) ([]repository.SalesSummary, error)
	GetDashboardStats() (*repository.DashboardStats, error)
	GetStockMovement(days int) ([]repository.StockMovementData, error)
	SalesSummaryCSV(start, end *time.Time) ([]byte, error)
	InventoryCSV() ([]byte, error)
	LowStockCSV() ([]byte, error)
	TransactionsCSV() ([]byte, error)
}

type reportService struct {
	productRepo repository.ProductRepository
	txRepo      repository.TransactionRepository
}

func NewReportService(pRepo repository.ProductRepository, tRepo repository.TransactionRepository) ReportService {
	return &reportService{productRepo: pRepo, txRepo: tRepo}
}

func (s *reportService) GetSalesSummary(start, end *time.Time) ([]repository.SalesSummary, error) {
	return s.txRepo.GetSalesSummary(start, end)
}

func (s *reportService) GetDashboardStats() (*repository.DashboardStats, error) {
	return s.txRepo.GetDashboardStats()
}

func (s *reportService) GetStockMovement(days int) ([]repository.StockMovementData, error) {
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)
	return s.txRepo.GetStockMovement(startDate, endDate)
}

func (s *reportService) SalesSummaryCSV(start, end *time.Time) ([]byte, error) {
	summary, err := s.txRepo.GetSalesSummary(start, end)
	if err != nil {
		return nil, err
	}
	return writeCSV(
		[]string{"Product", "Total Sold", "Total Revenue"},
		len(summary),
		func(i int) []string {
			row := summary[i]
			return []string{
				row.ProductName,
				fmt.Sprintf("%d", row.TotalSold),
				fmt.Sprintf("%.2f", row.TotalRevenue),
			}
		},
	)
}

func (s *reportService) InventoryCSV() ([]byte, error) {
	products, err := s.productRepo.FindAll()
	if err != nil {
		return nil, err
	}
	return productCSV(products)
}

// LowStockCSV exports only products at or below their threshold, most
// critical first, in the same column layout as the full inventory report.
func (s *reportService) LowStockCSV() ([]byte, error) {
	products, err := s.productRepo.FindLowStock()
	if err != nil {
		return nil, err
	}
	return productCSV(products)
}

func productCSV(products []model.Product) ([]byte, error) {
	return writeCSV(
		[]string{"ID", "Name", "Category", "Price", "Quantity", "Min Stock", "Supplier", "Status"},
		len(products),
		func(i int) []string {
			p := products[i]
			return []string{
				fmt.Sprintf("%d", p.ID),
				p.Name,
				p.Category,
				fmt.Sprintf("%.2f", p.Price),
				fmt.Sprintf("%d", p.Quantity),
				fmt.Sprintf("%d", p.MinStockLevel),
				p.Supplier,
				p.StockStatus(),
			}
		},
	)
}

func (s *reportService) TransactionsCSV() ([]byte, error) {
	records, err := s.txRepo.FindAll()
	if err != nil {
		return nil, err
	}
	return writeCSV(
		[]string{"ID", "Product", "Type", "Quantity", "Price", "User", "Notes", "Date"},
		len(records),
		func(i int) []string {
			r := records[i]
			return []string{
				fmt.Sprintf("%d", r.ID),
				r.ProductName,
				string(r.Type),
				fmt.Sprintf("%d", r.Quantity),
				fmt.Sprintf("%.2f", r.Price),
				r.Username,
				r.Notes,
				r.CreatedAt.Format(csvTimeLayout),
			}
		},
	)
}

func writeCSV(header []string, n int, row func(i int) []string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		if err := w.Write(row(i)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
