package handler

import (
	"strconv"
	"time"

	"go-stock-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

const dateLayout = "2006-01-02"

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

// parseDateRange reads optional start/end query params. The end bound is
// pushed to the last instant of its day so the range stays inclusive.
func parseDateRange(c *fiber.Ctx) (start, end *time.Time, err error) {
	if v := c.Query("start"); v != "" {
		t, perr := time.Parse(dateLayout, v)
		if perr != nil {
			return nil, nil, perr
		}
		start = &t
	}
	if v := c.Query("end"); v != "" {
		t, perr := time.Parse(dateLayout, v)
		if perr != nil {
			return nil, nil, perr
		}
		t = t.Add(24*time.Hour - time.Nanosecond)
		end = &t
	}
	return start, end, nil
}

func (h *ReportHandler) GetSalesSummary(c *fiber.Ctx) error {
	start, end, err := parseDateRange(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid date, use YYYY-MM-DD"})
	}

	summary, err := h.service.GetSalesSummary(start, end)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(summary)
}

func (h *ReportHandler) GetDashboardStats(c *fiber.Ctx) error {
	stats, err := h.service.GetDashboardStats()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(stats)
}

func (h *ReportHandler) GetStockMovement(c *fiber.Ctx) error {
	days, err := strconv.Atoi(c.Query("days", "7"))
	if err != nil || days <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid days parameter"})
	}

	movement, err := h.service.GetStockMovement(days)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(movement)
}

func (h *ReportHandler) ExportSalesCSV(c *fiber.Ctx) error {
	start, end, err := parseDateRange(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid date, use YYYY-MM-DD"})
	}

	data, err := h.service.SalesSummaryCSV(start, end)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return sendCSV(c, "sales_report.csv", data)
}

func (h *ReportHandler) ExportInventoryCSV(c *fiber.Ctx) error {
	data, err := h.service.InventoryCSV()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return sendCSV(c, "inventory_report.csv", data)
}

func (h *ReportHandler) ExportLowStockCSV(c *fiber.Ctx) error {
	data, err := h.service.LowStockCSV()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return sendCSV(c, "low_stock_report.csv", data)
}

func (h *ReportHandler) ExportTransactionsCSV(c *fiber.Ctx) error {
	data, err := h.service.TransactionsCSV()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return sendCSV(c, "transactions_report.csv", data)
}

func sendCSV(c *fiber.Ctx, filename string, data []byte) error {
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
