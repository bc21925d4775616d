package main

import (
	"os"
	"os/signal"
	"syscall"

	"go-stock-ledger/internal/config"
	"go-stock-ledger/internal/handler"
	"go-stock-ledger/internal/middleware"
	"go-stock-ledger/internal/model"
	"go-stock-ledger/internal/repository"
	"go-stock-ledger/internal/service"
	"go-stock-ledger/internal/ws"
	"go-stock-ledger/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()

	db := database.Connect(cfg.Database)
	if err := db.AutoMigrate(&model.Product{}, &model.Transaction{}, &model.User{}); err != nil {
		logrus.WithError(err).Fatal("auto migration failed")
	}

	wsHub := ws.NewHub()
	go wsHub.Run()

	productRepo := repository.NewProductRepo(db)
	txRepo := repository.NewTransactionRepo(db)
	userRepo := repository.NewUserRepo(db)

	invService := service.NewInventoryService(productRepo, txRepo, wsHub)
	authService := service.NewAuthService(userRepo)
	reportService := service.NewReportService(productRepo, txRepo)

	invHandler := handler.NewInventoryHandler(invService)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(authService)
	reportHandler := handler.NewReportHandler(reportService)

	if n, err := userRepo.Count(); err == nil && n == 0 {
		logrus.Warn("no users exist yet; run cmd/provision to create the first admin")
	}

	app := fiber.New(fiber.Config{
		AppName: "Stock Ledger v1.0",
	})

	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	api := app.Group("/api/v1")

	// Public
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)

	// Authenticated
	protected := api.Group("", middleware.RequireAuth(userRepo))

	protected.Get("/products", invHandler.GetProducts)
	protected.Get("/products/search", invHandler.SearchProducts)
	protected.Get("/products/low-stock", invHandler.GetLowStockProducts)
	protected.Get("/products/:id", invHandler.GetProduct)
	protected.Get("/products/:id/transactions", invHandler.GetProductTransactions)
	protected.Post("/products", invHandler.CreateProduct)
	protected.Put("/products/:id", invHandler.UpdateProduct)
	protected.Delete("/products/:id", invHandler.DeleteProduct)

	protected.Post("/adjustments", invHandler.CreateAdjustment)
	protected.Get("/transactions", invHandler.GetTransactions)

	protected.Get("/reports/sales", reportHandler.GetSalesSummary)
	protected.Get("/reports/sales.csv", reportHandler.ExportSalesCSV)
	protected.Get("/reports/inventory.csv", reportHandler.ExportInventoryCSV)
	protected.Get("/reports/low-stock.csv", reportHandler.ExportLowStockCSV)
	protected.Get("/reports/transactions.csv", reportHandler.ExportTransactionsCSV)
	protected.Get("/dashboard/stats", reportHandler.GetDashboardStats)
	protected.Get("/dashboard/stock-movement", reportHandler.GetStockMovement)

	// Admin only
	protected.Get("/users", middleware.RequireAdmin(), userHandler.GetUsers)
	protected.Post("/users", middleware.RequireAdmin(), userHandler.CreateUser)
	protected.Delete("/users/:id", middleware.RequireAdmin(), userHandler.DeleteUser)

	// WebSocket
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			logrus.WithError(err).Fatal("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("shutting down server...")
	if err := app.Shutdown(); err != nil {
		logrus.WithError(err).Fatal("server forced to shutdown")
	}
	wsHub.Stop()
	logrus.Info("server exited")
}
