package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-farm-ledger/internal/handler"
	"go-farm-ledger/internal/middleware"
	"go-farm-ledger/internal/model"
	"go-farm-ledger/internal/repository"
	"go-farm-ledger/internal/service"
	"go-farm-ledger/internal/ws"
	"go-farm-ledger/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(
		&model.User{},
		&model.StockItem{},
		&model.StockTransaction{},
		&model.Expense{},
		&model.Laborer{},
		&model.CropPlanting{},
		&model.CropTask{},
	)

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Dependency Injection (Wiring Layers)
	userRepo := repository.NewUserRepo(db)
	stockRepo := repository.NewStockRepo(db)
	expenseRepo := repository.NewExpenseRepo(db)
	laborRepo := repository.NewLaborRepo(db)
	cropRepo := repository.NewCropRepo(db)

	authService := service.NewAuthService(userRepo)
	stockService := service.NewStockService(stockRepo, wsHub)
	expenseService := service.NewExpenseService(expenseRepo)
	laborService := service.NewLaborService(laborRepo)
	cropService := service.NewCropService(cropRepo)
	reportService := service.NewReportService(expenseRepo, laborRepo, stockRepo)

	authHandler := handler.NewAuthHandler(authService)
	stockHandler := handler.NewStockHandler(stockService)
	expenseHandler := handler.NewExpenseHandler(expenseService)
	laborHandler := handler.NewLaborHandler(laborService)
	cropHandler := handler.NewCropHandler(cropService)
	reportHandler := handler.NewReportHandler(reportService)

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Farm Ledger API v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Request logging
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// Health check
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Farm Ledger API active")
	})

	// 6. Routes
	api := app.Group("/api")

	// Auth (public)
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// Everything below requires a valid token
	protected := api.Group("", middleware.RequireAuth())

	// Stock (the ledger engine)
	stock := protected.Group("/stock")
	stock.Get("/items", stockHandler.GetItems)
	stock.Post("/items", stockHandler.RegisterItem)
	stock.Post("/tx", stockHandler.ApplyTransaction)
	stock.Get("/tx/:itemId", stockHandler.GetTransactions)

	// Expenses
	expenses := protected.Group("/expenses")
	expenses.Get("/", expenseHandler.GetExpenses)
	expenses.Post("/", expenseHandler.CreateExpense)
	expenses.Delete("/:id", expenseHandler.DeleteExpense)
	expenses.Get("/summary/by-category", expenseHandler.GetCategorySummary)

	// Labor
	labor := protected.Group("/labor")
	labor.Get("/", laborHandler.GetLaborers)
	labor.Post("/", laborHandler.CreateLaborer)
	labor.Delete("/:id", laborHandler.DeleteLaborer)
	labor.Get("/summary/pending", laborHandler.GetPendingSummary)

	// Crops
	crops := protected.Group("/crops")
	crops.Get("/plantings", cropHandler.GetPlantings)
	crops.Post("/plantings", cropHandler.CreatePlanting)
	crops.Patch("/plantings/:id", cropHandler.UpdatePlanting)
	crops.Delete("/plantings/:id", cropHandler.DeletePlanting)
	crops.Get("/plantings/:id/tasks", cropHandler.GetTasks)
	crops.Post("/plantings/:id/tasks", cropHandler.CreateTask)
	crops.Patch("/tasks/:id", cropHandler.CompleteTask)
	crops.Get("/summary", cropHandler.GetSummary)

	// Reports
	reports := protected.Group("/reports")
	reports.Get("/expenses-by-category", reportHandler.GetExpensesByCategory)
	reports.Get("/pending-labor", reportHandler.GetPendingLabor)
	reports.Get("/current-stock", reportHandler.GetCurrentStock)
	reports.Get("/export/csv", reportHandler.ExportExpensesCSV)

	// WebSocket (stock_update / low_stock push)
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
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 7. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "5000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
