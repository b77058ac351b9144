package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-restaurant-api/internal/handler"
	"go-restaurant-api/internal/middleware"
	"go-restaurant-api/internal/model"
	"go-restaurant-api/internal/repository"
	"go-restaurant-api/internal/service"
	"go-restaurant-api/internal/ws"
	"go-restaurant-api/pkg/assets"
	"go-restaurant-api/pkg/database"
	"go-restaurant-api/pkg/logger"
	"go-restaurant-api/pkg/mailer"
	"go-restaurant-api/pkg/payment"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found")
	}
	logger.Init()

	db := database.ConnectDB()
	if err := db.AutoMigrate(
		&model.MenuItem{}, &model.MenuImage{},
		&model.Stock{}, &model.StockTransaction{},
		&model.Order{}, &model.OrderItem{},
		&model.Supplier{}, &model.PurchaseOrder{}, &model.PurchaseOrderItem{},
		&model.Reservation{}, &model.Review{},
		&model.User{}, &model.Employee{},
	); err != nil {
		log.Fatal().Err(err).Msg("auto migration failed")
	}

	seedDefaultAdmin(db)

	wsHub := ws.NewHub()
	go wsHub.Run()

	// Repositories
	menuRepo := repository.NewMenuRepo(db)
	stockRepo := repository.NewStockRepo(db)
	stockTxRepo := repository.NewStockTransactionRepo(db)
	orderRepo := repository.NewOrderRepo(db)
	supplierRepo := repository.NewSupplierRepo(db)
	poRepo := repository.NewPurchaseOrderRepo(db)
	reservationRepo := repository.NewReservationRepo(db)
	reviewRepo := repository.NewReviewRepo(db)
	userRepo := repository.NewUserRepo(db)
	employeeRepo := repository.NewEmployeeRepo(db)

	// External integrations
	gateway := payment.NewHostedGateway()
	remover := assets.NewHostedRemover()
	mail := mailer.NewSMTPMailer()

	// Services
	menuService := service.NewMenuService(menuRepo, stockRepo, reviewRepo, remover, db)
	stockService := service.NewStockService(stockRepo, stockTxRepo, db, wsHub)
	orderService := service.NewOrderService(orderRepo, stockRepo, stockTxRepo, gateway, db, wsHub)
	purchaseService := service.NewPurchaseService(supplierRepo, poRepo, menuRepo, stockRepo, stockTxRepo, db, wsHub)
	authService := service.NewAuthService(userRepo, employeeRepo, mail)
	reservationService := service.NewReservationService(reservationRepo)
	reviewService := service.NewReviewService(reviewRepo, menuRepo)
	employeeService := service.NewEmployeeService(employeeRepo)
	dashboardService := service.NewDashboardService(stockRepo, stockTxRepo, menuRepo, orderRepo)

	// Handlers
	menuHandler := handler.NewMenuHandler(menuService)
	stockHandler := handler.NewStockHandler(stockService)
	orderHandler := handler.NewOrderHandler(orderService, userRepo)
	purchaseHandler := handler.NewPurchaseHandler(purchaseService)
	authHandler := handler.NewAuthHandler(authService)
	reservationHandler := handler.NewReservationHandler(reservationService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	employeeHandler := handler.NewEmployeeHandler(employeeService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	app := fiber.New(fiber.Config{
		AppName: "Restaurant API v1.0",
	})

	app.Use(fiberlogger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	// Auth endpoints send OTP mail, so they get a per-IP throttle.
	auth := api.Group("/auth", limiter.New(limiter.Config{
		Max:        20,
		Expiration: time.Minute,
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/verify-email", authHandler.VerifyEmail)
	auth.Post("/resend-verification", authHandler.ResendVerification)
	auth.Post("/login", authHandler.Login)
	auth.Post("/forgot-password", authHandler.ForgotPassword)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/staff/login", authHandler.StaffLogin)
	auth.Post("/staff/forgot-password", authHandler.StaffForgotPassword)
	auth.Post("/staff/reset-password", authHandler.StaffResetPassword)

	api.Get("/menu", menuHandler.GetMenu)
	api.Get("/menu/:id", menuHandler.GetMenuItem)
	api.Get("/menu/:id/reviews", reviewHandler.GetItemReviews)
	api.Post("/reservations", reservationHandler.CreateReservation)

	// Gateway browser callbacks and the server-to-server notification. These
	// arrive unauthenticated from the payment provider.
	app.Post("/payment/success/:tranID", orderHandler.GatewaySuccess)
	app.Post("/payment/fail/:tranID", orderHandler.GatewayFail)
	app.Post("/payment/cancel/:tranID", orderHandler.GatewayCancel)
	app.Post("/payment/ipn", orderHandler.GatewayIPN)

	// ============ CUSTOMER ROUTES ============
	customer := api.Group("", middleware.RequireAuth(), middleware.RequireCustomer())
	customer.Post("/orders", orderHandler.PlaceOrder)
	customer.Post("/orders/gateway", orderHandler.InitiateGatewayPayment)
	customer.Get("/orders/my", orderHandler.GetMyOrders)
	customer.Post("/menu/:id/reviews", reviewHandler.SubmitReview)
	customer.Delete("/reviews/:id", reviewHandler.DeleteReview)

	// ============ STAFF ROUTES ============
	staff := api.Group("", middleware.RequireAuth())

	staff.Post("/menu", middleware.RequirePermission(middleware.ResMenu, middleware.ActCreate), menuHandler.CreateMenuItem)
	staff.Put("/menu/:id", middleware.RequirePermission(middleware.ResMenu, middleware.ActUpdate), menuHandler.UpdateMenuItem)
	staff.Delete("/menu/:id", middleware.RequirePermission(middleware.ResMenu, middleware.ActDelete), menuHandler.DeleteMenuItem)
	staff.Post("/menu/:id/images", middleware.RequirePermission(middleware.ResMenu, middleware.ActUpdate), menuHandler.AddImage)

	staff.Get("/stock", middleware.RequirePermission(middleware.ResStock, middleware.ActView), stockHandler.GetStock)
	staff.Get("/stock/low", middleware.RequirePermission(middleware.ResStock, middleware.ActView), stockHandler.GetLowStock)
	staff.Get("/stock/:itemID", middleware.RequirePermission(middleware.ResStock, middleware.ActView), stockHandler.GetItemStock)
	staff.Get("/stock/:itemID/history", middleware.RequirePermission(middleware.ResStock, middleware.ActView), stockHandler.GetItemHistory)
	staff.Put("/stock/:itemID/quantity", middleware.RequirePermission(middleware.ResStock, middleware.ActUpdate), stockHandler.AdjustStock)
	staff.Put("/stock/:itemID/thresholds", middleware.RequirePermission(middleware.ResStock, middleware.ActUpdate), stockHandler.UpdateThresholds)
	staff.Post("/stock/:itemID/waste", middleware.RequirePermission(middleware.ResStock, middleware.ActUpdate), stockHandler.RecordWaste)

	staff.Get("/orders", middleware.RequirePermission(middleware.ResOrders, middleware.ActView), orderHandler.GetOrders)
	staff.Get("/orders/:id", middleware.RequirePermission(middleware.ResOrders, middleware.ActView), orderHandler.GetOrder)
	staff.Put("/orders/:id/verify", middleware.RequirePermission(middleware.ResOrders, middleware.ActUpdate), orderHandler.VerifyOrder)

	staff.Get("/suppliers", middleware.RequirePermission(middleware.ResSuppliers, middleware.ActView), purchaseHandler.GetSuppliers)
	staff.Get("/suppliers/:id", middleware.RequirePermission(middleware.ResSuppliers, middleware.ActView), purchaseHandler.GetSupplier)
	staff.Post("/suppliers", middleware.RequirePermission(middleware.ResSuppliers, middleware.ActCreate), purchaseHandler.CreateSupplier)
	staff.Put("/suppliers/:id", middleware.RequirePermission(middleware.ResSuppliers, middleware.ActUpdate), purchaseHandler.UpdateSupplier)
	staff.Delete("/suppliers/:id", middleware.RequirePermission(middleware.ResSuppliers, middleware.ActDelete), purchaseHandler.DeleteSupplier)

	staff.Get("/purchase-orders", middleware.RequirePermission(middleware.ResPurchaseOrders, middleware.ActView), purchaseHandler.GetPurchaseOrders)
	staff.Get("/purchase-orders/:id", middleware.RequirePermission(middleware.ResPurchaseOrders, middleware.ActView), purchaseHandler.GetPurchaseOrder)
	staff.Post("/purchase-orders", middleware.RequirePermission(middleware.ResPurchaseOrders, middleware.ActCreate), purchaseHandler.CreatePurchaseOrder)
	staff.Put("/purchase-orders/:id/status", middleware.RequirePermission(middleware.ResPurchaseOrders, middleware.ActUpdate), purchaseHandler.UpdatePurchaseOrderStatus)

	staff.Get("/reservations", middleware.RequirePermission(middleware.ResReservations, middleware.ActView), reservationHandler.GetReservations)
	staff.Get("/reservations/:id", middleware.RequirePermission(middleware.ResReservations, middleware.ActView), reservationHandler.GetReservation)
	staff.Put("/reservations/:id/status", middleware.RequirePermission(middleware.ResReservations, middleware.ActUpdate), reservationHandler.UpdateReservationStatus)
	staff.Delete("/reservations/:id", middleware.RequirePermission(middleware.ResReservations, middleware.ActDelete), reservationHandler.DeleteReservation)

	staff.Get("/employees", middleware.RequirePermission(middleware.ResEmployees, middleware.ActView), employeeHandler.GetEmployees)
	staff.Get("/employees/:id", middleware.RequirePermission(middleware.ResEmployees, middleware.ActView), employeeHandler.GetEmployee)
	staff.Post("/employees", middleware.RequirePermission(middleware.ResEmployees, middleware.ActCreate), employeeHandler.CreateEmployee)
	staff.Put("/employees/:id", middleware.RequirePermission(middleware.ResEmployees, middleware.ActUpdate), employeeHandler.UpdateEmployee)
	staff.Put("/employees/:id/deactivate", middleware.RequirePermission(middleware.ResEmployees, middleware.ActUpdate), employeeHandler.DeactivateEmployee)
	staff.Delete("/employees/:id", middleware.RequirePermission(middleware.ResEmployees, middleware.ActDelete), employeeHandler.DeleteEmployee)

	staff.Get("/dashboard/stats", middleware.RequirePermission(middleware.ResDashboard, middleware.ActView), dashboardHandler.GetStats)
	staff.Get("/dashboard/categories", middleware.RequirePermission(middleware.ResDashboard, middleware.ActView), dashboardHandler.GetCategoryDistribution)
	staff.Get("/dashboard/movement", middleware.RequirePermission(middleware.ResDashboard, middleware.ActView), dashboardHandler.GetMovement)
	staff.Get("/dashboard/top-sellers", middleware.RequirePermission(middleware.ResDashboard, middleware.ActView), dashboardHandler.GetTopSellers)
	staff.Get("/dashboard/transactions", middleware.RequirePermission(middleware.ResDashboard, middleware.ActView), dashboardHandler.GetRecentTransactions)
	staff.Get("/dashboard/sales", middleware.RequirePermission(middleware.ResDashboard, middleware.ActView), dashboardHandler.GetSalesSummary)

	// WebSocket route
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
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	if err := app.Shutdown(); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}
	log.Info().Msg("server exited")
}

// seedDefaultAdmin creates the bootstrap admin account on first run.
func seedDefaultAdmin(db *gorm.DB) {
	employeeRepo := repository.NewEmployeeRepo(db)

	if existing, _ := employeeRepo.FindByEmail("admin@example.com"); existing != nil {
		return
	}

	admin := &model.Employee{
		Name:     "Administrator",
		Email:    "admin@example.com",
		Role:     model.RoleManager,
		IsAdmin:  true,
		IsActive: true,
	}
	admin.CreatedBy = "system"
	admin.UpdatedBy = "system"

	if err := admin.SetPassword("admin123"); err != nil {
		log.Warn().Err(err).Msg("failed to hash admin password")
		return
	}
	if err := employeeRepo.Create(admin); err != nil {
		log.Warn().Err(err).Msg("failed to create admin account")
		return
	}
	log.Info().Msg("admin account created: admin@example.com / admin123")
}
