package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/packstock-api/pkg/logger"
)

// AppConfig parámetros de la app Fiber.
type AppConfig struct {
	Name        string
	CORSOrigins string
}

// NewApp crea la app Fiber con el ErrorHandler de la API, recover, CORS y log de peticiones.
func NewApp(cfg AppConfig, log *logger.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(RequestLogger(log))
	origins := cfg.CORSOrigins
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,DELETE,OPTIONS",
	}))
	return app
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Sales         SaleProcessor
	Restock       Restocker
	Inventory     InventoryReader
	Replenish     ReplenishTrigger
	Profit        ProfitReader
	Notifications StockNotifier
	Auth          AdminAuth

	JWTSecret       string
	RateLimitMax    int
	RateLimitWindow time.Duration
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público, con límite de intentos)
	authHandler := NewAuthHandler(deps.Auth)
	authGroup := api.Group("/auth")
	if deps.RateLimitMax > 0 {
		limited := AuthRateLimiter(deps.RateLimitMax, deps.RateLimitWindow)
		authGroup.Post("/register", limited, authHandler.Register)
		authGroup.Post("/login", limited, authHandler.Login)
	} else {
		authGroup.Post("/register", authHandler.Register)
		authGroup.Post("/login", authHandler.Login)
	}

	// Rutas protegidas (requieren Bearer Token)
	requireAdmin := AuthMiddleware(deps.JWTSecret, deps.Auth)

	authGroup.Get("/me", requireAdmin, authHandler.Me)
	authGroup.Post("/invites", requireAdmin, authHandler.GenerateInvite)
	authGroup.Get("/invites", requireAdmin, authHandler.ListInvites)
	authGroup.Delete("/invites/:id", requireAdmin, authHandler.RevokeInvite)

	saleHandler := NewSaleHandler(deps.Sales)
	api.Post("/sales", requireAdmin, saleHandler.Create)

	inv := api.Group("/inventory", requireAdmin)
	inventoryHandler := NewInventoryHandler(deps.Restock, deps.Inventory, deps.Replenish)
	inv.Get("/", inventoryHandler.Overview)
	inv.Post("/restock", inventoryHandler.Restock)
	inv.Post("/replenish", inventoryHandler.Replenish)
	inv.Get("/:id", inventoryHandler.GetByID)

	profit := api.Group("/profit", requireAdmin)
	profitHandler := NewProfitHandler(deps.Profit)
	profit.Get("/today", profitHandler.Today)
	profit.Get("/products", profitHandler.ByProduct)
	profit.Get("/report.pdf", profitHandler.Report)

	notifications := api.Group("/notifications", requireAdmin)
	notificationHandler := NewNotificationHandler(deps.Notifications)
	notifications.Post("/check-stock", notificationHandler.CheckStock)
	notifications.Post("/reset/:id", notificationHandler.Reset)
	notifications.Get("/low-stock", notificationHandler.LowStock)
}
