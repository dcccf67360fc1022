package main

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go-storefront-api/internal/cache"
	"go-storefront-api/internal/events"
	"go-storefront-api/internal/handler"
	"go-storefront-api/internal/middleware"
	"go-storefront-api/internal/model"
	"go-storefront-api/internal/repository"
	"go-storefront-api/internal/service"
	"go-storefront-api/internal/ws"
	"go-storefront-api/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	db := database.ConnectDB()
	if err := db.AutoMigrate(&model.Product{}, &model.Cart{}, &model.Order{}, &model.User{}); err != nil {
		log.Fatal("Failed to migrate database: ", err)
	}

	seedAdmin(db)

	wsHub := ws.NewHub()
	go wsHub.Run()

	publisher := events.NewPublisher(splitCSV(os.Getenv("KAFKA_BROKERS")), envOr("KAFKA_TOPIC", "order.events"))
	defer publisher.Close()

	catalogCache := cache.NewCatalogCache(os.Getenv("REDIS_ADDR"), 5*time.Minute)

	productRepo := repository.NewProductRepo(db)
	cartRepo := repository.NewCartRepo(db)
	orderRepo := repository.NewOrderRepo(db)
	userRepo := repository.NewUserRepo(db)

	authService := service.NewAuthService(userRepo)
	catalogService := service.NewCatalogService(productRepo, catalogCache, wsHub)
	cartService := service.NewCartService(cartRepo, productRepo)
	checkoutService := service.NewCheckoutService(productRepo, orderRepo, cartRepo, db, publisher, wsHub)
	orderService := service.NewOrderService(orderRepo, productRepo, db, publisher, wsHub)
	dashService := service.NewDashboardService(orderRepo, productRepo)

	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(catalogService)
	cartHandler := handler.NewCartHandler(cartService)
	orderHandler := handler.NewOrderHandler(checkoutService, orderService)
	dashHandler := handler.NewDashboardHandler(dashService)

	app := fiber.New(fiber.Config{
		AppName: "Storefront API v1.0",
	})

	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/register", authHandler.Register)

	// Storefront catalog is public.
	api.Get("/products", productHandler.ListPublished)
	api.Get("/products/:id", productHandler.Get)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	protected.Get("/auth/role/:email", authHandler.Role)

	// Seller/admin catalog management. Ownership and approval rights
	// are enforced by the rbac gate inside the services.
	protected.Post("/products", productHandler.Create)
	protected.Put("/products/:id", productHandler.Update)
	protected.Delete("/products/:id", productHandler.Delete)
	protected.Put("/products/:id/approval", productHandler.Approve)
	protected.Get("/seller/products", productHandler.ListMine)
	protected.Get("/admin/products/pending", productHandler.ListPending)

	// Cart
	protected.Get("/cart", cartHandler.Get)
	protected.Post("/cart/items", cartHandler.AddItem)
	protected.Patch("/cart/items/:productId", cartHandler.ChangeQuantity)
	protected.Delete("/cart/items/:productId", cartHandler.RemoveItem)
	protected.Delete("/cart", cartHandler.Clear)

	// Orders
	protected.Post("/orders", orderHandler.Place)
	protected.Get("/orders", orderHandler.List)
	protected.Get("/orders/:id", orderHandler.Get)
	protected.Put("/orders/:id/status", orderHandler.UpdateStatus)

	// Dashboard
	protected.Get("/dashboard/stats", dashHandler.GetStats)

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
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
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

// seedAdmin creates the platform admin account on first boot.
func seedAdmin(db *gorm.DB) {
	userRepo := repository.NewUserRepo(db)

	email := envOr("ADMIN_EMAIL", "admin@example.com")
	if _, err := userRepo.FindByEmail(email); err == nil {
		return
	}

	admin := &model.User{
		Email:    email,
		FullName: "Platform Administrator",
		Role:     model.RoleAdmin,
		IsActive: true,
	}
	admin.CreatedBy = "system"
	admin.UpdatedBy = "system"

	password := envOr("ADMIN_PASSWORD", "admin123")
	if err := admin.SetPassword(password); err != nil {
		log.Printf("Warning: Failed to hash admin password: %v", err)
		return
	}
	if err := userRepo.Create(admin); err != nil {
		log.Printf("Warning: Failed to create admin user: %v", err)
		return
	}
	log.Printf("Admin user created: %s", email)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
