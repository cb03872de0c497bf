package main

import (
	"log"
	"net/http"

	_ "demoapi/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"demoapi/internal/auth"
	"demoapi/internal/cache"
	"demoapi/internal/config"
	"demoapi/internal/handler"
	"demoapi/internal/model"
	"demoapi/internal/router"
	"demoapi/internal/service"
	"demoapi/internal/store"
)

// @title Demo API Server
// @version 1.0
// @description Demo backend with JWT authentication, role-gated CRUD resources and file uploads.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	jwtService, err := auth.NewJWTService(cfg.JWTSecret, cfg.JWTAlgorithm, cfg.TokenTTL)
	if err != nil {
		log.Fatalf("jwt init: %v", err)
	}

	userStore := store.NewUserStore()
	productStore := store.NewProductStore()
	seedDefaults(userStore, productStore)

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	productService := service.NewProductService(productStore, cacheClient)

	uploadService, err := service.NewUploadService(cfg.UploadDir)
	if err != nil {
		log.Fatalf("upload dir init: %v", err)
	}

	guard := auth.NewGuard(jwtService, userStore)

	authHandler := handler.NewAuthHandler(userStore, jwtService)
	userHandler := handler.NewUserHandler(userStore)
	productHandler := handler.NewProductHandler(productService)
	fileHandler := handler.NewFileHandler(uploadService)
	miscHandler := handler.NewMiscHandler()

	router.Register(
		e,
		cfg,
		guard,
		authHandler,
		userHandler,
		productHandler,
		fileHandler,
		miscHandler,
	)

	log.Printf("Swagger documentation available at: http://localhost:%s/swagger/index.html", cfg.ServerPort)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}

// seedDefaults creates the demo accounts and sample products. Seeding
// goes through the normal store operations so all invariants hold.
func seedDefaults(users *store.UserStore, products *store.ProductStore) {
	defaultUsers := []model.UserCreate{
		{
			Username: "admin",
			Email:    "admin@example.com",
			Password: "admin123",
			FullName: "Administrator",
			Role:     model.RoleAdmin,
		},
		{
			Username: "john_doe",
			Email:    "john@example.com",
			Password: "user123",
			FullName: "John Doe",
			Role:     model.RoleUser,
		},
	}
	for _, u := range defaultUsers {
		if _, err := users.Register(u); err != nil {
			log.Printf("seed user %s: %v", u.Username, err)
		}
	}

	sampleProducts := []model.ProductCreate{
		{
			Name:          "MacBook Pro",
			Description:   "Apple MacBook Pro 16-inch with M2 chip",
			Price:         2499.99,
			Category:      model.CategoryElectronics,
			StockQuantity: 10,
		},
		{
			Name:          "Nike Air Max",
			Description:   "Comfortable running shoes",
			Price:         120.00,
			Category:      model.CategorySports,
			StockQuantity: 25,
		},
		{
			Name:          "Python Programming Book",
			Description:   "Learn Python programming from scratch",
			Price:         29.99,
			Category:      model.CategoryBooks,
			StockQuantity: 50,
		},
	}
	for _, p := range sampleProducts {
		products.Create(p)
	}
}
