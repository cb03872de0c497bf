package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"demoapi/internal/auth"
	"demoapi/internal/config"
	"demoapi/internal/handler"
	"demoapi/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	guard *auth.Guard,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	productHandler *handler.ProductHandler,
	fileHandler *handler.FileHandler,
	miscHandler *handler.MiscHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: true,
	}))

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Static mount for uploaded files
	e.Static("/files", cfg.UploadDir)

	api := e.Group("/api/v1")

	authed := guard.Middleware()
	active := guard.RequireActive()
	admin := guard.RequireRole(model.RoleAdmin)

	// Auth routes
	api.POST("/auth/token", authHandler.Login)
	api.POST("/auth/register", authHandler.Register)
	api.GET("/auth/me", authHandler.Me, authed, active)

	// User routes (authenticated, active)
	users := api.Group("/users", authed, active)
	users.GET("", userHandler.ListUsers)
	users.GET("/:id", userHandler.GetUser)
	users.POST("", userHandler.CreateUser, admin)
	users.PUT("/:id", userHandler.UpdateUser)
	users.DELETE("/:id", userHandler.DeleteUser, admin)

	// Product routes (reads are public, writes admin only)
	products := api.Group("/products")
	products.GET("", productHandler.ListProducts)
	products.GET("/search", productHandler.SearchProducts)
	products.GET("/:id", productHandler.GetProduct)
	products.POST("", productHandler.CreateProduct, authed, active, admin)
	products.PUT("/:id", productHandler.UpdateProduct, authed, active, admin)
	products.DELETE("/:id", productHandler.DeleteProduct, authed, active, admin)

	// Upload routes
	upload := api.Group("/upload")
	upload.GET("/info", fileHandler.Info)
	upload.POST("/single", fileHandler.UploadSingle, authed, active)
	upload.POST("/multiple", fileHandler.UploadMultiple, authed, active)

	// Misc routes
	misc := api.Group("/misc")
	misc.GET("/health", miscHandler.Health)
	misc.GET("/ping", miscHandler.Ping)
	misc.GET("/time", miscHandler.Time)
	misc.GET("/echo", miscHandler.EchoGet)
	misc.POST("/echo", miscHandler.EchoPost)
	misc.GET("/random-quote", miscHandler.RandomQuote)
	misc.GET("/weather", miscHandler.Weather)
	misc.GET("/slow", miscHandler.Slow)
	misc.GET("/error", miscHandler.ErrorTrigger)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
