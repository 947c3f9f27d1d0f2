package httpapi

import (
	"database/sql"

	"laundrilo-be/internal/cart"
	"laundrilo-be/internal/catalog"
	"laundrilo-be/internal/logger"
	"laundrilo-be/internal/metrics"
	"laundrilo-be/internal/middleware"
	"laundrilo-be/internal/order"
	"laundrilo-be/internal/user"
	"laundrilo-be/internal/validation"

	"github.com/gin-gonic/gin"
)

// Deps groups everything the router needs.
type Deps struct {
	DB       *sql.DB
	Users    user.Service
	Catalog  catalog.ManagerService
	Carts    cart.Service
	Orders   order.Service
	Limiter  *middleware.RateLimiter
	Registry *metrics.Registry
}

// NewRouter assembles the gin engine with the full middleware chain
// and every route group.
func NewRouter(deps Deps) *gin.Engine {
	if deps.Registry == nil {
		deps.Registry = metrics.NewRegistry()
	}

	v := validation.New()
	authH := NewAuthHandler(deps.Users, v)
	userH := NewUserHandler(deps.Users, v)
	catalogH := NewCatalogHandler(deps.Catalog, v)
	cartH := NewCartHandler(deps.Carts, v)
	orderH := NewOrderHandler(deps.Orders, v)
	healthH := NewHealthHandler(deps.DB, deps.Registry)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestIDMiddleware())
	r.Use(logger.LoggingMiddleware())
	r.Use(countRequests(deps.Registry))
	if deps.Limiter != nil {
		r.Use(deps.Limiter.Handle())
	}
	r.Use(middleware.Authenticate())

	api := r.Group("/api")
	api.GET("/health", healthH.Check)

	auth := api.Group("/auth")
	{
		auth.POST("/register", authH.Register)
		auth.POST("/login", authH.Login)
		auth.GET("/me", middleware.RequireAuth(), authH.Me)
	}

	services := api.Group("/services")
	{
		services.GET("", catalogH.List)
		services.GET("/:id", catalogH.GetByID)
		services.POST("", middleware.RequireAuth(), middleware.RequireAdmin(), catalogH.Create)
		services.PUT("/:id", middleware.RequireAuth(), middleware.RequireAdmin(), catalogH.Update)
		services.DELETE("/:id", middleware.RequireAuth(), middleware.RequireAdmin(), catalogH.Delete)
	}

	carts := api.Group("/cart", middleware.RequireAuth())
	{
		carts.GET("", cartH.Get)
		carts.POST("", cartH.AddItem)
		carts.DELETE("", cartH.Clear)
		carts.PUT("/items/:serviceId", cartH.UpdateItem)
		carts.DELETE("/items/:serviceId", cartH.RemoveItem)
	}

	orders := api.Group("/orders", middleware.RequireAuth())
	{
		orders.POST("", orderH.Checkout)
		orders.GET("", orderH.List)
		orders.GET("/:id", orderH.GetByID)
		orders.DELETE("/:id", orderH.Cancel)
		orders.PUT("/:id/status", middleware.RequireAdmin(), orderH.UpdateStatus)
		orders.POST("/:id/review", orderH.Review)
	}

	users := api.Group("/users", middleware.RequireAuth())
	{
		users.GET("/profile", userH.GetProfile)
		users.PUT("/profile", userH.UpdateProfile)
		users.GET("", middleware.RequireAdmin(), userH.List)
		users.PUT("/:id/membership", middleware.RequireAdmin(), userH.SetMembership)
		users.PUT("/:id/status", middleware.RequireAdmin(), userH.SetStatus)
	}

	return r
}
