package main

import (
	"database/sql"
	"log"

	"laundrilo-be/internal/cart"
	"laundrilo-be/internal/catalog"
	"laundrilo-be/internal/config"
	"laundrilo-be/internal/db"
	"laundrilo-be/internal/httpapi"
	"laundrilo-be/internal/logger"
	"laundrilo-be/internal/metrics"
	"laundrilo-be/internal/middleware"
	"laundrilo-be/internal/order"
	"laundrilo-be/internal/user"

	"github.com/gin-gonic/gin"
)

// Seams for tests.
var (
	initDBFunc      = db.InitDB
	startServerFunc = func(r *gin.Engine, addr string) error { return r.Run(addr) }
)

func newServer(cfg *config.Config, database *sql.DB) *gin.Engine {
	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo)

	catalogRepo := catalog.NewRepository(database)
	catalogSvc := catalog.NewService(catalogRepo)

	cartRepo := cart.NewRepository(database)
	cartSvc := cart.NewService(cartRepo, catalogRepo)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, catalogRepo, userRepo, cartRepo)

	return httpapi.NewRouter(httpapi.Deps{
		DB:       database,
		Users:    userSvc,
		Catalog:  catalogSvc,
		Carts:    cartSvc,
		Orders:   orderSvc,
		Limiter:  middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		Registry: metrics.NewRegistry(),
	})
}

func run() error {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	router := newServer(cfg, database)

	log.Printf("🚀 API server running at http://localhost:%s/api", cfg.AppPort)
	return startServerFunc(router, ":"+cfg.AppPort)
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
