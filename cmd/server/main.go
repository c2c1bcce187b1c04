package main

import (
	"log"
	"net/http"
	"os"

	_ "gymstore/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"gymstore/internal/auth"
	"gymstore/internal/cache"
	"gymstore/internal/config"
	"gymstore/internal/db"
	"gymstore/internal/handler"
	"gymstore/internal/model"
	"gymstore/internal/repository"
	"gymstore/internal/router"
	"gymstore/internal/service"
)

// @title Gym Supplement Store API
// @version 1.0
// @description Storefront API: catalog browsing, per-user carts, checkout into immutable orders, JWT sessions.
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.OrderItem{},
			&model.Order{},
			&model.CartItem{},
			&model.Product{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	productRepo := repository.NewProductRepository(gormDB)
	cartRepo := repository.NewCartRepository(gormDB)
	orderRepo := repository.NewOrderRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	catalogService := service.NewCatalogService(productRepo, cacheClient)
	cartService := service.NewCartService(cartRepo, productRepo, orderRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	cartHandler := handler.NewCartHandler(cartService)
	adminHandler := handler.NewAdminHandler(catalogService)

	// Register routes
	router.Register(
		e,
		cfg,
		authService,
		authHandler,
		catalogHandler,
		cartHandler,
		adminHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
