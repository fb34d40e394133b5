package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/5ecured/e-commerce/controllers"
	"github.com/5ecured/e-commerce/database"
	"github.com/5ecured/e-commerce/logger"
	"github.com/5ecured/e-commerce/repository"
	"github.com/5ecured/e-commerce/routes"
	"github.com/5ecured/e-commerce/services"
)

const tokenTTL = 24 * time.Hour

func main() {
	// Load .env file (optional, falls back to system env)
	_ = godotenv.Load()

	logger.Initialize(os.Getenv("ENV"))
	defer logger.Log.Sync()
	zap.ReplaceGlobals(logger.Log)

	cfg, err := LoadConfig()
	if err != nil {
		zap.L().Fatal("Failed to load configuration", zap.Error(err))
	}

	client, db, err := database.Connect(context.Background(), cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		zap.L().Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := database.Disconnect(client); err != nil {
			zap.L().Error("Failed to disconnect from MongoDB", zap.Error(err))
		}
	}()
	if err := database.EnsureIndexes(context.Background(), db); err != nil {
		zap.L().Fatal("Failed to create indexes", zap.Error(err))
	}

	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	userRepo := repository.NewUserRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	tokenService := services.NewTokenService(cfg.JWTSecret, tokenTTL)
	authService := services.NewAuthService(userRepo, tokenService, logger.Log)
	catalogService := services.NewCatalogService(productRepo, categoryRepo, logger.Log)
	categoryService := services.NewCategoryService(categoryRepo, logger.Log)
	userService := services.NewUserService(userRepo, logger.Log)
	stockLedger := services.NewStockLedger(productRepo, logger.Log)
	orderService := services.NewOrderService(orderRepo, productRepo, userRepo, stockLedger, logger.Log)
	gateway := services.NewBraintreeGateway(cfg.Env, cfg.BraintreeMerchantID, cfg.BraintreePublicKey, cfg.BraintreePrivateKey, logger.Log)

	validator := controllers.NewRequestValidator()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), logger.RequestLogger())

	routes.Register(r, routes.Controllers{
		Auth:     controllers.NewAuthController(authService),
		Category: controllers.NewCategoryController(categoryService),
		Product:  controllers.NewProductController(catalogService, validator),
		User:     controllers.NewUserController(userService),
		Order:    controllers.NewOrderController(orderService),
		Payment:  controllers.NewPaymentController(gateway),
	}, tokenService)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		zap.L().Info("Server starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("Server forced to shutdown", zap.Error(err))
	}
	zap.L().Info("Server exited")
}
