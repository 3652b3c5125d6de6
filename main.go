package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/storefront-labs/storefront-api/config"
	orderControllers "github.com/storefront-labs/storefront-api/controllers/order"
	"github.com/storefront-labs/storefront-api/models"
	"github.com/storefront-labs/storefront-api/routes"
	"github.com/storefront-labs/storefront-api/service"
	"github.com/storefront-labs/storefront-api/store"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg := config.Load()

	db := initDatabase(cfg, logger)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		logger.Fatal("AutoMigrate failed", zap.Error(err))
	}

	svc := service.New(store.NewGorm(db), logger)

	feed := orderControllers.NewFeed()
	svc.OnOrderEvent(feed.Broadcast)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupRoutes(r, svc, feed)

	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase(cfg config.Config, logger *zap.Logger) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		logger.Fatal("DB connection failed", zap.Error(err))
	}
	return db
}
