package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"marketplace/cache"
	"marketplace/config"
	"marketplace/controllers"
	"marketplace/database"
	"marketplace/logger"
	"marketplace/media"
	"marketplace/metrics"
	"marketplace/payment"
	"marketplace/repository"
	"marketplace/routes"
	"marketplace/services"
)

func main() {
	config.LoadEnv()

	log := logger.New(logger.Options{
		Service: "marketplace",
		Env:     config.GetEnv("APP_ENV", "dev"),
		Level:   config.GetEnv("LOG_LEVEL", "info"),
	})

	database.ConnectMongo()
	database.InitCollections()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := database.EnsureIndexes(ctx); err != nil {
		slog.Error("failed to ensure indexes", "error", err)
	}

	productRepo := repository.NewMongoProductRepository(database.ProductCollection)
	categoryRepo := repository.NewMongoCategoryRepository(database.CategoryCollection)
	cartRepo := repository.NewMongoCartRepository(database.CartCollection)
	intentRepo := repository.NewMongoIntentRepository(database.IntentCollection)
	orderRepo := repository.NewMongoOrderRepository(database.OrderCollection)
	checkoutRepo := repository.NewMongoCheckoutRepository(
		database.Client, database.IntentCollection, database.OrderCollection, database.CartCollection,
	)

	var productCache cache.ProductCache = cache.Noop{}
	if addr := config.GetEnv("REDIS_ADDR", ""); addr != "" {
		productCache = cache.NewRedisCache(redis.NewClient(&redis.Options{
			Addr: addr,
			DB:   config.GetEnvInt("REDIS_DB", 0),
		}))
	}

	var uploader media.Uploader
	if cloud := config.GetEnv("CLOUDINARY_CLOUD_NAME", ""); cloud != "" {
		uploader = media.NewCloudinaryUploader(media.CloudinaryConfig{
			CloudName: cloud,
			APIKey:    config.GetEnv("CLOUDINARY_API_KEY", ""),
			APISecret: config.GetEnv("CLOUDINARY_API_SECRET", ""),
		})
	} else {
		log.Warn("CLOUDINARY_CLOUD_NAME not set, using in-memory media store")
		uploader = media.NewMockUploader()
	}

	paymentSecret := config.GetEnv("PAYMENT_KEY_SECRET", "")
	var gateway payment.Gateway
	if base := config.GetEnv("PAYMENT_BASE_URL", ""); base != "" {
		gateway = payment.NewClient(payment.ClientConfig{
			BaseURL:   base,
			KeyID:     config.GetEnv("PAYMENT_KEY_ID", ""),
			KeySecret: paymentSecret,
			Timeout:   config.GetEnvDuration("PAYMENT_TIMEOUT", 10*time.Second),
		})
	} else {
		log.Warn("PAYMENT_BASE_URL not set, using mock payment gateway")
		gateway = payment.NewMockGateway(paymentSecret)
	}

	productService := services.NewProductService(productRepo, categoryRepo, cartRepo, orderRepo, uploader, productCache, log)
	categoryService := services.NewCategoryService(categoryRepo, productRepo, uploader, log)
	cartService := services.NewCartService(cartRepo, productRepo)
	checkoutService := services.NewCheckoutService(cartRepo, productRepo, intentRepo, checkoutRepo, gateway, services.CheckoutConfig{
		Secret:   paymentSecret,
		Currency: config.GetEnv("PAYMENT_CURRENCY", "USD"),
		Timeout:  config.GetEnvDuration("PAYMENT_TIMEOUT", 10*time.Second),
	}, log)
	orderService := services.NewOrderService(orderRepo, productRepo)

	r := gin.Default()
	r.SetTrustedProxies(nil)
	r.Use(cors.Default())

	m := metrics.NewServerMetrics("api")
	routes.RegisterRoutes(r, routes.Controllers{
		Products:   controllers.NewProductController(productService),
		Categories: controllers.NewCategoryController(categoryService),
		Cart:       controllers.NewCartController(cartService),
		Checkout:   controllers.NewCheckoutController(checkoutService),
		Orders:     controllers.NewOrderController(orderService),
	}, m, []byte(config.GetEnv("JWT_SECRET", "")))

	port := config.GetEnv("PORT", "8080")
	if err := r.Run(":" + port); err != nil {
		slog.Error("server stopped", "error", err)
	}
}
