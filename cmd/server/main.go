package main

import (
	"log"
	"net/http"
	"time"

	"greencart-be/internal/address"
	"greencart-be/internal/cache"
	"greencart-be/internal/cart"
	"greencart-be/internal/config"
	"greencart-be/internal/db"
	"greencart-be/internal/events"
	"greencart-be/internal/httpapi"
	"greencart-be/internal/logger"
	"greencart-be/internal/middleware"
	"greencart-be/internal/order"
	"greencart-be/internal/payment"
	"greencart-be/internal/payment/webhook"
	"greencart-be/internal/product"
	"greencart-be/internal/user"
)

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	var productCache product.Cache
	if cfg.RedisAddr != "" {
		productCache = cache.NewCache(cfg.RedisAddr, "", 0, 5*time.Minute)
	}

	var publisher events.Publisher = events.Noop{}
	if cfg.KafkaBroker != "" {
		publisher = events.NewKafkaPublisher([]string{cfg.KafkaBroker}, "order-events")
	}
	defer publisher.Close()

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo, cfg.SellerEmail, cfg.SellerPassword)

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo, productCache)

	cartSvc := cart.NewService(userRepo, productRepo)

	addressRepo := address.NewRepository(database)
	addressSvc := address.NewService(addressRepo)

	gateway := payment.NewStripeGateway(cfg.StripeSecretKey, cfg.StripeWebhookSecret)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, productRepo, userRepo, cartSvc, gateway, publisher)

	handler := &httpapi.Handler{
		Users:     userSvc,
		Carts:     cartSvc,
		Products:  productSvc,
		Addresses: addressSvc,
		Orders:    orderSvc,
		Webhook:   webhook.NewHandler(orderSvc, gateway),
		AppEnv:    cfg.AppEnv,
	}

	mux := http.NewServeMux()
	handler.Routes(mux)

	srv := middleware.LoggingMiddleware(
		middleware.AuthMiddleware(
			middleware.RateLimitMiddleware(mux),
		),
	)

	log.Printf("GreenCart API running at http://localhost:%s/", cfg.AppPort)
	log.Fatal(http.ListenAndServe(":"+cfg.AppPort, srv))
}
