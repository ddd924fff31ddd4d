package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lucybakery/bakeshop/internal/adapter/logger"
	"github.com/lucybakery/bakeshop/internal/adapter/postgres"
	"github.com/lucybakery/bakeshop/internal/adapter/rabbitmq"
	"github.com/lucybakery/bakeshop/internal/adapter/smtp"
	"github.com/lucybakery/bakeshop/internal/app/ledger"
	"github.com/lucybakery/bakeshop/internal/app/recommend"
	"github.com/lucybakery/bakeshop/internal/config"
	"github.com/lucybakery/bakeshop/internal/domain"

	amqpAdapter "github.com/lucybakery/bakeshop/internal/adapter/amqp"
	httpAdapter "github.com/lucybakery/bakeshop/internal/adapter/http"
)

func main() {
	mode := flag.String("mode", "", "Service mode: storefront-service, notification-subscriber")
	port := flag.Int("port", 3000, "HTTP port")
	configPath := flag.String("config", "config.yaml", "Path to config file")
	flag.Parse()

	if *mode == "" {
		log.Fatal("--mode flag is required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()
	lgr := logger.New(*mode)

	mqConn, err := rabbitmq.Connect(cfg.RabbitMQ)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer mqConn.Close()

	lgr.Info("rabbitmq_connected", "Connected to RabbitMQ", "startup", map[string]interface{}{
		"host": cfg.RabbitMQ.Host,
	})

	switch *mode {
	case "storefront-service":
		db, err := postgres.Connect(ctx, cfg.Database)
		if err != nil {
			log.Fatalf("Failed to connect to PostgreSQL: %v", err)
		}
		defer db.Close()

		lgr.Info("db_connected", "Connected to PostgreSQL database", "startup", map[string]interface{}{
			"host": cfg.Database.Host,
			"db":   cfg.Database.Database,
		})

		runStorefrontService(db, mqConn, lgr, cfg, *port)

	case "notification-subscriber":
		runNotificationSubscriber(ctx, mqConn, lgr, cfg)

	default:
		log.Fatalf("Invalid mode: %s", *mode)
	}
}

func runStorefrontService(db postgres.DB, mqConn rabbitmq.Connection, lgr logger.Logger, cfg *config.Config, port int) {
	catalogRepo := postgres.NewCatalogRepository(db, cfg.Shop.PopularTag)
	loyaltyRepo := postgres.NewLoyaltyRepository(db)
	publisher := rabbitmq.NewPublisher(mqConn)

	rules := domain.LoyaltyRules{
		StampGoal:           cfg.Loyalty.StampGoal,
		StampRewardAmount:   cfg.Loyalty.StampRewardAmount,
		WelcomeCouponAmount: cfg.Loyalty.WelcomeCouponAmount,
		DiscountRate:        cfg.Loyalty.DiscountRate,
		MinDiscountPurchase: cfg.Loyalty.MinDiscountPurchase,
	}
	params := recommend.EngineParams{
		DrinkPoolCap:  cfg.Engine.DrinkPoolCap,
		BakeryPoolCap: cfg.Engine.BakeryPoolCap,
		GenerationCap: cfg.Engine.GenerationCap,
		TagMatchBonus: cfg.Engine.TagMatchBonus,
		TopK:          cfg.Engine.TopK,
	}

	recommendService := recommend.NewService(catalogRepo, params, lgr)
	ledgerService := ledger.NewService(loyaltyRepo, publisher, rules, cfg.Shop.Name, lgr)

	recommendHandler := httpAdapter.NewRecommendHandler(recommendService, lgr)
	orderHandler := httpAdapter.NewOrderHandler(ledgerService, lgr)
	loyaltyHandler := httpAdapter.NewLoyaltyHandler(ledgerService, lgr)

	mux := http.NewServeMux()
	mux.HandleFunc("/recommendations", recommendHandler.Recommend)
	mux.HandleFunc("/customers", orderHandler.Register)
	mux.HandleFunc("/orders", orderHandler.PlaceOrder)
	mux.HandleFunc("/loyalty/", loyaltyHandler.GetAccount)

	handler := httpAdapter.LoggingMiddleware(lgr)(mux)
	handler = httpAdapter.RecoveryMiddleware(lgr)(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	lgr.Info("service_started", fmt.Sprintf("Storefront Service started on port %d", port), "startup", map[string]interface{}{
		"port": port,
		"shop": cfg.Shop.Name,
	})

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		lgr.Info("shutdown_initiated", "Shutting down Storefront Service", "shutdown", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			lgr.Error("shutdown_error", "Error during shutdown", "shutdown", nil, err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		lgr.Error("server_error", "Server error", "runtime", nil, err)
	}
}

func runNotificationSubscriber(ctx context.Context, mqConn rabbitmq.Connection, lgr logger.Logger, cfg *config.Config) {
	consumer := rabbitmq.NewConsumer(mqConn)
	mailer := smtp.NewMailer(cfg.SMTP, cfg.Shop.OwnerEmail, cfg.Shop.OwnerEmailCC)
	notificationHandler := amqpAdapter.NewNotificationHandler(mailer, lgr)

	lgr.Info("service_started", "Notification Subscriber started", "startup", map[string]interface{}{
		"owner_email": cfg.Shop.OwnerEmail,
	})

	go func() {
		if err := consumer.ConsumeOrderNotifications(ctx, notificationHandler.HandleNotification); err != nil {
			lgr.Error("consumer_error", "Error consuming notifications", "runtime", nil, err)
		}
	}()

	sigint := make(chan os.Signal, 1)
	signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
	<-sigint

	lgr.Info("shutdown_initiated", "Shutting down Notification Subscriber", "shutdown", nil)
}
