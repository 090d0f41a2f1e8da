package main

import (
	"context"
	"log"
	"time"

	_ "dealflow/docs"
	"dealflow/internal/adapter/http/handlers"
	"dealflow/internal/adapter/http/routes"
	"dealflow/internal/infrastructure/cache"
	"dealflow/internal/infrastructure/config"
	"dealflow/internal/infrastructure/messaging"
	"dealflow/internal/infrastructure/payments"
	"dealflow/internal/usecase"
	"dealflow/internal/usecase/interfaces"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Dealflow Payment Links API
// @version         1.0
// @description     Payment links, gateway attempts and webhook reconciliation.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

const (
	kafkaConnectAttempts = 5
	methodLookupTimeout  = 3 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	ctx := context.Background()

	store, err := openStores(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open storage driver=%s: %v", cfg.StorageDriver, err)
	}

	providers, err := payments.NewProviders(cfg.Gateway, cfg.PublicBaseURL)
	if err != nil {
		log.Fatalf("Failed to configure payment gateway: %v", err)
	}

	var methodLookup interfaces.IPaymentMethodLookup = providers.MethodLookup
	if cfg.Redis.URL != "" {
		redisCache, err := cache.NewRedisCache(ctx, cfg.Redis.URL)
		if err != nil {
			log.Printf("[api][main] redis unavailable, payment method cache disabled err=%v", err)
		} else {
			defer redisCache.Close()
			methodLookup = cache.NewPaymentMethodCache(providers.MethodLookup, redisCache, cfg.Redis.PaymentMethodTTL)
		}
	}

	var publisher interfaces.IAttemptEventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err := messaging.ConnectKafka(ctx, cfg.Kafka.Brokers, kafkaConnectAttempts)
		if err != nil {
			log.Printf("[api][main] kafka unavailable, reconciled attempts will not be published err=%v", err)
		} else {
			kafkaPublisher := messaging.NewKafkaPublisher(producer, cfg.Kafka.Topic)
			defer kafkaPublisher.Close()
			publisher = kafkaPublisher
		}
	}

	linkUseCase := usecase.NewPaymentLinkUseCase(store.links, cfg.AllowedCurrencies)
	initiationUseCase := usecase.NewAttemptInitiationUseCase(store.links, providers.Gateway, cfg.Gateway.Timeout)
	reconciliationUseCase := usecase.NewReconciliationUseCase(store.links, store.attempts, methodLookup, publisher, methodLookupTimeout)
	analyticsUseCase := usecase.NewAnalyticsUseCase(store.attempts)

	router := routes.NewRouter(routes.Handlers{
		PaymentLinks:   handlers.NewPaymentLinkHandler(linkUseCase, cfg.PublicBaseURL),
		PaymentIntents: handlers.NewPaymentIntentHandler(initiationUseCase),
		Webhooks:       handlers.NewWebhookHandler(providers.Verifiers, reconciliationUseCase),
		Analytics:      handlers.NewAnalyticsHandler(analyticsUseCase),
		AuthSecret:     cfg.Auth.JWTSecret,
		AuthIssuer:     cfg.Auth.JWTIssuer,
	})

	if err := routes.Run(router, cfg.HTTPPort); err != nil {
		log.Fatalf("%v", err)
	}
}
