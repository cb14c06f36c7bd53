package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	"github.com/Khaf-dev/aiforus/internal/adapter/ai/deepgram"
	"github.com/Khaf-dev/aiforus/internal/adapter/ai/openai"
	"github.com/Khaf-dev/aiforus/internal/adapter/cache"
	"github.com/Khaf-dev/aiforus/internal/adapter/external/notification"
	visionsidecar "github.com/Khaf-dev/aiforus/internal/adapter/external/vision"
	"github.com/Khaf-dev/aiforus/internal/adapter/http/fiber/handlers"
	"github.com/Khaf-dev/aiforus/internal/adapter/http/fiber/middleware"
	"github.com/Khaf-dev/aiforus/internal/adapter/queue"
	"github.com/Khaf-dev/aiforus/internal/adapter/storage/postgres"
	"github.com/Khaf-dev/aiforus/internal/adapter/vault"
	wsAdapter "github.com/Khaf-dev/aiforus/internal/adapter/websocket"
	"github.com/Khaf-dev/aiforus/internal/observability/telemetry"
	"github.com/Khaf-dev/aiforus/internal/ports"
	"github.com/Khaf-dev/aiforus/internal/service/assistant"
	"github.com/Khaf-dev/aiforus/internal/service/auth"
	"github.com/Khaf-dev/aiforus/internal/service/emergency"
	"github.com/Khaf-dev/aiforus/internal/service/interpreter"
	"github.com/Khaf-dev/aiforus/internal/service/navigation"
	"github.com/Khaf-dev/aiforus/internal/service/vision"
	"github.com/Khaf-dev/aiforus/pkg/config"
)

const serviceName = "aiforus-backend"

func main() {
	// 1. Initialize Logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	// 2. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	logger.Info("Starting AI For Us backend",
		zap.String("service", serviceName),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	// 3. Resolve secrets from Vault when enabled; config values act as
	// fallback for local development.
	if cfg.Vault.Enabled {
		secrets, err := vault.NewSecretManager(cfg.Vault.Address, cfg.Vault.Token)
		if err != nil {
			logger.Fatal("Failed to connect to Vault", zap.Error(err))
		}
		if url, err := secrets.GetDatabaseURL(); err == nil && url != "" {
			cfg.Database.URL = url
		}
		if key, err := secrets.GetOpenAIAPIKey(); err == nil && key != "" {
			cfg.OpenAI.APIKey = key
		}
		if secret, err := secrets.GetJWTSecret(); err == nil && secret != "" {
			cfg.JWT.Secret = secret
		}
		if key, err := secrets.GetSendgridAPIKey(); err == nil && key != "" {
			cfg.Notification.SendgridAPIKey = key
		}
	}

	// 4. Initialize OpenTelemetry (Distributed Tracing)
	if cfg.OpenTelemetry.Enabled {
		tracerProvider, err := telemetry.InitTracer(serviceName, cfg.OpenTelemetry.JaegerEndpoint)
		if err != nil {
			logger.Fatal("Failed to initialize tracer", zap.Error(err))
		}
		defer func() {
			if err := tracerProvider.Shutdown(context.Background()); err != nil {
				logger.Error("Error shutting down tracer provider", zap.Error(err))
			}
		}()
	}

	// 5. Initialize PostgreSQL Connection Pool
	db, err := postgres.NewConnection(cfg.Database.URL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("Failed to get underlying SQL DB", zap.Error(err))
	}
	defer sqlDB.Close()

	if cfg.Database.AutoMigrate {
		if err := postgres.RunMigrations(db); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
	}

	// 6. Initialize Cache (Redis, with in-process fallback)
	var appCache ports.Cache
	appCache, err = cache.NewRedisCache(cfg.Redis.URL, logger)
	if err != nil {
		logger.Warn("Redis unavailable, using in-process cache", zap.Error(err))
		appCache = cache.NewLocalCache(time.Minute, logger)
	}
	defer appCache.Close()

	// 7. Initialize Message Queue
	var messageQueue queue.MessageQueue
	switch cfg.Queue.Driver {
	case "rabbitmq":
		messageQueue, err = queue.NewRabbitMQQueue(cfg.Queue.RabbitMQ.URL, logger)
	default:
		messageQueue, err = queue.NewNATSQueue(cfg.Queue.NATS.URL, serviceName, logger)
	}
	if err != nil {
		logger.Fatal("Failed to connect to message queue", zap.Error(err))
	}
	defer messageQueue.Close()

	// 8. Initialize Repositories
	userRepo := postgres.NewUserRepository(db, logger)
	conversationRepo := postgres.NewConversationRepository(db, logger)
	sceneRepo := postgres.NewSceneMemoryRepository(db, logger)
	detectionRepo := postgres.NewDetectionLogRepository(db, logger)
	faceRepo := postgres.NewFaceRepository(db, logger)

	// 9. Initialize the Command Interpreter
	var intentModel ports.IntentModel
	if cfg.OpenAI.Enabled && cfg.OpenAI.APIKey != "" {
		intentModel = openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, logger)
	} else {
		logger.Warn("Hosted intent model disabled, commands resolve via keyword matching only")
	}

	commandInterpreter, err := interpreter.NewService(intentModel, interpreter.DefaultKeywordTable(), interpreter.Config{
		ModelTimeout:         cfg.Interpreter.ModelTimeout,
		AcceptThreshold:      cfg.Interpreter.AcceptThreshold,
		ExactMatchConfidence: cfg.Interpreter.ExactMatchConfidence,
		FuzzyMatchConfidence: cfg.Interpreter.FuzzyMatchConfidence,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize command interpreter", zap.Error(err))
	}

	// 10. Initialize Services (Business Logic Layer)
	authService := auth.NewService(userRepo, appCache, auth.Config{
		Secret:               cfg.JWT.Secret,
		AccessTokenDuration:  cfg.JWT.AccessTokenDuration,
		RefreshTokenDuration: cfg.JWT.RefreshTokenDuration,
		Issuer:               cfg.JWT.Issuer,
	}, logger)

	visionGateway := visionsidecar.NewClient(cfg.Vision.BaseURL, cfg.Vision.Timeout, logger)
	visionService := vision.NewService(visionGateway, sceneRepo, detectionRepo, faceRepo,
		appCache, messageQueue, cfg.Redis.SceneTTL, logger)

	navigationService := navigation.NewService(navigation.Config{
		NominatimURL: cfg.Navigation.NominatimURL,
		OSRMURL:      cfg.Navigation.OSRMURL,
		UserAgent:    cfg.Navigation.UserAgent,
	}, logger)

	emailSender := notification.NewSendgridSender(
		cfg.Notification.SendgridAPIKey, cfg.Notification.FromEmail, cfg.Notification.FromName, logger)
	emergencyService := emergency.NewService(userRepo, navigationService, emailSender, messageQueue, logger)

	assistantService := assistant.NewService(commandInterpreter, visionService, navigationService,
		emergencyService, intentModel, userRepo, conversationRepo, messageQueue, logger)

	// 11. Initialize WebSocket Hub and command stream
	wsHub := wsAdapter.NewHub()
	go wsHub.Run()

	var newTranscriber wsAdapter.TranscriberFactory
	if cfg.Deepgram.APIKey != "" {
		newTranscriber = func() ports.Transcriber {
			return deepgram.NewLiveClient(cfg.Deepgram.APIKey, cfg.Deepgram.Model, cfg.Deepgram.Language, logger)
		}
	}
	commandStream := wsAdapter.NewCommandStreamHandler(assistantService, newTranscriber, logger)

	// 12. Initialize Fiber HTTP Server
	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		ReadTimeout:           cfg.HTTP.ReadTimeout,
		WriteTimeout:          cfg.HTTP.WriteTimeout,
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(middleware.NewCORS(cfg.HTTP.AllowedOrigins))
	app.Use(middleware.CircuitBreaker(logger))

	// Health Check Endpoints
	app.Get("/health/live", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})
	app.Get("/health/ready", func(c *fiber.Ctx) error {
		if err := sqlDB.Ping(); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).SendString("Database not ready")
		}
		if err := appCache.Ping(); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).SendString("Cache not ready")
		}
		return c.SendString("Ready")
	})

	// Metrics endpoint for Prometheus
	app.Get("/metrics", func(c *fiber.Ctx) error {
		handler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
		handler(c.Context())
		return nil
	})

	// API v1 Routes
	v1 := app.Group("/api/v1")

	authHandler := handlers.NewAuthHandler(authService, logger)
	v1.Post("/auth/login", authHandler.Login)
	v1.Post("/auth/register", authHandler.Register)
	v1.Post("/auth/refresh", authHandler.RefreshToken)

	authRequired := middleware.AuthRequired(authService)
	protected := v1.Group("", authRequired)
	protected.Get("/auth/me", authHandler.Me)

	assistantHandler := handlers.NewAssistantHandler(assistantService, logger)
	protected.Post("/assistant/command", assistantHandler.HandleCommand)
	protected.Get("/assistant/history", assistantHandler.GetHistory)

	faceHandler := handlers.NewFaceHandler(visionService, logger)
	protected.Get("/faces", faceHandler.List)
	protected.Post("/faces", faceHandler.Enroll)
	protected.Delete("/faces/:name", faceHandler.Forget)

	navigationHandler := handlers.NewNavigationHandler(navigationService, logger)
	protected.Get("/navigation/location", navigationHandler.CurrentLocation)
	protected.Post("/navigation/directions", navigationHandler.Directions)

	// WebSocket routes
	wsAdapter.SetupCommandRoutes(app, commandStream, wsHub, authRequired)

	// 13. Start Background Workers
	go startBackgroundWorkers(messageQueue, wsHub, logger)

	// 14. Start HTTP Server
	go func() {
		logger.Info("Starting HTTP Server", zap.Int("port", cfg.HTTP.Port))
		if err := app.Listen(fmt.Sprintf(":%d", cfg.HTTP.Port)); err != nil {
			logger.Fatal("HTTP Server failed", zap.Error(err))
		}
	}()

	// 15. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

// startBackgroundWorkers relays queue events to connected dashboards.
func startBackgroundWorkers(mq queue.MessageQueue, hub *wsAdapter.Hub, logger *zap.Logger) {
	logger.Info("Starting background workers")

	relay := func(subject string) {
		if err := mq.Subscribe(subject, func(msg []byte) error {
			hub.Broadcast(msg)
			return nil
		}); err != nil {
			logger.Error("Failed to subscribe", zap.String("subject", subject), zap.Error(err))
		}
	}

	relay(queue.SubjectEmergencyTriggered)
	relay(queue.SubjectFaceEnrolled)
	relay(queue.SubjectNotifications)
}
