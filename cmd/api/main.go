package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "github.com/johnquangdev/transcript-iq/docs"
	pkgvalidator "github.com/johnquangdev/transcript-iq/pkg/validator"

	"github.com/johnquangdev/transcript-iq/internal/adapter/handler"
	"github.com/johnquangdev/transcript-iq/internal/adapter/repository"
	"github.com/johnquangdev/transcript-iq/internal/infrastructure/cache"
	"github.com/johnquangdev/transcript-iq/internal/infrastructure/database"
	"github.com/johnquangdev/transcript-iq/internal/infrastructure/email"
	"github.com/johnquangdev/transcript-iq/internal/infrastructure/events"
	httpmw "github.com/johnquangdev/transcript-iq/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/transcript-iq/internal/infrastructure/storage"
	aiuse "github.com/johnquangdev/transcript-iq/internal/usecase/ai"
	"github.com/johnquangdev/transcript-iq/internal/usecase/auth"
	projectuse "github.com/johnquangdev/transcript-iq/internal/usecase/project"
	pkgai "github.com/johnquangdev/transcript-iq/pkg/ai"
	"github.com/johnquangdev/transcript-iq/pkg/config"
	"github.com/johnquangdev/transcript-iq/pkg/jwt"
)

// @title           TranscriptIQ API
// @version         1.0
// @description     Theme and disagreement analysis, chat and quote cleanup over interview transcripts.

// @BasePath  /v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg.Server.Environment)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	e.Use(middleware.RequestID())

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${id} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{"authorization", "x-client-info", "apikey", "content-type", echo.HeaderXRequestID, handler.HookSignatureHeader},
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")
	startupCtx := context.Background()

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(startupCtx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	if cfg.Database.AutoMigrate {
		log.Println("🔄 Applying embedded migrations...")
		n, err := database.AutoMigrate(db, logger)
		if err != nil {
			log.Fatalf("Failed to apply migrations: %v", err)
		}
		log.Printf("✅ Applied %d migration(s)", n)
	} else {
		log.Println("🔄 Skipping migrations; run cmd/migrate to manage the schema")
	}

	checks := map[string]handler.HealthCheck{
		"database": func(ctx context.Context) error { return database.Ping(ctx, db) },
	}

	// Initialize cache: Redis when configured, otherwise in-process
	var store cache.Store
	if cfg.Redis.Host != "" {
		log.Println("📦 Connecting to Redis...")
		redisClient, err := cache.NewRedisClient(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		store = cache.NewRedisStore(redisClient)
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	} else {
		log.Println("📦 Using in-memory cache")
		memStore := cache.NewMemoryStore()
		defer memStore.Close()
		store = memStore
	}

	// Object storage for transcript and raw model output archives
	var archiver *storage.MinIOClient
	if cfg.Storage.Enabled {
		log.Println("🗄️  Connecting to object storage...")
		archiver, err = storage.NewMinIOClient(startupCtx, &cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to initialize object storage: %v", err)
		}
		checks["storage"] = archiver.Ping
	}

	// Domain events
	var publisher *events.Publisher
	if cfg.Events.URL != "" {
		log.Println("📡 Connecting to NATS...")
		publisher, err = events.NewPublisher(cfg.Events.URL, cfg.Events.SubjectPrefix, logger)
		if err != nil {
			log.Fatalf("Failed to connect to NATS: %v", err)
		}
		defer publisher.Close()
	}

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	projectRepo := repository.NewProjectRepository(db)
	transcriptRepo := repository.NewTranscriptRepository(db)
	analysisRepo := repository.NewAnalysisRepository(db)
	chatRepo := repository.NewChatRepository(db)

	// Initialize AI components
	log.Println("🤖 Initializing AI components...")
	generators := aiuse.Generators{
		Analysis: mustGenerator(cfg.AI.AnalysisProvider, &cfg.AI),
		Chat:     mustGenerator(cfg.AI.ChatProvider, &cfg.AI),
		Cleanup:  mustGenerator(cfg.AI.CleanupProvider, &cfg.AI),
	}

	aiOpts := []aiuse.Option{aiuse.WithCache(store)}
	deps := projectuse.Dependencies{Cache: store, CacheTTL: cfg.Analysis.CacheTTL}
	if archiver != nil {
		aiOpts = append(aiOpts, aiuse.WithArchiver(archiver))
		deps.Archiver = archiver
	}
	if publisher != nil {
		aiOpts = append(aiOpts, aiuse.WithPublisher(publisher))
	}
	if cfg.AI.AssemblyAIAPIKey != "" {
		deps.Transcriber = pkgai.NewAssemblyAIClient(cfg.AI.AssemblyAIAPIKey, "")
	} else {
		log.Println("⚠️  ASSEMBLYAI_API_KEY not set; audio import is disabled")
	}

	aiService := aiuse.NewAIService(projectRepo, transcriptRepo, analysisRepo, chatRepo, generators, &cfg.Analysis, logger, aiOpts...)
	projectService := projectuse.NewProjectService(projectRepo, transcriptRepo, analysisRepo, chatRepo, deps, logger)

	aiController := handler.NewAIController(aiService, projectService, logger)
	projectHandler := handler.NewProjectHandler(projectService, aiService, logger)

	// Auth email hook
	var webhookHandler *handler.WebhookHandler
	if cfg.Email.ResendAPIKey != "" {
		sender, err := email.NewResendSender(cfg.Email.ResendAPIKey)
		if err != nil {
			log.Fatalf("Failed to initialize email sender: %v", err)
		}
		emailService := auth.NewEmailService(sender, &cfg.Email, logger)
		webhookHandler = handler.NewWebhookHandler(emailService, cfg.Email.HookSecret, logger)
		log.Println("✅ Auth email hook initialized")
	} else {
		log.Println("⚠️  RESEND_API_KEY not set; send-auth-email is disabled")
	}

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	verifier := jwt.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	authEchoMW := httpmw.EchoAuth(verifier, cfg.Auth.Required)
	functionAuthMW := httpmw.EchoAuth(verifier, false)

	router := handler.NewRouter(cfg, aiController, projectHandler, webhookHandler, authEchoMW, functionAuthMW, checks)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}

func newLogger(environment string) (*zap.Logger, error) {
	if environment == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func mustGenerator(provider string, cfg *config.AIConfig) pkgai.Generator {
	g, err := pkgai.NewGenerator(provider, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize %s generator: %v", provider, err)
	}
	return g
}
