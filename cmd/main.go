package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/sbilibin2017/gw-content-studio/docs"
	"github.com/sbilibin2017/gw-content-studio/internal/config"
	"github.com/sbilibin2017/gw-content-studio/internal/facades"
	"github.com/sbilibin2017/gw-content-studio/internal/handlers"
	"github.com/sbilibin2017/gw-content-studio/internal/health"
	"github.com/sbilibin2017/gw-content-studio/internal/jwt"
	"github.com/sbilibin2017/gw-content-studio/internal/logger"
	"github.com/sbilibin2017/gw-content-studio/internal/middlewares"
	"github.com/sbilibin2017/gw-content-studio/internal/repositories"
	"github.com/sbilibin2017/gw-content-studio/internal/repositories/memory"
	"github.com/sbilibin2017/gw-content-studio/internal/services"
	"github.com/sbilibin2017/gw-content-studio/internal/storage"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// @title gw-content-studio API
// @version 1.0.0
// @description AI marketing content studio: profiles, credit-metered generation and content history
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @securityDefinitions.apikey AdminKey
// @in header
// @name X-Admin-Key
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := logger.Initialize(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Log.Sync()

	if err := run(context.Background(), cfg); err != nil {
		logger.Log.Errorw("application stopped with error", "error", err)
		os.Exit(1)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Version: %s\nCommit: %s\nBuild: %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// openStorage connects and migrates PostgreSQL when a DSN is configured and
// falls back to the in-memory backend otherwise.
func openStorage(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	if cfg.DatabaseURL == "" {
		logger.Log.Warn("DATABASE_URL is empty, using the in-memory backend")
		return memory.New(), nil
	}

	db, err := repositories.Open(ctx, cfg.DatabaseURL, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}
	if err := repositories.RunMigrations(ctx, db.DB); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrations failed: %w", err)
	}
	logger.Log.Info("PostgreSQL backend ready")
	return repositories.NewPostgres(db), nil
}

// newSpendLocker returns a Redis lock shared by every instance when Redis is
// configured, an in-process lock otherwise. The returned close func is never nil.
func newSpendLocker(ctx context.Context, cfg *config.Config) (services.SpendLocker, func() error, error) {
	if cfg.RedisAddr == "" {
		return memory.NewLocker(), func() error { return nil }, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, nil, fmt.Errorf("redis connection error: %w", err)
	}
	return repositories.NewSpendLockRepository(rdb, cfg.SpendLockTTL), rdb.Close, nil
}

// newKafkaWriter returns nil when no brokers are configured, which disables
// ledger events.
func newKafkaWriter(cfg *config.Config) services.KafkaWriter {
	if len(cfg.KafkaBrokers) == 0 {
		return nil
	}
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaTopic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}
}

type app struct {
	store     storage.Storage
	jwt       *jwt.JWT
	session   *services.SessionService
	profiles  *services.ProfileService
	contents  *services.ContentService
	credits   *services.CreditService
	adminHash string
}

// newApp builds the services on top of the selected backends.
func newApp(cfg *config.Config, store storage.Storage, locker services.SpendLocker, kafkaWriter services.KafkaWriter) *app {
	generator := facades.NewTextGenerationOpenAIFacade(
		facades.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL),
		cfg.OpenAIModel,
		cfg.OpenAIMaxTokens,
	)
	tokens := jwt.New(jwt.WithSecretKey(cfg.JWTSecretKey), jwt.WithExpiration(cfg.JWTExp))

	return &app{
		store:     store,
		jwt:       tokens,
		session:   services.NewSessionService(store),
		profiles:  services.NewProfileService(store),
		contents:  services.NewContentService(store, generator, locker, kafkaWriter),
		credits:   services.NewCreditService(store, kafkaWriter),
		adminHash: cfg.AdminAPIKeyHash,
	}
}

// newRouter mounts every API route on a chi router.
func newRouter(a *app, swaggerURL string) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware)

	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Get("/health", handlers.NewHealthHandler(a.store))

		// Admin routes
		r.With(middlewares.AdminMiddleware(a.adminHash)).
			Post("/credits/add", handlers.NewAddCreditsHandler(a.credits))

		// Protected routes with JWT middleware
		r.Group(func(r chi.Router) {
			r.Use(middlewares.AuthMiddleware(a.jwt))

			r.Post("/session", handlers.NewSessionHandler(a.session, a.jwt))

			r.Get("/profile", handlers.NewGetProfileHandler(a.profiles, a.jwt))
			r.Post("/profile", handlers.NewOnboardProfileHandler(a.profiles, a.jwt))
			r.Put("/profile", handlers.NewUpdateProfileHandler(a.profiles, a.jwt))

			r.Post("/generate", handlers.NewGenerateHandler(a.contents, a.jwt))
			r.Get("/history", handlers.NewHistoryHandler(a.contents, a.jwt))
			r.Delete("/content/{id}", handlers.NewDeleteContentHandler(a.contents, a.jwt))
			r.Patch("/content/{id}/status", handlers.NewSetContentStatusHandler(a.contents, a.jwt))

			r.Get("/credits", handlers.NewGetCreditsHandler(a.credits, a.jwt))
			r.Get("/credits/transactions", handlers.NewGetCreditTransactionsHandler(a.credits, a.jwt))

			r.Get("/metrics", handlers.NewMetricsHandler(a.contents, a.jwt))
		})
	})

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(swaggerURL)))

	return r
}

// run wires storage, the spend lock, Kafka, the OpenAI client and the HTTP
// and gRPC servers, then blocks until ctx is cancelled or a signal arrives.
func run(ctx context.Context, cfg *config.Config) error {
	store, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	locker, closeLocker, err := newSpendLocker(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeLocker()

	kafkaWriter := newKafkaWriter(cfg)
	if kafkaWriter != nil {
		defer kafkaWriter.Close()
	}

	if cfg.OpenAIAPIKey == "" {
		logger.Log.Warn("OPENAI_API_KEY is empty, generation requests will fail")
	}
	a := newApp(cfg, store, locker, kafkaWriter)

	docs.SwaggerInfo.Host = cfg.Addr()
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           newRouter(a, fmt.Sprintf("http://%s/swagger/doc.json", cfg.Addr())),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	errChan := make(chan error, 2)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	grpcDone := make(chan struct{})
	if cfg.GRPCPort != "" {
		go func() {
			defer close(grpcDone)
			addr := fmt.Sprintf("%s:%s", cfg.AppHost, cfg.GRPCPort)
			if err := health.NewServer(addr, store).Run(ctxShutdown); err != nil {
				errChan <- fmt.Errorf("gRPC server failed: %w", err)
			}
		}()
	} else {
		close(grpcDone)
	}

	var serveErr error
	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping servers...")
	case serveErr = <-errChan:
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}
	<-grpcDone

	if serveErr != nil {
		return serveErr
	}
	logger.Log.Info("servers stopped gracefully")
	return nil
}
