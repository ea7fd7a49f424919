package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/neataffiliates/signup-feed-service/internal/adapters/myaffiliates"
	"github.com/neataffiliates/signup-feed-service/internal/adapters/supabase"
	"github.com/neataffiliates/signup-feed-service/internal/config"
	brandsHandler "github.com/neataffiliates/signup-feed-service/internal/handlers/brands"
	signupHandler "github.com/neataffiliates/signup-feed-service/internal/handlers/signup"
	"github.com/neataffiliates/signup-feed-service/internal/middleware"
	signupService "github.com/neataffiliates/signup-feed-service/internal/services/signup"
	"github.com/neataffiliates/signup-feed-service/pkg/httpclient"
	"github.com/neataffiliates/signup-feed-service/pkg/logging"
	pkgmiddleware "github.com/neataffiliates/signup-feed-service/pkg/middleware"
	"github.com/neataffiliates/signup-feed-service/pkg/observability"
)

// feedBinding ties a URL brand slug to its credentials and wire convention.
type feedBinding struct {
	slug       string
	brand      string
	convention myaffiliates.Convention
	creds      config.FeedCredentials
}

func main() {
	// Load .env when present; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := initLogger(cfg.Logger)
	defer logger.Sync()

	logger.Info("Starting signup feed service",
		zap.Int("port", cfg.Server.Port),
		zap.Int("metrics_port", cfg.Server.MetricsPort),
	)

	bindings := []feedBinding{
		{slug: "realm", brand: "Realm", convention: myaffiliates.ConventionIndexed, creds: cfg.Feeds.Realm},
		{slug: "throne", brand: "Throne", convention: myaffiliates.ConventionFlat, creds: cfg.Feeds.Throne},
		{slug: "bluffbet", brand: "Bluffbet", convention: myaffiliates.ConventionFlat, creds: cfg.Feeds.Bluffbet},
	}

	feedHTTPClient := httpclient.NewHTTPClient(httpclient.FeedClientConfig(), time.Duration(cfg.Feeds.Realm.Timeout)*time.Second)
	portLogger := logging.NewZapLogger(logger)

	service := signupService.NewService(logger)
	feedChecks := make([]observability.FeedCheck, 0, len(bindings))
	for _, b := range bindings {
		feedConfig := myaffiliates.FeedConfig{
			Brand:      b.brand,
			Convention: b.convention,
			URL:        b.creds.URL,
			Username:   b.creds.Username,
			Password:   b.creds.Password,
			Timeout:    time.Duration(b.creds.Timeout) * time.Second,
		}

		configured := feedConfig.Validate() == nil
		if !configured {
			// Startup proceeds; submissions for this brand fail individually
			logger.Warn("Feed not configured", zap.String("brand", b.brand))
		}
		feedChecks = append(feedChecks, observability.FeedCheck{Brand: b.slug, Configured: configured})

		service.Register(b.slug, myaffiliates.NewFeedAdapter(feedConfig, feedHTTPClient, portLogger))
	}

	catalogTTL := time.Duration(cfg.Catalog.TTLSeconds) * time.Second
	catalogStore := supabase.NewObjectStore(cfg.Catalog.ProjectURL, cfg.Catalog.ServiceRoleKey)
	catalog := supabase.NewBrandCatalog(catalogStore, logger, cfg.Catalog.Bucket, cfg.Catalog.Object, catalogTTL)

	signupH := signupHandler.NewHandler(service, logger)
	brandsH := brandsHandler.NewHandler(catalog, logger)
	healthChecker := observability.NewHealthChecker(feedChecks)

	mux := http.NewServeMux()
	mux.Handle("POST /api/signup/{brand}", observability.Middleware("/api/signup", http.HandlerFunc(signupH.HandleSignup)))
	mux.Handle("GET /api/brands", observability.Middleware("/api/brands", http.HandlerFunc(brandsH.HandleBrands)))
	mux.HandleFunc("GET /healthz", healthChecker.HealthHandler())

	rateLimiter := pkgmiddleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	defer rateLimiter.Shutdown()

	securityHeaders := middleware.NewSecurityHeaders(cfg.Logger.Development)
	cors := middleware.NewCORS(cfg.CORS.AllowedOrigins)
	requestLogger := middleware.NewRequestLogger(logger)

	var handler http.Handler = mux
	handler = requestLogger.Middleware(handler)
	handler = rateLimiter.Middleware(handler)
	handler = cors.Middleware(handler)
	handler = securityHeaders.Middleware(handler)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", observability.MetricsHandler())
	metricsServer := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.MetricsPort),
		Handler: metricsMux,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("address", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to serve HTTP", zap.Error(err))
		}
	}()

	go func() {
		logger.Info("Metrics server listening", zap.String("address", metricsServer.Addr))
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to serve metrics", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down servers...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Metrics server shutdown error", zap.Error(err))
	}

	logger.Info("Servers stopped")
}

// initLogger initializes the logger
func initLogger(cfg config.LoggerConfig) *zap.Logger {
	level := zapcore.InfoLevel
	if parsed, err := zapcore.ParseLevel(cfg.Level); err == nil {
		level = parsed
	}

	if cfg.Development {
		zapCfg := zap.NewDevelopmentConfig()
		zapCfg.Level = zap.NewAtomicLevelAt(level)
		logger, _ := zapCfg.Build()
		return logger
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	logger, _ := zapCfg.Build()
	return logger
}
