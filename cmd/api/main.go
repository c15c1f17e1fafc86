package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/imbecis/app-imbecis/internal/app"
	"github.com/imbecis/app-imbecis/internal/config"
	"github.com/imbecis/app-imbecis/internal/device"
	"github.com/imbecis/app-imbecis/internal/handlers"
	"github.com/imbecis/app-imbecis/internal/logging"
	"github.com/imbecis/app-imbecis/internal/messages"
	"github.com/imbecis/app-imbecis/internal/middleware"
	"github.com/imbecis/app-imbecis/internal/observability"
	"github.com/imbecis/app-imbecis/internal/services"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Initialize logger first
	if err := logging.InitLogger(); err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}

	// Load configuration
	if err := config.LoadConfig(); err != nil {
		logging.Logger.Fatal("failed to load config", zap.Error(err))
	}
	cfg := config.AppConfig

	ctx := context.Background()

	// Initialize observability
	if err := observability.InitTracer(ctx, cfg); err != nil {
		logging.Logger.Warn("tracing unavailable", zap.Error(err))
	}
	defer func() {
		if err := observability.ShutdownTracer(context.Background()); err != nil {
			logging.Logger.Error("failed to shutdown tracer", zap.Error(err))
		}
	}()
	a, err := app.New(ctx, cfg, logging.Logger)
	if err != nil {
		logging.Logger.Fatal("failed to initialize app", zap.Error(err))
	}
	defer a.Close()

	if _, err := a.Devices.Ensure(ctx); err != nil {
		logging.Logger.Warn("device id unavailable, requests will carry an empty device-uuid", zap.Error(err))
	}

	// Callers may forward their own device-uuid; otherwise the local one is used
	devices := device.ContextProvider{Fallback: a.Devices}
	pages := services.NewPageLoader(a.ClientsFor(devices, a.Session))
	newLoader := func(session *services.Session) *services.PageLoader {
		return services.NewPageLoader(a.ClientsFor(devices, session))
	}

	checks := make(map[string]handlers.HealthCheckFunc)
	for name, check := range a.HealthChecks() {
		checks[name] = check
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, logging.Logger)

	// Create router with middleware
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RequestTracker(),
		middleware.RequestTiming(),
		cors.Default(),
	)

	// Metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/v1")
	v1.Use(
		limiter.Middleware(messages.New(cfg.Locale)),
		middleware.DeviceUUID(),
	)
	handlers.New(pages, newLoader, checks, logging.Logger).Register(v1)

	// Create server with timeouts
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logging.Logger.Info("starting server",
			zap.Int("port", cfg.Port),
			zap.String("environment", cfg.Environment),
			zap.String("api_base_url", cfg.APIBaseURL),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	logging.Logger.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logging.Logger.Info("server exited gracefully")
}
