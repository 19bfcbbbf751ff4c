package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"alertcast/internal/config"
	"alertcast/internal/handlers/shared"
	"alertcast/internal/middleware"
	"alertcast/internal/services"
	"alertcast/internal/utils"
	"alertcast/pkg/logger"
	"alertcast/routes"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:   logger.LogLevel(cfg.App.LogLevel),
		Format:  cfg.App.LogFormat,
		Output:  cfg.App.LogOutput,
		Colors:  cfg.App.Debug,
		AppName: cfg.App.Name,
		Version: cfg.App.Version,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, appLogger); err != nil {
		appLogger.WithError(err).Fatal("Server stopped with error")
	}
}

func run(ctx context.Context, cfg *config.Config, appLogger *logger.Logger) error {
	deps, err := newDependencies(ctx, cfg, appLogger)
	if err != nil {
		return err
	}
	defer deps.Close()

	reportService := services.NewReportService(
		services.NewPublicationGuard(deps.reports, services.GuardOptions{
			AllowRepublish: cfg.Dispatch.AllowRepublish,
			Claimer:        deps.claimer,
			ClaimTTL:       cfg.Dispatch.PublishClaimTTL,
		}, appLogger),
		services.NewAlertComposer(cfg.Dispatch.AlertTitle, utils.LoadLocation(cfg.App.Timezone)),
		services.NewRecipientDirectory(deps.users),
		services.NewDispatchEngine(deps.push, deps.sms, services.DispatchOptions{
			MaxConcurrency:     cfg.Dispatch.MaxConcurrency,
			AttemptTimeout:     cfg.Dispatch.AttemptTimeout,
			AlertSound:         cfg.Push.AlertSound,
			AlertTTL:           cfg.Push.AlertTTL,
			AndroidChannelID:   cfg.Push.AlertAndroidChannelID,
			DefaultCountryCode: cfg.SMS.DefaultCountryCode,
		}, appLogger),
		services.NewStatusNotifier(deps.push, cfg.Dispatch.AttemptTimeout, appLogger),
		appLogger,
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	if err := router.SetTrustedProxies(cfg.Security.TrustedProxies); err != nil {
		return fmt.Errorf("invalid trusted proxies: %w", err)
	}

	// Global middleware
	router.Use(middleware.RecoveryMiddleware(appLogger))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware(appLogger))
	router.Use(middleware.CORSMiddleware(cfg.Security.CORSAllowedOrigins))

	routes.Setup(router, shared.NewReportHandler(reportService, appLogger), cfg.App.Version)

	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.App.Host, cfg.App.Port),
		Handler: router,
	}

	serveErr := make(chan error, 1)
	go func() {
		appLogger.WithFields(map[string]interface{}{
			"addr":      server.Addr,
			"directory": cfg.Directory.Backend,
			"push":      cfg.Push.Provider,
			"sms":       cfg.SMS.Provider,
		}).Info("Starting server")
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	appLogger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
