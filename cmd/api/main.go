// The api command runs the Maths Classes content API server.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"mathclasses-backend/internal/account"
	"mathclasses-backend/internal/catalog"
	"mathclasses-backend/internal/config"
	"mathclasses-backend/internal/download"
	"mathclasses-backend/internal/handlers"
	"mathclasses-backend/internal/middleware"
	"mathclasses-backend/internal/observability"
	"mathclasses-backend/internal/repository/breaker"
	"mathclasses-backend/internal/repository/supabase"
	"mathclasses-backend/internal/resources"
	"mathclasses-backend/internal/saved"
	"mathclasses-backend/pkg/auth"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, logLevel, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	watcher, err := config.NewWatcher(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to start config watcher", zap.Error(err))
	}
	defer watcher.Stop()

	// The log level is the one setting that can change without a restart;
	// everything else in the reloaded config takes effect on next boot.
	watcher.OnChange(func(newCfg *config.Config) {
		level, err := zapcore.ParseLevel(newCfg.Logging.Level)
		if err != nil {
			logger.Warn("ignoring reloaded log level", zap.String("level", newCfg.Logging.Level))
			return
		}
		logLevel.SetLevel(level)
		logger.Info("log level updated", zap.String("level", newCfg.Logging.Level))
	})

	fallback, err := loadFallback(cfg)
	if err != nil {
		logger.Fatal("Failed to load fallback catalog", zap.Error(err))
	}

	client, err := supabase.NewClient(cfg.Supabase.URL, cfg.Supabase.AnonKey)
	if err != nil {
		logger.Fatal("Failed to connect to Supabase", zap.Error(err))
	}

	validator, err := auth.NewValidator(cfg.Supabase.JWTSecret, "authenticated")
	if err != nil {
		logger.Fatal("Failed to build token validator", zap.Error(err))
	}

	metrics := observability.NewCollector("mathclasses")

	catalogRepo := breaker.NewCatalogRepository(
		supabase.NewCatalogRepository(client),
		breaker.DefaultConfig("catalog"),
		logger,
	)
	savedRepo := supabase.NewSavedResourceRepository(client)
	profileRepo := supabase.NewProfileRepository(client)
	fileStore := supabase.NewFileStore(client, cfg.Storage.Bucket)
	authenticator := supabase.NewAuthenticator(client)

	catalogService := catalog.NewService(catalogRepo, fallback, logger, metrics)
	savedService := saved.NewService(savedRepo, logger, metrics)
	downloadService := download.NewService(fileStore, cfg.Storage.SignedURLTTL, logger, metrics)
	resourceService := resources.NewService(catalogRepo, fileStore, logger)
	accountService := account.NewService(authenticator, profileRepo, logger)

	router := handlers.NewRouter(
		handlers.NewCatalogHandler(catalogService, downloadService, logger),
		handlers.NewSavedHandler(savedService, logger),
		handlers.NewResourceHandler(resourceService, cfg.Server.MaxUploadSize, logger),
		handlers.NewAccountHandler(accountService, logger),
		validator,
		metrics,
		logger,
		cfg.Server.AllowedOrigins,
		middleware.Timeout(cfg.Server.RequestTimeout, logger),
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("Starting server",
			zap.String("address", srv.Addr),
			zap.String("environment", string(cfg.Environment)),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
	}

	logger.Info("Server stopped")
}

func newLogger(cfg *config.Config) (*zap.Logger, zap.AtomicLevel, error) {
	level, err := zapcore.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, zap.AtomicLevel{}, err
	}

	var zapCfg zap.Config
	if cfg.Environment == config.Development {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, zap.AtomicLevel{}, err
	}
	return logger, zapCfg.Level, nil
}

func loadFallback(cfg *config.Config) (*catalog.Fallback, error) {
	if path := cfg.Catalog.FallbackDataPath; path != "" {
		return catalog.LoadFallback(path)
	}
	return catalog.DefaultFallback(), nil
}
