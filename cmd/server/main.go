package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/ycetindil/attrio/internal/api"
	"github.com/ycetindil/attrio/internal/catalog"
	"github.com/ycetindil/attrio/internal/codec"
	"github.com/ycetindil/attrio/internal/config"
	"github.com/ycetindil/attrio/internal/db"
	"github.com/ycetindil/attrio/internal/export"
	"github.com/ycetindil/attrio/internal/history"
	"github.com/ycetindil/attrio/internal/middleware"
	"github.com/ycetindil/attrio/internal/observ"
	"github.com/ycetindil/attrio/internal/repository"
	"github.com/ycetindil/attrio/migrations"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := observ.NewLogger(cfg.Log.Env, cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	conn, err := db.NewConnection(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer conn.Close()

	if err := db.RunMigrations(cfg.Database, migrations.FS); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	attrRepo := repository.NewAttributeRepository(conn.Pool)
	groupRepo := repository.NewAttributeGroupRepository(conn.Pool)
	itemRepo := repository.NewItemRepository(conn.Pool)
	histRepo := repository.NewHistoryRepository(conn.Pool)

	histSvc := history.NewService(histRepo, history.CacheConfig{
		Size: cfg.Cache.Size,
		TTL:  cfg.Cache.TTL,
	}, logger)

	cdc := codec.New(codec.Config{
		DefaultCurrency:    cfg.Codec.DefaultCurrency,
		DefaultCountryCode: cfg.Codec.DefaultCountryCode,
		EmptyMarker:        cfg.Codec.EmptyMarker,
	})

	catalogSvc := catalog.NewService(attrRepo, groupRepo, itemRepo, histSvc, cdc, logger)
	importer := catalog.NewImporter(catalogSvc, histSvc, logger)
	exporter := export.NewService(catalogSvc, histSvc, logger)

	handler := api.NewHandler(catalogSvc, histSvc, exporter, importer, logger)

	mux := http.NewServeMux()
	mux.Handle("/api/", handler.Routes())
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
	})

	root := corsHandler.Handler(
		middleware.Recover(logger)(
			middleware.Logging(logger)(middleware.Identity(mux)),
		),
	)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("addr", cfg.Server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
}
