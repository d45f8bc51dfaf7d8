package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hinterbergers/mycliniq-sub000/config"
	"github.com/hinterbergers/mycliniq-sub000/internal/api/handler"
	"github.com/hinterbergers/mycliniq-sub000/internal/api/router"
	"github.com/hinterbergers/mycliniq-sub000/internal/plan"
	"github.com/hinterbergers/mycliniq-sub000/internal/repository"
	"github.com/hinterbergers/mycliniq-sub000/internal/service"
	"github.com/hinterbergers/mycliniq-sub000/pkg/database"
	"github.com/hinterbergers/mycliniq-sub000/pkg/jwt"
	applogger "github.com/hinterbergers/mycliniq-sub000/pkg/logger"
	"github.com/hinterbergers/mycliniq-sub000/pkg/redis"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialize logging
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting duty-roster portal",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. Connect to the database
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	logger.Info("database connected")

	// 3.1 Run migrations
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("obtain sql.DB failed", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("database migration failed", zap.Error(err))
	}

	// 4. Connect to redis (optional: rate limiting and the per-period run
	// lock degrade gracefully when unavailable)
	var rdb *redis.Client
	rdb, err = redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis unavailable, run locking and rate limits degrade", zap.Error(err))
		rdb = nil
	}

	// 5. JWT manager (verifies tokens issued by the clinic account service)
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// 6. Compile the planning document schemas
	validator, err := plan.NewSchemaValidator()
	if err != nil {
		logger.Fatal("compile planning schemas failed", zap.Error(err))
	}

	// 7. Dependency injection: repository → service → handler
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, validator, rdb, logger)
	h := handler.NewHandler(svc)

	// 8. Router
	engine := router.Setup(cfg, h, jwtMgr, rdb, logger)

	// 9. HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	// 10. Wait for a shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutdown signal received", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}

	closeDB, _ := db.DB()
	if closeDB != nil {
		closeDB.Close()
	}
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("server stopped")
}
