// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"hrms/internal/cache"
	"hrms/internal/config"
	"hrms/internal/logger"
	"hrms/internal/routes"
	"hrms/internal/service"
	"hrms/internal/storage"
)

var configPath = flag.String("config", "config/config.yaml", "path to an optional YAML config file")

func main() {
	flag.Parse()
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		// logging is not configured yet
		logger.New(os.Stderr, "error", "text").Error("config error", "error", err)
		os.Exit(1)
	}

	lg := logger.New(os.Stdout, cfg.Logging.Level, cfg.Logging.Format)
	if !strings.EqualFold(cfg.Logging.Level, "debug") {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := storage.OpenDB(cfg.Database, lg)
	if err != nil {
		lg.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer storage.Close(db)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var reportCache service.ReportCache
	if rc := cache.Connect(ctx, cfg.Redis, lg); rc != nil {
		reportCache = rc
		defer rc.Close()
	}

	svc := service.NewHRService(storage.NewGormTxManager(db), reportCache, lg)
	r, err := routes.NewRouter(routes.Deps{
		Svc:    svc,
		Ping:   func(ctx context.Context) error { return storage.Ping(ctx, db) },
		Logger: lg,
	})
	if err != nil {
		lg.Error("failed to build router", "error", err)
		os.Exit(1)
	}

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error("http shutdown error", "error", err)
		}
	}()

	lg.Info("hrms listening", "addr", cfg.Server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		lg.Error("http server error", "error", err)
		os.Exit(1)
	}
	lg.Info("hrms stopped")
}
