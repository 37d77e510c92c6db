package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/groupbuy/internal/config"
	"github.com/mmynk/groupbuy/internal/groupbuy"
	"github.com/mmynk/groupbuy/internal/handler"
	"github.com/mmynk/groupbuy/internal/metrics"
	"github.com/mmynk/groupbuy/internal/middleware"
	"github.com/mmynk/groupbuy/internal/models"
	"github.com/mmynk/groupbuy/internal/service"
	"github.com/mmynk/groupbuy/internal/storage"
	"github.com/mmynk/groupbuy/internal/storage/backend"
	"github.com/mmynk/groupbuy/pkg/logging"
)

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	medium := backend.Open(ctx, cfg.StorageDSN)
	defer medium.Close()

	m := metrics.New()
	store := storage.NewPersistent(medium, storage.CollectionKey, models.Collection{})
	svc := service.NewGroupBuyService(ctx, store, groupbuy.NewReducer(), m)

	mux := http.NewServeMux()
	handler.New(svc).Register(mux)
	mux.Handle("GET /metrics", m.Handler())

	staticDir, err := filepath.Abs(cfg.StaticPath)
	if err != nil {
		slog.Error("Failed to resolve static path", "error", err)
		os.Exit(1)
	}
	if handler.MountStatic(mux, staticDir) {
		slog.Info("Serving static files", "path", staticDir)
	} else {
		slog.Warn("No frontend found, serving API only", "path", staticDir)
	}

	// Metrics wraps the mux directly so the matched route pattern is visible to it.
	h := middleware.Logging(middleware.CORS(middleware.Metrics(m)(mux)))

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           h2c.NewHandler(h, &http2.Server{}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Shutdown failed", "error", err)
		}
	}()

	slog.Info("Server starting", "address", cfg.Addr, "url", "http://"+cfg.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}
