package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/samirrijal/bubblepoint/internal/adapters/catalog"
	"github.com/samirrijal/bubblepoint/internal/adapters/http"
	natsadapter "github.com/samirrijal/bubblepoint/internal/adapters/nats"
	"github.com/samirrijal/bubblepoint/internal/adapters/valkey"
	"github.com/samirrijal/bubblepoint/internal/core/domain"
	"github.com/samirrijal/bubblepoint/internal/core/ports"
	"github.com/samirrijal/bubblepoint/internal/core/thermo"
	"github.com/samirrijal/bubblepoint/internal/core/usecases"
	"github.com/samirrijal/bubblepoint/internal/pkg/config"
	"github.com/samirrijal/bubblepoint/internal/pkg/logging"
	"github.com/samirrijal/bubblepoint/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("bubblepoint-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.TempoAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	// Cache (optional)
	var cache *valkey.Cache
	var cacheSvc ports.CacheService
	if cfg.Valkey.Addr != "" {
		cache, err = valkey.New(cfg.Valkey.Addr)
		if err != nil {
			slog.Warn("valkey unavailable", "error", err)
		} else {
			cache.WithPrefix("bubblepoint:")
			cacheSvc = cache
			defer cache.Close()
		}
	}

	// NATS (optional)
	var publisher ports.ResultPublisher
	var pub *natsadapter.Publisher
	if cfg.NATS.URL != "" {
		pub, err = natsadapter.NewPublisher(cfg.NATS.URL)
		if err != nil {
			slog.Warn("nats unavailable", "error", err)
		} else {
			publisher = pub
			defer pub.Close()
		}
	}

	// Use cases
	repo := catalog.New()
	solver := thermo.NewSolver(cfg.Solver.Options())
	bubbleSvc := usecases.NewBubblePointService(repo, solver, cacheSvc, publisher).
		WithDefaultMixture(domain.ComponentID(cfg.Mixture.Component1), domain.ComponentID(cfg.Mixture.Component2)).
		WithCacheTTL(cfg.Valkey.TTLSeconds)

	deps := &http.Dependencies{
		BubblePoints: bubbleSvc,
		Components:   usecases.NewComponentService(repo),
		Cache:        cache,
	}
	if pub != nil {
		deps.NATS = pub.Conn()
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    64 * 1024,
		AppName:      "Bubble Point API",
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
		MaxAge:       3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr,
			"component1", cfg.Mixture.Component1, "component2", cfg.Mixture.Component2)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
