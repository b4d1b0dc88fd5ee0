package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skeleton-creator/internal/common/config"
	"skeleton-creator/internal/common/middleware"
	"skeleton-creator/internal/creator/codegen"
	"skeleton-creator/internal/creator/handlers"
	"skeleton-creator/internal/creator/presets"
	"skeleton-creator/internal/creator/repository"
	"skeleton-creator/internal/creator/service"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/log"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// Skeleton Creator Service
// ============================================================

func main() {
	cfg := config.Load()
	log.SetLevel(cfg.Level())

	store := openStore(cfg.DBPath)

	registry := service.NewRegistry(service.Options{
		Store:    store,
		Emitter:  service.LogEmitter{},
		Tracker:  service.LogTracker{},
		Renderer: codegen.MustNew(),
		Presets:  presets.Default(),
		Debounce: cfg.Debounce(),
	})
	defer registry.Close()

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Skeleton Creator",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger())
	app.Use(middleware.CORS(cfg.AllowOrigins))

	// ============================================================
	// Routes
	// ============================================================

	handlers.Register(app,
		handlers.NewDesignHandler(registry, presets.Default()),
		handlers.NewHealthHandler(store),
	)

	// ============================================================
	// Server Start
	// ============================================================

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info("[CREATOR] shutting down")
		if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
			log.Errorf("[CREATOR] shutdown: %v", err)
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Infof("Starting Skeleton Creator on %s (env: %s)", addr, cfg.Environment)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// openStore открывает sqlite хранилище. Без него редактор работает, но
// ничего не сохраняет.
func openStore(dbPath string) repository.Store {
	db, err := repository.OpenSQLite(dbPath)
	if err != nil {
		log.Warnf("[STORAGE] open %s: %v, designs will not be persisted", dbPath, err)
		return repository.NopStore{}
	}

	store := repository.NewSQLiteStore(db)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.Init(ctx); err != nil {
		log.Warnf("[STORAGE] init %s: %v, designs will not be persisted", dbPath, err)
		_ = db.Close()
		return repository.NopStore{}
	}

	log.Infof("[STORAGE] using %s", dbPath)
	return store
}
