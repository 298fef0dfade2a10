package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/smartpos/smartposgo/internal/config"
	"github.com/smartpos/smartposgo/internal/database"
	"github.com/smartpos/smartposgo/internal/handlers"
	"github.com/smartpos/smartposgo/internal/remote"
	"github.com/smartpos/smartposgo/internal/store"
	possync "github.com/smartpos/smartposgo/internal/sync"
	"github.com/smartpos/smartposgo/internal/websocket"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Open the durable local store. If the database cannot be opened the
	// register keeps running on memory only; sales survive the session but
	// not a restart, and the operator sees the warning below.
	var st store.Store
	var db *database.DB
	db, err = database.Connect(cfg.Database)
	if err != nil {
		log.Printf("⚠️ Local database unavailable, falling back to memory-only mode: %v", err)
		st = store.NewMemoryStore()
	} else {
		st = store.NewDBStore(db)
	}

	// 3. Provision the schema (Critical for Zero-Config)
	log.Println("🚀 Synchronizing local store schema...")
	if err := st.Init(); err != nil {
		log.Printf("⚠️ Store init failed, falling back to memory-only mode: %v", err)
		st = store.NewMemoryStore()
		_ = st.Init()
	} else {
		log.Println("✅ Local store ready")
	}

	// 4. Remote backend client + connectivity monitor
	api := remote.NewClient(cfg.Remote.BaseURL, cfg.Remote.APIToken, cfg.Remote.Timeout)
	monitor := possync.NewMonitor(api, time.Duration(cfg.Sync.HealthInterval)*time.Second)

	// 5. Sync engine draining the pending-mutation queue
	log.Println("🔄 Initializing Sync Engine...")
	engine := possync.NewEngine(st, api, monitor, time.Duration(cfg.Sync.DrainInterval)*time.Second)
	monitor.OnOnline(engine.RequestSync)

	// 6. WebSocket hub pushing queue/connectivity state to the register UI
	hub := websocket.NewHub()
	go hub.Run()
	engine.OnDrained(func(result possync.DrainResult) {
		hub.Broadcast("sync", engine.Status())
	})

	monitor.Start()
	if cfg.Sync.Enabled {
		if err := engine.Start(); err != nil {
			log.Printf("⚠️ Sync Engine: Failed to start: %v", err)
		} else {
			log.Println("✅ Sync Engine: Started successfully")
		}
	}

	// 7. Cache hydration from the backend (products, customers)
	hydrator := possync.NewHydrator(st, api, monitor, time.Duration(cfg.Sync.HydrateInterval)*time.Minute)
	if cfg.Sync.Enabled {
		hydrator.Start(cfg.Sync.HydrateOnStartup)
	}

	// 8. HTTP router
	router := handlers.NewRouter(cfg, st, engine, monitor, hub)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Channel to listen for shutdown signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Register service starting on port %s\n", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown signal
	sig := <-shutdown
	log.Printf("\n⚠️  Received signal: %v. Shutting down gracefully...\n", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	hydrator.Stop()
	engine.Stop()
	monitor.Stop()

	if db != nil {
		log.Println("🛑 Closing local database...")
		if err := db.Close(); err != nil {
			log.Printf("Database close error: %v", err)
		}
	}

	log.Println("✅ Shutdown complete")
}
