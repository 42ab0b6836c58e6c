package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skovlund/choreboard/internal/actions"
	"github.com/skovlund/choreboard/internal/clock"
	"github.com/skovlund/choreboard/internal/config"
	"github.com/skovlund/choreboard/internal/database"
	"github.com/skovlund/choreboard/internal/logging"
	"github.com/skovlund/choreboard/internal/middleware"
	"github.com/skovlund/choreboard/internal/scheduler"
	"github.com/skovlund/choreboard/internal/server"
	"github.com/skovlund/choreboard/internal/storage"
	"github.com/skovlund/choreboard/internal/store"
	"github.com/skovlund/choreboard/internal/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)

	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("failed to resolve timezone: %v", err)
	}

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	clk := clock.NewSystem(loc)
	hub := websocket.NewHub(logger)
	st := store.New(store.Options{
		Persister: storage.NewSnapshotStore(db),
		Clock:     clk,
		Notifier:  hub,
		Actions:   actions.NewRunner(actions.LogExecutor{Logger: logger}, logger),
		Images:    storage.NewImageDir(cfg.MediaDir),
		Logger:    logger,
	})
	if err := st.Load(); err != nil {
		log.Fatalf("failed to load snapshot: %v", err)
	}
	defer st.Close()

	sched := scheduler.New(st, clk, logger)
	sched.Start(context.Background())
	defer sched.Stop()

	srv := server.New(st, hub)
	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      middleware.RequestLogger(logger)(srv.Router()),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("choreboard listening", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}
