package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/peakspace-dev/peakspace/db"
	"github.com/peakspace-dev/peakspace/internal/auth"
	"github.com/peakspace-dev/peakspace/internal/config"
	"github.com/peakspace-dev/peakspace/internal/handlers"
	"github.com/peakspace-dev/peakspace/internal/outbox"
	"github.com/peakspace-dev/peakspace/internal/router"
	"github.com/peakspace-dev/peakspace/internal/services"
	"github.com/peakspace-dev/peakspace/internal/wizard"
)

const (
	shutdownTimeout   = 30 * time.Second
	outboxQueueSize   = 256
	outboxMaxAttempts = 3
	outboxBackoff     = 5 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := db.ConnectDatabase(cfg.Database.URL); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if cfg.AdminEnabled() {
		if err := auth.InitJWT(cfg.Auth.SecretKey, cfg.Auth.TokenExpiryHours); err != nil {
			log.Fatalf("Failed to initialize JWT: %v", err)
		}
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	draftStore := wizard.NewRedisDraftStore(redisClient, time.Duration(cfg.Redis.DraftTTLDays)*24*time.Hour)

	box := outbox.New(outboxQueueSize, outboxMaxAttempts, outboxBackoff)
	box.Start()

	emailService := services.NewEmailService(&cfg.Email)
	notifier := services.NewNotifier(cfg, emailService, db.DB)
	notifier.SetBroadcast(handlers.BroadcastInquiryRefresh)
	submissionService := services.NewSubmissionService(db.DB, box, notifier)

	handlers.Init(cfg, submissionService, emailService, draftStore, box)

	r := router.NewRouter(cfg)

	addr := fmt.Sprintf("%s:%s", cfg.App.Host, cfg.App.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Printf("Server listening on %s", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		log.Fatalf("Server failed: %v", err)
	case sig := <-shutdown:
		log.Printf("Received signal: %v. Starting graceful shutdown...", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("Error during graceful shutdown: %v", err)
		httpServer.Close()
	}

	box.Stop()

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing redis client: %v", err)
	}

	log.Println("Server shutdown complete")
}
