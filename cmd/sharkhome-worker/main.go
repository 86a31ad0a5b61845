package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"sharkhome/internal/amqp"
	"sharkhome/internal/config"
	"sharkhome/internal/remote"
	"sharkhome/internal/services"
	"sharkhome/internal/storage"
	"sharkhome/internal/vocab"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("Starting sharkhome-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}

	store, err := openStore(cfg)
	if err != nil {
		logger.Error("Failed to initialize store", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	remoteCfg, err := store.LoadRemoteConfig(ctx)
	if err != nil {
		logger.Error("Failed to load sync settings", "error", err)
		os.Exit(1)
	}
	syncClient := remote.NewClient(remoteCfg.Endpoint, remoteCfg.Token)

	state, err := store.Load(ctx)
	if err != nil {
		logger.Error("Failed to load state", "error", err)
		os.Exit(1)
	}
	v := vocab.New(state.CustomProducts)

	shopping := services.NewShopping(store, v, syncClient)
	ledger := services.NewLedger(store, syncClient)
	router := services.NewIntentRouter(shopping, ledger)

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	err = amqpClient.ConsumeIntents(ctx, func(msg *amqp.IntentMessage) error {
		return router.Handle(ctx, msg)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Intent consumption failed", "error", err)
		syncClient.Wait()
		os.Exit(1)
	}

	syncClient.Wait()
	logger.Info("Worker stopped gracefully")
}

func openStore(cfg *config.Config) (storage.Store, error) {
	if cfg.DataBackend == "sqlite" {
		return storage.NewSQLiteStore(cfg.SQLiteDBPath)
	}
	return storage.NewFileStore(cfg.DataPath)
}
