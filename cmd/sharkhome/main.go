package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"sharkhome/internal/config"
	apphttp "sharkhome/internal/http"
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

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
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

	// The stored sync settings win; env only seeds a fresh install.
	remoteCfg, err := store.LoadRemoteConfig(ctx)
	if err != nil {
		logger.Error("Failed to load sync settings", "error", err)
		os.Exit(1)
	}
	if remoteCfg.Endpoint == "" && cfg.RemoteEndpoint != "" {
		remoteCfg.Endpoint = cfg.RemoteEndpoint
		remoteCfg.Token = cfg.RemoteToken
		if err := store.SaveRemoteConfig(ctx, remoteCfg); err != nil {
			logger.Error("Failed to seed sync settings", "error", err)
			os.Exit(1)
		}
		logger.Info("Seeded sync settings from environment")
	}

	syncClient := remote.NewClient(remoteCfg.Endpoint, remoteCfg.Token)
	syncClient.OnStatus(func(s remote.Status) {
		slog.Debug("Sync status changed", "status", s.String())
	})

	if cfg.BootstrapOnStart {
		bootstrap(ctx, store, remoteCfg.Endpoint)
	}

	state, err := store.Load(ctx)
	if err != nil {
		logger.Error("Failed to load state", "error", err)
		os.Exit(1)
	}
	v := vocab.New(state.CustomProducts)

	shopping := services.NewShopping(store, v, syncClient)
	ledger := services.NewLedger(store, syncClient)
	recipes := services.NewRecipes(store)

	srv := apphttp.NewServer(":"+cfg.Port, shopping, ledger, recipes, v, store, syncClient)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting sharkhome server", "port", cfg.Port, "backend", cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}

	// Join in-flight pushes before the process exits.
	syncClient.Wait()
	logger.Info("Server stopped gracefully")
}

func openStore(cfg *config.Config) (storage.Store, error) {
	if cfg.DataBackend == "sqlite" {
		return storage.NewSQLiteStore(cfg.SQLiteDBPath)
	}
	return storage.NewFileStore(cfg.DataPath)
}

// bootstrap pulls the remote collections once and fills whichever local
// collections are still empty. Local data always wins; a failed or non-array
// fetch leaves everything as it was.
func bootstrap(ctx context.Context, store storage.Store, endpoint string) {
	reader := remote.NewReader(endpoint)

	state, err := store.Load(ctx)
	if err != nil {
		slog.Warn("Bootstrap skipped, cannot load state", "error", err)
		return
	}

	changed := false
	if len(state.ShoppingList) == 0 {
		if items, err := reader.FetchShoppingList(ctx); err != nil {
			slog.Warn("Bootstrap shopping fetch failed", "error", err)
		} else if len(items) > 0 {
			state.ShoppingList = items
			changed = true
		}
	}
	if len(state.Expenses) == 0 {
		if expenses, err := reader.FetchExpenses(ctx); err != nil {
			slog.Warn("Bootstrap expense fetch failed", "error", err)
		} else if len(expenses) > 0 {
			state.Expenses = expenses
			changed = true
		}
	}

	if !changed {
		return
	}
	if err := store.Save(ctx, state); err != nil {
		slog.Warn("Bootstrap save failed", "error", err)
		return
	}
	slog.Info("Bootstrapped local state from remote",
		"shopping_items", len(state.ShoppingList),
		"expenses", len(state.Expenses))
}
