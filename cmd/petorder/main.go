package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"pet-shop/internal/adapters/catalog/remote"
	"pet-shop/internal/adapters/storage/memory"
	pg "pet-shop/internal/adapters/storage/postgres"
	"pet-shop/internal/config"
	"pet-shop/internal/domain/orders"
	"pet-shop/internal/platform/logger"
	"pet-shop/internal/router"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logg := logger.NewFromEnv()

	stores, err := buildStores(cfg)
	if err != nil {
		log.Fatalf("catalog clients: %v", err)
	}

	ledger, err := buildLedger(cfg)
	if err != nil {
		log.Fatalf("ledger: %v", err)
	}

	r := router.NewPetorderRouter(router.PetorderOptions{
		Stores:       stores,
		Ledger:       ledger,
		SecretHeader: cfg.Order.OwnerHeader,
		SecretValue:  cfg.Order.OwnerSecret,
		Log:          logg,
	})

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	logg.Info("starting petorder", map[string]any{"addr": addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

func buildStores(cfg *config.Config) ([]orders.StoreInstance, error) {
	urls := []struct {
		id  int
		url string
	}{
		{1, cfg.Order.Petstore1URL},
		{2, cfg.Order.Petstore2URL},
	}

	out := make([]orders.StoreInstance, 0, len(urls))
	for _, u := range urls {
		c, err := remote.New(u.url, 0)
		if err != nil {
			return nil, fmt.Errorf("store %d (%s): %w", u.id, u.url, err)
		}
		out = append(out, orders.StoreInstance{ID: u.id, Client: c})
	}
	return out, nil
}

func buildLedger(cfg *config.Config) (orders.Ledger, error) {
	if cfg.Order.DocstoreDSN == "" {
		return memory.NewLedger(), nil
	}

	db, err := pg.Open(cfg.Order.DocstoreDSN)
	if err != nil {
		return nil, err
	}

	repo := pg.NewLedgerRepo(db)
	if err := repo.EnsureSchema(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}
