package router

import (
	"context"
	"net/http"
	"os"

	"pet-shop/internal/adapters/catalog/remote"
	"pet-shop/internal/adapters/storage/memory"
	pg "pet-shop/internal/adapters/storage/postgres"
	"pet-shop/internal/domain/orders"
	"pet-shop/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// PetorderOptions: Stores nil => se arman clientes remotos con
// PETSTORE1_URL/PETSTORE2_URL. Ledger nil => Postgres si hay DOCSTORE_DSN
// en el env, si no in-memory.
type PetorderOptions struct {
	Stores []orders.StoreInstance
	Ledger orders.Ledger

	SecretHeader string
	SecretValue  string

	Log logger.Logger
}

func NewPetorderRouter(opts PetorderOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Accept", "Content-Type", "OwnerPC"},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	stores := opts.Stores
	if stores == nil {
		stores = storesFromEnv()
	}

	ledger := opts.Ledger
	if ledger == nil {
		if dsn := os.Getenv("DOCSTORE_DSN"); dsn != "" {
			if db, err := pg.Open(dsn); err == nil {
				repo := pg.NewLedgerRepo(db)
				if err := repo.EnsureSchema(context.Background()); err == nil {
					ledger = repo
				}
			}
		}
	}
	if ledger == nil {
		ledger = memory.NewLedger()
	}

	header := opts.SecretHeader
	if header == "" {
		header = "OwnerPC"
	}
	secret := opts.SecretValue
	if secret == "" {
		secret = "LovesPetsL2M3n4"
	}

	svc := orders.NewService(stores, ledger, opts.Log)
	orders.RegisterRoutes(r, svc, header, secret)

	return r
}

func storesFromEnv() []orders.StoreInstance {
	urls := map[int]string{
		1: os.Getenv("PETSTORE1_URL"),
		2: os.Getenv("PETSTORE2_URL"),
	}
	if urls[1] == "" {
		urls[1] = "http://petstore1:5001"
	}
	if urls[2] == "" {
		urls[2] = "http://petstore2:5001"
	}

	// orden fijo: store 1 antes que store 2
	out := make([]orders.StoreInstance, 0, 2)
	for _, id := range []int{1, 2} {
		c, err := remote.New(urls[id], 0)
		if err != nil {
			continue
		}
		out = append(out, orders.StoreInstance{ID: id, Client: c})
	}
	return out
}
