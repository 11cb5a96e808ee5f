package router

import (
	"net/http"
	"os"

	"pet-shop/internal/adapters/pictures/fsstore"
	"pet-shop/internal/adapters/pictures/httpfetch"
	"pet-shop/internal/adapters/storage/memory"
	"pet-shop/internal/adapters/taxonomy/ninja"
	"pet-shop/internal/domain/catalog"
	"pet-shop/internal/platform/logger"
	"pet-shop/internal/ports/pictures"
	"pet-shop/internal/ports/taxonomy"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// PetstoreOptions: los campos nil toman defaults de dev (store in-memory,
// resolver Ninja desde env, fetcher HTTP, pictures en filesystem).
type PetstoreOptions struct {
	Store    catalog.Store
	Resolver taxonomy.Resolver
	Fetcher  pictures.Fetcher
	Pictures pictures.Store
	Log      logger.Logger
}

func NewPetstoreRouter(opts PetstoreOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	store := opts.Store
	if store == nil {
		store = memory.NewCatalogStore()
	}

	resolver := opts.Resolver
	if resolver == nil {
		resolver = ninja.NewClient(ninja.Config{
			BaseURL: os.Getenv("NINJA_URL"),
			APIKey:  os.Getenv("NINJA_API_KEY"),
		})
	}

	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = httpfetch.New(0)
	}

	pics := opts.Pictures
	if pics == nil {
		dir := os.Getenv("PICTURES_DIR")
		if dir == "" {
			dir = "pictures"
		}
		if fs, err := fsstore.New(dir); err == nil {
			pics = fs
		}
	}

	svc := catalog.NewService(store, resolver, fetcher, pics, opts.Log)
	catalog.RegisterRoutes(r, svc)

	return r
}
