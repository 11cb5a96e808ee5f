package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"pet-shop/internal/adapters/pictures/fsstore"
	"pet-shop/internal/adapters/pictures/httpfetch"
	"pet-shop/internal/adapters/pictures/s3store"
	"pet-shop/internal/adapters/storage/memory"
	"pet-shop/internal/adapters/taxonomy/ninja"
	"pet-shop/internal/config"
	"pet-shop/internal/platform/logger"
	"pet-shop/internal/ports/pictures"
	"pet-shop/internal/router"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logg := logger.NewFromEnv()

	pics, err := buildPictureStore(context.Background(), cfg)
	if err != nil {
		log.Fatalf("picture store: %v", err)
	}

	r := router.NewPetstoreRouter(router.PetstoreOptions{
		Store: memory.NewCatalogStore(),
		Resolver: ninja.NewClient(ninja.Config{
			BaseURL: cfg.Ninja.BaseURL,
			APIKey:  cfg.Ninja.APIKey,
		}),
		Fetcher:  httpfetch.New(0),
		Pictures: pics,
		Log:      logg,
	})

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	logg.Info("starting petstore", map[string]any{"addr": addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

func buildPictureStore(ctx context.Context, cfg *config.Config) (pictures.Store, error) {
	switch cfg.Pictures.Backend {
	case "s3":
		return s3store.New(ctx, cfg.Pictures.S3Bucket, s3store.Config{
			Region:       cfg.Pictures.S3Region,
			Endpoint:     cfg.Pictures.S3Endpoint,
			UsePathStyle: cfg.Pictures.S3PathStyle,
		})
	default:
		return fsstore.New(cfg.Pictures.Dir)
	}
}
