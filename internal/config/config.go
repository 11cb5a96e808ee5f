package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"pet-shop"`
		Port int    `envconfig:"PORT" default:"5001"`
	}

	Server struct {
		ReadTimeout  time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"5s"`
		WriteTimeout time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"30s"`
	}

	Ninja struct {
		APIKey  string `envconfig:"NINJA_API_KEY"`
		BaseURL string `envconfig:"NINJA_URL" default:"https://api.api-ninjas.com/v1/animals"`
	}

	Pictures struct {
		Backend     string `envconfig:"PICTURES_BACKEND" default:"fs"` // fs | s3
		Dir         string `envconfig:"PICTURES_DIR" default:"pictures"`
		S3Bucket    string `envconfig:"PICTURES_S3_BUCKET"`
		S3Region    string `envconfig:"PICTURES_S3_REGION"`
		S3Endpoint  string `envconfig:"PICTURES_S3_ENDPOINT"`
		S3PathStyle bool   `envconfig:"PICTURES_S3_PATH_STYLE"`
	}

	Order struct {
		// Conexión al document store de transacciones. Vacío = ledger
		// in-memory (modo dev).
		DocstoreDSN string `envconfig:"DOCSTORE_DSN"`

		// Direcciones fijas de las dos instancias del catálogo.
		Petstore1URL string `envconfig:"PETSTORE1_URL" default:"http://petstore1:5001"`
		Petstore2URL string `envconfig:"PETSTORE2_URL" default:"http://petstore2:5001"`

		// Header compartido que autoriza el listado de transacciones.
		OwnerHeader string `envconfig:"OWNER_HEADER" default:"OwnerPC"`
		OwnerSecret string `envconfig:"OWNER_SECRET" default:"LovesPetsL2M3n4"`
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	return &cfg, nil
}
