package pictures

import (
	"context"
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("picture not found")

// FetchError: la descarga de la imagen devolvió un status inesperado.
type FetchError struct {
	Status int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("picture fetch failed: status=%d", e.Status)
}

// Store persiste imágenes descargadas, indexadas por el nombre de archivo
// generado (ver FileName).
type Store interface {
	Put(ctx context.Context, name string, data []byte) error
	Get(ctx context.Context, name string) ([]byte, error)
	Remove(ctx context.Context, name string) error
}

// Fetcher descarga una imagen desde su URL de origen y devuelve los bytes
// junto con el Content-Type declarado por el servidor.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (data []byte, contentType string, err error)
}
