package fsstore

import (
	"context"
	"os"
	"path/filepath"

	"pet-shop/internal/ports/pictures"
)

// Store guarda las imágenes como archivos planos en un directorio.
type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Put(ctx context.Context, name string, data []byte) error {
	return os.WriteFile(s.path(name), data, 0o644)
}

func (s *Store) Get(ctx context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, pictures.ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

func (s *Store) Remove(ctx context.Context, name string) error {
	err := os.Remove(s.path(name))
	if err != nil && os.IsNotExist(err) {
		return pictures.ErrNotFound
	}
	return err
}

// path aplana el nombre para que un file name con separadores no pueda
// escapar del directorio.
func (s *Store) path(name string) string {
	return filepath.Join(s.dir, filepath.Base(name))
}
