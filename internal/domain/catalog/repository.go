package catalog

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrDuplicate    = errors.New("pet type already exists")
	ErrHasPets      = errors.New("pet type still has pets")
	ErrInvalidInput = errors.New("invalid input")
)

// Store es el almacén del catálogo. Asigna ids secuenciales al registrar
// y es el dueño de la lista de mascotas de cada pet-type.
type Store interface {
	// Register guarda un pet-type nuevo y le asigna el id. Falla con
	// ErrDuplicate si ya existe una especie con ese nombre
	// (case-insensitive).
	Register(ctx context.Context, t PetType) (PetType, error)
	Get(ctx context.Context, id string) (PetType, error)
	List(ctx context.Context, f TypeFilter) ([]PetType, error)
	// Remove falla con ErrHasPets mientras el pet-type tenga mascotas.
	Remove(ctx context.Context, id string) error

	// UpsertPet crea o reemplaza la mascota, keyed por nombre
	// case-insensitive.
	UpsertPet(ctx context.Context, typeID string, p Pet) error
	GetPet(ctx context.Context, typeID, name string) (Pet, error)
	ListPets(ctx context.Context, typeID string) ([]Pet, error)
	// DeletePet devuelve la mascota borrada para que el caller libere
	// su imagen.
	DeletePet(ctx context.Context, typeID, name string) (Pet, error)
}
