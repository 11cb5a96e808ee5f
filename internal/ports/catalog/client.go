package catalog

import (
	"context"
	"errors"
)

// ErrNotFound: la instancia remota no conoce el recurso pedido.
var ErrNotFound = errors.New("not found at remote store")

// Pet es la vista remota de una mascota, tal como la publica el petstore.
type Pet struct {
	Name      string
	Birthdate string
	Picture   string
}

// Client habla con una instancia remota del petstore.
// Se usa desde el módulo de órdenes para evitar ciclos de imports.
type Client interface {
	// ResolveTypeID busca el id del pet-type cuya especie coincide
	// (case-insensitive) con la pedida.
	ResolveTypeID(ctx context.Context, species string) (string, error)

	// ListPets lista las mascotas disponibles de un pet-type.
	ListPets(ctx context.Context, typeID string) ([]Pet, error)

	// DeletePet borra una mascota en la instancia remota. Cualquier
	// resultado distinto de éxito vuelve como error.
	DeletePet(ctx context.Context, typeID, name string) error
}
