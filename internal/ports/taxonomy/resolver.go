package taxonomy

import (
	"context"
	"errors"
	"fmt"
)

// ErrSpeciesNotFound: el upstream no reconoce la especie pedida.
// Los handlers lo traducen a un 400 de datos malformados.
var ErrSpeciesNotFound = errors.New("species not recognized")

// UpstreamError representa una respuesta inesperada del API de taxonomía
// (o de cualquier descarga upstream). Conserva el status code para que el
// handler lo reporte tal cual.
type UpstreamError struct {
	Code int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("taxonomy upstream error: status=%d", e.Code)
}

// Info es el resultado de resolver una especie.
// Lifespan nil = el upstream no informó un valor numérico.
type Info struct {
	Family     string
	Genus      string
	Attributes []string
	Lifespan   *int
}

// Resolver mapea un nombre de especie a su taxonomía.
type Resolver interface {
	Resolve(ctx context.Context, species string) (Info, error)
}
