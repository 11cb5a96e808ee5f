package ninja

import (
	"strings"

	"pet-shop/internal/ports/taxonomy"
)

// Tabla fija de especies conocidas con valores determinísticos: permite
// correr los tests de punta a punta sin credenciales del API.
// Los atributos ya están normalizados (minúsculas).
var fixtures = map[string]taxonomy.Info{
	"golden retriever": {
		Family:     "Canidae",
		Genus:      "Canis",
		Attributes: []string{},
		Lifespan:   intPtr(12),
	},
	"australian shepherd": {
		Family:     "Canidae",
		Genus:      "Canis",
		Attributes: []string{"loyal", "outgoing", "and", "friendly"},
		Lifespan:   intPtr(15),
	},
	"abyssinian": {
		Family:     "Felidae",
		Genus:      "Felis",
		Attributes: []string{"intelligent", "and", "curious"},
		Lifespan:   intPtr(13),
	},
	"bulldog": {
		Family:     "Canidae",
		Genus:      "Canis",
		Attributes: []string{"gentle", "calm", "and", "affectionate"},
		Lifespan:   nil,
	},
}

func fixture(species string) (taxonomy.Info, bool) {
	info, ok := fixtures[strings.ToLower(strings.TrimSpace(species))]
	if !ok {
		return taxonomy.Info{}, false
	}

	// copia para que el caller no pueda mutar la tabla
	out := taxonomy.Info{
		Family:     info.Family,
		Genus:      info.Genus,
		Attributes: append([]string{}, info.Attributes...),
	}
	if info.Lifespan != nil {
		v := *info.Lifespan
		out.Lifespan = &v
	}
	return out, true
}

func intPtr(n int) *int { return &n }
