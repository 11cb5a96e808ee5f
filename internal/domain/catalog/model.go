package catalog

import "strings"

// Unset es el literal que el API expone cuando un campo opcional de una
// mascota no tiene valor. Internamente se usa string vacío.
const Unset = "NA"

// PetType es una especie registrada con su taxonomía y la lista ordenada
// de nombres de mascotas que le pertenecen.
type PetType struct {
	ID         string
	Name       string // especie, única case-insensitive
	Family     string
	Genus      string
	Attributes []string
	Lifespan   *int // nil = sin dato
	Pets       []string
}

// Pet pertenece a exactamente un PetType. Birthdate es DD-MM-YYYY o ""
// cuando no hay valor. PictureURL guarda la URL de origen para detectar
// si un update necesita re-descargar la imagen.
type Pet struct {
	Name       string // único case-insensitive dentro del type
	Birthdate  string
	Picture    string // nombre de archivo generado, "" = sin imagen
	PictureURL string
}

// TypeFilter son filtros de igualdad para listar pet-types.
// Punteros: nil = filtro ausente (un valor vacío presente también filtra).
type TypeFilter struct {
	ID           *string
	Name         *string
	Family       *string
	Genus        *string
	Lifespan     *int
	HasAttribute *string
}

// Matches aplica todos los filtros presentes con AND lógico.
// Las comparaciones de strings son case-insensitive.
func (f TypeFilter) Matches(t PetType) bool {
	if f.ID != nil && !strings.EqualFold(t.ID, *f.ID) {
		return false
	}
	if f.Name != nil && !strings.EqualFold(t.Name, *f.Name) {
		return false
	}
	if f.Family != nil && !strings.EqualFold(t.Family, *f.Family) {
		return false
	}
	if f.Genus != nil && !strings.EqualFold(t.Genus, *f.Genus) {
		return false
	}
	if f.Lifespan != nil {
		if t.Lifespan == nil || *t.Lifespan != *f.Lifespan {
			return false
		}
	}
	if f.HasAttribute != nil {
		found := false
		for _, a := range t.Attributes {
			if strings.EqualFold(a, *f.HasAttribute) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// PetFilter son filtros exclusivos por fecha de nacimiento (DD-MM-YYYY).
// Una mascota sin birthdate nunca matchea ninguno de los dos.
type PetFilter struct {
	BornAfter  string
	BornBefore string
}

// Clone devuelve una copia profunda, para que los callers no puedan mutar
// los slices que guarda el store.
func (t PetType) Clone() PetType {
	out := t
	out.Attributes = append([]string(nil), t.Attributes...)
	out.Pets = append([]string(nil), t.Pets...)
	if t.Lifespan != nil {
		v := *t.Lifespan
		out.Lifespan = &v
	}
	return out
}
