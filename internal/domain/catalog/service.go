package catalog

import (
	"context"
	"fmt"

	"pet-shop/internal/platform/logger"
	"pet-shop/internal/ports/pictures"
	"pet-shop/internal/ports/taxonomy"
)

type Service struct {
	store    Store
	resolver taxonomy.Resolver
	fetcher  pictures.Fetcher
	pics     pictures.Store
	log      logger.Logger
}

func NewService(store Store, resolver taxonomy.Resolver, fetcher pictures.Fetcher, pics pictures.Store, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		store:    store,
		resolver: resolver,
		fetcher:  fetcher,
		pics:     pics,
		log:      log,
	}
}

// CreatePetType registra una especie nueva. El chequeo de duplicado va
// ANTES de resolver la taxonomía: un nombre repetido falla siempre, sin
// importar qué diga el upstream.
func (s *Service) CreatePetType(ctx context.Context, species string) (PetType, error) {
	existing, err := s.store.List(ctx, TypeFilter{Name: &species})
	if err != nil {
		return PetType{}, err
	}
	if len(existing) > 0 {
		return PetType{}, ErrDuplicate
	}

	info, err := s.resolver.Resolve(ctx, species)
	if err != nil {
		return PetType{}, err
	}

	attrs := info.Attributes
	if attrs == nil {
		attrs = []string{}
	}

	t := PetType{
		Name:       species,
		Family:     info.Family,
		Genus:      info.Genus,
		Attributes: attrs,
		Lifespan:   info.Lifespan,
		Pets:       []string{},
	}
	return s.store.Register(ctx, t)
}

func (s *Service) ListPetTypes(ctx context.Context, f TypeFilter) ([]PetType, error) {
	return s.store.List(ctx, f)
}

func (s *Service) GetPetType(ctx context.Context, id string) (PetType, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) DeletePetType(ctx context.Context, id string) error {
	return s.store.Remove(ctx, id)
}

// OptionalString distingue "campo ausente" de "campo presente con null".
// Los handlers lo arman detectando presencia de la key en el JSON crudo.
type OptionalString struct {
	Present bool
	Value   *string // nil = null explícito
}

func (o OptionalString) str() string {
	if o.Value == nil {
		return ""
	}
	return *o.Value
}

// PetInput es el payload de creación/actualización de una mascota.
// Birthdate nil = no enviado.
type PetInput struct {
	Name       string
	Birthdate  *string
	PictureURL OptionalString
}

// CreatePet da de alta (o reemplaza, es un upsert por nombre) una mascota
// del pet-type. Si viene picture-url, la imagen se descarga siempre.
func (s *Service) CreatePet(ctx context.Context, typeID string, in PetInput) (Pet, error) {
	if _, err := s.store.Get(ctx, typeID); err != nil {
		return Pet{}, err
	}

	birthdate, err := normalizeBirthdate(in.Birthdate, "")
	if err != nil {
		return Pet{}, err
	}

	p := Pet{
		Name:      in.Name,
		Birthdate: birthdate,
	}

	if url := in.PictureURL.str(); url != "" {
		file, err := s.fetchPicture(ctx, url)
		if err != nil {
			return Pet{}, err
		}
		p.Picture = file
		p.PictureURL = url
	}

	if err := s.store.UpsertPet(ctx, typeID, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// UpdatePet actualiza la mascota identificada por name. Los campos no
// enviados conservan su valor anterior. Un picture-url distinto al
// guardado dispara exactamente una descarga nueva y, tras el fetch
// exitoso, el borrado del archivo viejo; el mismo url no dispara nada.
func (s *Service) UpdatePet(ctx context.Context, typeID, name string, in PetInput) (Pet, error) {
	existing, err := s.store.GetPet(ctx, typeID, name)
	if err != nil {
		return Pet{}, err
	}

	p := existing
	p.Name = in.Name

	p.Birthdate, err = normalizeBirthdate(in.Birthdate, existing.Birthdate)
	if err != nil {
		return Pet{}, err
	}

	if in.PictureURL.Present {
		newURL := in.PictureURL.str()
		if newURL != existing.PictureURL {
			oldFile := existing.Picture
			if newURL != "" {
				file, err := s.fetchPicture(ctx, newURL)
				if err != nil {
					return Pet{}, err
				}
				p.Picture = file
				p.PictureURL = newURL
			} else {
				p.Picture = ""
				p.PictureURL = ""
			}
			if oldFile != "" {
				if err := s.pics.Remove(ctx, oldFile); err != nil {
					s.log.Warn("failed to remove replaced picture", map[string]any{
						"file": oldFile,
						"err":  err.Error(),
					})
				}
			}
		}
	}

	if err := s.store.UpsertPet(ctx, typeID, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetPet(ctx context.Context, typeID, name string) (Pet, error) {
	return s.store.GetPet(ctx, typeID, name)
}

// ListPets lista las mascotas del pet-type aplicando los filtros de fecha
// exclusivos. Mascotas sin birthdate nunca matchean un filtro de fecha.
func (s *Service) ListPets(ctx context.Context, typeID string, f PetFilter) ([]Pet, error) {
	if f.BornAfter != "" {
		if _, err := ParseDate(f.BornAfter); err != nil {
			return nil, fmt.Errorf("%w: birthdateGT", ErrInvalidInput)
		}
	}
	if f.BornBefore != "" {
		if _, err := ParseDate(f.BornBefore); err != nil {
			return nil, fmt.Errorf("%w: birthdateLT", ErrInvalidInput)
		}
	}

	pets, err := s.store.ListPets(ctx, typeID)
	if err != nil {
		return nil, err
	}

	out := make([]Pet, 0, len(pets))
	for _, p := range pets {
		if f.BornAfter != "" {
			if p.Birthdate == "" {
				continue
			}
			if cmp, _ := CompareDates(p.Birthdate, f.BornAfter); cmp <= 0 {
				continue
			}
		}
		if f.BornBefore != "" {
			if p.Birthdate == "" {
				continue
			}
			if cmp, _ := CompareDates(p.Birthdate, f.BornBefore); cmp >= 0 {
				continue
			}
		}
		out = append(out, p)
	}
	return out, nil
}

// DeletePet borra la mascota y libera su imagen si tenía.
func (s *Service) DeletePet(ctx context.Context, typeID, name string) error {
	p, err := s.store.DeletePet(ctx, typeID, name)
	if err != nil {
		return err
	}
	if p.Picture != "" {
		if err := s.pics.Remove(ctx, p.Picture); err != nil {
			s.log.Warn("failed to remove picture of deleted pet", map[string]any{
				"file": p.Picture,
				"err":  err.Error(),
			})
		}
	}
	return nil
}

// GetPicture devuelve los bytes guardados y el Content-Type adivinado por
// extensión.
func (s *Service) GetPicture(ctx context.Context, fileName string) ([]byte, string, error) {
	data, err := s.pics.Get(ctx, fileName)
	if err != nil {
		return nil, "", err
	}
	return data, pictures.ContentTypeFor(fileName), nil
}

func (s *Service) fetchPicture(ctx context.Context, url string) (string, error) {
	data, contentType, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	name := pictures.FileName(url, contentType)
	if err := s.pics.Put(ctx, name, data); err != nil {
		return "", err
	}
	return name, nil
}

// normalizeBirthdate aplica la regla de "NA"/ausente y valida el formato.
func normalizeBirthdate(in *string, prev string) (string, error) {
	if in == nil {
		return prev, nil
	}
	if *in == Unset {
		return "", nil
	}
	if _, err := ParseDate(*in); err != nil {
		return "", fmt.Errorf("%w: birthdate", ErrInvalidInput)
	}
	return *in, nil
}
