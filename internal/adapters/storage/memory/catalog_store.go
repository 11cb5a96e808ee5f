package memory

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"

	"pet-shop/internal/domain/catalog"
)

type catalogStore struct {
	mu     sync.RWMutex
	nextID int
	types  map[string]catalog.PetType        // id -> pet-type
	nameID map[string]string                 // lower(especie) -> id
	pets   map[string]map[string]catalog.Pet // typeID -> lower(nombre) -> pet
}

// NewCatalogStore arranca con el contador de ids en 1.
func NewCatalogStore() catalog.Store {
	return &catalogStore{
		nextID: 1,
		types:  make(map[string]catalog.PetType),
		nameID: make(map[string]string),
		pets:   make(map[string]map[string]catalog.Pet),
	}
}

func (s *catalogStore) Register(ctx context.Context, t catalog.PetType) (catalog.PetType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(t.Name)
	if _, exists := s.nameID[key]; exists {
		return catalog.PetType{}, catalog.ErrDuplicate
	}

	t.ID = strconv.Itoa(s.nextID)
	s.nextID++
	if t.Pets == nil {
		t.Pets = []string{}
	}

	s.types[t.ID] = t.Clone()
	s.nameID[key] = t.ID
	s.pets[t.ID] = make(map[string]catalog.Pet)

	return t, nil
}

func (s *catalogStore) Get(ctx context.Context, id string) (catalog.PetType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.types[id]
	if !ok {
		return catalog.PetType{}, catalog.ErrNotFound
	}
	return t.Clone(), nil
}

func (s *catalogStore) List(ctx context.Context, f catalog.TypeFilter) ([]catalog.PetType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]catalog.PetType, 0, len(s.types))
	for _, t := range s.types {
		if f.Matches(t) {
			out = append(out, t.Clone())
		}
	}

	// orden estable por id numérico
	sort.Slice(out, func(i, j int) bool {
		a, _ := strconv.Atoi(out[i].ID)
		b, _ := strconv.Atoi(out[j].ID)
		return a < b
	})
	return out, nil
}

func (s *catalogStore) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.types[id]
	if !ok {
		return catalog.ErrNotFound
	}
	if len(t.Pets) > 0 {
		return catalog.ErrHasPets
	}

	delete(s.types, id)
	delete(s.pets, id)
	delete(s.nameID, strings.ToLower(t.Name))
	return nil
}

func (s *catalogStore) UpsertPet(ctx context.Context, typeID string, p catalog.Pet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.types[typeID]
	if !ok {
		return catalog.ErrNotFound
	}

	key := strings.ToLower(p.Name)
	_, existed := s.pets[typeID][key]
	s.pets[typeID][key] = p

	if existed {
		// el display name puede cambiar de mayúsculas: se reescribe en la lista
		for i, n := range t.Pets {
			if strings.ToLower(n) == key {
				t.Pets[i] = p.Name
			}
		}
	} else {
		t.Pets = append(t.Pets, p.Name)
	}
	s.types[typeID] = t
	return nil
}

func (s *catalogStore) GetPet(ctx context.Context, typeID, name string) (catalog.Pet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.types[typeID]; !ok {
		return catalog.Pet{}, catalog.ErrNotFound
	}
	p, ok := s.pets[typeID][strings.ToLower(name)]
	if !ok {
		return catalog.Pet{}, catalog.ErrNotFound
	}
	return p, nil
}

func (s *catalogStore) ListPets(ctx context.Context, typeID string) ([]catalog.Pet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.types[typeID]
	if !ok {
		return nil, catalog.ErrNotFound
	}

	// en el orden de inserción que preserva la lista del pet-type
	out := make([]catalog.Pet, 0, len(t.Pets))
	for _, name := range t.Pets {
		if p, ok := s.pets[typeID][strings.ToLower(name)]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *catalogStore) DeletePet(ctx context.Context, typeID, name string) (catalog.Pet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.types[typeID]
	if !ok {
		return catalog.Pet{}, catalog.ErrNotFound
	}

	key := strings.ToLower(name)
	p, ok := s.pets[typeID][key]
	if !ok {
		return catalog.Pet{}, catalog.ErrNotFound
	}
	delete(s.pets[typeID], key)

	kept := t.Pets[:0]
	for _, n := range t.Pets {
		if strings.ToLower(n) != key {
			kept = append(kept, n)
		}
	}
	t.Pets = kept
	s.types[typeID] = t

	return p, nil
}
