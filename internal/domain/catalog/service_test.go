package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-shop/internal/adapters/storage/memory"
	"pet-shop/internal/domain/catalog"
	"pet-shop/internal/ports/taxonomy"
)

// -------------------------
// Fakes
// -------------------------

type fakeResolver struct {
	info  taxonomy.Info
	err   error
	calls int
}

func (r *fakeResolver) Resolve(ctx context.Context, species string) (taxonomy.Info, error) {
	r.calls++
	if r.err != nil {
		return taxonomy.Info{}, r.err
	}
	return r.info, nil
}

type fakeFetcher struct {
	data        []byte
	contentType string
	err         error
	calls       int
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) ([]byte, string, error) {
	f.calls++
	if f.err != nil {
		return nil, "", f.err
	}
	return f.data, f.contentType, nil
}

type fakePicStore struct {
	files   map[string][]byte
	puts    int
	removes int
}

func newFakePicStore() *fakePicStore {
	return &fakePicStore{files: map[string][]byte{}}
}

func (s *fakePicStore) Put(ctx context.Context, name string, data []byte) error {
	s.puts++
	s.files[name] = data
	return nil
}

func (s *fakePicStore) Get(ctx context.Context, name string) ([]byte, error) {
	d, ok := s.files[name]
	if !ok {
		return nil, errors.New("missing")
	}
	return d, nil
}

func (s *fakePicStore) Remove(ctx context.Context, name string) error {
	s.removes++
	delete(s.files, name)
	return nil
}

func newTestService(resolver *fakeResolver, fetcher *fakeFetcher, pics *fakePicStore) *catalog.Service {
	return catalog.NewService(memory.NewCatalogStore(), resolver, fetcher, pics, nil)
}

func strPtr(s string) *string { return &s }

// -------------------------
// Pet types
// -------------------------

func TestCreatePetType_DuplicateFailsRegardlessOfResolver(t *testing.T) {
	ctx := context.Background()
	resolver := &fakeResolver{info: taxonomy.Info{Family: "Canidae", Genus: "Canis"}}
	svc := newTestService(resolver, &fakeFetcher{}, newFakePicStore())

	_, err := svc.CreatePetType(ctx, "Bulldog")
	require.NoError(t, err)

	// mismo nombre con otra capitalización, y un resolver que ahora falla:
	// el duplicado tiene que ganar igual
	resolver.err = &taxonomy.UpstreamError{Code: 503}
	callsBefore := resolver.calls

	_, err = svc.CreatePetType(ctx, "BULLDOG")
	assert.ErrorIs(t, err, catalog.ErrDuplicate)
	assert.Equal(t, callsBefore, resolver.calls, "duplicate must fail before resolving taxonomy")
}

func TestCreatePetType_ResolverErrorsPropagate(t *testing.T) {
	ctx := context.Background()

	svc := newTestService(&fakeResolver{err: taxonomy.ErrSpeciesNotFound}, &fakeFetcher{}, newFakePicStore())
	_, err := svc.CreatePetType(ctx, "Dragon")
	assert.ErrorIs(t, err, taxonomy.ErrSpeciesNotFound)

	svc = newTestService(&fakeResolver{err: &taxonomy.UpstreamError{Code: 502}}, &fakeFetcher{}, newFakePicStore())
	_, err = svc.CreatePetType(ctx, "Dragon")
	var upstream *taxonomy.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, 502, upstream.Code)
}

func TestDeletePetType_BlockedWhilePetsRemain(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(&fakeResolver{}, &fakeFetcher{}, newFakePicStore())

	pt, err := svc.CreatePetType(ctx, "Bulldog")
	require.NoError(t, err)

	_, err = svc.CreatePet(ctx, pt.ID, catalog.PetInput{Name: "Rex"})
	require.NoError(t, err)

	err = svc.DeletePetType(ctx, pt.ID)
	assert.ErrorIs(t, err, catalog.ErrHasPets)

	require.NoError(t, svc.DeletePet(ctx, pt.ID, "rex"))
	assert.NoError(t, svc.DeletePetType(ctx, pt.ID))
}

func TestListPetTypes_Filters(t *testing.T) {
	ctx := context.Background()
	resolver := &fakeResolver{info: taxonomy.Info{
		Family:     "Canidae",
		Genus:      "Canis",
		Attributes: []string{"loyal", "friendly"},
	}}
	svc := newTestService(resolver, &fakeFetcher{}, newFakePicStore())

	_, err := svc.CreatePetType(ctx, "Bulldog")
	require.NoError(t, err)

	lifespan := 13
	resolver.info = taxonomy.Info{Family: "Felidae", Genus: "Felis", Lifespan: &lifespan}
	_, err = svc.CreatePetType(ctx, "Abyssinian")
	require.NoError(t, err)

	all, err := svc.ListPetTypes(ctx, catalog.TypeFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byFamily, err := svc.ListPetTypes(ctx, catalog.TypeFilter{Family: strPtr("canidae")})
	require.NoError(t, err)
	require.Len(t, byFamily, 1)
	assert.Equal(t, "Bulldog", byFamily[0].Name)

	byAttr, err := svc.ListPetTypes(ctx, catalog.TypeFilter{HasAttribute: strPtr("LOYAL")})
	require.NoError(t, err)
	require.Len(t, byAttr, 1)
	assert.Equal(t, "Bulldog", byAttr[0].Name)

	ls := 13
	byLifespan, err := svc.ListPetTypes(ctx, catalog.TypeFilter{Lifespan: &ls})
	require.NoError(t, err)
	require.Len(t, byLifespan, 1)
	assert.Equal(t, "Abyssinian", byLifespan[0].Name)

	none, err := svc.ListPetTypes(ctx, catalog.TypeFilter{
		Family:       strPtr("canidae"),
		HasAttribute: strPtr("curious"),
	})
	require.NoError(t, err)
	assert.Empty(t, none)
}

// -------------------------
// Pets
// -------------------------

func TestCreatePet_BirthdateValidation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(&fakeResolver{}, &fakeFetcher{}, newFakePicStore())

	pt, err := svc.CreatePetType(ctx, "Bulldog")
	require.NoError(t, err)

	_, err = svc.CreatePet(ctx, pt.ID, catalog.PetInput{Name: "Rex", Birthdate: strPtr("31-02-2020")})
	assert.ErrorIs(t, err, catalog.ErrInvalidInput)

	p, err := svc.CreatePet(ctx, pt.ID, catalog.PetInput{Name: "Rex", Birthdate: strPtr("15-06-2020")})
	require.NoError(t, err)
	assert.Equal(t, "15-06-2020", p.Birthdate)

	// "NA" explícito equivale a no enviar fecha
	p, err = svc.CreatePet(ctx, pt.ID, catalog.PetInput{Name: "Luna", Birthdate: strPtr("NA")})
	require.NoError(t, err)
	assert.Empty(t, p.Birthdate)
}

func TestUpdatePet_PreservesUnsuppliedFields(t *testing.T) {
	ctx := context.Background()
	fetcher := &fakeFetcher{data: []byte("img"), contentType: "image/png"}
	pics := newFakePicStore()
	svc := newTestService(&fakeResolver{}, fetcher, pics)

	pt, err := svc.CreatePetType(ctx, "Bulldog")
	require.NoError(t, err)

	url := "http://pics.example/rex.png"
	created, err := svc.CreatePet(ctx, pt.ID, catalog.PetInput{
		Name:       "Rex",
		Birthdate:  strPtr("15-06-2020"),
		PictureURL: catalog.OptionalString{Present: true, Value: &url},
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.Picture)

	// update sin birthdate ni picture-url: todo queda igual
	updated, err := svc.UpdatePet(ctx, pt.ID, "rex", catalog.PetInput{Name: "Rex"})
	require.NoError(t, err)
	assert.Equal(t, created.Birthdate, updated.Birthdate)
	assert.Equal(t, created.Picture, updated.Picture)
	assert.Equal(t, 1, fetcher.calls)
	assert.Equal(t, 0, pics.removes)
}

func TestUpdatePet_PictureURLChangeDownloadsOnce(t *testing.T) {
	ctx := context.Background()
	fetcher := &fakeFetcher{data: []byte("img"), contentType: "image/jpeg"}
	pics := newFakePicStore()
	svc := newTestService(&fakeResolver{}, fetcher, pics)

	pt, err := svc.CreatePetType(ctx, "Bulldog")
	require.NoError(t, err)

	oldURL := "http://pics.example/old.jpg"
	created, err := svc.CreatePet(ctx, pt.ID, catalog.PetInput{
		Name:       "Rex",
		PictureURL: catalog.OptionalString{Present: true, Value: &oldURL},
	})
	require.NoError(t, err)
	require.Equal(t, 1, fetcher.calls)

	// misma URL: ni descarga ni borrado
	_, err = svc.UpdatePet(ctx, pt.ID, "Rex", catalog.PetInput{
		Name:       "Rex",
		PictureURL: catalog.OptionalString{Present: true, Value: &oldURL},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, fetcher.calls)
	assert.Equal(t, 0, pics.removes)

	// URL nueva: exactamente una descarga y un borrado del archivo viejo
	newURL := "http://pics.example/new.jpg"
	updated, err := svc.UpdatePet(ctx, pt.ID, "Rex", catalog.PetInput{
		Name:       "Rex",
		PictureURL: catalog.OptionalString{Present: true, Value: &newURL},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, fetcher.calls)
	assert.Equal(t, 1, pics.removes)
	assert.NotEqual(t, created.Picture, updated.Picture)
	assert.Equal(t, newURL, updated.PictureURL)
}

func TestDeletePet_ReleasesPicture(t *testing.T) {
	ctx := context.Background()
	fetcher := &fakeFetcher{data: []byte("img"), contentType: "image/png"}
	pics := newFakePicStore()
	svc := newTestService(&fakeResolver{}, fetcher, pics)

	pt, err := svc.CreatePetType(ctx, "Bulldog")
	require.NoError(t, err)

	url := "http://pics.example/rex.png"
	_, err = svc.CreatePet(ctx, pt.ID, catalog.PetInput{
		Name:       "Rex",
		PictureURL: catalog.OptionalString{Present: true, Value: &url},
	})
	require.NoError(t, err)
	require.Equal(t, 1, pics.puts)

	require.NoError(t, svc.DeletePet(ctx, pt.ID, "REX"))
	assert.Equal(t, 1, pics.removes)

	pets, err := svc.ListPets(ctx, pt.ID, catalog.PetFilter{})
	require.NoError(t, err)
	assert.Empty(t, pets)
}

func TestListPets_BirthdateFilters(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(&fakeResolver{}, &fakeFetcher{}, newFakePicStore())

	pt, err := svc.CreatePetType(ctx, "Bulldog")
	require.NoError(t, err)

	for name, bd := range map[string]string{
		"Old":   "01-01-2010",
		"Mid":   "01-01-2015",
		"Young": "01-01-2020",
	} {
		_, err := svc.CreatePet(ctx, pt.ID, catalog.PetInput{Name: name, Birthdate: strPtr(bd)})
		require.NoError(t, err)
	}
	// sin birthdate: nunca matchea filtros de fecha
	_, err = svc.CreatePet(ctx, pt.ID, catalog.PetInput{Name: "Ageless"})
	require.NoError(t, err)

	all, err := svc.ListPets(ctx, pt.ID, catalog.PetFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	after, err := svc.ListPets(ctx, pt.ID, catalog.PetFilter{BornAfter: "01-01-2015"})
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, "Young", after[0].Name)

	between, err := svc.ListPets(ctx, pt.ID, catalog.PetFilter{
		BornAfter:  "01-01-2010",
		BornBefore: "01-01-2020",
	})
	require.NoError(t, err)
	require.Len(t, between, 1)
	assert.Equal(t, "Mid", between[0].Name)

	_, err = svc.ListPets(ctx, pt.ID, catalog.PetFilter{BornAfter: "bogus"})
	assert.ErrorIs(t, err, catalog.ErrInvalidInput)
}
