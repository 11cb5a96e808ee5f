package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-shop/internal/adapters/pictures/fsstore"
	"pet-shop/internal/adapters/pictures/httpfetch"
	"pet-shop/internal/adapters/storage/memory"
	"pet-shop/internal/adapters/taxonomy/ninja"
	"pet-shop/internal/ports/pictures"
)

func newPetstoreServer(t *testing.T) *httptest.Server {
	t.Helper()

	pics, err := fsstore.New(t.TempDir())
	require.NoError(t, err)

	// sin API key el resolver solo conoce las especies de la tabla fija,
	// suficiente para un e2e determinístico
	h := NewPetstoreRouter(PetstoreOptions{
		Store:    memory.NewCatalogStore(),
		Resolver: ninja.NewClient(ninja.Config{}),
		Fetcher:  httpfetch.New(0),
		Pictures: pics,
	})

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any) (int, []byte) {
	t.Helper()

	var buf io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func TestPetstore_CreateAndGetPetType(t *testing.T) {
	srv := newPetstoreServer(t)

	status, body := doJSON(t, http.MethodPost, srv.URL+"/pet-types", map[string]string{
		"type": "Australian Shepherd",
	})
	require.Equal(t, http.StatusCreated, status, string(body))

	var created struct {
		ID         string   `json:"id"`
		Type       string   `json:"type"`
		Family     string   `json:"family"`
		Genus      string   `json:"genus"`
		Attributes []string `json:"attributes"`
		Lifespan   *int     `json:"lifespan"`
		Pets       []string `json:"pets"`
	}
	require.NoError(t, json.Unmarshal(body, &created))

	assert.Equal(t, "1", created.ID)
	assert.Equal(t, "Australian Shepherd", created.Type)
	assert.Equal(t, "Canidae", created.Family)
	assert.Equal(t, "Canis", created.Genus)
	assert.Equal(t, []string{"loyal", "outgoing", "and", "friendly"}, created.Attributes)
	require.NotNil(t, created.Lifespan)
	assert.Equal(t, 15, *created.Lifespan)
	assert.Equal(t, []string{}, created.Pets)

	status, body = doJSON(t, http.MethodGet, srv.URL+"/pet-types/1", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"Australian Shepherd"`)
}

func TestPetstore_NotFound(t *testing.T) {
	srv := newPetstoreServer(t)

	status, body := doJSON(t, http.MethodGet, srv.URL+"/pet-types/99", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.JSONEq(t, `{"error":"Not found"}`, string(body))
}

func TestPetstore_DuplicateType(t *testing.T) {
	srv := newPetstoreServer(t)

	status, _ := doJSON(t, http.MethodPost, srv.URL+"/pet-types", map[string]string{"type": "Bulldog"})
	require.Equal(t, http.StatusCreated, status)

	status, body := doJSON(t, http.MethodPost, srv.URL+"/pet-types", map[string]string{"type": "BULLDOG"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.JSONEq(t, `{"error":"Malformed data"}`, string(body))
}

func TestPetstore_UnsupportedContentType(t *testing.T) {
	srv := newPetstoreServer(t)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/pet-types", bytes.NewBufferString("type=Bulldog"))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "text/plain")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
}

func TestPetstore_PutPetTypeNotAllowed(t *testing.T) {
	srv := newPetstoreServer(t)

	status, _ := doJSON(t, http.MethodPut, srv.URL+"/pet-types/1", map[string]string{"type": "Bulldog"})
	assert.Equal(t, http.StatusMethodNotAllowed, status)
}

func TestPetstore_TypeFilters(t *testing.T) {
	srv := newPetstoreServer(t)

	for _, species := range []string{"Bulldog", "Abyssinian"} {
		status, _ := doJSON(t, http.MethodPost, srv.URL+"/pet-types", map[string]string{"type": species})
		require.Equal(t, http.StatusCreated, status)
	}

	status, body := doJSON(t, http.MethodGet, srv.URL+"/pet-types?family=Felidae", nil)
	require.Equal(t, http.StatusOK, status)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Abyssinian", list[0]["type"])

	// lifespan que no parsea como entero es un filtro malformado
	status, body = doJSON(t, http.MethodGet, srv.URL+"/pet-types?lifespan=ten", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.JSONEq(t, `{"error":"Malformed data"}`, string(body))
}

func TestPetstore_PetLifecycleWithPicture(t *testing.T) {
	srv := newPetstoreServer(t)

	img := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 1, 2, 3}
	imgSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(img)
	}))
	t.Cleanup(imgSrv.Close)
	imgURL := imgSrv.URL + "/rex.png"

	status, _ := doJSON(t, http.MethodPost, srv.URL+"/pet-types", map[string]string{"type": "Bulldog"})
	require.Equal(t, http.StatusCreated, status)

	status, body := doJSON(t, http.MethodPost, srv.URL+"/pet-types/1/pets", map[string]any{
		"name":        "Rex",
		"birthdate":   "01-01-2020",
		"picture-url": imgURL,
	})
	require.Equal(t, http.StatusCreated, status, string(body))

	var pet struct {
		Name      string `json:"name"`
		Birthdate string `json:"birthdate"`
		Picture   string `json:"picture"`
	}
	require.NoError(t, json.Unmarshal(body, &pet))
	assert.Equal(t, "Rex", pet.Name)
	assert.Equal(t, "01-01-2020", pet.Birthdate)
	assert.Equal(t, pictures.FileName(imgURL, "image/png"), pet.Picture)

	// la imagen quedó disponible en /pictures
	resp, err := http.Get(srv.URL + "/pictures/" + pet.Picture)
	require.NoError(t, err)
	got, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.Equal(t, img, got)

	// el type no se puede borrar mientras tenga mascotas
	status, body = doJSON(t, http.MethodDelete, srv.URL+"/pet-types/1", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.JSONEq(t, `{"error":"Malformed data"}`, string(body))

	// borrar la mascota libera también la imagen
	status, _ = doJSON(t, http.MethodDelete, srv.URL+"/pet-types/1/pets/Rex", nil)
	require.Equal(t, http.StatusNoContent, status)

	resp, err = http.Get(srv.URL + "/pictures/" + pet.Picture)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	status, _ = doJSON(t, http.MethodDelete, srv.URL+"/pet-types/1", nil)
	assert.Equal(t, http.StatusNoContent, status)
}

func TestPetstore_PetWithoutPictureReportsNA(t *testing.T) {
	srv := newPetstoreServer(t)

	status, _ := doJSON(t, http.MethodPost, srv.URL+"/pet-types", map[string]string{"type": "Bulldog"})
	require.Equal(t, http.StatusCreated, status)

	status, body := doJSON(t, http.MethodPost, srv.URL+"/pet-types/1/pets", map[string]any{"name": "Luna"})
	require.Equal(t, http.StatusCreated, status)
	assert.JSONEq(t, `{"name":"Luna","birthdate":"NA","picture":"NA"}`, string(body))
}

func TestPetstore_BirthdateFilters(t *testing.T) {
	srv := newPetstoreServer(t)

	status, _ := doJSON(t, http.MethodPost, srv.URL+"/pet-types", map[string]string{"type": "Bulldog"})
	require.Equal(t, http.StatusCreated, status)

	seed := []map[string]any{
		{"name": "Rex", "birthdate": "01-01-2019"},
		{"name": "Luna", "birthdate": "15-06-2021"},
		{"name": "Nils"}, // sin fecha, nunca matchea un filtro
	}
	for _, p := range seed {
		status, body := doJSON(t, http.MethodPost, srv.URL+"/pet-types/1/pets", p)
		require.Equal(t, http.StatusCreated, status, string(body))
	}

	status, body := doJSON(t, http.MethodGet, srv.URL+"/pet-types/1/pets?birthdateGT=01-01-2020", nil)
	require.Equal(t, http.StatusOK, status)
	var pets []map[string]any
	require.NoError(t, json.Unmarshal(body, &pets))
	require.Len(t, pets, 1)
	assert.Equal(t, "Luna", pets[0]["name"])

	status, body = doJSON(t, http.MethodGet, srv.URL+"/pet-types/1/pets?birthdateLT=31-12-2025", nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(body, &pets))
	assert.Len(t, pets, 2)

	status, body = doJSON(t, http.MethodGet, srv.URL+"/pet-types/1/pets?birthdateGT=2020-01-01", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.JSONEq(t, `{"error":"Malformed data"}`, string(body))
}

func TestPetstore_Health(t *testing.T) {
	srv := newPetstoreServer(t)

	resp, err := http.Get(fmt.Sprintf("%s/health", srv.URL))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
