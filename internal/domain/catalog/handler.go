package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"pet-shop/internal/platform/httpclient"
	"pet-shop/internal/ports/pictures"
	"pet-shop/internal/ports/taxonomy"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pet-types", func(tr chi.Router) {
		tr.Use(chimw.AllowContentType("application/json"))

		tr.Post("/", createPetTypeHandler(svc))
		tr.Get("/", listPetTypesHandler(svc))

		tr.Get("/{typeID}", getPetTypeHandler(svc))
		tr.Delete("/{typeID}", deletePetTypeHandler(svc))
		// PUT /pet-types/{typeID} queda sin registrar a propósito:
		// chi responde 405 porque el pattern tiene otros métodos.

		tr.Route("/{typeID}/pets", func(pr chi.Router) {
			pr.Post("/", createPetHandler(svc))
			pr.Get("/", listPetsHandler(svc))

			pr.Get("/{petName}", getPetHandler(svc))
			pr.Put("/{petName}", updatePetHandler(svc))
			pr.Delete("/{petName}", deletePetHandler(svc))
		})
	})

	r.Get("/pictures/{fileName}", getPictureHandler(svc))
}

type petTypeResponse struct {
	ID         string   `json:"id"`
	Type       string   `json:"type"`
	Family     string   `json:"family"`
	Genus      string   `json:"genus"`
	Attributes []string `json:"attributes"`
	Lifespan   *int     `json:"lifespan"`
	Pets       []string `json:"pets"`
}

type petResponse struct {
	Name      string `json:"name"`
	Birthdate string `json:"birthdate"`
	Picture   string `json:"picture"`
}

func createPetTypeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Type *string `json:"type"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Type == nil {
			writeError(w, http.StatusBadRequest, "Malformed data")
			return
		}

		t, err := svc.CreatePetType(r.Context(), *req.Type)
		if err != nil {
			respondCatalogError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toPetTypeResponse(t))
	}
}

func listPetTypesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		var f TypeFilter
		f.ID = queryValue(q, "id")
		f.Name = queryValue(q, "type")
		f.Family = queryValue(q, "family")
		f.Genus = queryValue(q, "genus")
		f.HasAttribute = queryValue(q, "hasAttribute")

		if raw := queryValue(q, "lifespan"); raw != nil {
			n, err := strconv.Atoi(*raw)
			if err != nil {
				writeError(w, http.StatusBadRequest, "Malformed data")
				return
			}
			f.Lifespan = &n
		}

		types, err := svc.ListPetTypes(r.Context(), f)
		if err != nil {
			respondCatalogError(w, err)
			return
		}

		out := make([]petTypeResponse, 0, len(types))
		for _, t := range types {
			out = append(out, toPetTypeResponse(t))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getPetTypeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := svc.GetPetType(r.Context(), chi.URLParam(r, "typeID"))
		if err != nil {
			respondCatalogError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPetTypeResponse(t))
	}
}

func deletePetTypeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeletePetType(r.Context(), chi.URLParam(r, "typeID")); err != nil {
			respondCatalogError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, ok := decodePetInput(w, r)
		if !ok {
			return
		}

		p, err := svc.CreatePet(r.Context(), chi.URLParam(r, "typeID"), in)
		if err != nil {
			respondCatalogError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		f := PetFilter{
			BornAfter:  q.Get("birthdateGT"),
			BornBefore: q.Get("birthdateLT"),
		}

		pets, err := svc.ListPets(r.Context(), chi.URLParam(r, "typeID"), f)
		if err != nil {
			respondCatalogError(w, err)
			return
		}

		out := make([]petResponse, 0, len(pets))
		for _, p := range pets {
			out = append(out, toPetResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetPet(r.Context(), chi.URLParam(r, "typeID"), chi.URLParam(r, "petName"))
		if err != nil {
			respondCatalogError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, ok := decodePetInput(w, r)
		if !ok {
			return
		}

		p, err := svc.UpdatePet(r.Context(), chi.URLParam(r, "typeID"), chi.URLParam(r, "petName"), in)
		if err != nil {
			respondCatalogError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeletePet(r.Context(), chi.URLParam(r, "typeID"), chi.URLParam(r, "petName")); err != nil {
			respondCatalogError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func getPictureHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, contentType, err := svc.GetPicture(r.Context(), chi.URLParam(r, "fileName"))
		if err != nil {
			writeError(w, http.StatusNotFound, "Not found")
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}

// decodePetInput decodifica primero a un map crudo para distinguir
// "picture-url ausente" de "picture-url: null" (misma estrategia que el
// PATCH de mascotas con birth_date).
func decodePetInput(w http.ResponseWriter, r *http.Request) (PetInput, bool) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil || raw == nil {
		writeError(w, http.StatusBadRequest, "Malformed data")
		return PetInput{}, false
	}

	var in PetInput

	nameRaw, ok := raw["name"]
	if !ok {
		writeError(w, http.StatusBadRequest, "Malformed data")
		return PetInput{}, false
	}
	if err := json.Unmarshal(nameRaw, &in.Name); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed data")
		return PetInput{}, false
	}

	if v, ok := raw["birthdate"]; ok {
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			writeError(w, http.StatusBadRequest, "Malformed data")
			return PetInput{}, false
		}
		in.Birthdate = &s
	}

	if v, ok := raw["picture-url"]; ok {
		in.PictureURL.Present = true
		if string(v) != "null" {
			var s string
			if err := json.Unmarshal(v, &s); err != nil {
				writeError(w, http.StatusBadRequest, "Malformed data")
				return PetInput{}, false
			}
			in.PictureURL.Value = &s
		}
	}

	return in, true
}

func queryValue(q map[string][]string, key string) *string {
	vs, ok := q[key]
	if !ok || len(vs) == 0 {
		return nil
	}
	v := vs[0]
	return &v
}

func respondCatalogError(w http.ResponseWriter, err error) {
	var upstream *taxonomy.UpstreamError
	var fetch *pictures.FetchError
	var httpErr *httpclient.HTTPError

	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, pictures.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, ErrDuplicate),
		errors.Is(err, ErrHasPets),
		errors.Is(err, ErrInvalidInput),
		errors.Is(err, taxonomy.ErrSpeciesNotFound):
		writeError(w, http.StatusBadRequest, "Malformed data")
	case errors.As(err, &upstream):
		writeUpstreamError(w, upstream.Code)
	case errors.As(err, &fetch):
		writeUpstreamError(w, fetch.Status)
	case errors.As(err, &httpErr):
		writeUpstreamError(w, httpErr.StatusCode)
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"server error": "API call failed",
		})
	}
}

func toPetTypeResponse(t PetType) petTypeResponse {
	attrs := t.Attributes
	if attrs == nil {
		attrs = []string{}
	}
	pets := t.Pets
	if pets == nil {
		pets = []string{}
	}
	return petTypeResponse{
		ID:         t.ID,
		Type:       t.Name,
		Family:     t.Family,
		Genus:      t.Genus,
		Attributes: attrs,
		Lifespan:   t.Lifespan,
		Pets:       pets,
	}
}

func toPetResponse(p Pet) petResponse {
	out := petResponse{
		Name:      p.Name,
		Birthdate: p.Birthdate,
		Picture:   p.Picture,
	}
	if out.Birthdate == "" {
		out.Birthdate = Unset
	}
	if out.Picture == "" {
		out.Picture = Unset
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeUpstreamError(w http.ResponseWriter, code int) {
	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"server error": fmt.Sprintf("API response code %d", code),
	})
}
