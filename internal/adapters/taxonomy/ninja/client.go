package ninja

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pet-shop/internal/platform/httpclient"
	"pet-shop/internal/ports/taxonomy"
)

const DefaultBaseURL = "https://api.api-ninjas.com/v1/animals"

var ErrNotConfigured = errors.New("ninja api key not set")

// Config del cliente del API Ninja Animals.
// APIKey normalmente viene de NINJA_API_KEY. Las especies de la tabla
// fija se resuelven sin key.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type Client struct {
	http    *httpclient.Client
	baseURL string
	apiKey  string
}

func NewClient(cfg Config) *Client {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	return &Client{
		http:    httpclient.New(cfg.Timeout),
		baseURL: strings.TrimRight(base, "/"),
		apiKey:  strings.TrimSpace(cfg.APIKey),
	}
}

type animalEntry struct {
	Name     string `json:"name"`
	Taxonomy struct {
		Family string `json:"family"`
		Genus  string `json:"genus"`
	} `json:"taxonomy"`
	Characteristics struct {
		Temperament   string `json:"temperament"`
		GroupBehavior string `json:"group_behavior"`
		Lifespan      string `json:"lifespan"`
	} `json:"characteristics"`
}

// Resolve busca la especie: primero en la tabla fija determinística,
// después contra el API. Un 400 del upstream significa "especie no
// reconocida"; cualquier otro no-2xx se reporta como error upstream con
// su código.
func (c *Client) Resolve(ctx context.Context, species string) (taxonomy.Info, error) {
	if info, ok := fixture(species); ok {
		return info, nil
	}

	if c.apiKey == "" {
		return taxonomy.Info{}, ErrNotConfigured
	}

	query := url.Values{}
	query.Set("name", species)

	var entries []animalEntry
	err := c.http.DoJSON(ctx, http.MethodGet, c.baseURL, query, map[string]string{
		"X-Api-Key": c.apiKey,
	}, nil, &entries)
	if err != nil {
		var httpErr *httpclient.HTTPError
		if errors.As(err, &httpErr) {
			if httpErr.StatusCode == http.StatusBadRequest {
				return taxonomy.Info{}, taxonomy.ErrSpeciesNotFound
			}
			return taxonomy.Info{}, &taxonomy.UpstreamError{Code: httpErr.StatusCode}
		}
		return taxonomy.Info{}, err
	}

	// se exige match exacto del nombre, ignorando mayúsculas
	var chosen *animalEntry
	for i := range entries {
		if strings.EqualFold(entries[i].Name, species) {
			chosen = &entries[i]
			break
		}
	}
	if chosen == nil {
		return taxonomy.Info{}, taxonomy.ErrSpeciesNotFound
	}

	// temperament tiene prioridad sobre group_behavior
	attrText := chosen.Characteristics.Temperament
	if attrText == "" {
		attrText = chosen.Characteristics.GroupBehavior
	}

	return taxonomy.Info{
		Family:     chosen.Taxonomy.Family,
		Genus:      chosen.Taxonomy.Genus,
		Attributes: attributeWords(attrText),
		Lifespan:   minLifespan(chosen.Characteristics.Lifespan),
	}, nil
}
