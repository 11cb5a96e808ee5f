package remote

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"pet-shop/internal/platform/httpclient"
	"pet-shop/internal/ports/catalog"
)

// Client habla con una instancia remota del petstore por HTTP.
type Client struct {
	http *httpclient.Client
}

func New(baseURL string, timeout time.Duration) (*Client, error) {
	c, err := httpclient.NewWithBaseURL(baseURL, timeout)
	if err != nil {
		return nil, err
	}
	return &Client{http: c}, nil
}

func (c *Client) ResolveTypeID(ctx context.Context, species string) (string, error) {
	query := url.Values{}
	query.Set("type", species)

	var types []struct {
		ID   string `json:"id"`
		Type string `json:"type"`
	}
	if err := c.http.DoJSON(ctx, http.MethodGet, "/pet-types", query, nil, nil, &types); err != nil {
		return "", err
	}
	if len(types) == 0 {
		return "", catalog.ErrNotFound
	}
	return types[0].ID, nil
}

func (c *Client) ListPets(ctx context.Context, typeID string) ([]catalog.Pet, error) {
	var pets []struct {
		Name      string `json:"name"`
		Birthdate string `json:"birthdate"`
		Picture   string `json:"picture"`
	}
	path := "/pet-types/" + url.PathEscape(typeID) + "/pets"
	if err := c.http.DoJSON(ctx, http.MethodGet, path, nil, nil, nil, &pets); err != nil {
		return nil, err
	}

	out := make([]catalog.Pet, 0, len(pets))
	for _, p := range pets {
		out = append(out, catalog.Pet{
			Name:      p.Name,
			Birthdate: p.Birthdate,
			Picture:   p.Picture,
		})
	}
	return out, nil
}

func (c *Client) DeletePet(ctx context.Context, typeID, name string) error {
	path := "/pet-types/" + url.PathEscape(typeID) + "/pets/" + url.PathEscape(name)
	return c.http.DoJSON(ctx, http.MethodDelete, path, nil, nil, nil, nil)
}
