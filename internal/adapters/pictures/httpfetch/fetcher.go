package httpfetch

import (
	"context"
	"io"
	"net/http"
	"time"

	"pet-shop/internal/ports/pictures"
)

const (
	defaultTimeout = 15 * time.Second
	maxImageBytes  = 16 << 20 // 16MB por imagen
)

// Fetcher descarga imágenes por HTTP.
type Fetcher struct {
	client *http.Client
}

func New(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
	}
}

// NewWithClient permite inyectar un *http.Client (p.ej. para tests).
func NewWithClient(client *http.Client) *Fetcher {
	if client == nil {
		return New(0)
	}
	return &Fetcher{client: client}
}

func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", &pictures.FetchError{Status: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, "", err
	}

	return data, resp.Header.Get("Content-Type"), nil
}
