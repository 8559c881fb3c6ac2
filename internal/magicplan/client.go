package magicplan

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"alazab/internal/config"
	"alazab/internal/domain"
	"alazab/internal/port"
)

// Client pulls project imagery from the Magicplan floor-plan service.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient creates a Magicplan-backed GallerySource.
func NewClient(cfg *config.MagicplanConfig) port.GallerySource {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: timeout},
	}
}

type imagesEnvelope struct {
	Images []wireImage `json:"images"`
	Plans  []wireImage `json:"plans"`
}

type wireImage struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	URL       string `json:"url"`
	Type      string `json:"type"`
	CreatedAt string `json:"created_at"`
}

// FetchProjectImages lists photos and floor plans for a Magicplan project.
func (c *Client) FetchProjectImages(ctx context.Context, sourceProjectID string) ([]domain.GalleryImage, error) {
	endpoint := fmt.Sprintf("%s/projects/%s/images", c.baseURL, sourceProjectID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("magicplan: building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGallerySourceFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", domain.ErrGallerySourceFailed, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: magicplan returned %d", domain.ErrGallerySourceFailed, resp.StatusCode)
	}

	var envelope imagesEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("magicplan: decoding images: %w", err)
	}

	out := make([]domain.GalleryImage, 0, len(envelope.Images)+len(envelope.Plans))
	for _, img := range envelope.Images {
		out = append(out, toGalleryImage(img, "photo"))
	}
	for _, img := range envelope.Plans {
		out = append(out, toGalleryImage(img, "floor_plan"))
	}
	return out, nil
}

func toGalleryImage(w wireImage, fallbackKind string) domain.GalleryImage {
	kind := w.Type
	if kind == "" {
		kind = fallbackKind
	}
	return domain.GalleryImage{
		ID:        w.ID,
		Name:      w.Name,
		URL:       w.URL,
		Kind:      kind,
		CreatedAt: w.CreatedAt,
	}
}
