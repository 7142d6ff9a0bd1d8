package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/MikeSquared-Agency/Sourcing/internal/scoring"
)

// Status is the real-time inventory snapshot for one item across locations.
type Status struct {
	ItemID              string                    `json:"item_id"`
	LocationInventories []scoring.InventoryRecord `json:"location_inventories"`
}

// Service returns real-time per-location availability for an item.
// A nil slice with a nil error means the service has no snapshot for the item.
type Service interface {
	GetRealtimeInventory(ctx context.Context, itemID string) ([]scoring.InventoryRecord, error)
}

type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewHTTPClient(baseURL, token string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) doReq(ctx context.Context, method, path string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, 0, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}

func (c *HTTPClient) GetRealtimeInventory(ctx context.Context, itemID string) ([]scoring.InventoryRecord, error) {
	path := "/api/v1/inventory/" + url.PathEscape(itemID)
	data, code, err := c.doReq(ctx, http.MethodGet, path)
	if err != nil {
		return nil, fmt.Errorf("inventory GET %s: %w", path, err)
	}
	if code == http.StatusNotFound {
		return nil, nil
	}
	if code >= 400 {
		return nil, fmt.Errorf("inventory GET %s: %d %s", path, code, string(data))
	}

	var status Status
	if err := json.Unmarshal(data, &status); err != nil {
		return nil, fmt.Errorf("decode inventory status: %w", err)
	}
	return status.LocationInventories, nil
}

// StaticService serves a fixed snapshot keyed by item id.
type StaticService map[string][]scoring.InventoryRecord

func (s StaticService) GetRealtimeInventory(_ context.Context, itemID string) ([]scoring.InventoryRecord, error) {
	return s[itemID], nil
}
