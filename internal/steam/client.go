package steam

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cs2-inventory-api/internal/model"
)

const (
	DefaultBaseURL   = "https://steamcommunity.com/inventory"
	DefaultTimeout   = 15 * time.Second
	DefaultItemCount = 5000
)

// InventoryRequest identifies one inventory on the community endpoint.
type InventoryRequest struct {
	SteamID   string
	AppID     string
	ContextID string
	Language  string
}

// ClientConfig holds settings for the upstream client.
type ClientConfig struct {
	BaseURL   string
	Timeout   time.Duration
	ItemCount int

	// HTTPClient is optional; a client without its own timeout is used by default.
	HTTPClient *http.Client
}

// Client fetches raw inventories from the Steam community endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	timeout    time.Duration
	itemCount  int
}

// NewClient creates a new upstream client, filling unset fields with defaults.
func NewClient(cfg ClientConfig) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.ItemCount <= 0 {
		cfg.ItemCount = DefaultItemCount
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{}
	}

	return &Client{
		httpClient: cfg.HTTPClient,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		timeout:    cfg.Timeout,
		itemCount:  cfg.ItemCount,
	}
}

// InventoryURL builds the GET URL for req.
func (c *Client) InventoryURL(req InventoryRequest) string {
	return fmt.Sprintf("%s/%s/%s/%s?l=%s&count=%d",
		c.baseURL,
		url.PathEscape(req.SteamID),
		url.PathEscape(req.AppID),
		url.PathEscape(req.ContextID),
		url.QueryEscape(req.Language),
		c.itemCount,
	)
}

// GetInventory performs one bounded GET and validates the payload shape.
// The call is aborted once the client timeout elapses.
func (c *Client) GetInventory(ctx context.Context, req InventoryRequest) (*model.SteamInventory, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.InventoryURL(req), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, c.wrapTransportError(ctx, err)
	}
	defer func() {
		if closeErr := res.Body.Close(); closeErr != nil {
			log.Printf("[SteamClient] Warning: failed to close response body: %v", closeErr)
		}
	}()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &StatusError{StatusCode: res.StatusCode}
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, c.wrapTransportError(ctx, err)
	}

	return decodeInventory(body)
}

func (c *Client) wrapTransportError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w after %v", ErrTimeout, c.timeout)
	}
	return fmt.Errorf("failed to fetch inventory: %w", err)
}

// inventoryPayload keeps success, assets and descriptions raw: only a
// literal false marks failure, a missing or non-array asset list must be told
// apart from an empty inventory, and bad descriptions are dropped rather than
// failing the fetch.
type inventoryPayload struct {
	Success      json.RawMessage `json:"success"`
	Assets       json.RawMessage `json:"assets"`
	Descriptions json.RawMessage `json:"descriptions"`
}

// decodeInventory rejects absent bodies, success=false and non-array assets.
func decodeInventory(body []byte) (*model.SteamInventory, error) {
	var payload *inventoryPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if payload == nil {
		return nil, fmt.Errorf("%w: empty body", ErrMalformedPayload)
	}
	if bytes.Equal(bytes.TrimSpace(payload.Success), []byte("false")) {
		return nil, fmt.Errorf("%w: success=false", ErrMalformedPayload)
	}
	if !isJSONArray(payload.Assets) {
		return nil, fmt.Errorf("%w: assets is not an array", ErrMalformedPayload)
	}

	var assets []model.Asset
	if err := json.Unmarshal(payload.Assets, &assets); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	return &model.SteamInventory{
		Assets:       assets,
		Descriptions: decodeDescriptions(payload.Descriptions),
	}, nil
}

// decodeDescriptions skips entries that are not objects. A missing or
// non-array list yields no descriptions.
func decodeDescriptions(raw json.RawMessage) []model.Description {
	if !isJSONArray(raw) {
		return nil
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil
	}

	descriptions := make([]model.Description, 0, len(entries))
	for _, entry := range entries {
		var d model.Description
		if err := json.Unmarshal(entry, &d); err != nil {
			continue
		}
		descriptions = append(descriptions, d)
	}
	return descriptions
}

func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}
