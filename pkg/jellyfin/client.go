package jellyfin

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/melbahja/got"

	"jellygram/pkg/errors"
)

const defaultTimeout = 30 * time.Second

// Config holds the settings for a Jellyfin API client
type Config struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// Client talks to the Jellyfin server REST API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new Jellyfin API client
func NewClient(config *Config) (*Client, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("jellyfin base URL is required")
	}
	if config.APIKey == "" {
		return nil, fmt.Errorf("jellyfin API key is required")
	}

	httpClient := config.Client
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: defaultTimeout,
		}
	}

	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		apiKey:     config.APIKey,
		httpClient: httpClient,
	}, nil
}

func (c *Client) buildURL(endpoint string, query url.Values) string {
	if query == nil {
		query = url.Values{}
	}
	query.Set("api_key", c.apiKey)
	return fmt.Sprintf("%s%s?%s", c.baseURL, endpoint, query.Encode())
}

func (c *Client) doJSONRequest(ctx context.Context, endpoint string, query url.Values, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(endpoint, query), nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}

// GetItem fetches the metadata of a single library item by id
func (c *Client) GetItem(ctx context.Context, itemID string) (*Item, error) {
	if itemID == "" {
		return nil, errors.ErrInvalidInput
	}

	query := url.Values{}
	query.Set("ids", itemID)
	query.Set("fields", "DateCreated,PremiereDate,Overview")

	var result ItemsResponse
	if err := c.doJSONRequest(ctx, "/Items", query, &result); err != nil {
		return nil, fmt.Errorf("fetching item %s: %w", itemID, err)
	}
	if len(result.Items) == 0 {
		return nil, fmt.Errorf("item %s: %w", itemID, errors.ErrNotFound)
	}
	return &result.Items[0], nil
}

// PrimaryImageURL returns the URL of an item's primary image
func (c *Client) PrimaryImageURL(itemID string) string {
	return fmt.Sprintf("%s/Items/%s/Images/Primary?api_key=%s", c.baseURL, itemID, c.apiKey)
}

// DetailsURL returns the web UI deep link for an item
func (c *Client) DetailsURL(itemID string) string {
	return fmt.Sprintf("%s/web/index.html#!/details?id=%s", c.baseURL, itemID)
}

// DownloadImage fetches an item's primary image into a temporary file and
// returns its path together with a cleanup function. Items without a
// primary image return ErrNotFound.
func (c *Client) DownloadImage(ctx context.Context, itemID string) (string, func(), error) {
	if itemID == "" {
		return "", nil, errors.ErrInvalidInput
	}

	tmp, err := os.CreateTemp("", "jellygram-poster-*.jpg")
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}
	tmp.Close()
	cleanup := func() { os.Remove(tmp.Name()) }

	dl := got.NewDownload(ctx, c.PrimaryImageURL(itemID), tmp.Name())
	if err := dl.Init(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("image %s: %w", itemID, errors.ErrNotFound)
	}
	if err := dl.Start(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("downloading image %s: %w", itemID, err)
	}

	info, err := os.Stat(tmp.Name())
	if err != nil || info.Size() == 0 {
		cleanup()
		return "", nil, fmt.Errorf("image %s: %w", itemID, errors.ErrNotFound)
	}

	return tmp.Name(), cleanup, nil
}
