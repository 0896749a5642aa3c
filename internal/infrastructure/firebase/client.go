package firebase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/myskyn/backend/internal/domain"
	"golang.org/x/time/rate"
)

const (
	defaultProductsPath = "products"
	defaultRulesPath    = "compatibilityRules"
	maxAttempts         = 3
)

// Client reads the hosted Realtime Database over its REST surface.
// Collections are fetched as whole nodes: GET <base>/<path>.json returns the
// node as a JSON object keyed by record id, or the literal null when the
// node does not exist.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	authToken    string
	productsPath string
	rulesPath    string
	rateLimiter  *rate.Limiter
	debug        bool
}

// NewClient creates a new Realtime Database client.
func NewClient(baseURL, authToken string) *Client {
	// The free-tier database throttles aggressive readers; 5 req/sec with a
	// small burst stays well inside its limits.
	limiter := rate.NewLimiter(rate.Limit(5), 10)

	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		baseURL:      baseURL,
		authToken:    authToken,
		productsPath: defaultProductsPath,
		rulesPath:    defaultRulesPath,
		rateLimiter:  limiter,
	}
}

// SetDebug enables verbose request logging.
func (c *Client) SetDebug(enabled bool) {
	c.debug = enabled
}

// SetPaths overrides the database node paths for products and rules.
func (c *Client) SetPaths(productsPath, rulesPath string) {
	if productsPath != "" {
		c.productsPath = productsPath
	}
	if rulesPath != "" {
		c.rulesPath = rulesPath
	}
}

// FetchProducts reads the full products node and returns the catalog ordered
// by record id. A missing node yields an empty catalog, not an error.
func (c *Client) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	raw, err := c.fetchNode(ctx, c.productsPath)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		if c.debug {
			log.Printf("[STORE] products node is empty")
		}
		return []domain.Product{}, nil
	}
	return mapProducts(raw), nil
}

// FetchRules reads the full compatibilityRules node. A missing node yields
// an empty mapping; the fallback to the built-in defaults is the rule
// service's decision, not the transport's.
func (c *Client) FetchRules(ctx context.Context) (map[string]domain.CompatibilityRule, error) {
	raw, err := c.fetchNode(ctx, c.rulesPath)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		if c.debug {
			log.Printf("[STORE] rules node is empty")
		}
		return map[string]domain.CompatibilityRule{}, nil
	}
	return mapRules(raw), nil
}

// fetchNode GETs one database node and decodes it into a map of raw records.
// Returns (nil, nil) when the node does not exist (body "null").
func (c *Client) fetchNode(ctx context.Context, path string) (map[string]json.RawMessage, error) {
	reqURL := c.nodeURL(path)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		body, err := c.doRequest(ctx, reqURL)
		if err != nil {
			if c.debug {
				log.Printf("[STORE] %s request error (attempt %d): %v", path, attempt, err)
			}
			lastErr = err
			if attempt < maxAttempts {
				select {
				case <-ctx.Done():
					return nil, ctx.Err()
				case <-time.After(exponentialBackoff(attempt)):
				}
			}
			continue
		}

		// A node that has never been written decodes as JSON null.
		var node map[string]json.RawMessage
		if err := json.Unmarshal(body, &node); err != nil {
			return nil, fmt.Errorf("failed to decode %s node: %w", path, err)
		}
		if c.debug {
			log.Printf("[STORE] fetched %d records from %s", len(node), path)
		}
		return node, nil
	}

	return nil, lastErr
}

// doRequest executes one HTTP GET and returns the response body.
func (c *Client) doRequest(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "MySkyn/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDataUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", domain.ErrDataUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", domain.ErrDataUnavailable, resp.StatusCode)
	}

	return body, nil
}

// nodeURL builds the REST URL for a database node, appending the auth token
// when one is configured.
func (c *Client) nodeURL(path string) string {
	reqURL := fmt.Sprintf("%s/%s.json", c.baseURL, path)
	if c.authToken != "" {
		params := url.Values{}
		params.Add("auth", c.authToken)
		reqURL = fmt.Sprintf("%s?%s", reqURL, params.Encode())
	}
	return reqURL
}

// exponentialBackoff returns the wait duration before the next retry attempt.
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(attempt) * 500 * time.Millisecond
}
