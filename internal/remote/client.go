// Package remote is the REST client for the server collaborator: the
// authoritative backend the register hydrates from and replays queued
// mutations against.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/smartpos/smartposgo/internal/models"
)

// Client talks to the backend API with bearer auth and a bounded per-request
// timeout so a stuck request cannot stall the drain loop indefinitely.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a backend API client
func NewClient(baseURL, token string, timeoutSeconds int) *Client {
	if timeoutSeconds <= 0 {
		timeoutSeconds = 10
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: time.Duration(timeoutSeconds) * time.Second,
		},
	}
}

// BaseURL returns the configured backend base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// StatusError is a non-2xx response from the backend
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("remote: HTTP %d: %s", e.StatusCode, e.Body)
}

// do sends one JSON request. idemKey, when set, is forwarded as the
// Idempotency-Key header so the server can deduplicate replays.
func (c *Client) do(ctx context.Context, method, path string, payload interface{}, idemKey string, out interface{}) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("remote: marshal request: %w", err)
		}
		body = bytes.NewBuffer(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("remote: create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if idemKey != "" {
		req.Header.Set("Idempotency-Key", idemKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("remote: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("remote: decode response: %w", err)
		}
	}
	return nil
}

// Health probes the backend; a nil error means the server is reachable
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, "", nil)
}

// ListProducts pulls the full product list for cache hydration
func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, "", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ListCustomers pulls the full customer list for cache hydration
func (c *Client) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	if err := c.do(ctx, http.MethodGet, "/customers", nil, "", &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

// CreateTransaction replays a completed sale. The server deduplicates on the
// idempotency key and the unique transaction number, so resending after a
// lost acknowledgment is safe.
func (c *Client) CreateTransaction(ctx context.Context, idemKey string, txn models.Transaction, items []models.TransactionItem) error {
	payload := map[string]interface{}{
		"transaction": txn,
		"items":       items,
	}
	return c.do(ctx, http.MethodPost, "/transactions", payload, idemKey, nil)
}

// CreateProduct replays a locally-created product
func (c *Client) CreateProduct(ctx context.Context, idemKey string, p models.Product) error {
	return c.do(ctx, http.MethodPost, "/products", p, idemKey, nil)
}

// UpdateProduct replays a local product edit
func (c *Client) UpdateProduct(ctx context.Context, idemKey string, p models.Product) error {
	return c.do(ctx, http.MethodPut, "/products/"+p.ID, p, idemKey, nil)
}

// DeleteProduct replays a local product deletion
func (c *Client) DeleteProduct(ctx context.Context, idemKey, id string) error {
	return c.do(ctx, http.MethodDelete, "/products/"+id, nil, idemKey, nil)
}

// CreateCustomer replays a locally-created customer
func (c *Client) CreateCustomer(ctx context.Context, idemKey string, cu models.Customer) error {
	return c.do(ctx, http.MethodPost, "/customers", cu, idemKey, nil)
}

// UpdateCustomer replays a local customer edit
func (c *Client) UpdateCustomer(ctx context.Context, idemKey string, cu models.Customer) error {
	return c.do(ctx, http.MethodPut, "/customers/"+cu.ID, cu, idemKey, nil)
}

// DeleteCustomer replays a local customer deletion
func (c *Client) DeleteCustomer(ctx context.Context, idemKey, id string) error {
	return c.do(ctx, http.MethodDelete, "/customers/"+id, nil, idemKey, nil)
}
