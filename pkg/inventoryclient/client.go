// Package inventoryclient is a typed client for the inventory REST API,
// covering the same operations the dashboard uses.
package inventoryclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type Item struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Brand         *string   `json:"brand"`
	Category      string    `json:"category"`
	SKU           *string   `json:"sku"`
	Quantity      int64     `json:"quantity"`
	MinStockLevel int64     `json:"min_stock_level"`
	UnitPrice     float64   `json:"unit_price"`
	TotalValue    float64   `json:"total_value"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type CreateItemInput struct {
	Name          string   `json:"name"`
	Brand         *string  `json:"brand,omitempty"`
	Category      string   `json:"category"`
	SKU           *string  `json:"sku,omitempty"`
	Quantity      *int64   `json:"quantity,omitempty"`
	MinStockLevel *int64   `json:"min_stock_level,omitempty"`
	UnitPrice     *float64 `json:"unit_price,omitempty"`
}

type UpdateItemInput struct {
	Name          *string  `json:"name,omitempty"`
	Brand         *string  `json:"brand,omitempty"`
	Category      *string  `json:"category,omitempty"`
	SKU           *string  `json:"sku,omitempty"`
	Quantity      *int64   `json:"quantity,omitempty"`
	MinStockLevel *int64   `json:"min_stock_level,omitempty"`
	UnitPrice     *float64 `json:"unit_price,omitempty"`
}

type Stats struct {
	TotalItems    int64   `json:"total_items"`
	TotalUnits    int64   `json:"total_units"`
	TotalValue    float64 `json:"total_value"`
	LowStockItems int64   `json:"low_stock_items"`
	Categories    int64   `json:"categories"`
}

// APIError is a non-2xx response decoded into the server's error body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("inventory api: %s (status %d)", e.Message, e.StatusCode)
}

func (c *Client) List(ctx context.Context) ([]Item, error) {
	var items []Item
	if err := c.do(ctx, http.MethodGet, "/api/inventory", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) Get(ctx context.Context, id string) (*Item, error) {
	var item Item
	if err := c.do(ctx, http.MethodGet, "/api/inventory/"+id, nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) Create(ctx context.Context, input CreateItemInput) (*Item, error) {
	var item Item
	if err := c.do(ctx, http.MethodPost, "/api/inventory", input, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) Update(ctx context.Context, id string, input UpdateItemInput) (*Item, error) {
	var item Item
	if err := c.do(ctx, http.MethodPut, "/api/inventory/"+id, input, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete removes the item and returns the deleted record.
func (c *Client) Delete(ctx context.Context, id string) (*Item, error) {
	var resp struct {
		Message     string `json:"message"`
		DeletedItem Item   `json:"deletedItem"`
	}
	if err := c.do(ctx, http.MethodDelete, "/api/inventory/"+id, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.DeletedItem, nil
}

func (c *Client) LowStock(ctx context.Context) ([]Item, error) {
	var items []Item
	if err := c.do(ctx, http.MethodGet, "/api/inventory/low-stock", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	var stats Stats
	if err := c.do(ctx, http.MethodGet, "/api/inventory/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
		var errBody struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errBody); err == nil && errBody.Error != "" {
			apiErr.Message = errBody.Error
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
