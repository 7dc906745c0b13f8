// Package client talks to the inventory REST API and implements the backend
// the asset tree is built from.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"iotdash/internal/domain"
	"iotdash/internal/domain/models/inventory"
	svc "iotdash/internal/domain/services/assettree"
)

const (
	// DefaultBaseURL is the API root used when none is configured
	DefaultBaseURL = "http://localhost:8080/api"
	// DefaultTimeout bounds every request
	DefaultTimeout = 30 * time.Second
)

// InventoryClient implements the asset tree backend over HTTP
type InventoryClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

var _ svc.Backend = (*InventoryClient)(nil)

// NewInventoryClient creates a client for the API rooted at baseURL.
// token may be empty when the server runs without authentication.
func NewInventoryClient(baseURL, token string, timeout time.Duration) *InventoryClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &InventoryClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *InventoryClient) FetchHierarchy(ctx context.Context) ([]*inventory.LocationNode, error) {
	var tree []*inventory.LocationNode
	if err := c.do(ctx, http.MethodGet, "/locations/tree", nil, &tree); err != nil {
		return nil, err
	}
	return tree, nil
}

func (c *InventoryClient) FetchDevices(ctx context.Context) ([]inventory.Device, error) {
	var devices []inventory.Device
	if err := c.do(ctx, http.MethodGet, "/devices", nil, &devices); err != nil {
		return nil, err
	}
	return devices, nil
}

func (c *InventoryClient) FetchDataPoints(ctx context.Context) ([]inventory.DataPoint, error) {
	var points []inventory.DataPoint
	if err := c.do(ctx, http.MethodGet, "/data-points", nil, &points); err != nil {
		return nil, err
	}
	return points, nil
}

func (c *InventoryClient) CreateLocation(ctx context.Context, req *inventory.CreateLocationRequest) (*inventory.Location, error) {
	var loc inventory.Location
	if err := c.do(ctx, http.MethodPost, "/locations", req, &loc); err != nil {
		return nil, err
	}
	return &loc, nil
}

func (c *InventoryClient) MoveLocation(ctx context.Context, id string, req *inventory.MoveLocationRequest) error {
	var resp inventory.MoveLocationResponse
	if err := c.do(ctx, http.MethodPost, "/locations/"+url.PathEscape(id)+"/move", req, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("move %s: %s", id, resp.Message)
	}
	return nil
}

func (c *InventoryClient) DeleteLocation(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/locations/"+url.PathEscape(id), nil, nil)
}

// do sends one request and decodes a 2xx JSON body into out when out is non-nil
func (c *InventoryClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp.StatusCode, respBody)
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// problem is the subset of an RFC 7807 body the client reads
type problem struct {
	Detail       string `json:"detail"`
	ResourceType string `json:"resource_type"`
	ResourceID   string `json:"resource_id"`
}

// statusError maps an error response onto the domain error types so callers
// can use errors.Is against the domain sentinels.
func statusError(status int, body []byte) error {
	var p problem
	if err := json.Unmarshal(body, &p); err != nil || p.Detail == "" {
		p.Detail = strings.TrimSpace(string(body))
		if p.Detail == "" {
			p.Detail = http.StatusText(status)
		}
	}

	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return &domain.ValidationError{Message: p.Detail}
	case http.StatusNotFound:
		return &domain.NotFoundError{Message: p.Detail}
	case http.StatusConflict:
		return &domain.ConflictError{Message: p.Detail, ResourceType: p.ResourceType, ResourceID: p.ResourceID}
	case http.StatusUnauthorized:
		return &domain.UnauthorizedError{Message: p.Detail}
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", domain.ErrForbidden, p.Detail)
	default:
		return fmt.Errorf("API error (status %d): %s", status, p.Detail)
	}
}
