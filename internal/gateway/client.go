package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	nonFungibleDataPath    = "/state/non-fungible/data"
	transactionPreviewPath = "/transaction/preview"

	maxErrorBody = 64 * 1024
)

// Client wraps the gateway HTTP API.
type Client struct {
	http    *http.Client
	baseURL string
}

// NewClient creates a gateway client for baseURL.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("gateway url is required")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}, nil
}

// Close releases idle connections.
func (c *Client) Close() {
	if c.http != nil {
		c.http.CloseIdleConnections()
	}
}

// NonFungibleData returns the stored data of the given non-fungible ids.
func (c *Client) NonFungibleData(ctx context.Context, resource string, ids []string) (*NonFungibleDataResponse, error) {
	req := NonFungibleDataRequest{
		ResourceAddress: resource,
		NonFungibleIDs:  ids,
	}
	var resp NonFungibleDataResponse
	if err := c.post(ctx, nonFungibleDataPath, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PreviewTransaction runs a manifest without committing it.
func (c *Client) PreviewTransaction(ctx context.Context, req PreviewRequest) (*PreviewResponse, error) {
	if req.SignerPublicKeys == nil {
		req.SignerPublicKeys = []PublicKey{}
	}
	var resp PreviewResponse
	if err := c.post(ctx, transactionPreviewPath, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("post %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return newAPIError(path, resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// APIError is a non-2xx gateway response.
type APIError struct {
	Path       string
	StatusCode int
	Message    string
	TraceID    string
}

func (e *APIError) Error() string {
	if e.TraceID != "" {
		return fmt.Sprintf("gateway %s: status %d: %s (trace %s)", e.Path, e.StatusCode, e.Message, e.TraceID)
	}
	return fmt.Sprintf("gateway %s: status %d: %s", e.Path, e.StatusCode, e.Message)
}

func newAPIError(path string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	apiErr := &APIError{Path: path, StatusCode: resp.StatusCode}

	var parsed ErrorResponse
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Message != "" {
		apiErr.Message = parsed.Message
		apiErr.TraceID = parsed.TraceID
	} else {
		apiErr.Message = strings.TrimSpace(string(body))
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
