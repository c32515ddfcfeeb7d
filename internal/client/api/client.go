// Package api is the HTTP client the listing CLI uses to reach
// homes-service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Abdurahmanit/GroupProject/homes-service/internal/home/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

const (
	imageUploadPath = "/api/image-upload"
	homesPath       = "/api/homes"
	defaultTimeout  = 30 * time.Second
)

// APIError is a non-2xx answer from the service.
type APIError struct {
	Status  int
	Message string
	Fields  domain.FieldErrors
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("homes-service: status %d", e.Status)
	}
	return fmt.Sprintf("homes-service: status %d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for the service at baseURL. A nil httpClient uses a
// client with a 30s timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// Upload sends a data URL to the upload relay and returns its public URL.
func (c *Client) Upload(ctx context.Context, dataURL string) (string, error) {
	var out struct {
		URL string `json:"url"`
	}
	if err := c.post(ctx, imageUploadPath, map[string]string{"image": dataURL}, &out); err != nil {
		return "", err
	}
	if out.URL == "" {
		return "", errors.New("homes-service: upload response has no url")
	}
	return out.URL, nil
}

func (c *Client) CreateHome(ctx context.Context, home domain.NewHome) (*domain.Home, error) {
	var out domain.Home
	if err := c.post(ctx, homesPath, home, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) post(ctx context.Context, path string, in, out interface{}) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	var msg struct {
		Message string             `json:"message"`
		Errors  domain.FieldErrors `json:"errors"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(raw, &msg); err != nil {
		msg.Message = strings.TrimSpace(string(raw))
	}
	return &APIError{Status: resp.StatusCode, Message: msg.Message, Fields: msg.Errors}
}
