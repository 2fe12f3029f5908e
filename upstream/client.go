// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/danielhkuo/tanker-portal/metrics"
	"github.com/danielhkuo/tanker-portal/models"
)

// Endpoint paths on the drought backend
const (
	PathRequests      = "/api/v1/requests"
	PathNotifications = "/api/v1/mobile/notifications"
	PathDroughtData   = "/drought/data"
	PathSubmit        = "/requests"
)

// ErrEmpty is returned when a collection endpoint answers with no records.
var ErrEmpty = errors.New("upstream returned no records")

// StatusError is a non-2xx answer from the backend.
type StatusError struct {
	Method string
	Path   string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.Code)
}

// SchemaError is a body that could not be decoded or failed validation.
type SchemaError struct {
	Path string
	Err  error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: invalid payload: %v", e.Path, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// Client talks to the drought backend over its JSON/HTTP contracts.
// It never retries; callers decide how to degrade.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ListRequests handles GET /api/v1/requests
func (c *Client) ListRequests(ctx context.Context) ([]models.AllocationRequest, error) {
	var wire []wireRequest
	if err := c.getJSON(ctx, PathRequests, &wire); err != nil {
		return nil, err
	}

	if len(wire) == 0 {
		metrics.UpstreamCalls.WithLabelValues(PathRequests, metrics.OutcomeEmpty).Inc()
		return nil, ErrEmpty
	}

	reqs := make([]models.AllocationRequest, 0, len(wire))
	for i := range wire {
		if err := models.Validate(&wire[i]); err != nil {
			metrics.UpstreamCalls.WithLabelValues(PathRequests, metrics.OutcomeSchema).Inc()
			return nil, &SchemaError{Path: PathRequests, Err: fmt.Errorf("record %d: %w", i, err)}
		}
		reqs = append(reqs, wire[i].toModel())
	}

	metrics.UpstreamCalls.WithLabelValues(PathRequests, metrics.OutcomeOK).Inc()
	return reqs, nil
}

// ApplyAction handles POST /api/v1/requests/{id}/action?status={status}
func (c *Client) ApplyAction(ctx context.Context, id int64, status, idempotencyKey string) error {
	path := fmt.Sprintf("%s/%d/action", PathRequests, id)
	query := url.Values{"status": []string{status}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build action request: %w", err)
	}
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	endpoint := PathRequests + "/{id}/action"
	if _, err := c.do(req, endpoint); err != nil {
		return err
	}
	metrics.UpstreamCalls.WithLabelValues(endpoint, metrics.OutcomeOK).Inc()
	return nil
}

// SendMobileNotification handles POST /api/v1/mobile/notifications.
// The response body is ignored.
func (c *Client) SendMobileNotification(ctx context.Context, n models.MobileNotification) error {
	return c.postJSON(ctx, PathNotifications, n)
}

// SubmitRequest handles POST /requests
func (c *Client) SubmitRequest(ctx context.Context, r models.NewTankerRequest) error {
	return c.postJSON(ctx, PathSubmit, r)
}

// DroughtData handles GET /drought/data
func (c *Client) DroughtData(ctx context.Context) (models.DroughtData, error) {
	var wire wireDrought
	if err := c.getJSON(ctx, PathDroughtData, &wire); err != nil {
		return models.DroughtData{}, err
	}

	if err := models.Validate(&wire); err != nil {
		metrics.UpstreamCalls.WithLabelValues(PathDroughtData, metrics.OutcomeSchema).Inc()
		return models.DroughtData{}, &SchemaError{Path: PathDroughtData, Err: err}
	}
	if len(wire.Data.Districts) == 0 {
		metrics.UpstreamCalls.WithLabelValues(PathDroughtData, metrics.OutcomeEmpty).Inc()
		return models.DroughtData{}, ErrEmpty
	}

	metrics.UpstreamCalls.WithLabelValues(PathDroughtData, metrics.OutcomeOK).Inc()
	return wire.toModel(), nil
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	body, err := c.do(req, path)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, v); err != nil {
		metrics.UpstreamCalls.WithLabelValues(path, metrics.OutcomeSchema).Inc()
		return &SchemaError{Path: path, Err: err}
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, path string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s body: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if _, err := c.do(req, path); err != nil {
		return err
	}
	metrics.UpstreamCalls.WithLabelValues(path, metrics.OutcomeOK).Inc()
	return nil
}

// do sends req and returns the body of a 2xx answer. endpoint is the metric label.
func (c *Client) do(req *http.Request, endpoint string) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.UpstreamCalls.WithLabelValues(endpoint, metrics.OutcomeTransport).Inc()
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused
		io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		metrics.UpstreamCalls.WithLabelValues(endpoint, metrics.OutcomeStatus).Inc()
		return nil, &StatusError{Method: req.Method, Path: req.URL.Path, Code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		metrics.UpstreamCalls.WithLabelValues(endpoint, metrics.OutcomeTransport).Inc()
		return nil, fmt.Errorf("%s %s: read body: %w", req.Method, req.URL.Path, err)
	}
	return body, nil
}
