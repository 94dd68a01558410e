package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pdfbrief/pdfbrief/internal/credentials"
)

// Client talks to the summarization service. Two behaviors apply to every
// request/response pair: the persisted bearer token is read at call time and
// attached when present, and any 401 response tears down the persisted
// credential and fires the injected unauthorized handler before the error is
// returned to the caller.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	creds          *credentials.Store
	onUnauthorized func()
	logger         zerolog.Logger
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string, creds *credentials.Store, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		creds:      creds,
		logger:     logger,
	}
}

// SetUnauthorizedHandler installs the policy invoked whenever any request
// comes back 401. Callers never special-case authentication failure
// individually; this hook is the single teardown path.
func (c *Client) SetUnauthorizedHandler(fn func()) {
	c.onUnauthorized = fn
}

// errorBody matches the service's error shape. Detail is usually a string
// but validation failures return structured data, hence RawMessage.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	// Read the token at call time, never a cached copy.
	token, err := c.creds.Load()
	if err != nil {
		c.logger.Warn().Err(err).Msg("failed to load credentials")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("method", method).Str("path", path).Msg("request failed")
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Str("request_id", req.Header.Get("X-Request-ID")).
		Msg("request completed")

	if resp.StatusCode == http.StatusUnauthorized {
		c.handleUnauthorized()
		return decodeError(resp)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// handleUnauthorized clears the persisted credential and notifies the
// installed policy. The caller still receives the 401 error.
func (c *Client) handleUnauthorized() {
	if err := c.creds.Clear(); err != nil {
		c.logger.Warn().Err(err).Msg("failed to clear credentials after 401")
	}
	if c.onUnauthorized != nil {
		c.onUnauthorized()
	}
}

func decodeError(resp *http.Response) error {
	apiErr := &Error{StatusCode: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return apiErr
	}

	var body errorBody
	if err := json.Unmarshal(data, &body); err == nil && len(body.Detail) > 0 {
		var detail string
		if err := json.Unmarshal(body.Detail, &detail); err == nil {
			apiErr.Detail = detail
		} else {
			apiErr.Detail = string(body.Detail)
		}
	}
	return apiErr
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, "", out)
}

func (c *Client) postJSON(ctx context.Context, path string, payload any, out any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(data), "application/json", out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, "", nil)
}
