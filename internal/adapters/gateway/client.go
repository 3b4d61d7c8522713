package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"property-viewer/internal/contextkeys"
	"property-viewer/internal/contracts"
	"property-viewer/internal/core/domain"
	"property-viewer/internal/core/port"
	"strings"
	"time"
)

// maxBodyBytes bounds how much of a response is read into memory.
const maxBodyBytes = 8 << 20

// ResponseTooLargeMessage reports a 2xx body over the read limit.
const ResponseTooLargeMessage = "Response too large"

// Client - the single point of outbound HTTP to the listings backend.
// Every failure it returns is a *domain.APIError.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	maxBody    int64
}

// NewClient parses baseURL (for example "http://localhost:3001/api/v1");
// request paths are appended to its path.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid backend URL %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("backend URL %q must be absolute", baseURL)
	}
	return &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: timeout},
		maxBody:    maxBodyBytes,
	}, nil
}

// BaseURL returns the configured backend prefix.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// PathSegment escapes an identifier for embedding in a URL path.
func PathSegment(id string) string {
	return url.PathEscape(id)
}

// Get performs GET path and decodes the JSON body into out after checking it
// against the named contract schema.
func (c *Client) Get(ctx context.Context, path, contract string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, contract, out)
}

// Post sends body as JSON and decodes the response like Get.
func (c *Client) Post(ctx context.Context, path string, body any, contract string, out any) error {
	return c.do(ctx, http.MethodPost, path, body, contract, out)
}

func (c *Client) endpoint(path string) string {
	return c.baseURL.String() + "/" + strings.TrimLeft(path, "/")
}

func (c *Client) do(ctx context.Context, method, path string, body any, contract string, out any) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "gateway",
		"method":    method,
		"path":      path,
	})

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			logger.Error("Failed to marshal request body", err, nil)
			return &domain.APIError{Message: fmt.Sprintf("Invalid request: %v", err)}
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), reqBody)
	if err != nil {
		logger.Error("Failed to create request", err, nil)
		return &domain.APIError{Message: fmt.Sprintf("Invalid request: %v", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn("Request got no response", port.Fields{"error": err.Error()})
		return domain.NewNetworkError()
	}
	defer resp.Body.Close()

	// One byte past the limit tells a full body from a cut one.
	data, readErr := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	tooLarge := int64(len(data)) > c.maxBody
	if tooLarge {
		data = data[:c.maxBody]
	}

	logger.Debug("Response received", port.Fields{
		"status_code": resp.StatusCode,
		"bytes":       len(data),
		"duration_ms": time.Since(startTime).Milliseconds(),
	})

	// A status line was received, so a non-2xx answer keeps its status even
	// when the body is short or unreadable.
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := normalizeError(resp.StatusCode, data)
		logger.Warn("Backend returned an error", port.Fields{"status_code": apiErr.Status, "message": apiErr.Message})
		return apiErr
	}

	if readErr != nil {
		logger.Warn("Failed to read response body", port.Fields{"error": readErr.Error(), "status_code": resp.StatusCode})
		return domain.NewNetworkError()
	}
	if tooLarge {
		logger.Error("Response exceeds read limit", nil, port.Fields{"limit_bytes": c.maxBody})
		return &domain.APIError{Message: ResponseTooLargeMessage, Status: resp.StatusCode}
	}

	if out == nil {
		return nil
	}

	if contract != "" {
		if err := contracts.Validate(contract, data); err != nil {
			logger.Error("Response violates contract", err, port.Fields{"contract": contract})
			return &domain.APIError{Message: domain.UnexpectedFormatMessage, Status: resp.StatusCode}
		}
	}

	if err := json.Unmarshal(data, out); err != nil {
		logger.Error("Failed to decode response", err, nil)
		return &domain.APIError{Message: domain.UnexpectedFormatMessage, Status: resp.StatusCode}
	}
	return nil
}
