// Package api provides the HTTP client and typed endpoint wrappers for the
// PetCare API.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/petcarehq/petcare-cli/internal/config"
	"github.com/petcarehq/petcare-cli/internal/output"
	"github.com/petcarehq/petcare-cli/internal/version"
)

// TokenStore is the slice of the credential store the client needs: read the
// access token per request, clear the session on 401. The client never
// writes tokens; persisting them is the façade's job.
type TokenStore interface {
	GetAccessToken() string
	ClearTokens()
}

// RequestConfig describes a single logical request. It is constructed per
// call and never persisted.
type RequestConfig struct {
	Method  string
	Path    string
	Body    any               // JSON-encoded when non-nil
	Form    url.Values        // form-encoded body; takes precedence over Body
	Params  Params            // query parameters, nil values skipped
	Headers map[string]string // merged over the defaults
	Timeout time.Duration     // 0 means the configured default

	// NoAuth skips the Authorization header. The zero value means
	// authenticated, which is what nearly every endpoint wants.
	NoAuth bool
}

// Client executes requests against the PetCare API with bounded timeouts,
// linear-backoff retries, and envelope normalization.
type Client struct {
	httpClient *http.Client
	store      TokenStore
	cfg        *config.Config
	logger     *slog.Logger
}

// NewClient creates an API client backed by the given token store.
func NewClient(cfg *config.Config, store TokenStore, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		httpClient: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		store:  store,
		cfg:    cfg,
		logger: logger,
	}
}

// Get performs an authenticated GET request.
func (c *Client) Get(ctx context.Context, path string, params Params) (*Envelope, error) {
	return c.Do(ctx, RequestConfig{Method: http.MethodGet, Path: path, Params: params})
}

// Post performs an authenticated POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any) (*Envelope, error) {
	return c.Do(ctx, RequestConfig{Method: http.MethodPost, Path: path, Body: body})
}

// Do executes a request with the configured retry policy and returns the
// normalized envelope. Retryable failures (network, timeout, 5xx) are
// resolved internally; only the final failure surfaces.
func (c *Client) Do(ctx context.Context, rc RequestConfig) (*Envelope, error) {
	maxAttempts := c.cfg.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	baseDelay := time.Duration(c.cfg.BaseDelayMs) * time.Millisecond
	requestID := uuid.NewString()

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		env, err := c.attempt(ctx, rc, requestID, attempt)
		if err == nil {
			return env, nil
		}
		lastErr = err

		apiErr := output.AsError(err)
		if !apiErr.Retryable || attempt == maxAttempts {
			return nil, err
		}

		// Linear backoff: delay before retry k is baseDelay * k.
		delay := baseDelay * time.Duration(attempt)
		c.logger.Debug("retrying request",
			"attempt", attempt, "max_attempts", maxAttempts,
			"delay", delay, "error", err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	return nil, lastErr
}

func (c *Client) attempt(ctx context.Context, rc RequestConfig, requestID string, attempt int) (*Envelope, error) {
	timeout := rc.Timeout
	if timeout <= 0 {
		timeout = time.Duration(c.cfg.TimeoutMs) * time.Millisecond
	}
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := c.buildRequest(reqCtx, rc, requestID)
	if err != nil {
		return nil, err
	}

	if c.cfg.LogRequests {
		c.logger.Debug("api request",
			"method", rc.Method, "url", req.URL.String(),
			"request_id", requestID, "attempt", attempt)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// The per-attempt deadline follows the network-error path; the
		// caller's own cancellation does not.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, output.ErrTimeout(err)
		}
		return nil, output.ErrNetwork(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, output.ErrNetwork(err)
	}

	if c.cfg.LogResponses {
		c.logger.Debug("api response",
			"status", resp.StatusCode, "bytes", len(body),
			"request_id", requestID)
	}

	return c.handleResponse(resp, body)
}

func (c *Client) buildRequest(ctx context.Context, rc RequestConfig, requestID string) (*http.Request, error) {
	fullURL := BuildURL(c.cfg.BaseURL, rc.Path, rc.Params)

	var bodyReader io.Reader
	contentType := "application/json"
	switch {
	case rc.Form != nil:
		bodyReader = strings.NewReader(rc.Form.Encode())
		contentType = "application/x-www-form-urlencoded"
	case rc.Body != nil:
		data, err := json.Marshal(rc.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		bodyReader = strings.NewReader(string(data))
	}

	req, err := http.NewRequestWithContext(ctx, rc.Method, fullURL, bodyReader)
	if err != nil {
		return nil, output.ErrUsage(fmt.Sprintf("invalid request: %v", err))
	}

	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	req.Header.Set("X-Request-ID", requestID)
	for k, v := range rc.Headers {
		req.Header.Set(k, v)
	}

	// A missing token is not an error here: the request goes out without
	// the header and the server rejects it.
	if !rc.NoAuth {
		if token := c.store.GetAccessToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	return req, nil
}

func (c *Client) handleResponse(resp *http.Response, body []byte) (*Envelope, error) {
	if resp.StatusCode == http.StatusUnauthorized {
		// Any 401 invalidates the whole session, not just this request.
		c.store.ClearTokens()
		c.logger.Debug("cleared stored tokens after 401")
		return nil, output.ErrUnauthorized(errorMessage(body, "Authentication failed"))
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if len(body) == 0 {
			return wrapRaw([]byte("null")), nil
		}
		if !isJSONContentType(resp.Header.Get("Content-Type")) {
			return wrapText(body), nil
		}
		env, err := NormalizeEnvelope(body)
		if err != nil {
			return nil, output.ErrParse(resp.StatusCode, err)
		}
		return env, nil
	}

	if resp.StatusCode >= 500 {
		return nil, output.ErrServer(resp.StatusCode, errorMessage(body, ""))
	}

	code, msg := errorDetails(body)
	return nil, output.ErrClient(resp.StatusCode, code, msg)
}

func isJSONContentType(header string) bool {
	if header == "" {
		return true // assume JSON when the server does not say
	}
	mediaType, _, err := mime.ParseMediaType(header)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

// errorBody is the subset of fields backends put in failure bodies.
// FastAPI uses "detail"; the envelope shapes use "message"/"error".
type errorBody struct {
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
	Detail  json.RawMessage `json:"detail"`
}

func errorDetails(body []byte) (code, msg string) {
	var eb errorBody
	if json.Unmarshal(body, &eb) != nil {
		return "", ""
	}
	msg = eb.Message
	if msg == "" {
		msg = eb.Error
	}
	if msg == "" && len(eb.Detail) > 0 {
		var detail string
		if json.Unmarshal(eb.Detail, &detail) == nil {
			msg = detail
		}
	}
	return eb.Code, msg
}

func errorMessage(body []byte, fallback string) string {
	if _, msg := errorDetails(body); msg != "" {
		return msg
	}
	return fallback
}
