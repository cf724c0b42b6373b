package adminapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"
)

// CredentialSource supplies the bearer token attached to authenticated
// requests. Clear is invoked when the server rejects the credential; it
// must be safe to call from any goroutine and when already empty.
type CredentialSource interface {
	Token() string
	Clear() error
}

// Client performs HTTP requests against the administration API,
// attaching bearer credentials and normalizing error responses.
type Client struct {
	httpClient *http.Client
	config     Config
	creds      CredentialSource
	logger     *slog.Logger

	mu               sync.Mutex
	onSessionExpired func()
}

// NewClient creates an API client. creds may be nil for clients that only
// hit unauthenticated endpoints.
func NewClient(config Config, creds CredentialSource, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		config: config,
		creds:  creds,
		logger: logger.With("component", "adminapi-client"),
	}
}

// OnSessionExpired registers a callback invoked after a 401 response has
// cleared the credential source. At most one callback is held; the session
// controller registers it once at construction.
func (c *Client) OnSessionExpired(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onSessionExpired = fn
}

// requestID generates a short unique identifier for log correlation.
func requestID() string {
	return "req_" + uuid.New().String()[:8]
}

// do performs a single request and returns the raw response body.
// requireAuth attaches the bearer token when one is available. A 401
// response clears the credential source, fires the session-expired
// callback, and returns ErrSessionExpired regardless of endpoint.
func (c *Client) do(ctx context.Context, method, path string, body any, requireAuth bool) ([]byte, error) {
	url := c.config.BaseURL + path
	reqID := requestID()
	logger := c.logger.With("method", method, "url", url, "request_id", reqID)

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if requireAuth && c.creds != nil {
		if token := c.creds.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	logger.Debug("sending request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	logger.Debug("received response", "status", resp.StatusCode)

	// A rejected credential only means the session is gone when the
	// request carried one. A 401 from login is just bad credentials.
	if resp.StatusCode == http.StatusUnauthorized && requireAuth {
		c.expireSession(logger)
		return nil, ErrSessionExpired
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RequestError{
			StatusCode: resp.StatusCode,
			Message:    serverMessage(respBody),
		}
	}

	return respBody, nil
}

// expireSession tears down local credential state after a 401. This is the
// sole mechanism by which a server-side revocation is detected.
func (c *Client) expireSession(logger *slog.Logger) {
	logger.Info("credential rejected by server, clearing session")

	if c.creds != nil {
		if err := c.creds.Clear(); err != nil {
			logger.Error("failed to clear credential store", "error", err)
		}
	}

	c.mu.Lock()
	fn := c.onSessionExpired
	c.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// serverMessage extracts the message field from an error body, falling
// back to a generic message.
func serverMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &payload) == nil && payload.Message != "" {
		return payload.Message
	}
	return genericFailureMessage
}

// envelope is the generic list/object response wrapper.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Status  int             `json:"status"`
}

// unmarshalData extracts and unmarshals the data field of an envelope
// response body.
func unmarshalData[T any](body []byte) (T, error) {
	var result T

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return result, fmt.Errorf("parse response envelope: %w", err)
	}
	if env.Data == nil {
		return result, nil
	}
	if err := json.Unmarshal(env.Data, &result); err != nil {
		return result, fmt.Errorf("unmarshal data: %w", err)
	}
	return result, nil
}
