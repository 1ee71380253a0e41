// Package jsonrpc provides a JSON-RPC 2.0 client over HTTP, suitable for
// node RPC interfaces such as bitcoind's.
package jsonrpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// ErrProviderReturnedError indicates that the remote server answered with a
// JSON-RPC error object. Every *ProviderError matches it via errors.Is.
var ErrProviderReturnedError = errors.New("provider error")

// ProviderError is a JSON-RPC error object returned by the server.
type ProviderError struct {
	Code    int    `json:"code"`    // Error code defined by the JSON-RPC spec or the server
	Message string `json:"message"` // Human-readable error message
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: [%d] - %s", ErrProviderReturnedError, e.Code, e.Message)
}

// Is reports whether target is ErrProviderReturnedError.
func (e *ProviderError) Is(target error) bool {
	return target == ErrProviderReturnedError
}

// response represents a JSON-RPC response envelope.
type response struct {
	JsonRPC string          `json:"jsonrpc"` // Protocol version, "2.0" (empty for 1.0 servers)
	Error   *ProviderError  `json:"error"`   // Error object, nil on success
	Result  json.RawMessage `json:"result"`  // Raw result payload
}

// Err returns the response error object as an error, or nil.
func (r response) Err() error {
	if r.Error == nil {
		return nil
	}

	return r.Error
}

// Client sends JSON-RPC requests.
type Client interface {
	// Fetch calls method with params and returns the raw result. It returns a
	// *ProviderError when the server answers with an error object.
	Fetch(ctx context.Context, method string, params ...any) (json.RawMessage, error)
}

// credentials holds HTTP basic auth credentials.
type credentials struct {
	username string
	password string
}

// client is the default implementation of the Client interface.
type client struct {
	providerEndpoint string       // URL of the remote JSON-RPC server
	httpClient       *http.Client // HTTP client used to perform requests
	auth             *credentials // optional basic auth, nil when unset
}

// Compile-time assertion that client implements the Client interface.
var _ Client = (*client)(nil)

// Fetch implements the Client interface. Request ids are random UUIDs.
//
// Servers that report application errors with a non-2xx status are handled:
// the body is decoded first and its error object takes precedence over the
// HTTP status.
func (c *client) Fetch(ctx context.Context, method string, params ...any) (json.RawMessage, error) {
	if params == nil {
		params = []any{}
	}

	body, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      uuid.NewString(),
		"method":  method,
		"params":  params,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.providerEndpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if c.auth != nil {
		req.SetBasicAuth(c.auth.username, c.auth.password)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	var data response
	if err := json.NewDecoder(res.Body).Decode(&data); err != nil {
		if res.StatusCode >= http.StatusBadRequest {
			return nil, fmt.Errorf("unexpected HTTP status %d: %w", res.StatusCode, err)
		}
		return nil, err
	}

	if err := data.Err(); err != nil {
		return nil, err
	}

	return data.Result, nil
}

// Option customizes the client built by NewClient.
type Option func(*client)

// WithBasicAuth sends HTTP basic auth credentials with every request.
func WithBasicAuth(username, password string) Option {
	return func(c *client) {
		c.auth = &credentials{username: username, password: password}
	}
}

// NewClient returns a Client that sends requests to providerEndpoint using
// httpClient.
func NewClient(httpClient *http.Client, providerEndpoint string, opts ...Option) *client {
	c := &client{
		providerEndpoint: providerEndpoint,
		httpClient:       httpClient,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}
