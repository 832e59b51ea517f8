// Package gateway wraps outbound API calls: it attaches the bearer access
// token and performs exactly one renew-and-retry cycle when a call comes back
// unauthorized. Screens never implement their own refresh logic.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/nkiryanov/warehub/apperrors"
	"github.com/nkiryanov/warehub/credstore"
	"github.com/nkiryanov/warehub/logger"
)

// Renewer refreshes the access credential. Implemented by session.Manager,
// which also performs the logout when renewal fails.
type Renewer interface {
	Renew(ctx context.Context) error
}

type Config struct {
	// Base URL of the API
	// Required to be set
	BaseURL string

	// Store the current access token is read from
	// Required to be set
	Store credstore.Store

	// Renewer invoked on unauthorized responses
	// If nil, 401 responses surface without a retry
	Renewer Renewer

	// HTTP client for all calls
	// If not set a default client is used
	HTTPClient *http.Client

	Logger logger.Logger
}

type Client struct {
	baseURL string
	store   credstore.Store
	renewer Renewer
	client  *http.Client
	logger  logger.Logger
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("base URL must not be empty")
	}
	if cfg.Store == nil {
		return nil, errors.New("credential store must not be nil")
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{}
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.NewNoOpLogger()
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		store:   cfg.Store,
		renewer: cfg.Renewer,
		client:  cfg.HTTPClient,
		logger:  cfg.Logger,
	}, nil
}

// Do issues one logical API call. Body is JSON encoded when non-nil; the
// response body is decoded into out when non-nil. On a 401 with a refresh
// token available it renews once and retries once; a second 401 (or a failed
// renewal) surfaces as the original unauthorized error.
func (c *Client) Do(ctx context.Context, method string, path string, body any, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
	}

	resp, err := c.send(ctx, method, path, payload)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusUnauthorized || !c.canRenew() {
		return handleResponse(resp, out)
	}

	// Read the original failure before the retry so it can be propagated
	// if the renewal doesn't help
	unauthorized := handleResponse(resp, nil)

	if err := c.renewer.Renew(ctx); err != nil {
		c.logger.Info("Renewal failed, surfacing original unauthorized error", "error", err)
		return unauthorized
	}

	c.logger.Debug("Retrying request with renewed access token", "method", method, "path", path)

	resp, err = c.send(ctx, method, path, payload)
	if err != nil {
		return err
	}
	return handleResponse(resp, out)
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body any, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body any, out any) error {
	return c.Do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) Patch(ctx context.Context, path string, body any, out any) error {
	return c.Do(ctx, http.MethodPatch, path, body, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil)
}

// send issues a single HTTP attempt. The access token is re-read from the
// store on every attempt so a retry picks up the renewed one.
func (c *Client) send(ctx context.Context, method string, path string, payload []byte) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("X-Request-ID", uuid.NewString())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if pair, ok := c.store.Get(); ok && pair.Access != "" {
		req.Header.Set("Authorization", "Bearer "+pair.Access)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}

func (c *Client) canRenew() bool {
	if c.renewer == nil {
		return false
	}
	pair, _ := c.store.Get()
	return pair.Refresh != ""
}

// handleResponse consumes and closes the response body. Non-2xx responses
// become APIError with the server provided 'detail' message.
func handleResponse(resp *http.Response, out any) error {
	defer resp.Body.Close() // nolint:errcheck

	if resp.StatusCode >= 400 {
		var payload struct {
			Detail string `json:"detail"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&payload)

		return &apperrors.APIError{StatusCode: resp.StatusCode, Detail: payload.Detail}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
