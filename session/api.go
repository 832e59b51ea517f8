package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/nkiryanov/warehub/apperrors"
	"github.com/nkiryanov/warehub/models"
)

// Calls to the auth endpoints go straight through the manager's own HTTP
// client: routing them through the gateway would recurse into renewal.

func (m *Manager) post(ctx context.Context, path string, body any, out any) error {
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(body); err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+path, buf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close() // nolint:errcheck

	return decodeResponse(resp, out)
}

func (m *Manager) fetchUser(ctx context.Context) (models.User, error) {
	var user models.User

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.baseURL+"/users/me/", nil)
	if err != nil {
		return user, fmt.Errorf("failed to create request: %w", err)
	}
	if pair, ok := m.store.Get(); ok && pair.Access != "" {
		req.Header.Set("Authorization", "Bearer "+pair.Access)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return user, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close() // nolint:errcheck

	err = decodeResponse(resp, &user)
	return user, err
}

// decodeResponse turns non-2xx responses into APIError with the server
// provided 'detail' message and decodes successful bodies into out.
func decodeResponse(resp *http.Response, out any) error {
	if resp.StatusCode >= 400 {
		return &apperrors.APIError{
			StatusCode: resp.StatusCode,
			Detail:     readDetail(resp.Body),
		}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func readDetail(body io.Reader) string {
	var payload struct {
		Detail string `json:"detail"`
	}

	// Bodies without a detail field are fine, the status code carries enough
	_ = json.NewDecoder(body).Decode(&payload)
	return payload.Detail
}
