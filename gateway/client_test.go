package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkiryanov/warehub/apperrors"
	"github.com/nkiryanov/warehub/credstore"
)

// fakeRenewer counts invocations and runs fn to simulate the session manager
type fakeRenewer struct {
	calls atomic.Int32
	fn    func(ctx context.Context) error
}

func (r *fakeRenewer) Renew(ctx context.Context) error {
	r.calls.Add(1)
	if r.fn != nil {
		return r.fn(ctx)
	}
	return nil
}

func newClient(t *testing.T, baseURL string, store credstore.Store, renewer Renewer) *Client {
	t.Helper()

	c, err := NewClient(Config{BaseURL: baseURL, Store: store, Renewer: renewer})
	require.NoError(t, err, "gateway should be created without errors")
	return c
}

func TestNewClient(t *testing.T) {
	t.Parallel()

	t.Run("requires base url", func(t *testing.T) {
		_, err := NewClient(Config{Store: credstore.NewMemoryStore()})

		require.Error(t, err)
	})

	t.Run("requires store", func(t *testing.T) {
		_, err := NewClient(Config{BaseURL: "http://localhost"})

		require.Error(t, err)
	})
}

func TestDo(t *testing.T) {
	t.Parallel()

	t.Run("attaches bearer and request id", func(t *testing.T) {
		store := credstore.NewMemoryStore()
		store.Set("access-token", "")

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer access-token", r.Header.Get("Authorization"))
			assert.NotEmpty(t, r.Header.Get("X-Request-ID"), "every request should carry a request id")
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"ok": true}`))
		}))
		defer srv.Close()

		var out struct {
			OK bool `json:"ok"`
		}
		err := newClient(t, srv.URL, store, nil).Get(context.Background(), "/warehouses/", &out)

		require.NoError(t, err)
		assert.True(t, out.OK)
	})

	t.Run("no auth header without access token", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.Header.Get("Authorization"))
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		err := newClient(t, srv.URL, credstore.NewMemoryStore(), nil).Get(context.Background(), "/warehouses/", nil)

		require.NoError(t, err)
	})

	t.Run("server that always rejects triggers exactly one renewal and one retry", func(t *testing.T) {
		store := credstore.NewMemoryStore()
		store.Set("stale-token", "refresh-token")

		var requests atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests.Add(1)
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		renewer := &fakeRenewer{fn: func(ctx context.Context) error {
			store.Set("fresh-token", "")
			return nil
		}}

		err := newClient(t, srv.URL, store, renewer).Get(context.Background(), "/warehouses/", nil)

		require.Error(t, err)
		assert.True(t, apperrors.Unauthorized(err), "final error should stay unauthorized")
		assert.Equal(t, int32(1), renewer.calls.Load(), "renewal must run exactly once per logical call")
		assert.Equal(t, int32(2), requests.Load(), "original request plus exactly one retry")
	})

	t.Run("retry succeeds with renewed token", func(t *testing.T) {
		store := credstore.NewMemoryStore()
		store.Set("stale-token", "refresh-token")

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer fresh-token" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"count": 3, "results": []}`))
		}))
		defer srv.Close()

		renewer := &fakeRenewer{fn: func(ctx context.Context) error {
			store.Set("fresh-token", "")
			return nil
		}}

		var out struct {
			Count int `json:"count"`
		}
		err := newClient(t, srv.URL, store, renewer).Get(context.Background(), "/warehouses/", &out)

		require.NoError(t, err, "call should succeed after the renewal")
		assert.Equal(t, 3, out.Count)
		assert.Equal(t, int32(1), renewer.calls.Load())
	})

	t.Run("failed renewal surfaces the original unauthorized error without retry", func(t *testing.T) {
		store := credstore.NewMemoryStore()
		store.Set("stale-token", "refresh-token")

		var requests atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests.Add(1)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail": "Token is invalid"}`))
		}))
		defer srv.Close()

		renewer := &fakeRenewer{fn: func(ctx context.Context) error {
			return errors.New("refresh token rejected")
		}}

		err := newClient(t, srv.URL, store, renewer).Get(context.Background(), "/warehouses/", nil)

		require.Error(t, err)
		var apiErr *apperrors.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
		assert.Equal(t, "Token is invalid", apiErr.Detail)
		assert.Equal(t, int32(1), requests.Load(), "no retry after a failed renewal")
	})

	t.Run("no renewal without refresh token", func(t *testing.T) {
		store := credstore.NewMemoryStore()
		store.Set("access-only", "")

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		renewer := &fakeRenewer{}

		err := newClient(t, srv.URL, store, renewer).Get(context.Background(), "/warehouses/", nil)

		require.Error(t, err)
		assert.True(t, apperrors.Unauthorized(err))
		assert.Equal(t, int32(0), renewer.calls.Load(), "renewal requires a refresh token")
	})

	t.Run("non-auth errors propagate unchanged", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail": "Not found."}`))
		}))
		defer srv.Close()

		renewer := &fakeRenewer{}

		err := newClient(t, srv.URL, credstore.NewMemoryStore(), renewer).Get(context.Background(), "/warehouses/42/", nil)

		var apiErr *apperrors.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
		assert.Equal(t, "Not found.", apiErr.Detail)
		assert.Equal(t, int32(0), renewer.calls.Load())
	})

	t.Run("transport errors are not api errors", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // immediately, so the call fails at the transport level

		err := newClient(t, srv.URL, credstore.NewMemoryStore(), nil).Get(context.Background(), "/warehouses/", nil)

		require.Error(t, err)
		var apiErr *apperrors.APIError
		assert.False(t, errors.As(err, &apiErr), "transport failures must stay distinguishable from api errors")
	})

	t.Run("sends json body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			w.WriteHeader(http.StatusCreated)
		}))
		defer srv.Close()

		body := map[string]string{"city": "Hamburg"}
		err := newClient(t, srv.URL, credstore.NewMemoryStore(), nil).Post(context.Background(), "/warehouses/", body, nil)

		require.NoError(t, err)
	})
}
