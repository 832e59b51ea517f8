// Package session owns the client-side authentication state machine: login,
// logout, token renewal and current-user loading. All other packages observe
// the session state but never mutate it.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/singleflight"

	"github.com/nkiryanov/warehub/apperrors"
	"github.com/nkiryanov/warehub/credstore"
	"github.com/nkiryanov/warehub/logger"
	"github.com/nkiryanov/warehub/models"
	"github.com/nkiryanov/warehub/token"
)

var validate = validator.New()

func init() {
	// Report on 'TagName' json tag instead of struct name
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

type Config struct {
	// Base URL of the API
	// Required to be set
	BaseURL string

	// Store that persists the credential pair
	// Required to be set
	Store credstore.Store

	// HTTP client used for auth endpoint calls
	// If not set a default client is used
	HTTPClient *http.Client

	Logger logger.Logger
}

// Manager orchestrates the session lifecycle. It is the sole writer of the
// session state and of the credential store (the gateway writes the store only
// through Manager.Renew).
type Manager struct {
	baseURL string
	store   credstore.Store
	client  *http.Client
	logger  logger.Logger

	mu      sync.RWMutex
	session models.Session

	// Coalesces concurrent renewal attempts into one in-flight request
	renewGroup singleflight.Group
}

func NewManager(cfg Config) (*Manager, error) {
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

	m := &Manager{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		store:   cfg.Store,
		client:  cfg.HTTPClient,
		logger:  cfg.Logger,
		session: models.Session{Status: models.StatusAnonymous},
	}

	// Optimistic initial state: a persisted access token counts as
	// authenticated until a failed renewal or user load corrects it
	if pair, ok := m.store.Get(); ok && pair.Access != "" {
		m.session.Status = models.StatusAuthenticated
	}

	return m, nil
}

// Session returns a copy of the current session state.
func (m *Manager) Session() models.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := m.session
	if s.User != nil {
		user := *s.User
		s.User = &user
	}
	return s
}

// Init performs the startup check. A stored access token that is still live
// keeps the optimistic authenticated state and only the user profile is
// loaded; an expired or missing access token with a refresh token behind it
// triggers a proactive renewal instead of waiting for the first 401.
func (m *Manager) Init(ctx context.Context) {
	pair, ok := m.store.Get()
	if !ok {
		m.set(models.StatusAnonymous, nil, "")
		return
	}

	if pair.Access == "" || token.IsExpired(pair.Access) {
		if err := m.Renew(ctx); err != nil {
			m.logger.Info("Startup renewal failed", "error", err)
		}
		return
	}

	if err := m.LoadUser(ctx); err != nil {
		m.logger.Info("Startup user load failed", "error", err)
	}
}

// Login authenticates with username and password. On success the credential
// pair is persisted and the current user is loaded. On failure the store is
// left untouched and the session moves to the error state with a displayable
// message.
func (m *Manager) Login(ctx context.Context, username string, password string) error {
	type loginRequest struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	creds := loginRequest{Username: username, Password: password}
	if err := validate.Struct(creds); err != nil {
		return fmt.Errorf("invalid login input: %w", err)
	}

	m.set(models.StatusAuthenticating, nil, "")

	var pair models.TokenPair
	if err := m.post(ctx, "/token/", creds, &pair); err != nil {
		msg := apperrors.Message(err, "Invalid username or password")
		m.set(models.StatusError, nil, msg)

		var apiErr *apperrors.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode < 500 {
			return fmt.Errorf("%s: %w", msg, apperrors.ErrInvalidCredentials)
		}
		return fmt.Errorf("login: %w", err)
	}

	m.store.Set(pair.Access, pair.Refresh)

	user, err := m.fetchUser(ctx)
	if err != nil {
		// Tokens are usable even though the profile didn't load
		m.logger.Warn("Failed to load user after login", "error", err)
		m.set(models.StatusAuthenticated, nil, "")
		return nil
	}

	m.set(models.StatusAuthenticated, &user, "")
	m.logger.Debug("Logged in", "username", user.Username, "role", string(user.Role))
	return nil
}

// Logout resets the session to anonymous and clears the credential store.
// Purely local, always succeeds.
func (m *Manager) Logout() {
	m.store.Clear()
	m.set(models.StatusAnonymous, nil, "")
	m.logger.Debug("Logged out")
}

// Renew exchanges the refresh token for a new access token. Concurrent
// callers share one in-flight renewal. On any failure the credential store is
// cleared and the session drops to anonymous, so the gateway stops retrying.
func (m *Manager) Renew(ctx context.Context) error {
	_, err, _ := m.renewGroup.Do("renew", func() (any, error) {
		return nil, m.renew(ctx)
	})
	return err
}

func (m *Manager) renew(ctx context.Context) error {
	pair, _ := m.store.Get()
	if pair.Refresh == "" {
		m.store.Clear()
		m.set(models.StatusAnonymous, nil, "")
		return apperrors.ErrNoRefreshToken
	}

	m.set(models.StatusRefreshing, m.Session().User, "")

	var renewed struct {
		Access string `json:"access"`
	}
	req := map[string]string{"refresh": pair.Refresh}

	if err := m.post(ctx, "/token/refresh/", req, &renewed); err != nil {
		m.store.Clear()
		m.set(models.StatusAnonymous, nil, apperrors.ErrSessionExpired.Error())

		var apiErr *apperrors.APIError
		if errors.As(err, &apiErr) {
			m.logger.Info("Refresh token rejected", "status", apiErr.StatusCode)
			return fmt.Errorf("renew: %w", apperrors.ErrSessionExpired)
		}
		return fmt.Errorf("renew: %w", err)
	}

	// Only the access token changes; the refresh token stays as is
	m.store.Set(renewed.Access, "")

	// Profile freshness is best effort: the renewal succeeded even if the
	// user reload didn't
	user, err := m.fetchUser(ctx)
	if err != nil {
		m.logger.Warn("Failed to reload user after renewal", "error", err)
		m.set(models.StatusAuthenticated, m.Session().User, "")
		return nil
	}

	m.set(models.StatusAuthenticated, &user, "")
	return nil
}

// LoadUser fetches the current user. An unauthorized response means the
// access token went stale, so it delegates to Renew (which reloads the user
// itself). Transport and other errors surface unchanged.
func (m *Manager) LoadUser(ctx context.Context) error {
	if !m.Session().Authenticated() {
		return apperrors.ErrNotAuthenticated
	}

	user, err := m.fetchUser(ctx)
	if err != nil {
		if apperrors.Unauthorized(err) {
			return m.Renew(ctx)
		}
		return fmt.Errorf("load user: %w", err)
	}

	m.set(models.StatusAuthenticated, &user, "")
	return nil
}

func (m *Manager) set(status models.SessionStatus, user *models.User, lastError string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.session = models.Session{Status: status, User: user, LastError: lastError}
}
