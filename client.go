// Package warehub is a client for the warehouse admin API. It bundles
// credential storage, session lifecycle, a bearer-authenticated gateway with a
// single renew-and-retry cycle, role guarding and typed resource services.
// The package is a library: the hosting UI owns routing and rendering.
package warehub

import (
	"context"
	"fmt"
	"net/http"

	"github.com/nkiryanov/warehub/config"
	"github.com/nkiryanov/warehub/credstore"
	"github.com/nkiryanov/warehub/gateway"
	"github.com/nkiryanov/warehub/logger"
	"github.com/nkiryanov/warehub/resources"
	"github.com/nkiryanov/warehub/session"
)

type Client struct {
	Session       *session.Manager
	Warehouses    *resources.WarehouseService
	Announcements *resources.AnnouncementService
	Users         *resources.UserService

	logger logger.Logger
}

// New assembles a client from config. Credentials persist to the configured
// file, or stay in memory when no file is set.
func New(c *config.Config) (*Client, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	log, err := logger.New(c.Environment, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("error while initializing logger: %w", err)
	}

	var store credstore.Store
	if c.CredentialsFile != "" {
		store = credstore.NewFileStore(c.CredentialsFile, log)
	} else {
		store = credstore.NewMemoryStore()
	}

	httpClient := &http.Client{Timeout: c.Timeout}

	manager, err := session.NewManager(session.Config{
		BaseURL:    c.BaseURL,
		Store:      store,
		HTTPClient: httpClient,
		Logger:     log,
	})
	if err != nil {
		return nil, fmt.Errorf("error while creating session manager: %w", err)
	}

	gw, err := gateway.NewClient(gateway.Config{
		BaseURL:    c.BaseURL,
		Store:      store,
		Renewer:    manager,
		HTTPClient: httpClient,
		Logger:     log,
	})
	if err != nil {
		return nil, fmt.Errorf("error while creating gateway: %w", err)
	}

	return &Client{
		Session:       manager,
		Warehouses:    resources.NewWarehouses(gw),
		Announcements: resources.NewAnnouncements(gw),
		Users:         resources.NewUsers(gw),
		logger:        log,
	}, nil
}

// Init runs the startup session check: proactive renewal for an expired
// stored token, user load for a live one. Call once before issuing calls.
func (c *Client) Init(ctx context.Context) {
	c.Session.Init(ctx)
	c.logger.Debug("Client initialized", "status", string(c.Session.Session().Status))
}
