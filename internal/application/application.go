package application

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/eugenenazirov/boxfit/internal/api"
	"github.com/eugenenazirov/boxfit/internal/catalog"
	"github.com/eugenenazirov/boxfit/internal/config"
	"github.com/eugenenazirov/boxfit/internal/matcher"
)

// App encapsulates the application dependencies and HTTP server.
type App struct {
	store   catalog.Store
	matcher matcher.Matcher
	handler *api.Handler
	router  http.Handler
	logger  *zap.Logger
	server  *http.Server
}

// New loads the catalog named in cfg and wires the HTTP server around it.
func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	boxes, err := catalog.Load(cfg.BoxFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	logger.Info("catalog loaded", zap.String("path", cfg.BoxFile), zap.Int("boxes", len(boxes)))

	return NewWithBoxes(cfg, boxes, logger)
}

// NewWithBoxes initializes the application around an already loaded catalog.
func NewWithBoxes(cfg config.Config, boxes []catalog.Box, logger *zap.Logger) (*App, error) {
	store, err := catalog.NewMemoryStore(boxes)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize catalog store: %w", err)
	}

	m := matcher.New()
	handler := api.NewHandler(m, store)
	apiRouter := api.NewRouter(handler, logger,
		api.WithLogging(cfg.EnableRequestLogging),
		api.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
	)

	return &App{
		store:   store,
		matcher: m,
		handler: handler,
		router:  apiRouter,
		logger:  logger,
		server:  NewServer(cfg, apiRouter),
	}, nil
}

// NewServer creates and configures an HTTP server from the provided configuration.
func NewServer(cfg config.Config, handler http.Handler) *http.Server {
	addr := cfg.Port
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// Start starts the HTTP server in a goroutine and logs the listening address.
func (a *App) Start() error {
	go func() {
		a.logger.Info("server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatal("server error", zap.Error(err))
		}
	}()
	return nil
}

// Server returns the HTTP server instance for shutdown handling.
func (a *App) Server() *http.Server {
	return a.server
}

// Handler returns the root HTTP handler.
func (a *App) Handler() http.Handler {
	return a.router
}
