// Package internal provides application initialization and the command
// handlers behind the zz verbs.
package internal

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/starford/zugzug/internal/apperr"
	"github.com/starford/zugzug/internal/registry"
	"github.com/starford/zugzug/internal/storage"
)

// App runs one zz command against an opened registry.
type App struct {
	store  *registry.Store
	logger *slog.Logger
	out    io.Writer
	errOut io.Writer
	now    func() time.Time
}

// New builds the logger and opens the registry described by the options.
func New(opts ...Option) (*App, error) {
	app := &application{
		out:    os.Stdout,
		errOut: os.Stderr,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return nil, errors.New("config is required")
	}

	cfg := app.config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger := newLogger(app.errOut, cfg.App)
	slog.SetDefault(logger)

	location, err := cfg.Store.Location()
	if err != nil {
		return nil, err
	}

	logger.Debug("Configuration loaded",
		slog.String("store_path", location),
		slog.String("log_level", cfg.App.LogLevel.String()))

	file, err := storage.NewFile(location)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperr.ErrStoreUnavailable, err)
	}

	store, err := registry.Open(file, logger)
	if err != nil {
		return nil, err
	}

	return &App{
		store:  store,
		logger: logger,
		out:    app.out,
		errOut: app.errOut,
		now:    app.now,
	}, nil
}

// Store returns the opened registry.
func (a *App) Store() *registry.Store {
	return a.store
}

func newLogger(w io.Writer, cfg ApplicationConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.LogFormat == LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
