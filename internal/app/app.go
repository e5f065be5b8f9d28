// Package app wires configuration into a ready-to-use weather session.
package app

import (
	"context"
	"fmt"

	"github.com/bobby-s-dev/weather-lookup/internal/config"
	"github.com/bobby-s-dev/weather-lookup/internal/credential"
	"github.com/bobby-s-dev/weather-lookup/internal/geo"
	"github.com/bobby-s-dev/weather-lookup/internal/services"
	"github.com/bobby-s-dev/weather-lookup/internal/storage"
	"github.com/bobby-s-dev/weather-lookup/pkg/client"
	"go.uber.org/zap"
)

type App struct {
	Config      *config.Config
	Store       *storage.SQLiteStore
	Credentials *credential.Store
	Client      *client.OpenWeatherClient
	Feed        *services.Feed
	Session     *services.Session
	Locator     geo.Locator
	Logger      *zap.Logger
}

func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	store, err := storage.NewSQLite(cfg.Store.Path, logger)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	creds, err := credential.New(ctx, store, cfg.WeatherAPI.DefaultAPIKey, logger)
	if err != nil {
		store.Close()
		return nil, err
	}

	locator, err := geo.NewStaticLocator(cfg.Location.Latitude, cfg.Location.Longitude)
	if err != nil {
		logger.Warn("Ignoring configured position", zap.Error(err))
		locator, _ = geo.NewStaticLocator("", "")
	}

	weatherClient := client.NewOpenWeatherClient(cfg.WeatherAPI.BaseURL, client.ClientConfig{
		Timeout:        cfg.WeatherAPI.Timeout,
		Threshold:      cfg.CircuitBreaker.Threshold,
		BreakerTimeout: cfg.CircuitBreaker.Timeout,
	}, logger)

	feed := services.NewFeed(0)
	notifier := services.MultiNotifier(feed, services.NewLogNotifier(logger))

	return &App{
		Config:      cfg,
		Store:       store,
		Credentials: creds,
		Client:      weatherClient,
		Feed:        feed,
		Session:     services.NewSession(weatherClient, creds, notifier, logger),
		Locator:     locator,
		Logger:      logger,
	}, nil
}

// StartupFetch runs the first fetch: configured position if any, else the
// default location.
func (a *App) StartupFetch(ctx context.Context) string {
	query, label := geo.StartupQuery(ctx, a.Locator, a.Config.Location.Default, a.Logger)
	a.Session.FetchWeather(ctx, query)
	return label
}

func (a *App) Close() error {
	return a.Store.Close()
}
