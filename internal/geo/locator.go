// Package geo supplies the optional "where am I" input for the first fetch.
package geo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bobby-s-dev/weather-lookup/internal/models"
	"go.uber.org/zap"
)

const CurrentLocationLabel = "Current Location"

var ErrUnavailable = errors.New("geolocation unavailable")

type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Locator interface {
	Locate(ctx context.Context) (Coordinate, error)
}

type LocatorFunc func(ctx context.Context) (Coordinate, error)

func (f LocatorFunc) Locate(ctx context.Context) (Coordinate, error) {
	return f(ctx)
}

// StaticLocator reports a fixed position, typically from configuration.
type StaticLocator struct {
	coord Coordinate
	ok    bool
}

// NewStaticLocator parses latitude and longitude strings. Blank input yields
// a locator that always reports ErrUnavailable.
func NewStaticLocator(lat, lon string) (*StaticLocator, error) {
	lat, lon = strings.TrimSpace(lat), strings.TrimSpace(lon)
	if lat == "" && lon == "" {
		return &StaticLocator{}, nil
	}

	coord, err := ParseCoordinate(lat, lon)
	if err != nil {
		return nil, err
	}
	return &StaticLocator{coord: coord, ok: true}, nil
}

func (s *StaticLocator) Locate(ctx context.Context) (Coordinate, error) {
	if !s.ok {
		return Coordinate{}, ErrUnavailable
	}
	return s.coord, nil
}

func ParseCoordinate(lat, lon string) (Coordinate, error) {
	latitude, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("invalid latitude %q: %w", lat, err)
	}
	longitude, err := strconv.ParseFloat(lon, 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("invalid longitude %q: %w", lon, err)
	}
	return Coordinate{Latitude: latitude, Longitude: longitude}, nil
}

// StartupQuery returns the query and display label for the first fetch:
// the located position if any, otherwise the fallback place name.
func StartupQuery(ctx context.Context, locator Locator, fallback string, logger *zap.Logger) (query, label string) {
	if locator != nil {
		coord, err := locator.Locate(ctx)
		if err == nil {
			return models.CoordinateQuery(coord.Latitude, coord.Longitude), CurrentLocationLabel
		}
		logger.Info("Geolocation unavailable, using default location",
			zap.String("default_location", fallback),
			zap.Error(err))
	}
	return fallback, fallback
}
