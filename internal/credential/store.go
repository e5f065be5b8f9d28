// Package credential holds the OpenWeatherMap API key for the process.
package credential

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/bobby-s-dev/weather-lookup/internal/storage"
	"go.uber.org/zap"
)

// StorageKey is the fixed name the key is persisted under.
const StorageKey = "weather-api-key"

var ErrEmptyCredential = errors.New("credential must not be blank")

type Store struct {
	mu     sync.RWMutex
	value  string
	kv     storage.KV
	logger *zap.Logger
}

// New seeds the store from durable storage, falling back to defaultValue
// (injected from configuration) when nothing was saved yet. kv may be nil
// for a memory-only store.
func New(ctx context.Context, kv storage.KV, defaultValue string, logger *zap.Logger) (*Store, error) {
	s := &Store{
		value:  defaultValue,
		kv:     kv,
		logger: logger,
	}

	if kv == nil {
		return s, nil
	}

	saved, err := kv.Get(ctx, StorageKey)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		logger.Debug("No saved credential, using configured default",
			zap.Bool("default_set", defaultValue != ""))
	case err != nil:
		return nil, fmt.Errorf("loading credential: %w", err)
	default:
		s.value = saved
		logger.Debug("Loaded saved credential")
	}

	return s, nil
}

func (s *Store) Get() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set replaces the in-memory value only.
func (s *Store) Set(value string) {
	s.mu.Lock()
	s.value = value
	s.mu.Unlock()
}

// Save replaces the in-memory value and persists it.
func (s *Store) Save(ctx context.Context, value string) error {
	if strings.TrimSpace(value) == "" {
		return ErrEmptyCredential
	}

	s.Set(value)

	if s.kv == nil {
		return nil
	}
	if err := s.kv.Put(ctx, StorageKey, value); err != nil {
		return fmt.Errorf("saving credential: %w", err)
	}

	s.logger.Info("Credential saved")
	return nil
}

func (s *Store) Masked() string {
	return Mask(s.Get())
}

// Mask keeps the last four characters visible.
func Mask(value string) string {
	if value == "" {
		return ""
	}
	if len(value) <= 4 {
		return strings.Repeat("*", len(value))
	}
	return strings.Repeat("*", len(value)-4) + value[len(value)-4:]
}
