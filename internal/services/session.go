package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bobby-s-dev/weather-lookup/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type WeatherClient interface {
	GetCurrentWeather(ctx context.Context, query models.Query, apiKey string) (*models.WeatherSnapshot, error)
}

type CredentialSource interface {
	Get() string
}

// Session owns the shared status slot that renderers read. Overlapping
// fetches are allowed; whichever resolves last wins.
type Session struct {
	client   WeatherClient
	creds    CredentialSource
	notifier Notifier
	logger   *zap.Logger

	mu            sync.RWMutex
	status        models.Status
	lastQuery     string
	lastFetchTime time.Time
	successCount  int
	failureCount  int
}

func NewSession(client WeatherClient, creds CredentialSource, notifier Notifier, logger *zap.Logger) *Session {
	if notifier == nil {
		notifier = NewLogNotifier(logger)
	}
	return &Session{
		client:   client,
		creds:    creds,
		notifier: notifier,
		logger:   logger,
		status:   models.IdleStatus(),
	}
}

// FetchWeather runs one fetch for a place name or "<lat>,<lon>" and returns
// the status it produced. It blocks until the provider answers.
func (s *Session) FetchWeather(ctx context.Context, query string) models.Status {
	log := s.logger.With(
		zap.String("fetch_id", uuid.NewString()),
		zap.String("query", query))

	s.mu.Lock()
	s.lastQuery = query
	s.lastFetchTime = time.Now()
	s.mu.Unlock()

	apiKey := s.creds.Get()
	if apiKey == "" {
		return s.fail(log, models.NewFetchError(models.MissingCredential, nil))
	}

	s.publish(models.LoadingStatus())

	parsed := models.ParseQuery(query)
	log.Debug("Fetching current weather", zap.Bool("coordinates", parsed.Coordinates))

	start := time.Now()
	snapshot, err := s.client.GetCurrentWeather(ctx, parsed, apiKey)
	if err != nil {
		return s.fail(log, models.AsFetchError(err))
	}

	status := models.ReadyStatus(snapshot)
	s.mu.Lock()
	s.status = status
	s.successCount++
	s.mu.Unlock()

	log.Info("Weather fetch completed",
		zap.String("location", snapshot.LocationName),
		zap.Duration("duration", time.Since(start)))

	s.notifier.Notify(Notification{
		Level:   LevelSuccess,
		Title:   "Weather Updated",
		Message: fmt.Sprintf("Weather data for %s has been loaded successfully.", snapshot.LocationName),
		Time:    time.Now(),
	})

	return status
}

// Refresh repeats the last query. With no query yet it leaves the status
// untouched.
func (s *Session) Refresh(ctx context.Context) models.Status {
	query, ok := s.LastQuery()
	if !ok {
		return s.Status()
	}
	return s.FetchWeather(ctx, query)
}

func (s *Session) fail(log *zap.Logger, fetchErr *models.FetchError) models.Status {
	status := models.FailedStatus(fetchErr)

	s.mu.Lock()
	s.status = status
	s.failureCount++
	s.mu.Unlock()

	log.Warn("Weather fetch failed",
		zap.String("kind", fetchErr.Kind.String()),
		zap.Error(fetchErr))

	s.notifier.Notify(Notification{
		Level:   LevelError,
		Title:   "Error",
		Message: fetchErr.Message,
		Time:    time.Now(),
	})

	return status
}

func (s *Session) publish(status models.Status) {
	s.mu.Lock()
	s.status = status
	s.mu.Unlock()
}

func (s *Session) Status() models.Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

func (s *Session) Loading() bool {
	return s.Status().Phase == models.PhaseLoading
}

func (s *Session) LastQuery() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastQuery, !s.lastFetchTime.IsZero()
}

func (s *Session) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"phase":           s.status.Phase,
		"last_fetch_time": s.lastFetchTime,
		"success_count":   s.successCount,
		"failure_count":   s.failureCount,
	}
}
