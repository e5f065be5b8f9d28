package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/bobby-s-dev/weather-lookup/internal/config"
	"github.com/bobby-s-dev/weather-lookup/internal/geo"
	"github.com/bobby-s-dev/weather-lookup/internal/models"
	"go.uber.org/zap/zaptest"
)

const providerBody = `{"weather":[{"main":"Clear","description":"clear sky","icon":"01d"}],
"main":{"temp":18.2,"feels_like":17.6,"temp_min":16.9,"temp_max":19.4,"humidity":52},
"visibility":10000,"wind":{"speed":3.1},"sys":{"country":"GB","sunrise":1697696597,"sunset":1697734193},"name":"Greenwich"}`

type provider struct {
	mu      sync.Mutex
	queries []string
}

func (p *provider) start(t *testing.T) string {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p.mu.Lock()
		p.queries = append(p.queries, r.URL.RawQuery)
		p.mu.Unlock()
		w.Write([]byte(providerBody))
	}))
	t.Cleanup(server.Close)
	return server.URL
}

func testConfig(t *testing.T, baseURL string) *config.Config {
	cfg := &config.Config{}
	cfg.WeatherAPI.BaseURL = baseURL
	cfg.Store.Path = filepath.Join(t.TempDir(), "weather.db")
	cfg.Location.Default = "London"
	cfg.CircuitBreaker.Timeout = time.Minute
	return cfg
}

func TestNew_MissingCredential(t *testing.T) {
	p := &provider{}
	cfg := testConfig(t, p.start(t))

	a, err := New(context.Background(), cfg, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer a.Close()

	label := a.StartupFetch(context.Background())
	if label != "London" {
		t.Errorf("Expected fallback label London, got %q", label)
	}

	status := a.Session.Status()
	if status.Phase != models.PhaseFailed || status.Err.Kind != models.MissingCredential {
		t.Errorf("Expected failed(MissingCredential), got %+v", status)
	}
	if len(p.queries) != 0 {
		t.Errorf("Expected no provider calls, got %v", p.queries)
	}
	if got := a.Feed.Recent(); len(got) != 1 {
		t.Errorf("Expected one notification, got %d", len(got))
	}
}

func TestStartupFetch_ConfiguredPosition(t *testing.T) {
	p := &provider{}
	cfg := testConfig(t, p.start(t))
	cfg.WeatherAPI.DefaultAPIKey = "test-key"
	cfg.Location.Latitude = "51.48"
	cfg.Location.Longitude = "0"

	a, err := New(context.Background(), cfg, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer a.Close()

	label := a.StartupFetch(context.Background())
	if label != geo.CurrentLocationLabel {
		t.Errorf("Expected %q, got %q", geo.CurrentLocationLabel, label)
	}
	if status := a.Session.Status(); status.Phase != models.PhaseReady {
		t.Fatalf("Expected ready, got %+v", status)
	}
	if len(p.queries) != 1 || p.queries[0] != "appid=test-key&lat=51.48&lon=0&units=metric" {
		t.Errorf("Unexpected provider queries %v", p.queries)
	}
}

func TestNew_SavedCredentialSurvivesRestart(t *testing.T) {
	p := &provider{}
	cfg := testConfig(t, p.start(t))
	cfg.WeatherAPI.DefaultAPIKey = "env-key"

	first, err := New(context.Background(), cfg, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := first.Credentials.Save(context.Background(), "saved-key"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	first.Close()

	second, err := New(context.Background(), cfg, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer second.Close()

	if got := second.Credentials.Get(); got != "saved-key" {
		t.Errorf("Expected saved-key, got %q", got)
	}
}

func TestNew_BadPositionFallsBack(t *testing.T) {
	p := &provider{}
	cfg := testConfig(t, p.start(t))
	cfg.WeatherAPI.DefaultAPIKey = "test-key"
	cfg.Location.Latitude = "north"
	cfg.Location.Longitude = "0"

	a, err := New(context.Background(), cfg, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer a.Close()

	if label := a.StartupFetch(context.Background()); label != "London" {
		t.Errorf("Expected London, got %q", label)
	}
	if len(p.queries) != 1 || p.queries[0] != "appid=test-key&q=London&units=metric" {
		t.Errorf("Unexpected provider queries %v", p.queries)
	}
}
