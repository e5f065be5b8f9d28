package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/bobby-s-dev/weather-lookup/internal/models"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const DefaultOpenWeatherURL = "https://api.openweathermap.org/data/2.5"

var validate = validator.New()

type OpenWeatherClient struct {
	*BaseClient
	baseURL string
}

// OpenWeatherCurrentResponse mirrors the fields of the current weather
// payload we render. Pointers let validation tell a missing field from a
// zero value.
type OpenWeatherCurrentResponse struct {
	Name *string `json:"name" validate:"required"`
	Sys  *struct {
		Country *string `json:"country" validate:"required"`
		Sunrise *int64  `json:"sunrise" validate:"required"`
		Sunset  *int64  `json:"sunset" validate:"required"`
	} `json:"sys" validate:"required"`
	Main *struct {
		Temp      *float64 `json:"temp" validate:"required"`
		FeelsLike *float64 `json:"feels_like" validate:"required"`
		TempMin   *float64 `json:"temp_min" validate:"required"`
		TempMax   *float64 `json:"temp_max" validate:"required"`
		Humidity  *int     `json:"humidity" validate:"required,min=0,max=100"`
	} `json:"main" validate:"required"`
	Weather []struct {
		Main        *string `json:"main" validate:"required"`
		Description *string `json:"description" validate:"required"`
		Icon        string  `json:"icon"`
	} `json:"weather" validate:"required,min=1,dive"`
	Wind *struct {
		Speed *float64 `json:"speed" validate:"required"`
	} `json:"wind" validate:"required"`
	Visibility *int `json:"visibility" validate:"required"`
}

func NewOpenWeatherClient(baseURL string, config ClientConfig, logger *zap.Logger) *OpenWeatherClient {
	if baseURL == "" {
		baseURL = DefaultOpenWeatherURL
	}
	baseClient := NewBaseClient("openweather", config, logger)
	return &OpenWeatherClient{
		BaseClient: baseClient,
		baseURL:    baseURL,
	}
}

// RequestURL builds the name form (q=) or the coordinate form (lat=&lon=),
// always metric, with the key as appid.
func (c *OpenWeatherClient) RequestURL(query models.Query, apiKey string) string {
	values := url.Values{}
	if query.Coordinates {
		values.Set("lat", query.Lat)
		values.Set("lon", query.Lon)
	} else {
		values.Set("q", query.Name)
	}
	values.Set("appid", apiKey)
	values.Set("units", "metric")

	return fmt.Sprintf("%s/weather?%s", c.baseURL, values.Encode())
}

// GetCurrentWeather returns a snapshot or a *models.FetchError.
func (c *OpenWeatherClient) GetCurrentWeather(ctx context.Context, query models.Query, apiKey string) (*models.WeatherSnapshot, error) {
	data, err := c.Get(ctx, c.RequestURL(query, apiKey))
	if err != nil {
		return nil, classify(err)
	}

	snapshot, err := ParseCurrentWeather(data)
	if err != nil {
		return nil, models.NewFetchError(models.UnknownFetchFailure, err)
	}

	return snapshot, nil
}

// ParseCurrentWeather decodes and validates a current weather body.
func ParseCurrentWeather(data []byte) (*models.WeatherSnapshot, error) {
	var response OpenWeatherCurrentResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if err := validate.Struct(response); err != nil {
		return nil, fmt.Errorf("unexpected response shape: %w", err)
	}

	condition := response.Weather[0]

	return &models.WeatherSnapshot{
		LocationName:             *response.Name,
		CountryCode:              *response.Sys.Country,
		SunriseEpochSeconds:      *response.Sys.Sunrise,
		SunsetEpochSeconds:       *response.Sys.Sunset,
		TemperatureC:             *response.Main.Temp,
		FeelsLikeC:               *response.Main.FeelsLike,
		MinTempC:                 *response.Main.TempMin,
		MaxTempC:                 *response.Main.TempMax,
		HumidityPercent:          *response.Main.Humidity,
		ConditionMain:            *condition.Main,
		ConditionDescription:     *condition.Description,
		WindSpeedMetersPerSecond: *response.Wind.Speed,
		VisibilityMeters:         *response.Visibility,
	}, nil
}

func classify(err error) *models.FetchError {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.StatusCode {
		case http.StatusUnauthorized:
			return models.NewFetchError(models.InvalidCredential, err)
		case http.StatusNotFound:
			return models.NewFetchError(models.LocationNotFound, err)
		}
	}
	return models.NewFetchError(models.UnknownFetchFailure, err)
}
