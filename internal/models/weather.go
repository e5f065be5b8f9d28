package models

import (
	"strconv"
	"strings"
)

// WeatherSnapshot is built only from a fully validated provider response.
type WeatherSnapshot struct {
	LocationName             string  `json:"location_name"`
	CountryCode              string  `json:"country_code"`
	SunriseEpochSeconds      int64   `json:"sunrise"`
	SunsetEpochSeconds       int64   `json:"sunset"`
	TemperatureC             float64 `json:"temperature_c"`
	FeelsLikeC               float64 `json:"feels_like_c"`
	MinTempC                 float64 `json:"min_temp_c"`
	MaxTempC                 float64 `json:"max_temp_c"`
	HumidityPercent          int     `json:"humidity_percent"`
	ConditionMain            string  `json:"condition_main"`
	ConditionDescription     string  `json:"condition_description"`
	WindSpeedMetersPerSecond float64 `json:"wind_speed_mps"`
	VisibilityMeters         int     `json:"visibility_m"`
}

type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseReady   Phase = "ready"
	PhaseFailed  Phase = "failed"
)

// Status is the single shared result slot of a session. Snapshot is set only
// when Phase is ready, Err only when Phase is failed.
type Status struct {
	Phase    Phase            `json:"phase"`
	Snapshot *WeatherSnapshot `json:"snapshot,omitempty"`
	Err      *FetchError      `json:"error,omitempty"`
}

func IdleStatus() Status {
	return Status{Phase: PhaseIdle}
}

func LoadingStatus() Status {
	return Status{Phase: PhaseLoading}
}

func ReadyStatus(snapshot *WeatherSnapshot) Status {
	return Status{Phase: PhaseReady, Snapshot: snapshot}
}

func FailedStatus(err *FetchError) Status {
	return Status{Phase: PhaseFailed, Err: err}
}

// Query is a parsed location: either a place name or a "<lat>,<lon>" pair.
type Query struct {
	Raw         string `json:"raw"`
	Name        string `json:"name,omitempty"`
	Lat         string `json:"lat,omitempty"`
	Lon         string `json:"lon,omitempty"`
	Coordinates bool   `json:"coordinates"`
}

// ParseQuery routes on the presence of a comma. Coordinate parts are not
// range checked; the provider rejects malformed ones.
func ParseQuery(raw string) Query {
	q := Query{Raw: raw}

	if lat, lon, found := strings.Cut(raw, ","); found {
		q.Coordinates = true
		q.Lat = strings.TrimSpace(lat)
		// "a,b,c" keeps only b, same as splitting and taking two parts
		lon, _, _ = strings.Cut(lon, ",")
		q.Lon = strings.TrimSpace(lon)
		return q
	}

	q.Name = strings.TrimSpace(raw)
	return q
}

func CoordinateQuery(lat, lon float64) string {
	return strings.Join([]string{formatCoordinate(lat), formatCoordinate(lon)}, ",")
}

func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
