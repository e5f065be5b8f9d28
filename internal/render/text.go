// Package render turns a session status into something a person can read.
package render

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"
	"unicode"

	"github.com/bobby-s-dev/weather-lookup/internal/models"
)

// View is the display form of a snapshot.
type View struct {
	Heading     string `json:"heading"`
	Temperature string `json:"temperature"`
	Description string `json:"description"`
	FeelsLike   string `json:"feels_like"`
	MinMax      string `json:"min_max"`
	Humidity    string `json:"humidity"`
	Wind        string `json:"wind"`
	Visibility  string `json:"visibility"`
	Sunrise     string `json:"sunrise"`
	Sunset      string `json:"sunset"`
	Theme       Theme  `json:"theme"`
}

func NewView(s *models.WeatherSnapshot, loc *time.Location) View {
	if loc == nil {
		loc = time.Local
	}
	return View{
		Heading:     fmt.Sprintf("%s, %s", s.LocationName, s.CountryCode),
		Temperature: fmt.Sprintf("%d°C", round(s.TemperatureC)),
		Description: capitalize(s.ConditionDescription),
		FeelsLike:   fmt.Sprintf("Feels like %d°C", round(s.FeelsLikeC)),
		MinMax:      fmt.Sprintf("%d° / %d°", round(s.MinTempC), round(s.MaxTempC)),
		Humidity:    fmt.Sprintf("%d%%", s.HumidityPercent),
		Wind:        fmt.Sprintf("%g m/s", s.WindSpeedMetersPerSecond),
		Visibility:  fmt.Sprintf("%.1f km", float64(s.VisibilityMeters)/1000),
		Sunrise:     clock(s.SunriseEpochSeconds, loc),
		Sunset:      clock(s.SunsetEpochSeconds, loc),
		Theme:       ThemeFor(s.ConditionMain),
	}
}

// WriteStatus prints a status the way the terminal client shows it.
func WriteStatus(w io.Writer, status models.Status, label string, loc *time.Location) error {
	switch status.Phase {
	case models.PhaseIdle:
		_, err := fmt.Fprintln(w, "Ready to fetch weather data.")
		return err
	case models.PhaseLoading:
		_, err := fmt.Fprintln(w, "Searching...")
		return err
	case models.PhaseFailed:
		_, err := fmt.Fprintln(w, status.Err.Message)
		return err
	}

	v := NewView(status.Snapshot, loc)
	var b strings.Builder
	if label != "" && label != status.Snapshot.LocationName {
		fmt.Fprintf(&b, "%s\n", label)
	}
	fmt.Fprintf(&b, "%s %s\n", v.Theme.Glyph, v.Heading)
	fmt.Fprintf(&b, "  %s  %s\n", v.Temperature, v.Description)
	fmt.Fprintf(&b, "  %s\n", v.FeelsLike)
	fmt.Fprintf(&b, "  Min/Max     %s\n", v.MinMax)
	fmt.Fprintf(&b, "  Humidity    %s\n", v.Humidity)
	fmt.Fprintf(&b, "  Wind Speed  %s\n", v.Wind)
	fmt.Fprintf(&b, "  Visibility  %s\n", v.Visibility)
	fmt.Fprintf(&b, "  Sunrise     %s\n", v.Sunrise)
	fmt.Fprintf(&b, "  Sunset      %s\n", v.Sunset)

	_, err := io.WriteString(w, b.String())
	return err
}

func round(v float64) int {
	// half up, so -0.5 becomes 0 rather than -1
	return int(math.Floor(v + 0.5))
}

func clock(epoch int64, loc *time.Location) string {
	return time.Unix(epoch, 0).In(loc).Format("15:04")
}

func capitalize(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
