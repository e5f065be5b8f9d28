package main

import (
	"strings"

	"github.com/bobby-s-dev/weather-lookup/internal/geo"
	"github.com/bobby-s-dev/weather-lookup/internal/models"
	"github.com/bobby-s-dev/weather-lookup/internal/render"
	"github.com/spf13/cobra"
)

var nowCmd = &cobra.Command{
	Use:   "now [location]",
	Short: "Show current weather",
	Long: `Show current weather for a city name or "lat,lon" pair.
Without arguments the configured position is used, falling back to the
default location.`,
	Example: `  weather now London
  weather now "51.5074, -0.1278"
  weather now --lat 40.71 --lon -74.01`,
	RunE: runNow,
}

func init() {
	nowCmd.Flags().String("lat", "", "latitude of the position to look up")
	nowCmd.Flags().String("lon", "", "longitude of the position to look up")
	rootCmd.AddCommand(nowCmd)
}

func runNow(cmd *cobra.Command, args []string) error {
	weather := appFrom(cmd)
	ctx := cmd.Context()

	lat, _ := cmd.Flags().GetString("lat")
	lon, _ := cmd.Flags().GetString("lon")

	var label string
	switch {
	case lat != "" || lon != "":
		coord, err := geo.ParseCoordinate(lat, lon)
		if err != nil {
			return err
		}
		label = geo.CurrentLocationLabel
		weather.Session.FetchWeather(ctx, models.CoordinateQuery(coord.Latitude, coord.Longitude))
	case len(args) > 0:
		label = strings.Join(args, " ")
		weather.Session.FetchWeather(ctx, label)
	default:
		label = weather.StartupFetch(ctx)
	}

	status := weather.Session.Status()
	if err := render.WriteStatus(cmd.OutOrStdout(), status, label, nil); err != nil {
		return err
	}
	if status.Phase == models.PhaseFailed {
		return errFetchFailed
	}
	return nil
}
