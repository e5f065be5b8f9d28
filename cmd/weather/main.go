package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/bobby-s-dev/weather-lookup/internal/app"
	"github.com/bobby-s-dev/weather-lookup/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type appKey struct{}

// errFetchFailed marks a failure whose message was already printed.
var errFetchFailed = errors.New("fetch failed")

// opened is closed by main once the command returns.
var opened *app.App

var rootCmd = &cobra.Command{
	Use:   "weather",
	Short: "Current weather from OpenWeatherMap",
	Long: `weather looks up current conditions for a city name or a
latitude,longitude pair using your OpenWeatherMap API key.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupApp,
}

func setupApp(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logConfig := zap.NewDevelopmentConfig()
	logConfig.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	if cfg.Server.LogLevel == "debug" {
		logConfig.Level.SetLevel(zap.DebugLevel)
	}
	logger, err := logConfig.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	zap.ReplaceGlobals(logger)

	weather, err := app.New(cmd.Context(), cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	opened = weather
	cmd.SetContext(context.WithValue(cmd.Context(), appKey{}, weather))
	return nil
}

func appFrom(cmd *cobra.Command) *app.App {
	return cmd.Context().Value(appKey{}).(*app.App)
}

func main() {
	ctx := context.Background()

	err := rootCmd.ExecuteContext(ctx)
	if opened != nil {
		opened.Close()
	}
	zap.L().Sync()

	if err != nil {
		if !errors.Is(err, errFetchFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
