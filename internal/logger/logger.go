// Package logger provides the process-wide structured logger and one
// component-tagged sub-logger per subsystem of the host.
package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Log is the process-wide root logger, tagged with the service name.
var Log zerolog.Logger

// Initialize configures the global logger. Call once, at process startup.
func Initialize(level string, pretty bool) {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	if pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	} else {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	}

	Log = log.With().
		Str("service", "vrc-osc-loader").
		Logger()

	Log.Info().
		Str("level", logLevel.String()).
		Bool("pretty", pretty).
		Msg("logger initialized")
}

// GetLogger returns the global logger instance.
func GetLogger() *zerolog.Logger {
	return &Log
}

// Router creates a logger for the UDP fan-out/fan-in router.
func Router() *zerolog.Logger {
	l := Log.With().Str("component", "router").Logger()
	return &l
}

// PluginHost creates a logger for the plugin loader/lifecycle subsystem.
func PluginHost() *zerolog.Logger {
	l := Log.With().Str("component", "pluginhost").Logger()
	return &l
}

// Discovery creates a logger for the library resolver.
func Discovery() *zerolog.Logger {
	l := Log.With().Str("component", "discovery").Logger()
	return &l
}

// Config creates a logger for config load/save and the first-run wizard.
func Config() *zerolog.Logger {
	l := Log.With().Str("component", "config").Logger()
	return &l
}

// Chat creates a logger for the chat-transform pipeline.
func Chat() *zerolog.Logger {
	l := Log.With().Str("component", "chat").Logger()
	return &l
}

// Telemetry creates a logger for the optional NATS event publisher.
func Telemetry() *zerolog.Logger {
	l := Log.With().Str("component", "telemetry").Logger()
	return &l
}

// Admin creates a logger for the admin HTTP surface (health/metrics).
func Admin() *zerolog.Logger {
	l := Log.With().Str("component", "admin").Logger()
	return &l
}
