// Package logging configures the process-wide slog logger. Every record
// carries a service attribute so log lines stay attributable once they
// are shipped alongside the other EcoPlate services.
package logging

import (
	"fmt"
	"log/slog"
	"os"
)

const serviceName = "ecoplate"

func Setup(level string) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	slog.SetDefault(slog.New(handler).With(slog.String("service", serviceName)))
}

func Fatalf(format string, args ...any) {
	slog.Error(fmt.Sprintf(format, args...))
	os.Exit(1)
}
