// Package observability provides logging, metrics and tracing for linefmt
// runs.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds run context to a logger.
// Returns a new logger with run_id and input fields.
func EnrichLogger(logger *slog.Logger, runID, input string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("run_id", runID),
		slog.String("input", input),
	)
}

// LogRunStart logs the start of a run.
func LogRunStart(logger *slog.Logger, runID, input, output string) {
	if logger == nil {
		return
	}
	logger.Info("format run starting",
		slog.String("run_id", runID),
		slog.String("input", input),
		slog.String("output", output),
	)
}

// LogRunComplete logs successful run completion.
func LogRunComplete(logger *slog.Logger, runID string, durationMs float64, lines int) {
	if logger == nil {
		return
	}
	logger.Info("format run completed",
		slog.String("run_id", runID),
		slog.Float64("duration_ms", durationMs),
		slog.Int("lines", lines),
	)
}

// LogRunError logs run failure. lastLine is the 1-based line being
// processed when the run stopped, or 0 if no line was read.
func LogRunError(logger *slog.Logger, runID string, err error, durationMs float64, lastLine int) {
	if logger == nil {
		return
	}
	logger.Error("format run failed",
		slog.String("run_id", runID),
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", durationMs),
		slog.Int("last_line", lastLine),
	)
}

// LogLineError logs the line that stopped a run.
func LogLineError(logger *slog.Logger, line int, kind string, err error) {
	if logger == nil {
		return
	}
	logger.Debug("line failed",
		slog.Int("line", line),
		slog.String("kind", kind),
		slog.String("error", err.Error()),
	)
}

// LogHistoryError logs a run history failure (non-fatal).
func LogHistoryError(logger *slog.Logger, runID, op string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("run history failed",
		slog.String("run_id", runID),
		slog.String("operation", op),
		slog.String("error", err.Error()),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Microseconds()) / 1000
	}
}
