package linefmt

import (
	"log/slog"

	"github.com/randalmurphal/linefmt/pkg/linefmt/history"
	"github.com/randalmurphal/linefmt/pkg/linefmt/observability"
	"github.com/randalmurphal/linefmt/pkg/linefmt/template"
	"github.com/randalmurphal/linefmt/pkg/linefmt/vars"
)

// DefaultMaxLineBytes is the longest input line accepted by default.
const DefaultMaxLineBytes = 1 << 20

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger for run events.
// Default: nil (logging disabled)
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// WithMetrics enables OpenTelemetry metrics.
// Default: false (NoopMetrics)
//
// Configure the global meter provider before running:
//
//	otel.SetMeterProvider(provider)
//	gen := linefmt.New(linefmt.WithMetrics(true))
func WithMetrics(enabled bool) Option {
	return func(g *Generator) {
		if enabled {
			g.metrics = observability.NewMetricsRecorder()
		} else {
			g.metrics = observability.NoopMetrics{}
		}
	}
}

// WithTracing enables OpenTelemetry tracing, one span per run.
// Default: false (NoopSpanManager)
func WithTracing(enabled bool) Option {
	return func(g *Generator) {
		if enabled {
			g.spans = observability.NewSpanManager()
		} else {
			g.spans = observability.NoopSpanManager{}
		}
	}
}

// WithHistory records every Run in store.
// Default: nil (no history)
//
// History failures are logged and never fail a run.
func WithHistory(store history.Store) Option {
	return func(g *Generator) {
		g.history = store
	}
}

// WithMaxLineBytes limits the length of a single input line.
// Default: DefaultMaxLineBytes. Non-positive values are ignored.
func WithMaxLineBytes(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxLineBytes = n
		}
	}
}

// WithVars replaces the variable table.
// Default: vars.Default()
func WithVars(table vars.Table) Option {
	return func(g *Generator) {
		g.vars = table
	}
}

// WithExpander replaces the template expander.
// Default: template.NewExpander()
func WithExpander(exp *template.Expander) Option {
	return func(g *Generator) {
		if exp != nil {
			g.expander = exp
		}
	}
}

// WithRunIDFunc sets the run ID generator.
// Default: random UUIDs
func WithRunIDFunc(fn func() string) Option {
	return func(g *Generator) {
		if fn != nil {
			g.newRunID = fn
		}
	}
}
