package genarena

import (
	"log/slog"
)

type options struct {
	capacity int
	metrics  MetricsCollector
	logger   *Logger
}

// Option configures arena constructor behavior.
type Option func(*options)

// WithCapacity configures the number of slots reserved up front.
// Values below 1 are clamped to 1.
func WithCapacity(capacity int) Option {
	return func(o *options) {
		if capacity < 1 {
			capacity = 1
		}
		o.capacity = capacity
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &genarena.BasicMetricsCollector{}
//	a := genarena.NewStandard[string](genarena.WithMetricsCollector(metrics))
//	// ... use a ...
//	stats := metrics.GetStats()
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := genarena.NewJSONLogger(slog.LevelInfo)
//	a := genarena.NewStandard[string](genarena.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		capacity: DefaultCapacity,
		metrics:  NoopMetricsCollector{},
		logger:   NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
