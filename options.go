package orderedmap

import (
	"log/slog"
)

type options struct {
	capacity         int
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures Map constructor behavior.
type Option func(*options)

// WithCapacity preallocates room for n entries in the sequence and, for
// hashed maps, in the index.
func WithCapacity(n int) Option {
	return func(o *options) {
		o.capacity = n
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &orderedmap.BasicMetricsCollector{}
//	m := orderedmap.New[string, int](orderedmap.WithMetricsCollector(metrics))
//	// ... use m ...
//	stats := metrics.GetStats()
//	fmt.Printf("Inserts: %d, Updates: %d\n", stats.InsertCount, stats.UpdateCount)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := orderedmap.NewJSONLogger(slog.LevelDebug)
//	m := orderedmap.New[string, int](orderedmap.WithLogger(logger))
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
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.capacity < 0 {
		o.capacity = 0
	}
	return o
}
