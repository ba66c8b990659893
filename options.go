package placematch

import (
	"log/slog"

	"github.com/hupe1980/placematch/lcd"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

type options struct {
	coarse           lcd.MatchConfig
	fine             lcd.MatchConfig
	coarseBudget     lcd.ScanBudget
	fineBudget       lcd.ScanBudget
	leafParallelism  int
	metricsCollector MetricsCollector
	logger           *Logger
	tracerProvider   trace.TracerProvider
}

// Option configures a Matcher.
type Option func(*options)

// WithCoarseConfig sets the match parameters of the single-layer (coarse)
// search. Defaults to lcd.DefaultMatchConfig.
func WithCoarseConfig(cfg lcd.MatchConfig) Option {
	return func(o *options) {
		o.coarse = cfg
	}
}

// WithFineConfig sets the match parameters of the leaf (fine) search.
// Defaults to lcd.DefaultMatchConfig.
func WithFineConfig(cfg lcd.MatchConfig) Option {
	return func(o *options) {
		o.fine = cfg
	}
}

// WithScanBudget bounds the number of candidates scored by the coarse and
// the fine search. lcd.Unlimited (or any non-positive value) disables a bound.
func WithScanBudget(coarse, fine lcd.ScanBudget) Option {
	return func(o *options) {
		o.coarseBudget = coarse
		o.fineBudget = fine
	}
}

// WithLeafParallelism scores leaf candidates on up to n goroutines.
// Results are identical to sequential scoring.
func WithLeafParallelism(n int) Option {
	return func(o *options) {
		o.leafParallelism = n
	}
}

// WithMetricsCollector configures metrics collection for searches.
// Pass nil to disable metrics collection (uses NoopMetricsCollector).
//
// Example:
//
//	metrics := &placematch.BasicMetricsCollector{}
//	m, _ := placematch.New(placematch.WithMetricsCollector(metrics))
//	// ... use m ...
//	stats := metrics.GetStats()
//	fmt.Printf("Detections: %d, matches: %d\n", stats.DetectionCount, stats.DetectionMatches)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for searches.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := placematch.NewJSONLogger(slog.LevelInfo)
//	m, _ := placematch.New(placematch.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
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

// WithTracerProvider sets the OpenTelemetry tracer provider used for search
// spans. Defaults to the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		o.tracerProvider = tp
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		coarse:           lcd.DefaultMatchConfig(),
		fine:             lcd.DefaultMatchConfig(),
		coarseBudget:     lcd.Unlimited,
		fineBudget:       lcd.Unlimited,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	if o.tracerProvider == nil {
		o.tracerProvider = otel.GetTracerProvider()
	}
	return o
}
