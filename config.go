package partition

import (
	"strconv"

	"github.com/ygrebnov/errorc"

	"github.com/ygrebnov/partition/metrics"
)

// config holds Queue and Run configuration.
type config struct {
	// Metrics receives queue instrumentation.
	// Default: metrics.NoopProvider.
	Metrics metrics.Provider

	// PartThreadLimit caps the number of partitions Run executes concurrently.
	// Zero means every partition gets its own goroutine right away.
	// Queue ignores this value.
	// Default: 0 (unlimited)
	PartThreadLimit int
}

// defaultConfig centralizes default values for config.
func defaultConfig() config {
	return config{
		Metrics:         metrics.NewNoopProvider(),
		PartThreadLimit: 0, // unlimited
	}
}

// validateConfig checks invariants which individual options cannot see.
func validateConfig(cfg *config) error {
	if cfg.Metrics == nil {
		return errorc.With(ErrInvalidConfig, errorc.String("metrics", "provider must not be nil"))
	}
	return nil
}

// buildConfig applies opts on top of the defaults. Nil options are skipped.
func buildConfig(opts []Option) (*config, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Option configures a Queue (New) or a partitioned run (Run).
type Option func(*config) error

// WithMetrics sets the metrics provider used to instrument the queue.
func WithMetrics(p metrics.Provider) Option {
	return func(cfg *config) error {
		if p == nil {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithMetrics requires a non-nil provider"))
		}
		cfg.Metrics = p
		return nil
	}
}

// WithPartThreadLimit limits how many partitions Run executes at the same time (must be > 0).
func WithPartThreadLimit(n int) Option {
	return func(cfg *config) error {
		if n <= 0 {
			return errorc.With(
				ErrInvalidConfig,
				errorc.String("", "WithPartThreadLimit requires n > 0"),
				errorc.String("n", strconv.Itoa(n)),
			)
		}
		cfg.PartThreadLimit = n
		return nil
	}
}
