package partition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ygrebnov/partition/metrics"
)

func TestBuildConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := buildConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, metrics.NewNoopProvider(), cfg.Metrics)
	assert.Equal(t, 0, cfg.PartThreadLimit)
}

func TestBuildConfig_Options(t *testing.T) {
	t.Parallel()

	p := metrics.NewBasicProvider()
	cfg, err := buildConfig([]Option{nil, WithMetrics(p), WithPartThreadLimit(4)})
	require.NoError(t, err)
	assert.Same(t, p, cfg.Metrics)
	assert.Equal(t, 4, cfg.PartThreadLimit)
}

func TestBuildConfig_InvalidOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opt  Option
	}{
		{name: "nil metrics provider", opt: WithMetrics(nil)},
		{name: "zero part thread limit", opt: WithPartThreadLimit(0)},
		{name: "negative part thread limit", opt: WithPartThreadLimit(-2)},
		{name: "nil metrics set directly", opt: func(c *config) error { c.Metrics = nil; return nil }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := buildConfig([]Option{tc.opt})
			require.ErrorIs(t, err, ErrInvalidConfig)
			assert.Nil(t, cfg)
		})
	}
}

func TestNew_InvalidOption_ReturnsError(t *testing.T) {
	t.Parallel()

	q, err := New[int](2, WithMetrics(nil))
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Nil(t, q)
}
