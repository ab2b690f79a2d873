package metrics

import (
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicProvider_Counter_ReusedAndAccumulates(t *testing.T) {
	p := NewBasicProvider()

	c1 := p.Counter("moves_added")
	c2 := p.Counter("moves_added")
	require.Same(t, c1, c2)

	c1.Add(3)
	c2.Add(2)
	assert.Equal(t, int64(5), p.CounterValue("moves_added"))

	other := p.Counter("other")
	assert.NotSame(t, c1, other)
	assert.Equal(t, int64(0), p.CounterValue("missing"))
}

func TestBasicProvider_UpDownCounter_ReusedAndMoves(t *testing.T) {
	p := NewBasicProvider()

	u1 := p.UpDownCounter("armed")
	u2 := p.UpDownCounter("armed")
	require.Same(t, u1, u2)

	u1.Add(+3)
	u2.Add(-1)
	u1.Add(+10)
	assert.Equal(t, int64(12), p.UpDownValue("armed"))
}

func TestBasicProvider_Histogram_RecordsStats(t *testing.T) {
	p := NewBasicProvider()
	h := p.Histogram("wait_seconds")

	assert.Equal(t, HistSnapshot{}, p.HistogramSnapshot("wait_seconds"))

	h.Record(0.1)
	h.Record(0.3)
	h.Record(0.2)

	s := p.HistogramSnapshot("wait_seconds")
	assert.Equal(t, int64(3), s.Count)
	assert.Equal(t, 0.1, s.Min)
	assert.Equal(t, 0.3, s.Max)
	assert.InDelta(t, 0.6, s.Sum, 1e-9)
	assert.InDelta(t, 0.2, s.Mean, 1e-9)
}

func TestBasicProvider_Describe(t *testing.T) {
	p := NewBasicProvider()
	p.Histogram("wait_seconds", WithDescription("consumer wait"), WithUnit("seconds"), nil)

	cfg, ok := p.Describe("wait_seconds")
	require.True(t, ok)
	assert.Equal(t, InstrumentConfig{Description: "consumer wait", Unit: "seconds"}, cfg)

	_, ok = p.Describe("missing")
	assert.False(t, ok)
}

func TestBasicProvider_Concurrent_GetSameInstrument(t *testing.T) {
	p := NewBasicProvider()
	n := 50
	got := make([]Counter, n)

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			got[i] = p.Counter("shared")
		}()
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		require.Same(t, got[0], got[i], "mismatch at %d", i)
	}
}

func TestBasicProvider_Concurrent_Record(t *testing.T) {
	p := NewBasicProvider()
	c := p.Counter("hits")
	u := p.UpDownCounter("inflight")
	h := p.Histogram("latency")

	workers := runtime.NumCPU() * 2
	iters := 500

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < iters; i++ {
				c.Add(1)
				u.Add(+1)
				u.Add(-1)
				h.Record(float64(i%10) / 100.0)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(workers*iters), p.CounterValue("hits"))
	assert.Equal(t, int64(0), p.UpDownValue("inflight"))

	s := p.HistogramSnapshot("latency")
	assert.Equal(t, int64(workers*iters), s.Count)
	assert.Equal(t, 0.0, s.Min)
	assert.Equal(t, 0.09, s.Max)
}

func TestNoopProvider_DiscardsEverything(t *testing.T) {
	var p Provider = NewNoopProvider()

	assert.NotPanics(t, func() {
		p.Counter("c").Add(1)
		p.UpDownCounter("u").Add(-1)
		p.Histogram("h").Record(1.5)
	})
}
