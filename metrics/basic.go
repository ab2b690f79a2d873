package metrics

import (
	"math"
	"sync"
	"sync/atomic"
)

// BasicProvider is a concurrency-safe in-memory Provider.
// Instruments are created on first use and reused for the same name.
type BasicProvider struct {
	counters   registry[*BasicCounter]
	updowns    registry[*BasicUpDownCounter]
	histograms registry[*BasicHistogram]

	mu   sync.Mutex
	meta map[string]InstrumentConfig
}

// NewBasicProvider constructs a new BasicProvider.
func NewBasicProvider() *BasicProvider {
	return &BasicProvider{meta: make(map[string]InstrumentConfig)}
}

// Counter returns the monotonic counter registered under name.
func (p *BasicProvider) Counter(name string, opts ...InstrumentOption) Counter {
	return p.counters.get(name, func() *BasicCounter {
		p.describe(name, opts)
		return &BasicCounter{}
	})
}

// UpDownCounter returns the up/down counter registered under name.
func (p *BasicProvider) UpDownCounter(name string, opts ...InstrumentOption) UpDownCounter {
	return p.updowns.get(name, func() *BasicUpDownCounter {
		p.describe(name, opts)
		return &BasicUpDownCounter{}
	})
}

// Histogram returns the histogram registered under name.
func (p *BasicProvider) Histogram(name string, opts ...InstrumentOption) Histogram {
	return p.histograms.get(name, func() *BasicHistogram {
		p.describe(name, opts)
		return &BasicHistogram{min: math.Inf(1), max: math.Inf(-1)}
	})
}

// Describe returns the metadata recorded when the instrument name was first created.
func (p *BasicProvider) Describe(name string) (InstrumentConfig, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	cfg, ok := p.meta[name]
	return cfg, ok
}

// CounterValue returns the current value of a counter, or 0 if it was never created.
func (p *BasicProvider) CounterValue(name string) int64 {
	if c, ok := p.counters.lookup(name); ok {
		return c.Snapshot()
	}
	return 0
}

// UpDownValue returns the current value of an up/down counter, or 0 if it was never created.
func (p *BasicProvider) UpDownValue(name string) int64 {
	if u, ok := p.updowns.lookup(name); ok {
		return u.Snapshot()
	}
	return 0
}

// HistogramSnapshot returns a snapshot of a histogram, or a zero snapshot if it was never created.
func (p *BasicProvider) HistogramSnapshot(name string) HistSnapshot {
	if h, ok := p.histograms.lookup(name); ok {
		return h.Snapshot()
	}
	return HistSnapshot{}
}

func (p *BasicProvider) describe(name string, opts []InstrumentOption) {
	cfg := applyOptions(opts)
	p.mu.Lock()
	p.meta[name] = cfg
	p.mu.Unlock()
}

// registry maps names to instruments of one kind, creating them at most once.
type registry[T any] struct {
	mu sync.RWMutex
	m  map[string]T
}

func (r *registry[T]) lookup(name string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.m[name]
	return v, ok
}

func (r *registry[T]) get(name string, create func() T) T {
	if v, ok := r.lookup(name); ok {
		return v
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// re-check after acquiring write lock
	if v, ok := r.m[name]; ok {
		return v
	}
	if r.m == nil {
		r.m = make(map[string]T)
	}
	v := create()
	r.m[name] = v
	return v
}

// BasicCounter is a thread-safe monotonic counter.
type BasicCounter struct {
	val atomic.Int64
}

func (c *BasicCounter) Add(n int64) { c.val.Add(n) }

// Snapshot returns the current value.
func (c *BasicCounter) Snapshot() int64 { return c.val.Load() }

// BasicUpDownCounter is a thread-safe up/down counter.
type BasicUpDownCounter struct {
	val atomic.Int64
}

func (u *BasicUpDownCounter) Add(n int64) { u.val.Add(n) }

// Snapshot returns the current value.
func (u *BasicUpDownCounter) Snapshot() int64 { return u.val.Load() }

// BasicHistogram tracks count, sum, min and max. It keeps no buckets.
type BasicHistogram struct {
	mu    sync.Mutex
	count int64
	sum   float64
	min   float64
	max   float64
}

func (h *BasicHistogram) Record(v float64) {
	h.mu.Lock()
	h.count++
	h.sum += v
	h.min = math.Min(h.min, v)
	h.max = math.Max(h.max, v)
	h.mu.Unlock()
}

// HistSnapshot is an immutable snapshot of a BasicHistogram.
type HistSnapshot struct {
	Count int64
	Sum   float64
	Min   float64
	Max   float64
	Mean  float64
}

// Snapshot returns a copy of the histogram state at the time of call.
func (h *BasicHistogram) Snapshot() HistSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.count == 0 {
		return HistSnapshot{}
	}
	return HistSnapshot{
		Count: h.count,
		Sum:   h.sum,
		Min:   h.min,
		Max:   h.max,
		Mean:  h.sum / float64(h.count),
	}
}
