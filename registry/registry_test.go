package registry

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compiling-org/WGSL-Shader-Studio-sub002/shader"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestRegistry(capacity int, ttl time.Duration) (*Registry, *fakeClock) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	r := New(Options{Capacity: capacity, TTL: ttl, Clock: clock.Now})
	return r, clock
}

func TestLoadAndGet(t *testing.T) {
	r, _ := newTestRegistry(4, time.Minute)

	m := r.Load("blur", "Blur", "float radius;", shader.DialectGLSL)
	require.NotNil(t, m)
	assert.Equal(t, uint64(1), m.Version)

	got, err := r.Get("blur")
	require.NoError(t, err)
	assert.Same(t, m, got)
}

func TestGet_AbsentIsNotFound(t *testing.T) {
	r, _ := newTestRegistry(4, time.Minute)

	_, err := r.Get("missing")
	assert.ErrorIs(t, err, ErrModuleNotFound)
	assert.Equal(t, uint64(1), r.Stats().Misses)
}

func TestLoad_UnchangedSourceReturnsCachedEntry(t *testing.T) {
	r, _ := newTestRegistry(4, time.Minute)

	first := r.Load("fx", "FX", "uniform float t;", shader.DialectGLSL)
	second := r.Load("fx", "FX", "uniform float t;", shader.DialectGLSL)

	assert.Same(t, first, second)
	assert.Equal(t, uint64(1), second.Version)
}

func TestLoad_ChangedSourceAdvancesVersionAndDropsArtifact(t *testing.T) {
	r, _ := newTestRegistry(4, time.Minute)

	r.Load("fx", "FX", "uniform float t;", shader.DialectGLSL)
	_, err := r.Attach("fx", &shader.Artifact{Source: "// compiled"})
	require.NoError(t, err)

	reloaded := r.Load("fx", "FX", "uniform float t2;", shader.DialectGLSL)
	assert.Equal(t, uint64(2), reloaded.Version)
	assert.Nil(t, reloaded.Artifact)
}

func TestAttach_CopyOnWrite(t *testing.T) {
	r, _ := newTestRegistry(4, time.Minute)

	before := r.Load("fx", "FX", "uniform float t;", shader.DialectGLSL)
	after, err := r.Attach("fx", &shader.Artifact{Source: "// compiled"})
	require.NoError(t, err)

	assert.Nil(t, before.Artifact, "existing references stay unchanged")
	require.NotNil(t, after.Artifact)

	got, err := r.Get("fx")
	require.NoError(t, err)
	assert.Same(t, after, got)
}

func TestTTL_Boundary(t *testing.T) {
	const ttl = time.Minute
	r, clock := newTestRegistry(4, ttl)

	r.Load("fx", "FX", "uniform float t;", shader.DialectGLSL)

	clock.advance(ttl - time.Nanosecond)
	got, err := r.Get("fx")
	require.NoError(t, err, "read just before the deadline is a hit")
	require.NotNil(t, got)

	// The hit refreshed the access timestamp, so the clock must pass a
	// full TTL from that read to expire the entry.
	clock.advance(ttl + time.Nanosecond)
	_, err = r.Get("fx")
	assert.ErrorIs(t, err, ErrModuleNotFound, "read past the deadline is a miss")

	s := r.Stats()
	assert.Equal(t, uint64(1), s.Hits)
	assert.Equal(t, uint64(1), s.Misses)
	assert.Equal(t, uint64(1), s.Evictions, "expired entry is evicted lazily on read")
	assert.Equal(t, 0, s.Size)
}

func TestTTL_ExactDeadlineIsExpired(t *testing.T) {
	const ttl = time.Minute
	r, clock := newTestRegistry(4, ttl)

	r.Load("fx", "FX", "uniform float t;", shader.DialectGLSL)
	clock.advance(ttl)

	_, err := r.Get("fx")
	assert.ErrorIs(t, err, ErrModuleNotFound)
}

func TestLRU_CapacityEviction(t *testing.T) {
	r, _ := newTestRegistry(2, time.Minute)

	r.Load("a", "A", "// a", shader.DialectGLSL)
	r.Load("b", "B", "// b", shader.DialectGLSL)

	// Touch a so b becomes least recently used.
	_, err := r.Get("a")
	require.NoError(t, err)

	r.Load("c", "C", "// c", shader.DialectGLSL)

	_, err = r.Get("b")
	assert.ErrorIs(t, err, ErrModuleNotFound, "least recently used entry is evicted")
	_, err = r.Get("a")
	assert.NoError(t, err)
	_, err = r.Get("c")
	assert.NoError(t, err)
	assert.Equal(t, 2, r.Stats().Size)
}

func TestInvalidateAndClear(t *testing.T) {
	r, _ := newTestRegistry(4, time.Minute)

	r.Load("a", "A", "// a", shader.DialectGLSL)
	r.Load("b", "B", "// b", shader.DialectGLSL)

	r.Invalidate("a")
	_, err := r.Get("a")
	assert.ErrorIs(t, err, ErrModuleNotFound)

	r.Clear()
	assert.Equal(t, 0, r.Stats().Size)
	_, err = r.Get("b")
	assert.ErrorIs(t, err, ErrModuleNotFound)
}

func TestMetricsCounters(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	m := NewMetrics(prometheus.NewRegistry())
	r := New(Options{Capacity: 1, TTL: time.Minute, Clock: clock.Now, Metrics: m})

	r.Load("a", "A", "// a", shader.DialectGLSL)
	_, _ = r.Get("a")
	_, _ = r.Get("missing")
	r.Load("b", "B", "// b", shader.DialectGLSL)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Hits))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Misses))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Evictions), "capacity 1 evicts a when b arrives")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Entries))
}
