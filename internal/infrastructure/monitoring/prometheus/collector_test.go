package prometheus

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boskovicgroup/bottchercomplexity/internal/infrastructure/monitoring/logging"
)

func newTestCollector(t *testing.T) MetricsCollector {
	t.Helper()
	c, err := NewMetricsCollector(CollectorConfig{Namespace: "bottcher"}, logging.NewNopLogger())
	require.NoError(t, err)
	return c
}

func TestNewMetricsCollector_RequiresNamespace(t *testing.T) {
	_, err := NewMetricsCollector(CollectorConfig{}, logging.NewNopLogger())
	assert.Error(t, err)
}

func TestCollector_CounterRoundTrip(t *testing.T) {
	c := newTestCollector(t)

	counter := c.RegisterCounter("things_total", "things", "kind")
	counter.WithLabelValues("a").Inc()
	counter.WithLabelValues("a").Add(2)
	counter.WithLabelValues("b").Inc()

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body := rec.Body.String()
	assert.Contains(t, body, `bottcher_things_total{kind="a"} 3`)
	assert.Contains(t, body, `bottcher_things_total{kind="b"} 1`)
}

func TestCollector_DuplicateRegistrationReturnsOriginal(t *testing.T) {
	c := newTestCollector(t)

	first := c.RegisterCounter("dup_total", "dup", "k")
	second := c.RegisterCounter("dup_total", "dup", "k")

	first.WithLabelValues("x").Inc()
	second.WithLabelValues("x").Inc()

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `bottcher_dup_total{k="x"} 2`)
}

func TestCollector_GaugeAndHistogram(t *testing.T) {
	c := newTestCollector(t)

	gauge := c.RegisterGauge("depth", "queue depth", "q")
	gauge.WithLabelValues("main").Set(5)
	gauge.WithLabelValues("main").Inc()
	gauge.WithLabelValues("main").Dec()

	hist := c.RegisterHistogram("latency_seconds", "latency", []float64{0.1, 1}, "op")
	hist.WithLabelValues("score").Observe(0.05)
	hist.WithLabelValues("score").Observe(0.5)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body := rec.Body.String()
	assert.Contains(t, body, `bottcher_depth{q="main"} 5`)
	assert.Contains(t, body, `bottcher_latency_seconds_count{op="score"} 2`)
	assert.Contains(t, body, `bottcher_latency_seconds_bucket{op="score",le="0.1"} 1`)
}

func TestTimer(t *testing.T) {
	c := newTestCollector(t)
	hist := c.RegisterHistogram("timed_seconds", "timed", []float64{10}, "op")

	timer := NewTimer(hist.WithLabelValues("x"))
	time.Sleep(time.Millisecond)
	timer.ObserveDuration()

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `bottcher_timed_seconds_count{op="x"} 1`)

	// A nil histogram is a no-op.
	NewTimer(nil).ObserveDuration()
}
