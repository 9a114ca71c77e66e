package prometheus

import (
	"strconv"
	"time"
)

// AppMetrics holds the application metric instruments.
type AppMetrics struct {
	// HTTP layer
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec
	HTTPActiveRequests  GaugeVec

	// Scoring
	MoleculesScoredTotal CounterVec
	ScoringFailuresTotal CounterVec
	ScoringDuration      HistogramVec
	ComplexityScore      HistogramVec
	MoleculeAtomCount    HistogramVec

	// Parsing
	RecordsParsedTotal CounterVec
}

// Default buckets.
var (
	DefaultHTTPDurationBuckets    = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	DefaultScoringDurationBuckets = []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1}
	DefaultScoreBuckets           = []float64{0, 10, 25, 50, 100, 200, 400, 800, 1600}
	DefaultAtomCountBuckets       = []float64{1, 5, 10, 20, 40, 80, 160, 320}
)

// NewAppMetrics registers the application metrics on the collector.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	m := &AppMetrics{}

	m.HTTPRequestsTotal = collector.RegisterCounter("http_requests_total", "Total HTTP requests", "method", "path", "status_code")
	m.HTTPRequestDuration = collector.RegisterHistogram("http_request_duration_seconds", "HTTP request duration", DefaultHTTPDurationBuckets, "method", "path")
	m.HTTPActiveRequests = collector.RegisterGauge("http_active_requests", "Active HTTP requests", "method")

	m.MoleculesScoredTotal = collector.RegisterCounter("molecules_scored_total", "Molecules scored successfully", "source")
	m.ScoringFailuresTotal = collector.RegisterCounter("scoring_failures_total", "Scoring failures by error code", "source", "code")
	m.ScoringDuration = collector.RegisterHistogram("scoring_duration_seconds", "Time spent scoring one molecule", DefaultScoringDurationBuckets, "source")
	m.ComplexityScore = collector.RegisterHistogram("complexity_score", "Distribution of computed complexity scores", DefaultScoreBuckets, "source")
	m.MoleculeAtomCount = collector.RegisterHistogram("molecule_atom_count", "Heavy-atom counts of scored molecules", DefaultAtomCountBuckets, "source")

	m.RecordsParsedTotal = collector.RegisterCounter("records_parsed_total", "SDF records parsed", "status")

	return m
}

// RecordHTTPRequest records one completed HTTP request.
func RecordHTTPRequest(m *AppMetrics, method, path string, statusCode int, duration time.Duration) {
	if m == nil {
		return
	}
	status := strconv.Itoa(statusCode)
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordScore records one successful scoring operation.
func RecordScore(m *AppMetrics, source string, atomCount int, score float64, duration time.Duration) {
	if m == nil {
		return
	}
	m.MoleculesScoredTotal.WithLabelValues(source).Inc()
	m.ScoringDuration.WithLabelValues(source).Observe(duration.Seconds())
	m.ComplexityScore.WithLabelValues(source).Observe(score)
	m.MoleculeAtomCount.WithLabelValues(source).Observe(float64(atomCount))
}

// RecordScoringFailure records one failed scoring operation by error code.
func RecordScoringFailure(m *AppMetrics, source, code string) {
	if m == nil {
		return
	}
	m.ScoringFailuresTotal.WithLabelValues(source, code).Inc()
}

// RecordParse records the outcome of parsing one SDF record.
func RecordParse(m *AppMetrics, ok bool) {
	if m == nil {
		return
	}
	status := "ok"
	if !ok {
		status = "error"
	}
	m.RecordsParsedTotal.WithLabelValues(status).Inc()
}
