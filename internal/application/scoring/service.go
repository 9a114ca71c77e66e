// Package scoring is the application-level façade over the complexity
// scorer: it parses records, applies configured limits, computes scores with
// the default perception toolkit, and records metrics and logs.  Both the
// CLI and the HTTP API go through this service.
package scoring

import (
	"sync/atomic"
	"time"

	"github.com/boskovicgroup/bottchercomplexity/internal/config"
	"github.com/boskovicgroup/bottchercomplexity/internal/infrastructure/monitoring/logging"
	"github.com/boskovicgroup/bottchercomplexity/internal/infrastructure/monitoring/prometheus"
	"github.com/boskovicgroup/bottchercomplexity/pkg/chem"
	"github.com/boskovicgroup/bottchercomplexity/pkg/complexity"
	"github.com/boskovicgroup/bottchercomplexity/pkg/errors"
	"github.com/boskovicgroup/bottchercomplexity/pkg/perception"
	"github.com/boskovicgroup/bottchercomplexity/pkg/sdf"
)

// Result is one scored molecule.
type Result struct {
	// Name is the record name from the molfile header, when present.
	Name string `json:"name,omitempty"`

	// Score is the computed complexity value.
	Score float64 `json:"score"`

	// AtomCount is the heavy-atom count of the scored molecule.
	AtomCount int `json:"atom_count"`

	// Contributions holds the per-atom diagnostic records when diagnostics
	// were requested.
	Contributions []complexity.Contribution `json:"contributions,omitempty"`
}

// Service scores molecules with the default perception toolkit.  It is
// stateless apart from injected infrastructure and safe for concurrent use.
type Service struct {
	ranks       chem.RankProvider
	stereo      chem.StereoProvider
	cfg         config.ScoringConfig
	diagnostics atomic.Bool
	logger      logging.Logger
	metrics     *prometheus.AppMetrics
}

// NewService constructs a Service.  logger may be nil; metrics may be nil
// when the metrics endpoint is disabled.
func NewService(cfg config.ScoringConfig, logger logging.Logger, metrics *prometheus.AppMetrics) *Service {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	s := &Service{
		ranks:   perception.NewMorganRanker(),
		stereo:  perception.NewBranchStereoPerceiver(),
		cfg:     cfg,
		logger:  logger.Named("scoring"),
		metrics: metrics,
	}
	s.diagnostics.Store(cfg.Diagnostics)
	return s
}

// Diagnostics reports whether diagnostics are enabled by default for calls
// that do not request them explicitly.
func (s *Service) Diagnostics() bool { return s.diagnostics.Load() }

// SetDiagnostics changes the diagnostics default at runtime.  Safe to call
// concurrently with scoring; used by configuration hot reload.
func (s *Service) SetDiagnostics(enabled bool) { s.diagnostics.Store(enabled) }

// ScoreMolfile parses a single V2000 connection table and scores it.
// source labels the caller ("cli", "http") for metrics.
func (s *Service) ScoreMolfile(source, molfile string, diagnostics bool) (*Result, error) {
	rec, err := sdf.ParseMolString(molfile)
	prometheus.RecordParse(s.metrics, err == nil)
	if err != nil {
		prometheus.RecordScoringFailure(s.metrics, source, errors.GetCode(err).String())
		return nil, err
	}
	return s.ScoreRecord(source, rec, diagnostics)
}

// ScoreRecord scores an already-parsed record.
func (s *Service) ScoreRecord(source string, rec *sdf.Record, diagnostics bool) (*Result, error) {
	m := rec.Molecule

	if s.cfg.MaxAtoms > 0 && m.NumAtoms() > s.cfg.MaxAtoms {
		err := errors.Newf(errors.ErrCodeValidation,
			"molecule has %d atoms, limit is %d", m.NumAtoms(), s.cfg.MaxAtoms)
		prometheus.RecordScoringFailure(s.metrics, source, errors.GetCode(err).String())
		return nil, err
	}

	var sink *complexity.CollectingSink
	opts := []complexity.Option{}
	if diagnostics {
		sink = &complexity.CollectingSink{}
		opts = append(opts, complexity.WithDiagnostics(sink))
	}

	start := time.Now()
	score, err := complexity.NewScorer(s.ranks, s.stereo, opts...).Score(m)
	if err != nil {
		code := errors.GetCode(err)
		prometheus.RecordScoringFailure(s.metrics, source, code.String())
		s.logger.Warn("scoring failed",
			logging.String("name", rec.Name),
			logging.String("code", code.String()),
			logging.Err(err))
		return nil, err
	}
	elapsed := time.Since(start)

	prometheus.RecordScore(s.metrics, source, m.NumAtoms(), score, elapsed)
	s.logger.Debug("molecule scored",
		logging.String("name", rec.Name),
		logging.Int("atoms", m.NumAtoms()),
		logging.Float64("score", score),
		logging.Duration("elapsed", elapsed))

	result := &Result{
		Name:      rec.Name,
		Score:     score,
		AtomCount: m.NumAtoms(),
	}
	if sink != nil {
		result.Contributions = sink.Contributions
	}
	return result, nil
}
