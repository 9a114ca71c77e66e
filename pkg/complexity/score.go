package complexity

import (
	"fmt"
	"math"

	"github.com/boskovicgroup/bottchercomplexity/pkg/chem"
	"github.com/boskovicgroup/bottchercomplexity/pkg/errors"
)

// Factors holds the five per-atom factor values of the complexity formula.
type Factors struct {
	D int `json:"d"`
	E int `json:"e"`
	S int `json:"s"`
	V int `json:"v"`
	B int `json:"b"`
}

// Contribution is the per-atom diagnostic record emitted while aggregating.
// It is observational only and never influences the returned score.
type Contribution struct {
	Atom    int       `json:"atom"`
	Element string    `json:"element"`
	Rank    chem.Rank `json:"rank"`
	Full    int       `json:"full"`
	Half    int       `json:"half"`
	Factors Factors   `json:"factors"`
	Term    float64   `json:"term"`
}

// DiagnosticSink receives Contribution records when diagnostics are
// enabled.  Implementations must not assume any ordering guarantees beyond
// atom enumeration order, and sink failures never mask a scoring failure.
type DiagnosticSink interface {
	Record(c Contribution)
}

// SinkFunc adapts a plain function to the DiagnosticSink interface.
type SinkFunc func(c Contribution)

// Record implements DiagnosticSink.
func (f SinkFunc) Record(c Contribution) { f(c) }

// CollectingSink accumulates contributions in memory, mainly for tests and
// the CLI's diagnostics output.
type CollectingSink struct {
	Contributions []Contribution
}

// Record implements DiagnosticSink.
func (s *CollectingSink) Record(c Contribution) {
	s.Contributions = append(s.Contributions, c)
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithDiagnostics installs a sink that receives per-atom contribution
// records during scoring.
func WithDiagnostics(sink DiagnosticSink) Option {
	return func(s *Scorer) { s.sink = sink }
}

// Scorer computes the molecular complexity score.  The symmetry-rank and
// stereocenter providers are injected so the core stays decoupled from any
// particular canonicalisation toolkit.  A Scorer holds no per-molecule
// state; it is safe for concurrent use.
type Scorer struct {
	ranks  chem.RankProvider
	stereo chem.StereoProvider
	sink   DiagnosticSink
}

// NewScorer constructs a Scorer with the given annotation providers.
func NewScorer(ranks chem.RankProvider, stereo chem.StereoProvider, opts ...Option) *Scorer {
	s := &Scorer{ranks: ranks, stereo: stereo}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score obtains annotations from the providers and computes the molecule's
// complexity score.  The computation is pure and deterministic: scoring the
// same molecule twice yields the identical float.
func (s *Scorer) Score(m *chem.Molecule) (float64, error) {
	ann, err := s.annotate(m)
	if err != nil {
		return 0, err
	}
	return s.ScoreAnnotated(m, ann)
}

// annotate gathers the external per-atom data for m.
func (s *Scorer) annotate(m *chem.Molecule) (chem.Annotations, error) {
	if s.ranks == nil || s.stereo == nil {
		return chem.Annotations{}, errors.New(errors.ErrCodeMissingAnnotation,
			"scorer has no rank or stereocenter provider")
	}
	ranks, err := s.ranks.SymmetryRanks(m)
	if err != nil {
		return chem.Annotations{}, errors.Wrap(err, errors.ErrCodeMissingAnnotation,
			"symmetry rank computation failed")
	}
	flags, err := s.stereo.Stereocenters(m)
	if err != nil {
		return chem.Annotations{}, errors.Wrap(err, errors.ErrCodeMissingAnnotation,
			"stereocenter perception failed")
	}
	return chem.Annotations{Ranks: ranks, Stereocenters: flags}, nil
}

// ScoreAnnotated computes the complexity score from already-obtained
// annotations.  Every equivalence class contributes ⌊c/2⌋ full-weight and
// c mod 2 half-weight terms through its first atom in enumeration order.
func (s *Scorer) ScoreAnnotated(m *chem.Molecule, ann chem.Annotations) (float64, error) {
	if m.NumAtoms() == 0 {
		return 0, errors.New(errors.ErrCodeEmptyMolecule, "molecule contains no atoms")
	}
	if err := ann.Validate(m); err != nil {
		return 0, err
	}

	total := 0.0
	for _, asg := range ResolveEquivalenceClasses(ann.Ranks) {
		factors, err := AtomFactors(m, ann, asg.Atom)
		if err != nil {
			return 0, err
		}

		term, err := factorTerm(m, asg.Atom, factors)
		if err != nil {
			return 0, err
		}

		if s.sink != nil {
			s.sink.Record(Contribution{
				Atom:    asg.Atom,
				Element: m.Atom(asg.Atom).Element,
				Rank:    ann.Ranks[asg.Atom],
				Full:    asg.Full,
				Half:    asg.Half,
				Factors: factors,
				Term:    term,
			})
		}

		total += float64(asg.Full)*term + float64(asg.Half)*term/2
	}
	return total, nil
}

// AtomFactors computes the five factor values for one atom.  It is the
// lower-level entry point exposed for unit testing and debugging; Score is
// the one callers normally use.  An element absent from the valence table
// is reported here, before any numeric-domain failure could occur.
func AtomFactors(m *chem.Molecule, ann chem.Annotations, atom int) (Factors, error) {
	a := m.Atom(atom)
	v := ValenceElectrons(a.Element)
	if v == 0 {
		return Factors{}, errors.New(errors.ErrCodeUnsupportedElement,
			"element not in valence table").
			WithDetail(fmt.Sprintf("atom=%d element=%s", atom, a.Element))
	}
	return Factors{
		D: BranchNonEquivalence(m, atom),
		E: LocalDiversity(m, atom),
		S: IsomericMultiplicity(ann.Stereocenters[atom]),
		V: v,
		B: BondIndex(m, atom),
	}, nil
}

// factorTerm evaluates d·e·s·log2(V·b) with the failure policy of the
// formula: a d of zero (no non-hydrogen substituents) short-circuits to a
// zero term so an isolated heavy atom like the methane carbon contributes
// nothing, while a zero V·b on a substituted atom is surfaced as an
// explicit failure instead of reaching log2 of a non-positive value.
func factorTerm(m *chem.Molecule, atom int, f Factors) (float64, error) {
	if f.D == 0 {
		return 0, nil
	}
	if f.B <= 0 {
		return 0, errors.New(errors.ErrCodeDegenerateBondIndex,
			"bond index is zero for substituted atom").
			WithDetail(fmt.Sprintf("atom=%d element=%s", atom, m.Atom(atom).Element))
	}
	return float64(f.D*f.E*f.S) * math.Log2(float64(f.V*f.B)), nil
}
