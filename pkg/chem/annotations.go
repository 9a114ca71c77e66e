package chem

import (
	"fmt"

	"github.com/boskovicgroup/bottchercomplexity/pkg/errors"
)

// Rank is an opaque, totally ordered symmetry-class handle computed by an
// external canonicalisation toolkit.  Two atoms with equal Rank are
// chemically equivalent under that toolkit's canonicalisation; the scorer
// never interprets the value beyond equality and ordering.
type Rank int64

// RankProvider supplies a canonical symmetry rank for every atom of a
// molecule, in atom enumeration order.  Any total order consistent with
// "equal rank ⇔ chemically equivalent" is acceptable.
type RankProvider interface {
	SymmetryRanks(m *Molecule) ([]Rank, error)
}

// StereoProvider supplies a stereocenter flag for every atom of a molecule,
// in atom enumeration order.
type StereoProvider interface {
	Stereocenters(m *Molecule) ([]bool, error)
}

// Annotations bundles the externally precomputed per-atom data the scorer
// consumes.  The scorer never computes these itself; incomplete annotations
// are a missing-annotation failure.
type Annotations struct {
	Ranks         []Rank
	Stereocenters []bool
}

// Validate checks that the annotations cover every atom of m.
func (a Annotations) Validate(m *Molecule) error {
	if len(a.Ranks) != m.NumAtoms() {
		return errors.New(errors.ErrCodeMissingAnnotation, "symmetry ranks do not cover all atoms").
			WithDetail(fmt.Sprintf("ranks=%d atoms=%d", len(a.Ranks), m.NumAtoms()))
	}
	if len(a.Stereocenters) != m.NumAtoms() {
		return errors.New(errors.ErrCodeMissingAnnotation, "stereocenter flags do not cover all atoms").
			WithDetail(fmt.Sprintf("flags=%d atoms=%d", len(a.Stereocenters), m.NumAtoms()))
	}
	return nil
}
