package perception

import (
	"github.com/boskovicgroup/bottchercomplexity/pkg/chem"
	"github.com/boskovicgroup/bottchercomplexity/pkg/complexity"
)

// BranchStereoPerceiver flags tetrahedral carbon stereocenter candidates by
// comparing substituent branches.  A carbon qualifies when it carries four
// heavy-atom neighbors and no implicit hydrogens, or three heavy-atom
// neighbors plus exactly one implicit hydrogen, and all heavy-atom branches
// are pairwise distinct.  Atoms carrying parity information in the source
// file are not consulted; this is a purely constitutional perception with
// the same sequence-label approximation as the branch comparison it reuses.
type BranchStereoPerceiver struct{}

// NewBranchStereoPerceiver returns a ready-to-use perceiver.
func NewBranchStereoPerceiver() *BranchStereoPerceiver { return &BranchStereoPerceiver{} }

// Stereocenters implements chem.StereoProvider.
func (p *BranchStereoPerceiver) Stereocenters(m *chem.Molecule) ([]bool, error) {
	flags := make([]bool, m.NumAtoms())
	for i := 0; i < m.NumAtoms(); i++ {
		flags[i] = isStereoCandidate(m, i)
	}
	return flags, nil
}

func isStereoCandidate(m *chem.Molecule, atom int) bool {
	a := m.Atom(atom)
	if a.Element != "C" {
		return false
	}
	degree := m.Degree(atom)
	switch {
	case degree == 4 && a.ImplicitH == 0:
	case degree == 3 && a.ImplicitH == 1:
	default:
		return false
	}

	// Multiple bonds rule out tetrahedral geometry.
	for _, b := range m.IncidentBonds(atom) {
		if b.Order != chem.BondSingle {
			return false
		}
	}

	branches := complexity.SubstituentBranches(m, atom)
	seen := make(map[string]bool, len(branches))
	for _, label := range branches {
		if seen[label] {
			return false
		}
		seen[label] = true
	}
	return true
}
