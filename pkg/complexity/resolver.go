package complexity

import (
	"github.com/boskovicgroup/bottchercomplexity/pkg/chem"
)

// Assignment records how many full-weight and half-weight contributions a
// single atom stands in for.  Because chemically equivalent atoms yield
// identical factor values, one representative atom can carry its whole
// class without recomputing the factors per physical atom.
type Assignment struct {
	// Atom is the representative atom's index in enumeration order.
	Atom int

	// Full is the number of full-weight (1.0) contributions.
	Full int

	// Half is the number of half-weight (0.5) contributions; 0 or 1.
	Half int
}

// ResolveEquivalenceClasses decides, for each equivalence class induced by
// equal symmetry rank, how many full and half contributions to emit and
// which atom represents the class.  The pass is deterministic: atoms are
// visited in enumeration order against a working multiset of the remaining
// ranks, and the first atom of a class consumes the whole class, so each
// class is resolved exactly once.
//
// A class of size 1 yields one full assignment.  A class of size c ≥ 2
// yields ⌊c/2⌋ full and c mod 2 half assignments on its first atom; later
// atoms of the class see a zero remaining count and contribute nothing.
func ResolveEquivalenceClasses(ranks []chem.Rank) []Assignment {
	working := make(map[chem.Rank]int, len(ranks))
	for _, r := range ranks {
		working[r]++
	}

	assignments := make([]Assignment, 0, len(ranks))
	for atom, r := range ranks {
		c := working[r]
		switch {
		case c == 1:
			assignments = append(assignments, Assignment{Atom: atom, Full: 1})
		case c >= 2:
			assignments = append(assignments, Assignment{Atom: atom, Full: c / 2, Half: c % 2})
			delete(working, r)
		}
		// c == 0: class already resolved by an earlier atom.
	}
	return assignments
}
