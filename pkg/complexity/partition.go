// Package complexity implements the Böttcher additive atom-contribution
// complexity score.  Each selected atom contributes d·e·s·log2(V·b), where
// d is the substituent-branch non-equivalence, e the local elemental
// diversity, s the isomeric multiplicity, V the neutral valence-electron
// count, and b the bond-order index.  Chemically equivalent atoms, grouped
// by externally supplied symmetry ranks, are jointly counted once per pair.
package complexity

import (
	"sort"
	"strings"

	"github.com/boskovicgroup/bottchercomplexity/pkg/chem"
)

// SubstituentBranches walks each substituent branch of the given atom and
// returns one label per bonded neighbor: the branch's element-symbol
// sequence.  A branch is the subgraph reached from one neighbor without
// passing back through the origin atom; unoccupied bond slots are implicit
// hydrogen and appear as empty labels only through their absence here.
//
// The walk is a breadth-first traversal with each layer's symbols sorted,
// so two equivalent branches produce identical labels regardless of which
// neighbor started the walk.  Two branches are considered equivalent iff
// their labels are equal.  This is a sequence heuristic, not subgraph
// isomorphism: constitutional isomers of equal length and elemental
// composition (cyclopentyl vs. n-pentyl) compare equal.  This limitation is
// inherited from the reference behavior and is intentionally preserved.
func SubstituentBranches(m *chem.Molecule, atom int) []string {
	neighbors := m.Neighbors(atom)
	labels := make([]string, 0, len(neighbors))
	for _, n := range neighbors {
		labels = append(labels, branchLabel(m, atom, n))
	}
	return labels
}

// branchLabel traverses the branch rooted at start, never revisiting the
// origin atom, and renders it as sorted per-layer element symbols.  The
// origin guard is what keeps the walk finite in ring systems.
func branchLabel(m *chem.Molecule, origin, start int) string {
	visited := make(map[int]bool, m.NumAtoms())
	visited[origin] = true
	visited[start] = true

	frontier := []int{start}
	var layers []string
	for len(frontier) > 0 {
		symbols := make([]string, len(frontier))
		for i, a := range frontier {
			symbols[i] = m.Atom(a).Element
		}
		sort.Strings(symbols)
		layers = append(layers, strings.Join(symbols, ","))

		var next []int
		for _, a := range frontier {
			for _, nb := range m.Neighbors(a) {
				if !visited[nb] {
					visited[nb] = true
					next = append(next, nb)
				}
			}
		}
		frontier = next
	}
	return strings.Join(layers, "|")
}

// BranchNonEquivalence computes the d factor: the number of distinct
// non-empty branch labels among the atom's substituent branches.  Implicit
// hydrogen branches are empty and never counted, so an atom with no
// non-hydrogen neighbors has d = 0.
func BranchNonEquivalence(m *chem.Molecule, atom int) int {
	distinct := make(map[string]struct{})
	for _, label := range SubstituentBranches(m, atom) {
		if label != "" {
			distinct[label] = struct{}{}
		}
	}
	return len(distinct)
}
