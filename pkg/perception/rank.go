// Package perception derives the per-atom annotations the scorer consumes
// from nothing but the molecular graph itself: symmetry ranks via iterative
// invariant refinement and stereocenter flags via substituent-branch
// comparison.  Both perceivers are stateless and safe for concurrent use.
package perception

import (
	"fmt"
	"sort"
	"strings"

	"github.com/boskovicgroup/bottchercomplexity/pkg/chem"
)

// MorganRanker assigns symmetry ranks by iterative refinement of local
// invariants, in the spirit of Morgan's extended-connectivity algorithm.
// Atoms that remain in the same class after refinement stabilises receive
// the same rank; the rank values themselves carry no meaning beyond
// equality and ordering.
type MorganRanker struct{}

// NewMorganRanker returns a ready-to-use ranker.
func NewMorganRanker() *MorganRanker { return &MorganRanker{} }

// SymmetryRanks implements chem.RankProvider.
func (r *MorganRanker) SymmetryRanks(m *chem.Molecule) ([]chem.Rank, error) {
	n := m.NumAtoms()
	ranks := initialRanks(m)
	if n <= 1 {
		return ranks, nil
	}

	classes := countClasses(ranks)
	// Each round folds the sorted neighbor ranks into the atom's own rank.
	// The class count is monotonically non-decreasing and bounded by n, so
	// the loop terminates in at most n rounds.
	for round := 0; round < n; round++ {
		next := refineRanks(m, ranks)
		nextClasses := countClasses(next)
		if nextClasses == classes {
			break
		}
		ranks = next
		classes = nextClasses
	}
	return ranks, nil
}

// initialRanks seeds each atom with a rank derived from its immediate
// constitution: element, degree, bond-order sum, aromatic membership, and
// implicit hydrogen count.
func initialRanks(m *chem.Molecule) []chem.Rank {
	keys := make([]string, m.NumAtoms())
	for i := 0; i < m.NumAtoms(); i++ {
		a := m.Atom(i)
		orderSum := 0
		aromatic := false
		for _, b := range m.IncidentBonds(i) {
			if b.Order == chem.BondAromatic {
				aromatic = true
				orderSum++
			} else {
				orderSum += int(b.Order)
			}
		}
		keys[i] = fmt.Sprintf("%s|%d|%d|%t|%d", a.Element, m.Degree(i), orderSum, aromatic, a.ImplicitH)
	}
	return ranksFromKeys(keys)
}

// refineRanks produces the next refinement generation: each atom's key is
// its current rank extended with the sorted ranks of its neighbors.
func refineRanks(m *chem.Molecule, ranks []chem.Rank) []chem.Rank {
	keys := make([]string, len(ranks))
	for i := range keys {
		neighborRanks := make([]int, 0, m.Degree(i))
		for _, nb := range m.Neighbors(i) {
			neighborRanks = append(neighborRanks, int(ranks[nb]))
		}
		sort.Ints(neighborRanks)

		var sb strings.Builder
		fmt.Fprintf(&sb, "%d:", int(ranks[i]))
		for _, nr := range neighborRanks {
			fmt.Fprintf(&sb, "%d,", nr)
		}
		keys[i] = sb.String()
	}
	return ranksFromKeys(keys)
}

// ranksFromKeys converts string invariants to dense Rank values.  Equal keys
// map to equal ranks; the numeric assignment follows the sorted key order so
// the result is independent of atom enumeration within a class.
func ranksFromKeys(keys []string) []chem.Rank {
	uniq := make([]string, 0, len(keys))
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		if !seen[k] {
			seen[k] = true
			uniq = append(uniq, k)
		}
	}
	sort.Strings(uniq)

	rankOf := make(map[string]chem.Rank, len(uniq))
	for i, k := range uniq {
		rankOf[k] = chem.Rank(i)
	}

	out := make([]chem.Rank, len(keys))
	for i, k := range keys {
		out[i] = rankOf[k]
	}
	return out
}

// countClasses returns the number of distinct rank values.
func countClasses(ranks []chem.Rank) int {
	seen := make(map[chem.Rank]bool, len(ranks))
	for _, r := range ranks {
		seen[r] = true
	}
	return len(seen)
}
