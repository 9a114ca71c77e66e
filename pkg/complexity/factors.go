package complexity

import (
	"github.com/boskovicgroup/bottchercomplexity/pkg/chem"
)

// valenceElectrons maps an element symbol to its neutral valence-electron
// count, keyed by periodic-table group: alkali metals 1, alkaline earths 2,
// boron group 3, carbon group 4, pnictogens 5, chalcogens 6, halogens 7,
// noble gases 8.  Symbols absent from the table yield 0, which the scorer
// surfaces as an unsupported-element failure before any log2 call.
var valenceElectrons = map[string]int{
	"H": 1, "Li": 1, "Na": 1, "K": 1, "Rb": 1, "Cs": 1, "Fr": 1,
	"Be": 2, "Mg": 2, "Ca": 2, "Sr": 2, "Ba": 2, "Ra": 2,
	"B": 3, "Al": 3, "Ga": 3, "In": 3, "Tl": 3,
	"C": 4, "Si": 4, "Ge": 4, "Sn": 4, "Pb": 4,
	"N": 5, "P": 5, "As": 5, "Sb": 5, "Bi": 5,
	"O": 6, "S": 6, "Se": 6, "Te": 6, "Po": 6,
	"F": 7, "Cl": 7, "Br": 7, "I": 7, "At": 7,
	"He": 8, "Ne": 8, "Ar": 8, "Kr": 8, "Xe": 8, "Rn": 8,
}

// ValenceElectrons computes the V factor for an element symbol.
// Unsupported symbols return 0; no error is raised here.
func ValenceElectrons(element string) int {
	return valenceElectrons[element]
}

// LocalDiversity computes the e factor: the number of distinct element
// symbols among the atom's direct neighbors, plus one if the atom's own
// element is not among them.  The minimum is 1 (an isolated atom has an
// empty neighbor set, triggering the +1).  For the carbon of formamide
// (bonded to O, N, and implicit H) this yields 3.
func LocalDiversity(m *chem.Molecule, atom int) int {
	seen := make(map[string]struct{})
	for _, n := range m.Neighbors(atom) {
		seen[m.Atom(n).Element] = struct{}{}
	}
	e := len(seen)
	if _, ok := seen[m.Atom(atom).Element]; !ok {
		e++
	}
	return e
}

// IsomericMultiplicity computes the s factor from the externally supplied
// stereocenter flag: 2 for a stereocenter, 1 otherwise.
func IsomericMultiplicity(stereocenter bool) int {
	if stereocenter {
		return 2
	}
	return 1
}

// BondIndex computes the b factor: the sum over the atom's incident bonds
// of single=1, double=2, triple=3, aromatic=1, plus an element-specific
// aromatic correction added exactly once when any incident bond is aromatic
// (carbon +3, nitrogen or sulfur +2, all other elements +0).  The
// correction restores the bond order a Kekulé representation would have
// contributed, since the source toolkit reports ring bonds as a single
// undifferentiated aromatic class.
func BondIndex(m *chem.Molecule, atom int) int {
	b := 0
	aromatic := false
	for _, bond := range m.IncidentBonds(atom) {
		switch bond.Order {
		case chem.BondSingle:
			b++
		case chem.BondDouble:
			b += 2
		case chem.BondTriple:
			b += 3
		case chem.BondAromatic:
			b++
			aromatic = true
		}
	}
	if aromatic {
		switch m.Atom(atom).Element {
		case "C":
			b += 3
		case "N", "S":
			b += 2
		}
	}
	return b
}
