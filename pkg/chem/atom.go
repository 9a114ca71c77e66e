// Package chem provides the passive molecular graph model consumed by the
// complexity scorer: atoms, bonds, adjacency, and the provider contracts for
// externally computed per-atom annotations (symmetry ranks and stereocenter
// flags).  The graph is heavy-atom only; hydrogens are carried as implicit
// counts on their parent atoms.
package chem

// BondOrder classifies a bond.  Aromaticity is a distinct class because
// source toolkits report aromatic ring bonds uniformly rather than as
// alternating single/double Kekulé bonds.
type BondOrder int

const (
	BondSingle   BondOrder = 1
	BondDouble   BondOrder = 2
	BondTriple   BondOrder = 3
	BondAromatic BondOrder = 4
)

// IsValid reports whether the order is one of the four known classes.
func (o BondOrder) IsValid() bool {
	switch o {
	case BondSingle, BondDouble, BondTriple, BondAromatic:
		return true
	default:
		return false
	}
}

// String returns a human-readable name for the bond order.
func (o BondOrder) String() string {
	switch o {
	case BondSingle:
		return "single"
	case BondDouble:
		return "double"
	case BondTriple:
		return "triple"
	case BondAromatic:
		return "aromatic"
	default:
		return "unknown"
	}
}

// Atom is a single heavy atom of a molecule.  Atoms are immutable once the
// owning Molecule is constructed; the scorer only reads them.
type Atom struct {
	// Index is the atom's stable position within its molecule.  It is
	// assigned by NewMolecule and matches the enumeration order of the
	// externally supplied annotation slices.
	Index int `json:"index"`

	// Element is the element symbol as written in the source ("C", "Cl").
	Element string `json:"element"`

	// ImplicitH is the number of implicit hydrogens attached to this atom.
	// Unoccupied bond slots are implicitly hydrogen in heavy-atom graphs.
	ImplicitH int `json:"implicit_h"`
}

// Bond connects two atoms identified by their indices.
type Bond struct {
	From  int       `json:"from"`
	To    int       `json:"to"`
	Order BondOrder `json:"order"`
}

// Other returns the endpoint opposite to the given atom index.
// The result is unspecified if atom is not an endpoint of the bond.
func (b Bond) Other(atom int) int {
	if b.From == atom {
		return b.To
	}
	return b.From
}

// standardValence maps an element symbol to the valence used when filling
// implicit hydrogens.  Elements absent from the map get no implicit
// hydrogens.
var standardValence = map[string]int{
	"C": 4,
	"N": 3,
	"P": 3,
	"O": 2,
	"S": 2,
}

// AssignImplicitHydrogens fills each atom's ImplicitH from its standard
// valence minus the bond-order sum of its declared bonds.  Aromatic bonds
// count as one and a half; the total is rounded up before subtraction, so an
// aromatic benzene carbon with two ring bonds receives one implicit hydrogen.
// Call this before NewMolecule when the source format omits hydrogen counts.
func AssignImplicitHydrogens(atoms []Atom, bonds []Bond) {
	// Twice the bond-order sum per atom, so aromatic bonds stay integral.
	twiceOrder := make([]int, len(atoms))
	for _, b := range bonds {
		var w int
		switch b.Order {
		case BondAromatic:
			w = 3
		default:
			w = 2 * int(b.Order)
		}
		if b.From >= 0 && b.From < len(atoms) {
			twiceOrder[b.From] += w
		}
		if b.To >= 0 && b.To < len(atoms) {
			twiceOrder[b.To] += w
		}
	}
	for i := range atoms {
		valence, ok := standardValence[atoms[i].Element]
		if !ok {
			atoms[i].ImplicitH = 0
			continue
		}
		used := (twiceOrder[i] + 1) / 2
		if h := valence - used; h > 0 {
			atoms[i].ImplicitH = h
		} else {
			atoms[i].ImplicitH = 0
		}
	}
}
