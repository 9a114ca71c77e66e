package complexity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/boskovicgroup/bottchercomplexity/pkg/chem"
)

func TestValenceElectrons(t *testing.T) {
	tests := []struct {
		element string
		want    int
	}{
		{"H", 1}, {"Na", 1},
		{"Mg", 2},
		{"B", 3},
		{"C", 4}, {"Si", 4},
		{"N", 5}, {"P", 5},
		{"O", 6}, {"S", 6},
		{"F", 7}, {"Cl", 7}, {"Br", 7}, {"I", 7},
		{"Xe", 8},
		{"Fe", 0}, // transition metals are unsupported
		{"", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValenceElectrons(tt.element), "element %q", tt.element)
	}
}

func TestLocalDiversity(t *testing.T) {
	// Formamide carbon bonded to O and N: two neighbor elements plus the
	// atom's own carbon not among them gives the reference value 3.
	formamide := mustMolecule(t,
		[]chem.Atom{{Element: "C"}, {Element: "O"}, {Element: "N"}},
		[]chem.Bond{
			{From: 0, To: 1, Order: chem.BondDouble},
			{From: 0, To: 2, Order: chem.BondSingle},
		},
	)
	assert.Equal(t, 3, LocalDiversity(formamide, 0))
	assert.Equal(t, 2, LocalDiversity(formamide, 1))
	assert.Equal(t, 2, LocalDiversity(formamide, 2))

	// Isolated atom: empty neighbor set still counts the atom itself.
	lone := mustMolecule(t, carbons(1), nil)
	assert.Equal(t, 1, LocalDiversity(lone, 0))

	// Carbon among carbons: no +1.
	ethane := mustMolecule(t, carbons(2), []chem.Bond{{From: 0, To: 1, Order: chem.BondSingle}})
	assert.Equal(t, 1, LocalDiversity(ethane, 0))
}

func TestLocalDiversity_Bounds(t *testing.T) {
	m := mustMolecule(t,
		[]chem.Atom{{Element: "C"}, {Element: "O"}, {Element: "N"}, {Element: "Cl"}},
		[]chem.Bond{
			{From: 0, To: 1, Order: chem.BondSingle},
			{From: 0, To: 2, Order: chem.BondSingle},
			{From: 0, To: 3, Order: chem.BondSingle},
		},
	)
	for i := 0; i < m.NumAtoms(); i++ {
		e := LocalDiversity(m, i)
		distinct := make(map[string]struct{})
		for _, n := range m.Neighbors(i) {
			distinct[m.Atom(n).Element] = struct{}{}
		}
		assert.GreaterOrEqual(t, e, 1)
		assert.LessOrEqual(t, e, len(distinct)+1)
	}
}

func TestIsomericMultiplicity(t *testing.T) {
	assert.Equal(t, 2, IsomericMultiplicity(true))
	assert.Equal(t, 1, IsomericMultiplicity(false))
}

func TestBondIndex(t *testing.T) {
	// Formamide: the carbonyl carbon has one double and one single bond.
	formamide := mustMolecule(t,
		[]chem.Atom{{Element: "C"}, {Element: "O"}, {Element: "N"}},
		[]chem.Bond{
			{From: 0, To: 1, Order: chem.BondDouble},
			{From: 0, To: 2, Order: chem.BondSingle},
		},
	)
	assert.Equal(t, 3, BondIndex(formamide, 0))
	assert.Equal(t, 2, BondIndex(formamide, 1))
	assert.Equal(t, 1, BondIndex(formamide, 2))

	// Acetonitrile-like triple bond.
	nitrile := mustMolecule(t,
		[]chem.Atom{{Element: "C"}, {Element: "N"}},
		[]chem.Bond{{From: 0, To: 1, Order: chem.BondTriple}},
	)
	assert.Equal(t, 3, BondIndex(nitrile, 0))

	// No bonds at all.
	lone := mustMolecule(t, carbons(1), nil)
	assert.Equal(t, 0, BondIndex(lone, 0))
}

func TestBondIndex_AromaticCorrection(t *testing.T) {
	// Benzene carbon: two aromatic bonds count 1 each, plus the carbon
	// correction of 3, applied once regardless of how many incident bonds
	// are aromatic.
	benzene := mustMolecule(t, carbons(6), ringBonds(6, chem.BondAromatic))
	for i := 0; i < 6; i++ {
		assert.Equal(t, 5, BondIndex(benzene, i))
	}

	// Pyridine nitrogen: correction is +2 for N.
	pyridine := mustMolecule(t,
		append(carbons(5), chem.Atom{Element: "N"}),
		ringBonds(6, chem.BondAromatic),
	)
	assert.Equal(t, 4, BondIndex(pyridine, 5))

	// An aromatic oxygen (furan-like) gets no correction.
	furan := mustMolecule(t,
		append(carbons(4), chem.Atom{Element: "O"}),
		ringBonds(5, chem.BondAromatic),
	)
	assert.Equal(t, 2, BondIndex(furan, 4))
}
