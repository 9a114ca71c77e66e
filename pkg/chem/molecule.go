package chem

import (
	"fmt"

	"github.com/boskovicgroup/bottchercomplexity/pkg/errors"
)

// Molecule is the read-only molecular graph handed to the scorer.  Every
// bond's endpoints are validated at construction; the atom and bond sets and
// the derived adjacency are immutable afterwards, so a Molecule may be
// scored from multiple goroutines concurrently.
type Molecule struct {
	atoms []Atom
	bonds []Bond

	// neighbors[i] lists the atom indices bonded to atom i, in bond
	// declaration order.
	neighbors [][]int

	// incident[i] lists indices into bonds for the bonds touching atom i.
	incident [][]int
}

// NewMolecule validates the atom and bond sets and builds the adjacency.
// It returns a malformed-molecule error when a bond references an atom
// outside the atom set, a self-loop, or an unknown order class.  Atom Index
// fields are (re)assigned to positional order; callers need not set them.
func NewMolecule(atoms []Atom, bonds []Bond) (*Molecule, error) {
	m := &Molecule{
		atoms:     make([]Atom, len(atoms)),
		bonds:     make([]Bond, len(bonds)),
		neighbors: make([][]int, len(atoms)),
		incident:  make([][]int, len(atoms)),
	}
	copy(m.atoms, atoms)
	copy(m.bonds, bonds)

	for i := range m.atoms {
		if m.atoms[i].Element == "" {
			return nil, errors.New(errors.ErrCodeMalformedMolecule, "atom has empty element symbol").
				WithDetail(fmt.Sprintf("atom=%d", i))
		}
		m.atoms[i].Index = i
	}

	for bi, b := range m.bonds {
		if b.From < 0 || b.From >= len(m.atoms) || b.To < 0 || b.To >= len(m.atoms) {
			return nil, errors.New(errors.ErrCodeMalformedMolecule, "bond references unknown atom").
				WithDetail(fmt.Sprintf("bond=%d from=%d to=%d atoms=%d", bi, b.From, b.To, len(m.atoms)))
		}
		if b.From == b.To {
			return nil, errors.New(errors.ErrCodeMalformedMolecule, "bond is a self-loop").
				WithDetail(fmt.Sprintf("bond=%d atom=%d", bi, b.From))
		}
		if !b.Order.IsValid() {
			return nil, errors.New(errors.ErrCodeMalformedMolecule, "bond has unknown order class").
				WithDetail(fmt.Sprintf("bond=%d order=%d", bi, int(b.Order)))
		}
		m.neighbors[b.From] = append(m.neighbors[b.From], b.To)
		m.neighbors[b.To] = append(m.neighbors[b.To], b.From)
		m.incident[b.From] = append(m.incident[b.From], bi)
		m.incident[b.To] = append(m.incident[b.To], bi)
	}

	return m, nil
}

// NumAtoms returns the number of atoms.
func (m *Molecule) NumAtoms() int { return len(m.atoms) }

// NumBonds returns the number of bonds.
func (m *Molecule) NumBonds() int { return len(m.bonds) }

// Atom returns the atom at the given index.
func (m *Molecule) Atom(i int) Atom { return m.atoms[i] }

// Atoms returns the atom list.  Callers must treat the slice as read-only.
func (m *Molecule) Atoms() []Atom { return m.atoms }

// Bonds returns the bond list.  Callers must treat the slice as read-only.
func (m *Molecule) Bonds() []Bond { return m.bonds }

// Neighbors returns the indices of the atoms bonded to atom i, in bond
// declaration order.  Callers must treat the slice as read-only.
func (m *Molecule) Neighbors(i int) []int { return m.neighbors[i] }

// IncidentBonds returns the bonds touching atom i.
func (m *Molecule) IncidentBonds(i int) []Bond {
	out := make([]Bond, len(m.incident[i]))
	for k, bi := range m.incident[i] {
		out[k] = m.bonds[bi]
	}
	return out
}

// Degree returns the number of declared (non-hydrogen) bonds of atom i.
func (m *Molecule) Degree(i int) int { return len(m.neighbors[i]) }
