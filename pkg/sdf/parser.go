// Package sdf reads molecules from MDL molfile (V2000) connection tables and
// multi-record SDF streams.  Coordinates, charges, and property blocks are
// skipped; only the element symbols and the bond table feed the molecular
// graph, with implicit hydrogens filled from standard valences afterwards.
package sdf

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/boskovicgroup/bottchercomplexity/pkg/chem"
	"github.com/boskovicgroup/bottchercomplexity/pkg/errors"
)

// Record is one molecule read from a molfile or SDF stream, together with
// the name from the first header line (often empty).
type Record struct {
	Name     string
	Molecule *chem.Molecule
}

// ParseMolString parses a single V2000 connection table from a string.
func ParseMolString(s string) (*Record, error) {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	return parseLines(lines)
}

// parseLines parses one molfile given as individual lines.  The layout is
// three header lines, the counts line, the atom block, then the bond block.
func parseLines(lines []string) (*Record, error) {
	if len(lines) < 4 {
		return nil, errors.New(errors.ErrCodeMoleculeParse, "molfile too short").
			WithDetail(fmt.Sprintf("lines=%d", len(lines)))
	}
	name := strings.TrimSpace(lines[0])

	counts := lines[3]
	if len(counts) < 6 {
		return nil, errors.New(errors.ErrCodeMoleculeParse, "counts line too short").
			WithDetail(counts)
	}
	if len(counts) >= 39 && !strings.Contains(counts[33:39], "V2000") {
		return nil, errors.New(errors.ErrCodeMoleculeParse, "unsupported connection table version").
			WithDetail(strings.TrimSpace(counts[33:39]))
	}

	atomCount, err := parseCount(counts[0:3])
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeMoleculeParse, "bad atom count").WithDetail(counts)
	}
	bondCount, err := parseCount(counts[3:6])
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeMoleculeParse, "bad bond count").WithDetail(counts)
	}
	if len(lines) < 4+atomCount+bondCount {
		return nil, errors.New(errors.ErrCodeMoleculeParse, "molfile truncated").
			WithDetail(fmt.Sprintf("need %d atom and %d bond lines, have %d lines after counts",
				atomCount, bondCount, len(lines)-4))
	}

	atoms := make([]chem.Atom, atomCount)
	for i := 0; i < atomCount; i++ {
		line := lines[4+i]
		if len(line) < 34 {
			return nil, errors.New(errors.ErrCodeMoleculeParse, "atom line too short").
				WithDetail(fmt.Sprintf("atom=%d line=%q", i+1, line))
		}
		elem := strings.TrimSpace(line[31:34])
		if elem == "" {
			return nil, errors.New(errors.ErrCodeMoleculeParse, "atom line missing element symbol").
				WithDetail(fmt.Sprintf("atom=%d", i+1))
		}
		atoms[i] = chem.Atom{Element: elem}
	}

	bonds := make([]chem.Bond, bondCount)
	for i := 0; i < bondCount; i++ {
		line := lines[4+atomCount+i]
		if len(line) < 9 {
			return nil, errors.New(errors.ErrCodeMoleculeParse, "bond line too short").
				WithDetail(fmt.Sprintf("bond=%d line=%q", i+1, line))
		}
		from, err := parseCount(line[0:3])
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeMoleculeParse, "bad bond endpoint").WithDetail(line)
		}
		to, err := parseCount(line[3:6])
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeMoleculeParse, "bad bond endpoint").WithDetail(line)
		}
		order, err := parseCount(line[6:9])
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeMoleculeParse, "bad bond order").WithDetail(line)
		}
		bondOrder := chem.BondOrder(order)
		if !bondOrder.IsValid() {
			return nil, errors.New(errors.ErrCodeMoleculeParse, "unsupported bond order").
				WithDetail(fmt.Sprintf("bond=%d order=%d", i+1, order))
		}
		// Molfile atom numbering is one-based.
		bonds[i] = chem.Bond{From: from - 1, To: to - 1, Order: bondOrder}
	}

	chem.AssignImplicitHydrogens(atoms, bonds)
	m, err := chem.NewMolecule(atoms, bonds)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeMoleculeParse, "invalid connection table")
	}
	return &Record{Name: name, Molecule: m}, nil
}

func parseCount(field string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(field))
}
