/*
 * info.go, part of gostereo.
 *
 * Copyright 2024 The gostereo authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package rank

import (
	chem "github.com/gostereo/gostereo"
	"github.com/gostereo/gostereo/smiles"
)

// MolInfo is the lightweight per-molecule summary: composition and
// connectivity of the heavy-atom graph, no 3D work involved.
type MolInfo struct {
	Success         bool         `json:"success"`
	InputNotation   string       `json:"input_notation"`
	Formula         string       `json:"formula"`
	MolecularWeight float64      `json:"molecular_weight"`
	NumAtoms        int          `json:"num_atoms"`
	NumBonds        int          `json:"num_bonds"`
	Atoms           []string     `json:"atoms"`
	Bonds           []BondRecord `json:"bonds"`
	Error           string       `json:"error,omitempty"`
}

// Info parses notation and returns its composition summary. Counts cover
// heavy atoms only; implicit hydrogens show up in the formula and the
// molecular weight. The returned error is *chem.ParseError on bad input.
func Info(notation string) (*MolInfo, error) {
	info := &MolInfo{InputNotation: notation}
	mol, err := smiles.Parse(notation)
	if err != nil {
		info.Error = err.Error()
		return info, err
	}
	info.Success = true
	info.Formula = chem.Formula(mol)
	//the parser only accepts tabulated elements, so the weight lookup
	//cannot fail here
	info.MolecularWeight, _ = chem.MolecularWeight(mol)
	info.NumAtoms = mol.Len()
	info.NumBonds = len(mol.Bonds)
	info.Atoms = make([]string, mol.Len())
	for i, at := range mol.Atoms {
		info.Atoms[i] = at.Symbol
	}
	info.Bonds = make([]BondRecord, len(mol.Bonds))
	for i, b := range mol.Bonds {
		order := int(b.Order)
		if b.Order == chem.Aromatic {
			order = 1
		}
		info.Bonds[i] = BondRecord{AtomI: b.At1.Index, AtomJ: b.At2.Index, Order: order}
	}
	return info, nil
}
