/*
 * result.go, part of gostereo.
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
)

// AtomRecord is one atom of a minimized structure, hydrogens included.
type AtomRecord struct {
	Element string  `json:"element"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Z       float64 `json:"z"`
}

// BondRecord is one bond of a minimized structure, by atom position in the
// Atoms slice. Order is 1, 2 or 3; aromatic bonds report 1.
type BondRecord struct {
	AtomI int `json:"atom_i"`
	AtomJ int `json:"atom_j"`
	Order int `json:"order"`
}

// Isomer is one ranked stereoisomer.
type Isomer struct {
	//Rank is 1-based, 1 being the most stable. Ranks are contiguous over
	//the surviving isomers regardless of how many were dropped.
	Rank     int    `json:"rank"`
	Notation string `json:"notation"`
	//Energy is the minimized force-field energy in kcal/mol. Only
	//comparable between isomers of the same input.
	Energy float64      `json:"energy_kcal_mol"`
	Atoms  []AtomRecord `json:"atoms"`
	Bonds  []BondRecord `json:"bonds"`
}

// Result is the full outcome of one pipeline run, shaped for JSON
// serialization.
type Result struct {
	Success       bool     `json:"success"`
	InputNotation string   `json:"input_notation"`
	TotalIsomers  int      `json:"total_isomers"`
	Isomers       []Isomer `json:"isomers"`
	//MostStable aliases Isomers[0] for convenience; nil on failure.
	MostStable *Isomer `json:"most_stable,omitempty"`
	Error      string  `json:"error,omitempty"`
	//Dropped counts the isomers lost to embedding or minimization failures,
	//or to cancellation.
	Dropped        int     `json:"dropped"`
	RunID          string  `json:"run_id"`
	ElapsedSeconds float64 `json:"processing_time_seconds"`
}

// Drop describes one isomer that fell out of a run. Sent on the diagnostics
// channel when the caller installs one.
type Drop struct {
	Index    int    //position in enumeration order
	Notation string //canonical notation of the dropped isomer
	Stage    string //"embed", "minimize" or "cancel"
	Err      error
}

//structureRecords flattens a conformer into the serializable atom and bond
//lists.
func structureRecords(conf *chem.Conformer) ([]AtomRecord, []BondRecord) {
	mol := conf.Mol
	atoms := make([]AtomRecord, mol.Len())
	for i, at := range mol.Atoms {
		atoms[i] = AtomRecord{
			Element: at.Symbol,
			X:       conf.Coords.At(i, 0),
			Y:       conf.Coords.At(i, 1),
			Z:       conf.Coords.At(i, 2),
		}
	}
	bonds := make([]BondRecord, len(mol.Bonds))
	for i, b := range mol.Bonds {
		order := int(b.Order)
		if b.Order == chem.Aromatic {
			order = 1
		}
		bonds[i] = BondRecord{AtomI: b.At1.Index, AtomJ: b.At2.Index, Order: order}
	}
	return atoms, bonds
}
