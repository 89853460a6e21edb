/*
 * conformer.go, part of gostereo.
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

package chem

import (
	v3 "github.com/gostereo/gostereo/v3"
)

// Conformer is one concrete 3D coordinate assignment for a molecule. Mol is
// the (explicit-hydrogen) graph the coordinates belong to, with one row of
// Coords per atom. The embedder creates conformers and the force-field
// minimizer mutates their coordinates in place; after minimization finishes
// the conformer is not to be touched again.
type Conformer struct {
	Mol    *Molecule
	Coords *v3.Matrix
}

// NewConformer wires a molecule to a coordinate set, checking that the row
// count matches the atom count.
func NewConformer(mol *Molecule, coords *v3.Matrix) (*Conformer, error) {
	if coords.NVecs() != mol.Len() {
		return nil, NewError("NewConformer", "%d coordinates for %d atoms", coords.NVecs(), mol.Len())
	}
	return &Conformer{Mol: mol, Coords: coords}, nil
}

// Copy returns a conformer with the same molecule and an independent
// coordinate copy.
func (C *Conformer) Copy() *Conformer {
	return &Conformer{Mol: C.Mol, Coords: C.Coords.Copy()}
}
