/*
 * hydrogens.go, part of gostereo.
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

// AddHydrogens returns a copy of M in which every implicit hydrogen has
// become an explicit atom with a single bond to its heavy atom. Hydrogens are
// appended after all heavy atoms, so heavy-atom indices are preserved.
// Embedding and energy evaluation require explicit hydrogens.
//
// Tetrahedral parities are restated for the new neighbor keys: the implicit
// hydrogen used to be keyed by the center's own index, the explicit one is
// keyed by its appended index, and if swapping those keys permutes the sorted
// reference order oddly, the stored parity flips so the described
// configuration is unchanged.
func AddHydrogens(M *Molecule) *Molecule {
	N := M.Copy()
	heavy := N.Len()
	for i := 0; i < heavy; i++ {
		at := N.Atoms[i]
		nH := at.Implicit
		if nH == 0 {
			continue
		}
		var oldRef []int
		fixParity := at.Parity != ParityNone && nH == 1
		if fixParity {
			oldRef = at.RefNeighbors()
		}
		at.Implicit = 0
		firstH := -1
		for h := 0; h < nH; h++ {
			hat := N.AddAtom(&Atom{Symbol: "H"})
			if firstH == -1 {
				firstH = hat.Index
			}
			N.NewBond(at, hat, Single)
		}
		if fixParity {
			got := make([]int, len(oldRef))
			for k, v := range oldRef {
				if v == at.Index { //the phantom key of the implicit H
					got[k] = firstH
				} else {
					got[k] = v
				}
			}
			newRef := at.RefNeighbors()
			if OrderParity(newRef, got) < 0 {
				at.Parity = at.Parity.Inverted()
			}
		}
	}
	return N
}
