/*
 * enum.go, part of gostereo.
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

//Package enum enumerates the distinct stereoisomers of a molecular graph.
//
//Stereochemistry already present in the input is stripped first, so the
//enumeration covers every configuration, not just the one the input stated.
//Candidates that canonicalize to the same string (symmetry-degenerate
//assignments) are merged, so the output is duplicate-free.
package enum

import (
	chem "github.com/gostereo/gostereo"
	"github.com/gostereo/gostereo/smiles"
)

// Options controls the enumeration.
type Options struct {
	//MaxIsomers truncates the output after this many distinct isomers.
	//0 means no limit.
	MaxIsomers int
}

// Isomers enumerates all distinct stereoisomers of mol with default options:
// every combination, no truncation.
func Isomers(mol *chem.Molecule) ([]*chem.Molecule, error) {
	return IsomersWithOptions(mol, &Options{})
}

// IsomersWithOptions strips the stereochemistry of mol, perceives its
// stereogenic elements and returns one molecule per distinct configuration
// assignment, in a deterministic order (ascending over the assignment bit
// vectors, first-seen canonical form kept). A molecule with no stereogenic
// elements yields exactly the stripped input, never an empty slice.
func IsomersWithOptions(mol *chem.Molecule, opts *Options) ([]*chem.Molecule, error) {
	if opts == nil {
		opts = &Options{}
	}
	base := smiles.RemoveStereo(mol)
	centers, dbonds := chem.FindStereocenters(base)
	k := len(centers) + len(dbonds)
	if k == 0 {
		return []*chem.Molecule{base}, nil
	}
	if k > 30 {
		return nil, chem.NewError("enum.Isomers", "%d stereogenic elements would enumerate 2^%d candidates", k, k)
	}
	centerIdx := make([]int, len(centers))
	for i, at := range centers {
		centerIdx[i] = at.Index
	}
	dbondIdx := make([]int, len(dbonds))
	for i, b := range dbonds {
		dbondIdx[i] = b.Index
	}
	seen := make(map[string]bool)
	var out []*chem.Molecule
	for bits := 0; bits < 1<<uint(k); bits++ {
		iso := base.Copy()
		for i, ai := range centerIdx {
			if bits&(1<<uint(i)) == 0 {
				iso.Atom(ai).Parity = chem.ParityAnti
			} else {
				iso.Atom(ai).Parity = chem.ParityClock
			}
		}
		for i, bi := range dbondIdx {
			if bits&(1<<uint(len(centerIdx)+i)) == 0 {
				iso.Bond(bi).Stereo = chem.StereoCis
			} else {
				iso.Bond(bi).Stereo = chem.StereoTrans
			}
		}
		can := smiles.Write(iso)
		if seen[can] {
			continue
		}
		seen[can] = true
		out = append(out, iso)
		if opts.MaxIsomers > 0 && len(out) >= opts.MaxIsomers {
			break
		}
	}
	return out, nil
}
