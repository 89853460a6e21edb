/*
 * stereo.go, part of gostereo.
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

//Stereocenter perception from graph topology alone. Nothing here looks at
//coordinates or at already-assigned descriptors, so perception gives the same
//answer for every stereoisomer of a graph and for the stereo-stripped graph.

//the fingerprint used for an implicit hydrogen substituent.
var implicitHBranch = hash64(uint64(SymbolNumber("H")), 0xfeed)

// SubstituentHashes returns the branch fingerprints of all substituents of
// at: one per explicit bond, in bond order, plus one constant fingerprint per
// implicit hydrogen at the end.
func SubstituentHashes(M *Molecule, at *Atom) []uint64 {
	hs := make([]uint64, 0, at.TotalConnections())
	for _, b := range at.Bonds {
		hs = append(hs, BranchHash(M, at, b.Cross(at)))
	}
	for i := 0; i < at.Implicit; i++ {
		hs = append(hs, implicitHBranch)
	}
	return hs
}

func allDistinct(hs []uint64) bool {
	seen := make(map[uint64]struct{}, len(hs))
	for _, h := range hs {
		if _, ok := seen[h]; ok {
			return false
		}
		seen[h] = struct{}{}
	}
	return true
}

// IsTetrahedralCandidate reports whether at is a potential tetrahedral
// stereocenter: four sigma-bonded substituents (counting at most one implicit
// hydrogen), not aromatic, and all four substituent branches pairwise
// distinguishable.
func IsTetrahedralCandidate(M *Molecule, at *Atom) bool {
	if at.Aromatic || at.TotalConnections() != 4 || at.Implicit > 1 {
		return false
	}
	for _, b := range at.Bonds {
		if b.Order != Single {
			return false
		}
	}
	return allDistinct(SubstituentHashes(M, at))
}

// IsStereogenicDoubleBond reports whether b is a potential cis/trans
// stereogenic double bond: a non-ring, non-aromatic double bond whose ends
// each carry at least one explicit substituent besides the partner, with the
// substituents on each end distinguishable from one another.
func IsStereogenicDoubleBond(M *Molecule, b *Bond) bool {
	if b.Order != Double || M.InRing(b.Index) {
		return false
	}
	if b.At1.Aromatic || b.At2.Aromatic {
		return false
	}
	for _, end := range []*Atom{b.At1, b.At2} {
		if end.TotalConnections() > 3 {
			return false //not sp2
		}
		subs := make([]uint64, 0, 2)
		for _, eb := range end.Bonds {
			if eb.Index == b.Index {
				continue
			}
			if eb.Order != Single {
				return false //cumulated or conjugated sharing the end, skip
			}
			subs = append(subs, BranchHash(M, end, eb.Cross(end)))
		}
		if len(subs) == 0 {
			return false //only implicit hydrogens on this end
		}
		for i := 0; i < end.Implicit; i++ {
			subs = append(subs, implicitHBranch)
		}
		if !allDistinct(subs) {
			return false
		}
	}
	return true
}

// FindStereocenters returns the unassigned stereogenic elements of the graph:
// tetrahedral centers and cis/trans double bonds, each in index order.
// Already-assigned descriptors are ignored; callers that need exhaustive
// enumeration strip descriptors first (see smiles.RemoveStereo).
func FindStereocenters(M *Molecule) ([]*Atom, []*Bond) {
	var centers []*Atom
	var dbonds []*Bond
	for _, at := range M.Atoms {
		if IsTetrahedralCandidate(M, at) {
			centers = append(centers, at)
		}
	}
	for _, b := range M.Bonds {
		if IsStereogenicDoubleBond(M, b) {
			dbonds = append(dbonds, b)
		}
	}
	return centers, dbonds
}
