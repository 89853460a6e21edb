/*
 * atom.go, part of gostereo.
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
	"fmt"
	"sort"
)

// Parity is the configuration descriptor of a tetrahedral stereocenter.
// It is defined against the reference neighbor order of the atom (see
// (*Atom).RefNeighbors): looking from the first reference neighbor towards
// the center, ParityAnti means the remaining three appear counterclockwise
// (the SMILES "@" sense) and ParityClock means clockwise ("@@").
type Parity int

const (
	ParityNone Parity = iota
	ParityAnti
	ParityClock
)

// Inverted returns the opposite parity. ParityNone inverts to itself.
func (p Parity) Inverted() Parity {
	switch p {
	case ParityAnti:
		return ParityClock
	case ParityClock:
		return ParityAnti
	}
	return ParityNone
}

// BondStereo is the configuration descriptor of a stereogenic double bond,
// defined against the reference substituents of the bond (the lowest-index
// neighbor of each end, excluding the partner): StereoCis means the two
// references lie on the same side of the double bond.
type BondStereo int

const (
	StereoNone BondStereo = iota
	StereoCis
	StereoTrans
)

// Inverted returns the opposite descriptor. StereoNone inverts to itself.
func (s BondStereo) Inverted() BondStereo {
	switch s {
	case StereoCis:
		return StereoTrans
	case StereoTrans:
		return StereoCis
	}
	return StereoNone
}

// BondOrder is the order of a bond. Aromatic bonds keep their own order
// value; their fractional contribution to valence is handled where needed.
type BondOrder int

const (
	Single   BondOrder = 1
	Double   BondOrder = 2
	Triple   BondOrder = 3
	Aromatic BondOrder = 4
)

// Valence returns the contribution of a bond of this order to the valence of
// its atoms. Aromatic bonds contribute 1.5.
func (o BondOrder) Valence() float64 {
	if o == Aromatic {
		return 1.5
	}
	return float64(o)
}

// Atom is one node of a molecular graph. Coordinates are never stored here;
// they live in a Conformer. Index is the position of the atom in its
// Molecule and is filled by the Molecule constructors.
type Atom struct {
	Index    int
	Symbol   string
	Charge   int //formal charge
	Implicit int //implicit hydrogen count
	Aromatic bool
	Parity   Parity
	Bonds    []*Bond
}

// Copy returns a copy of the Atom with an empty bond list. Bonds are owned by
// the Molecule and relinked by (*Molecule).Copy.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("attempted to copy a nil atom")
	}
	newat := new(Atom)
	newat.Index = A.Index
	newat.Symbol = A.Symbol
	newat.Charge = A.Charge
	newat.Implicit = A.Implicit
	newat.Aromatic = A.Aromatic
	newat.Parity = A.Parity
	return newat
}

// Degree returns the number of explicit bonds of the atom.
func (A *Atom) Degree() int { return len(A.Bonds) }

// TotalConnections returns explicit bonds plus implicit hydrogens.
func (A *Atom) TotalConnections() int { return len(A.Bonds) + A.Implicit }

// BondValence returns the sum of the bond-order valences of the atom's
// explicit bonds.
func (A *Atom) BondValence() float64 {
	var v float64
	for _, b := range A.Bonds {
		v += b.Order.Valence()
	}
	return v
}

// RefNeighbors returns the reference neighbor keys of a (potential)
// tetrahedral center, ascending. Explicit neighbors are keyed by their atom
// index; a single implicit hydrogen is keyed by the center's own index, which
// can never collide with a neighbor's. Parity is always stated against this
// order.
func (A *Atom) RefNeighbors() []int {
	keys := make([]int, 0, A.TotalConnections())
	for _, b := range A.Bonds {
		keys = append(keys, b.Cross(A).Index)
	}
	if A.Implicit == 1 {
		keys = append(keys, A.Index)
	}
	sort.Ints(keys)
	return keys
}

// Bond is one edge of a molecular graph.
type Bond struct {
	Index  int
	At1    *Atom
	At2    *Atom
	Order  BondOrder
	Stereo BondStereo
}

// Cross returns the atom of the bond that is not origin. It panics if origin
// is not part of the bond, since that is a programming error.
func (B *Bond) Cross(origin *Atom) *Atom {
	if origin.Index == B.At1.Index {
		return B.At2
	}
	if origin.Index == B.At2.Index {
		return B.At1
	}
	panic("trying to cross a bond: the origin atom given is not present in the bond")
}

// RefSubstituent returns the reference substituent of the bond at the given
// end: the neighbor of end with the lowest index, excluding the other end of
// the bond. It returns nil if end has no such neighbor.
func (B *Bond) RefSubstituent(end *Atom) *Atom {
	other := B.Cross(end)
	var ref *Atom
	for _, b := range end.Bonds {
		n := b.Cross(end)
		if n.Index == other.Index {
			continue
		}
		if ref == nil || n.Index < ref.Index {
			ref = n
		}
	}
	return ref
}

// Molecule is a molecular graph: a slice of atoms and a slice of bonds, with
// adjacency stored in the atoms themselves. Once returned by a constructor or
// by Copy, a Molecule is not to be mutated; the enumeration and hydrogen
// expansion code always works on copies.
type Molecule struct {
	Atoms []*Atom
	Bonds []*Bond

	ringBonds []bool //lazily computed, nil until first use
}

// NewMolecule returns an empty molecule.
func NewMolecule() *Molecule {
	return &Molecule{Atoms: make([]*Atom, 0, 10), Bonds: make([]*Bond, 0, 10)}
}

// Len returns the number of atoms in the molecule.
func (M *Molecule) Len() int { return len(M.Atoms) }

// Atom returns the atom at index i. It panics if out of range.
func (M *Molecule) Atom(i int) *Atom {
	if i < 0 || i >= len(M.Atoms) {
		panic(fmt.Sprintf("molecule: requested atom %d out of bounds (%d)", i, len(M.Atoms)))
	}
	return M.Atoms[i]
}

// Bond returns the bond at index i. It panics if out of range.
func (M *Molecule) Bond(i int) *Bond {
	if i < 0 || i >= len(M.Bonds) {
		panic(fmt.Sprintf("molecule: requested bond %d out of bounds (%d)", i, len(M.Bonds)))
	}
	return M.Bonds[i]
}

// AddAtom appends at to the molecule, filling its Index, and returns it.
func (M *Molecule) AddAtom(at *Atom) *Atom {
	at.Index = len(M.Atoms)
	M.Atoms = append(M.Atoms, at)
	M.ringBonds = nil
	return at
}

// NewBond creates a bond between at1 and at2 with the given order, links it
// into both atoms and returns it. It panics if the atoms are identical or if
// they are already bonded, both of which indicate a malformed input graph and
// are reported by the parser before this point.
func (M *Molecule) NewBond(at1, at2 *Atom, order BondOrder) *Bond {
	if at1.Index == at2.Index {
		panic("molecule: attempted self-bond")
	}
	for _, b := range at1.Bonds {
		if b.Cross(at1).Index == at2.Index {
			panic("molecule: attempted duplicate bond")
		}
	}
	b := &Bond{Index: len(M.Bonds), At1: at1, At2: at2, Order: order}
	at1.Bonds = append(at1.Bonds, b)
	at2.Bonds = append(at2.Bonds, b)
	M.Bonds = append(M.Bonds, b)
	M.ringBonds = nil
	return b
}

// Bonded reports whether atoms i and j share a bond.
func (M *Molecule) Bonded(i, j int) bool {
	for _, b := range M.Atom(i).Bonds {
		if b.Cross(M.Atom(i)).Index == j {
			return true
		}
	}
	return false
}

// BondBetween returns the bond between atoms i and j, or nil.
func (M *Molecule) BondBetween(i, j int) *Bond {
	for _, b := range M.Atom(i).Bonds {
		if b.Cross(M.Atom(i)).Index == j {
			return b
		}
	}
	return nil
}

// Copy returns a deep copy of the molecule: fresh atoms, fresh bonds, fresh
// adjacency.
func (M *Molecule) Copy() *Molecule {
	N := NewMolecule()
	for _, at := range M.Atoms {
		N.AddAtom(at.Copy())
	}
	for _, b := range M.Bonds {
		nb := N.NewBond(N.Atoms[b.At1.Index], N.Atoms[b.At2.Index], b.Order)
		nb.Stereo = b.Stereo
	}
	return N
}

// InRing reports whether the bond with index bi belongs to a cycle. A bond is
// in a ring exactly when it is not a bridge of the graph; bridges are found
// with one DFS over each connected component.
func (M *Molecule) InRing(bi int) bool {
	if M.ringBonds == nil {
		M.findRingBonds()
	}
	return M.ringBonds[bi]
}

// AtomInRing reports whether atom i belongs to any cycle.
func (M *Molecule) AtomInRing(i int) bool {
	for _, b := range M.Atom(i).Bonds {
		if M.InRing(b.Index) {
			return true
		}
	}
	return false
}

// findRingBonds marks every non-bridge bond. Standard lowlink bridge finding,
// iterative to keep deep chains from blowing the stack.
func (M *Molecule) findRingBonds() {
	n := len(M.Atoms)
	M.ringBonds = make([]bool, len(M.Bonds))
	for i := range M.ringBonds {
		M.ringBonds[i] = true
	}
	disc := make([]int, n)
	low := make([]int, n)
	for i := range disc {
		disc[i] = -1
	}
	timer := 0
	type frame struct {
		at     int
		inBond int //bond used to reach at, -1 at roots
		next   int //next bond of at to look at
	}
	for root := 0; root < n; root++ {
		if disc[root] != -1 {
			continue
		}
		stack := []frame{{at: root, inBond: -1}}
		disc[root] = timer
		low[root] = timer
		timer++
		for len(stack) > 0 {
			f := &stack[len(stack)-1]
			at := M.Atoms[f.at]
			if f.next < len(at.Bonds) {
				b := at.Bonds[f.next]
				f.next++
				if b.Index == f.inBond {
					continue
				}
				to := b.Cross(at).Index
				if disc[to] == -1 {
					disc[to] = timer
					low[to] = timer
					timer++
					stack = append(stack, frame{at: to, inBond: b.Index})
				} else if disc[to] < low[f.at] {
					low[f.at] = disc[to]
				}
			} else {
				stack = stack[:len(stack)-1]
				if f.inBond != -1 {
					parent := &stack[len(stack)-1]
					if low[f.at] < low[parent.at] {
						low[parent.at] = low[f.at]
					}
					if low[f.at] > disc[parent.at] {
						M.ringBonds[f.inBond] = false //a bridge
					}
				}
			}
		}
	}
}

// permutationParity returns +1 if perm (a permutation of 0..n-1) is even and
// -1 if it is odd.
func permutationParity(perm []int) int {
	seen := make([]bool, len(perm))
	parity := 1
	for i := range perm {
		if seen[i] {
			continue
		}
		//walk the cycle containing i
		l := 0
		for j := i; !seen[j]; j = perm[j] {
			seen[j] = true
			l++
		}
		if l%2 == 0 {
			parity = -parity
		}
	}
	return parity
}

// OrderParity returns +1 or -1 depending on whether "got" is an even or odd
// permutation of "ref". Both slices must hold the same set of values; it
// panics otherwise, since mismatched neighbor sets indicate a programming
// error.
func OrderParity(ref, got []int) int {
	if len(ref) != len(got) {
		panic("orderParity: length mismatch")
	}
	pos := make(map[int]int, len(ref))
	for i, v := range ref {
		pos[v] = i
	}
	perm := make([]int, len(got))
	for i, v := range got {
		p, ok := pos[v]
		if !ok {
			panic("orderParity: value sets differ")
		}
		perm[i] = p
	}
	return permutationParity(perm)
}
