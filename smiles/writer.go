/*
 * writer.go, part of gostereo.
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

package smiles

import (
	"fmt"
	"math"
	"sort"
	"strings"

	chem "github.com/gostereo/gostereo"
)

var organicSet = map[string]bool{
	"B": true, "C": true, "N": true, "O": true, "P": true, "S": true,
	"F": true, "Cl": true, "Br": true, "I": true,
}

type writer struct {
	mol      *chem.Molecule
	ranks    []int
	b        strings.Builder
	seen     []bool
	ringBond []bool      //bonds that close a ring in the emission spanning tree
	digits   map[int]int //ring bond index -> allocated ring digit
	nextDg   int
	dirSym   map[int]int //single bond index -> +1 "/" or -1 "\" in low-to-high direction
}

// Write serializes M as a canonical SMILES string. Atom ordering is driven by
// the canonical ranks; when invariant refinement leaves symmetry-equivalent
// atoms tied, every tie-break variant is serialized and the lexicographically
// smallest string wins. Stereo assignments that differ only by a graph
// automorphism (the two numberings of a meso compound, say) therefore
// produce the same string, and two distinct stereoisomers of the same graph
// differ only in their stereo markers.
func Write(M *chem.Molecule) string {
	var best string
	for i, ranks := range chem.CanonicalRankings(M) {
		s := serialize(M, ranks)
		if i == 0 || s < best {
			best = s
		}
	}
	return best
}

func serialize(M *chem.Molecule, ranks []int) string {
	w := &writer{
		mol:      M,
		ranks:    ranks,
		seen:     make([]bool, M.Len()),
		ringBond: make([]bool, len(M.Bonds)),
		digits:   make(map[int]int),
		nextDg:   1,
		dirSym:   make(map[int]int),
	}
	w.assignDirections()
	first := true
	for {
		root := -1
		for i := range w.seen {
			if w.seen[i] {
				continue
			}
			if root == -1 || w.ranks[i] < w.ranks[root] {
				root = i
			}
		}
		if root == -1 {
			break
		}
		if !first {
			w.b.WriteByte('.')
		}
		first = false
		//spanning-tree pass first, so ring digits can be opened on the
		//earlier-emitted atom of each ring bond
		w.classify(M.Atoms[root], nil, make([]bool, M.Len()))
		w.emit(M.Atoms[root], nil)
	}
	return w.b.String()
}

//classify walks the same DFS emit will use and marks the non-tree bonds.
func (w *writer) classify(at *chem.Atom, fromBond *chem.Bond, visited []bool) {
	visited[at.Index] = true
	bonds := append([]*chem.Bond{}, at.Bonds...)
	sort.Slice(bonds, func(i, j int) bool {
		return w.ranks[bonds[i].Cross(at).Index] < w.ranks[bonds[j].Cross(at).Index]
	})
	for _, b := range bonds {
		if fromBond != nil && b.Index == fromBond.Index {
			continue
		}
		to := b.Cross(at)
		if visited[to.Index] {
			w.ringBond[b.Index] = true
			continue
		}
		w.classify(to, b, visited)
	}
}

//assignDirections picks / and \ symbols for the single bonds around every
//assigned stereogenic double bond. Each bond stores the symbol it gets when
//written from its lower-index atom to its higher-index one; emit flips the
//symbol when it writes the bond the other way.
func (w *writer) assignDirections() {
	//side of neighbor n relative to double-bond end a, derived from the
	//stored low-to-high symbol s: writing n->a with "/" puts n below.
	sideOf := func(n, a *chem.Atom, s int) int {
		if n.Index < a.Index {
			return -s
		}
		return s
	}
	symFor := func(n, a *chem.Atom, side int) int {
		if n.Index < a.Index {
			return -side
		}
		return side
	}
	for _, b := range w.mol.Bonds {
		if b.Stereo == chem.StereoNone {
			continue
		}
		ra := b.RefSubstituent(b.At1)
		rb := b.RefSubstituent(b.At2)
		if ra == nil || rb == nil {
			continue
		}
		//desired sides: reference of At1 below, the rest follows
		want := make(map[int]int) //single bond index -> desired side of its far neighbor
		ends := []*chem.Atom{b.At1, b.At2}
		refs := []*chem.Atom{ra, rb}
		refSide := []int{-1, -1}
		if b.Stereo == chem.StereoTrans {
			refSide[1] = 1
		}
		ok := true
		for e, end := range ends {
			for _, sb := range end.Bonds {
				if sb.Index == b.Index || sb.Order != chem.Single {
					continue
				}
				n := sb.Cross(end)
				s := refSide[e]
				if n.Index != refs[e].Index {
					s = -s
				}
				want[sb.Index] = s
			}
		}
		//honor any assignment already made for a conjugated neighbor bond,
		//flipping the whole double bond's sides if needed
		flip := 1
		for sbi, s := range want {
			if have, assigned := w.dirSym[sbi]; assigned {
				sb := w.mol.Bond(sbi)
				end := sb.At1
				if end.Index != b.At1.Index && end.Index != b.At2.Index {
					end = sb.At2
				}
				n := sb.Cross(end)
				if sideOf(n, end, have) != s {
					flip = -1
				}
				break
			}
		}
		for sbi, s := range want {
			sb := w.mol.Bond(sbi)
			end := sb.At1
			if end.Index != b.At1.Index && end.Index != b.At2.Index {
				end = sb.At2
			}
			n := sb.Cross(end)
			sym := symFor(n, end, s*flip)
			if have, assigned := w.dirSym[sbi]; assigned && have != sym {
				ok = false //conflicting conjugation, leave this bond unmarked
			}
		}
		if !ok {
			continue
		}
		for sbi, s := range want {
			sb := w.mol.Bond(sbi)
			end := sb.At1
			if end.Index != b.At1.Index && end.Index != b.At2.Index {
				end = sb.At2
			}
			n := sb.Cross(end)
			w.dirSym[sbi] = symFor(n, end, s*flip)
		}
	}
}

func (w *writer) bondToken(b *chem.Bond, from, to *chem.Atom) string {
	switch b.Order {
	case chem.Double:
		return "="
	case chem.Triple:
		return "#"
	case chem.Aromatic:
		if from.Aromatic && to.Aromatic {
			return ""
		}
		//an aromatic-order bond outside an aromatic system only survives a
		//round trip with its explicit token
		return ":"
	}
	if s, ok := w.dirSym[b.Index]; ok {
		if from.Index > to.Index {
			s = -s
		}
		if s > 0 {
			return "/"
		}
		return "\\"
	}
	if from.Aromatic && to.Aromatic {
		return "-" //explicit single between two aromatic atoms
	}
	return ""
}

//emit writes the subtree rooted at at, entered through fromBond (nil at a
//component root).
func (w *writer) emit(at *chem.Atom, fromBond *chem.Bond) {
	w.seen[at.Index] = true
	//classify bonds: parent, ring closures/openings, children; children
	//ordered by canonical rank
	type edge struct {
		b  *chem.Bond
		to *chem.Atom
	}
	var ringEdges, children []edge
	for _, b := range at.Bonds {
		if fromBond != nil && b.Index == fromBond.Index {
			continue
		}
		to := b.Cross(at)
		if w.ringBond[b.Index] {
			ringEdges = append(ringEdges, edge{b, to})
		} else if !w.seen[to.Index] {
			children = append(children, edge{b, to})
		}
	}
	sort.Slice(ringEdges, func(i, j int) bool { return w.ranks[ringEdges[i].to.Index] < w.ranks[ringEdges[j].to.Index] })
	sort.Slice(children, func(i, j int) bool { return w.ranks[children[i].to.Index] < w.ranks[children[j].to.Index] })

	//the written neighbor order determines the chirality symbol
	var written []int
	if fromBond != nil {
		written = append(written, fromBond.Cross(at).Index)
	}
	if at.Implicit == 1 && at.Parity != chem.ParityNone {
		written = append(written, at.Index) //in-bracket H right after the parent
	}
	for _, e := range ringEdges {
		written = append(written, e.to.Index)
	}
	for _, e := range children {
		written = append(written, e.to.Index)
	}

	w.b.WriteString(w.atomToken(at, written))

	for _, e := range ringEdges {
		d, open := w.digits[e.b.Index]
		if !open {
			d = w.nextDg
			w.nextDg++
			w.digits[e.b.Index] = d
			w.b.WriteString(w.bondToken(e.b, at, e.to))
		}
		if d >= 10 {
			fmt.Fprintf(&w.b, "%%%02d", d)
		} else {
			fmt.Fprintf(&w.b, "%d", d)
		}
	}
	for i, e := range children {
		last := i == len(children)-1
		if !last {
			w.b.WriteByte('(')
		}
		w.b.WriteString(w.bondToken(e.b, at, e.to))
		w.emit(e.to, e.b)
		if !last {
			w.b.WriteByte(')')
		}
	}
}

func (w *writer) atomToken(at *chem.Atom, written []int) string {
	sym := at.Symbol
	if at.Aromatic {
		sym = strings.ToLower(sym)
	}
	needBracket := at.Charge != 0 || at.Parity != chem.ParityNone ||
		!organicSet[at.Symbol] || at.Implicit != w.wouldImplicit(at)
	if !needBracket {
		return sym
	}
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(sym)
	if at.Parity != chem.ParityNone && len(written) == 4 {
		ref := at.RefNeighbors()
		par := chem.OrderParity(ref, written)
		anti := at.Parity == chem.ParityAnti
		if par < 0 {
			anti = !anti
		}
		if anti {
			b.WriteByte('@')
		} else {
			b.WriteString("@@")
		}
	}
	if at.Implicit == 1 {
		b.WriteByte('H')
	} else if at.Implicit > 1 {
		fmt.Fprintf(&b, "H%d", at.Implicit)
	}
	if at.Charge != 0 {
		if at.Charge > 0 {
			b.WriteByte('+')
		} else {
			b.WriteByte('-')
		}
		if abs := int(math.Abs(float64(at.Charge))); abs > 1 {
			fmt.Fprintf(&b, "%d", abs)
		}
	}
	b.WriteByte(']')
	return b.String()
}

//wouldImplicit is the implicit hydrogen count a bare organic-subset token
//would be assigned on re-parse; writing relies on it to decide whether the
//stored count needs spelling out.
func (w *writer) wouldImplicit(at *chem.Atom) int {
	v, ok := chem.DefaultValence(at.Symbol, at.Charge)
	if !ok {
		return 0
	}
	used := int(math.Round(at.BondValence()))
	if v > used {
		return v - used
	}
	return 0
}
