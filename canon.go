/*
 * canon.go, part of gostereo.
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
	"hash/fnv"
	"sort"
)

//Morgan-style canonical atom ranking. The ranks returned here drive the
//canonical SMILES writer and the de-duplication of enumerated stereoisomers.
//The invariants are stereo-agnostic: two stereoisomers of the same graph get
//identical ranks, so their canonical strings differ only in the stereo
//markers.

func hash64(vals ...uint64) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	for _, v := range vals {
		buf[0] = byte(v)
		buf[1] = byte(v >> 8)
		buf[2] = byte(v >> 16)
		buf[3] = byte(v >> 24)
		buf[4] = byte(v >> 32)
		buf[5] = byte(v >> 40)
		buf[6] = byte(v >> 48)
		buf[7] = byte(v >> 56)
		h.Write(buf[:])
	}
	return h.Sum64()
}

//the seed invariant of one atom, from local properties only.
func atomInvariant(M *Molecule, at *Atom) uint64 {
	var arom, ring uint64
	if at.Aromatic {
		arom = 1
	}
	if M.AtomInRing(at.Index) {
		ring = 1
	}
	return hash64(
		uint64(SymbolNumber(at.Symbol)),
		uint64(at.Degree()),
		uint64(at.Implicit),
		uint64(int64(at.Charge)+16), //avoid negative wrap
		arom,
		ring,
	)
}

//one Morgan refinement round: each invariant absorbs the sorted multiset of
//(bond order, invariant) pairs of its neighbors.
func refineRound(M *Molecule, inv []uint64) []uint64 {
	next := make([]uint64, len(inv))
	for i, at := range M.Atoms {
		neigh := make([]uint64, 0, len(at.Bonds))
		for _, b := range at.Bonds {
			neigh = append(neigh, hash64(uint64(b.Order), inv[b.Cross(at).Index]))
		}
		sort.Slice(neigh, func(a, b int) bool { return neigh[a] < neigh[b] })
		next[i] = hash64(append([]uint64{inv[i]}, neigh...)...)
	}
	return next
}

func classCount(inv []uint64) int {
	seen := make(map[uint64]struct{}, len(inv))
	for _, v := range inv {
		seen[v] = struct{}{}
	}
	return len(seen)
}

//denseRanks maps invariants to 0-based dense ranks by invariant value.
func denseRanks(inv []uint64) []int {
	uniq := make([]uint64, 0, len(inv))
	seen := make(map[uint64]struct{}, len(inv))
	for _, v := range inv {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			uniq = append(uniq, v)
		}
	}
	sort.Slice(uniq, func(a, b int) bool { return uniq[a] < uniq[b] })
	rank := make(map[uint64]int, len(uniq))
	for i, v := range uniq {
		rank[v] = i
	}
	out := make([]int, len(inv))
	for i, v := range inv {
		out[i] = rank[v]
	}
	return out
}

const tieBreakSalt = 0x9e3779b97f4a7c15

//maxTieVariants caps the tie-break branching of CanonicalRankings. Highly
//symmetric graphs past the cap lose variants, never correctness: the first
//variant is always the lowest-index tie-break that CanonicalRanks uses.
const maxTieVariants = 64

//refineInv runs Morgan rounds until the class count stops growing and
//returns the refined slice, which may alias the input.
func refineInv(M *Molecule, inv []uint64) []uint64 {
	classes := classCount(inv)
	for round := 0; round < len(inv); round++ {
		next := refineRound(M, inv)
		nc := classCount(next)
		if nc <= classes {
			break
		}
		inv = next
		classes = nc
	}
	return inv
}

//lowestTiedClass returns the atom indices, ascending, of the lowest rank
//class holding more than one atom, or nil when every rank is unique.
func lowestTiedClass(ranks []int) []int {
	byRank := make(map[int][]int)
	for i, r := range ranks {
		byRank[r] = append(byRank[r], i)
	}
	tied := -1
	for r, atoms := range byRank {
		if len(atoms) > 1 && (tied == -1 || r < tied) {
			tied = r
		}
	}
	if tied == -1 {
		return nil
	}
	atoms := byRank[tied]
	sort.Ints(atoms)
	return atoms
}

func seedInvariants(M *Molecule) []uint64 {
	inv := make([]uint64, M.Len())
	for i, at := range M.Atoms {
		inv[i] = atomInvariant(M, at)
	}
	return inv
}

// CanonicalRanks returns a 0-based rank per atom, refined until every rank is
// unique. Remaining ties after invariant refinement (symmetry-equivalent
// atoms) are broken deterministically by atom index, lowest rank class first,
// so repeated calls on equal graphs with equal atom numbering always agree.
// The ranking is not automorphism-invariant; callers that need a
// symmetry-independent result compare over CanonicalRankings instead.
func CanonicalRanks(M *Molecule) []int {
	n := M.Len()
	if n == 0 {
		return nil
	}
	inv := refineInv(M, seedInvariants(M))
	for classCount(inv) < n {
		atoms := lowestTiedClass(denseRanks(inv))
		inv[atoms[0]] = hash64(inv[atoms[0]], tieBreakSalt)
		inv = refineInv(M, inv)
	}
	return denseRanks(inv)
}

// CanonicalRankings returns every rank assignment reachable by trying each
// member of a tied class as the distinguished atom, recursively. Two atom
// numberings of the same graph that differ by an automorphism yield rankings
// covering the same set of abstract orderings, which is what lets a
// serializer pick one representative string for symmetry-degenerate stereo
// assignments (a meso pair collapses to one canonical form). The output is
// capped at maxTieVariants entries; asymmetric graphs return exactly one.
func CanonicalRankings(M *Molecule) [][]int {
	if M.Len() == 0 {
		return nil
	}
	n := M.Len()
	var out [][]int
	var walk func(inv []uint64)
	walk = func(inv []uint64) {
		inv = refineInv(M, inv)
		if classCount(inv) == n {
			out = append(out, denseRanks(inv))
			return
		}
		for _, a := range lowestTiedClass(denseRanks(inv)) {
			if len(out) >= maxTieVariants {
				return
			}
			next := append([]uint64(nil), inv...)
			next[a] = hash64(next[a], tieBreakSalt)
			walk(next)
		}
	}
	walk(seedInvariants(M))
	return out
}

// BranchHash fingerprints the branch of the molecule reachable from start
// without crossing center. Two neighbors of center with different BranchHash
// values are distinguishable substituents; four pairwise-distinct hashes make
// center a stereocenter candidate. The fingerprint is a breadth-first
// distance profile: per BFS layer, the sorted multiset of atom invariants,
// all folded into one hash together with the order of the center-start bond.
func BranchHash(M *Molecule, center, start *Atom) uint64 {
	n := M.Len()
	dist := make([]int, n)
	for i := range dist {
		dist[i] = -1
	}
	dist[start.Index] = 0
	queue := []int{start.Index}
	maxd := 0
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, b := range M.Atoms[cur].Bonds {
			to := b.Cross(M.Atoms[cur]).Index
			if to == center.Index || dist[to] != -1 {
				continue
			}
			dist[to] = dist[cur] + 1
			if dist[to] > maxd {
				maxd = dist[to]
			}
			queue = append(queue, to)
		}
	}
	entry := M.BondBetween(center.Index, start.Index)
	h := hash64(uint64(entry.Order))
	for d := 0; d <= maxd; d++ {
		layer := make([]uint64, 0, 4)
		for i, dd := range dist {
			if dd == d {
				layer = append(layer, atomInvariant(M, M.Atoms[i]))
			}
		}
		sort.Slice(layer, func(a, b int) bool { return layer[a] < layer[b] })
		h = hash64(append([]uint64{h, uint64(d)}, layer...)...)
	}
	return h
}
