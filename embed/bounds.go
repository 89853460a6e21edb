/*
 * bounds.go, part of gostereo.
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

package embed

import (
	"math"

	chem "github.com/gostereo/gostereo"
)

//bond-length contraction factors per bond order, applied to the sum of
//covalent radii. Aromatic bonds sit between single and double.
func orderFactor(o chem.BondOrder) float64 {
	switch o {
	case chem.Double:
		return 0.87
	case chem.Triple:
		return 0.78
	case chem.Aromatic:
		return 0.91
	}
	return 1.0
}

// IdealBondLength returns the target length in Å for a bond, from the
// covalent radii of its atoms (Cordero et al., the same table bond
// perception uses) contracted by bond order.
func IdealBondLength(b *chem.Bond) float64 {
	return (chem.SymbolCovrad(b.At1.Symbol) + chem.SymbolCovrad(b.At2.Symbol)) * orderFactor(b.Order)
}

//hybridization-dependent equilibrium angle at a center, in radians.
func idealAngle(at *chem.Atom) float64 {
	switch hybridization(at) {
	case 1: //sp
		return math.Pi
	case 2: //sp2
		return 120.0 * math.Pi / 180.0
	}
	return 109.47 * math.Pi / 180.0
}

//hybridization returns 1, 2 or 3 for sp, sp2, sp3.
func hybridization(at *chem.Atom) int {
	doubles := 0
	for _, b := range at.Bonds {
		switch b.Order {
		case chem.Triple:
			return 1
		case chem.Double:
			doubles++
		case chem.Aromatic:
			return 2
		}
	}
	switch {
	case doubles >= 2:
		return 1
	case doubles == 1:
		return 2
	}
	return 3
}

//bounds holds the lower and upper distance bounds between every atom pair,
//plus the hop count of the shortest bond path between them (-1 if none).
type bounds struct {
	n     int
	lower []float64
	upper []float64
	hops  []int
}

func (bm *bounds) at(i, j int) int { return i*bm.n + j }

func (bm *bounds) set(i, j int, l, u float64) {
	bm.lower[bm.at(i, j)] = l
	bm.lower[bm.at(j, i)] = l
	bm.upper[bm.at(i, j)] = u
	bm.upper[bm.at(j, i)] = u
}

func (bm *bounds) get(i, j int) (float64, float64) {
	return bm.lower[bm.at(i, j)], bm.upper[bm.at(i, j)]
}

const unbound = 1.0e9

//newBounds builds the distance bounds of a molecule: exact bond lengths for
//1-2 pairs, law-of-cosines windows for 1-3 pairs, van der Waals floors with
//through-bond ceilings for everything further.
func newBounds(M *chem.Molecule) *bounds {
	n := M.Len()
	bm := &bounds{n: n, lower: make([]float64, n*n), upper: make([]float64, n*n), hops: make([]int, n*n)}
	//through-bond distances and hop counts, Floyd-Warshall; molecules are
	//small enough that the cubic pass is irrelevant
	dist := make([]float64, n*n)
	for i := range dist {
		dist[i] = unbound
		bm.hops[i] = -1
	}
	for i := 0; i < n; i++ {
		dist[bm.at(i, i)] = 0
		bm.hops[bm.at(i, i)] = 0
	}
	for _, b := range M.Bonds {
		l := IdealBondLength(b)
		i, j := b.At1.Index, b.At2.Index
		dist[bm.at(i, j)] = l
		dist[bm.at(j, i)] = l
		bm.hops[bm.at(i, j)] = 1
		bm.hops[bm.at(j, i)] = 1
	}
	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if dist[bm.at(i, k)]+dist[bm.at(k, j)] < dist[bm.at(i, j)] {
					dist[bm.at(i, j)] = dist[bm.at(i, k)] + dist[bm.at(k, j)]
					bm.hops[bm.at(i, j)] = bm.hops[bm.at(i, k)] + bm.hops[bm.at(k, j)]
				}
			}
		}
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			hops := bm.hops[bm.at(i, j)]
			vdw := chem.SymbolVdwrad(M.Atom(i).Symbol) + chem.SymbolVdwrad(M.Atom(j).Symbol)
			switch {
			case hops == 1:
				l := dist[bm.at(i, j)]
				bm.set(i, j, l, l)
			case hops == 3:
				l := vdw * 0.60
				u := dist[bm.at(i, j)]
				if l > u {
					l = u * 0.8
				}
				bm.set(i, j, l, u)
			case hops > 3:
				l := vdw * 0.75
				u := dist[bm.at(i, j)]
				if l > u {
					l = u * 0.8
				}
				bm.set(i, j, l, u)
			case hops < 0: //disconnected
				bm.set(i, j, vdw*0.75, unbound)
			}
		}
	}
	//1-3 windows from the angle at each shared center; written after the
	//general pass so ring geometry wins over the generic floors
	for _, at := range M.Atoms {
		theta := idealAngle(at)
		for a := 0; a < len(at.Bonds); a++ {
			for b := a + 1; b < len(at.Bonds); b++ {
				n1 := at.Bonds[a].Cross(at)
				n2 := at.Bonds[b].Cross(at)
				r1 := IdealBondLength(at.Bonds[a])
				r2 := IdealBondLength(at.Bonds[b])
				d := math.Sqrt(r1*r1 + r2*r2 - 2*r1*r2*math.Cos(theta))
				bm.set(n1.Index, n2.Index, d*0.95, d*1.05)
			}
		}
	}
	return bm
}
