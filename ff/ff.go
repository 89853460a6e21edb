/*
 * ff.go, part of gostereo.
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

package ff

import (
	"math"

	chem "github.com/gostereo/gostereo"
)

type stretch struct {
	i, j int
	r0   float64
}

type bend struct {
	i, j, k int //j is the vertex
	theta0  float64
}

type torsion struct {
	i, j, k, l int
	v          float64 //barrier height, already divided among parallel paths
	n          float64 //periodicity
	gamma      float64 //phase
}

type pair struct {
	i, j  int
	eps   float64
	rmin  float64
	qq    float64 //coulombK * qi * qj, 1-4 scaling included
	scale float64
}

// Field is the bonded and nonbonded term list of one molecule, ready for
// repeated energy evaluation at different geometries.
type Field struct {
	n         int
	stretches []stretch
	bends     []bend
	torsions  []torsion
	pairs     []pair
}

// Setup builds the force field terms for mol, which should carry explicit
// hydrogens so the nonbonded terms see the real steric bulk.
func Setup(mol *chem.Molecule) *Field {
	F := &Field{n: mol.Len()}
	for _, b := range mol.Bonds {
		F.stretches = append(F.stretches, stretch{b.At1.Index, b.At2.Index, equilibriumLength(b)})
	}
	for _, at := range mol.Atoms {
		theta0 := equilibriumAngle(at)
		for a := 0; a < len(at.Bonds); a++ {
			for b := a + 1; b < len(at.Bonds); b++ {
				F.bends = append(F.bends, bend{
					i:      at.Bonds[a].Cross(at).Index,
					j:      at.Index,
					k:      at.Bonds[b].Cross(at).Index,
					theta0: theta0,
				})
			}
		}
	}
	F.setupTorsions(mol)
	F.setupPairs(mol)
	return F
}

func (F *Field) setupTorsions(mol *chem.Molecule) {
	for _, b := range mol.Bonds {
		if b.Order == chem.Triple {
			continue //linear, no defined torsion
		}
		var v, n, gamma float64
		switch b.Order {
		case chem.Double, chem.Aromatic:
			v, n, gamma = torsionPiV, 2, math.Pi
		default:
			if mol.InRing(b.Index) && (b.At1.Aromatic || b.At2.Aromatic) {
				v, n, gamma = torsionPiV, 2, math.Pi
			} else {
				v, n, gamma = torsionSp3V, 3, 0
			}
		}
		var terms []torsion
		for _, ba := range b.At1.Bonds {
			if ba.Index == b.Index {
				continue
			}
			for _, bd := range b.At2.Bonds {
				if bd.Index == b.Index {
					continue
				}
				terms = append(terms, torsion{
					i: ba.Cross(b.At1).Index, j: b.At1.Index,
					k: b.At2.Index, l: bd.Cross(b.At2).Index,
					n: n, gamma: gamma,
				})
			}
		}
		if len(terms) == 0 {
			continue
		}
		for i := range terms {
			terms[i].v = v / float64(len(terms))
		}
		F.torsions = append(F.torsions, terms...)
	}
}

//setupPairs finds the nonbonded pairs: everything three or more bonds apart
//(or in different components), with 1-4 pairs scaled down.
func (F *Field) setupPairs(mol *chem.Molecule) {
	n := mol.Len()
	q := partialCharges(mol)
	//hop counts up to 3, BFS from every atom; -1 means further or unreachable
	hops := make([]int, n*n)
	for i := range hops {
		hops[i] = -1
	}
	for s := 0; s < n; s++ {
		hops[s*n+s] = 0
		frontier := []int{s}
		for depth := 1; depth <= 3; depth++ {
			var next []int
			for _, ai := range frontier {
				for _, b := range mol.Atom(ai).Bonds {
					t := b.Cross(mol.Atom(ai)).Index
					if hops[s*n+t] == -1 {
						hops[s*n+t] = depth
						next = append(next, t)
					}
				}
			}
			frontier = next
		}
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			h := hops[i*n+j]
			if h >= 0 && h < 3 {
				continue
			}
			scale := 1.0
			if h == 3 {
				scale = scale14
			}
			ai, aj := mol.Atom(i), mol.Atom(j)
			F.pairs = append(F.pairs, pair{
				i: i, j: j,
				eps:   math.Sqrt(epsFor(ai.Symbol) * epsFor(aj.Symbol)),
				rmin:  chem.SymbolVdwrad(ai.Symbol) + chem.SymbolVdwrad(aj.Symbol),
				qq:    coulombK * q[i] * q[j],
				scale: scale,
			})
		}
	}
}

// Energy evaluates the total energy, in kcal/mol, at the flat coordinate
// vector x (length 3*natoms, Å). It is the objective handed to the
// minimizer and is safe for concurrent calls on the same Field.
func (F *Field) Energy(x []float64) float64 {
	e := 0.0
	for _, s := range F.stretches {
		d := dist(x, s.i, s.j) - s.r0
		e += stretchK * d * d
	}
	for _, b := range F.bends {
		d := angle(x, b.i, b.j, b.k) - b.theta0
		e += bendK * d * d
	}
	for _, t := range F.torsions {
		phi := dihedral(x, t.i, t.j, t.k, t.l)
		e += t.v * 0.5 * (1 + math.Cos(t.n*phi-t.gamma))
	}
	for _, p := range F.pairs {
		r := dist(x, p.i, p.j)
		if r < 0.3 {
			r = 0.3 //keep the singularity out of the line search
		}
		sr := p.rmin / r
		sr2 := sr * sr
		sr6 := sr2 * sr2 * sr2
		e += p.scale * (p.eps*(sr6*sr6-2*sr6) + p.qq/r)
	}
	return e
}

func dist(x []float64, i, j int) float64 {
	dx := x[3*i] - x[3*j]
	dy := x[3*i+1] - x[3*j+1]
	dz := x[3*i+2] - x[3*j+2]
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

func angle(x []float64, i, j, k int) float64 {
	var u, v [3]float64
	for c := 0; c < 3; c++ {
		u[c] = x[3*i+c] - x[3*j+c]
		v[c] = x[3*k+c] - x[3*j+c]
	}
	nu := math.Sqrt(u[0]*u[0] + u[1]*u[1] + u[2]*u[2])
	nv := math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if nu < 1e-10 || nv < 1e-10 {
		return 0
	}
	cosA := (u[0]*v[0] + u[1]*v[1] + u[2]*v[2]) / (nu * nv)
	if cosA > 1 {
		cosA = 1
	} else if cosA < -1 {
		cosA = -1
	}
	return math.Acos(cosA)
}

func dihedral(x []float64, i, j, k, l int) float64 {
	var b1, b2, b3 [3]float64
	for c := 0; c < 3; c++ {
		b1[c] = x[3*j+c] - x[3*i+c]
		b2[c] = x[3*k+c] - x[3*j+c]
		b3[c] = x[3*l+c] - x[3*k+c]
	}
	c1 := cross3(b1, b2)
	c2 := cross3(b2, b3)
	n2 := math.Sqrt(b2[0]*b2[0] + b2[1]*b2[1] + b2[2]*b2[2])
	y := n2 * (b1[0]*c2[0] + b1[1]*c2[1] + b1[2]*c2[2])
	xx := c1[0]*c2[0] + c1[1]*c2[1] + c1[2]*c2[2]
	return math.Atan2(y, xx)
}

func cross3(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}
