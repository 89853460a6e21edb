/*
 * params.go, part of gostereo.
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

//kcal/(mol Å) electrostatic conversion for charges in e and distances in Å.
const coulombK = 332.0637

//generic force constants, kcal/mol units. A real parameterized field would
//vary these per atom-type pair; for ranking strain within one molecule the
//generic values are enough.
const (
	stretchK    = 300.0 //per Å^2
	bendK       = 60.0  //per rad^2
	torsionSp3V = 1.0   //threefold rotational barrier
	torsionPiV  = 25.0  //twofold barrier keeping double bonds planar
	scale14     = 0.5
)

//Lennard-Jones well depths per element, kcal/mol. Geometric-mean combining.
var symbolEps = map[string]float64{
	"H":  0.030,
	"B":  0.180,
	"C":  0.086,
	"N":  0.170,
	"O":  0.210,
	"F":  0.061,
	"Si": 0.310,
	"P":  0.305,
	"S":  0.250,
	"Cl": 0.265,
	"Se": 0.290,
	"Br": 0.320,
	"I":  0.400,
}

func epsFor(sym string) float64 {
	if e, ok := symbolEps[sym]; ok {
		return e
	}
	return 0.1
}

//contraction of the covalent-radius sum per bond order. Kept in sync with
//the embedding targets so minimization does not fight the embedder.
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

func equilibriumLength(b *chem.Bond) float64 {
	return (chem.SymbolCovrad(b.At1.Symbol) + chem.SymbolCovrad(b.At2.Symbol)) * orderFactor(b.Order)
}

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

func equilibriumAngle(at *chem.Atom) float64 {
	switch hybridization(at) {
	case 1:
		return math.Pi
	case 2:
		return 120.0 * math.Pi / 180.0
	}
	return 109.47 * math.Pi / 180.0
}

//partialCharges assigns electronegativity-equalization charges: each atom
//picks up a fraction of the Pauling electronegativity difference across each
//of its bonds, plus its formal charge.
func partialCharges(M *chem.Molecule) []float64 {
	const c = 0.08
	q := make([]float64, M.Len())
	for i, at := range M.Atoms {
		q[i] = float64(at.Charge)
		xi := chem.SymbolElneg(at.Symbol)
		for _, b := range at.Bonds {
			xj := chem.SymbolElneg(b.Cross(at).Symbol)
			q[i] += c * (xj - xi)
		}
	}
	return q
}
