/*
 * atomicdata.go, part of gostereo.
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

//A map for assigning mass to elements.
//Note that just the common "organic-subset" elements plus a few extras
//are present.
var symbolMass = map[string]float64{
	"H":  1.008,
	"B":  10.81,
	"C":  12.011,
	"N":  14.007,
	"O":  15.999,
	"F":  18.998,
	"Si": 28.085,
	"P":  30.974,
	"S":  32.06,
	"Cl": 35.45,
	"Br": 79.904,
	"I":  126.904,
	"Se": 78.971,
}

//A map for assigning atomic numbers, used as a canonical invariant seed.
var symbolNumber = map[string]int{
	"H":  1,
	"B":  5,
	"C":  6,
	"N":  7,
	"O":  8,
	"F":  9,
	"Si": 14,
	"P":  15,
	"S":  16,
	"Cl": 17,
	"Se": 34,
	"Br": 35,
	"I":  53,
}

//A map for assigning covalent radii to elements
//Values from Cordero et al., 2008 (DOI:10.1039/B801115J)
var symbolCovrad = map[string]float64{
	"H":  0.31,
	"B":  0.84,
	"C":  0.76, //the sp3 radius
	"N":  0.71,
	"O":  0.66,
	"F":  0.57,
	"Si": 1.11,
	"P":  1.07,
	"S":  1.05,
	"Cl": 1.02,
	"Se": 1.2,
	"Br": 1.2,
	"I":  1.39,
}

//A map for assigning van der Waals radii to elements
//Values from 10.1021/j100785a001 and 10.1021/jp8111556
var symbolVdwrad = map[string]float64{
	"H":  1.10,
	"B":  1.92,
	"C":  1.70,
	"N":  1.55,
	"O":  1.52,
	"F":  1.47,
	"Si": 2.10,
	"P":  1.80,
	"S":  1.80,
	"Cl": 1.75,
	"Se": 1.90,
	"Br": 1.83,
	"I":  1.98,
}

//A map with the default valences of the organic-subset elements, used to
//derive implicit hydrogen counts. A missing symbol means no implicit
//hydrogens are ever assumed for it.
var symbolValence = map[string]int{
	"H":  1,
	"B":  3,
	"C":  4,
	"N":  3,
	"O":  2,
	"F":  1,
	"P":  3,
	"S":  2,
	"Cl": 1,
	"Br": 1,
	"I":  1,
}

//Pauling electronegativities, used for the simple bond-increment partial
//charges of the force field.
var symbolElneg = map[string]float64{
	"H":  2.20,
	"B":  2.04,
	"C":  2.55,
	"N":  3.04,
	"O":  3.44,
	"F":  3.98,
	"Si": 1.90,
	"P":  2.19,
	"S":  2.58,
	"Cl": 3.16,
	"Se": 2.55,
	"Br": 2.96,
	"I":  2.66,
}

//A map for checking that atoms don't have too many bonds. A value of 0 means
//undefined, i.e. that the atom shouldn't be checked.
var symbolMaxBonds = map[string]int{
	"H":  1,
	"B":  4,
	"C":  4,
	"O":  3,
	"N":  4,
	"F":  1,
	"Cl": 1, //halogen cations exist but are out of scope
	"Br": 1,
	"I":  1,
}

// SymbolMass returns the atomic mass of an element symbol and whether the
// symbol is known.
func SymbolMass(symbol string) (float64, bool) {
	m, ok := symbolMass[symbol]
	return m, ok
}

// SymbolNumber returns the atomic number of an element symbol, 0 if unknown.
func SymbolNumber(symbol string) int { return symbolNumber[symbol] }

// SymbolCovrad returns the covalent radius of an element symbol, 0 if
// unknown.
func SymbolCovrad(symbol string) float64 { return symbolCovrad[symbol] }

// SymbolVdwrad returns the van der Waals radius of an element symbol, 0 if
// unknown.
func SymbolVdwrad(symbol string) float64 { return symbolVdwrad[symbol] }

// SymbolElneg returns the Pauling electronegativity of an element symbol,
// 0 if unknown.
func SymbolElneg(symbol string) float64 { return symbolElneg[symbol] }

// DefaultValence returns the default valence of an element adjusted by the
// formal charge, and whether the element carries implicit hydrogens at all.
// The charge adjustment covers the common organic cases: N+ has valence 4,
// O- has 1, O+ has 3, C- has 3.
func DefaultValence(symbol string, charge int) (int, bool) {
	v, ok := symbolValence[symbol]
	if !ok {
		return 0, false
	}
	v += charge
	if v < 0 {
		v = 0
	}
	return v, true
}

// MaxBonds returns the maximum number of bonds for an element, 0 meaning
// unchecked.
func MaxBonds(symbol string) int { return symbolMaxBonds[symbol] }

// KnownSymbol reports whether the element symbol appears in the data tables.
func KnownSymbol(symbol string) bool {
	_, ok := symbolMass[symbol]
	return ok
}
