/*
 * doc.go, part of gostereo.
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

//Package ff evaluates and minimizes a classical molecular mechanics energy.
//
//The functional form is the usual one: harmonic bond stretches and angle
//bends, cosine torsions, Lennard-Jones 12-6 and Coulomb terms for atom pairs
//separated by three or more bonds, with 1-4 interactions scaled by half.
//All energies are in kcal/mol and all distances in Å. The absolute values
//are not meant to be compared across molecules; within one molecule they
//order conformers and stereoisomers by steric and electrostatic strain,
//which is all the ranking pipeline needs.
//
//Minimization runs through gonum's optimize package (L-BFGS with a
//finite-difference gradient). It is deterministic for a given starting
//geometry.
package ff
