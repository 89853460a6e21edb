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

//Package chem provides the molecular-graph model used by the gostereo
//stereoisomer ranking pipeline: atoms, bonds, stereo descriptors, atomic data
//tables, canonical atom ranking, stereocenter perception and explicit-hydrogen
//expansion. Coordinates live in the v3 subpackage; parsing, enumeration,
//embedding, energy evaluation and ranking live in their own subpackages,
//all of which build on the types defined here.
//
//A Molecule is treated as immutable once built; every operation that needs a
//different graph (stereo assignment, hydrogen expansion) works on a copy.
package chem
