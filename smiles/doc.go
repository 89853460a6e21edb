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

//Package smiles reads and writes molecules in SMILES notation.
//
//Parse covers the subset of the language the ranking pipeline needs: the
//organic subset and bracket atoms, branches, ring closures (digits and %nn),
//bond symbols, aromatic lowercase atoms, formal charges, tetrahedral
//chirality (@, @@) and double-bond geometry (/, \). Isotope fields are
//tolerated and discarded. Write produces a canonical string: equal graphs
//with equal stereo assignments always serialize identically, and distinct
//stereoisomers always differ, which is what the enumeration de-duplication
//and the ranked output rely on.
package smiles
