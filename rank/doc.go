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

//Package rank runs the full stereoisomer stability pipeline.
//
//Run takes a SMILES string and produces every distinct stereoisomer of the
//underlying graph, embeds each one in 3D, minimizes its force-field energy
//and ranks the survivors from most to least stable. Isomers whose embedding
//or minimization fails are dropped without aborting the run; a run where
//every isomer is dropped ends in *chem.NoStableStructure. Results are
//deterministic: the embedding seed is fixed, ranking ties keep enumeration
//order, and worker scheduling cannot change the output.
package rank
