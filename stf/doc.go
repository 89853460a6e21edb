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

//Package stf reads and writes a simple compressed trajectory format.
//
//A file is a zstd stream of text lines: optional key=value header lines, an
//atom-count line "** N", then frames. Each frame is N lines of three
//integers (coordinates in Å times 10^prec, prec defaulting to 2) closed by
//a line holding a single "*". The pipeline uses it to keep the minimization
//path of a conformer, one frame per optimizer step.
package stf
