/*
 * formula.go, part of gostereo.
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
	"fmt"
	"sort"
	"strings"
)

// Formula returns the molecular formula of M in Hill order: carbon first,
// hydrogen second, every other element alphabetically. Implicit hydrogens are
// counted.
func Formula(M *Molecule) string {
	counts := make(map[string]int)
	for _, at := range M.Atoms {
		counts[at.Symbol]++
		counts["H"] += at.Implicit
	}
	if counts["H"] == 0 {
		delete(counts, "H")
	}
	var b strings.Builder
	emit := func(sym string) {
		n, ok := counts[sym]
		if !ok {
			return
		}
		b.WriteString(sym)
		if n > 1 {
			fmt.Fprintf(&b, "%d", n)
		}
		delete(counts, sym)
	}
	if _, ok := counts["C"]; ok {
		emit("C")
		emit("H")
	}
	rest := make([]string, 0, len(counts))
	for sym := range counts {
		rest = append(rest, sym)
	}
	sort.Strings(rest)
	for _, sym := range rest {
		emit(sym)
	}
	return b.String()
}

// MolecularWeight returns the molecular weight of M in g/mol, counting
// implicit hydrogens. It returns an error for atoms whose mass is not
// tabulated.
func MolecularWeight(M *Molecule) (float64, error) {
	var w float64
	hmass, _ := SymbolMass("H")
	for _, at := range M.Atoms {
		m, ok := SymbolMass(at.Symbol)
		if !ok {
			return 0, NewError("MolecularWeight", "no tabulated mass for element %q (atom %d)", at.Symbol, at.Index)
		}
		w += m + float64(at.Implicit)*hmass
	}
	return w, nil
}
