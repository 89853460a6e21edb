/*
 * prop_test.go, part of gostereo.
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

package rank

import (
	"context"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

//inputs drawn from molecules small enough to keep the suite quick, with and
//without stereogenic elements
func molInputs() gopter.Gen {
	return gen.OneConstOf("C", "CCO", "CC(F)Cl", "FC=CF", "CC(F)C(Cl)N", "CC(N)C=CC", "CC(Br)C(Br)C")
}

func TestRunProperties(t *testing.T) {
	if testing.Short() {
		t.Skip("pipeline property suite is slow")
	}
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 20
	properties := gopter.NewProperties(params)

	properties.Property("ranks are 1..N and energies never decrease", prop.ForAll(
		func(s string) bool {
			res, err := Run(context.Background(), s, nil)
			if err != nil || !res.Success {
				return false
			}
			for i, iso := range res.Isomers {
				if iso.Rank != i+1 {
					return false
				}
				if i > 0 && iso.Energy < res.Isomers[i-1].Energy {
					return false
				}
			}
			return true
		},
		molInputs(),
	))

	properties.Property("isomer notations are pairwise distinct", prop.ForAll(
		func(s string) bool {
			res, err := Run(context.Background(), s, nil)
			if err != nil {
				return false
			}
			seen := make(map[string]bool)
			for _, iso := range res.Isomers {
				if seen[iso.Notation] {
					return false
				}
				seen[iso.Notation] = true
			}
			return len(res.Isomers) > 0
		},
		molInputs(),
	))

	properties.Property("repeated runs agree", prop.ForAll(
		func(s string) bool {
			a, err := Run(context.Background(), s, nil)
			if err != nil {
				return false
			}
			b, err := Run(context.Background(), s, nil)
			if err != nil {
				return false
			}
			if len(a.Isomers) != len(b.Isomers) {
				return false
			}
			for i := range a.Isomers {
				if a.Isomers[i].Notation != b.Isomers[i].Notation ||
					a.Isomers[i].Energy != b.Isomers[i].Energy {
					return false
				}
			}
			return true
		},
		molInputs(),
	))

	properties.TestingRun(t)
}
