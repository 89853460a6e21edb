/*
 * ff_test.go, part of gostereo.
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
	"testing"

	chem "github.com/gostereo/gostereo"
	"github.com/gostereo/gostereo/embed"
	"github.com/gostereo/gostereo/smiles"
	v3 "github.com/gostereo/gostereo/v3"
)

func conformerFor(t *testing.T, notation string) *chem.Conformer {
	t.Helper()
	mol, err := smiles.Parse(notation)
	if err != nil {
		t.Fatalf("Parse(%q): %v", notation, err)
	}
	conf, err := embed.New(chem.AddHydrogens(mol), embed.DefaultSeed)
	if err != nil {
		t.Fatalf("embed %q: %v", notation, err)
	}
	return conf
}

func TestEnergyFinite(t *testing.T) {
	for _, s := range []string{"C", "CC", "C=C", "CCO", "CC(F)C(Cl)N"} {
		conf := conformerFor(t, s)
		F := Setup(conf.Mol)
		x := flat(conf.Coords)
		e := F.Energy(x)
		if math.IsNaN(e) || math.IsInf(e, 0) {
			t.Errorf("%s: non-finite energy %v", s, e)
		}
	}
}

func TestMinimizeLowersEnergy(t *testing.T) {
	conf := conformerFor(t, "CCO")
	F := Setup(conf.Mol)
	e0 := F.Energy(flat(conf.Coords))
	e, err := F.Minimize(conf, 0, nil)
	if err != nil {
		t.Fatalf("Minimize: %v", err)
	}
	if e > e0+1e-6 {
		t.Errorf("energy went up: %.3f -> %.3f", e0, e)
	}
	if math.IsNaN(e) || math.IsInf(e, 0) {
		t.Errorf("non-finite minimized energy %v", e)
	}
}

func TestMinimizeDeterministic(t *testing.T) {
	a := conformerFor(t, "CC(F)Cl")
	b := conformerFor(t, "CC(F)Cl")
	ea, err := Setup(a.Mol).Minimize(a, 150, nil)
	if err != nil {
		t.Fatal(err)
	}
	eb, err := Setup(b.Mol).Minimize(b, 150, nil)
	if err != nil {
		t.Fatal(err)
	}
	if ea != eb {
		t.Errorf("same input, different energies: %v vs %v", ea, eb)
	}
	for i := 0; i < a.Mol.Len(); i++ {
		for c := 0; c < 3; c++ {
			if a.Coords.At(i, c) != b.Coords.At(i, c) {
				t.Fatalf("coordinates diverge at atom %d", i)
			}
		}
	}
}

func TestMinimizeFrames(t *testing.T) {
	conf := conformerFor(t, "CCCC")
	F := Setup(conf.Mol)
	n := conf.Mol.Len()
	frames := 0
	_, err := F.Minimize(conf, 50, func(coords *v3.Matrix) {
		frames++
		if coords.NVecs() != n {
			t.Fatalf("frame has %d rows, want %d", coords.NVecs(), n)
		}
	})
	if err != nil {
		t.Fatalf("Minimize: %v", err)
	}
	if frames == 0 {
		t.Error("no frames recorded")
	}
}

func TestMinimizeAtomCountMismatch(t *testing.T) {
	conf := conformerFor(t, "CC")
	other := conformerFor(t, "CCC")
	_, err := Setup(conf.Mol).Minimize(other, 0, nil)
	if err == nil {
		t.Fatal("expected an error on atom count mismatch")
	}
	if _, ok := err.(*chem.MinimizeError); !ok {
		t.Errorf("want *chem.MinimizeError, got %T", err)
	}
}

func flat(m *v3.Matrix) []float64 {
	n := m.NVecs()
	x := make([]float64, 3*n)
	for i := 0; i < n; i++ {
		for c := 0; c < 3; c++ {
			x[3*i+c] = m.At(i, c)
		}
	}
	return x
}
