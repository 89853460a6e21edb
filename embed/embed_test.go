/*
 * embed_test.go, part of gostereo.
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

package embed

import (
	"math"
	"testing"

	chem "github.com/gostereo/gostereo"
	"github.com/gostereo/gostereo/enum"
	"github.com/gostereo/gostereo/smiles"
	v3 "github.com/gostereo/gostereo/v3"
)

func embedded(t *testing.T, s string, seed int64) *chem.Conformer {
	t.Helper()
	mol, err := smiles.Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q): %v", s, err)
	}
	conf, err := New(chem.AddHydrogens(mol), seed)
	if err != nil {
		t.Fatalf("New(%q, %d): %v", s, seed, err)
	}
	return conf
}

func TestBondLengths(t *testing.T) {
	conf := embedded(t, "CCO", DefaultSeed)
	for _, b := range conf.Mol.Bonds {
		ideal := IdealBondLength(b)
		d := v3.Dist(conf.Coords, b.At1.Index, conf.Coords, b.At2.Index)
		if math.Abs(d-ideal)/ideal > 0.15 {
			t.Errorf("bond %s%d-%s%d: %.3f Å, ideal %.3f Å",
				b.At1.Symbol, b.At1.Index, b.At2.Symbol, b.At2.Index, d, ideal)
		}
	}
}

func TestDeterministicForSeed(t *testing.T) {
	a := embedded(t, "CC(F)Cl", 42)
	b := embedded(t, "CC(F)Cl", 42)
	for i := 0; i < a.Mol.Len(); i++ {
		for c := 0; c < 3; c++ {
			if a.Coords.At(i, c) != b.Coords.At(i, c) {
				t.Fatalf("same seed, different coordinates at atom %d", i)
			}
		}
	}
	other := embedded(t, "CC(F)Cl", 1234)
	same := true
	for i := 0; i < a.Mol.Len() && same; i++ {
		for c := 0; c < 3; c++ {
			if a.Coords.At(i, c) != other.Coords.At(i, c) {
				same = false
				break
			}
		}
	}
	if same {
		t.Error("different seeds produced identical coordinates")
	}
}

func TestChiralityHonored(t *testing.T) {
	sign := func(s string) float64 {
		conf := embedded(t, s, DefaultSeed)
		for _, at := range conf.Mol.Atoms {
			if at.Parity == chem.ParityNone {
				continue
			}
			refs := at.RefNeighbors()
			a := conf.Coords.VecView(refs[0])
			b := conf.Coords.VecView(refs[1])
			c := conf.Coords.VecView(refs[2])
			d := conf.Coords.VecView(refs[3])
			ab := v3.Zeros(1)
			ac := v3.Zeros(1)
			ad := v3.Zeros(1)
			ab.Sub(b, a)
			ac.Sub(c, a)
			ad.Sub(d, a)
			return ab.Dot(v3.Cross(ac, ad))
		}
		t.Fatalf("%s: no stereocenter found", s)
		return 0
	}
	sa := sign("C[C@H](F)Cl")
	sb := sign("C[C@@H](F)Cl")
	if sa*sb >= 0 {
		t.Errorf("enantiomers embedded with the same handedness: %v and %v", sa, sb)
	}
}

func TestDoubleBondGeometry(t *testing.T) {
	dihedral := func(s string) float64 {
		conf := embedded(t, s, DefaultSeed)
		for _, b := range conf.Mol.Bonds {
			if b.Stereo == chem.StereoNone {
				continue
			}
			ra := b.RefSubstituent(b.At1)
			rb := b.RefSubstituent(b.At2)
			return v3.Dihedral(conf.Coords.VecView(ra.Index), conf.Coords.VecView(b.At1.Index),
				conf.Coords.VecView(b.At2.Index), conf.Coords.VecView(rb.Index))
		}
		t.Fatalf("%s: no assigned double bond", s)
		return 0
	}
	trans := math.Abs(dihedral("F/C=C/F"))
	if math.Abs(trans-math.Pi) > 30*math.Pi/180 {
		t.Errorf("trans dihedral %.0f°, want about 180°", trans*180/math.Pi)
	}
	cis := math.Abs(dihedral("F/C=C\\F"))
	if cis > 30*math.Pi/180 {
		t.Errorf("cis dihedral %.0f°, want about 0°", cis*180/math.Pi)
	}
}

//every enumerated configuration of a 2-stereocenter molecule must embed with
//the default seed; none of them may be lost to constraint conflicts
func TestEmbedAllStereoAssignments(t *testing.T) {
	mol, err := smiles.Parse("CC(F)C(Cl)N")
	if err != nil {
		t.Fatal(err)
	}
	isos, err := enum.Isomers(mol)
	if err != nil {
		t.Fatal(err)
	}
	if len(isos) != 4 {
		t.Fatalf("%d isomers enumerated, want 4", len(isos))
	}
	for _, iso := range isos {
		if _, err := New(chem.AddHydrogens(iso), DefaultSeed); err != nil {
			t.Errorf("%s does not embed: %v", smiles.Write(iso), err)
		}
	}
}

func TestNoClashes(t *testing.T) {
	conf := embedded(t, "CC(F)C(Cl)N", DefaultSeed)
	n := conf.Mol.Len()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if conf.Mol.Bonded(i, j) {
				continue
			}
			d := v3.Dist(conf.Coords, i, conf.Coords, j)
			if d < 0.8 {
				t.Errorf("atoms %d and %d only %.2f Å apart", i, j, d)
			}
		}
	}
}

func TestSingleAtom(t *testing.T) {
	mol := chem.NewMolecule()
	mol.AddAtom(&chem.Atom{Symbol: "I", Charge: -1})
	conf, err := New(mol, DefaultSeed)
	if err != nil {
		t.Fatalf("single atom: %v", err)
	}
	if conf.Coords.NVecs() != 1 {
		t.Errorf("got %d coordinate rows", conf.Coords.NVecs())
	}
}

func TestEmptyMolecule(t *testing.T) {
	_, err := New(chem.NewMolecule(), DefaultSeed)
	if err == nil {
		t.Fatal("empty molecule embedded")
	}
	if _, ok := err.(*chem.EmbedError); !ok {
		t.Errorf("want *chem.EmbedError, got %T", err)
	}
}
