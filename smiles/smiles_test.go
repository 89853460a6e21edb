/*
 * smiles_test.go, part of gostereo.
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

package smiles

import (
	"strings"
	"testing"

	chem "github.com/gostereo/gostereo"
)

func mustParse(t *testing.T, s string) *chem.Molecule {
	t.Helper()
	mol, err := Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q): %v", s, err)
	}
	return mol
}

func TestParseBasics(t *testing.T) {
	cases := []struct {
		in            string
		atoms, bonds  int
		totalImplicit int
	}{
		{"C", 1, 0, 4},
		{"CC", 2, 1, 6},
		{"C=C", 2, 1, 4},
		{"C#N", 2, 1, 1},
		{"CCO", 3, 2, 6},
		{"C1CC1", 3, 3, 6},
		{"c1ccccc1", 6, 6, 6},
		{"CC(C)C", 4, 3, 10},
		{"[NH4+]", 1, 0, 4},
		{"[O-]C", 2, 1, 3},
		{"CC.O", 3, 1, 8},
	}
	for _, c := range cases {
		mol := mustParse(t, c.in)
		if mol.Len() != c.atoms {
			t.Errorf("%s: %d atoms, want %d", c.in, mol.Len(), c.atoms)
		}
		if len(mol.Bonds) != c.bonds {
			t.Errorf("%s: %d bonds, want %d", c.in, len(mol.Bonds), c.bonds)
		}
		total := 0
		for _, at := range mol.Atoms {
			total += at.Implicit
		}
		if total != c.totalImplicit {
			t.Errorf("%s: %d implicit hydrogens, want %d", c.in, total, c.totalImplicit)
		}
	}
}

func TestParseErrors(t *testing.T) {
	bad := []string{
		"",
		"CC(",
		"CC)",
		"C1CC",
		"X9",
		"C[C",
		"1CC",
		"=CC",
		"C%1",
		"CF(C)C", //fluorine can't have two bonds
	}
	for _, s := range bad {
		_, err := Parse(s)
		if err == nil {
			t.Errorf("Parse(%q) succeeded, want error", s)
			continue
		}
		if _, ok := err.(*chem.ParseError); !ok {
			t.Errorf("Parse(%q): error type %T, want *chem.ParseError", s, err)
		}
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := Parse("CCX")
	pe, ok := err.(*chem.ParseError)
	if !ok {
		t.Fatalf("want *chem.ParseError, got %T", err)
	}
	if pe.Notation != "CCX" {
		t.Errorf("Notation = %q", pe.Notation)
	}
	if pe.Position != 2 {
		t.Errorf("Position = %d, want 2", pe.Position)
	}
}

func TestRoundTripStable(t *testing.T) {
	//Write must be a fixed point: parsing its output and writing again
	//reproduces the string exactly
	for _, s := range []string{
		"C", "CCO", "CC(C)C", "C1CC1", "c1ccccc1", "C1CCCCC1",
		"CC(=O)O", "C#N", "CC.O", "[NH4+]", "C[C@H](F)Cl",
		"C[C@@H](F)Cl", "F/C=C/F", "F/C=C\\F", "CC(F)C(Cl)N",
		"c1ccc2ccccc2c1",
	} {
		first := Write(mustParse(t, s))
		second := Write(mustParse(t, first))
		if first != second {
			t.Errorf("%s: canonical form unstable: %q then %q", s, first, second)
		}
	}
}

func TestCanonicalEquivalentInputs(t *testing.T) {
	//different writings of the same molecule canonicalize identically
	pairs := [][2]string{
		{"CCO", "OCC"},
		{"C(C)O", "CCO"},
		{"c1ccccc1", "c1ccccc1"},
		{"CC(C)C", "C(C)(C)C"},
	}
	for _, p := range pairs {
		a := Write(mustParse(t, p[0]))
		b := Write(mustParse(t, p[1]))
		if a != b {
			t.Errorf("%q and %q canonicalize differently: %q vs %q", p[0], p[1], a, b)
		}
	}
}

func TestMesoCanonicalization(t *testing.T) {
	//the two numberings of meso-2,3-dibromobutane are the same molecule and
	//must collapse to one canonical string
	a := Write(mustParse(t, "C[C@H](Br)[C@@H](Br)C"))
	b := Write(mustParse(t, "C[C@@H](Br)[C@H](Br)C"))
	if a != b {
		t.Errorf("meso numberings canonicalize differently: %q vs %q", a, b)
	}
	//the chiral diastereomer stays distinct from the meso form
	c := Write(mustParse(t, "C[C@H](Br)[C@H](Br)C"))
	if c == a {
		t.Errorf("chiral and meso forms collapse to %q", a)
	}
	//and the two enantiomers of the chiral form stay distinct from each other
	d := Write(mustParse(t, "C[C@@H](Br)[C@@H](Br)C"))
	if c == d {
		t.Errorf("enantiomers collapse to %q", c)
	}
}

func TestExplicitAromaticBond(t *testing.T) {
	//an aromatic-order bond between non-aromatic atoms needs its token kept,
	//or the string re-parses as a single bond with different hydrogen counts
	s := Write(mustParse(t, "C:C"))
	if !strings.Contains(s, ":") {
		t.Fatalf("aromatic bond token lost: %q", s)
	}
	back := mustParse(t, s)
	if back.Bond(0).Order != chem.Aromatic {
		t.Errorf("re-parse gives bond order %v", back.Bond(0).Order)
	}
	if again := Write(back); again != s {
		t.Errorf("canonical form unstable: %q then %q", s, again)
	}
}

func TestTetrahedralParity(t *testing.T) {
	at := func(s string) *chem.Atom {
		mol := mustParse(t, s)
		for _, a := range mol.Atoms {
			if a.Parity != chem.ParityNone {
				return a
			}
		}
		t.Fatalf("%s: no parity assigned", s)
		return nil
	}
	a := at("C[C@H](F)Cl")
	b := at("C[C@@H](F)Cl")
	if a.Parity == b.Parity {
		t.Error("@ and @@ parsed to the same parity")
	}
	//the enantiomers must keep distinct canonical strings
	wa := Write(mustParse(t, "C[C@H](F)Cl"))
	wb := Write(mustParse(t, "C[C@@H](F)Cl"))
	if wa == wb {
		t.Errorf("enantiomers collapse to %q", wa)
	}
}

func TestDoubleBondStereo(t *testing.T) {
	stereoOf := func(s string) chem.BondStereo {
		mol := mustParse(t, s)
		for _, b := range mol.Bonds {
			if b.Stereo != chem.StereoNone {
				return b.Stereo
			}
		}
		t.Fatalf("%s: no bond stereo assigned", s)
		return chem.StereoNone
	}
	if stereoOf("F/C=C/F") != chem.StereoTrans {
		t.Error("F/C=C/F should be trans")
	}
	if stereoOf("F/C=C\\F") != chem.StereoCis {
		t.Error("F/C=C\\F should be cis")
	}
	if Write(mustParse(t, "F/C=C/F")) == Write(mustParse(t, "F/C=C\\F")) {
		t.Error("cis and trans collapse to the same string")
	}
}

func TestStereoSurvivesRoundTrip(t *testing.T) {
	for _, s := range []string{"C[C@H](F)Cl", "C[C@@H](F)Cl", "F/C=C/F", "F/C=C\\F"} {
		mol := mustParse(t, s)
		back := mustParse(t, Write(mol))
		if Write(back) != Write(mol) {
			t.Errorf("%s: stereo lost in round trip", s)
		}
	}
}

func TestRemoveStereo(t *testing.T) {
	for _, s := range []string{"C[C@H](F)Cl", "F/C=C/F", "C[C@@H](F)C(/Cl)=C\\C"} {
		stripped := RemoveStereo(mustParse(t, s))
		out := Write(stripped)
		if strings.ContainsAny(out, "@/\\") {
			t.Errorf("%s: stereo markers survive stripping: %q", s, out)
		}
		for _, at := range stripped.Atoms {
			if at.Parity != chem.ParityNone {
				t.Errorf("%s: atom %d keeps parity", s, at.Index)
			}
		}
		for _, b := range stripped.Bonds {
			if b.Stereo != chem.StereoNone {
				t.Errorf("%s: bond %d keeps stereo", s, b.Index)
			}
		}
	}
}

func TestRingClosureDigits(t *testing.T) {
	//spiro and fused systems exercise digit reuse
	for _, s := range []string{"C1CC1", "C1CCCCC1", "c1ccc2ccccc2c1", "C1CCC2(CC1)CC2"} {
		mol := mustParse(t, s)
		out := Write(mol)
		back, err := Parse(out)
		if err != nil {
			t.Fatalf("%s: canonical form %q does not reparse: %v", s, out, err)
		}
		if back.Len() != mol.Len() || len(back.Bonds) != len(mol.Bonds) {
			t.Errorf("%s: graph changed through %q", s, out)
		}
	}
}

func TestAromaticPerception(t *testing.T) {
	mol := mustParse(t, "c1ccccc1")
	for _, at := range mol.Atoms {
		if !at.Aromatic {
			t.Fatal("benzene atom not aromatic")
		}
		if at.Implicit != 1 {
			t.Errorf("benzene carbon with %d implicit hydrogens", at.Implicit)
		}
	}
	for _, b := range mol.Bonds {
		if b.Order != chem.Aromatic {
			t.Error("benzene bond not aromatic")
		}
		if !mol.InRing(b.Index) {
			t.Error("benzene bond not in ring")
		}
	}
}
