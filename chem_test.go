/*
 * chem_test.go, part of gostereo.
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
	"math"
	"testing"
)

//butan-2-ol skeleton: C0-C1(-O4)-C2-C3, one stereocenter at C1
func butanol() *Molecule {
	M := NewMolecule()
	c0 := M.AddAtom(&Atom{Symbol: "C", Implicit: 3})
	c1 := M.AddAtom(&Atom{Symbol: "C", Implicit: 1})
	c2 := M.AddAtom(&Atom{Symbol: "C", Implicit: 2})
	c3 := M.AddAtom(&Atom{Symbol: "C", Implicit: 3})
	o4 := M.AddAtom(&Atom{Symbol: "O", Implicit: 1})
	M.NewBond(c0, c1, Single)
	M.NewBond(c1, c2, Single)
	M.NewBond(c2, c3, Single)
	M.NewBond(c1, o4, Single)
	return M
}

//2-butene skeleton: C0-C1=C2-C3
func butene() *Molecule {
	M := NewMolecule()
	c0 := M.AddAtom(&Atom{Symbol: "C", Implicit: 3})
	c1 := M.AddAtom(&Atom{Symbol: "C", Implicit: 1})
	c2 := M.AddAtom(&Atom{Symbol: "C", Implicit: 1})
	c3 := M.AddAtom(&Atom{Symbol: "C", Implicit: 3})
	M.NewBond(c0, c1, Single)
	M.NewBond(c1, c2, Double)
	M.NewBond(c2, c3, Single)
	return M
}

func TestFindStereocentersTetrahedral(t *testing.T) {
	M := butanol()
	centers, dbonds := FindStereocenters(M)
	if len(centers) != 1 || centers[0].Index != 1 {
		t.Fatalf("centers = %v, want exactly atom 1", centers)
	}
	if len(dbonds) != 0 {
		t.Errorf("unexpected stereogenic double bonds: %v", dbonds)
	}
}

func TestFindStereocentersDoubleBond(t *testing.T) {
	M := butene()
	centers, dbonds := FindStereocenters(M)
	if len(centers) != 0 {
		t.Errorf("unexpected tetrahedral centers: %v", centers)
	}
	if len(dbonds) != 1 || dbonds[0].Order != Double {
		t.Fatalf("want exactly the C1=C2 bond, got %v", dbonds)
	}
}

func TestNoFalseStereocenters(t *testing.T) {
	//neopentane-like: central carbon with four methyls, no stereocenter
	M := NewMolecule()
	c := M.AddAtom(&Atom{Symbol: "C"})
	for i := 0; i < 4; i++ {
		m := M.AddAtom(&Atom{Symbol: "C", Implicit: 3})
		M.NewBond(c, m, Single)
	}
	centers, dbonds := FindStereocenters(M)
	if len(centers) != 0 || len(dbonds) != 0 {
		t.Errorf("symmetric molecule reported stereogenic elements: %v %v", centers, dbonds)
	}
}

func TestRingBondNotStereogenic(t *testing.T) {
	//cyclopropene: the ring double bond can't be cis/trans
	M := NewMolecule()
	c0 := M.AddAtom(&Atom{Symbol: "C", Implicit: 1})
	c1 := M.AddAtom(&Atom{Symbol: "C", Implicit: 1})
	c2 := M.AddAtom(&Atom{Symbol: "C", Implicit: 2})
	M.NewBond(c0, c1, Double)
	M.NewBond(c1, c2, Single)
	M.NewBond(c2, c0, Single)
	_, dbonds := FindStereocenters(M)
	if len(dbonds) != 0 {
		t.Error("ring double bond reported as stereogenic")
	}
	for _, b := range M.Bonds {
		if !M.InRing(b.Index) {
			t.Errorf("bond %d not perceived as ring bond", b.Index)
		}
	}
}

func TestCanonicalRanksArePermutation(t *testing.T) {
	for _, M := range []*Molecule{butanol(), butene()} {
		ranks := CanonicalRanks(M)
		if len(ranks) != M.Len() {
			t.Fatalf("%d ranks for %d atoms", len(ranks), M.Len())
		}
		seen := make([]bool, len(ranks))
		for _, r := range ranks {
			if r < 0 || r >= len(ranks) || seen[r] {
				t.Fatalf("ranks are not a permutation: %v", ranks)
			}
			seen[r] = true
		}
	}
}

func TestCanonicalRanksDeterministic(t *testing.T) {
	a := CanonicalRanks(butanol())
	b := CanonicalRanks(butanol())
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("ranks differ between runs: %v vs %v", a, b)
		}
	}
}

//2,3-dibromobutane skeleton: Br4-C1(-C0)-C2(-Br5)-C3, end-swap symmetric
func dibromobutane() *Molecule {
	M := NewMolecule()
	c0 := M.AddAtom(&Atom{Symbol: "C", Implicit: 3})
	c1 := M.AddAtom(&Atom{Symbol: "C", Implicit: 1})
	c2 := M.AddAtom(&Atom{Symbol: "C", Implicit: 1})
	c3 := M.AddAtom(&Atom{Symbol: "C", Implicit: 3})
	br4 := M.AddAtom(&Atom{Symbol: "Br"})
	br5 := M.AddAtom(&Atom{Symbol: "Br"})
	M.NewBond(c0, c1, Single)
	M.NewBond(c1, c2, Single)
	M.NewBond(c2, c3, Single)
	M.NewBond(c1, br4, Single)
	M.NewBond(c2, br5, Single)
	return M
}

func TestCanonicalRankingsVariants(t *testing.T) {
	//an asymmetric graph has nothing to branch on
	if got := CanonicalRankings(butanol()); len(got) != 1 {
		t.Fatalf("asymmetric graph yields %d rankings, want 1", len(got))
	}
	//a symmetric one must offer both tie-break choices, one per numbering
	all := CanonicalRankings(dibromobutane())
	if len(all) < 2 {
		t.Fatalf("symmetric graph yields %d ranking(s)", len(all))
	}
	for _, ranks := range all {
		seen := make([]bool, len(ranks))
		for _, r := range ranks {
			if r < 0 || r >= len(ranks) || seen[r] {
				t.Fatalf("ranking is not a permutation: %v", ranks)
			}
			seen[r] = true
		}
	}
}

func TestAddHydrogens(t *testing.T) {
	M := butanol()
	M.Atom(1).Parity = ParityAnti
	H := AddHydrogens(M)
	if H.Len() != 5+10 {
		t.Fatalf("%d atoms after explicitation, want 15", H.Len())
	}
	//heavy atoms keep their indices
	for i := 0; i < 5; i++ {
		if H.Atom(i).Symbol != M.Atom(i).Symbol {
			t.Errorf("atom %d changed symbol", i)
		}
		if H.Atom(i).Implicit != 0 {
			t.Errorf("atom %d still has %d implicit hydrogens", i, H.Atom(i).Implicit)
		}
	}
	for i := 5; i < H.Len(); i++ {
		if H.Atom(i).Symbol != "H" {
			t.Errorf("appended atom %d is %s, want H", i, H.Atom(i).Symbol)
		}
	}
	if H.Atom(1).Parity == ParityNone {
		t.Error("stereocenter lost its parity")
	}
	w, err := MolecularWeight(H)
	if err != nil {
		t.Fatal(err)
	}
	m, err := MolecularWeight(M)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(w-m) > 1e-9 {
		t.Errorf("weight changed: %v -> %v", m, w)
	}
	//the original is untouched
	if M.Len() != 5 {
		t.Error("AddHydrogens modified its input")
	}
}

func TestFormula(t *testing.T) {
	cases := []struct {
		build   func() *Molecule
		formula string
		weight  float64
	}{
		{butanol, "C4H10O", 74.12},
		{butene, "C4H8", 56.11},
	}
	for _, c := range cases {
		M := c.build()
		if f := Formula(M); f != c.formula {
			t.Errorf("Formula = %q, want %q", f, c.formula)
		}
		w, err := MolecularWeight(M)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(w-c.weight) > 0.05 {
			t.Errorf("MolecularWeight = %v, want about %v", w, c.weight)
		}
	}
}

func TestOrderParity(t *testing.T) {
	ref := []int{0, 1, 2, 3}
	cases := []struct {
		got  []int
		want int
	}{
		{[]int{0, 1, 2, 3}, 1},
		{[]int{1, 0, 2, 3}, -1},
		{[]int{1, 2, 0, 3}, 1},
		{[]int{3, 2, 1, 0}, 1},
		{[]int{0, 1, 3, 2}, -1},
	}
	for _, c := range cases {
		if p := OrderParity(ref, c.got); p != c.want {
			t.Errorf("OrderParity(%v) = %d, want %d", c.got, p, c.want)
		}
	}
}

func TestMoleculeCopyIsDeep(t *testing.T) {
	M := butanol()
	M.Atom(1).Parity = ParityClock
	N := M.Copy()
	N.Atom(1).Parity = ParityAnti
	N.Bond(0).Stereo = StereoCis
	if M.Atom(1).Parity != ParityClock {
		t.Error("copy shares atoms with the original")
	}
	if M.Bond(0).Stereo != StereoNone {
		t.Error("copy shares bonds with the original")
	}
}

func TestErrorDecoration(t *testing.T) {
	err := NewEmbedError("atoms %d and %d overlap", 1, 2)
	err.Decorate("embed.New")
	err.Decorate("rank.Run")
	s := DecorationString(err)
	if s != "embed.New <- rank.Run" {
		t.Errorf("DecorationString = %q", s)
	}
}
