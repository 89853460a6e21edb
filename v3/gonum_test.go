/*
 * gonum_test.go, part of gostereo.
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

package v3

import (
	"math"
	"testing"
)

func vec(x, y, z float64) *Matrix {
	v := Zeros(1)
	v.Set(0, 0, x)
	v.Set(0, 1, y)
	v.Set(0, 2, z)
	return v
}

func TestDist(t *testing.T) {
	M := Zeros(2)
	M.Set(1, 0, 3)
	M.Set(1, 1, 4)
	if d := Dist(M, 0, M, 1); math.Abs(d-5) > 1e-12 {
		t.Errorf("Dist = %v, want 5", d)
	}
}

func TestAngle(t *testing.T) {
	if a := Angle(vec(1, 0, 0), vec(0, 1, 0)); math.Abs(a-math.Pi/2) > 1e-12 {
		t.Errorf("Angle = %v, want pi/2", a)
	}
	if a := Angle(vec(1, 0, 0), vec(-2, 0, 0)); math.Abs(a-math.Pi) > 1e-12 {
		t.Errorf("Angle = %v, want pi", a)
	}
}

func TestCross(t *testing.T) {
	c := Cross(vec(1, 0, 0), vec(0, 1, 0))
	if c.At(0, 0) != 0 || c.At(0, 1) != 0 || c.At(0, 2) != 1 {
		t.Errorf("x cross y = (%v,%v,%v), want (0,0,1)", c.At(0, 0), c.At(0, 1), c.At(0, 2))
	}
}

func TestDihedral(t *testing.T) {
	//a planar zig-zag: the terminal atoms on opposite sides, so 180 degrees
	a := vec(-1, 1, 0)
	b := vec(0, 0, 0)
	c := vec(1, 0, 0)
	d := vec(2, -1, 0)
	if phi := math.Abs(Dihedral(a, b, c, d)); math.Abs(phi-math.Pi) > 1e-9 {
		t.Errorf("trans dihedral = %v, want pi", phi)
	}
	//same side: 0 degrees
	d2 := vec(2, 1, 0)
	if phi := Dihedral(a, b, c, d2); math.Abs(phi) > 1e-9 {
		t.Errorf("cis dihedral = %v, want 0", phi)
	}
}

func TestVecViewShares(t *testing.T) {
	M := Zeros(3)
	v := M.VecView(1)
	v.Set(0, 0, 7)
	if M.At(1, 0) != 7 {
		t.Error("VecView does not alias the matrix row")
	}
}
