/*
 * stf_test.go, part of gostereo.
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

package stf

import (
	"io"
	"math"
	"path/filepath"
	"testing"

	v3 "github.com/gostereo/gostereo/v3"
)

func TestRoundTrip(t *testing.T) {
	name := filepath.Join(t.TempDir(), "traj.stf")
	const natoms = 3
	frames := [][]float64{
		{0, 0, 0, 1.54, 0, 0, 2.3, 1.1, -0.4},
		{0.01, -0.02, 0.03, 1.55, 0.1, 0, 2.2, 1.0, -0.5},
	}
	W, err := NewWriter(name, natoms, map[string]string{"mol": "ethanol", "prec": "3"})
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	buf := v3.Zeros(natoms)
	for _, fr := range frames {
		for i := 0; i < natoms; i++ {
			for c := 0; c < 3; c++ {
				buf.Set(i, c, fr[3*i+c])
			}
		}
		if err := W.WNext(buf); err != nil {
			t.Fatalf("WNext: %v", err)
		}
	}
	W.Close()

	R, header, err := New(name)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer R.Close()
	if header["mol"] != "ethanol" {
		t.Errorf("header lost: %v", header)
	}
	if R.Len() != natoms {
		t.Fatalf("Len() = %d, want %d", R.Len(), natoms)
	}
	got := v3.Zeros(natoms)
	for f, fr := range frames {
		if err := R.Next(got); err != nil {
			t.Fatalf("Next frame %d: %v", f, err)
		}
		for i := 0; i < natoms; i++ {
			for c := 0; c < 3; c++ {
				if math.Abs(got.At(i, c)-fr[3*i+c]) > 5e-4 {
					t.Errorf("frame %d atom %d coord %d: got %v, want %v", f, i, c, got.At(i, c), fr[3*i+c])
				}
			}
		}
	}
	if err := R.Next(got); err != io.EOF {
		t.Errorf("want io.EOF after last frame, got %v", err)
	}
}

func TestWriterRejectsWrongSize(t *testing.T) {
	name := filepath.Join(t.TempDir(), "bad.stf")
	W, err := NewWriter(name, 2, nil)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	defer W.Close()
	if err := W.WNext(v3.Zeros(3)); err == nil {
		t.Error("frame with the wrong atom count was accepted")
	}
	if err := W.WNext(nil); err == nil {
		t.Error("nil frame was accepted")
	}
}
