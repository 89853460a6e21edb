/*
 * energies_test.go, part of gostereo.
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

package chemplot

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEnergyDiagram(t *testing.T) {
	name := filepath.Join(t.TempDir(), "levels.png")
	energies := []float64{-3.2, -1.1, 0.4, 0.4}
	labels := []string{"C[C@H](F)Cl", "C[C@@H](F)Cl", "a", "b"}
	if err := EnergyDiagram(energies, labels, "stereoisomer stability", name); err != nil {
		t.Fatalf("EnergyDiagram: %v", err)
	}
	fi, err := os.Stat(name)
	if err != nil {
		t.Fatalf("plot file missing: %v", err)
	}
	if fi.Size() == 0 {
		t.Error("plot file is empty")
	}
}

func TestEnergyDiagramBadInput(t *testing.T) {
	if err := EnergyDiagram(nil, nil, "t", "x.png"); err == nil {
		t.Error("empty energies accepted")
	}
	if err := EnergyDiagram([]float64{1}, []string{"a", "b"}, "t", "x.png"); err == nil {
		t.Error("mismatched labels accepted")
	}
}
