/*
 * energies.go, part of gostereo.
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

//Package chemplot draws plots from pipeline results.
package chemplot

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	chem "github.com/gostereo/gostereo"
)

//width of each energy level mark, in rank units
const levelHalfWidth = 0.3

// EnergyDiagram draws an energy-level diagram: one horizontal mark per
// ranked isomer, at its minimized energy, ordered by rank along the X axis.
// labels, when non-nil, must have one entry per energy and is drawn under
// each level. The output format follows the extension of plotname (.png,
// .svg, .pdf).
func EnergyDiagram(energies []float64, labels []string, title, plotname string) error {
	if len(energies) == 0 {
		return chem.NewError("chemplot.EnergyDiagram", "nothing to plot")
	}
	if labels != nil && len(labels) != len(energies) {
		return chem.NewError("chemplot.EnergyDiagram", "%d labels for %d energies", len(labels), len(energies))
	}
	p := plot.New()
	p.Title.Text = title
	p.Title.Padding = 3 * vg.Millimeter
	p.X.Label.Text = "Rank"
	p.Y.Label.Text = "Energy (kcal/mol)"
	p.X.Min = 0.5
	p.X.Max = float64(len(energies)) + 0.5
	p.Add(plotter.NewGrid())
	for i, e := range energies {
		x := float64(i + 1)
		level, err := plotter.NewLine(plotter.XYs{
			{X: x - levelHalfWidth, Y: e},
			{X: x + levelHalfWidth, Y: e},
		})
		if err != nil {
			return err
		}
		level.LineStyle.Width = vg.Points(2)
		level.LineStyle.Color = color.RGBA{R: 30, G: 80, B: 200, A: 255}
		p.Add(level)
	}
	if labels != nil {
		xys := make(plotter.XYs, len(energies))
		for i, e := range energies {
			xys[i] = plotter.XY{X: float64(i+1) - levelHalfWidth, Y: e}
		}
		l, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
		if err != nil {
			return err
		}
		p.Add(l)
	}
	return p.Save(14*vg.Centimeter, 10*vg.Centimeter, plotname)
}
