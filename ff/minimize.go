/*
 * minimize.go, part of gostereo.
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

	chem "github.com/gostereo/gostereo"
	v3 "github.com/gostereo/gostereo/v3"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/optimize"
)

// DefaultBudget is the major-iteration cap used when the caller does not
// set one.
const DefaultBudget = 200

// FrameFunc receives a snapshot of the coordinates after each major
// minimization step. The matrix is reused between calls; copy it if you
// keep it.
type FrameFunc func(coords *v3.Matrix)

//frameRecorder adapts a FrameFunc to gonum's optimize.Recorder.
type frameRecorder struct {
	fn  FrameFunc
	buf *v3.Matrix
}

func (r *frameRecorder) Init() error { return nil }

func (r *frameRecorder) Record(loc *optimize.Location, op optimize.Operation, _ *optimize.Stats) error {
	if op != optimize.MajorIteration || loc == nil {
		return nil
	}
	n := len(loc.X) / 3
	for i := 0; i < n; i++ {
		for c := 0; c < 3; c++ {
			r.buf.Set(i, c, loc.X[3*i+c])
		}
	}
	r.fn(r.buf)
	return nil
}

// Minimize relaxes the conformer geometry in place with L-BFGS and returns
// the minimized energy in kcal/mol. budget caps the major iterations (0
// means DefaultBudget) and frame, when non-nil, is called after each major
// step. A non-finite energy at any point is reported as
// *chem.MinimizeError and the conformer is left untouched.
func (F *Field) Minimize(conf *chem.Conformer, budget int, frame FrameFunc) (float64, error) {
	if conf.Mol.Len() != F.n {
		return 0, chem.NewMinimizeError("conformer has %d atoms, field was built for %d", conf.Mol.Len(), F.n)
	}
	if budget <= 0 {
		budget = DefaultBudget
	}
	x0 := make([]float64, 3*F.n)
	for i := 0; i < F.n; i++ {
		for c := 0; c < 3; c++ {
			x0[3*i+c] = conf.Coords.At(i, c)
		}
	}
	if e0 := F.Energy(x0); math.IsNaN(e0) || math.IsInf(e0, 0) {
		return 0, chem.NewMinimizeError("non-finite starting energy")
	}
	prob := optimize.Problem{
		Func: F.Energy,
		Grad: func(grad, x []float64) {
			fd.Gradient(grad, F.Energy, x, nil)
		},
	}
	settings := &optimize.Settings{
		MajorIterations:   budget,
		GradientThreshold: 1e-4,
	}
	if frame != nil {
		settings.Recorder = &frameRecorder{fn: frame, buf: v3.Zeros(F.n)}
	}
	res, err := optimize.Minimize(prob, x0, settings, &optimize.LBFGS{})
	if res == nil {
		return 0, chem.NewMinimizeError("optimizer returned nothing: %v", err)
	}
	//an exhausted iteration budget is still a usable minimum; only a broken
	//result is an error
	if math.IsNaN(res.F) || math.IsInf(res.F, 0) {
		return 0, chem.NewMinimizeError("non-finite minimized energy")
	}
	for _, v := range res.X {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, chem.NewMinimizeError("non-finite coordinates after minimization")
		}
	}
	for i := 0; i < F.n; i++ {
		for c := 0; c < 3; c++ {
			conf.Coords.Set(i, c, res.X[3*i+c])
		}
	}
	return res.F, nil
}
