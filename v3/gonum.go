/*
 * gonum.go, part of gostereo.
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
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

//used to correct floating point errors. Everything with absolute value equal
//or less than this is considered zero.
const appzero float64 = 0.0000001

// Matrix is the main container, a set of row vectors in 3D space backed by a
// gonum dense matrix with 3 columns.
type Matrix struct {
	*mat.Dense
}

// Matrix2Dense returns the underlying gonum matrix.
func Matrix2Dense(A *Matrix) *mat.Dense { return A.Dense }

// Dense2Matrix wraps a gonum matrix, which must have 3 columns.
func Dense2Matrix(A *mat.Dense) *Matrix {
	_, c := A.Dims()
	if c != 3 {
		panic(fmt.Sprintf("v3: cannot wrap a %d-column matrix", c))
	}
	return &Matrix{A}
}

// NewMatrix generates and returns a Matrix with 3 columns from data, row by
// row. It returns an error if the length of data is not divisible by 3.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols int = 3
	l := len(data)
	rows := l / cols
	if l%cols != 0 {
		return nil, fmt.Errorf("v3: input slice length %d not divisible by %d", l, cols)
	}
	return &Matrix{mat.NewDense(rows, cols, data)}, nil
}

// Zeros returns a zero-filled Matrix with vecs vectors.
func Zeros(vecs int) *Matrix {
	return &Matrix{mat.NewDense(vecs, 3, nil)}
}

// NVecs returns the number of vectors in the matrix.
func (F *Matrix) NVecs() int {
	r, _ := F.Dims()
	return r
}

// VecView returns a view of the i-th vector of the matrix. Changes in the
// view are reflected in F and vice-versa.
func (F *Matrix) VecView(i int) *Matrix {
	r := F.Dense.Slice(i, i+1, 0, 3).(*mat.Dense)
	return &Matrix{r}
}

// View returns a view of F spanning rows i to i+r and all 3 columns.
func (F *Matrix) View(i, r int) *Matrix {
	ret := F.Dense.Slice(i, i+r, 0, 3).(*mat.Dense)
	return &Matrix{ret}
}

// Copy returns an independent copy of F.
func (F *Matrix) Copy() *Matrix {
	r := mat.DenseCopyOf(F.Dense)
	return &Matrix{r}
}

// SetVec sets the i-th vector of the receiver to the first vector of A.
func (F *Matrix) SetVec(i int, A *Matrix) {
	F.Set(i, 0, A.At(0, 0))
	F.Set(i, 1, A.At(0, 1))
	F.Set(i, 2, A.At(0, 2))
}

// Sub subtracts B from A and puts the result in the receiver.
func (F *Matrix) Sub(A, B *Matrix) { F.Dense.Sub(A.Dense, B.Dense) }

// Add adds A and B and puts the result in the receiver.
func (F *Matrix) Add(A, B *Matrix) { F.Dense.Add(A.Dense, B.Dense) }

// Scale scales A by v and puts the result in the receiver.
func (F *Matrix) Scale(v float64, A *Matrix) { F.Dense.Scale(v, A.Dense) }

// SubVec subtracts the first vector of B from every vector of A and puts the
// result in the receiver, which must have the dimensions of A.
func (F *Matrix) SubVec(A, B *Matrix) {
	for i := 0; i < A.NVecs(); i++ {
		for j := 0; j < 3; j++ {
			F.Set(i, j, A.At(i, j)-B.At(0, j))
		}
	}
}

// AddVec adds the first vector of B to every vector of A and puts the result
// in the receiver, which must have the dimensions of A.
func (F *Matrix) AddVec(A, B *Matrix) {
	for i := 0; i < A.NVecs(); i++ {
		for j := 0; j < 3; j++ {
			F.Set(i, j, A.At(i, j)+B.At(0, j))
		}
	}
}

// Norm returns the Frobenius norm of the matrix; for a single vector this is
// its euclidean length.
func (F *Matrix) Norm() float64 { return mat.Norm(F.Dense, 2) }

// Dot returns the dot product of the first vectors of F and B.
func (F *Matrix) Dot(B *Matrix) float64 {
	return F.At(0, 0)*B.At(0, 0) + F.At(0, 1)*B.At(0, 1) + F.At(0, 2)*B.At(0, 2)
}

// Cross puts the cross product of the first vectors of A and B in the
// receiver, whose first vector is overwritten.
func (F *Matrix) Cross(A, B *Matrix) {
	ax, ay, az := A.At(0, 0), A.At(0, 1), A.At(0, 2)
	bx, by, bz := B.At(0, 0), B.At(0, 1), B.At(0, 2)
	F.Set(0, 0, ay*bz-az*by)
	F.Set(0, 1, az*bx-ax*bz)
	F.Set(0, 2, ax*by-ay*bx)
}

// Cross returns the cross product of the first vectors of A and B as a new
// 1-vector matrix.
func Cross(A, B *Matrix) *Matrix {
	r := Zeros(1)
	r.Cross(A, B)
	return r
}

// Angle returns the angle (in radians) between the first vectors of v1 and
// v2.
func Angle(v1, v2 *Matrix) float64 {
	normproduct := v1.Norm() * v2.Norm()
	dotprod := v1.Dot(v2)
	argument := dotprod / normproduct
	//Take care of floating point math errors
	if math.Abs(argument-1) <= appzero {
		argument = 1
	} else if math.Abs(argument+1) <= appzero {
		argument = -1
	}
	angle := math.Acos(argument)
	if math.Abs(angle) <= appzero {
		return 0.00
	}
	return angle
}

// Dihedral calculates the dihedral (in radians, in (-pi,pi]) between the
// points a, b, c, d, where the first plane is defined by abc and the second
// by bcd.
func Dihedral(a, b, c, d *Matrix) float64 {
	all := []*Matrix{a, b, c, d}
	for number, point := range all {
		if point == nil {
			panic(fmt.Sprintf("v3: dihedral vector %d is nil", number))
		}
		pr, pc := point.Dims()
		if pr != 1 || pc != 3 {
			panic(fmt.Sprintf("v3: dihedral vector %d has invalid shape", number))
		}
	}
	bma := Zeros(1)
	cmb := Zeros(1)
	dmc := Zeros(1)
	bmascaled := Zeros(1)
	bma.Sub(b, a)
	cmb.Sub(c, b)
	dmc.Sub(d, c)
	bmascaled.Scale(cmb.Norm(), bma)
	first := bmascaled.Dot(Cross(cmb, dmc))
	v1 := Cross(bma, cmb)
	v2 := Cross(cmb, dmc)
	second := v1.Dot(v2)
	return math.Atan2(first, second)
}

// Dist returns the euclidean distance between the i-th vector of F and the
// j-th vector of B.
func Dist(F *Matrix, i int, B *Matrix, j int) float64 {
	dx := F.At(i, 0) - B.At(j, 0)
	dy := F.At(i, 1) - B.At(j, 1)
	dz := F.At(i, 2) - B.At(j, 2)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
