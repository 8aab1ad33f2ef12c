/*
 * vec.go, part of gotraj.
 *
 * Copyright 2023 The gotraj developers
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

//Package vec handles sets of vectors in 3D space, backed by gonum.
//Within the package it is understood that a "vector" is a row vector,
//i.e. the cartesian coordinates of a point in 3D space. Analyses in the
//rest of the library take their per-frame coordinates as a *vec.Matrix
//with one row per atom.
package vec

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

//Matrix is a set of vectors in 3D space, i.e. a Nx3 matrix. It embeds
//a gonum Dense matrix, so all gonum operations are available, plus a
//few 3D-specific ones.
type Matrix struct {
	*mat.Dense
}

//Matrix2Dense returns the gonum Dense matrix underlying A.
func Matrix2Dense(A *Matrix) *mat.Dense {
	return A.Dense
}

//Dense2Matrix wraps a gonum Dense matrix into a vec.Matrix. The Dense
//must have 3 columns, or the function panics.
func Dense2Matrix(A *mat.Dense) *Matrix {
	_, c := A.Dims()
	if c != 3 {
		panic(ErrShape)
	}
	return &Matrix{A}
}

//NewMatrix generates and returns a Matrix with 3 columns from data.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols int = 3
	l := len(data)
	rows := l / cols
	if l%cols != 0 {
		return nil, Error{fmt.Sprintf("Input slice length %d not divisible by %d", l, cols), []string{"NewMatrix"}, true}
	}
	r := mat.NewDense(rows, cols, data)
	return &Matrix{r}, nil
}

//Zeros returns a zero-filled Matrix with vecs vectors.
func Zeros(vecs int) *Matrix {
	return &Matrix{mat.NewDense(vecs, 3, nil)}
}

//NVecs returns the number of vectors in the matrix.
func (F *Matrix) NVecs() int {
	r, _ := F.Dims()
	return r
}

//VecView returns a view of the ith vector of the matrix. Changes in the
//view are reflected in F and vice-versa.
func (F *Matrix) VecView(i int) *Matrix {
	r := F.Dense.Slice(i, i+1, 0, 3).(*mat.Dense)
	return &Matrix{r}
}

//View returns a view of F starting from row i and spanning r rows.
func (F *Matrix) View(i, r int) *Matrix {
	ret := F.Dense.Slice(i, i+r, 0, 3).(*mat.Dense)
	return &Matrix{ret}
}

//SomeVecs copies the vectors of A with the given indexes into the
//receiver, in the given order. The receiver must have len(indexes) rows.
func (F *Matrix) SomeVecs(A *Matrix, indexes []int) {
	if F.NVecs() != len(indexes) {
		panic(ErrShape)
	}
	for i, v := range indexes {
		for j := 0; j < 3; j++ {
			F.Set(i, j, A.At(v, j))
		}
	}
}

//Norm returns the Frobenius norm of the matrix (the Euclidean norm, for
//a single vector).
func (F *Matrix) Norm() float64 {
	return mat.Norm(F.Dense, 2)
}

//Dot returns the dot product between the receiver and B, both taken as
//row vectors (only the first row of each is considered).
func (F *Matrix) Dot(B *Matrix) float64 {
	var d float64
	for i := 0; i < 3; i++ {
		d += F.At(0, i) * B.At(0, i)
	}
	return d
}

//Cross puts the cross product of the row vectors A and B in the
//receiver, which must have one row.
func (F *Matrix) Cross(A, B *Matrix) {
	if F.NVecs() < 1 {
		panic(ErrShape)
	}
	a0, a1, a2 := A.At(0, 0), A.At(0, 1), A.At(0, 2)
	b0, b1, b2 := B.At(0, 0), B.At(0, 1), B.At(0, 2)
	F.Set(0, 0, a1*b2-a2*b1)
	F.Set(0, 1, a2*b0-a0*b2)
	F.Set(0, 2, a0*b1-a1*b0)
}

//SubVec subtracts the row vector vec from every vector of A, putting
//the result in the receiver.
func (F *Matrix) SubVec(A, vec *Matrix) {
	for i := 0; i < A.NVecs(); i++ {
		for j := 0; j < 3; j++ {
			F.Set(i, j, A.At(i, j)-vec.At(0, j))
		}
	}
}

//Dist returns the Euclidean distance between the ith vector of A and
//the jth vector of B.
func Dist(A *Matrix, i int, B *Matrix, j int) float64 {
	dx := A.At(i, 0) - B.At(j, 0)
	dy := A.At(i, 1) - B.At(j, 1)
	dz := A.At(i, 2) - B.At(j, 2)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

//Errors

const ErrShape = PanicMsg("vec: Ill-formed matrix for the requested operation")

//PanicMsg is the type used for the error messages returned by panics in
//this package. It implements the error interface.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

//Error is the error type for the vec package. It implements the
//traj Error interface.
type Error struct {
	message  string
	deco     []string
	critical bool
}

func (err Error) Error() string { return fmt.Sprintf("vec error: %s", err.message) }

//Decorate adds new information to the error.
func (err Error) Decorate(dec string) []string {
	//The receiver is not a pointer but err.deco is a slice, and hence
	//a pointer itself, so the new decoration is kept.
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical returns true if the error is critical, false otherwise.
func (err Error) Critical() bool { return err.critical }
