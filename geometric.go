/*
 * geometric.go, part of gotraj.
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

package traj

import (
	"fmt"
	"math"

	"github.com/dacase/gotraj/vec"
	"gonum.org/v1/gonum/mat"
)

//ImageType selects how distances are minimum-imaged with respect to the
//periodic box of the frame, if any.
type ImageType int

const (
	//NoImage computes plain Euclidean distances.
	NoImage ImageType = iota
	//Ortho wraps distances in an orthogonal box.
	Ortho
	//NonOrtho wraps distances in a general triclinic cell.
	NonOrtho
)

//Dist returns the Euclidean distance between the ith and jth atoms of
//coord. It does not check ranges; the underlying matrix will panic on
//out of range indexes.
func Dist(coord *vec.Matrix, i, j int) float64 {
	return vec.Dist(coord, i, coord, j)
}

//DistVec returns the Euclidean distance between the row vectors a and b.
func DistVec(a, b *vec.Matrix) float64 {
	return vec.Dist(a, 0, b, 0)
}

//DistOrtho returns the minimum-image distance between the row vectors a
//and b in an orthogonal box with edge lengths box (at least 3 elements).
func DistOrtho(a, b *vec.Matrix, box []float64) (float64, error) {
	if len(box) < 3 {
		return -1, CError{fmt.Sprintf("Need 3 box lengths, got %d", len(box)), []string{"DistOrtho"}}
	}
	var d2 float64
	for i := 0; i < 3; i++ {
		if box[i] <= 0 {
			return -1, CError{ErrNotOrthogonal, []string{"DistOrtho"}}
		}
		d := a.At(0, i) - b.At(0, i)
		d -= box[i] * math.Round(d/box[i])
		d2 += d * d
	}
	return math.Sqrt(d2), nil
}

//DistNonOrtho returns the minimum-image distance between the row
//vectors a and b in a general triclinic cell. The rows of ucell are the
//cell vectors. The cell matrix must be invertible.
func DistNonOrtho(a, b, ucell *vec.Matrix) (float64, error) {
	var recip mat.Dense
	if err := recip.Inverse(ucell.Dense); err != nil {
		return -1, CError{"Singular cell matrix: " + err.Error(), []string{"DistNonOrtho"}}
	}
	//to fractional coordinates, wrap, and back.
	var frac [3]float64
	for j := 0; j < 3; j++ {
		for i := 0; i < 3; i++ {
			frac[j] += (a.At(0, i) - b.At(0, i)) * recip.At(i, j)
		}
		frac[j] -= math.Round(frac[j])
	}
	var d2 float64
	for j := 0; j < 3; j++ {
		var d float64
		for i := 0; i < 3; i++ {
			d += frac[i] * ucell.At(i, j)
		}
		d2 += d * d
	}
	return math.Sqrt(d2), nil
}

//GeometricCenter returns the geometric center of the atoms of coord
//with the given indexes, as a new one-row matrix. A nil indexes slice
//means all atoms.
func GeometricCenter(coord *vec.Matrix, indexes []int) *vec.Matrix {
	cent := vec.Zeros(1)
	if indexes == nil {
		indexes = allIndexes(coord.NVecs())
	}
	for _, v := range indexes {
		for j := 0; j < 3; j++ {
			cent.Set(0, j, cent.At(0, j)+coord.At(v, j))
		}
	}
	cent.Scale(1/float64(len(indexes)), cent.Dense)
	return cent
}

//CenterOfMass returns the mass-weighted center of the atoms of coord
//with the given indexes. masses must cover every index. A nil indexes
//slice means all atoms.
func CenterOfMass(coord *vec.Matrix, masses []float64, indexes []int) (*vec.Matrix, error) {
	if indexes == nil {
		indexes = allIndexes(coord.NVecs())
	}
	cent := vec.Zeros(1)
	var total float64
	for _, v := range indexes {
		if v >= len(masses) {
			return nil, CError{fmt.Sprintf("Atom %d has no mass in a slice of %d", v, len(masses)), []string{"CenterOfMass"}}
		}
		m := masses[v]
		total += m
		for j := 0; j < 3; j++ {
			cent.Set(0, j, cent.At(0, j)+m*coord.At(v, j))
		}
	}
	if total <= 0 {
		return nil, CError{"Selection has zero total mass", []string{"CenterOfMass"}}
	}
	cent.Scale(1/total, cent.Dense)
	return cent, nil
}

func allIndexes(n int) []int {
	r := make([]int, n)
	for i := range r {
		r[i] = i
	}
	return r
}
