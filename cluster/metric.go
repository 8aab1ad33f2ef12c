/*
 * metric.go, part of gotraj.
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

package cluster

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

//Centroid is the metric-specific representative of a cluster. Its
//concrete type is owned by the Metric that produced it; callers only
//pass it back to the same Metric.
type Centroid interface{}

//Metric is the pluggable distance and centroid strategy of the
//clustering: Euclidean over per-frame data vectors, medoid over a
//precomputed matrix, or any caller-provided variant (RMSD-based,
//dihedral-based). A Metric given to a parallel region must either be
//stateless or be cloned per worker with Copy.
type Metric interface {
	//FrameDist returns the distance between two frames.
	FrameDist(f1, f2 int) float64
	//CentroidDist returns the distance between two centroids of this
	//metric.
	CentroidDist(c1, c2 Centroid) float64
	//FrameCentroidDist returns the distance between a frame and a
	//centroid of this metric.
	FrameCentroidDist(frame int, c Centroid) float64
	//Centroid computes the representative of the given frames.
	Centroid(frames []int) Centroid
	//Copy returns an instance safe for use by one worker: shared data
	//may be aliased read-only, but any scratch state must be private.
	Copy() Metric
}

//Euclid is the generic-data metric: each frame is a feature vector and
//distances are Euclidean. Centroids are the arithmetic mean vector.
type Euclid struct {
	data    [][]float64
	scratch []float64
}

//NewEuclid returns a Euclid metric over the given per-frame vectors,
//which must all have the same length. The data is aliased, not copied,
//and must not change during clustering.
func NewEuclid(data [][]float64) (*Euclid, error) {
	if len(data) == 0 {
		return nil, Error{"No data vectors given", []string{"NewEuclid"}}
	}
	dim := len(data[0])
	for i, v := range data {
		if len(v) != dim {
			return nil, Error{fmt.Sprintf("Vector %d has length %d, expected %d", i, len(v), dim), []string{"NewEuclid"}}
		}
	}
	return &Euclid{data: data, scratch: make([]float64, dim)}, nil
}

func (E *Euclid) FrameDist(f1, f2 int) float64 {
	return floats.Distance(E.data[f1], E.data[f2], 2)
}

func (E *Euclid) CentroidDist(c1, c2 Centroid) float64 {
	return floats.Distance(c1.([]float64), c2.([]float64), 2)
}

func (E *Euclid) FrameCentroidDist(frame int, c Centroid) float64 {
	floats.SubTo(E.scratch, E.data[frame], c.([]float64))
	return floats.Norm(E.scratch, 2)
}

func (E *Euclid) Centroid(frames []int) Centroid {
	cent := make([]float64, len(E.scratch))
	for _, f := range frames {
		floats.Add(cent, E.data[f])
	}
	floats.Scale(1/float64(len(frames)), cent)
	return cent
}

//Copy shares the read-only data but gets its own scratch buffer.
func (E *Euclid) Copy() Metric {
	return &Euclid{data: E.data, scratch: make([]float64, len(E.scratch))}
}

//Medoid is the matrix-backed metric: distances come straight from a
//precomputed DistanceMatrix and the centroid of a cluster is its medoid
//frame, the member with the smallest total distance to the others. To
//restore sieved frames with this metric the matrix must also contain
//the distances of the ignored rows.
type Medoid struct {
	m DistanceMatrix
}

//NewMedoid returns a Medoid metric over the given matrix.
func NewMedoid(m DistanceMatrix) *Medoid {
	return &Medoid{m: m}
}

func (M *Medoid) FrameDist(f1, f2 int) float64 {
	return M.m.Get(f1, f2)
}

func (M *Medoid) CentroidDist(c1, c2 Centroid) float64 {
	return M.m.Get(c1.(int), c2.(int))
}

func (M *Medoid) FrameCentroidDist(frame int, c Centroid) float64 {
	return M.m.Get(frame, c.(int))
}

func (M *Medoid) Centroid(frames []int) Centroid {
	best := frames[0]
	bestsum := -1.0
	for _, f := range frames {
		var sum float64
		for _, g := range frames {
			sum += M.m.Get(f, g)
		}
		if bestsum < 0 || sum < bestsum {
			bestsum = sum
			best = f
		}
	}
	return best
}

//Copy returns the receiver itself: the metric only reads the matrix.
func (M *Medoid) Copy() Metric { return M }
