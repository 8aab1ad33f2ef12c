/*
 * matrix.go, part of gotraj.
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

import "fmt"

//DistanceMatrix is the read-only view of the pairwise frame distances
//that the clustering consumes. Indexes are original frame indexes, not
//compacted: sieved-out frames keep their index and answer true to
//Ignoring.
type DistanceMatrix interface {
	FrameCount() int
	Get(i, j int) float64
	Ignoring(frame int) bool
}

//TriangleMatrix is the concrete symmetric matrix of the package, stored
//as an upper triangle without the diagonal. It fulfills DistanceMatrix.
type TriangleMatrix struct {
	n      int
	d      []float64
	ignore []bool
}

//NewTriangleMatrix returns a zero-filled symmetric matrix over n
//frames, with no frame ignored.
func NewTriangleMatrix(n int) *TriangleMatrix {
	if n < 0 {
		panic(fmt.Sprintf("cluster.NewTriangleMatrix: negative size %d", n))
	}
	return &TriangleMatrix{
		n:      n,
		d:      make([]float64, n*(n-1)/2),
		ignore: make([]bool, n),
	}
}

//index maps an ordered pair to the triangle slice. i and j must differ.
func (M *TriangleMatrix) index(i, j int) int {
	if i > j {
		i, j = j, i
	}
	return i*(2*M.n-i-1)/2 + (j - i - 1)
}

//FrameCount returns the number of frames the matrix is indexed by.
func (M *TriangleMatrix) FrameCount() int { return M.n }

//Get returns the distance between frames i and j. The diagonal is zero.
func (M *TriangleMatrix) Get(i, j int) float64 {
	if i == j {
		return 0
	}
	return M.d[M.index(i, j)]
}

//Set records the distance between frames i and j. Setting the diagonal
//is a no-op.
func (M *TriangleMatrix) Set(i, j int, v float64) {
	if i == j {
		return
	}
	M.d[M.index(i, j)] = v
}

//Ignoring reports whether the frame is excluded from primary clustering.
func (M *TriangleMatrix) Ignoring(frame int) bool { return M.ignore[frame] }

//Ignore marks one frame as excluded from primary clustering.
func (M *TriangleMatrix) Ignore(frame int) { M.ignore[frame] = true }

//SetSieve marks as ignored every frame whose index is not a multiple of
//stride. A stride below 2 keeps all frames.
func (M *TriangleMatrix) SetSieve(stride int) {
	if stride < 2 {
		return
	}
	for i := 0; i < M.n; i++ {
		M.ignore[i] = i%stride != 0
	}
}

//Sieved returns the indexes of the ignored frames, in ascending order.
func (M *TriangleMatrix) Sieved() []int {
	var ret []int
	for i, v := range M.ignore {
		if v {
			ret = append(ret, i)
		}
	}
	return ret
}

//PairwiseMatrix builds the distance matrix for a clustering run: it
//computes metric distances between every pair of kept frames, marking
//the frames skipped by the sieve as ignored. Distances involving
//ignored frames are left at zero and never read by the clustering;
//sieved frames are restored later through the metric itself.
func PairwiseMatrix(metric Metric, nframes, sieve int) *TriangleMatrix {
	M := NewTriangleMatrix(nframes)
	M.SetSieve(sieve)
	for i := 0; i < nframes; i++ {
		if M.ignore[i] {
			continue
		}
		for j := i + 1; j < nframes; j++ {
			if M.ignore[j] {
				continue
			}
			M.Set(i, j, metric.FrameDist(i, j))
		}
	}
	return M
}
