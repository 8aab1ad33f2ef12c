/*
 * dbscan.go, part of gotraj.
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

//Package cluster groups the frames of a trajectory into density-based
//clusters with the DBSCAN algorithm (Ester, Kriegel, Sander, Xu;
//KDD-96, pp 226-231), working over a precomputed pairwise distance
//matrix that may exclude ("sieve") part of the frames. Sieved frames
//are reconciled afterwards against the frozen clusters.
package cluster

import (
	"fmt"
	"runtime"
	"sort"

	traj "github.com/dacase/gotraj"
)

//FrameStatus is the clustering status of one frame. Transitions are
//monotonic: Unassigned to Noise or InCluster, Noise to InCluster when a
//later core point reaches the frame, and InCluster never reverts.
type FrameStatus byte

const (
	Unassigned FrameStatus = 'U'
	Noise      FrameStatus = 'N'
	InCluster  FrameStatus = 'C'
)

//Options contains the settings of a clustering run. MinPoints and
//Epsilon are mandatory and have no usable defaults.
type Options struct {
	//MinPoints is the minimum neighborhood size for a core point, at
	//least 1.
	MinPoints int
	//Epsilon is the neighborhood radius, greater than 0. Comparisons
	//against it are strict.
	Epsilon float64
	//SieveToFrame selects the restore policy for sieved frames: false
	//assigns each one to the nearest centroid unconditionally (fast),
	//true additionally requires the frame to be within Epsilon of the
	//centroid or of some member frame of that cluster, and discards it
	//as noise otherwise (slower, more accurate).
	SieveToFrame bool
	//Cpus is the number of goroutines used to restore sieved frames.
	Cpus int
}

//NewOptions returns Options with the two mandatory parameters set, the
//centroid-only restore policy, and one restore worker per CPU.
func NewOptions(minpoints int, epsilon float64) (*Options, error) {
	o := &Options{MinPoints: minpoints, Epsilon: epsilon, Cpus: runtime.NumCPU()}
	if err := o.validate(); err != nil {
		return nil, errDecorate(err, "NewOptions")
	}
	return o, nil
}

//validate reports configuration errors before any clustering work.
func (o *Options) validate() error {
	if o.MinPoints < 1 {
		return Error{fmt.Sprintf("MinPoints must be set and >= 1, got %d", o.MinPoints), []string{"validate"}}
	}
	if o.Epsilon <= 0 {
		return Error{fmt.Sprintf("Epsilon must be set and > 0, got %g", o.Epsilon), []string{"validate"}}
	}
	return nil
}

//Cluster is one density-connected set of frames. Its centroid is a
//cache: invalid after any membership change until recomputed.
type Cluster struct {
	frames []int
	cent   Centroid
	centOK bool
}

//Nframes returns the number of member frames.
func (c *Cluster) Nframes() int { return len(c.frames) }

//Frame returns the ith member frame.
func (c *Cluster) Frame(i int) int { return c.frames[i] }

//Frames returns the member frames. The slice is the cluster's own;
//treat it as read-only.
func (c *Cluster) Frames() []int { return c.frames }

//AddFrame appends one frame to the cluster and invalidates the cached
//centroid. Membership only ever grows.
func (c *Cluster) AddFrame(frame int) {
	c.frames = append(c.frames, frame)
	c.centOK = false
}

//Cent returns the cached centroid. It panics if the centroid has not
//been computed since the last membership change, as reading a stale
//centroid is a programming error.
func (c *Cluster) Cent() Centroid {
	if !c.centOK {
		panic("cluster: Centroid read before being computed")
	}
	return c.cent
}

//CalculateCentroid recomputes and caches the centroid with the given
//metric.
func (c *Cluster) CalculateCentroid(metric Metric) {
	c.cent = metric.Centroid(c.frames)
	c.centOK = true
}

//Result is the outcome of a clustering run: the clusters in creation
//order (a cluster's number is its position here), the status of every
//frame of the full universe, and the centroid-to-centroid distances.
type Result struct {
	Clusters []*Cluster
	Status   []FrameStatus
	//ClusterDistances holds the distances between cluster centroids,
	//indexed by cluster number.
	ClusterDistances *TriangleMatrix
}

//Assignments returns, for every frame, the number of the cluster it
//belongs to, or -1 for noise and unassigned (sieved, not yet restored)
//frames.
func (r *Result) Assignments() []int {
	ret := make([]int, len(r.Status))
	for i := range ret {
		ret[i] = -1
	}
	for ci, c := range r.Clusters {
		for _, f := range c.frames {
			ret[f] = ci
		}
	}
	return ret
}

//NoiseFrames returns the frames currently marked as noise, ascending.
func (r *Result) NoiseFrames() []int {
	var ret []int
	for f, s := range r.Status {
		if s == Noise {
			ret = append(ret, f)
		}
	}
	return ret
}

//DBSCAN partitions the non-ignored frames of dm into density-based
//clusters plus noise. The metric is only used to compute centroids and
//their distance matrix once the clusters are built; region queries read
//dm directly. The result is deterministic for a given matrix: seeds are
//tried in ascending frame order, and DBSCAN's final membership does not
//depend on expansion order.
func DBSCAN(dm DistanceMatrix, metric Metric, o *Options) (*Result, error) {
	if dm == nil || metric == nil || o == nil {
		return nil, Error{traj.ErrNilData, []string{"DBSCAN"}}
	}
	if err := o.validate(); err != nil {
		return nil, errDecorate(err, "DBSCAN")
	}
	nframes := dm.FrameCount()
	var candidates []int
	for frame := 0; frame < nframes; frame++ {
		if !dm.Ignoring(frame) {
			candidates = append(candidates, frame)
		}
	}
	//visited and status are sized to the full universe so they can be
	//indexed by original frame number; sieving wastes some entries but
	//keeps the indexing uniform.
	visited := make([]bool, nframes)
	r := &Result{Status: make([]FrameStatus, nframes)}
	for i := range r.Status {
		r.Status[i] = Unassigned
	}
	var neighbors, npts2 []int
	for _, point := range candidates {
		if visited[point] {
			continue
		}
		visited[point] = true
		neighbors = regionQuery(neighbors[:0], dm, candidates, point, o.Epsilon)
		if len(neighbors) < o.MinPoints {
			//may still be upgraded if a core point's expansion reaches it
			r.Status[point] = Noise
			continue
		}
		frames := []int{point}
		r.Status[point] = InCluster
		//the neighbor list grows while being walked, so no range here
		for idx := 0; idx < len(neighbors); idx++ {
			np := neighbors[idx]
			if !visited[np] {
				visited[np] = true
				npts2 = regionQuery(npts2[:0], dm, candidates, np, o.Epsilon)
				if len(npts2) >= o.MinPoints {
					neighbors = append(neighbors, npts2...)
				}
			}
			if r.Status[np] != InCluster {
				frames = append(frames, np)
				r.Status[np] = InCluster
			}
		}
		sort.Ints(frames)
		frames = dedup(frames)
		r.Clusters = append(r.Clusters, &Cluster{frames: frames})
	}
	//centroids and the cluster-to-cluster distances for downstream use
	for _, c := range r.Clusters {
		c.CalculateCentroid(metric)
	}
	r.ClusterDistances = NewTriangleMatrix(len(r.Clusters))
	for i, c1 := range r.Clusters {
		for j := i + 1; j < len(r.Clusters); j++ {
			r.ClusterDistances.Set(i, j, metric.CentroidDist(c1.Cent(), r.Clusters[j].Cent()))
		}
	}
	return r, nil
}

//regionQuery appends to dst the candidate frames strictly closer than
//epsilon to point, excluding point itself.
func regionQuery(dst []int, dm DistanceMatrix, candidates []int, point int, epsilon float64) []int {
	for _, other := range candidates {
		if other == point {
			continue
		}
		if dm.Get(point, other) < epsilon {
			dst = append(dst, other)
		}
	}
	return dst
}

//dedup removes consecutive duplicates from a sorted slice, in place.
func dedup(s []int) []int {
	k := 0
	for i, v := range s {
		if i == 0 || v != s[k-1] {
			s[k] = v
			k++
		}
	}
	return s[:k]
}

//Errors

//Error is the error type of the cluster package. It fulfills the traj
//Error interface.
type Error struct {
	message string
	deco    []string
}

func (err Error) Error() string { return fmt.Sprintf("cluster error: %s", err.message) }

//Decorate adds new information to the error.
func (err Error) Decorate(dec string) []string {
	//The receiver is not a pointer, but err.deco is a slice, and hence
	//a pointer itself, so the decoration is still recorded.
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//errDecorate asserts that err implements traj.Error and decorates it
//with the caller's name before returning it.
func errDecorate(err error, caller string) error {
	err2 := err.(traj.Error)
	err2.Decorate(caller)
	return err2
}
