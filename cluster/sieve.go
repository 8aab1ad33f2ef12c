/*
 * sieve.go, part of gotraj.
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
	"log"
	"math"
	"runtime"
)

//AddSievedFrames assigns every frame that was excluded from the primary
//clustering to the nearest existing cluster, or discards it as noise,
//according to the policy in o (see Options.SieveToFrame). All centroids
//must be up to date when this is called.
//
//Every sieved frame is classified against the same frozen snapshot of
//the clusters: results go to a temporary frame-to-cluster map and are
//committed only after the whole scan, so a sieved frame is never
//compared against another sieved frame that has not been resolved yet.
//The scan runs in parallel over the frames, each worker with its own
//copy of the metric.
//
//It returns the number of sieved frames restored into clusters and the
//number discarded as noise.
func (r *Result) AddSievedFrames(dm DistanceMatrix, metric Metric, o *Options) (restored, discarded int) {
	if len(r.Clusters) == 0 {
		//nothing to restore into; every sieved frame is noise
		for frame := range r.Status {
			if dm.Ignoring(frame) {
				r.Status[frame] = Noise
				discarded++
			}
		}
		return 0, discarded
	}
	nframes := dm.FrameCount()
	cpus := o.Cpus
	if cpus < 1 {
		cpus = runtime.NumCPU()
	}
	if cpus > nframes {
		cpus = nframes
	}
	//the temporary map: -1 noise, -2 untouched (not sieved)
	frameToCluster := make([]int, nframes)
	for i := range frameToCluster {
		frameToCluster[i] = -2
	}
	chunk := (nframes + cpus - 1) / cpus
	done := make(chan bool, cpus)
	for w := 0; w < cpus; w++ {
		start := w * chunk
		end := start + chunk
		if end > nframes {
			end = nframes
		}
		//one private metric per worker, in case it carries scratch state
		go func(start, end int, cdist Metric) {
			for frame := start; frame < end; frame++ {
				if !dm.Ignoring(frame) {
					continue
				}
				frameToCluster[frame] = r.nearestCluster(frame, cdist, o)
			}
			done <- true
		}(start, end, metric.Copy())
	}
	for w := 0; w < cpus; w++ {
		<-done
	}
	//now actually commit the sieved frames to their clusters
	for frame, ci := range frameToCluster {
		switch ci {
		case -2:
		case -1:
			r.Status[frame] = Noise
			discarded++
		default:
			r.Clusters[ci].AddFrame(frame)
			r.Status[frame] = InCluster
			restored++
		}
	}
	//membership changed, so the cached centroids are stale
	for _, c := range r.Clusters {
		c.CalculateCentroid(metric)
	}
	log.Printf("cluster: %d of %d sieved frames were discarded as noise", discarded, restored+discarded)
	return restored, discarded
}

//nearestCluster classifies one sieved frame against the frozen cluster
//snapshot, returning the cluster number or -1 for noise.
func (r *Result) nearestCluster(frame int, cdist Metric, o *Options) int {
	mindist := math.MaxFloat64
	min := -1
	for ci, c := range r.Clusters {
		d := cdist.FrameCentroidDist(frame, c.Cent())
		if d < mindist {
			mindist = d
			min = ci
		}
	}
	if !o.SieveToFrame || mindist < o.Epsilon {
		//restoring on centroids alone, or already within epsilon
		return min
	}
	//fall back to the member frames of the nearest cluster
	for _, member := range r.Clusters[min].frames {
		if cdist.FrameDist(frame, member) < o.Epsilon {
			return min
		}
	}
	return -1
}
