/*
 * cluster_test.go, part of gotraj.
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
	"testing"
)

//symmetric fills a matrix from an upper-triangle distance map.
func symmetric(n int, dists map[[2]int]float64) *TriangleMatrix {
	M := NewTriangleMatrix(n)
	for k, v := range dists {
		M.Set(k[0], k[1], v)
	}
	return M
}

func TestDBSCANBasic(Te *testing.T) {
	//frames 0, 1 and 2 are mutually close, frame 3 sits alone
	M := symmetric(4, map[[2]int]float64{
		{0, 1}: 0.5, {0, 2}: 0.6, {1, 2}: 0.4,
		{0, 3}: 5, {1, 3}: 5, {2, 3}: 5,
	})
	o, err := NewOptions(2, 1.0)
	if err != nil {
		Te.Fatal(err)
	}
	r, err := DBSCAN(M, NewMedoid(M), o)
	if err != nil {
		Te.Fatal(err)
	}
	if len(r.Clusters) != 1 {
		Te.Fatalf("Expected 1 cluster, got %d", len(r.Clusters))
	}
	c := r.Clusters[0]
	if c.Nframes() != 3 {
		Te.Errorf("Expected 3 member frames, got %d", c.Nframes())
	}
	for i, want := range []int{0, 1, 2} {
		if c.Frame(i) != want {
			Te.Errorf("Member %d: expected frame %d, got %d", i, want, c.Frame(i))
		}
	}
	if r.Status[3] != Noise {
		Te.Errorf("Frame 3 must be noise, got %c", r.Status[3])
	}
	//frame 1 has the smallest summed distance to the other members
	if c.Cent().(int) != 1 {
		Te.Errorf("Expected medoid 1, got %d", c.Cent().(int))
	}
	want := []int{0, 0, 0, -1}
	for f, a := range r.Assignments() {
		if a != want[f] {
			Te.Errorf("Frame %d: expected assignment %d, got %d", f, want[f], a)
		}
	}
}

func TestNoiseUpgrade(Te *testing.T) {
	//frame 0 is a border point: too few neighbors to seed a cluster, so
	//the ascending scan first marks it noise, but frame 1's expansion
	//must pull it in
	M := symmetric(4, map[[2]int]float64{
		{0, 1}: 0.9, {0, 2}: 5, {0, 3}: 5,
		{1, 2}: 0.5, {1, 3}: 0.5, {2, 3}: 0.5,
	})
	o, err := NewOptions(2, 1.0)
	if err != nil {
		Te.Fatal(err)
	}
	r, err := DBSCAN(M, NewMedoid(M), o)
	if err != nil {
		Te.Fatal(err)
	}
	if len(r.Clusters) != 1 || r.Clusters[0].Nframes() != 4 {
		Te.Fatalf("Expected one cluster with all 4 frames, got %v", r.Clusters)
	}
	if r.Status[0] != InCluster {
		Te.Errorf("Border frame 0 was not upgraded from noise: %c", r.Status[0])
	}
}

func TestEpsilonIsStrict(Te *testing.T) {
	M := symmetric(2, map[[2]int]float64{{0, 1}: 1.0})
	o, err := NewOptions(1, 1.0)
	if err != nil {
		Te.Fatal(err)
	}
	r, err := DBSCAN(M, NewMedoid(M), o)
	if err != nil {
		Te.Fatal(err)
	}
	if len(r.Clusters) != 0 {
		Te.Error("A pair exactly at epsilon must not be neighbors")
	}
	o.Epsilon = 1.0 + 1e-9
	r, err = DBSCAN(M, NewMedoid(M), o)
	if err != nil {
		Te.Fatal(err)
	}
	if len(r.Clusters) != 1 {
		Te.Error("A pair just under epsilon must cluster")
	}
}

func TestEpsilonMonotonic(Te *testing.T) {
	//growing epsilon over a fixed chain of frames can only pull more
	//frames into clusters, never fewer
	M := symmetric(4, map[[2]int]float64{
		{0, 1}: 0.4, {1, 2}: 1.0, {2, 3}: 2.0,
		{0, 2}: 9, {0, 3}: 9, {1, 3}: 9,
	})
	prev := -1
	for _, eps := range []float64{0.5, 1.1, 2.1} {
		o, err := NewOptions(1, eps)
		if err != nil {
			Te.Fatal(err)
		}
		r, err := DBSCAN(M, NewMedoid(M), o)
		if err != nil {
			Te.Fatal(err)
		}
		in := 0
		for _, s := range r.Status {
			if s == InCluster {
				in++
			}
		}
		if in < prev {
			Te.Errorf("Epsilon %g clusters %d frames, fewer than a smaller epsilon did (%d)", eps, in, prev)
		}
		prev = in
	}
	if prev != 4 {
		Te.Errorf("The largest epsilon must cluster all 4 frames, got %d", prev)
	}
}

func TestValidation(Te *testing.T) {
	if _, err := NewOptions(0, 1.0); err == nil {
		Te.Error("MinPoints 0 must be rejected")
	}
	if _, err := NewOptions(1, 0); err == nil {
		Te.Error("Epsilon 0 must be rejected")
	}
	M := NewTriangleMatrix(2)
	if _, err := DBSCAN(nil, NewMedoid(M), &Options{MinPoints: 1, Epsilon: 1}); err == nil {
		Te.Error("Nil matrix must be rejected")
	}
	if _, err := DBSCAN(M, NewMedoid(M), &Options{MinPoints: 1, Epsilon: -1}); err == nil {
		Te.Error("Negative epsilon must be rejected")
	}
}

func TestSieveRestoreToCentroid(Te *testing.T) {
	//kept frames form two clusters; frames 5 and 6 are sieved out but
	//their matrix rows are filled so the medoid metric can place them
	M := symmetric(7, map[[2]int]float64{
		{0, 1}: 0.3, {0, 2}: 0.3, {1, 2}: 0.3, //cluster 0
		{3, 4}: 0.3, //cluster 1
		{0, 3}: 10, {0, 4}: 10, {1, 3}: 10, {1, 4}: 10, {2, 3}: 10, {2, 4}: 10,
		{0, 5}: 4.0, {1, 5}: 4.0, {2, 5}: 4.0, {3, 5}: 1.5, {4, 5}: 1.5,
		{0, 6}: 0.5, {1, 6}: 0.5, {2, 6}: 0.5, {3, 6}: 8, {4, 6}: 8,
	})
	M.Ignore(5)
	M.Ignore(6)
	o, err := NewOptions(1, 1.0)
	if err != nil {
		Te.Fatal(err)
	}
	o.Cpus = 2
	metric := NewMedoid(M)
	r, err := DBSCAN(M, metric, o)
	if err != nil {
		Te.Fatal(err)
	}
	if len(r.Clusters) != 2 {
		Te.Fatalf("Expected 2 clusters before restore, got %d", len(r.Clusters))
	}
	if d := r.ClusterDistances.Get(0, 1); d != 10 {
		Te.Errorf("Expected centroid distance 10, got %f", d)
	}
	if r.Status[5] != Unassigned || r.Status[6] != Unassigned {
		Te.Error("Sieved frames must stay unassigned through the primary clustering")
	}
	restored, discarded := r.AddSievedFrames(M, metric, o)
	//centroid-only policy: both frames go to the nearest centroid, even
	//frame 5, which is well beyond epsilon from everything
	if restored != 2 || discarded != 0 {
		Te.Errorf("Expected 2 restored, 0 discarded, got %d, %d", restored, discarded)
	}
	a := r.Assignments()
	if a[5] != 1 {
		Te.Errorf("Frame 5: expected cluster 1, got %d", a[5])
	}
	if a[6] != 0 {
		Te.Errorf("Frame 6: expected cluster 0, got %d", a[6])
	}
	//the restore must leave fresh, readable centroids behind
	for i, c := range r.Clusters {
		func() {
			defer func() {
				if recover() != nil {
					Te.Errorf("Cluster %d has a stale centroid after restore", i)
				}
			}()
			c.Cent()
		}()
	}
}

func TestSieveRestoreToFrame(Te *testing.T) {
	build := func(dToOther float64) (*TriangleMatrix, *Options) {
		M := symmetric(3, map[[2]int]float64{
			{0, 1}: 0.4,
			{0, 2}: 1.0, //exactly epsilon from the medoid, frame 0
			{1, 2}: dToOther,
		})
		M.Ignore(2)
		o, err := NewOptions(1, 1.0)
		if err != nil {
			Te.Fatal(err)
		}
		o.SieveToFrame = true
		return M, o
	}
	//a frame exactly at epsilon from the medoid and beyond it from the
	//other member is discarded: the comparison is strict
	M, o := build(1.2)
	metric := NewMedoid(M)
	r, err := DBSCAN(M, metric, o)
	if err != nil {
		Te.Fatal(err)
	}
	restored, discarded := r.AddSievedFrames(M, metric, o)
	if restored != 0 || discarded != 1 {
		Te.Errorf("Expected the boundary frame discarded, got restored %d, discarded %d", restored, discarded)
	}
	if r.Status[2] != Noise {
		Te.Errorf("Discarded frame must end up as noise, got %c", r.Status[2])
	}
	//but one member within epsilon is enough to take the frame in
	M, o = build(0.9)
	metric = NewMedoid(M)
	r, err = DBSCAN(M, metric, o)
	if err != nil {
		Te.Fatal(err)
	}
	restored, discarded = r.AddSievedFrames(M, metric, o)
	if restored != 1 || discarded != 0 {
		Te.Errorf("Expected the frame rescued by a member, got restored %d, discarded %d", restored, discarded)
	}
	if a := r.Assignments(); a[2] != 0 {
		Te.Errorf("Rescued frame in wrong cluster: %d", a[2])
	}
}

func TestSieveRestoreNoClusters(Te *testing.T) {
	//nothing clusters, so every sieved frame can only be noise
	M := symmetric(3, map[[2]int]float64{{0, 1}: 5, {0, 2}: 5, {1, 2}: 5})
	M.Ignore(1)
	M.Ignore(2)
	o, err := NewOptions(2, 1.0)
	if err != nil {
		Te.Fatal(err)
	}
	metric := NewMedoid(M)
	r, err := DBSCAN(M, metric, o)
	if err != nil {
		Te.Fatal(err)
	}
	if len(r.Clusters) != 0 {
		Te.Fatalf("Expected no clusters, got %d", len(r.Clusters))
	}
	restored, discarded := r.AddSievedFrames(M, metric, o)
	if restored != 0 || discarded != 2 {
		Te.Errorf("Expected 0 restored, 2 discarded, got %d, %d", restored, discarded)
	}
	for _, f := range []int{1, 2} {
		if r.Status[f] != Noise {
			Te.Errorf("Sieved frame %d: expected noise, got %c", f, r.Status[f])
		}
	}
}

func TestEuclidSievedRun(Te *testing.T) {
	//one-dimensional feature vectors, every odd frame sieved out
	data := [][]float64{{0}, {0.1}, {0.2}, {2.5}, {5}, {5.1}, {5.2}, {9}}
	metric, err := NewEuclid(data)
	if err != nil {
		Te.Fatal(err)
	}
	M := PairwiseMatrix(metric, len(data), 2)
	if got := M.Sieved(); len(got) != 4 || got[0] != 1 || got[3] != 7 {
		Te.Fatalf("Wrong sieve: %v", got)
	}
	o, err := NewOptions(1, 1.0)
	if err != nil {
		Te.Fatal(err)
	}
	o.SieveToFrame = true
	o.Cpus = 3
	r, err := DBSCAN(M, metric, o)
	if err != nil {
		Te.Fatal(err)
	}
	if len(r.Clusters) != 2 {
		Te.Fatalf("Expected 2 clusters from the kept frames, got %d", len(r.Clusters))
	}
	restored, discarded := r.AddSievedFrames(M, metric, o)
	if restored != 2 || discarded != 2 {
		Te.Errorf("Expected 2 restored, 2 discarded, got %d, %d", restored, discarded)
	}
	want := []int{0, 0, 0, -1, 1, 1, 1, -1}
	for f, a := range r.Assignments() {
		if a != want[f] {
			Te.Errorf("Frame %d: expected assignment %d, got %d", f, want[f], a)
		}
	}
	noise := r.NoiseFrames()
	if len(noise) != 2 || noise[0] != 3 || noise[1] != 7 {
		Te.Errorf("Expected noise frames [3 7], got %v", noise)
	}
	//the Euclid centroid of a restored cluster is the member mean
	cent := r.Clusters[0].Cent().([]float64)
	if d := cent[0] - 0.1; d > 1e-12 || d < -1e-12 {
		Te.Errorf("Expected centroid 0.1 for cluster 0, got %f", cent[0])
	}
}

func TestTriangleMatrix(Te *testing.T) {
	M := NewTriangleMatrix(5)
	M.Set(1, 3, 2.5)
	if M.Get(3, 1) != 2.5 {
		Te.Error("The matrix must be symmetric")
	}
	if M.Get(2, 2) != 0 {
		Te.Error("The diagonal must be zero")
	}
	M.Set(4, 4, 9)
	if M.Get(4, 4) != 0 {
		Te.Error("Setting the diagonal must be a no-op")
	}
	//every off-diagonal pair must map to a distinct slot
	seen := make(map[int]bool)
	for i := 0; i < 5; i++ {
		for j := i + 1; j < 5; j++ {
			k := M.index(i, j)
			if seen[k] {
				Te.Errorf("Pair %d,%d collides in the triangle layout", i, j)
			}
			seen[k] = true
		}
	}
	if len(seen) != 10 {
		Te.Errorf("Expected 10 distinct slots, got %d", len(seen))
	}
}
