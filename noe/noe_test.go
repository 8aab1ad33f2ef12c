/*
 * noe_test.go, part of gotraj.
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

package noe

import (
	"math"
	"testing"

	traj "github.com/dacase/gotraj"
	"github.com/dacase/gotraj/dataset"
	"github.com/dacase/gotraj/vec"
)

func noeFixture() (*traj.Topology, *vec.Matrix) {
	atoms := []*traj.Atom{
		{Name: "HA", MolID: 1, Mass: 1},
		{Name: "HB", MolID: 1, Mass: 3},
		{Name: "HG", MolID: 2, Mass: 1},
		{Name: "HD", MolID: 3, Mass: 1},
	}
	coords, err := vec.NewMatrix([]float64{
		0, 0, 0,
		1, 0, 0,
		4, 0, 0,
		9.5, 0, 0,
	})
	if err != nil {
		panic(err.Error())
	}
	return traj.NewTopology(atoms), coords
}

func TestDistancesAndViolations(Te *testing.T) {
	mol, coords := noeFixture()
	rst := []*Restraint{
		{Mask1: []int{0}, Mask2: []int{1}, Bound: 0.5, BoundH: 2.0, Rexp: 1.8},
		//the mass-weighted center of atoms 0 and 1 (masses 1 and 3)
		//sits at x = 0.75, so the distance to atom 2 is 3.25
		{Mask1: []int{0, 1}, Mask2: []int{2}, Bound: 0.5, BoundH: 2.0, Rexp: -1},
	}
	sinks := []traj.FloatSeries{dataset.NewFloats("noe1", 2), nil}
	N, err := New(rst, mol, &Options{Series: sinks})
	if err != nil {
		Te.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		d, err := N.Next(coords)
		if err != nil {
			Te.Fatal(err)
		}
		if math.Abs(d[0]-1.0) > 1e-12 {
			Te.Errorf("Restraint 0: expected distance 1.0, got %f", d[0])
		}
		if math.Abs(d[1]-3.25) > 1e-12 {
			Te.Errorf("Restraint 1: expected distance 3.25, got %f", d[1])
		}
	}
	if N.FramesProcessed() != 2 {
		Te.Errorf("Expected 2 frames, got %d", N.FramesProcessed())
	}
	v, err := N.Violations()
	if err != nil {
		Te.Fatal(err)
	}
	if v[0] != 0 {
		Te.Errorf("Restraint 0 is satisfied, got violation fraction %f", v[0])
	}
	if v[1] != 1 {
		Te.Errorf("Restraint 1 is violated on every frame, got %f", v[1])
	}
	s := sinks[0].(*dataset.Floats)
	if s.Len() != 2 || math.Abs(s.At(1)-1.0) > 1e-12 {
		Te.Errorf("Series sink did not receive the distances: %v", s.Data())
	}
}

func TestGeometricCenters(Te *testing.T) {
	mol, coords := noeFixture()
	rst := []*Restraint{{Mask1: []int{0, 1}, Mask2: []int{2}, Bound: 0.5, BoundH: 4.0}}
	N, err := New(rst, mol, &Options{Geom: true})
	if err != nil {
		Te.Fatal(err)
	}
	d, err := N.Next(coords)
	if err != nil {
		Te.Fatal(err)
	}
	//the unweighted center is at x = 0.5
	if math.Abs(d[0]-3.5) > 1e-12 {
		Te.Errorf("Expected geometric-center distance 3.5, got %f", d[0])
	}
}

func TestOrthoImaging(Te *testing.T) {
	mol, coords := noeFixture()
	rst := []*Restraint{{Mask1: []int{0}, Mask2: []int{3}, Bound: 0.2, BoundH: 2.0}}
	N, err := New(rst, mol, &Options{Geom: true, Image: traj.Ortho})
	if err != nil {
		Te.Fatal(err)
	}
	d, err := N.Next(coords, []float64{10, 10, 10})
	if err != nil {
		Te.Fatal(err)
	}
	//9.5 across a 10 A box wraps to 0.5
	if math.Abs(d[0]-0.5) > 1e-12 {
		Te.Errorf("Expected imaged distance 0.5, got %f", d[0])
	}
	if _, err := N.Next(coords); err == nil {
		Te.Error("Orthogonal imaging without a box must fail")
	}
	//same restraint without imaging spans the box
	N2, err := New(rst, mol, &Options{Geom: true})
	if err != nil {
		Te.Fatal(err)
	}
	d, err = N2.Next(coords)
	if err != nil {
		Te.Fatal(err)
	}
	if math.Abs(d[0]-9.5) > 1e-12 {
		Te.Errorf("Expected plain distance 9.5, got %f", d[0])
	}
}

func TestEmptyMaskDeactivates(Te *testing.T) {
	mol, coords := noeFixture()
	rst := []*Restraint{
		{Mask1: []int{0}, Mask2: []int{}, Bound: 0.5, BoundH: 2.0},
		{Mask1: []int{0}, Mask2: []int{1}, Bound: 0.5, BoundH: 2.0},
	}
	N, err := New(rst, mol, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if rst[0].Active() || !rst[1].Active() {
		Te.Error("Wrong activation state after setup")
	}
	d, err := N.Next(coords)
	if err != nil {
		Te.Fatal(err)
	}
	if !math.IsNaN(d[0]) {
		Te.Errorf("Deactivated restraint must yield NaN, got %f", d[0])
	}
	if math.Abs(d[1]-1.0) > 1e-12 {
		Te.Errorf("Active restraint must still be evaluated, got %f", d[1])
	}
	v, err := N.Violations()
	if err != nil {
		Te.Fatal(err)
	}
	if !math.IsNaN(v[0]) || v[1] != 0 {
		Te.Errorf("Wrong violations for a deactivated restraint: %v", v)
	}
}

func TestSetupErrors(Te *testing.T) {
	mol, _ := noeFixture()
	//every restraint deactivated leaves nothing to analyze
	rst := []*Restraint{{Mask1: []int{}, Mask2: []int{}, Bound: 0, BoundH: 1}}
	if _, err := New(rst, mol, nil); err == nil {
		Te.Error("All restraints deactivated must be a setup error")
	}
	//out of range atoms are errors, not warnings
	rst = []*Restraint{{Mask1: []int{0}, Mask2: []int{99}, Bound: 0, BoundH: 1}}
	if _, err := New(rst, mol, nil); err == nil {
		Te.Error("An out of range atom index must be a setup error")
	}
	//a series slice of the wrong length cannot be matched to restraints
	rst = []*Restraint{
		{Mask1: []int{0}, Mask2: []int{1}, Bound: 0, BoundH: 1},
		{Mask1: []int{0}, Mask2: []int{2}, Bound: 0, BoundH: 1},
	}
	if _, err := New(rst, mol, &Options{Series: []traj.FloatSeries{nil}}); err == nil {
		Te.Error("A mismatched series slice must be a setup error")
	}
	//violations before any frame would be a division by zero
	N, err := New(rst, mol, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if _, err := N.Violations(); err == nil {
		Te.Error("Violations with no frames processed must fail")
	}
}
