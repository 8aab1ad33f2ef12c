/*
 * noe.go, part of gotraj.
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

//Package noe evaluates NMR NOE distance restraints along a trajectory:
//for each restraint, the per-frame distance between the centers of its
//two atom groups, plus a running count of bound violations. Parsing of
//restraint files (Amber, XPLOR) is left to external collaborators; this
//package consumes already-resolved atom index masks.
package noe

import (
	"fmt"
	"log"
	"math"

	traj "github.com/dacase/gotraj"
	"github.com/dacase/gotraj/vec"
)

//Restraint is one NOE distance restraint with its atom groups already
//resolved to topology indexes. Bound and BoundH are the lower and upper
//distance bounds in Angstrom; Rexp is the expected distance, negative
//when the restraint file did not carry one.
type Restraint struct {
	Mask1, Mask2 []int
	Bound        float64
	BoundH       float64
	Rexp         float64
	active       bool
}

//Active reports whether the restraint survived setup: restraints whose
//masks select no atoms are deactivated with a warning, not an error.
func (r *Restraint) Active() bool { return r.active }

//Options contains the optional settings of an NOE analysis.
type Options struct {
	//Geom uses geometric instead of mass-weighted group centers.
	Geom bool
	//Image selects minimum-image handling of the center distances.
	Image traj.ImageType
	//Series, if given, receives one distance per restraint per frame;
	//it must have one entry per restraint (nil entries are skipped).
	Series []traj.FloatSeries
}

//DefaultOptions returns the defaults: mass-weighted centers, no
//imaging.
func DefaultOptions() *Options {
	return new(Options)
}

//NOE evaluates a set of restraints frame by frame. It is owned by the
//caller; one instance per trajectory.
type NOE struct {
	rst    []*Restraint
	masses []float64
	natoms int
	geom   bool
	image  traj.ImageType
	sinks  []traj.FloatSeries
	nframe int
	viol   []int
}

//New sets up an NOE analysis of the given restraints over the topology.
//Restraints with empty masks are deactivated with a warning. With
//mass-weighted centers (the default), mol must also implement
//traj.Masser.
func New(rst []*Restraint, mol traj.Atomer, o *Options) (*NOE, error) {
	if o == nil {
		o = DefaultOptions()
	}
	if len(rst) == 0 || mol == nil {
		return nil, Error{traj.ErrNilData, []string{"New"}}
	}
	N := &NOE{rst: rst, geom: o.Geom, image: o.Image, sinks: o.Series}
	N.natoms = mol.Len()
	N.viol = make([]int, len(rst))
	if N.sinks != nil && len(N.sinks) != len(rst) {
		return nil, Error{fmt.Sprintf("%d series given for %d restraints", len(N.sinks), len(rst)), []string{"New"}}
	}
	if !N.geom {
		masser, ok := mol.(traj.Masser)
		if !ok {
			return nil, Error{"Mass-weighted centers requested but the topology carries no masses", []string{"New"}}
		}
		var err error
		N.masses, err = masser.Masses()
		if err != nil {
			return nil, errDecorate(err, "New")
		}
	}
	nactive := 0
	for i, r := range rst {
		r.active = len(r.Mask1) > 0 && len(r.Mask2) > 0
		if !r.active {
			log.Printf("noe: One or both masks of restraint %d select no atoms, restraint deactivated", i)
			continue
		}
		for _, at := range append(append([]int{}, r.Mask1...), r.Mask2...) {
			if at < 0 || at >= N.natoms {
				return nil, Error{fmt.Sprintf("Restraint %d selects atom %d, topology has %d", i, at, N.natoms), []string{"New"}}
			}
		}
		nactive++
	}
	if nactive == 0 {
		return nil, Error{traj.ErrEmptySel, []string{"New"}}
	}
	return N, nil
}

//Next evaluates every active restraint on one frame and returns the
//distances, indexed like the restraints; inactive restraints yield NaN.
//For Ortho imaging, box must carry the 3 box lengths; for NonOrtho, the
//9 components of the 3 cell vectors, row after row.
func (N *NOE) Next(coord *vec.Matrix, box ...[]float64) ([]float64, error) {
	if coord == nil {
		return nil, Error{traj.ErrNilData, []string{"Next"}}
	}
	if coord.NVecs() < N.natoms {
		return nil, Error{fmt.Sprintf("Frame has %d atoms, topology %d", coord.NVecs(), N.natoms), []string{"Next"}}
	}
	var ucell *vec.Matrix
	var blen []float64
	switch N.image {
	case traj.Ortho:
		if len(box) == 0 || len(box[0]) < 3 {
			return nil, Error{"Orthogonal imaging needs 3 box lengths", []string{"Next"}}
		}
		blen = box[0]
	case traj.NonOrtho:
		if len(box) == 0 || len(box[0]) < 9 {
			return nil, Error{"Triclinic imaging needs the 9 cell vector components", []string{"Next"}}
		}
		var err error
		ucell, err = vec.NewMatrix(box[0][0:9])
		if err != nil {
			return nil, errDecorate(err, "Next")
		}
	}
	ret := make([]float64, len(N.rst))
	for i, r := range N.rst {
		if !r.active {
			ret[i] = math.NaN()
			continue
		}
		c1, err := N.center(coord, r.Mask1)
		if err != nil {
			return nil, errDecorate(err, "Next")
		}
		c2, err := N.center(coord, r.Mask2)
		if err != nil {
			return nil, errDecorate(err, "Next")
		}
		var d float64
		switch N.image {
		case traj.Ortho:
			d, err = traj.DistOrtho(c1, c2, blen)
		case traj.NonOrtho:
			d, err = traj.DistNonOrtho(c1, c2, ucell)
		default:
			d = traj.DistVec(c1, c2)
		}
		if err != nil {
			return nil, errDecorate(err, "Next")
		}
		ret[i] = d
		if d > r.BoundH || d < r.Bound {
			N.viol[i]++
		}
		if N.sinks != nil && N.sinks[i] != nil {
			N.sinks[i].Add(N.nframe, d)
		}
	}
	N.nframe++
	return ret, nil
}

func (N *NOE) center(coord *vec.Matrix, mask []int) (*vec.Matrix, error) {
	if N.geom {
		return traj.GeometricCenter(coord, mask), nil
	}
	return traj.CenterOfMass(coord, N.masses, mask)
}

//FramesProcessed returns the number of frames evaluated so far.
func (N *NOE) FramesProcessed() int { return N.nframe }

//Violations returns, per restraint, the fraction of processed frames on
//which the distance fell outside [Bound, BoundH]. Inactive restraints
//yield NaN. It fails if no frames have been processed.
func (N *NOE) Violations() ([]float64, error) {
	if N.nframe == 0 {
		return nil, Error{traj.ErrNoFrames, []string{"Violations"}}
	}
	ret := make([]float64, len(N.rst))
	for i, r := range N.rst {
		if !r.active {
			ret[i] = math.NaN()
			continue
		}
		ret[i] = float64(N.viol[i]) / float64(N.nframe)
	}
	return ret, nil
}

//Errors

//Error is the error type of the noe package. It fulfills the traj
//Error interface.
type Error struct {
	message string
	deco    []string
}

func (err Error) Error() string { return fmt.Sprintf("noe error: %s", err.message) }

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
