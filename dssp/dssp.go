/*
 * dssp.go, part of gotraj.
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

//Package dssp assigns a secondary structure type to each selected
//residue on every frame of a trajectory, from the backbone hydrogen-bond
//pattern (Kabsch & Sander, Biopolymers 22 (1983), 2577). In case of
//structural overlap, priority is given to the structure first in the
//list H, B, E, G, I, T, as stated on p. 2595 of the paper.
package dssp

import (
	"fmt"
	"runtime"

	traj "github.com/dacase/gotraj"
	"github.com/dacase/gotraj/vec"
)

//SS is a mutually-exclusive secondary structure type. The integer
//values are the codes written to per-residue series sinks.
type SS int

const (
	None SS = iota
	Para
	Anti
	ThreeTen
	Alpha
	Pi
	Turn
)

var sschar = [7]byte{'0', 'b', 'B', 'G', 'H', 'I', 'T'}
var ssname = [7]string{"None", "Para", "Anti", "3-10", "Alpha", "Pi", "Turn"}

//Char returns the one-letter code of the structure type.
func (s SS) Char() byte { return sschar[s] }

func (s SS) String() string { return ssname[s] }

//Names returns the names of the 6 non-None structure types, in integer
//code order.
func Names() []string { return ssname[1:] }

const (
	//DSSPFac is the Kabsch-Sander electrostatic factor q1*q2*f, in
	//kcal*A/mol.
	DSSPFac = 332.0
	//hbondCut is the energy below which a CO-HN pair counts as bonded,
	//in kcal/mol.
	hbondCut = -0.5
)

//residue is the per-residue working record. The hbond row and sstype
//are reset on every frame; the prob counters persist for the whole run.
type residue struct {
	C, O, N, H int //atom indexes, -1 if absent
	selected   bool
	sstype     SS
	hbond      []bool //hbond[j]: this residue's CO bonds residue j's NH
	prob       [7]float64
}

//Options contains the optional settings of a DSSP analysis.
type Options struct {
	Cpus int //goroutines for the per-frame hydrogen bond search
	//Per-frame output sinks, all optional. String receives the letter
	//codes of the selected residues as one string per frame. PerResidue
	//receives one integer code per selected residue per frame; if given,
	//it must have one series per selected residue.
	String     traj.StringSeries
	PerResidue []traj.IntSeries
}

//DefaultOptions returns reasonable options for atomistic trajectories.
func DefaultOptions() *Options {
	r := new(Options)
	r.Cpus = runtime.NumCPU()
	return r
}

//DSSP holds the analysis state across the frames of a trajectory: the
//per-residue records and the count of frames processed so far. It is
//owned by the caller and not safe for concurrent use; the parallelism
//happens inside Next.
type DSSP struct {
	res    []residue
	nres   int
	nframe int
	cpus   int
	maxat  int //largest atom index used, to validate frames
	line   []byte
	codes  []int
	osink  traj.StringSeries
	rsinks []traj.IntSeries
}

//New returns a DSSP analysis set up for the given topology. selection
//contains the indexes of the atoms to consider; nil means all atoms.
//Backbone atoms are recognized by the PDB names "C", "O", "N" and "H".
func New(mol traj.Atomer, selection []int, o *Options) (*DSSP, error) {
	if o == nil {
		o = DefaultOptions()
	}
	D := new(DSSP)
	D.cpus = o.Cpus
	if D.cpus < 1 {
		D.cpus = 1
	}
	D.osink = o.String
	D.rsinks = o.PerResidue
	if err := D.Setup(mol, selection); err != nil {
		return nil, errDecorate(err, "New")
	}
	if D.rsinks != nil && len(D.rsinks) != len(D.codes) {
		return nil, Error{fmt.Sprintf("%d per-residue series given for %d selected residues", len(D.rsinks), len(D.codes)), []string{"New"}}
	}
	return D, nil
}

//Setup prepares the per-residue records for a topology. It may be
//called again when the topology changes between trajectory segments:
//the residue table only grows, and the occurrence counters of existing
//residues are preserved. A failed Setup leaves the accumulated state
//untouched, so the analysis can be skipped for that topology only.
func (D *DSSP) Setup(mol traj.Atomer, selection []int) error {
	if mol == nil || mol.Len() == 0 {
		return Error{traj.ErrNilData, []string{"Setup"}}
	}
	if selection == nil {
		selection = make([]int, mol.Len())
		for i := range selection {
			selection[i] = i
		}
	}
	if len(selection) == 0 {
		return Error{traj.ErrEmptySel, []string{"Setup"}}
	}
	nres := traj.NRes(mol)
	if nres < 1 {
		return Error{"Topology has no residues", []string{"Setup"}}
	}
	for r := len(D.res); r < nres; r++ {
		D.res = append(D.res, residue{C: -1, O: -1, N: -1, H: -1})
	}
	//The adjacency rows are reset on every frame anyway, so on growth
	//they can simply be reallocated. Only the prob counters survive.
	for i := range D.res {
		D.res[i].selected = false
		D.res[i].sstype = None
		D.res[i].C, D.res[i].O, D.res[i].N, D.res[i].H = -1, -1, -1, -1
		if len(D.res[i].hbond) != nres {
			D.res[i].hbond = make([]bool, nres)
		}
	}
	maxat := 0
	for _, atom := range selection {
		if atom < 0 || atom >= mol.Len() {
			return Error{fmt.Sprintf("Selected atom %d out of range", atom), []string{"Setup"}}
		}
		if atom > maxat {
			maxat = atom
		}
		at := mol.Atom(atom)
		res := at.MolID - 1
		if res < 0 || res >= nres {
			return Error{fmt.Sprintf("Atom %d has MolID %d out of range", atom, at.MolID), []string{"Setup"}}
		}
		D.res[res].selected = true
		switch at.Name {
		case "C":
			D.res[res].C = atom
		case "O":
			D.res[res].O = atom
		case "N":
			D.res[res].N = atom
		case "H":
			D.res[res].H = atom
		}
	}
	selected := 0
	backbone := false
	for r := 0; r < nres; r++ {
		if !D.res[r].selected {
			continue
		}
		selected++
		if (D.res[r].C != -1 && D.res[r].O != -1) || (D.res[r].N != -1 && D.res[r].H != -1) {
			backbone = true
		}
	}
	if selected == 0 {
		return Error{traj.ErrEmptySel, []string{"Setup"}}
	}
	if !backbone {
		return Error{traj.ErrNoBackbone, []string{"Setup"}}
	}
	D.nres = nres
	D.maxat = maxat
	D.line = make([]byte, selected)
	D.codes = make([]int, selected)
	return nil
}

//Next processes one frame: it recomputes the full hydrogen bond matrix
//from the frame's coordinates, classifies every selected residue, and
//updates the running occurrence counters. It returns the one-letter
//codes of the selected residues, in residue order. An error leaves the
//accumulated state exactly as it was before the call.
func (D *DSSP) Next(coord *vec.Matrix) (string, error) {
	if coord == nil {
		return "", Error{traj.ErrNilData, []string{"Next"}}
	}
	if coord.NVecs() <= D.maxat {
		return "", Error{fmt.Sprintf("Frame has %d atoms but the selection needs at least %d", coord.NVecs(), D.maxat+1), []string{"Next"}}
	}
	D.buildHBonds(coord)
	D.assign()
	line := D.accumulate()
	D.nframe++
	if D.osink != nil {
		D.osink.Add(D.nframe-1, line)
	}
	if D.rsinks != nil {
		for i, c := range D.codes {
			D.rsinks[i].Add(D.nframe-1, c)
		}
	}
	return line, nil
}

//buildHBonds determines the CO to HN hydrogen bonds of every selected
//residue against every other one. Each goroutine writes only to the
//rows of its own residue range, and reads only the shared coordinates,
//so no locking is involved.
func (D *DSSP) buildHBonds(coord *vec.Matrix) {
	cpus := D.cpus
	if cpus > D.nres {
		cpus = D.nres
	}
	chunk := (D.nres + cpus - 1) / cpus
	done := make(chan bool, cpus)
	for w := 0; w < cpus; w++ {
		start := w * chunk
		end := start + chunk
		if end > D.nres {
			end = D.nres
		}
		go func(start, end int) {
			for i := start; i < end; i++ {
				D.hbondRow(i, coord)
			}
			done <- true
		}(start, end)
	}
	for w := 0; w < cpus; w++ {
		<-done
	}
}

//hbondRow resets residue i and recomputes its hydrogen bond row for the
//current frame.
func (D *DSSP) hbondRow(resi int, coord *vec.Matrix) {
	ri := &D.res[resi]
	if !ri.selected {
		return
	}
	//no state survives from the previous frame
	ri.sstype = None
	for j := range ri.hbond {
		ri.hbond[j] = false
	}
	if ri.C == -1 || ri.O == -1 {
		return
	}
	for resj := range D.res {
		rj := &D.res[resj]
		if !rj.selected || resj == resi {
			continue
		}
		//a residue missing N or H just can't accept; not an error
		if rj.H == -1 || rj.N == -1 {
			continue
		}
		rON := traj.Dist(coord, ri.O, rj.N)
		rCH := traj.Dist(coord, ri.C, rj.H)
		rOH := traj.Dist(coord, ri.O, rj.H)
		rCN := traj.Dist(coord, ri.C, rj.N)
		E := DSSPFac * (1/rON + 1/rCH - 1/rOH - 1/rCN)
		if E < hbondCut {
			ri.hbond[resj] = true
		}
	}
}

//isBonded reports whether residue res1's CO bonds residue res2's NH.
//Out of range or unselected residues are never bonded.
func (D *DSSP) isBonded(res1, res2 int) bool {
	if res1 < 0 || res2 < 0 || res1 >= D.nres || res2 >= D.nres {
		return false
	}
	if !D.res[res1].selected || !D.res[res2].selected {
		return false
	}
	return D.res[res1].hbond[res2]
}

//ssassign assigns sstype to all selected residues from res1 to res2-1
//that do not have a type yet. The first assignment always wins.
func (D *DSSP) ssassign(res1, res2 int, sstype SS) {
	for res := res1; res < res2; res++ {
		if res == D.nres {
			break
		}
		if !D.res[res].selected {
			continue
		}
		if D.res[res].sstype == None {
			D.res[res].sstype = sstype
		}
	}
}

//assign determines the secondary structure of every selected residue
//from the completed hydrogen bond matrix.
func (D *DSSP) assign() {
	for resi := 0; resi < D.nres; resi++ {
		if !D.res[resi].selected {
			continue
		}
		//Alpha helices
		if D.isBonded(resi-1, resi+3) && D.isBonded(resi, resi+4) {
			D.ssassign(resi, resi+4, Alpha)
			continue
		}
		//Beta sheets, only if nothing assigned this residue yet
		if D.res[resi].sstype == None {
			for resj := 0; resj < D.nres; resj++ {
				if !D.res[resj].selected {
					continue
				}
				//only residues spaced more than 2 apart
				if abs(resi-resj) > 2 {
					//parallel beats antiparallel for the same resj
					if (D.isBonded(resi-1, resj) && D.isBonded(resj, resi+1)) ||
						(D.isBonded(resj-1, resi) && D.isBonded(resi, resj+1)) {
						D.res[resi].sstype = Para
						break
					} else if (D.isBonded(resi-1, resj+1) && D.isBonded(resj-1, resi+1)) ||
						(D.isBonded(resi, resj) && D.isBonded(resj, resi)) {
						D.res[resi].sstype = Anti
						break
					}
				}
			}
			if D.res[resi].sstype != None {
				continue
			}
		}
		//3-10 helix
		if D.isBonded(resi-1, resi+2) && D.isBonded(resi, resi+3) {
			D.ssassign(resi, resi+3, ThreeTen)
			continue
		}
		//Pi helix
		if D.isBonded(resi-1, resi+4) && D.isBonded(resi, resi+5) {
			D.ssassign(resi, resi+5, Pi)
			continue
		}
	}
	//Turns, in a second pass: the longest qualifying span wins.
	for resi := 0; resi < D.nres; resi++ {
		if !D.res[resi].selected {
			continue
		}
		for span := 5; span > 2; span-- {
			if D.isBonded(resi, resi+span) {
				D.ssassign(resi+1, resi+span, Turn)
				break
			}
		}
	}
}

//accumulate updates the occurrence counters with the frame's final
//labels and builds the letter code line.
func (D *DSSP) accumulate() string {
	k := 0
	for resi := range D.res {
		r := &D.res[resi]
		if !r.selected {
			continue
		}
		r.prob[r.sstype]++
		D.line[k] = r.sstype.Char()
		D.codes[k] = int(r.sstype)
		k++
	}
	return string(D.line)
}

//Codes returns the integer structure codes of the selected residues for
//the last processed frame, in residue order. The returned slice is
//reused between frames; copy it to keep it.
func (D *DSSP) Codes() []int {
	return D.codes
}

//SelectedResidues returns the MolIDs of the selected residues, in the
//order used by Codes, Next and Fractions.
func (D *DSSP) SelectedResidues() []int {
	var ret []int
	for resi := range D.res {
		if D.res[resi].selected {
			ret = append(ret, resi+1)
		}
	}
	return ret
}

//FramesProcessed returns the number of frames accumulated so far.
func (D *DSSP) FramesProcessed() int {
	return D.nframe
}

//Fractions returns, for each selected residue, the fraction of the
//processed frames on which the residue had each of the 6 non-None
//structure types, indexed as [residue][SS-1] in the order given by
//Names. It fails if no frames have been processed, rather than
//producing silent division garbage.
func (D *DSSP) Fractions() ([][]float64, error) {
	if D.nframe == 0 {
		return nil, Error{traj.ErrNoFrames, []string{"Fractions"}}
	}
	var ret [][]float64
	for resi := range D.res {
		r := &D.res[resi]
		if !r.selected {
			continue
		}
		f := make([]float64, 6)
		for ss := 1; ss < 7; ss++ {
			f[ss-1] = r.prob[ss] / float64(D.nframe)
		}
		ret = append(ret, f)
	}
	return ret, nil
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}

//Errors

//Error is the error type of the dssp package. It fulfills the traj
//Error interface.
type Error struct {
	message string
	deco    []string
}

func (err Error) Error() string { return fmt.Sprintf("dssp error: %s", err.message) }

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
