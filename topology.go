/*
 * topology.go, part of gotraj.
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

import "fmt"

//Atom contains the per-atom topology information the analyses consume.
//The coordinates of the atom live separately, in a vec.Matrix with one
//row per atom, one matrix per frame.
type Atom struct {
	Name    string  //PDB name of the atom
	MolName string  //Name of the residue or molecule ("ALA", "SOL")
	MolID   int     //Residue or molecule number, starting from 1
	Chain   string  //One-letter chain identifier
	Symbol  string  //Element symbol
	Mass    float64 //in Daltons
}

//Topology is the minimal concrete topology of the library: an ordered
//collection of atoms. It fulfills Atomer and Masser. Parsers for actual
//topology file formats live outside this module and only need to
//produce one of these.
type Topology struct {
	atoms []*Atom
}

//NewTopology returns a Topology made of the given atoms. The slice is
//kept by the Topology, not copied.
func NewTopology(atoms []*Atom) *Topology {
	return &Topology{atoms: atoms}
}

//Atom returns the atom with index i. It panics if i is out of range.
func (T *Topology) Atom(i int) *Atom {
	if i >= T.Len() {
		panic(PanicMsg(fmt.Sprintf("traj.Topology: Requested atom %d out of %d", i, T.Len())))
	}
	return T.atoms[i]
}

//Len returns the number of atoms in the topology.
func (T *Topology) Len() int {
	return len(T.atoms)
}

//Masses returns a slice with the masses of all atoms. It fails if any
//atom has a non-positive mass.
func (T *Topology) Masses() ([]float64, error) {
	m := make([]float64, T.Len())
	for i, at := range T.atoms {
		if at.Mass <= 0 {
			return nil, CError{fmt.Sprintf("Atom %d (%s) has no mass assigned", i, at.Name), []string{"Masses"}}
		}
		m[i] = at.Mass
	}
	return m, nil
}

//AppendAtom adds one atom at the end of the topology.
func (T *Topology) AppendAtom(at *Atom) {
	T.atoms = append(T.atoms, at)
}

//NRes returns the number of residues in a topology, i.e. the largest
//MolID found. MolIDs start at 1.
func NRes(mol Atomer) int {
	nres := 0
	for i := 0; i < mol.Len(); i++ {
		if id := mol.Atom(i).MolID; id > nres {
			nres = id
		}
	}
	return nres
}

//IndexesByName returns the indexes of all atoms in mol whose PDB name
//is one of names, in topology order.
func IndexesByName(mol Atomer, names ...string) []int {
	var ret []int
	for i := 0; i < mol.Len(); i++ {
		if isInString(names, mol.Atom(i).Name) {
			ret = append(ret, i)
		}
	}
	return ret
}

//isInString returns true if test is in container, false otherwise.
func isInString(container []string, test string) bool {
	for _, i := range container {
		if test == i {
			return true
		}
	}
	return false
}

//isInInt is the same as isInString, but for ints.
func isInInt(container []int, test int) bool {
	for _, i := range container {
		if test == i {
			return true
		}
	}
	return false
}

//PanicMsg is the type used for the messages of panics raised by this
//package on programming errors, as opposed to recoverable conditions,
//which are returned as errors.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }
