/*
 * interfaces.go, part of gotraj.
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

//Atomer is the basic interface for a topology.
type Atomer interface {

	//Atom returns the Atom corresponding to the index i
	//of the Atom slice in the Topology. Should panic if
	//out of range.
	Atom(i int) *Atom

	Len() int
}

//Masser can return a slice with the masses of each atom in the reference.
type Masser interface {

	//Returns a column vector with the masses of all atoms
	Masses() ([]float64, error)
}

//The analyses do not own any on-disk format. They push their per-frame
//results through the following sinks, normally implemented by the
//dataset package, but callers are free to provide their own.

//FloatSeries is an append-one-value-per-frame sink for scalar results.
type FloatSeries interface {
	Add(frame int, v float64)
}

//IntSeries is an append-one-value-per-frame sink for integer-coded
//results, such as per-residue secondary structure codes.
type IntSeries interface {
	Add(frame int, v int)
}

//StringSeries is an append-one-string-per-frame sink, such as the
//per-frame secondary structure letter codes.
type StringSeries interface {
	Add(frame int, s string)
}

//Errors

//Error is the interface for errors that all packages in this library
//implement. The Decorate method allows to add and retrieve info from the
//error, without changing its type or wrapping it around something else.
type Error interface {
	Error() string
	//Decorate adds information to the error as it is passed up the call
	//stack, and returns the current decoration slice. If passed an empty
	//string it just returns the current value without adding anything.
	//Each element of the slice should be a function in the calling
	//stack, optionally as "FunctionName: Extra info".
	Decorate(string) []string
}
