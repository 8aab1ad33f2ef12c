/*
 * errors.go, part of gotraj.
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

//CError is the concrete error type of the root package. It fulfills the
//Error interface of this library.
type CError struct {
	msg  string
	deco []string
}

func (err CError) Error() string { return err.msg }

//Decorate adds new information to the error.
func (err CError) Decorate(dec string) []string {
	//The receiver is not a pointer, but err.deco is a slice, and hence
	//a pointer itself, so the decoration is still recorded.
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Common error messages.
const (
	ErrNilData       = "Nil data given"
	ErrEmptySel      = "Selection matches no atoms"
	ErrNoBackbone    = "No residue in the selection has backbone atoms"
	ErrNoFrames      = "No frames were processed"
	ErrOutOfRange    = "Index out of range"
	ErrInconsistent  = "Inconsistent data lengths"
	ErrNotOrthogonal = "Box is not orthogonal"
)

//errDecorate asserts that err implements the library's Error interface
//and decorates it with the caller's name before returning it. It will
//panic if used on any other error type.
func errDecorate(err error, caller string) error {
	err2 := err.(Error)
	err2.Decorate(caller)
	return err2
}
