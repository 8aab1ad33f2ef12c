/*
 * doc.go, part of gotraj.
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

//Package traj provides the analysis core of a molecular-dynamics
//trajectory processing toolkit: per-frame secondary structure assignment
//(package dssp), density-based clustering of frames (package cluster),
//NOE restraint distances (package noe) and the tabular datasets the
//analyses write to (package dataset).
//
//The root package contains the data contracts shared by the analyses:
//minimal topology types, the geometric primitives they consume and the
//error interface implemented across the library. Trajectory and topology
//file I/O are deliberately not part of this module; coordinates enter
//the analyses one frame at a time as a *vec.Matrix.
package traj
