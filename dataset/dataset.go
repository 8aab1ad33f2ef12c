/*
 * dataset.go, part of gotraj.
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

//Package dataset holds the tabular results of the analyses: series with
//one value per frame (or per any other index, such as a residue or a
//cluster number), and writers that lay them out as fixed-width text
//tables, optionally compressed.
package dataset

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/stat"
)

//Column is the common interface of all series, as consumed by the table
//writer.
type Column interface {
	Name() string
	Len() int
	//Cell returns the formatted cell for index i, already padded to the
	//table's column width.
	Cell(i int) string
}

const cellwidth = 12

//Floats is an append-one-float-per-index series. Indexes may arrive out
//of order or with gaps; gaps are zero-filled, as in any fixed-width
//table there is a cell for every index.
type Floats struct {
	name string
	data []float64
}

//NewFloats returns an empty float series with the given name. hint is
//the expected number of values, used only to preallocate.
func NewFloats(name string, hint int) *Floats {
	return &Floats{name: name, data: make([]float64, 0, hint)}
}

func (d *Floats) Name() string { return d.name }

func (d *Floats) Len() int { return len(d.data) }

//Add records v at the given index, zero-filling any gap.
func (d *Floats) Add(frame int, v float64) {
	for frame >= len(d.data) {
		d.data = append(d.data, 0)
	}
	d.data[frame] = v
}

//At returns the value at index i.
func (d *Floats) At(i int) float64 { return d.data[i] }

//Data returns the underlying slice, not a copy.
func (d *Floats) Data() []float64 { return d.data }

//Avg returns the mean of the series.
func (d *Floats) Avg() float64 { return stat.Mean(d.data, nil) }

//StdDev returns the standard deviation of the series.
func (d *Floats) StdDev() float64 { return stat.StdDev(d.data, nil) }

func (d *Floats) Cell(i int) string {
	if i >= len(d.data) {
		return fmt.Sprintf("%*s", cellwidth, "")
	}
	return fmt.Sprintf("%*.4f", cellwidth, d.data[i])
}

//Ints is an append-one-integer-per-index series.
type Ints struct {
	name string
	data []int
}

//NewInts returns an empty integer series with the given name.
func NewInts(name string, hint int) *Ints {
	return &Ints{name: name, data: make([]int, 0, hint)}
}

func (d *Ints) Name() string { return d.name }

func (d *Ints) Len() int { return len(d.data) }

//Add records v at the given index, zero-filling any gap.
func (d *Ints) Add(frame int, v int) {
	for frame >= len(d.data) {
		d.data = append(d.data, 0)
	}
	d.data[frame] = v
}

//At returns the value at index i.
func (d *Ints) At(i int) int { return d.data[i] }

//Data returns the underlying slice, not a copy.
func (d *Ints) Data() []int { return d.data }

func (d *Ints) Cell(i int) string {
	if i >= len(d.data) {
		return fmt.Sprintf("%*s", cellwidth, "")
	}
	return fmt.Sprintf("%*d", cellwidth, d.data[i])
}

//Strings is an append-one-string-per-index series.
type Strings struct {
	name string
	data []string
}

//NewStrings returns an empty string series with the given name.
func NewStrings(name string, hint int) *Strings {
	return &Strings{name: name, data: make([]string, 0, hint)}
}

func (d *Strings) Name() string { return d.name }

func (d *Strings) Len() int { return len(d.data) }

//Add records s at the given index, filling any gap with empty strings.
func (d *Strings) Add(frame int, s string) {
	for frame >= len(d.data) {
		d.data = append(d.data, "")
	}
	d.data[frame] = s
}

//At returns the string at index i.
func (d *Strings) At(i int) string { return d.data[i] }

func (d *Strings) Cell(i int) string {
	if i >= len(d.data) {
		return fmt.Sprintf("%*s", cellwidth, "")
	}
	return fmt.Sprintf("%*s", cellwidth, d.data[i])
}

//WriteTable lays the given columns side by side as a fixed-width text
//table: a header line with the index label and the column names, then
//one line per index up to the longest column. Shorter columns leave
//their trailing cells blank.
func WriteTable(w io.Writer, xlabel string, cols ...Column) error {
	if len(cols) == 0 {
		return Error{"No columns given", []string{"WriteTable"}}
	}
	rows := 0
	header := fmt.Sprintf("#%-*s", cellwidth-1, xlabel)
	for _, c := range cols {
		header += fmt.Sprintf("%*s", cellwidth, c.Name())
		if c.Len() > rows {
			rows = c.Len()
		}
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return Error{err.Error(), []string{"WriteTable"}}
	}
	for i := 0; i < rows; i++ {
		line := fmt.Sprintf("%-*d", cellwidth, i+1)
		for _, c := range cols {
			line += c.Cell(i)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return Error{err.Error(), []string{"WriteTable"}}
		}
	}
	return nil
}

//Errors

//Error is the error type of the dataset package. It fulfills the traj
//Error interface.
type Error struct {
	message string
	deco    []string
}

func (err Error) Error() string { return fmt.Sprintf("dataset error: %s", err.message) }

//Decorate adds new information to the error.
func (err Error) Decorate(dec string) []string {
	//The receiver is not a pointer, but err.deco is a slice, and hence
	//a pointer itself, so the decoration is still recorded.
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}
