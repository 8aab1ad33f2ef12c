/*
 * trajplot.go, part of gotraj.
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

//Package trajplot draws quick-look plots of analysis results: per
//residue secondary structure populations and cluster sizes.
package trajplot

import (
	"fmt"

	"github.com/dacase/gotraj/cluster"
	"github.com/dacase/gotraj/dssp"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

func basicPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	return p
}

//SSFractions plots the per-residue fraction of each secondary structure
//type, as returned by dssp.Fractions, one line per type, and saves the
//plot as plotname.png. resIDs gives the residue number of each row of
//fracs (dssp.SelectedResidues); if nil, rows are numbered from 1.
func SSFractions(fracs [][]float64, resIDs []int, title, plotname string) error {
	if fracs == nil {
		return fmt.Errorf("trajplot.SSFractions: Given nil data")
	}
	p := basicPlot(title, "Residue", "Fraction of frames")
	p.Y.Min = 0
	p.Y.Max = 1
	names := dssp.Names()
	args := make([]interface{}, 0, 2*len(names))
	for ss, name := range names {
		pts := make(plotter.XYs, len(fracs))
		for i, rf := range fracs {
			if ss >= len(rf) {
				return fmt.Errorf("trajplot.SSFractions: Residue row %d has %d types, expected %d", i, len(rf), len(names))
			}
			if resIDs != nil {
				pts[i].X = float64(resIDs[i])
			} else {
				pts[i].X = float64(i + 1)
			}
			pts[i].Y = rf[ss]
		}
		args = append(args, name, pts)
	}
	if err := plotutil.AddLinePoints(p, args...); err != nil {
		return err
	}
	return p.Save(15*vg.Centimeter, 10*vg.Centimeter, fmt.Sprintf("%s.png", plotname))
}

//ClusterPopulations plots the member count of every cluster of a
//clustering result as a bar chart and saves it as plotname.png.
func ClusterPopulations(r *cluster.Result, title, plotname string) error {
	if r == nil {
		return fmt.Errorf("trajplot.ClusterPopulations: Given nil result")
	}
	p := basicPlot(title, "Cluster", "Frames")
	sizes := make(plotter.Values, len(r.Clusters))
	for i, c := range r.Clusters {
		sizes[i] = float64(c.Nframes())
	}
	bars, err := plotter.NewBarChart(sizes, vg.Points(20))
	if err != nil {
		return err
	}
	bars.Color = plotutil.Color(2)
	p.Add(bars)
	names := make([]string, len(r.Clusters))
	for i := range names {
		names[i] = fmt.Sprintf("%d", i)
	}
	p.NominalX(names...)
	return p.Save(15*vg.Centimeter, 10*vg.Centimeter, fmt.Sprintf("%s.png", plotname))
}
