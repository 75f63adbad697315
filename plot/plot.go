// Package plot renders fetched glider tables: track maps, depth/time
// transects, CTD profiles, and temperature-salinity diagrams. It reads the
// canonical columns produced by glider.Standardize (longitude, latitude,
// pressure, salinity, temperature) and delegates drawing to gonum/plot.
package plot

import (
	"math"

	"github.com/morikuni/failure/v2"
	"github.com/oceanglide/gliderfetch/dataframe"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ErrorCode defines error types for plotting operations
type ErrorCode string

const (
	// ErrMissingColumn represents a table without a column a plot needs
	ErrMissingColumn ErrorCode = "MissingColumn"

	// ErrEmptyTable represents a table with no plottable rows
	ErrEmptyTable ErrorCode = "EmptyTable"

	// ErrNoSuchProfile represents a profile number past the table's groups
	ErrNoSuchProfile ErrorCode = "NoSuchProfile"
)

func (c ErrorCode) ErrorCode() string {
	return string(c)
}

// column fetches a canonical column or fails naming it.
func column(tbl *dataframe.Table, name string) ([]float64, error) {
	v, ok := tbl.Column(name)
	if !ok {
		return nil, failure.New(ErrMissingColumn,
			failure.Message("table is missing a column required by this plot"),
			failure.Context{
				"column": name,
			},
		)
	}
	return v, nil
}

// Track plots the glider path as a longitude/latitude scatter with 2
// degrees of longitude and 4 degrees of latitude padding around the data.
func Track(tbl *dataframe.Table) (*plot.Plot, error) {
	lon, err := column(tbl, "longitude")
	if err != nil {
		return nil, err
	}
	lat, err := column(tbl, "latitude")
	if err != nil {
		return nil, err
	}

	pts := make(plotter.XYs, 0, len(lon))
	for i := range lon {
		if math.IsNaN(lon[i]) || math.IsNaN(lat[i]) {
			continue
		}
		pts = append(pts, plotter.XY{X: lon[i], Y: lat[i]})
	}
	if len(pts) == 0 {
		return nil, failure.New(ErrEmptyTable,
			failure.Message("no positions to plot"),
		)
	}

	p := plot.New()
	p.Title.Text = "Glider track"
	p.X.Label.Text = "longitude"
	p.Y.Label.Text = "latitude"

	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, failure.Wrap(err)
	}
	sc.GlyphStyle.Radius = vg.Points(2)
	sc.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(sc)

	const dx, dy = 2, 4
	xmin, xmax := minMax(pts, func(xy plotter.XY) float64 { return xy.X })
	ymin, ymax := minMax(pts, func(xy plotter.XY) float64 { return xy.Y })
	p.X.Min, p.X.Max = xmin-dx, xmax+dx
	p.Y.Min, p.Y.Max = ymin-dy, ymax+dy

	return p, nil
}

// Transect plots depth against time as a scatter colored by the named
// variable, with the pressure axis increasing downward.
func Transect(tbl *dataframe.Table, variable string) (*plot.Plot, error) {
	pressure, err := column(tbl, "pressure")
	if err != nil {
		return nil, err
	}
	values, err := column(tbl, variable)
	if err != nil {
		return nil, err
	}
	index := tbl.Index()

	pts := make(plotter.XYs, 0, len(index))
	colors := make([]float64, 0, len(index))
	for i := range index {
		if math.IsNaN(pressure[i]) || math.IsNaN(values[i]) {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(index[i].Unix()), Y: pressure[i]})
		colors = append(colors, values[i])
	}
	if len(pts) == 0 {
		return nil, failure.New(ErrEmptyTable,
			failure.Message("no observations to plot"),
			failure.Context{
				"variable": variable,
			},
		)
	}

	p := plot.New()
	p.Title.Text = variable + " transect"
	p.Y.Label.Text = "pressure"
	p.X.Tick.Marker = plot.TimeTicks{Format: "15:04\n02-Jan"}
	p.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}

	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, failure.Wrap(err)
	}

	cmap := moreland.SmoothBlueRed()
	cmap.SetMin(floats.Min(colors))
	cmap.SetMax(floats.Max(colors))
	sc.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		c, cerr := cmap.At(colors[i])
		if cerr != nil {
			return draw.GlyphStyle{Radius: vg.Points(1.5), Shape: draw.CircleGlyph{}}
		}
		return draw.GlyphStyle{Color: c, Radius: vg.Points(1.5), Shape: draw.CircleGlyph{}}
	}
	p.Add(sc)

	return p, nil
}

func minMax(pts plotter.XYs, f func(plotter.XY) float64) (float64, float64) {
	min, max := f(pts[0]), f(pts[0])
	for _, xy := range pts {
		v := f(xy)
		min = math.Min(min, v)
		max = math.Max(max, v)
	}
	return min, max
}
