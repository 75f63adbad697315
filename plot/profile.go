package plot

import (
	"image/color"
	"math"
	"strconv"

	"github.com/morikuni/failure/v2"
	"github.com/oceanglide/gliderfetch/dataframe"
	"github.com/oceanglide/gliderfetch/seawater"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// profiles groups row indices by identical longitude/latitude pairs in
// first-appearance order. Each group is one vertical profile (the glider
// holds position while diving).
func profiles(tbl *dataframe.Table) ([][]int, error) {
	lon, err := column(tbl, "longitude")
	if err != nil {
		return nil, err
	}
	lat, err := column(tbl, "latitude")
	if err != nil {
		return nil, err
	}

	type position struct{ lon, lat float64 }
	byPos := make(map[position]int)
	var groups [][]int
	for i := range lon {
		pos := position{lon[i], lat[i]}
		gi, ok := byPos[pos]
		if !ok {
			gi = len(groups)
			byPos[pos] = gi
			groups = append(groups, nil)
		}
		groups[gi] = append(groups[gi], i)
	}
	return groups, nil
}

// profileRows returns the row indices of the nth profile.
func profileRows(tbl *dataframe.Table, n int) ([]int, error) {
	groups, err := profiles(tbl)
	if err != nil {
		return nil, err
	}
	if n < 0 || n >= len(groups) {
		return nil, failure.New(ErrNoSuchProfile,
			failure.Message("profile number out of range"),
			failure.Context{
				"profile":  strconv.Itoa(n),
				"profiles": strconv.Itoa(len(groups)),
			},
		)
	}
	return groups[n], nil
}

// Profile plots one CTD cast: the named variable against pressure for the
// nth profile, pressure increasing downward.
func Profile(tbl *dataframe.Table, n int, variable string) (*plot.Plot, error) {
	rows, err := profileRows(tbl, n)
	if err != nil {
		return nil, err
	}
	pressure, err := column(tbl, "pressure")
	if err != nil {
		return nil, err
	}
	values, err := column(tbl, variable)
	if err != nil {
		return nil, err
	}

	pts := make(plotter.XYs, 0, len(rows))
	for _, i := range rows {
		if math.IsNaN(pressure[i]) || math.IsNaN(values[i]) {
			continue
		}
		pts = append(pts, plotter.XY{X: values[i], Y: pressure[i]})
	}
	if len(pts) == 0 {
		return nil, failure.New(ErrEmptyTable,
			failure.Message("profile has no observations"),
			failure.Context{
				"variable": variable,
			},
		)
	}

	p := plot.New()
	p.X.Label.Text = variable
	p.Y.Label.Text = "Pressure"
	p.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, failure.Wrap(err)
	}
	p.Add(line)
	p.Legend.Add(variable, line)

	return p, nil
}

// TSDiagram plots absolute salinity against temperature for the nth
// profile, colored by pressure, over sigma-theta isopycnal contours.
func TSDiagram(tbl *dataframe.Table, n int) (*plot.Plot, error) {
	rows, err := profileRows(tbl, n)
	if err != nil {
		return nil, err
	}
	salinity, err := column(tbl, "salinity")
	if err != nil {
		return nil, err
	}
	temperature, err := column(tbl, "temperature")
	if err != nil {
		return nil, err
	}
	pressure, err := column(tbl, "pressure")
	if err != nil {
		return nil, err
	}

	pts := make(plotter.XYs, 0, len(rows))
	press := make([]float64, 0, len(rows))
	for _, i := range rows {
		if math.IsNaN(salinity[i]) || math.IsNaN(temperature[i]) || math.IsNaN(pressure[i]) {
			continue
		}
		pts = append(pts, plotter.XY{
			X: seawater.AbsoluteSalinity(salinity[i]),
			Y: temperature[i],
		})
		press = append(press, pressure[i])
	}
	if len(pts) == 0 {
		return nil, failure.New(ErrEmptyTable,
			failure.Message("profile has no observations"),
		)
	}

	p := plot.New()
	p.X.Label.Text = "Salinity"
	p.Y.Label.Text = "Temperature"

	// Isopycnals over a grid one unit wider than the data on each side.
	smin, smax := minMax(pts, func(xy plotter.XY) float64 { return xy.X })
	tmin, tmax := minMax(pts, func(xy plotter.XY) float64 { return xy.Y })
	grid := sigmaGrid{
		sal:  span(smin-1, smax+1, gridSteps),
		temp: span(tmin-1, tmax+1, gridSteps),
	}
	// Density rises with salinity and falls with temperature, so the grid
	// extremes sit at opposite corners.
	levels := span(seawater.Sigma0(smin-1, tmax+1), seawater.Sigma0(smax+1, tmin-1), 7)
	contour := plotter.NewContour(grid, levels, greyPalette{})
	p.Add(contour)

	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, failure.Wrap(err)
	}
	cmap := moreland.ExtendedBlackBody()
	cmap.SetMin(floats.Min(press))
	cmap.SetMax(floats.Max(press))
	sc.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		c, cerr := cmap.At(press[i])
		if cerr != nil {
			return draw.GlyphStyle{Radius: vg.Points(2.5), Shape: draw.CircleGlyph{}}
		}
		return draw.GlyphStyle{Color: c, Radius: vg.Points(2.5), Shape: draw.CircleGlyph{}}
	}
	p.Add(sc)

	return p, nil
}

const gridSteps = 64

func span(lo, hi float64, n int) []float64 {
	dst := make([]float64, n)
	return floats.Span(dst, lo, hi)
}

// sigmaGrid is the sigma-theta surface over a salinity/temperature grid,
// in the plotter.GridXYZ shape.
type sigmaGrid struct {
	sal  []float64
	temp []float64
}

func (g sigmaGrid) Dims() (c, r int) { return len(g.sal), len(g.temp) }
func (g sigmaGrid) X(c int) float64  { return g.sal[c] }
func (g sigmaGrid) Y(r int) float64  { return g.temp[r] }
func (g sigmaGrid) Z(c, r int) float64 {
	return seawater.Sigma0(g.sal[c], g.temp[r])
}

// greyPalette draws every contour level in the same grey, matching the
// usual TS diagram style.
type greyPalette struct{}

func (greyPalette) Colors() []color.Color {
	return []color.Color{color.Gray{Y: 128}}
}
