package cli

import (
	"github.com/oceanglide/gliderfetch/glider"
	"github.com/spf13/pflag"
)

// boundsFlags is the shared search-constraint flag set used by the search,
// fetch, and plot commands.
type boundsFlags struct {
	minLat  float64
	maxLat  float64
	minLon  float64
	maxLon  float64
	minTime string
	maxTime string
	delayed bool
}

func (b *boundsFlags) register(fs *pflag.FlagSet) {
	fs.Float64Var(&b.minLat, "min-lat", -90, "southernmost latitude")
	fs.Float64Var(&b.maxLat, "max-lat", 90, "northernmost latitude")
	fs.Float64Var(&b.minLon, "min-lon", -180, "westernmost longitude")
	fs.Float64Var(&b.maxLon, "max-lon", 180, "easternmost longitude")
	fs.StringVar(&b.minTime, "min-time", "", "start time (any ERDDAP time literal)")
	fs.StringVar(&b.maxTime, "max-time", "", "end time (any ERDDAP time literal)")
	fs.BoolVar(&b.delayed, "delayed", false, "include delayed-mode datasets")
}

func (b *boundsFlags) bounds() glider.Bounds {
	return glider.Bounds{
		MinLat:  b.minLat,
		MaxLat:  b.maxLat,
		MinLon:  b.minLon,
		MaxLon:  b.maxLon,
		MinTime: b.minTime,
		MaxTime: b.maxTime,
	}
}

// set reports whether the user supplied any search constraint.
func (b *boundsFlags) set(fs *pflag.FlagSet) bool {
	for _, name := range []string{"min-lat", "max-lat", "min-lon", "max-lon", "min-time", "max-time"} {
		if fs.Changed(name) {
			return true
		}
	}
	return false
}
