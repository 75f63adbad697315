package glider

import (
	"github.com/morikuni/failure/v2"
)

// DefaultServer is the IOOS glider DAC.
const DefaultServer = "https://gliders.ioos.us/erddap"

// serverVariables maps a server URL to the variables requested from it.
// The tables are package constants in all but declaration; they are never
// mutated after init.
var serverVariables = map[string][]string{
	DefaultServer: {
		"latitude",
		"longitude",
		"pressure",
		"profile_id",
		"salinity",
		"temperature",
		"time",
	},
}

// serverRenames maps a server URL to its column rename table. Keys are the
// already-lowercased csvp column names (unit suffix included); values are
// the canonical names the plotting helpers read.
var serverRenames = map[string]map[string]string{
	DefaultServer: {
		"latitude (degrees_north)": "latitude",
		"longitude (degrees_east)": "longitude",
		"pressure (decibar)":       "pressure",
		"pressure (dbar)":          "pressure",
		"salinity (1)":             "salinity",
		"salinity (psu)":           "salinity",
		"temperature (celsius)":    "temperature",
		"temperature (degree_c)":   "temperature",
		"profile_id (1)":           "profile_id",
	},
}

// KnownVariables returns the variable list for a server, or an error when
// the server has no entry. An unknown server never defaults silently.
func KnownVariables(server string) ([]string, error) {
	vars, ok := serverVariables[server]
	if !ok {
		return nil, failure.New(ErrUnknownServer,
			failure.Message("no known variables for this ERDDAP server"),
			failure.Context{
				"server": server,
			},
		)
	}
	out := make([]string, len(vars))
	copy(out, vars)
	return out, nil
}

// RenameTable returns the column rename table for a server. Missing entry
// yields an empty map so normalization is a no-op rather than a failure.
func RenameTable(server string) map[string]string {
	renames, ok := serverRenames[server]
	if !ok {
		return map[string]string{}
	}
	out := make(map[string]string, len(renames))
	for k, v := range renames {
		out[k] = v
	}
	return out
}
