package cli

import (
	"os"

	"github.com/morikuni/failure/v2"
	gfplot "github.com/oceanglide/gliderfetch/plot"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot"
)

var (
	plotBounds    boundsFlags
	plotDatasetID string
	plotOutput    string
	plotVariable  string
	plotProfile   int

	plotCmd = &cobra.Command{
		Use:       "plot {track|transect|profile|ts}",
		Short:     "Fetch glider data and render a plot to PNG",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"track", "transect", "profile", "ts"},
		RunE:      runPlot,
	}
)

func init() {
	plotBounds.register(plotCmd.Flags())
	plotCmd.Flags().StringVarP(&plotDatasetID, "dataset-id", "d", "", "fetch a single dataset by id")
	plotCmd.Flags().StringVarP(&plotOutput, "output", "o", "glider.png", "output PNG path")
	plotCmd.Flags().StringVar(&plotVariable, "var", "temperature", "variable for transect and profile plots")
	plotCmd.Flags().IntVar(&plotProfile, "profile", 0, "profile number for profile and ts plots")
	rootCmd.AddCommand(plotCmd)
}

func runPlot(cmd *cobra.Command, args []string) error {
	tbl, err := fetchTable(cmd, &plotBounds, plotDatasetID)
	if err != nil {
		return err
	}

	var p *plot.Plot
	switch args[0] {
	case "track":
		p, err = gfplot.Track(tbl)
	case "transect":
		p, err = gfplot.Transect(tbl, plotVariable)
	case "profile":
		p, err = gfplot.Profile(tbl, plotProfile, plotVariable)
	case "ts":
		p, err = gfplot.TSDiagram(tbl, plotProfile)
	default:
		return failure.New(UnknownPlotKind,
			failure.Message("unknown plot kind"),
			failure.Context{
				"kind": args[0],
			},
		)
	}
	if err != nil {
		return err
	}

	f, err := os.Create(plotOutput)
	if err != nil {
		return failure.Wrap(err)
	}
	defer f.Close()
	return gfplot.WritePNG(p, 9, 6, f)
}
