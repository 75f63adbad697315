package plot

import (
	"io"

	"github.com/morikuni/failure/v2"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

// WritePNG renders a plot to PNG at the given size in inches.
func WritePNG(p *plot.Plot, widthIn, heightIn float64, out io.Writer) error {
	wt, err := p.WriterTo(vg.Length(widthIn)*vg.Inch, vg.Length(heightIn)*vg.Inch, "png")
	if err != nil {
		return failure.Wrap(err)
	}
	if _, err := wt.WriteTo(out); err != nil {
		return failure.Wrap(err)
	}
	return nil
}
