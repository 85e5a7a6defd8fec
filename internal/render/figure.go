// Package render draws a sampled field and its streamlines with gonum/plot.
package render

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/san-kum/dipolefield/internal/dynamo"
	"github.com/san-kum/dipolefield/internal/field"
	"github.com/san-kum/dipolefield/internal/stream"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/recorder"
	"gonum.org/v1/plot/vg/vgimg"
)

const (
	DefaultSize   = 8 * vg.Inch
	DefaultDPI    = 300
	DefaultOutput = "earths_magnetic_field.png"

	diskSegments = 128
	fitPasses    = 4
	arrowSpread  = 25 * math.Pi / 180
)

var ErrUnknownFormat = errors.New("render: unsupported output format")

// Figure is everything that ends up on the canvas.
type Figure struct {
	Field *field.VectorField
	Lines []stream.Line
	Style Style
}

// Plot lays out the figure. Layers are stacked background, streamlines,
// arrows, rotation axis, magnetic axis and finally the planet disk.
func (fig *Figure) Plot() (*plot.Plot, error) {
	xmin, xmax, ymin, ymax := fig.Field.Bounds()
	sty := fig.Style

	p := plot.New()
	p.X.Label.Text = "x in 10⁶ m"
	p.Y.Label.Text = "y in 10⁶ m"

	bg, err := plotter.NewPolygon(plotter.XYs{
		{X: xmin, Y: ymin}, {X: xmax, Y: ymin}, {X: xmax, Y: ymax}, {X: xmin, Y: ymax},
	})
	if err != nil {
		return nil, err
	}
	bg.Color = sty.Background
	bg.LineStyle.Width = 0
	p.Add(bg)

	arrowLen := sty.ArrowSize * 0.01 * (xmax - xmin)
	for _, l := range fig.Lines {
		if len(l.Points) < 2 {
			continue
		}
		line, err := plotter.NewLine(toXYs(l.Points))
		if err != nil {
			return nil, fmt.Errorf("streamline: %w", err)
		}
		line.LineStyle.Color = sty.Streamline
		line.LineStyle.Width = sty.LineWidth
		p.Add(line)

		if head, ok := arrowHead(l, arrowLen); ok {
			arrow, err := plotter.NewLine(head)
			if err != nil {
				return nil, fmt.Errorf("arrow: %w", err)
			}
			arrow.LineStyle.Color = sty.Streamline
			arrow.LineStyle.Width = sty.LineWidth
			p.Add(arrow)
		}
	}

	rot, err := plotter.NewLine(plotter.XYs{{X: 0, Y: ymin}, {X: 0, Y: ymax}})
	if err != nil {
		return nil, err
	}
	rot.LineStyle.Color = sty.RotationAxis
	rot.LineStyle.Width = sty.AxisWidth
	p.Add(rot)

	mag, err := plotter.NewLine(MagneticAxis(fig.Field.Dipole.Alpha, ymax))
	if err != nil {
		return nil, err
	}
	mag.LineStyle.Color = sty.MagneticAxis
	mag.LineStyle.Width = sty.AxisWidth
	p.Add(mag)

	disk, err := plotter.NewPolygon(Disk(fig.Field.Dipole.RE, diskSegments))
	if err != nil {
		return nil, err
	}
	disk.Color = sty.Planet
	disk.LineStyle.Width = 0
	p.Add(disk)

	// Add widens the ranges to fit the data; pin them afterwards.
	p.X.Min, p.X.Max = xmin, xmax
	p.Y.Min, p.Y.Max = ymin, ymax
	return p, nil
}

// MagneticAxis returns the segment through the origin with slope
// tan(pi/2 - alpha) evaluated at x = -extent and x = extent.
func MagneticAxis(alpha, extent float64) plotter.XYs {
	slope := math.Tan(math.Pi/2 - alpha)
	return plotter.XYs{
		{X: -extent, Y: -extent * slope},
		{X: extent, Y: extent * slope},
	}
}

// Disk approximates a circle of radius r about the origin.
func Disk(r float64, n int) plotter.XYs {
	pts := make(plotter.XYs, n)
	for i := range pts {
		s, c := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		pts[i].X, pts[i].Y = r*c, r*s
	}
	return pts
}

// arrowHead builds an open "->" marker at l.Arrow pointing along the line.
func arrowHead(l stream.Line, length float64) (plotter.XYs, bool) {
	i := l.Arrow
	if i <= 0 || i >= len(l.Points) {
		return nil, false
	}
	tip := l.Points[i]
	dir := tip.Sub(l.Points[i-1])
	n := dir.Norm()
	if n == 0 {
		return nil, false
	}
	heading := math.Atan2(dir[1], dir[0])
	wing := func(a float64) plotter.XY {
		s, c := math.Sincos(heading + math.Pi + a)
		return plotter.XY{X: tip[0] + length*c, Y: tip[1] + length*s}
	}
	return plotter.XYs{wing(arrowSpread), {X: tip[0], Y: tip[1]}, wing(-arrowSpread)}, true
}

func toXYs(points []dynamo.State) plotter.XYs {
	xys := make(plotter.XYs, len(points))
	for i, p := range points {
		xys[i].X, xys[i].Y = p[0], p[1]
	}
	return xys
}

// FitSize returns the largest canvas, no wider or taller than size, on which
// p draws one data unit with the same length along both axes. The axis
// margins are measured with p.DataCanvas, so p's ranges must be final.
func FitSize(p *plot.Plot, size vg.Length) (w, h vg.Length) {
	xr, yr := p.X.Max-p.X.Min, p.Y.Max-p.Y.Min
	w, h = size, size
	if !(xr > 0) || !(yr > 0) {
		return w, h
	}
	// Tick glyphs near the edges make the margins depend weakly on the
	// canvas size; a few passes settle them.
	for i := 0; i < fitPasses; i++ {
		padX, padY := margins(p, w, h)
		k := math.Min(float64(size-padX)/xr, float64(size-padY)/yr)
		if k <= 0 {
			return size, size
		}
		w = padX + vg.Length(k*xr)
		h = padY + vg.Length(k*yr)
	}
	return w, h
}

// margins returns the space taken by axes and labels on a w by h canvas.
func margins(p *plot.Plot, w, h vg.Length) (vg.Length, vg.Length) {
	da := p.DataCanvas(draw.NewCanvas(new(recorder.Canvas), w, h))
	return w - (da.Max.X - da.Min.X), h - (da.Max.Y - da.Min.Y)
}

// Save writes p to path on a canvas fitted into a size by size square with
// equal scales on both axes. The format follows the extension: raster
// formats honour dpi, vector formats ignore it.
func Save(p *plot.Plot, path string, size vg.Length, dpi int) (int64, error) {
	w, h := FitSize(p, size)
	wt, err := writerTo(p, strings.ToLower(filepath.Ext(path)), w, h, dpi)
	if err != nil {
		return 0, err
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	n, err := wt.WriteTo(f)
	if err != nil {
		f.Close()
		return n, err
	}
	return n, f.Close()
}

func writerTo(p *plot.Plot, ext string, w, h vg.Length, dpi int) (io.WriterTo, error) {
	switch ext {
	case ".png", ".jpg", ".jpeg", ".tif", ".tiff":
		c := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(dpi))
		p.Draw(draw.New(c))
		switch ext {
		case ".png":
			return vgimg.PngCanvas{Canvas: c}, nil
		case ".jpg", ".jpeg":
			return vgimg.JpegCanvas{Canvas: c}, nil
		default:
			return vgimg.TiffCanvas{Canvas: c}, nil
		}
	case ".svg", ".pdf", ".eps":
		return p.WriterTo(w, h, ext[1:])
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
}
