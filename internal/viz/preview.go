package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/dipolefield/internal/field"
	"github.com/san-kum/dipolefield/internal/render"
	"github.com/san-kum/dipolefield/internal/stream"
)

const (
	DefaultWidth  = 60
	DefaultHeight = 30
)

// viewport maps data coordinates onto canvas sub-pixels, y growing upwards.
type viewport struct {
	xmin, xmax, ymin, ymax float64
	w, h                   int
}

func (v viewport) project(x, y float64) (int, int) {
	px := (x - v.xmin) / (v.xmax - v.xmin) * float64(v.w-1)
	py := (v.ymax - y) / (v.ymax - v.ymin) * float64(v.h-1)
	return int(math.Round(px)), int(math.Round(py))
}

// Draw rasterises the streamlines and overlays of f onto a width by height
// character canvas.
func Draw(f *field.VectorField, lines []stream.Line, width, height int) *Canvas {
	c := NewCanvas(width, height)
	w, h := c.Dots()
	xmin, xmax, ymin, ymax := f.Bounds()
	vp := viewport{xmin, xmax, ymin, ymax, w, h}

	for _, l := range lines {
		for i := 1; i < len(l.Points); i++ {
			x0, y0 := vp.project(l.Points[i-1][0], l.Points[i-1][1])
			x1, y1 := vp.project(l.Points[i][0], l.Points[i][1])
			c.DrawLine(x0, y0, x1, y1, LayerStream)
		}
	}

	x0, y0 := vp.project(0, ymin)
	x1, y1 := vp.project(0, ymax)
	c.DrawLine(x0, y0, x1, y1, LayerRotationAxis)

	seg := render.MagneticAxis(f.Dipole.Alpha, ymax)
	if ax, ay, bx, by, ok := clipSegment(seg[0].X, seg[0].Y, seg[1].X, seg[1].Y, xmin, xmax, ymin, ymax); ok {
		x0, y0 := vp.project(ax, ay)
		x1, y1 := vp.project(bx, by)
		c.DrawLine(x0, y0, x1, y1, LayerMagneticAxis)
	}

	cx, cy := vp.project(0, 0)
	rx := f.Dipole.RE / (xmax - xmin) * float64(w-1)
	ry := f.Dipole.RE / (ymax - ymin) * float64(h-1)
	c.FillEllipse(float64(cx)+0.5, float64(cy)+0.5, rx, ry, LayerPlanet)

	return c
}

// Preview renders a framed, coloured Braille picture of the field.
func Preview(f *field.VectorField, lines []stream.Line, width, height int, t Theme) string {
	c := Draw(f, lines, width, height)

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Streamline).
		Render(fmt.Sprintf("dipole field  B0=%.3g T  RE=%.3f  tilt=%.1f°",
			f.Dipole.B0, f.Dipole.RE, f.Dipole.Alpha*180/math.Pi))

	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border)

	legend := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Foreground(t.Streamline).Render("━ field lines  "),
		lipgloss.NewStyle().Foreground(t.RotationAxis).Render("━ rotation axis  "),
		lipgloss.NewStyle().Foreground(t.MagneticAxis).Render("━ magnetic axis  "),
		lipgloss.NewStyle().Foreground(t.Planet).Render("● planet"),
	)

	body := strings.TrimSuffix(c.Render(t), "\n")
	return lipgloss.JoinVertical(lipgloss.Left, title, frame.Render(body), legend)
}

// clipSegment clips the segment (x0,y0)-(x1,y1) to the rectangle using the
// Liang-Barsky parametrisation.
func clipSegment(x0, y0, x1, y1, xmin, xmax, ymin, ymax float64) (float64, float64, float64, float64, bool) {
	dx, dy := x1-x0, y1-y0
	t0, t1 := 0.0, 1.0
	for _, e := range [4][2]float64{
		{-dx, x0 - xmin},
		{dx, xmax - x0},
		{-dy, y0 - ymin},
		{dy, ymax - y0},
	} {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			if r > t0 {
				t0 = r
			}
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			if r < t1 {
				t1 = r
			}
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}
