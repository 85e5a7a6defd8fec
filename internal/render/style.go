package render

import (
	"image/color"

	"gonum.org/v1/plot/vg"
)

// Style holds the colours and stroke widths of the figure.
type Style struct {
	Background   color.Color
	Streamline   color.Color
	LineWidth    vg.Length
	ArrowSize    float64
	Planet       color.Color
	RotationAxis color.Color
	MagneticAxis color.Color
	AxisWidth    vg.Length
}

func DefaultStyle() Style {
	return Style{
		Background:   color.Black,
		Streamline:   color.RGBA{R: 0x00, G: 0xff, B: 0xff, A: 0xff}, // aqua
		LineWidth:    vg.Points(1),
		ArrowSize:    1.5,
		Planet:       color.RGBA{R: 0xa9, G: 0xa9, B: 0xa9, A: 0xff}, // darkgray
		RotationAxis: color.RGBA{R: 0xff, G: 0xc0, B: 0xcb, A: 0xff}, // pink
		MagneticAxis: color.RGBA{R: 0xbf, G: 0xbf, B: 0x00, A: 0xff},
		AxisWidth:    vg.Points(3),
	}
}
