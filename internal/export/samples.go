// Package export writes the sampled field as tabular data.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/san-kum/dipolefield/internal/field"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var header = []string{"x", "y", "r", "theta", "br", "btheta", "bx", "by"}

// Sample is one grid point of the pipeline.
type Sample struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	R      float64 `json:"r"`
	Theta  float64 `json:"theta"`
	Br     float64 `json:"br"`
	Btheta float64 `json:"btheta"`
	Bx     float64 `json:"bx"`
	By     float64 `json:"by"`
}

type Document struct {
	B0      float64  `json:"b0"`
	Radius  float64  `json:"radius"`
	Alpha   float64  `json:"alpha"`
	NX      int      `json:"nx"`
	NY      int      `json:"ny"`
	Samples []Sample `json:"samples"`
}

// Samples flattens f row by row (y outer, x inner).
func Samples(f *field.VectorField) []Sample {
	rows, cols := f.Grid.Dims()
	out := make([]Sample, 0, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out = append(out, Sample{
				X:      f.Grid.X[j],
				Y:      f.Grid.Y[i],
				R:      f.R.At(i, j),
				Theta:  f.Theta.At(i, j),
				Br:     f.Br.At(i, j),
				Btheta: f.Btheta.At(i, j),
				Bx:     f.Bx.At(i, j),
				By:     f.By.At(i, j),
			})
		}
	}
	return out
}

func (s Sample) record() []string {
	vals := []float64{s.X, s.Y, s.R, s.Theta, s.Br, s.Btheta, s.Bx, s.By}
	rec := make([]string, len(vals))
	for i, v := range vals {
		rec[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return rec
}

func WriteCSV(w io.Writer, f *field.VectorField) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, s := range Samples(f) {
		if err := cw.Write(s.record()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON encodes f as a Document. Non-finite samples cannot be
// represented in JSON and make the encoder fail.
func WriteJSON(w io.Writer, f *field.VectorField) error {
	rows, cols := f.Grid.Dims()
	doc := Document{
		B0:      f.Dipole.B0,
		Radius:  f.Dipole.RE,
		Alpha:   f.Dipole.Alpha,
		NX:      cols,
		NY:      rows,
		Samples: Samples(f),
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
