// Package metrics summarises a set of traced streamlines.
package metrics

import (
	"math"

	"github.com/san-kum/dipolefield/internal/stream"
)

// Metric accumulates one statistic over streamlines.
type Metric interface {
	Name() string
	Observe(l stream.Line)
	Value() float64
	Reset()
}

type LineCount struct {
	n int
}

func NewLineCount() *LineCount { return &LineCount{} }

func (c *LineCount) Name() string          { return "line_count" }
func (c *LineCount) Observe(_ stream.Line) { c.n++ }
func (c *LineCount) Value() float64        { return float64(c.n) }
func (c *LineCount) Reset()                { c.n = 0 }

type TotalLength struct {
	sum float64
}

func NewTotalLength() *TotalLength { return &TotalLength{} }

func (t *TotalLength) Name() string { return "total_length" }

func (t *TotalLength) Observe(l stream.Line) {
	t.sum += l.Length()
}

func (t *TotalLength) Value() float64 { return t.sum }
func (t *TotalLength) Reset()         { t.sum = 0 }

type MeanLength struct {
	sum     float64
	samples int
}

func NewMeanLength() *MeanLength { return &MeanLength{} }

func (m *MeanLength) Name() string { return "mean_length" }

func (m *MeanLength) Observe(l stream.Line) {
	m.sum += l.Length()
	m.samples++
}

func (m *MeanLength) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanLength) Reset() {
	m.sum = 0
	m.samples = 0
}

type MaxLength struct {
	max float64
}

func NewMaxLength() *MaxLength { return &MaxLength{} }

func (m *MaxLength) Name() string { return "max_length" }

func (m *MaxLength) Observe(l stream.Line) {
	m.max = math.Max(m.max, l.Length())
}

func (m *MaxLength) Value() float64 { return m.max }
func (m *MaxLength) Reset()         { m.max = 0 }

// Default returns the metrics reported after tracing.
func Default() []Metric {
	return []Metric{
		NewLineCount(),
		NewTotalLength(),
		NewMeanLength(),
		NewMaxLength(),
	}
}

// Summarize resets ms, feeds them every line and returns their values by name.
func Summarize(lines []stream.Line, ms ...Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		m.Reset()
		for _, l := range lines {
			m.Observe(l)
		}
		out[m.Name()] = m.Value()
	}
	return out
}
