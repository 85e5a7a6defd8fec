package grid

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinspaceReference(t *testing.T) {
	x := Linspace(-40, 40, 64)

	require.Len(t, x, 64)
	assert.Equal(t, -40.0, x[0])
	assert.Equal(t, 40.0, x[len(x)-1])
	for i := 1; i < len(x); i++ {
		assert.Greater(t, x[i], x[i-1], "not strictly increasing at %d", i)
	}
	assert.NotContains(t, x, 0.0)
}

func TestLinspaceOddCountHitsZero(t *testing.T) {
	x := Linspace(-40, 40, 65)
	assert.Contains(t, x, 0.0)
}

func TestLinspaceTooShort(t *testing.T) {
	assert.Nil(t, Linspace(0, 1, 1))
	assert.Nil(t, Linspace(0, 1, 0))
}

func TestNewIndexing(t *testing.T) {
	g, err := New(4, 3, 2, 1)
	require.NoError(t, err)

	rows, cols := g.XX.Dims()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 4, cols)

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			assert.Equal(t, g.X[j], g.XX.At(i, j))
			assert.Equal(t, g.Y[i], g.YY.At(i, j))
		}
	}
}

func TestNewRejectsTinyGrid(t *testing.T) {
	_, err := New(1, 64, 40, 40)
	assert.ErrorIs(t, err, ErrTooFewSamples)
}

func TestPolar(t *testing.T) {
	g, err := New(64, 64, 40, 40)
	require.NoError(t, err)
	r, theta := g.Polar()

	rows, cols := r.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			assert.Greater(t, r.At(i, j), 0.0)
			th := theta.At(i, j)
			assert.True(t, th > -math.Pi && th <= math.Pi, "theta %v out of range", th)
			assert.InDelta(t, g.X[j], r.At(i, j)*math.Cos(th), 1e-12)
			assert.InDelta(t, g.Y[i], r.At(i, j)*math.Sin(th), 1e-12)
		}
	}
}

func TestHasOrigin(t *testing.T) {
	even, err := New(64, 64, 40, 40)
	require.NoError(t, err)
	assert.False(t, even.HasOrigin())

	odd, err := New(65, 65, 40, 40)
	require.NoError(t, err)
	assert.True(t, odd.HasOrigin())

	mixed, err := New(65, 64, 40, 40)
	require.NoError(t, err)
	assert.False(t, mixed.HasOrigin())
}

func TestCell(t *testing.T) {
	g, err := New(5, 3, 2, 1)
	require.NoError(t, err)
	dx, dy := g.Cell()
	assert.InDelta(t, 1.0, dx, 1e-15)
	assert.InDelta(t, 1.0, dy, 1e-15)
}
