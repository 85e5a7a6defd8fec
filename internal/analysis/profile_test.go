package analysis

import (
	"math"
	"testing"

	"github.com/san-kum/dipolefield/internal/physics"
)

func TestProfileDecaysAsInverseCube(t *testing.T) {
	d := physics.NewEarth()
	for _, theta := range []float64{0, 0.7, -2.1, math.Pi} {
		p := Profile(d, theta, d.RE, 40, 64)
		if p == nil {
			t.Fatal("expected profile")
		}
		if len(p.R) != 64 || len(p.B) != 64 {
			t.Fatalf("expected 64 samples, got %d/%d", len(p.R), len(p.B))
		}
		if k := p.DecayExponent(); math.Abs(k+3) > 1e-9 {
			t.Errorf("theta %.2f: expected exponent -3, got %v", theta, k)
		}
		for i := 1; i < len(p.B); i++ {
			if p.B[i] >= p.B[i-1] {
				t.Errorf("theta %.2f: |B| not decreasing at %d", theta, i)
				break
			}
		}
	}
}

func TestProfileSurfaceValue(t *testing.T) {
	d := physics.NewEarth()
	p := Profile(d, 0, d.RE, 40, 10)
	if math.Abs(p.B[0]-d.SurfaceEquator()) > 1e-12*d.SurfaceEquator() {
		t.Errorf("expected surface value %g, got %g", d.SurfaceEquator(), p.B[0])
	}
}

func TestProfileDegenerate(t *testing.T) {
	if Profile(physics.NewEarth(), 0, 1, 2, 1) != nil {
		t.Error("expected nil profile for a single sample")
	}
	var p *RadialProfile
	if !math.IsNaN(p.DecayExponent()) {
		t.Error("expected NaN exponent for nil profile")
	}
}

func TestScaled(t *testing.T) {
	p := &RadialProfile{R: []float64{1, 2}, B: []float64{3e-5, 4e-6}}
	got := p.Scaled(1e9)
	if math.Abs(got[0]-30000) > 1e-6 || math.Abs(got[1]-4000) > 1e-6 {
		t.Errorf("unexpected scaled values %v", got)
	}
}
