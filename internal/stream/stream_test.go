package stream

import (
	"testing"

	"github.com/san-kum/dipolefield/internal/dynamo"
	"github.com/san-kum/dipolefield/internal/field"
	"github.com/san-kum/dipolefield/internal/integrators"
	"github.com/san-kum/dipolefield/internal/physics"
)

type uniform struct {
	dir dynamo.State
}

func (u *uniform) Derive(x dynamo.State, s float64) dynamo.State {
	return dynamo.State{u.dir[0], u.dir[1]}
}

func (u *uniform) StateDim() int                                { return 2 }
func (u *uniform) Bounds() (float64, float64, float64, float64) { return -1, 1, -1, 1 }

func TestSpiralVisitsEveryCellOnce(t *testing.T) {
	for _, dims := range [][2]int{{1, 1}, {2, 3}, {30, 30}, {7, 4}} {
		nx, ny := dims[0], dims[1]
		cells := spiral(nx, ny)
		if len(cells) != nx*ny {
			t.Errorf("%dx%d: expected %d cells, got %d", nx, ny, nx*ny, len(cells))
		}
		seen := make(map[cell]bool)
		for _, c := range cells {
			if c.x < 0 || c.x >= nx || c.y < 0 || c.y >= ny {
				t.Errorf("%dx%d: cell %v out of range", nx, ny, c)
			}
			if seen[c] {
				t.Errorf("%dx%d: cell %v visited twice", nx, ny, c)
			}
			seen[c] = true
		}
	}
}

func TestSpiralStartsOnBoundary(t *testing.T) {
	cells := spiral(4, 4)
	for i := 0; i < 12; i++ {
		c := cells[i]
		if c.x != 0 && c.x != 3 && c.y != 0 && c.y != 3 {
			t.Errorf("cell %d = %v is not on the boundary", i, c)
		}
	}
}

func TestTraceUniformFieldGivesOneLinePerRow(t *testing.T) {
	lines := Trace(&uniform{dir: dynamo.State{1, 0}}, Options{Density: 1})

	if len(lines) != 30 {
		t.Fatalf("expected 30 lines, got %d", len(lines))
	}
	for n, l := range lines {
		y := l.Points[0][1]
		for i, p := range l.Points {
			if p[1] != y {
				t.Errorf("line %d bends at point %d: y %v != %v", n, i, p[1], y)
				break
			}
			if i > 0 && p[0] <= l.Points[i-1][0] {
				t.Errorf("line %d runs against the field at point %d", n, i)
				break
			}
		}
		if l.Length() < 1.9 {
			t.Errorf("line %d too short: %v", n, l.Length())
		}
		if l.Arrow <= 0 || l.Arrow >= len(l.Points) {
			t.Errorf("line %d arrow index %d out of range", n, l.Arrow)
		}
	}
}

func TestTraceDiscardsShortLines(t *testing.T) {
	lines := Trace(&uniform{dir: dynamo.State{0, 1}}, Options{Density: 1, MinLength: 100})
	if len(lines) != 0 {
		t.Errorf("expected no lines, got %d", len(lines))
	}
}

func TestTraceZeroField(t *testing.T) {
	lines := Trace(&uniform{dir: dynamo.State{0, 0}}, DefaultOptions())
	if len(lines) != 0 {
		t.Errorf("expected no lines in a vanishing field, got %d", len(lines))
	}
}

func TestTraceDipole(t *testing.T) {
	f, err := field.Compute(field.Params{
		B0:     physics.DefaultB0,
		Radius: physics.DefaultRadius,
		Alpha:  physics.Radians(physics.DefaultTiltDeg),
		NX:     64,
		NY:     64,
		XMax:   40,
		YMax:   40,
	})
	if err != nil {
		t.Fatalf("compute failed: %v", err)
	}

	for _, name := range []string{"rk4", "euler"} {
		integ, _ := integrators.ByName(name)
		lines := Trace(f, Options{Density: 2, Integrator: integ})
		if len(lines) < 10 {
			t.Errorf("%s: expected a populated plot, got %d lines", name, len(lines))
		}
		for _, l := range lines {
			for _, p := range l.Points {
				if !p.IsValid() || !f.Contains(p[0], p[1]) {
					t.Fatalf("%s: point %v escaped the domain", name, p)
				}
			}
		}
	}
}

func TestTraceAnalyticDipole(t *testing.T) {
	f, err := field.Compute(field.Params{
		B0:     physics.DefaultB0,
		Radius: physics.DefaultRadius,
		Alpha:  physics.Radians(physics.DefaultTiltDeg),
		NX:     16,
		NY:     16,
		XMax:   40,
		YMax:   40,
	})
	if err != nil {
		t.Fatalf("compute failed: %v", err)
	}

	lines := Trace(f.Analytic(), Options{Density: 1})
	if len(lines) < 10 {
		t.Errorf("expected a populated plot, got %d lines", len(lines))
	}
	for _, l := range lines {
		if l.Arrow < 0 || l.Arrow >= len(l.Points) {
			t.Fatalf("arrow index %d outside %d points", l.Arrow, len(l.Points))
		}
		for _, p := range l.Points {
			if !p.IsValid() || !f.Contains(p[0], p[1]) {
				t.Fatalf("point %v escaped the domain", p)
			}
		}
	}
}
