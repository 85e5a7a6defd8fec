package physics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/dipolefield/internal/dynamo"
	"github.com/san-kum/dipolefield/internal/integrators"
	"github.com/san-kum/dipolefield/internal/physics"
)

const tol = 1e-12

// relClose matches b within a relative tolerance of a.
func relClose(a float64) OmegaMatcher {
	return BeNumerically("~", a, math.Abs(a)*1e-12+1e-300)
}

var _ = Describe("Dipole", func() {
	var d *physics.Dipole

	BeforeEach(func() {
		d = physics.NewEarth()
	})

	Describe("Field", func() {
		DescribeTable("falls off as the inverse cube of r",
			func(r, theta float64) {
				br1, bt1 := d.Field(r, theta)
				br2, bt2 := d.Field(2*r, theta)
				Expect(br2).To(relClose(br1 / 8))
				Expect(bt2).To(relClose(bt1 / 8))
			},
			Entry("surface, equator", physics.DefaultRadius, 0.0),
			Entry("inside the planet", 1.0, 1.2),
			Entry("far field", 35.0, -2.5),
			Entry("on the tilted axis", 12.0, math.Pi/2-physics.Radians(physics.DefaultTiltDeg)),
		)

		DescribeTable("is periodic in theta",
			func(r, theta float64) {
				br1, bt1 := d.Field(r, theta)
				br2, bt2 := d.Field(r, theta+2*math.Pi)
				Expect(br2).To(BeNumerically("~", br1, 1e-15))
				Expect(bt2).To(BeNumerically("~", bt1, 1e-15))
			},
			Entry("zero", 10.0, 0.0),
			Entry("positive", 10.0, 0.7),
			Entry("negative", 20.0, -3.0),
		)

		It("is purely radial and most negative at theta = -alpha", func() {
			r := 15.0
			brMin, bt := d.Field(r, -d.Alpha)
			Expect(bt).To(BeNumerically("~", 0, tol))

			for i := 0; i < 360; i++ {
				theta := -math.Pi + float64(i)*2*math.Pi/360
				br, _ := d.Field(r, theta)
				Expect(br).To(BeNumerically(">=", brMin))
			}
		})

		It("pins the equatorial surface magnitude", func() {
			br, bt := d.Field(d.RE, 0)
			want := physics.DefaultB0 * math.Sqrt(math.Pow(2*math.Cos(d.Alpha), 2)+math.Pow(math.Sin(d.Alpha), 2))
			Expect(math.Hypot(br, bt)).To(relClose(want))
			Expect(d.SurfaceEquator()).To(relClose(want))
			Expect(d.Magnitude(d.RE, 0)).To(relClose(want))
		})

		It("propagates a non-finite value at the origin", func() {
			br, bt := d.Field(0, 0.3)
			Expect(math.IsInf(br, 0) || math.IsNaN(br)).To(BeTrue())
			Expect(math.IsInf(bt, 0) || math.IsNaN(bt)).To(BeTrue())
		})
	})

	Describe("FieldGrid", func() {
		It("matches the scalar form elementwise", func() {
			r := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})
			theta := mat.NewDense(2, 3, []float64{0, 0.5, 1, -1, -2, 3})
			br, bt := d.FieldGrid(r, theta)

			rows, cols := br.Dims()
			Expect(rows).To(Equal(2))
			Expect(cols).To(Equal(3))
			for i := 0; i < rows; i++ {
				for j := 0; j < cols; j++ {
					wr, wt := d.Field(r.At(i, j), theta.At(i, j))
					Expect(br.At(i, j)).To(Equal(wr))
					Expect(bt.At(i, j)).To(Equal(wt))
				}
			}
		})

		It("panics on mismatched shapes", func() {
			Expect(func() {
				d.FieldGrid(mat.NewDense(2, 2, nil), mat.NewDense(2, 3, nil))
			}).To(Panic())
		})
	})

	Describe("SetParam", func() {
		It("updates known parameters and rejects unknown ones", func() {
			Expect(d.SetParam("tilt", 0)).To(Succeed())
			Expect(d.Alpha).To(BeZero())
			Expect(d.SetParam("radius", 3)).To(Succeed())
			Expect(d.GetParams()).To(HaveKeyWithValue("radius", 3.0))
			Expect(d.SetParam("quadrupole", 1)).NotTo(Succeed())
		})
	})

	Describe("as a dynamo.System", func() {
		It("returns a unit direction away from the origin", func() {
			v := d.Derive(dynamo.State{10, -4}, 0)
			Expect(v.Norm()).To(BeNumerically("~", 1, tol))
		})

		It("returns a zero direction at the origin", func() {
			v := d.Derive(dynamo.State{0, 0}, 0)
			Expect(v).To(Equal(dynamo.State{0, 0}))
		})

		It("is symmetric under inversion through the origin", func() {
			for _, p := range []dynamo.State{{10, -4}, {3, 7}, {-25, 0.5}} {
				a := d.Derive(p, 0)
				b := d.Derive(p.Scale(-1), 0)
				Expect(b[0]).To(BeNumerically("~", a[0], 1e-12))
				Expect(b[1]).To(BeNumerically("~", a[1], 1e-12))
			}
		})

		It("keeps a traced line on the far side of the planet finite", func() {
			x := dynamo.State{20, 1}
			rk := integrators.NewRK4()
			for i := 0; i < 100; i++ {
				x = rk.Step(d, x, 0, 0.1)
			}
			Expect(x.IsValid()).To(BeTrue())
		})
	})
})

var _ = Describe("Cartesian transform", func() {
	DescribeTable("round-trips through FromCartesian",
		func(br, bt, theta float64) {
			bx, by := physics.ToCartesian(br, bt, theta)
			gr, gt := physics.FromCartesian(bx, by, theta)
			Expect(gr).To(BeNumerically("~", br, 1e-15))
			Expect(gt).To(BeNumerically("~", bt, 1e-15))
		},
		Entry("pure radial", 1.0, 0.0, 0.3),
		Entry("pure tangential", 0.0, 1.0, -1.1),
		Entry("mixed", -2.5, 0.75, 2.9),
		Entry("on the negative axis", 0.4, -0.2, math.Pi),
	)

	It("rotates the local basis by a quarter turn past theta", func() {
		// At theta = 0 the radial component lands on +y.
		bx, by := physics.ToCartesian(1, 0, 0)
		Expect(bx).To(BeNumerically("~", 0, tol))
		Expect(by).To(BeNumerically("~", 1, tol))

		// At theta = pi/2 the tangential component lands on -y.
		bx, by = physics.ToCartesian(0, 1, math.Pi/2)
		Expect(bx).To(BeNumerically("~", 0, tol))
		Expect(by).To(BeNumerically("~", -1, tol))
	})

	It("preserves magnitude elementwise over grids", func() {
		br := mat.NewDense(1, 3, []float64{1, -2, 0.5})
		bt := mat.NewDense(1, 3, []float64{0.2, 3, -1})
		theta := mat.NewDense(1, 3, []float64{0, 1, -2})
		bx, by := physics.ToCartesianGrid(br, bt, theta)
		for j := 0; j < 3; j++ {
			Expect(math.Hypot(bx.At(0, j), by.At(0, j))).
				To(BeNumerically("~", math.Hypot(br.At(0, j), bt.At(0, j)), 1e-14))
		}
	})
})
