package uwv_test

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/golang/geo/r3"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/uwvdyn/internal/dynamo"
	"github.com/san-kum/uwvdyn/internal/uwv"
)

func beCloseTo(want dynamo.Vector6, tol float64) OmegaMatcher {
	return WithTransform(func(got dynamo.Vector6) float64 {
		return got.Sub(want).Norm()
	}, BeNumerically("<=", tol))
}

func vehicle(mt uwv.ModelType) uwv.Parameters {
	inertia := dynamo.Diagonal6(dynamo.Vector6{120, 140, 160, 12, 16, 18})
	inertia[0][4], inertia[4][0] = 3, 3
	inertia[1][3], inertia[3][1] = -2, -2

	p := uwv.Parameters{
		Inertia:          inertia,
		ModelType:        mt,
		Weight:           900,
		Buoyancy:         920,
		CenterOfGravity:  r3.Vector{X: 0.02, Z: 0.08},
		CenterOfBuoyancy: r3.Vector{Y: -0.01, Z: -0.04},
	}
	switch mt {
	case uwv.Complex:
		for i := 0; i < dynamo.DOF; i++ {
			d := dynamo.Diagonal6(dynamo.Vector6{40, 50, 60, 6, 8, 8}).Scale(0.1 * float64(i+1))
			d[0][1] = 1.5
			p.DampingMatrices = append(p.DampingMatrices, d)
		}
	default:
		p.DampingMatrices = []dynamo.Matrix6{
			dynamo.Diagonal6(dynamo.Vector6{20, 25, 30, 4, 5, 5}),
			dynamo.Diagonal6(dynamo.Vector6{50, 60, 70, 8, 9, 9}),
		}
	}
	return p
}

var _ = Describe("Model", func() {
	var (
		velocity    dynamo.Vector6
		orientation dynamo.Orientation
	)

	BeforeEach(func() {
		velocity = dynamo.Vector6{0.8, -0.2, 0.1, 0.05, -0.1, 0.3}
		orientation = dynamo.OrientationFromEuler(0.2, -0.1, 1.3)
	})

	Describe("default construction", func() {
		It("uses default parameters that pass validation", func() {
			m := uwv.New()
			Expect(uwv.Validate(m.Parameters())).To(Succeed())
			Expect(m.Parameters().ModelType).To(Equal(uwv.Simple))
		})

		It("accelerates along z from the weight and buoyancy imbalance when at rest", func() {
			m := uwv.New()
			p := m.Parameters()
			Expect(p.Weight).NotTo(Equal(p.Buoyancy))

			a, err := m.Acceleration(dynamo.Vector6{}, dynamo.Vector6{}, dynamo.IdentityOrientation())
			Expect(err).NotTo(HaveOccurred())

			// (B − W) / M33 = (1010 − 981) / 180
			Expect(a).To(beCloseTo(dynamo.Vector6{0, 0, 29.0 / 180.0, 0, 0, 0}, 1e-12))
		})
	})

	DescribeTable("round trip through Effort and Acceleration",
		func(mt uwv.ModelType) {
			m, err := uwv.NewWithParameters(vehicle(mt))
			Expect(err).NotTo(HaveOccurred())

			accel := dynamo.Vector6{0.3, -0.1, 0.05, 0.02, 0.01, -0.04}
			tau, err := m.Effort(accel, velocity, orientation)
			Expect(err).NotTo(HaveOccurred())

			back, err := m.Acceleration(tau, velocity, orientation)
			Expect(err).NotTo(HaveOccurred())
			Expect(back).To(beCloseTo(accel, 1e-9))
		},
		Entry("simple", uwv.Simple),
		Entry("intermediate", uwv.Intermediate),
		Entry("complex", uwv.Complex),
	)

	Describe("Effort", func() {
		It("reduces to M·a + g(R) without damping at rest", func() {
			p := vehicle(uwv.Simple)
			p.DampingMatrices = []dynamo.Matrix6{{}, {}}
			m, err := uwv.NewWithParameters(p)
			Expect(err).NotTo(HaveOccurred())

			accel := dynamo.Vector6{1, 2, -3, 0.4, -0.5, 0.6}
			tau, err := m.Effort(accel, dynamo.Vector6{}, orientation)
			Expect(err).NotTo(HaveOccurred())

			want := p.Inertia.MulVec(accel).Add(m.GravityBuoyancy(orientation))
			Expect(tau).To(Equal(want))
		})

		It("includes the Coriolis term only above the simple fidelity", func() {
			simple, _ := uwv.NewWithParameters(vehicle(uwv.Simple))
			intermediate, _ := uwv.NewWithParameters(vehicle(uwv.Intermediate))

			ds, err := simple.DampingAndCoriolis(velocity)
			Expect(err).NotTo(HaveOccurred())
			di, err := intermediate.DampingAndCoriolis(velocity)
			Expect(err).NotTo(HaveOccurred())

			coriolis := uwv.Coriolis(vehicle(uwv.Intermediate).Inertia, velocity)
			Expect(di.Sub(ds)).To(beCloseTo(coriolis, 1e-12))
		})

		It("rejects a NaN acceleration", func() {
			_, err := uwv.New().Effort(dynamo.Vector6{math.NaN()}, velocity, orientation)
			Expect(err).To(MatchError(uwv.ErrAccelerationUnset))

			var inputErr *uwv.InputError
			Expect(errors.As(err, &inputErr)).To(BeTrue())
			Expect(inputErr.Op).To(Equal("effort"))
		})
	})

	Describe("Acceleration input checks", func() {
		It("rejects a NaN control input", func() {
			_, err := uwv.New().Acceleration(dynamo.Vector6{0, 0, math.NaN()}, velocity, orientation)
			Expect(err).To(MatchError(uwv.ErrControlInputUnset))
		})

		for i := 0; i < dynamo.DOF; i++ {
			i := i
			It(fmt.Sprintf("rejects NaN velocity in component %d", i), func() {
				v := dynamo.Vector6{}
				v[i] = math.NaN()

				_, err := uwv.New().Acceleration(dynamo.Vector6{}, v, orientation)
				Expect(err).To(MatchError(uwv.ErrVelocityUnset))

				_, err = uwv.New().Effort(dynamo.Vector6{}, v, orientation)
				Expect(err).To(MatchError(uwv.ErrVelocityUnset))
			})
		}
	})

	Describe("SetParameters", func() {
		It("rejects a complex model with two damping matrices and keeps the old set", func() {
			m := uwv.New()
			before := m.Parameters()
			beforeInv := m.InverseInertia()

			bad := vehicle(uwv.Simple)
			bad.ModelType = uwv.Complex
			err := m.SetParameters(bad)

			Expect(err).To(MatchError(uwv.ErrComplexDampingCount))
			var cfgErr *uwv.ConfigError
			Expect(errors.As(err, &cfgErr)).To(BeTrue())

			Expect(m.Parameters()).To(Equal(before))
			Expect(m.InverseInertia()).To(Equal(beforeInv))
		})

		DescribeTable("rejects a non-finite inertia matrix and keeps the old set",
			func(x float64) {
				m := uwv.New()
				before := m.Parameters()
				beforeInv := m.InverseInertia()

				bad := vehicle(uwv.Intermediate)
				bad.Inertia[1][1] = x
				err := m.SetParameters(bad)

				Expect(err).To(MatchError(uwv.ErrNonFiniteInertia))
				var cfgErr *uwv.ConfigError
				Expect(errors.As(err, &cfgErr)).To(BeTrue())

				Expect(m.Parameters()).To(Equal(before))
				Expect(m.InverseInertia()).To(Equal(beforeInv))

				_, err = uwv.NewWithParameters(bad)
				Expect(err).To(MatchError(uwv.ErrNonFiniteInertia))
			},
			Entry("NaN", math.NaN()),
			Entry("+Inf", math.Inf(1)),
			Entry("-Inf", math.Inf(-1)),
		)

		It("recomputes the inverse inertia", func() {
			m := uwv.New()
			p := vehicle(uwv.Intermediate)
			Expect(m.SetParameters(p)).To(Succeed())

			inv, err := uwv.InvertInertia(p.Inertia)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.InverseInertia()).To(Equal(inv))
			Expect(m.Parameters().ModelType).To(Equal(uwv.Intermediate))
		})

		It("does not alias caller-owned damping matrices", func() {
			p := vehicle(uwv.Simple)
			m, err := uwv.NewWithParameters(p)
			Expect(err).NotTo(HaveOccurred())

			p.DampingMatrices[0][0][0] = 1e6
			Expect(m.Parameters().DampingMatrices[0][0][0]).To(Equal(20.0))

			snapshot := m.Parameters()
			snapshot.DampingMatrices[1][1][1] = -1
			Expect(m.Parameters().DampingMatrices[1][1][1]).To(Equal(60.0))
		})

		It("refuses construction from invalid parameters", func() {
			p := vehicle(uwv.Simple)
			p.Buoyancy = 0
			m, err := uwv.NewWithParameters(p)
			Expect(m).To(BeNil())
			Expect(err).To(MatchError(uwv.ErrNonPositiveBuoyancy))
		})
	})

	Describe("restoring term", func() {
		It("vanishes for a neutral vehicle in any orientation", func() {
			p := vehicle(uwv.Simple)
			p.Buoyancy = p.Weight
			p.CenterOfBuoyancy = p.CenterOfGravity
			m, err := uwv.NewWithParameters(p)
			Expect(err).NotTo(HaveOccurred())

			for _, o := range []dynamo.Orientation{
				dynamo.IdentityOrientation(),
				dynamo.OrientationFromEuler(math.Pi, 0, 0),
				dynamo.OrientationFromEuler(0.4, -1.2, 2.8),
			} {
				Expect(m.GravityBuoyancy(o)).To(beCloseTo(dynamo.Vector6{}, 1e-12))
			}
		})
	})

	It("serves concurrent evaluations while parameters are replaced", func() {
		m := uwv.New()
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer GinkgoRecover()
				defer wg.Done()
				for j := 0; j < 200; j++ {
					tau, err := m.Effort(dynamo.Vector6{0.1}, velocity, orientation)
					Expect(err).NotTo(HaveOccurred())
					Expect(tau.IsValid()).To(BeTrue())
				}
			}()
		}
		for j := 0; j < 50; j++ {
			mt := []uwv.ModelType{uwv.Simple, uwv.Intermediate, uwv.Complex}[j%3]
			Expect(m.SetParameters(vehicle(mt))).To(Succeed())
		}
		wg.Wait()
	})
})
