package body_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orbsim/internal/body"
	"github.com/san-kum/orbsim/internal/vec"
)

var _ = Describe("Body", func() {
	It("derives mass from the radius at unit density", func() {
		b, err := body.New(vec.Vec3{}, vec.Vec3{}, 1.0)
		Expect(err).NotTo(HaveOccurred())
		Expect(b.Mass).To(BeNumerically("~", 4.0/3.0*math.Pi, 1e-12))

		b2, err := body.New(vec.Vec3{}, vec.Vec3{}, 2.0)
		Expect(err).NotTo(HaveOccurred())
		Expect(b2.Mass).To(BeNumerically("~", 8*b.Mass, 1e-9))
	})

	It("rejects non-positive radii", func() {
		_, err := body.New(vec.Vec3{}, vec.Vec3{}, 0)
		Expect(err).To(MatchError(body.ErrInvalidRadius))

		_, err = body.New(vec.Vec3{}, vec.Vec3{}, -0.5)
		Expect(err).To(MatchError(body.ErrInvalidRadius))
	})

	It("computes kinetic energy and momentum", func() {
		b, err := body.New(vec.Vec3{}, vec.Vec3{X: 3}, 1.0)
		Expect(err).NotTo(HaveOccurred())
		Expect(b.KineticEnergy()).To(BeNumerically("~", 0.5*b.Mass*9, 1e-12))
		Expect(b.Momentum().X).To(BeNumerically("~", 3*b.Mass, 1e-12))
	})
})

var _ = Describe("Registry", func() {
	mustBody := func(x float64) body.Body {
		b, err := body.New(vec.Vec3{X: x}, vec.Vec3{}, 1.0)
		Expect(err).NotTo(HaveOccurred())
		return b
	}

	It("assigns stable indices in insertion order", func() {
		reg := body.NewRegistry(4)
		for k := 0; k < 4; k++ {
			Expect(reg.Add(mustBody(float64(k)))).To(Equal(k))
		}
		Expect(reg.Len()).To(Equal(4))
		Expect(reg.At(2).Pos.X).To(Equal(2.0))
	})

	It("visits each unordered pair exactly once, no self-pairs", func() {
		reg := body.NewRegistry(5)
		for k := 0; k < 5; k++ {
			reg.Add(mustBody(float64(k)))
		}

		seen := map[[2]int]int{}
		reg.EachPair(func(i, j int, a, b *body.Body) {
			Expect(i).To(BeNumerically("<", j))
			seen[[2]int{i, j}]++
		})

		Expect(seen).To(HaveLen(reg.PairCount()))
		for pair, count := range seen {
			Expect(count).To(Equal(1), "pair %v visited more than once", pair)
		}
	})

	It("visits pairs in lexicographic order", func() {
		reg := body.NewRegistry(4)
		for k := 0; k < 4; k++ {
			reg.Add(mustBody(float64(k)))
		}

		var order [][2]int
		reg.EachPair(func(i, j int, a, b *body.Body) {
			order = append(order, [2]int{i, j})
		})
		Expect(order).To(Equal([][2]int{
			{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3},
		}))
	})

	It("clones independently of the original", func() {
		reg := body.NewRegistry(1)
		reg.Add(mustBody(0))

		clone := reg.Clone()
		clone.At(0).Pos.X = 99

		Expect(reg.At(0).Pos.X).To(Equal(0.0))
	})

	It("flags non-finite state", func() {
		reg := body.NewRegistry(1)
		reg.Add(mustBody(0))
		Expect(reg.IsValid()).To(BeTrue())

		reg.At(0).Vel.Y = math.NaN()
		Expect(reg.IsValid()).To(BeFalse())
	})
})
