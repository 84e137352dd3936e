package mandel_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/mandelview/internal/mandel"
)

var _ = Describe("Viewport", func() {
	var (
		cfg mandel.Config
		v   mandel.Viewport
	)

	BeforeEach(func() {
		cfg = mandel.DefaultConfig()
		v = mandel.Viewport{Corner: mandel.NewComplex(-1.5, 0.75), SideLength: 2.0}
	})

	Describe("Reset", func() {
		It("returns the default corner and side length", func() {
			r := v.Reset()
			Expect(r.Corner).To(Equal(mandel.NewComplex(-2.3, 1.8)))
			Expect(r.SideLength).To(Equal(3.6))
		})
	})

	DescribeTable("pans keep the side length",
		func(cmd mandel.Command, dRe, dIm float64) {
			next := cfg.Apply(v, cmd)
			Expect(next.SideLength).To(Equal(v.SideLength))
			Expect(next.Corner.Re).To(BeNumerically("~", v.Corner.Re+dRe, 1e-12))
			Expect(next.Corner.Im).To(BeNumerically("~", v.Corner.Im+dIm, 1e-12))
		},
		Entry("up", mandel.CmdUp, 0.0, 0.4),
		Entry("down", mandel.CmdDown, 0.0, -0.4),
		Entry("left", mandel.CmdLeft, -0.4, 0.0),
		Entry("right", mandel.CmdRight, 0.4, 0.0),
	)

	DescribeTable("zooms keep the corner",
		func(cmd mandel.Command, side float64) {
			next := cfg.Apply(v, cmd)
			Expect(next.Corner).To(Equal(v.Corner))
			Expect(next.SideLength).To(BeNumerically("~", side, 1e-12))
		},
		Entry("zoom in", mandel.CmdZoomIn, 1.6),
		Entry("zoom out", mandel.CmdZoomOut, 2.4),
	)

	It("does not restore the side length after zoom in then zoom out", func() {
		next := cfg.ApplyAll(v, mandel.CmdZoomIn, mandel.CmdZoomOut)
		Expect(next.SideLength).NotTo(Equal(v.SideLength))
		Expect(next.SideLength).To(BeNumerically("~", v.SideLength*0.96, 1e-12))
	})

	It("leaves the source viewport untouched", func() {
		before := v
		_ = cfg.ApplyAll(v, mandel.CmdUp, mandel.CmdZoomIn, mandel.CmdRight)
		Expect(v).To(Equal(before))
	})

	It("shrinks without bound when no minimum is configured", func() {
		next := v
		for i := 0; i < 200; i++ {
			next = cfg.Apply(next, mandel.CmdZoomIn)
		}
		Expect(next.SideLength).To(BeNumerically(">", 0))
		Expect(next.SideLength).To(BeNumerically("<", 1e-18))
	})

	Describe("Validate", func() {
		It("rejects a non-positive side", func() {
			v.SideLength = 0
			Expect(v.Validate()).To(MatchError(mandel.ErrInvalidViewport))
		})

		It("accepts the default viewport", func() {
			Expect(mandel.DefaultViewport().Validate()).To(Succeed())
		})
	})

	It("reports the center of the window", func() {
		c := mandel.DefaultViewport().Center()
		Expect(c.Re).To(BeNumerically("~", -0.5, 1e-12))
		Expect(c.Im).To(BeNumerically("~", 0.0, 1e-12))
	})
})
