package automation_test

import (
	"bytes"
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/mandelview/internal/automation"
	"github.com/san-kum/mandelview/internal/config"
	"github.com/san-kum/mandelview/internal/mandel"
	"github.com/san-kum/mandelview/internal/storage"
)

const seahorseTour = `
name: seahorse dive
preset: seahorse
width: 32
height: 32
steps:
  - command: zoom-in
    repeat: 3
    save_as: closer
  - command: left
  - command: zoom_out
    save_as: wider
`

var _ = Describe("Tour", func() {
	var renderer *mandel.Renderer

	BeforeEach(func() {
		var err error
		renderer, err = mandel.NewRenderer(mandel.DefaultConfig())
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("ParseTour", func() {
		It("parses steps and preset", func() {
			tour, err := automation.ParseTour([]byte(seahorseTour))
			Expect(err).NotTo(HaveOccurred())
			Expect(tour.Name).To(Equal("seahorse dive"))
			Expect(tour.Steps).To(HaveLen(3))
			Expect(tour.Steps[0].Repeat).To(Equal(3))
		})

		It("rejects unknown commands", func() {
			_, err := automation.ParseTour([]byte("name: bad\nsteps:\n  - command: jump\n"))
			Expect(err).To(MatchError(mandel.ErrUnknownCommand))
		})

		It("rejects unknown presets", func() {
			_, err := automation.ParseTour([]byte("name: bad\npreset: atlantis\nsteps:\n  - command: up\n"))
			Expect(err).To(HaveOccurred())
		})

		DescribeTable("bundled tour files load",
			func(path string) {
				tour, err := automation.LoadTour(path)
				Expect(err).NotTo(HaveOccurred())
				Expect(tour.Steps).NotTo(BeEmpty())
			},
			Entry("home", "../../tours/home.yaml"),
			Entry("seahorse", "../../tours/seahorse.yaml"),
		)

		It("rejects tours without steps", func() {
			_, err := automation.ParseTour([]byte("name: empty\n"))
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("RunTour", func() {
		It("applies commands in order and saves requested frames", func() {
			tour, err := automation.ParseTour([]byte(seahorseTour))
			Expect(err).NotTo(HaveOccurred())

			st := storage.New(GinkgoT().TempDir())
			Expect(st.Init()).To(Succeed())

			var out bytes.Buffer
			frames, err := automation.RunTour(context.Background(), tour, renderer, st, &out)
			Expect(err).NotTo(HaveOccurred())
			Expect(frames).To(HaveLen(3))

			start, _ := config.GetPreset("seahorse")
			cfg := renderer.Config()
			want := cfg.ApplyAll(start, mandel.CmdZoomIn, mandel.CmdZoomIn, mandel.CmdZoomIn)
			Expect(frames[0].Viewport).To(Equal(want))
			want = cfg.ApplyAll(want, mandel.CmdLeft, mandel.CmdZoomOut)
			Expect(frames[2].Viewport).To(Equal(want))

			Expect(frames[0].SavedID).NotTo(BeEmpty())
			Expect(frames[1].SavedID).To(BeEmpty())
			Expect(frames[2].SavedID).NotTo(BeEmpty())
			Expect(frames[0].Summary.Pixels).To(Equal(32 * 32))

			runs, err := st.List()
			Expect(err).NotTo(HaveOccurred())
			Expect(runs).To(HaveLen(2))

			Expect(out.String()).To(ContainSubstring("step 1/3: zoom-in x3"))
		})

		It("runs without a store", func() {
			tour := &automation.Tour{
				Name:   "quick",
				Width:  8,
				Height: 8,
				Steps:  []automation.TourStep{{Command: "reset", SaveAs: "ignored"}},
			}
			frames, err := automation.RunTour(context.Background(), tour, renderer, nil, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(frames).To(HaveLen(1))
			Expect(frames[0].Viewport).To(Equal(mandel.DefaultViewport()))
		})

		It("stops when the context is cancelled", func() {
			tour, err := automation.ParseTour([]byte(seahorseTour))
			Expect(err).NotTo(HaveOccurred())

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			frames, err := automation.RunTour(ctx, tour, renderer, nil, nil)
			Expect(err).To(MatchError(context.Canceled))
			Expect(frames).To(BeEmpty())
		})

		It("prefers an explicit start over the preset", func() {
			tour := &automation.Tour{
				Name:   "explicit",
				Preset: "seahorse",
				Start:  &config.ViewportConfig{Real: -1, Imag: 1, Side: 2},
				Width:  8,
				Height: 8,
				Steps:  []automation.TourStep{{Command: "up"}},
			}
			frames, err := automation.RunTour(context.Background(), tour, renderer, nil, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(frames[0].Viewport.Corner.Re).To(Equal(-1.0))
			Expect(frames[0].Viewport.Corner.Im).To(BeNumerically("~", 1.4, 1e-12))
		})
	})
})
