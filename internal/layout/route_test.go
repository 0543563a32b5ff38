package layout_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/notesmargin/internal/layout"
)

var _ = Describe("Orientation router", func() {
	DescribeTable("Route",
		func(width, height float64, expected layout.Placement) {
			page, err := layout.NewBlankPage(width, height)
			Expect(err).NotTo(HaveOccurred())
			Expect(layout.Route(page)).To(Equal(expected))
		},
		Entry("portrait", 200.0, 800.0, layout.RightOf),
		Entry("A4 portrait", 595.28, 841.89, layout.RightOf),
		Entry("landscape", 800.0, 200.0, layout.Below),
		Entry("A4 landscape", 841.89, 595.28, layout.Below),
		Entry("barely portrait", 500.0, 500.001, layout.RightOf),
	)

	// Square pages are routed below. Changing this must be deliberate.
	It("should treat square pages as landscape", func() {
		page, err := layout.NewBlankPage(500, 500)
		Expect(err).NotTo(HaveOccurred())
		Expect(page.Box().Orientation()).To(Equal(layout.Landscape))
		Expect(layout.Route(page)).To(Equal(layout.Below))
	})

	It("should name placements and orientations", func() {
		Expect(layout.RightOf.String()).To(Equal("right-of"))
		Expect(layout.Below.String()).To(Equal("below"))
		Expect(layout.Portrait.String()).To(Equal("portrait"))
		Expect(layout.Landscape.String()).To(Equal("landscape"))
	})
})
