package layout_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/notesmargin/internal/layout"
)

func contentPage(path string, number int, width, height float64) layout.Page {
	box := layout.Box{Width: width, Height: height}
	page, err := layout.NewPage(box, layout.Stream{
		Source: layout.Source{Path: path, PageNumber: number},
		Box:    box,
		Length: 42,
		Digest: "abc123",
	})
	Expect(err).NotTo(HaveOccurred())
	return page
}

var _ = Describe("Page compositor", func() {
	Context("when composing to the right", func() {
		var base, blank, composed layout.Page

		BeforeEach(func() {
			var err error
			base = contentPage("in.pdf", 1, 300, 800)
			blank, err = layout.NewBlankLike(base)
			Expect(err).NotTo(HaveOccurred())
			composed = layout.Compose(base, blank, layout.RightOf)
		})

		It("should double the width and keep the height", func() {
			Expect(composed.Box()).To(Equal(layout.Box{Width: 600, Height: 800}))
		})

		It("should draw the base content unshifted", func() {
			streams := composed.Streams()
			Expect(streams).To(HaveLen(1))
			Expect(streams[0].Source).To(Equal(layout.Source{Path: "in.pdf", PageNumber: 1}))
			Expect(streams[0].Offset()).To(Equal(layout.Translation{}))
			Expect(streams[0].Digest).To(Equal("abc123"))
		})

		It("should place the blank region directly right of the base", func() {
			regions := composed.Regions()
			Expect(regions).To(HaveLen(2))

			Expect(regions[0].Blank).To(BeFalse())
			Expect(regions[0].Offset).To(Equal(layout.Translation{}))

			Expect(regions[1].Blank).To(BeTrue())
			Expect(regions[1].Offset).To(Equal(layout.Translation{DX: 300}))

			x, y, w, h := regions[1].Rect()
			Expect(x).To(Equal(300.0))
			Expect(y).To(BeZero())
			Expect(w).To(Equal(300.0))
			Expect(h).To(Equal(800.0))
		})

		It("should not modify its inputs", func() {
			Expect(base.Box()).To(Equal(layout.Box{Width: 300, Height: 800}))
			Expect(blank.Box()).To(Equal(layout.Box{Width: 300, Height: 800}))
			Expect(base.Streams()[0].Transforms).To(BeEmpty())
			Expect(base.Regions()).To(HaveLen(1))
			Expect(blank.IsBlank()).To(BeTrue())
		})
	})

	Context("when composing below", func() {
		It("should double the height and keep the width", func() {
			base := contentPage("in.pdf", 2, 800, 300)
			blank, err := layout.NewBlankLike(base)
			Expect(err).NotTo(HaveOccurred())

			composed := layout.Compose(base, blank, layout.Below)
			Expect(composed.Box()).To(Equal(layout.Box{Width: 800, Height: 600}))

			regions := composed.Regions()
			Expect(regions[1].Offset).To(Equal(layout.Translation{DY: -300}))

			_, y, _, h := regions[1].Rect()
			Expect(y).To(Equal(300.0))
			Expect(h).To(Equal(300.0))
		})
	})

	Context("when the addition carries content", func() {
		It("should append the translation to the addition's transform log", func() {
			base := contentPage("a.pdf", 1, 400, 1000)
			addition := contentPage("b.pdf", 3, 400, 1000)

			composed := layout.Compose(base, addition, layout.RightOf)
			streams := composed.Streams()
			Expect(streams).To(HaveLen(2))
			Expect(streams[0].Source.Path).To(Equal("a.pdf"))
			Expect(streams[1].Source.Path).To(Equal("b.pdf"))
			Expect(streams[1].Transforms).To(Equal([]layout.Translation{{DX: 400}}))
			Expect(addition.Streams()[0].Transforms).To(BeEmpty())
		})

		It("should accumulate translations across repeated composition", func() {
			first := layout.Compose(contentPage("a.pdf", 1, 100, 300), contentPage("b.pdf", 1, 100, 300), layout.RightOf)
			second := layout.Compose(contentPage("c.pdf", 1, 200, 300), first, layout.RightOf)

			streams := second.Streams()
			Expect(streams).To(HaveLen(3))
			Expect(streams[2].Transforms).To(Equal([]layout.Translation{{DX: 100}, {DX: 200}}))
			Expect(streams[2].Offset()).To(Equal(layout.Translation{DX: 300}))
			Expect(second.Box()).To(Equal(layout.Box{Width: 400, Height: 300}))
		})

		It("should carry nested regions forward in page coordinates", func() {
			inner, err := layout.NewBlankPage(100, 300)
			Expect(err).NotTo(HaveOccurred())
			first := layout.Compose(contentPage("b.pdf", 1, 100, 300), inner, layout.RightOf)
			second := layout.Compose(contentPage("c.pdf", 1, 200, 300), first, layout.RightOf)

			regions := second.Regions()
			Expect(regions).To(HaveLen(3))
			Expect(regions[0].Offset).To(Equal(layout.Translation{}))
			Expect(regions[0].Blank).To(BeFalse())
			Expect(regions[1].Offset).To(Equal(layout.Translation{DX: 200}))
			Expect(regions[1].Blank).To(BeFalse())
			Expect(regions[2].Offset).To(Equal(layout.Translation{DX: 300}))
			Expect(regions[2].Blank).To(BeTrue())
			Expect(regions[2].Box).To(Equal(layout.Box{Width: 100, Height: 300}))

			Expect(first.Regions()).To(HaveLen(2))
		})

		It("should mix axes when nesting", func() {
			first := layout.Compose(contentPage("a.pdf", 1, 300, 100), contentPage("b.pdf", 1, 300, 100), layout.Below)
			second := layout.Compose(contentPage("c.pdf", 1, 100, 200), first, layout.RightOf)

			regions := second.Regions()
			Expect(regions).To(HaveLen(3))
			Expect(regions[2].Offset).To(Equal(layout.Translation{DX: 100, DY: -100}))
			x, y, _, _ := regions[2].Rect()
			Expect(x).To(Equal(100.0))
			Expect(y).To(Equal(100.0))
		})
	})

	Context("when the placement is out of range", func() {
		It("should panic rather than guess an axis", func() {
			base := contentPage("in.pdf", 1, 300, 800)
			Expect(func() {
				layout.Compose(base, base, layout.Placement(7))
			}).To(PanicWith("layout: unknown placement 7"))
		})
	})

	Context("when the cross-axis sizes differ", func() {
		It("should keep the base extent without failing", func() {
			base := contentPage("in.pdf", 1, 300, 800)
			smaller, err := layout.NewBlankPage(200, 500)
			Expect(err).NotTo(HaveOccurred())

			composed := layout.Compose(base, smaller, layout.RightOf)
			Expect(composed.Box()).To(Equal(layout.Box{Width: 500, Height: 800}))

			composed = layout.Compose(base, smaller, layout.Below)
			Expect(composed.Box()).To(Equal(layout.Box{Width: 300, Height: 1300}))
		})
	})

	It("should hand out copies of its streams", func() {
		composed := layout.Compose(contentPage("a.pdf", 1, 100, 300), contentPage("b.pdf", 1, 100, 300), layout.RightOf)
		streams := composed.Streams()
		streams[1].Transforms[0].DX = 9999
		Expect(composed.Streams()[1].Transforms[0].DX).To(Equal(100.0))
	})
})
