package pdf_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/notesmargin/internal/layout"
	"github.com/kpauljoseph/notesmargin/internal/pdf"
)

var _ = Describe("PDF reader", func() {
	var tempDir string

	BeforeEach(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "notesmargin-reader-*")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(tempDir)
	})

	It("should read page boxes and opaque content references", func() {
		path := filepath.Join(tempDir, "mixed.pdf")
		writeFixture(path, "Mixed", layout.Box{Width: 400, Height: 1000}, layout.Box{Width: 1000, Height: 400})

		doc, err := pdf.ReadDocument(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(doc.Len()).To(Equal(2))
		Expect(doc.Metadata.Title).To(Equal("Mixed"))

		first := doc.Page(0)
		Expect(first.Box().Width).To(BeNumerically("~", 400, 0.01))
		Expect(first.Box().Height).To(BeNumerically("~", 1000, 0.01))
		Expect(doc.Page(1).Box().Width).To(BeNumerically("~", 1000, 0.01))

		streams := first.Streams()
		Expect(streams).To(HaveLen(1))
		Expect(streams[0].Source.PageNumber).To(Equal(1))
		Expect(filepath.IsAbs(streams[0].Source.Path)).To(BeTrue())
		Expect(streams[0].Length).To(BeNumerically(">", 0))
		Expect(streams[0].Digest).To(HaveLen(64))
		Expect(streams[0].Transforms).To(BeEmpty())

		Expect(doc.Page(1).Streams()[0].Digest).NotTo(Equal(streams[0].Digest))
	})

	Context("with cross-reference and object streams", func() {
		var compact string

		BeforeEach(func() {
			plain := filepath.Join(tempDir, "plain.pdf")
			writeFixture(plain, "Compact", layout.Box{Width: 400, Height: 1000}, layout.Box{Width: 1000, Height: 400})
			compact = filepath.Join(tempDir, "compact.pdf")
			rewriteCompact(plain, compact)
		})

		It("should refuse to read the file directly rather than lose pages", func() {
			doc, err := pdf.ReadDocument(compact)
			Expect(err).To(HaveOccurred())
			Expect(doc).To(BeNil())
		})

		It("should read every page after normalizing", func() {
			workDir := filepath.Join(tempDir, "work")
			doc, err := pdf.LoadDocument(compact, workDir)
			Expect(err).NotTo(HaveOccurred())
			Expect(doc.Len()).To(Equal(2))
			Expect(doc.Source).To(Equal(compact))
			Expect(doc.Page(0).Box().Width).To(BeNumerically("~", 400, 0.01))
			Expect(doc.Page(1).Box().Height).To(BeNumerically("~", 400, 0.01))

			src := doc.Page(0).Streams()[0].Source
			Expect(filepath.Dir(src.Path)).To(Equal(workDir))
			Expect(src.Path).To(BeAnExistingFile())
		})
	})

	Context("with rotated pages", func() {
		var rotated string

		BeforeEach(func() {
			plain := filepath.Join(tempDir, "plain.pdf")
			writeFixture(plain, "", layout.Box{Width: 400, Height: 1000})
			rotated = filepath.Join(tempDir, "rotated.pdf")
			rotateFixture(plain, rotated, 90)
		})

		It("should report the displayed box and route on it", func() {
			doc, err := pdf.LoadDocument(rotated, filepath.Join(tempDir, "work"))
			Expect(err).NotTo(HaveOccurred())
			Expect(doc.Len()).To(Equal(1))

			box := doc.Page(0).Box()
			Expect(box.Width).To(BeNumerically("~", 1000, 0.01))
			Expect(box.Height).To(BeNumerically("~", 400, 0.01))
			Expect(layout.RouteBox(box)).To(Equal(layout.Below))
			Expect(doc.Page(0).Streams()[0].Box).To(Equal(box))
		})
	})

	It("should fail for a missing file", func() {
		_, err := pdf.ReadDocument(filepath.Join(tempDir, "missing.pdf"))
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("failed to open PDF"))
	})

	It("should fail for a file that is not a PDF", func() {
		path := filepath.Join(tempDir, "junk.pdf")
		Expect(os.WriteFile(path, []byte("definitely not a pdf"), 0644)).To(Succeed())

		_, err := pdf.ReadDocument(path)
		Expect(err).To(HaveOccurred())
	})
})
