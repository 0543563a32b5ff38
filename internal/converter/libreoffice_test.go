package converter_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/notesmargin/internal/converter"
)

type fakeExecutor struct {
	lookPathErr error
	runErr      error
	stderr      string
	writeOutput bool

	name string
	args []string
}

func (f *fakeExecutor) LookPath(file string) (string, error) {
	if f.lookPathErr != nil {
		return "", f.lookPathErr
	}
	return "/usr/bin/" + file, nil
}

func (f *fakeExecutor) Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error {
	f.name = name
	f.args = args
	if f.stderr != "" {
		fmt.Fprint(stderr, f.stderr)
	}
	if f.runErr != nil {
		return f.runErr
	}
	if f.writeOutput {
		outDir := args[len(args)-2]
		src := args[len(args)-1]
		base := filepath.Base(src[:len(src)-len(filepath.Ext(src))])
		return os.WriteFile(filepath.Join(outDir, base+".pdf"), []byte("%PDF-1.4\n"), 0644)
	}
	return nil
}

var _ = Describe("LibreOffice converter", func() {
	var (
		workDir string
		source  string
		ctx     context.Context
	)

	BeforeEach(func() {
		var err error
		workDir, err = os.MkdirTemp("", "notesmargin-lo-*")
		Expect(err).NotTo(HaveOccurred())

		source = filepath.Join(workDir, "lecture.docx")
		Expect(os.WriteFile(source, []byte("docx"), 0644)).To(Succeed())
		ctx = context.Background()
	})

	AfterEach(func() {
		os.RemoveAll(workDir)
	})

	It("should run a headless conversion and return the PDF path", func() {
		fake := &fakeExecutor{writeOutput: true}
		lo := converter.NewLibreOffice("soffice", 0, converterTestLogger(), converter.WithExecutor(fake))

		outDir := filepath.Join(workDir, "out")
		pdfPath, err := lo.Convert(ctx, source, outDir)
		Expect(err).NotTo(HaveOccurred())
		Expect(filepath.Base(pdfPath)).To(Equal("lecture.pdf"))
		Expect(pdfPath).To(BeAnExistingFile())

		Expect(fake.name).To(Equal("/usr/bin/soffice"))
		Expect(fake.args).To(ContainElements("--headless", "--convert-to", converter.ExportFilterPDF))
		Expect(fake.args[0]).To(HavePrefix("-env:UserInstallation=file:///"))
		Expect(filepath.Join(outDir, ".lo-profile")).NotTo(BeADirectory())
	})

	It("should fail when the renderer is not installed", func() {
		fake := &fakeExecutor{lookPathErr: errors.New("executable file not found")}
		lo := converter.NewLibreOffice("soffice", 0, converterTestLogger(), converter.WithExecutor(fake))

		_, err := lo.Convert(ctx, source, workDir)
		Expect(err).To(MatchError(converter.ErrConversion))
		Expect(err.Error()).To(ContainSubstring("not found"))
	})

	It("should surface the renderer's error output", func() {
		fake := &fakeExecutor{runErr: errors.New("exit status 1"), stderr: "source file could not be loaded"}
		lo := converter.NewLibreOffice("soffice", 0, converterTestLogger(), converter.WithExecutor(fake))

		_, err := lo.Convert(ctx, source, workDir)
		Expect(errors.Is(err, converter.ErrConversion)).To(BeTrue())

		var convErr *converter.ConversionError
		Expect(errors.As(err, &convErr)).To(BeTrue())
		Expect(convErr.Source).To(Equal(source))
		Expect(convErr.Error()).To(ContainSubstring("source file could not be loaded"))
	})

	It("should fail when no PDF was produced", func() {
		fake := &fakeExecutor{}
		lo := converter.NewLibreOffice("soffice", 0, converterTestLogger(), converter.WithExecutor(fake))

		_, err := lo.Convert(ctx, source, workDir)
		Expect(err).To(MatchError(converter.ErrConversion))
		Expect(err.Error()).To(ContainSubstring("produced no PDF"))
	})

	It("should not mistake a PDF from an earlier run for fresh output", func() {
		stale := filepath.Join(workDir, "lecture.pdf")
		Expect(os.WriteFile(stale, []byte("%PDF-1.4 stale\n"), 0644)).To(Succeed())

		fake := &fakeExecutor{}
		lo := converter.NewLibreOffice("soffice", 0, converterTestLogger(), converter.WithExecutor(fake))

		_, err := lo.Convert(ctx, source, workDir)
		Expect(err).To(MatchError(converter.ErrConversion))
		Expect(err.Error()).To(ContainSubstring("produced no PDF"))
		Expect(stale).NotTo(BeAnExistingFile())
	})

	It("should replace a PDF from an earlier run", func() {
		stale := filepath.Join(workDir, "lecture.pdf")
		Expect(os.WriteFile(stale, []byte("stale"), 0644)).To(Succeed())

		fake := &fakeExecutor{writeOutput: true}
		lo := converter.NewLibreOffice("soffice", 0, converterTestLogger(), converter.WithExecutor(fake))

		pdfPath, err := lo.Convert(ctx, source, workDir)
		Expect(err).NotTo(HaveOccurred())
		Expect(os.ReadFile(pdfPath)).To(Equal([]byte("%PDF-1.4\n")))
	})
})
