package converter

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/kpauljoseph/notesmargin/pkg/logger"
)

const backendLibreOffice = "libreoffice"

// Executor abstracts process execution so the LibreOffice backend can be
// tested without an office suite installed.
type Executor interface {
	LookPath(file string) (string, error)
	Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error
}

type osExecutor struct{}

func (osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osExecutor) Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// LibreOffice converts documents with a headless soffice process.
type LibreOffice struct {
	binary  string
	timeout time.Duration
	exec    Executor
	logger  *logger.Logger
}

type LibreOfficeOption func(*LibreOffice)

func WithExecutor(e Executor) LibreOfficeOption {
	return func(l *LibreOffice) {
		l.exec = e
	}
}

func NewLibreOffice(binary string, timeout time.Duration, logger *logger.Logger, opts ...LibreOfficeOption) *LibreOffice {
	l := &LibreOffice{
		binary:  binary,
		timeout: timeout,
		exec:    osExecutor{},
		logger:  logger,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *LibreOffice) Convert(ctx context.Context, sourcePath, outDir string) (string, error) {
	fail := func(err error) (string, error) {
		return "", &ConversionError{Source: sourcePath, Backend: backendLibreOffice, Err: err}
	}

	bin, err := l.exec.LookPath(l.binary)
	if err != nil {
		return fail(fmt.Errorf("office renderer %q not found: %w", l.binary, err))
	}

	absSource, err := filepath.Abs(sourcePath)
	if err != nil {
		return fail(err)
	}
	absOut, err := filepath.Abs(outDir)
	if err != nil {
		return fail(err)
	}
	if err := os.MkdirAll(absOut, 0755); err != nil {
		return fail(fmt.Errorf("failed to create output directory: %w", err))
	}

	// A private profile keeps this run from attaching to a desktop instance.
	profileDir := filepath.Join(absOut, ".lo-profile")
	defer os.RemoveAll(profileDir)

	args := []string{
		"-env:UserInstallation=" + fileURL(profileDir),
		"--headless",
		"--norestore",
		"--convert-to", ExportFilterPDF,
		"--outdir", absOut,
		absSource,
	}

	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	// soffice can exit 0 without writing anything; a PDF left by an earlier
	// run must not pass for its output.
	pdfPath := filepath.Join(absOut, strings.TrimSuffix(filepath.Base(absSource), filepath.Ext(absSource))+".pdf")
	if err := os.Remove(pdfPath); err != nil && !os.IsNotExist(err) {
		return fail(fmt.Errorf("failed to remove stale output %s: %w", pdfPath, err))
	}

	l.logger.Debug("Running %s %s", bin, strings.Join(args, " "))

	var stdout, stderr bytes.Buffer
	if err := l.exec.Run(ctx, bin, args, &stdout, &stderr); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			err = fmt.Errorf("%w: %s", err, msg)
		}
		return fail(err)
	}
	l.logger.Trace("soffice output: %s", strings.TrimSpace(stdout.String()))

	if _, err := os.Stat(pdfPath); err != nil {
		return fail(fmt.Errorf("renderer reported success but produced no PDF at %s", pdfPath))
	}

	l.logger.Debug("Converted %s to %s", sourcePath, pdfPath)
	return pdfPath, nil
}

func fileURL(path string) string {
	p := filepath.ToSlash(path)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return (&url.URL{Scheme: "file", Path: p}).String()
}
