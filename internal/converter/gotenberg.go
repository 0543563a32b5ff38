package converter

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kpauljoseph/notesmargin/pkg/logger"
)

const (
	backendGotenberg = "gotenberg"
	gotenbergRoute   = "/forms/libreoffice/convert"
	maxErrorBody     = 512
)

// Gotenberg converts documents by posting them to a Gotenberg server.
// Failures are returned immediately; there are no retries.
type Gotenberg struct {
	baseURL string
	client  *http.Client
	logger  *logger.Logger
}

func NewGotenberg(baseURL string, timeout time.Duration, logger *logger.Logger) *Gotenberg {
	return &Gotenberg{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

func (g *Gotenberg) Convert(ctx context.Context, sourcePath, outDir string) (string, error) {
	fail := func(err error) (string, error) {
		return "", &ConversionError{Source: sourcePath, Backend: backendGotenberg, Err: err}
	}

	body, contentType, err := multipartBody(sourcePath)
	if err != nil {
		return fail(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+gotenbergRoute, body)
	if err != nil {
		return fail(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", contentType)

	g.logger.Debug("Posting %s to %s", sourcePath, req.URL)

	resp, err := g.client.Do(req)
	if err != nil {
		return fail(fmt.Errorf("failed to reach converter: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fail(fmt.Errorf("server returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))))
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fail(fmt.Errorf("failed to create output directory: %w", err))
	}

	pdfPath := filepath.Join(outDir, strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))+".pdf")
	if err := writeResponse(resp.Body, pdfPath); err != nil {
		return fail(err)
	}

	g.logger.Debug("Converted %s to %s", sourcePath, pdfPath)
	return pdfPath, nil
}

func multipartBody(sourcePath string) (io.Reader, string, error) {
	src, err := os.Open(sourcePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open document: %w", err)
	}
	defer src.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("files", filepath.Base(sourcePath))
	if err != nil {
		return nil, "", fmt.Errorf("failed to build request: %w", err)
	}
	if _, err := io.Copy(part, src); err != nil {
		return nil, "", fmt.Errorf("failed to read document: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to build request: %w", err)
	}

	return &buf, mw.FormDataContentType(), nil
}

func writeResponse(r io.Reader, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("failed to read converted PDF: %w", err)
	}

	return f.Close()
}
