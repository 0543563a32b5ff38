package utils

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// OutputPath names the transformed PDF for input: prefix + input basename
// with a .pdf extension, inside dir. The basename is NFC-normalised so names
// typed on macOS and Windows produce the same output file.
func OutputPath(dir, prefix, input string) string {
	base := filepath.Base(input)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, norm.NFC.String(prefix+base)+".pdf")
}

// TempWorkDir creates a scratch directory for intermediate PDFs.
func TempWorkDir() (string, error) {
	return os.MkdirTemp("", "notesmargin-*")
}
