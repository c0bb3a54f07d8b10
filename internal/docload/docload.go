// Package docload extracts text lines from the university's source
// documents. The downstream parsers are line-oriented, so every loader
// returns the document as a flat slice of whitespace-normalized lines.
// PDF, HTML, and plain-text inputs are supported; the handbook and schedule
// are published as PDFs, the other formats cover exported copies.
package docload

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/hsrw-ise/advisor-go/internal/errors"
	"github.com/hsrw-ise/advisor-go/internal/stringutil"
)

// Load reads a document and returns its non-empty text lines. The loader is
// chosen by file extension; anything unrecognized is treated as plain text.
func Load(path string) ([]string, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrNoDocuments, path)
		}
		return nil, fmt.Errorf("stat document: %w", err)
	}

	var lines []string
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		lines, err = loadPDF(path)
	case ".html", ".htm":
		lines, err = loadHTML(path)
	default:
		lines, err = loadText(path)
	}
	if err != nil {
		return nil, apperrors.NewParseError(path, 0, err)
	}
	return lines, nil
}

// cleanLines normalizes whitespace per line and drops blank lines.
func cleanLines(raw []string) []string {
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if line = stringutil.CollapseWhitespace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
