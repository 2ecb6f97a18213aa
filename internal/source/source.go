// Package source converts concrete document formats into raw page geometry.
// PDF extracts real glyph positions and font metrics; markup formats
// (Markdown, HTML, DOCX, CSV) synthesize span geometry with style-derived
// font sizes so the typography-driven classifier applies uniformly.
package source

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/blocksearch/internal/geometry"
)

// Source produces one document's pages of raw geometry.
type Source interface {
	Pages(r io.Reader, filename string) ([]geometry.Page, error)
}

// Synthetic font sizes for formats without real typography. Heading sizes
// sit above the body baseline so percentile classification recovers the
// levels the markup declared.
const (
	sizeH1   = 24
	sizeH2   = 18
	sizeH3   = 14
	sizeBody = 11
)

const syntheticHeadingFont = "Synthetic-Bold"
const syntheticBodyFont = "Synthetic-Regular"

// SupportedExtensions lists the file extensions this service can ingest.
var SupportedExtensions = map[string]bool{
	".json": true,
	".pdf":  true,
	".md":   true,
	".html": true,
	".htm":  true,
	".docx": true,
	".csv":  true,
	".txt":  true,
}

// ForFile returns the geometry source for a filename.
func ForFile(filename string) (Source, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".json":
		return &JSONSource{}, nil
	case ".pdf":
		return &PDFSource{}, nil
	case ".md", ".markdown":
		return &MarkdownSource{}, nil
	case ".html", ".htm":
		return &HTMLSource{}, nil
	case ".docx":
		return &DOCXSource{}, nil
	case ".csv":
		return &CSVSource{}, nil
	case ".txt":
		return &TextSource{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks whether a file extension is supported.
func IsSupportedExtension(filename string) bool {
	return SupportedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// headingSize maps a markup heading level to a synthetic font size.
// Levels 4-6 still read larger than body but below h3.
func headingSize(level int) float64 {
	switch level {
	case 1:
		return sizeH1
	case 2:
		return sizeH2
	case 3:
		return sizeH3
	default:
		return sizeH3 - 1
	}
}

// textBlock builds a single-span synthetic text block.
func textBlock(text string, size float64, font string) geometry.Block {
	return geometry.Block{
		Type: geometry.BlockText,
		Lines: []geometry.Line{
			{Spans: []geometry.Span{{Text: text, Size: size, Font: font}}},
		},
	}
}
