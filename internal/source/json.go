package source

import (
	"io"

	"github.com/dgallion1/blocksearch/internal/geometry"
)

// JSONSource reads the native geometry format: a JSON array of pages, each
// with raw blocks, lines and spans. This is the interchange format for
// external page-geometry producers.
type JSONSource struct{}

func (s *JSONSource) Pages(r io.Reader, filename string) ([]geometry.Page, error) {
	return geometry.DecodePages(r)
}
