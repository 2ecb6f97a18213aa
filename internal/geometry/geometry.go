// Package geometry defines the raw page-geometry input model: pages made of
// blocks, blocks made of lines, lines made of spans carrying text and font
// metrics. Providers in internal/source produce this model from concrete
// file formats; the extractor consumes it without knowing the origin.
package geometry

import (
	"encoding/json"
	"fmt"
	"io"
)

// Block type discriminators. Only text blocks are processed; image and other
// block kinds are carried through so providers can report them, but the
// extractor ignores them.
const (
	BlockText  = 0
	BlockImage = 1
)

// Span is a run of text with uniform font metrics.
type Span struct {
	Text  string  `json:"text"`
	Size  float64 `json:"size"`
	Font  string  `json:"font"`
	Flags int     `json:"flags"`
}

// Line is an ordered sequence of spans on one visual line.
type Line struct {
	Spans []Span `json:"spans"`
}

// Block is a raw layout block with a bounding box and a type discriminator.
type Block struct {
	Type  int        `json:"type"`
	BBox  [4]float64 `json:"bbox"`
	Lines []Line     `json:"lines"`
}

// Page is one page of raw blocks in source order.
type Page struct {
	Number int     `json:"number"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Blocks []Block `json:"blocks"`
}

// ParseError reports malformed geometry for a single page. The caller
// decides whether to skip the page or abort the document.
type ParseError struct {
	Page int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("geometry: page %d: %v", e.Page, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// DecodePages reads the native JSON geometry format: an array of Page
// objects. Pages missing an explicit number are numbered by position.
func DecodePages(r io.Reader) ([]Page, error) {
	var pages []Page
	dec := json.NewDecoder(r)
	if err := dec.Decode(&pages); err != nil {
		return nil, &ParseError{Page: len(pages), Err: err}
	}
	for i := range pages {
		if pages[i].Number == 0 {
			pages[i].Number = i
		}
	}
	return pages, nil
}
