package source

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/dgallion1/blocksearch/internal/geometry"
	pdflib "github.com/ledongthuc/pdf"
)

// PDFSource extracts real glyph runs with positions and font metrics and
// clusters them into lines and blocks. This is a geometry provider, not a
// layout reconstructor: multi-column ordering and reading order across
// images are out of scope.
type PDFSource struct{}

func (s *PDFSource) Pages(r io.Reader, filename string) ([]geometry.Page, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}
	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &geometry.ParseError{Page: 0, Err: err}
	}

	numPages := reader.NumPage()
	pages := make([]geometry.Page, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content := page.Content()
		pages = append(pages, geometry.Page{
			Number: i - 1,
			Blocks: clusterTexts(content.Text),
		})
	}
	return pages, nil
}

// clusterTexts groups glyph runs into visual lines by baseline, then lines
// into blocks by vertical gap.
func clusterTexts(texts []pdflib.Text) []geometry.Block {
	if len(texts) == 0 {
		return nil
	}

	// PDF y grows upward; sort top-to-bottom, then left-to-right.
	sorted := make([]pdflib.Text, len(texts))
	copy(sorted, texts)
	sort.SliceStable(sorted, func(a, b int) bool {
		if math.Abs(sorted[a].Y-sorted[b].Y) > baselineTolerance {
			return sorted[a].Y > sorted[b].Y
		}
		return sorted[a].X < sorted[b].X
	})

	type pdfLine struct {
		y     float64
		size  float64
		spans []geometry.Span
		x0    float64
		x1    float64
	}

	var lines []pdfLine
	for _, t := range sorted {
		if len(lines) > 0 && math.Abs(lines[len(lines)-1].y-t.Y) <= baselineTolerance {
			line := &lines[len(lines)-1]
			if n := len(line.spans); n > 0 && line.spans[n-1].Font == t.Font && line.spans[n-1].Size == t.FontSize {
				line.spans[n-1].Text += t.S
			} else {
				line.spans = append(line.spans, geometry.Span{Text: t.S, Size: t.FontSize, Font: t.Font})
			}
			if t.X+t.W > line.x1 {
				line.x1 = t.X + t.W
			}
			continue
		}
		lines = append(lines, pdfLine{
			y:     t.Y,
			size:  t.FontSize,
			spans: []geometry.Span{{Text: t.S, Size: t.FontSize, Font: t.Font}},
			x0:    t.X,
			x1:    t.X + t.W,
		})
	}

	// A block ends when the baseline gap exceeds the line's font size by a
	// paragraph-break margin.
	var blocks []geometry.Block
	var current geometry.Block
	var x0, y0, x1, y1 float64
	flush := func() {
		if len(current.Lines) == 0 {
			return
		}
		current.Type = geometry.BlockText
		current.BBox = [4]float64{x0, y0, x1, y1}
		blocks = append(blocks, current)
		current = geometry.Block{}
	}

	for i, line := range lines {
		newBlock := i == 0
		if !newBlock {
			gap := lines[i-1].y - line.y
			if gap > line.size*paragraphGapFactor {
				newBlock = true
			}
		}
		if newBlock {
			flush()
			x0, x1 = line.x0, line.x1
			y1 = line.y + line.size
			y0 = line.y
		} else {
			if line.x0 < x0 {
				x0 = line.x0
			}
			if line.x1 > x1 {
				x1 = line.x1
			}
			y0 = line.y
		}
		current.Lines = append(current.Lines, geometry.Line{Spans: line.spans})
	}
	flush()

	return blocks
}

const (
	// baselineTolerance groups glyph runs whose baselines differ by less
	// than this into one visual line.
	baselineTolerance = 2.0
	// paragraphGapFactor times the font size is the vertical gap that
	// separates two blocks.
	paragraphGapFactor = 1.6
)
