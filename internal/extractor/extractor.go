// Package extractor turns raw page geometry into block drafts. It performs
// no classification; Type and SectionPath are filled in by later stages.
package extractor

import (
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/blocksearch/internal/document"
	"github.com/dgallion1/blocksearch/internal/geometry"
)

// PageBlocks extracts block drafts from one page, preserving source order.
// Only text blocks are processed; blocks with no spans are dropped. The
// first span encountered supplies the representative font metrics — heading
// blocks are typically font-uniform, and the first span avoids averaging
// toward body continuation text.
func PageBlocks(page geometry.Page) []document.Block {
	blocks := make([]document.Block, 0, len(page.Blocks))

	for _, raw := range page.Blocks {
		if raw.Type != geometry.BlockText {
			continue
		}

		var (
			lines    []string
			fontSize float64
			fontName string
			seen     bool
		)
		for _, line := range raw.Lines {
			var sb strings.Builder
			for _, span := range line.Spans {
				if !seen {
					fontSize = span.Size
					fontName = span.Font
					seen = true
				}
				sb.WriteString(span.Text)
			}
			lines = append(lines, sb.String())
		}
		if !seen {
			continue
		}

		text := strings.TrimSpace(strings.Join(lines, "\n"))
		blocks = append(blocks, document.Block{
			PageNum:   page.Number,
			BBox:      document.BBox(raw.BBox),
			Text:      text,
			FontSize:  fontSize,
			FontName:  fontName,
			IsBold:    strings.Contains(fontName, "Bold"),
			CharCount: utf8.RuneCountInString(text),
		})
	}

	return blocks
}
