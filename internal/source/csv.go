package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/blocksearch/internal/geometry"
)

// CSVSource synthesizes geometry from CSV: the header row becomes an h2-sized
// block and data rows are grouped into body blocks of rowBatchSize, each row
// rendered as "header: value" pairs.
type CSVSource struct{}

const rowBatchSize = 20

func (s *CSVSource) Pages(r io.Reader, filename string) ([]geometry.Page, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return []geometry.Page{{Number: 0}}, nil
	}

	headers := records[0]
	blocks := []geometry.Block{
		textBlock(strings.Join(headers, ", "), sizeH2, syntheticHeadingFont),
	}

	dataRows := records[1:]
	for i := 0; i < len(dataRows); i += rowBatchSize {
		end := i + rowBatchSize
		if end > len(dataRows) {
			end = len(dataRows)
		}

		var text strings.Builder
		for _, row := range dataRows[i:end] {
			for j, cell := range row {
				if j > 0 {
					text.WriteString(", ")
				}
				if j < len(headers) {
					text.WriteString(headers[j] + ": " + cell)
				} else {
					text.WriteString(cell)
				}
			}
			text.WriteString("\n")
		}
		blocks = append(blocks, textBlock(strings.TrimSpace(text.String()), sizeBody, syntheticBodyFont))
	}

	return []geometry.Page{{Number: 0, Blocks: blocks}}, nil
}
