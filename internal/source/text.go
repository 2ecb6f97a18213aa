package source

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/blocksearch/internal/geometry"
)

// TextSource synthesizes geometry from plain text: each blank-line-separated
// paragraph becomes one body-sized block.
type TextSource struct{}

func (s *TextSource) Pages(r io.Reader, filename string) ([]geometry.Page, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var blocks []geometry.Block
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			blocks = append(blocks, textBlock(current.String(), sizeBody, syntheticBodyFont))
			current.Reset()
		}
	}

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			flush()
		} else {
			if current.Len() > 0 {
				current.WriteString("\n")
			}
			current.WriteString(line)
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return []geometry.Page{{Number: 0, Blocks: blocks}}, nil
}
