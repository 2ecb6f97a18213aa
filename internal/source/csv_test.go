package source

import (
	"fmt"
	"strings"
	"testing"
)

func TestCSVPagesHeaderAndRows(t *testing.T) {
	input := "name,age\nalice,30\nbob,25\n"
	src := &CSVSource{}
	pages, err := src.Pages(strings.NewReader(input), "data.csv")
	if err != nil {
		t.Fatalf("Pages: %v", err)
	}

	blocks := pages[0].Blocks
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want header + one batch", len(blocks))
	}

	header := blocks[0].Lines[0].Spans[0]
	if header.Text != "name, age" {
		t.Errorf("header text = %q", header.Text)
	}
	if header.Size != sizeH2 || header.Font != syntheticHeadingFont {
		t.Errorf("header size/font = %v/%q", header.Size, header.Font)
	}

	body := blocks[1].Lines[0].Spans[0].Text
	if !strings.Contains(body, "name: alice, age: 30") || !strings.Contains(body, "name: bob, age: 25") {
		t.Errorf("body = %q, want header: value pairs", body)
	}
}

func TestCSVPagesRowBatching(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("id\n")
	for i := 0; i < rowBatchSize+5; i++ {
		fmt.Fprintf(&sb, "%d\n", i)
	}

	src := &CSVSource{}
	pages, err := src.Pages(strings.NewReader(sb.String()), "data.csv")
	if err != nil {
		t.Fatalf("Pages: %v", err)
	}
	// Header block plus two batches.
	if got := len(pages[0].Blocks); got != 3 {
		t.Errorf("got %d blocks, want 3", got)
	}
}

func TestCSVPagesEmpty(t *testing.T) {
	src := &CSVSource{}
	pages, err := src.Pages(strings.NewReader(""), "data.csv")
	if err != nil {
		t.Fatalf("Pages: %v", err)
	}
	if len(pages) != 1 || len(pages[0].Blocks) != 0 {
		t.Errorf("empty csv: %d pages, %d blocks", len(pages), len(pages[0].Blocks))
	}
}
