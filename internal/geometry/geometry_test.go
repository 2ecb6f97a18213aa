package geometry

import (
	"errors"
	"strings"
	"testing"
)

func TestDecodePages(t *testing.T) {
	input := `[
		{"number": 1, "width": 612, "height": 792, "blocks": [
			{"type": 0, "bbox": [72, 72, 540, 100], "lines": [
				{"spans": [{"text": "Hello", "size": 12.5, "font": "Times-Roman", "flags": 0}]}
			]}
		]},
		{"blocks": []}
	]`

	pages, err := DecodePages(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodePages: %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(pages))
	}
	if pages[0].Number != 1 {
		t.Errorf("page 0 number = %d, want 1", pages[0].Number)
	}
	// Pages without an explicit number fall back to their position.
	if pages[1].Number != 1 {
		t.Errorf("unnumbered page = %d, want positional 1", pages[1].Number)
	}

	span := pages[0].Blocks[0].Lines[0].Spans[0]
	if span.Text != "Hello" || span.Size != 12.5 || span.Font != "Times-Roman" {
		t.Errorf("span = %+v", span)
	}
	if pages[0].Blocks[0].BBox != [4]float64{72, 72, 540, 100} {
		t.Errorf("bbox = %v", pages[0].Blocks[0].BBox)
	}
}

func TestDecodePagesMalformed(t *testing.T) {
	_, err := DecodePages(strings.NewReader(`{"pages": "not an array"}`))
	if err == nil {
		t.Fatal("want error on malformed geometry")
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Errorf("err = %T, want *ParseError", err)
	}
}
