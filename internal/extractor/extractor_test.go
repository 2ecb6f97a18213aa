package extractor

import (
	"testing"

	"github.com/dgallion1/blocksearch/internal/geometry"
)

func TestPageBlocksJoinsSpansAndLines(t *testing.T) {
	page := geometry.Page{
		Number: 3,
		Blocks: []geometry.Block{
			{
				Type: geometry.BlockText,
				BBox: [4]float64{10, 20, 300, 40},
				Lines: []geometry.Line{
					{Spans: []geometry.Span{
						{Text: "The quick ", Size: 11.5, Font: "Times-Roman"},
						{Text: "brown fox", Size: 11.5, Font: "Times-Italic"},
					}},
					{Spans: []geometry.Span{
						{Text: "jumps over.", Size: 11.5, Font: "Times-Roman"},
					}},
				},
			},
		},
	}

	blocks := PageBlocks(page)
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	b := blocks[0]
	if b.Text != "The quick brown fox\njumps over." {
		t.Errorf("text = %q", b.Text)
	}
	if b.PageNum != 3 {
		t.Errorf("page_num = %d, want 3", b.PageNum)
	}
	if b.BBox != [4]float64{10, 20, 300, 40} {
		t.Errorf("bbox = %v", b.BBox)
	}
	if b.CharCount != len([]rune(b.Text)) {
		t.Errorf("char_count = %d, want %d", b.CharCount, len([]rune(b.Text)))
	}
}

func TestPageBlocksFirstSpanMetrics(t *testing.T) {
	// Mixed-font block: the first span wins, not an average.
	page := geometry.Page{
		Number: 1,
		Blocks: []geometry.Block{
			{
				Type: geometry.BlockText,
				Lines: []geometry.Line{
					{Spans: []geometry.Span{
						{Text: "Heading", Size: 18, Font: "Helvetica-Bold"},
						{Text: " continued", Size: 11, Font: "Helvetica"},
					}},
				},
			},
		},
	}

	blocks := PageBlocks(page)
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	b := blocks[0]
	if b.FontSize != 18 {
		t.Errorf("font_size = %v, want 18", b.FontSize)
	}
	if b.FontName != "Helvetica-Bold" {
		t.Errorf("font_name = %q", b.FontName)
	}
	if !b.IsBold {
		t.Error("is_bold = false, want true")
	}
}

func TestPageBlocksBoldDetection(t *testing.T) {
	tests := []struct {
		font string
		bold bool
	}{
		{"Helvetica-Bold", true},
		{"TimesNewRomanPS-BoldMT", true},
		{"Synthetic-Bold", true},
		{"Helvetica", false},
		{"Times-Roman", false},
	}
	for _, tt := range tests {
		page := geometry.Page{Blocks: []geometry.Block{{
			Type:  geometry.BlockText,
			Lines: []geometry.Line{{Spans: []geometry.Span{{Text: "x", Size: 12, Font: tt.font}}}},
		}}}
		blocks := PageBlocks(page)
		if len(blocks) != 1 {
			t.Fatalf("%s: got %d blocks", tt.font, len(blocks))
		}
		if blocks[0].IsBold != tt.bold {
			t.Errorf("%s: is_bold = %v, want %v", tt.font, blocks[0].IsBold, tt.bold)
		}
	}
}

func TestPageBlocksSkipsNonTextAndEmpty(t *testing.T) {
	page := geometry.Page{
		Number: 1,
		Blocks: []geometry.Block{
			{Type: geometry.BlockImage, BBox: [4]float64{0, 0, 100, 100}},
			{Type: geometry.BlockText}, // no lines, no spans
			{Type: geometry.BlockText, Lines: []geometry.Line{{}}}, // line with no spans
			{
				Type:  geometry.BlockText,
				Lines: []geometry.Line{{Spans: []geometry.Span{{Text: "kept", Size: 11, Font: "F"}}}},
			},
		},
	}

	blocks := PageBlocks(page)
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	if blocks[0].Text != "kept" {
		t.Errorf("text = %q, want kept", blocks[0].Text)
	}
}

func TestPageBlocksRuneCount(t *testing.T) {
	page := geometry.Page{Blocks: []geometry.Block{{
		Type:  geometry.BlockText,
		Lines: []geometry.Line{{Spans: []geometry.Span{{Text: "héllo", Size: 11, Font: "F"}}}},
	}}}
	blocks := PageBlocks(page)
	if blocks[0].CharCount != 5 {
		t.Errorf("char_count = %d, want 5 (runes, not bytes)", blocks[0].CharCount)
	}
}
