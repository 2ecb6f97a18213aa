package source

import (
	"strings"
	"testing"
)

const sampleMarkdown = `# Title

Intro paragraph with *emphasis* and a
soft-wrapped line.

## Methods

Body under methods.

### Details

- first item
- second item
`

func TestMarkdownPagesHeadingSizes(t *testing.T) {
	src := &MarkdownSource{}
	pages, err := src.Pages(strings.NewReader(sampleMarkdown), "doc.md")
	if err != nil {
		t.Fatalf("Pages: %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("got %d pages, want 1", len(pages))
	}

	type want struct {
		text string
		size float64
		font string
	}
	byText := make(map[string]want)
	for _, b := range pages[0].Blocks {
		if len(b.Lines) != 1 || len(b.Lines[0].Spans) != 1 {
			t.Fatalf("synthetic block should have one span: %+v", b)
		}
		sp := b.Lines[0].Spans[0]
		byText[sp.Text] = want{sp.Text, sp.Size, sp.Font}
	}

	for _, tt := range []want{
		{"Title", sizeH1, syntheticHeadingFont},
		{"Methods", sizeH2, syntheticHeadingFont},
		{"Details", sizeH3, syntheticHeadingFont},
	} {
		got, ok := byText[tt.text]
		if !ok {
			t.Errorf("heading %q missing from blocks", tt.text)
			continue
		}
		if got.size != tt.size || got.font != tt.font {
			t.Errorf("%q: size/font = %v/%q, want %v/%q", tt.text, got.size, got.font, tt.size, tt.font)
		}
	}
}

func TestMarkdownParagraphTextNotDuplicated(t *testing.T) {
	src := &MarkdownSource{}
	pages, err := src.Pages(strings.NewReader("Plain paragraph here.\n"), "doc.md")
	if err != nil {
		t.Fatalf("Pages: %v", err)
	}
	blocks := pages[0].Blocks
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	text := blocks[0].Lines[0].Spans[0].Text
	if strings.Count(text, "Plain paragraph here.") != 1 {
		t.Errorf("paragraph text duplicated: %q", text)
	}
	if blocks[0].Lines[0].Spans[0].Size != sizeBody {
		t.Errorf("paragraph size = %v, want body", blocks[0].Lines[0].Spans[0].Size)
	}
}

func TestMarkdownInlineFormattingFlattened(t *testing.T) {
	src := &MarkdownSource{}
	pages, err := src.Pages(strings.NewReader("Text with **bold** and `code` inline.\n"), "doc.md")
	if err != nil {
		t.Fatalf("Pages: %v", err)
	}
	text := pages[0].Blocks[0].Lines[0].Spans[0].Text
	for _, fragment := range []string{"bold", "code", "Text with"} {
		if !strings.Contains(text, fragment) {
			t.Errorf("flattened text %q missing %q", text, fragment)
		}
	}
	if strings.ContainsAny(text, "*`") {
		t.Errorf("markup characters leaked into text: %q", text)
	}
}
