package hierarchy

import (
	"strings"
	"testing"

	"github.com/dgallion1/blocksearch/internal/document"
)

func block(typ document.BlockType, text string) document.Block {
	return document.Block{Type: typ, Text: text}
}

func TestApplyIntroductionScenario(t *testing.T) {
	blocks := []document.Block{
		block(document.TypeH1, "INTRODUCTION"),
		block(document.TypeBody, "Body para one."),
		block(document.TypeBody, "Body para two."),
	}
	Apply(blocks)

	for i, b := range blocks {
		if b.SectionPath != "INTRODUCTION" {
			t.Errorf("block %d: section_path = %q, want INTRODUCTION", i, b.SectionPath)
		}
	}
}

func TestApplyNesting(t *testing.T) {
	blocks := []document.Block{
		block(document.TypeH1, "Part One"),
		block(document.TypeH2, "Chapter A"),
		block(document.TypeH3, "Section i"),
		block(document.TypeBody, "deep text"),
		block(document.TypeH3, "Section ii"),
		block(document.TypeBody, "more text"),
		block(document.TypeH2, "Chapter B"),
		block(document.TypeBody, "chapter b text"),
	}
	Apply(blocks)

	want := []string{
		"Part One",
		"Part One > Chapter A",
		"Part One > Chapter A > Section i",
		"Part One > Chapter A > Section i",
		"Part One > Chapter A > Section ii",
		"Part One > Chapter A > Section ii",
		"Part One > Chapter B",
		"Part One > Chapter B",
	}
	for i, b := range blocks {
		if b.SectionPath != want[i] {
			t.Errorf("block %d: section_path = %q, want %q", i, b.SectionPath, want[i])
		}
	}
}

func TestApplyH1FullReset(t *testing.T) {
	// A new h1 discards every open subsection: no title from before the
	// h1 may appear in any later section path.
	blocks := []document.Block{
		block(document.TypeH1, "Old Part"),
		block(document.TypeH2, "Old Chapter"),
		block(document.TypeH3, "Old Section"),
		block(document.TypeH1, "New Part"),
		block(document.TypeBody, "text under new part"),
	}
	Apply(blocks)

	for _, b := range blocks[3:] {
		for _, old := range []string{"Old Part", "Old Chapter", "Old Section"} {
			if strings.Contains(b.SectionPath, old) {
				t.Errorf("section_path %q contains pre-reset title %q", b.SectionPath, old)
			}
		}
	}
	if blocks[4].SectionPath != "New Part" {
		t.Errorf("got %q, want New Part", blocks[4].SectionPath)
	}
}

func TestApplyH3KeepsH1AndH2(t *testing.T) {
	blocks := []document.Block{
		block(document.TypeH1, "Part"),
		block(document.TypeH2, "Chapter"),
		block(document.TypeH3, "First"),
		block(document.TypeH3, "Second"),
		block(document.TypeBody, "text"),
	}
	Apply(blocks)

	want := "Part > Chapter > Second"
	if blocks[4].SectionPath != want {
		t.Errorf("got %q, want %q", blocks[4].SectionPath, want)
	}
}

func TestApplyH3WithoutParentHeadings(t *testing.T) {
	// An h3 before any h1/h2 stands alone on the stack.
	blocks := []document.Block{
		block(document.TypeBody, "preamble"),
		block(document.TypeH3, "Orphan Section"),
		block(document.TypeBody, "text"),
	}
	Apply(blocks)

	if blocks[0].SectionPath != "" {
		t.Errorf("preamble: got %q, want empty path", blocks[0].SectionPath)
	}
	if blocks[2].SectionPath != "Orphan Section" {
		t.Errorf("got %q, want Orphan Section", blocks[2].SectionPath)
	}
}

func TestApplySkipLeavesStackUnchanged(t *testing.T) {
	blocks := []document.Block{
		block(document.TypeH1, "Part"),
		block(document.TypeSkip, "xx"),
		block(document.TypeBody, "text"),
	}
	Apply(blocks)

	if blocks[1].SectionPath != "Part" || blocks[2].SectionPath != "Part" {
		t.Errorf("skip block changed stack: %q, %q", blocks[1].SectionPath, blocks[2].SectionPath)
	}
}
