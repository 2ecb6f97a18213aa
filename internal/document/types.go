// Package document holds the block-level data model shared by the pipeline
// stages and the retriever, plus the JSON workspace persistence format.
package document

// BlockType is the structural role assigned to a block by the classifier.
type BlockType string

const (
	TypeH1   BlockType = "h1"
	TypeH2   BlockType = "h2"
	TypeH3   BlockType = "h3"
	TypeBody BlockType = "body"
	TypeSkip BlockType = "skip"

	// Table and image blocks are never produced by this pipeline, but
	// workspaces written by other tooling may contain them and the
	// retriever filters on them.
	TypeTable BlockType = "table"
	TypeImage BlockType = "image"
)

// BBox is a bounding box as (x0, y0, x1, y1).
type BBox [4]float64

// Block is one contiguous unit of page text with representative font
// metrics. The extractor creates it, the classifier sets Type, the hierarchy
// builder sets SectionPath, and BlockIdx is assigned last; after that the
// block is immutable.
type Block struct {
	BlockIdx    int       `json:"block_idx"`
	PageNum     int       `json:"page_num"`
	BBox        BBox      `json:"bbox"`
	Text        string    `json:"text"`
	FontSize    float64   `json:"font_size"`
	FontName    string    `json:"font_name"`
	IsBold      bool      `json:"is_bold"`
	CharCount   int       `json:"char_count"`
	Type        BlockType `json:"type,omitempty"`
	SectionPath string    `json:"section_path,omitempty"`

	// Embedding is present only in the persisted workspace; indexed block
	// lists strip it to avoid storing each vector twice.
	Embedding []float32 `json:"embedding,omitempty"`
}

// Workspace aggregates all blocks of one document in page order, then
// block-discovery order within a page. BlockIdx values form a gapless
// 0-based range over Blocks.
type Workspace struct {
	DocID    string  `json:"doc_id"`
	NumPages int     `json:"num_pages"`
	Blocks   []Block `json:"blocks"`
}
