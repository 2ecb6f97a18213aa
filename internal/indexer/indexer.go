// Package indexer builds the flat vector index for one workspace: it
// selects qualifying blocks, embeds their text through the external encoder,
// normalizes the vectors, and keeps a parallel block list with the
// embeddings stripped.
package indexer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/blocksearch/internal/document"
	"github.com/dgallion1/blocksearch/internal/embed"
	"github.com/dgallion1/blocksearch/internal/vecindex"
)

// ErrNoEmbeddings indicates an index build with zero qualifying blocks.
var ErrNoEmbeddings = errors.New("indexer: no blocks qualify for embedding")

// MinChars is the minimum trimmed text length for a block to be embedded.
const MinChars = 3

// Result pairs the built index with the ordered block list it indexes:
// vector i corresponds to Blocks[i]. Blocks carry no embedding field so the
// vectors are not stored twice.
type Result struct {
	Index  *vecindex.Flat
	Blocks []document.Block
}

// Qualifies reports whether a block is eligible for the index. Skip blocks
// are excluded entirely but remain in the workspace.
func Qualifies(b document.Block) bool {
	if b.Type == document.TypeSkip {
		return false
	}
	return utf8.RuneCountInString(strings.TrimSpace(b.Text)) >= MinChars
}

// Build embeds every qualifying block of ws and constructs the index. As a
// side effect it stamps the normalized embedding onto the corresponding
// workspace block so the workspace can be persisted in file-based mode.
func Build(ctx context.Context, enc embed.Encoder, ws *document.Workspace) (*Result, error) {
	var (
		texts   []string
		indices []int
	)
	for i := range ws.Blocks {
		if !Qualifies(ws.Blocks[i]) {
			ws.Blocks[i].Embedding = nil
			continue
		}
		// Newlines are layout artifacts; the embedding model sees prose.
		texts = append(texts, strings.ReplaceAll(ws.Blocks[i].Text, "\n", " "))
		indices = append(indices, i)
	}
	if len(texts) == 0 {
		return nil, ErrNoEmbeddings
	}

	vectors, err := enc.Encode(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("encode %d blocks: %w", len(texts), err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("encoder returned %d vectors for %d texts", len(vectors), len(texts))
	}

	idx := vecindex.NewFlat(len(vectors[0]))
	blocks := make([]document.Block, 0, len(vectors))
	for j, vec := range vectors {
		normalized, err := vecindex.Normalize(vec)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", ws.Blocks[indices[j]].BlockIdx, err)
		}
		if err := idx.Add(normalized); err != nil {
			return nil, err
		}
		ws.Blocks[indices[j]].Embedding = normalized

		stripped := ws.Blocks[indices[j]]
		stripped.Embedding = nil
		blocks = append(blocks, stripped)
	}

	return &Result{Index: idx, Blocks: blocks}, nil
}

// FromWorkspace reconstructs a Result from a persisted workspace whose
// blocks carry embeddings (file-based mode without a separate index file).
// Blocks with a missing or null embedding are excluded from the index but
// remain in the workspace.
func FromWorkspace(ws *document.Workspace) (*Result, error) {
	var (
		idx    *vecindex.Flat
		blocks []document.Block
	)
	for _, b := range ws.Blocks {
		if len(b.Embedding) == 0 {
			continue
		}
		if idx == nil {
			idx = vecindex.NewFlat(len(b.Embedding))
		}
		if err := idx.Add(b.Embedding); err != nil {
			return nil, err
		}
		b.Embedding = nil
		blocks = append(blocks, b)
	}
	if idx == nil {
		return nil, ErrNoEmbeddings
	}
	return &Result{Index: idx, Blocks: blocks}, nil
}
