// Package retriever answers semantic queries against a built vector index.
// A retriever is immutable after construction and safe for concurrent use;
// callers that rebuild an index swap in a whole new retriever.
package retriever

import (
	"context"
	"fmt"

	"github.com/dgallion1/blocksearch/internal/document"
	"github.com/dgallion1/blocksearch/internal/embed"
	"github.com/dgallion1/blocksearch/internal/indexer"
	"github.com/dgallion1/blocksearch/internal/vecindex"
)

// DefaultOverfetch is the candidate multiplier applied when a type filter is
// set. Post-hoc filtering shrinks the result set, so the index is asked for
// more candidates than requested. The multiplier is a heuristic: when
// matching blocks are sparse, fewer than k results may come back even if
// more exist beyond the window.
const DefaultOverfetch = 3

// SearchResult is one ranked hit.
type SearchResult struct {
	UnitID      string             `json:"unit_id"`
	Content     string             `json:"content"`
	Page        int                `json:"page"`
	SectionPath string             `json:"section_path"`
	BBox        document.BBox      `json:"bbox"`
	Type        document.BlockType `json:"type"`
	Similarity  float32            `json:"similarity"`
}

// Retriever performs k-NN search over one document's indexed blocks.
type Retriever struct {
	index     *vecindex.Flat
	blocks    []document.Block
	enc       embed.Encoder
	overfetch int
}

// New builds an in-memory retriever from an index and its parallel block
// list (vector i describes blocks[i]).
func New(index *vecindex.Flat, blocks []document.Block, enc embed.Encoder) *Retriever {
	return &Retriever{
		index:     index,
		blocks:    blocks,
		enc:       enc,
		overfetch: DefaultOverfetch,
	}
}

// Open builds a retriever from a persisted index file and workspace JSON.
// The index file and workspace must come from the same build; the block
// order in the workspace determines the vector correspondence.
func Open(indexPath, workspacePath string, enc embed.Encoder) (*Retriever, error) {
	index, err := vecindex.LoadFile(indexPath)
	if err != nil {
		return nil, err
	}
	ws, err := document.LoadWorkspace(workspacePath)
	if err != nil {
		return nil, err
	}

	// Blocks with embeddings are the indexed ones, in index order.
	blocks := make([]document.Block, 0, index.Count())
	for _, b := range ws.Blocks {
		if len(b.Embedding) == 0 {
			continue
		}
		b.Embedding = nil
		blocks = append(blocks, b)
	}
	if len(blocks) != index.Count() {
		return nil, fmt.Errorf("retriever: workspace has %d embedded blocks, index has %d vectors", len(blocks), index.Count())
	}
	return New(index, blocks, enc), nil
}

// FromWorkspace builds a retriever from a workspace whose blocks carry
// embeddings, without a separate index file.
func FromWorkspace(ws *document.Workspace, enc embed.Encoder) (*Retriever, error) {
	res, err := indexer.FromWorkspace(ws)
	if err != nil {
		return nil, err
	}
	return New(res.Index, res.Blocks, enc), nil
}

// SetOverfetch overrides the type-filter candidate multiplier.
func (r *Retriever) SetOverfetch(n int) {
	if n >= 1 {
		r.overfetch = n
	}
}

// Count returns the number of indexed blocks.
func (r *Retriever) Count() int { return r.index.Count() }

// SearchText searches all indexed content without a type filter.
func (r *Retriever) SearchText(ctx context.Context, query string, k int) ([]SearchResult, error) {
	return r.search(ctx, query, k, "")
}

// SearchTables searches only table blocks.
func (r *Retriever) SearchTables(ctx context.Context, query string, k int) ([]SearchResult, error) {
	return r.search(ctx, query, k, document.TypeTable)
}

// SearchImages searches only image blocks.
func (r *Retriever) SearchImages(ctx context.Context, query string, k int) ([]SearchResult, error) {
	return r.search(ctx, query, k, document.TypeImage)
}

// SearchAll searches every indexed block regardless of type.
func (r *Retriever) SearchAll(ctx context.Context, query string, k int) ([]SearchResult, error) {
	return r.search(ctx, query, k, "")
}

// search encodes the query with the same model and normalization as
// indexing, fetches k candidates (overfetch*k when filtering), and converts
// L2 distance d in [0,2] to similarity max(0, 1-d/2). Candidates arrive
// distance-ascending, so collected results are similarity-descending.
func (r *Retriever) search(ctx context.Context, query string, k int, filter document.BlockType) ([]SearchResult, error) {
	if k <= 0 {
		return nil, nil
	}

	vectors, err := r.enc.Encode(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("encode query: got %d vectors", len(vectors))
	}
	queryVec, err := vecindex.Normalize(vectors[0])
	if err != nil {
		return nil, err
	}

	fetchK := k
	if filter != "" {
		fetchK = k * r.overfetch
	}

	indices, distances, err := r.index.Search(queryVec, fetchK)
	if err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, k)
	for i, idx := range indices {
		block := r.blocks[idx]
		if filter != "" && block.Type != filter {
			continue
		}
		similarity := 1 - distances[i]/2
		if similarity < 0 {
			similarity = 0
		}
		results = append(results, SearchResult{
			UnitID:      fmt.Sprintf("block_%d_%d", block.PageNum, block.BlockIdx),
			Content:     block.Text,
			Page:        block.PageNum,
			SectionPath: block.SectionPath,
			BBox:        block.BBox,
			Type:        block.Type,
			Similarity:  similarity,
		})
		if len(results) >= k {
			break
		}
	}
	return results, nil
}
