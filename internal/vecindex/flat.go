// Package vecindex implements a flat (brute-force) L2 nearest-neighbor
// index over unit-normalized vectors. A built index is immutable and safe
// for concurrent reads; callers that need to rebuild must construct a new
// index and swap the reference atomically.
package vecindex

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrDegenerateVector indicates a zero-norm vector, which cannot be
// normalized and signals an embedding-function fault.
var ErrDegenerateVector = errors.New("vecindex: zero-norm vector cannot be normalized")

// DimensionMismatchError reports a vector whose dimensionality disagrees
// with the index.
type DimensionMismatchError struct {
	Got, Want int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("vecindex: dimension mismatch: got %d, index has %d", e.Got, e.Want)
}

// Flat is a brute-force L2 index. Vector i corresponds to whatever the
// caller stored at position i of its parallel block list.
type Flat struct {
	dim  int
	vecs [][]float32
}

// NewFlat creates an empty index for vectors of the given dimension.
func NewFlat(dim int) *Flat {
	return &Flat{dim: dim}
}

// Dimension returns the vector dimensionality of the index.
func (f *Flat) Dimension() int { return f.dim }

// Count returns the number of stored vectors.
func (f *Flat) Count() int { return len(f.vecs) }

// Add appends vectors in order. Vectors must match the index dimension and
// are expected to be unit-normalized already.
func (f *Flat) Add(vecs ...[]float32) error {
	for _, v := range vecs {
		if len(v) != f.dim {
			return &DimensionMismatchError{Got: len(v), Want: f.dim}
		}
		f.vecs = append(f.vecs, v)
	}
	return nil
}

// Search returns the indices and L2 distances of the k vectors closest to
// query, best first. Ties are broken by insertion index so results are
// deterministic. Dimension agreement is validated before any scanning.
func (f *Flat) Search(query []float32, k int) ([]int, []float32, error) {
	if len(query) != f.dim {
		return nil, nil, &DimensionMismatchError{Got: len(query), Want: f.dim}
	}
	if k <= 0 || len(f.vecs) == 0 {
		return nil, nil, nil
	}
	if k > len(f.vecs) {
		k = len(f.vecs)
	}

	type candidate struct {
		idx  int
		dist float32
	}
	candidates := make([]candidate, len(f.vecs))
	for i, v := range f.vecs {
		candidates[i] = candidate{idx: i, dist: l2(query, v)}
	}
	sort.Slice(candidates, func(a, b int) bool {
		if candidates[a].dist != candidates[b].dist {
			return candidates[a].dist < candidates[b].dist
		}
		return candidates[a].idx < candidates[b].idx
	})

	indices := make([]int, k)
	distances := make([]float32, k)
	for i := 0; i < k; i++ {
		indices[i] = candidates[i].idx
		distances[i] = candidates[i].dist
	}
	return indices, distances, nil
}

// l2 computes the Euclidean distance between two equal-length vectors.
// For unit-normalized vectors the result lies in [0, 2].
func l2(a, b []float32) float32 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return float32(math.Sqrt(sum))
}
