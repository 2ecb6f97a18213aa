// Package embed abstracts the external text-to-vector embedding function.
// Implementations must be order-preserving and deterministic for a pinned
// model identifier; the pipeline relies on both properties.
package embed

import (
	"context"
	"fmt"
)

// Encoder maps texts to fixed-dimension vectors, one per input, in input
// order. Batching inside an implementation must not change output order or
// values.
type Encoder interface {
	// Encode returns one vector per text, in the same order.
	Encode(ctx context.Context, texts []string) ([][]float32, error)
	// Model returns the pinned model identifier. Query-time encoding must
	// use the same model that produced the index.
	Model() string
}

// RetryableError marks a transient backend failure (timeouts, 429/5xx). The
// pipeline retries these with backoff; nothing inside the core does.
type RetryableError struct {
	Err error
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("retryable: %v", e.Err)
}

func (e *RetryableError) Unwrap() error { return e.Err }
