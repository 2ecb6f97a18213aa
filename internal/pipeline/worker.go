package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/blocksearch/internal/classifier"
	"github.com/dgallion1/blocksearch/internal/document"
	"github.com/dgallion1/blocksearch/internal/embed"
	"github.com/dgallion1/blocksearch/internal/extractor"
	"github.com/dgallion1/blocksearch/internal/hierarchy"
	"github.com/dgallion1/blocksearch/internal/indexer"
	"github.com/dgallion1/blocksearch/internal/library"
	"github.com/dgallion1/blocksearch/internal/retriever"
	"github.com/dgallion1/blocksearch/internal/source"
)

// Worker processes a single document job through the full pipeline:
// parse geometry, extract blocks, classify, build the section hierarchy,
// embed, index, persist. The stages are strictly sequential — percentile
// classification is corpus-wide and hierarchy building is order-dependent —
// so no stage starts before the previous one finished its full pass.
type Worker struct {
	enc embed.Encoder
	lib *library.Library
	log *slog.Logger

	classifierCfg classifier.Config
	overfetch     int
}

func NewWorker(enc embed.Encoder, lib *library.Library, log *slog.Logger, classifierCfg classifier.Config, overfetch int) *Worker {
	return &Worker{
		enc:           enc,
		lib:           lib,
		log:           log,
		classifierCfg: classifierCfg,
		overfetch:     overfetch,
	}
}

// Process runs the full ingest pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "doc_id", job.DocID)

	// Phase 1: Parse geometry.
	job.SetStatus(StatusParsing, "parsing")
	src, err := source.ForFile(job.Filename)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	pages, err := src.Pages(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("parse failed", "error", err)
		job.AddError(fmt.Sprintf("parse: %s", err))
		job.SetStatus(StatusFailed, "parsing")
		return
	}

	// Phase 2: Extract block drafts, page order then discovery order.
	job.SetStatus(StatusExtracting, "extracting")
	var blocks []document.Block
	for _, page := range pages {
		blocks = append(blocks, extractor.PageBlocks(page)...)
	}
	job.SetCounts(len(pages), len(blocks), 0)
	log.Info("extracted blocks", "pages", len(pages), "blocks", len(blocks))

	if len(blocks) == 0 {
		job.AddError("no extractable content")
		job.SetStatus(StatusFailed, "extracting")
		return
	}

	// Phase 3: Classify against the document-wide font-size distribution.
	job.SetStatus(StatusClassifying, "classifying")
	sizes := make([]float64, len(blocks))
	for i := range blocks {
		sizes[i] = blocks[i].FontSize
	}
	stats := classifier.NewFontStats(sizes, w.classifierCfg)
	for i := range blocks {
		blocks[i].Type = classifier.Classify(blocks[i], stats, w.classifierCfg)
	}

	// Phase 4: Section hierarchy, then the final gapless block ordering.
	job.SetStatus(StatusLinking, "linking")
	hierarchy.Apply(blocks)
	for i := range blocks {
		blocks[i].BlockIdx = i
	}

	ws := &document.Workspace{
		DocID:    job.DocID,
		NumPages: len(pages),
		Blocks:   blocks,
	}

	// Phase 5: Embed and index, retrying transient backend failures.
	job.SetStatus(StatusEmbedding, "embedding")
	var result *indexer.Result
	for attempt := range MaxRetries {
		result, err = indexer.Build(ctx, w.enc, ws)
		if err == nil || !IsRetryable(err) {
			break
		}
		log.Warn("retryable embedding error", "attempt", attempt, "error", err)
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
			job.AddError(ctx.Err().Error())
			job.SetStatus(StatusFailed, "embedding")
			return
		}
	}
	if err != nil {
		log.Error("index build failed", "error", err)
		job.AddError(fmt.Sprintf("index: %s", err))
		job.SetStatus(StatusFailed, "embedding")
		return
	}
	job.SetCounts(0, 0, result.Index.Count())

	job.SetStatus(StatusIndexing, "indexing")
	ret := retriever.New(result.Index, result.Blocks, w.enc)
	ret.SetOverfetch(w.overfetch)

	// Phase 6: Persist workspace and index, then swap into the library.
	job.SetStatus(StatusStoring, "storing")
	if err := document.SaveWorkspace(w.lib.WorkspacePath(job.DocID), ws); err != nil {
		log.Error("workspace save failed", "error", err)
		job.AddError(fmt.Sprintf("store workspace: %s", err))
		job.SetStatus(StatusFailed, "storing")
		return
	}
	if err := result.Index.SaveFile(w.lib.IndexPath(job.DocID)); err != nil {
		log.Error("index save failed", "error", err)
		job.AddError(fmt.Sprintf("store index: %s", err))
		job.SetStatus(StatusFailed, "storing")
		return
	}

	w.lib.Put(&library.Entry{
		Meta: library.Meta{
			DocID:     job.DocID,
			Filename:  job.Filename,
			NumPages:  ws.NumPages,
			NumBlocks: len(ws.Blocks),
			Indexed:   result.Index.Count(),
			CreatedAt: job.CreatedAt,
		},
		Retriever: ret,
	})

	log.Info("ingest complete", "blocks", len(ws.Blocks), "indexed", result.Index.Count())
	job.SetStatus(StatusCompleted, "done")
}
