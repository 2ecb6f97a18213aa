// Package library is the registry of ingested documents. Each entry pairs a
// built retriever with document metadata. Rebuilds replace the whole entry
// under the lock, so readers always see a consistent index.
package library

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dgallion1/blocksearch/internal/document"
	"github.com/dgallion1/blocksearch/internal/embed"
	"github.com/dgallion1/blocksearch/internal/retriever"
)

// ErrDocumentNotFound indicates an unknown document ID.
var ErrDocumentNotFound = errors.New("library: document not found")

// Meta describes one ingested document.
type Meta struct {
	DocID     string    `json:"doc_id"`
	Filename  string    `json:"filename"`
	NumPages  int       `json:"num_pages"`
	NumBlocks int       `json:"num_blocks"`
	Indexed   int       `json:"indexed_blocks"`
	CreatedAt time.Time `json:"created_at"`
}

// Entry pairs a retriever with its metadata.
type Entry struct {
	Meta      Meta
	Retriever *retriever.Retriever
}

// Library maps document IDs to entries and owns the on-disk layout of
// persisted workspaces and index files.
type Library struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	dataDir string
}

// New creates a library rooted at dataDir, creating the directory if needed.
func New(dataDir string) (*Library, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("library: create data dir: %w", err)
	}
	return &Library{
		entries: make(map[string]*Entry),
		dataDir: dataDir,
	}, nil
}

// WorkspacePath returns the path of a document's persisted workspace JSON.
func (l *Library) WorkspacePath(docID string) string {
	return filepath.Join(l.dataDir, docID+".workspace.json")
}

// IndexPath returns the path of a document's persisted vector index.
func (l *Library) IndexPath(docID string) string {
	return filepath.Join(l.dataDir, docID+".index")
}

// Put installs or replaces a document entry. Replacing is the hot-swap path:
// the new retriever was built off to the side and becomes visible atomically.
func (l *Library) Put(entry *Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[entry.Meta.DocID] = entry
}

// Get returns the entry for a document.
func (l *Library) Get(docID string) (*Entry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	entry, ok := l.entries[docID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, docID)
	}
	return entry, nil
}

// List returns metadata for all documents, ordered by creation time.
func (l *Library) List() []Meta {
	l.mu.RLock()
	defer l.mu.RUnlock()
	metas := make([]Meta, 0, len(l.entries))
	for _, entry := range l.entries {
		metas = append(metas, entry.Meta)
	}
	sort.Slice(metas, func(a, b int) bool {
		if !metas[a].CreatedAt.Equal(metas[b].CreatedAt) {
			return metas[a].CreatedAt.Before(metas[b].CreatedAt)
		}
		return metas[a].DocID < metas[b].DocID
	})
	return metas
}

// Delete removes a document from the registry and deletes its files.
func (l *Library) Delete(docID string) error {
	l.mu.Lock()
	_, ok := l.entries[docID]
	delete(l.entries, docID)
	l.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrDocumentNotFound, docID)
	}

	var errs []error
	for _, path := range []string{l.WorkspacePath(docID), l.IndexPath(docID)} {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LoadAll restores every persisted document through the file-based retriever
// constructor. It returns the IDs loaded and the first error per document is
// reported through errs keyed by doc ID; a partial load is not fatal.
func (l *Library) LoadAll(enc embed.Encoder) (loaded []string, errs map[string]error) {
	errs = make(map[string]error)

	dirEntries, err := os.ReadDir(l.dataDir)
	if err != nil {
		errs[""] = fmt.Errorf("library: read data dir: %w", err)
		return nil, errs
	}

	for _, de := range dirEntries {
		name := de.Name()
		if !strings.HasSuffix(name, ".workspace.json") {
			continue
		}
		docID := strings.TrimSuffix(name, ".workspace.json")

		ret, err := retriever.Open(l.IndexPath(docID), l.WorkspacePath(docID), enc)
		if err != nil {
			errs[docID] = err
			continue
		}
		ws, err := document.LoadWorkspace(l.WorkspacePath(docID))
		if err != nil {
			errs[docID] = err
			continue
		}

		info, _ := de.Info()
		created := time.Now()
		if info != nil {
			created = info.ModTime()
		}
		l.Put(&Entry{
			Meta: Meta{
				DocID:     docID,
				NumPages:  ws.NumPages,
				NumBlocks: len(ws.Blocks),
				Indexed:   ret.Count(),
				CreatedAt: created,
			},
			Retriever: ret,
		})
		loaded = append(loaded, docID)
	}
	return loaded, errs
}
