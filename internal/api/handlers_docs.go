package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dgallion1/blocksearch/internal/library"
	"github.com/go-chi/chi/v5"
)

// handleListDocuments lists all ingested documents.
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	metas := s.lib.List()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"documents": metas})
}

// handleDeleteDocument removes a document, its index and workspace files.
func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	if err := s.lib.Delete(docID); err != nil {
		if errors.Is(err, library.ErrDocumentNotFound) {
			jsonError(w, err.Error(), http.StatusNotFound)
			return
		}
		jsonError(w, "delete failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"doc_id": docID, "deleted": true})
}
