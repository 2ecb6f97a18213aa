package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dgallion1/blocksearch/internal/library"
	"github.com/dgallion1/blocksearch/internal/retriever"
	"github.com/dgallion1/blocksearch/internal/vecindex"
	"github.com/go-playground/validator/v10"
)

// SearchRequest is the body of POST /api/search.
type SearchRequest struct {
	DocID string `json:"doc_id" validate:"required"`
	Query string `json:"query" validate:"required"`
	K     int    `json:"k" validate:"gte=0,lte=100"`
	Type  string `json:"type" validate:"omitempty,oneof=text table image all"`
}

var validate = validator.New()

// Validate reports field-level problems, or nil when the request is valid.
func (req *SearchRequest) Validate() map[string]string {
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			problems := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				problems[fe.Field()] = fmt.Sprintf("failed on '%s' tag", fe.Tag())
			}
			return problems
		}
		return map[string]string{"request": err.Error()}
	}
	return nil
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid json body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if problems := req.Validate(); problems != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]any{"errors": problems})
		return
	}

	k := req.K
	if k == 0 {
		k = s.cfg.DefaultK
	}

	entry, err := s.lib.Get(req.DocID)
	if err != nil {
		if errors.Is(err, library.ErrDocumentNotFound) {
			jsonError(w, err.Error(), http.StatusNotFound)
			return
		}
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var results []retriever.SearchResult
	switch req.Type {
	case "table":
		results, err = entry.Retriever.SearchTables(r.Context(), req.Query, k)
	case "image":
		results, err = entry.Retriever.SearchImages(r.Context(), req.Query, k)
	case "text":
		results, err = entry.Retriever.SearchText(r.Context(), req.Query, k)
	default: // "all" or unset
		results, err = entry.Retriever.SearchAll(r.Context(), req.Query, k)
	}
	if err != nil {
		var dimErr *vecindex.DimensionMismatchError
		if errors.As(err, &dimErr) {
			jsonError(w, err.Error(), http.StatusConflict)
			return
		}
		jsonError(w, "search failed: "+err.Error(), http.StatusBadGateway)
		return
	}

	if results == nil {
		results = []retriever.SearchResult{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"doc_id":  req.DocID,
		"query":   req.Query,
		"results": results,
	})
}

func (s *Server) handleEmbedStats(w http.ResponseWriter, r *http.Request) {
	if s.embedStats == nil {
		jsonError(w, "embedding stats unavailable", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"model": s.cfg.EmbedModel,
		"stats": s.embedStats.Snapshot(),
	})
}
