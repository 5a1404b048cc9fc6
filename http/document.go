package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/fwojciec/localmind"
	"github.com/go-chi/chi/v5"
)

// DefaultListLimit is the page size of GET /api/documents.
const DefaultListLimit = 50

// DocumentListResponse is the body of GET /api/documents.
type DocumentListResponse struct {
	Documents []*localmind.Document `json:"documents"`
	Total     int                   `json:"total"`
	Skip      int                   `json:"skip"`
	Limit     int                   `json:"limit"`
}

// MessageResponse is a body carrying only a status message.
type MessageResponse struct {
	Message string `json:"message"`
}

func (s *Server) handleDocumentList(w http.ResponseWriter, r *http.Request) {
	skip, err := queryInt(r, "skip", 0)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	limit, err := queryInt(r, "limit", DefaultListLimit)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	total, err := s.DocumentService.CountDocuments(r.Context(), localmind.DocumentFilter{})
	if err != nil {
		s.Error(w, r, err)
		return
	}

	docs := []*localmind.Document{}
	if limit > 0 && skip < total {
		if docs, err = s.DocumentService.FindDocuments(r.Context(), localmind.DocumentFilter{Offset: skip, Limit: limit}); err != nil {
			s.Error(w, r, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, &DocumentListResponse{
		Documents: docs,
		Total:     total,
		Skip:      skip,
		Limit:     limit,
	})
}

func (s *Server) handleDocumentView(w http.ResponseWriter, r *http.Request) {
	doc, err := s.DocumentService.FindDocumentByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleDocumentDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.DocumentService.DeleteDocument(r.Context(), id); err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, &MessageResponse{Message: fmt.Sprintf("Document %s deleted successfully", id)})
}

// queryInt parses a non-negative integer query parameter.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, localmind.Errorf(localmind.EINVALID, "%s must be a non-negative integer", name)
	}
	return v, nil
}
