package http

import (
	"net/http"
	"strings"

	"github.com/fwojciec/localmind"
)

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status          string   `json:"status"`
	Message         string   `json:"message"`
	Version         string   `json:"version"`
	DocumentsLoaded int      `json:"documents_loaded"`
	Features        []string `json:"features"`
}

// AskRequest is the body of POST /api/ask.
type AskRequest struct {
	Question string `json:"question"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	n, err := s.DocumentService.CountDocuments(r.Context(), localmind.DocumentFilter{})
	if err != nil {
		s.Error(w, r, err)
		return
	}

	features := []string{"TF-IDF Search", "Document Processing", "Multi-format Support"}
	if s.Importer != nil {
		features = append(features, "URL Import")
	}
	if s.Asker != nil {
		features = append(features, "Question Answering")
	}

	writeJSON(w, http.StatusOK, &HealthResponse{
		Status:          "healthy",
		Message:         "LocalMind is running",
		Version:         localmind.Version,
		DocumentsLoaded: n,
		Features:        features,
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req localmind.SearchRequest
	if err := decodeJSON(r, &req); err != nil {
		s.Error(w, r, err)
		return
	}

	resp, err := s.SearchService.Search(r.Context(), req)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.StatsService.Stats(r.Context())
	if err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	if s.Asker == nil {
		s.Error(w, r, localmind.Errorf(localmind.ENOTIMPLEMENTED, "Question answering is not configured"))
		return
	}

	var req AskRequest
	if err := decodeJSON(r, &req); err != nil {
		s.Error(w, r, err)
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		s.Error(w, r, localmind.Errorf(localmind.EINVALID, "question required"))
		return
	}

	answer, err := s.Asker.Ask(r.Context(), req.Question)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, answer)
}
