package http

import (
	"errors"
	"io/fs"
	"net/http"
)

// IndexPath is the location of the browser page within Server.Web.
const IndexPath = "static/index.html"

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if s.Web == nil {
		http.NotFound(w, r)
		return
	}

	page, err := fs.ReadFile(s.Web, IndexPath)
	if errors.Is(err, fs.ErrNotExist) {
		http.NotFound(w, r)
		return
	} else if err != nil {
		s.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	if s.Web == nil {
		http.NotFound(w, r)
		return
	}
	http.FileServerFS(s.Web).ServeHTTP(w, r)
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if s.MetricsHandler == nil {
		http.NotFound(w, r)
		return
	}
	s.MetricsHandler.ServeHTTP(w, r)
}
