package http

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/fwojciec/localmind"
)

// multipartOverhead is the allowance for form boundaries and headers on
// top of file contents.
const multipartOverhead = 1 << 20

// UploadResponse is the body of POST /api/upload and POST /api/import.
type UploadResponse struct {
	Message  string          `json:"message"`
	Document UploadedDocument `json:"document"`
}

// UploadedDocument summarizes a stored document.
type UploadedDocument struct {
	ID       string                 `json:"id"`
	Title    string                 `json:"title"`
	Type     localmind.DocumentType `json:"type"`
	Metadata map[string]any         `json:"metadata"`
}

// ImportRequest is the body of POST /api/import.
type ImportRequest struct {
	URL string `json:"url"`
}

func newUploadResponse(message string, doc *localmind.Document) *UploadResponse {
	return &UploadResponse{
		Message: message,
		Document: UploadedDocument{
			ID:       doc.ID,
			Title:    doc.Title,
			Type:     doc.Type,
			Metadata: doc.Metadata,
		},
	}
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	files, err := s.readFiles(w, r, "file", int64(s.Policy.MaxFileSize)+multipartOverhead)
	if err != nil {
		s.Error(w, r, err)
		return
	} else if len(files) == 0 {
		s.Error(w, r, localmind.Errorf(localmind.EINVALID, "No file selected"))
		return
	}

	doc, err := s.Uploader.Upload(r.Context(), files[0])
	if err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newUploadResponse("File processed and indexed successfully", doc))
}

func (s *Server) handleBulkUpload(w http.ResponseWriter, r *http.Request) {
	limit := int64(s.Policy.MaxBulkFiles)*int64(s.Policy.MaxFileSize) + multipartOverhead
	files, err := s.readFiles(w, r, "files", limit)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	result, err := s.Uploader.BulkUpload(r.Context(), files)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if s.Importer == nil {
		s.Error(w, r, localmind.Errorf(localmind.ENOTIMPLEMENTED, "URL import is not configured"))
		return
	}

	var req ImportRequest
	if err := decodeJSON(r, &req); err != nil {
		s.Error(w, r, err)
		return
	}

	doc, err := s.Importer.Import(r.Context(), req.URL)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newUploadResponse("Page imported and indexed successfully", doc))
}

// readFiles parses a multipart form of at most limit bytes and reads every
// file in field.
func (s *Server) readFiles(w http.ResponseWriter, r *http.Request, field string, limit int64) ([]localmind.File, error) {
	if r.ContentLength > limit {
		return nil, &http.MaxBytesError{Limit: limit}
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, err
		}
		return nil, localmind.Errorf(localmind.EINVALID, "Invalid multipart form")
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	var files []localmind.File
	for _, fh := range r.MultipartForm.File[field] {
		data, err := readFile(fh)
		if err != nil {
			return nil, err
		}
		files = append(files, localmind.File{Name: fh.Filename, Data: data})
	}
	return files, nil
}

func readFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
