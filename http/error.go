package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fwojciec/localmind"
)

// ErrorResponse is the JSON body of every error response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// codes maps application error codes to HTTP status codes.
var codes = map[string]int{
	localmind.ECONFLICT:       http.StatusConflict,
	localmind.EINVALID:        http.StatusBadRequest,
	localmind.ENOTFOUND:       http.StatusNotFound,
	localmind.ENOTIMPLEMENTED: http.StatusNotImplemented,
	localmind.ETOOLARGE:       http.StatusRequestEntityTooLarge,
	localmind.EUNSUPPORTED:    http.StatusUnsupportedMediaType,
}

// ErrorStatusCode returns the HTTP status code for an application error code.
func ErrorStatusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}

// Error writes err as a JSON error response. Internal errors are logged and
// reported to the client with a generic message.
func (s *Server) Error(w http.ResponseWriter, r *http.Request, err error) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		err = localmind.Errorf(localmind.ETOOLARGE, "File too large (max %dMB)", s.Policy.MaxFileSize/(1024*1024))
	}

	code, message := localmind.ErrorCode(err), localmind.ErrorMessage(err)
	if code == localmind.EINTERNAL {
		s.Logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}

	writeJSON(w, ErrorStatusCode(code), &ErrorResponse{Detail: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON reads a JSON request body into v.
func decodeJSON(r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return localmind.Errorf(localmind.EINVALID, "Invalid request body")
	}
	return nil
}
