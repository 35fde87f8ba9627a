package server

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/jonathan/ats-ranker/internal/extract"
)

// ExtractResponse carries the text pulled out of an uploaded document.
type ExtractResponse struct {
	OK     bool   `json:"ok"`
	Text   string `json:"text"`
	Format string `json:"format"`
}

// handleExtract accepts a multipart upload in the "file" field and returns
// its plain text.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, extract.MaxDocumentBytes+(1<<20))
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		s.errorResponse(w, http.StatusBadRequest, CodeBadRequest, "Upload a document in the \"file\" field")
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, CodeBadRequest, "Upload a document in the \"file\" field")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	text, err := extract.Reader(file, ext)
	if err != nil {
		var formatErr *extract.UnsupportedFormatError
		switch {
		case errors.As(err, &formatErr):
			s.errorResponse(w, http.StatusBadRequest, CodeBadRequest,
				"Unsupported format; use one of "+strings.Join(extract.SupportedExtensions(), ", "))
		case errors.Is(err, extract.ErrTooLarge):
			s.errorResponse(w, http.StatusRequestEntityTooLarge, CodeBadRequest, "Document is too large")
		default:
			s.writeError(w, r, err, CodeServerError)
		}
		return
	}

	s.jsonResponse(w, http.StatusOK, ExtractResponse{OK: true, Text: text, Format: strings.TrimPrefix(ext, ".")})
}
