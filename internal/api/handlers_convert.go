package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dgallion1/examgest/internal/docx"
	"github.com/dgallion1/examgest/internal/exam"
	"github.com/dgallion1/examgest/internal/render"
)

// readUpload pulls the uploaded document out of the multipart form.
// Returns nil data after writing an error response when the upload is
// unusable.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) []byte {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return nil
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return nil
	}
	defer file.Close()

	if ext := strings.ToLower(filepath.Ext(header.Filename)); ext != ".docx" {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", ext), http.StatusBadRequest)
		return nil
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return nil
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return nil
	}
	return data
}

func (s *Server) convert(w http.ResponseWriter, r *http.Request) *exam.Result {
	data := s.readUpload(w, r)
	if data == nil {
		return nil
	}

	res, err := s.converter.Convert(r.Context(), data)
	if err != nil {
		// Fatal conditions only: the pipeline degrades everything else
		// inside the result.
		status := http.StatusUnprocessableEntity
		var missing *docx.MissingEntryError
		if errors.As(err, &missing) {
			status = http.StatusBadRequest
		}
		jsonError(w, err.Error(), status)
		return nil
	}
	return res
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	res := s.convert(w, r)
	if res == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	res := s.convert(w, r)
	if res == nil {
		return
	}
	html, err := render.HTML(res)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
