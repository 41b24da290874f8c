package service

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	log "github.com/go-pkgz/lgr"

	"podcaster/internal/app/podcaster/proc"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type generateResponse struct {
	Success   bool    `json:"success"`
	Auth      string  `json:"auth"`
	Summary   string  `json:"summary"`
	AudioURL  *string `json:"audio_url"`
	Cached    bool    `json:"cached"`
	RequestID string  `json:"request_id,omitempty"`
}

// POST /api/generate-podcast, multipart form with single "file" field
func (s *Server) generatePodcast(w http.ResponseWriter, r *http.Request) {
	auth := "no-authorization-provided"
	if r.Header.Get("Authorization") != "" {
		auth = "authorization-present"
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadSize+1<<20)
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "file too large"})
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing file in request"})
		return
	}
	defer file.Close() // nolint

	if header.Size > s.opts.MaxUploadSize {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "file too large"})
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		log.Printf("[WARN] can't read upload %s, %v", header.Filename, err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "can't read uploaded file"})
		return
	}

	res, err := s.generator.Generate(r.Context(), header.Filename, data)
	switch {
	case errors.Is(err, proc.ErrInvalidName), errors.Is(err, proc.ErrNoText):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	case err != nil:
		log.Printf("[ERROR] generation for %s failed, %v", header.Filename, err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "generation failed"})
		return
	}

	resp := generateResponse{
		Success:   true,
		Auth:      auth,
		Summary:   res.Summary,
		Cached:    res.Cached,
		RequestID: r.Header.Get(requestIDHeader),
	}
	if res.AudioURL != "" {
		resp.AudioURL = &res.AudioURL
	}
	log.Printf("[INFO] generated summary for %s, %d chars, cached: %t", res.Filename, len(res.Summary), res.Cached)
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[WARN] can't write response, %v", err)
	}
}
