package web

import (
	"bytes"
	"io"
	"net/http"
)

const maxRoomPhotoSize = 50 * 1024 * 1024 // 50 MB

// allowedImageTypes is the set of MIME types accepted for room photos.
// net/http.DetectContentType handles JPEG, PNG, and GIF via magic-byte
// sniffing; WebP is detected separately because the WHATWG sniff spec (and
// therefore the stdlib) has no WebP signature.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

func isWebP(data []byte) bool {
	return len(data) >= 12 &&
		string(data[0:4]) == "RIFF" &&
		string(data[8:12]) == "WEBP"
}

func allowedImageMIME(data []byte) (string, bool) {
	if isWebP(data) {
		return "image/webp", true
	}
	mime := http.DetectContentType(data)
	if allowedImageTypes[mime] {
		return mime, true
	}
	return "", false
}

func (s *Server) handleUploadRoom(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxRoomPhotoSize); err != nil {
		http.Error(w, "failed to parse form", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "image file required", http.StatusBadRequest)
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "failed to read file", http.StatusInternalServerError)
		s.logger.Error("read room upload failed", "error", err)
		return
	}

	mimeType, ok := allowedImageMIME(data)
	if !ok {
		http.Error(w, "unsupported image format", http.StatusBadRequest)
		return
	}

	key, err := s.rooms.Save(r.Context(), mimeType, bytes.NewReader(data))
	if err != nil {
		http.Error(w, "failed to save room photo", http.StatusInternalServerError)
		s.logger.Error("save room photo failed", "error", err)
		return
	}

	s.logger.Info("room photo uploaded", "key", key, "mime_type", mimeType, "bytes", len(data))
	s.writeJSON(w, http.StatusCreated, map[string]string{"key": key})
}

func (s *Server) handleGetRoom(w http.ResponseWriter, r *http.Request) {
	img, mimeType, err := s.rooms.Open(r.Context(), r.PathValue("key"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer func() { _ = img.Close() }()

	w.Header().Set("Content-Type", mimeType)
	if _, err := io.Copy(w, img); err != nil {
		s.logger.Error("serve room photo failed", "error", err)
	}
}

func (s *Server) handleRoomAdvice(w http.ResponseWriter, r *http.Request) {
	if s.advisor == nil {
		http.Error(w, "advisor not configured", http.StatusNotImplemented)
		return
	}

	img, mimeType, err := s.rooms.Open(r.Context(), r.PathValue("key"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer func() { _ = img.Close() }()

	advice, err := s.advisor.Suggest(r.Context(), img, mimeType)
	if err != nil {
		http.Error(w, "failed to get advice", http.StatusBadGateway)
		s.logger.Error("room advice failed", "error", err)
		return
	}

	type suggestionJSON struct {
		Category  string `json:"category"`
		Placement string `json:"placement"`
		Notes     string `json:"notes,omitempty"`
	}
	out := make([]suggestionJSON, 0, len(advice.Suggestions))
	for _, sg := range advice.Suggestions {
		out = append(out, suggestionJSON{Category: sg.Category, Placement: sg.Placement, Notes: sg.Notes})
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"suggestions": out})
}
