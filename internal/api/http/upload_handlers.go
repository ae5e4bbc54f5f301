package http

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"goldlink-backend/internal/domain"
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// handleUpload accepts a multipart image and stores it under a generated key.
// Returns the public URL to reference from listings, estimations or messages.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFrom(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		writeError(w, domain.Validation("file exceeds the upload size limit"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, domain.Validation("a file field is required"))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		// Some clients omit the part content type; fall back to the name.
		switch strings.ToLower(filepath.Ext(header.Filename)) {
		case ".jpg", ".jpeg":
			contentType, ext = "image/jpeg", ".jpg"
		case ".png":
			contentType, ext = "image/png", ".png"
		case ".webp":
			contentType, ext = "image/webp", ".webp"
		default:
			writeError(w, domain.Validation("only jpeg, png and webp images are accepted"))
			return
		}
	}

	key := fmt.Sprintf("%d/%s/%s%s",
		actor.ID, time.Now().UTC().Format("2006-01"), uuid.NewString(), ext)

	url, err := s.uploads.Save(r.Context(), key, contentType, file)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"url": url, "key": key})
}
