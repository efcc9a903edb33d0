package uploads

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"petverse/internal/middleware"
	"petverse/internal/ports/blob"

	"github.com/go-chi/chi/v5"
)

// maxUploadBytes limita el tamaño de imagen aceptado.
const maxUploadBytes = 5 << 20

func RegisterRoutes(r chi.Router, store blob.Store) {
	r.Post("/uploads", uploadHandler(store))
}

type uploadResponse struct {
	URL string `json:"url"`
}

func uploadHandler(store blob.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || claims.UserID == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if store == nil {
			http.Error(w, "storage not configured", http.StatusServiceUnavailable)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			http.Error(w, "file too large or invalid form", http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "missing file field", http.StatusBadRequest)
			return
		}
		defer file.Close()

		content, err := io.ReadAll(file)
		if err != nil {
			http.Error(w, "read failed", http.StatusBadRequest)
			return
		}

		folder := sanitizeFolder(r.FormValue("folder"))
		name := filepath.Base(header.Filename)
		path := fmt.Sprintf("%s/%d_%s", folder, time.Now().UnixMilli(), name)

		contentType := header.Header.Get("Content-Type")
		if contentType == "" {
			contentType = http.DetectContentType(content)
		}

		url, err := store.Upload(r.Context(), path, content, contentType)
		if err != nil {
			http.Error(w, "upload failed", http.StatusBadGateway)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(uploadResponse{URL: url})
	}
}

func sanitizeFolder(folder string) string {
	folder = strings.Trim(strings.TrimSpace(folder), "/")
	if folder == "" || strings.Contains(folder, "..") {
		return "misc"
	}
	return folder
}
