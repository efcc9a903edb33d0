package community

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"petverse/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/community/posts", func(cr chi.Router) {
		cr.Get("/", listPostsHandler(svc))
		cr.Post("/", createPostHandler(svc))
		cr.Delete("/{postID}", deletePostHandler(svc))
	})
}

type createPostRequest struct {
	UserName string `json:"user_name"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	ImageURL string `json:"image_url"`
}

type postResponse struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id,omitempty"`
	UserName     string    `json:"user_name"`
	Type         string    `json:"post_type"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	ImageURL     string    `json:"image_url,omitempty"`
	LostReportID string    `json:"lost_report_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func listPostsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]postResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPostResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func createPostHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || claims.UserID == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createPostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			UserName: req.UserName,
			Title:    req.Title,
			Content:  req.Content,
			ImageURL: req.ImageURL,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toPostResponse(p))
	}
}

func deletePostHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || claims.UserID == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		err := svc.Delete(r.Context(), chi.URLParam(r, "postID"), claims.UserID, middleware.IsAdmin(r.Context()))
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				http.Error(w, "post not found", http.StatusNotFound)
			case errors.Is(err, ErrForbidden):
				http.Error(w, "forbidden", http.StatusForbidden)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toPostResponse(p Post) postResponse {
	return postResponse{
		ID:           p.ID,
		UserID:       p.UserID,
		UserName:     p.UserName,
		Type:         string(p.Type),
		Title:        p.Title,
		Content:      p.Content,
		ImageURL:     p.ImageURL,
		LostReportID: p.LostReportID,
		CreatedAt:    p.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
