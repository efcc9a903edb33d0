package lostfound

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"petverse/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/lostfound", func(lr chi.Router) {
		lr.Get("/", listReportsHandler(svc))
		lr.Post("/", submitReportHandler(svc))
	})

	r.Route("/admin/lostfound", func(lr chi.Router) {
		lr.Get("/pending", listPendingHandler(svc))
		lr.Get("/reviewed", listReviewedHandler(svc))
		lr.Patch("/{reportID}/status", reviewReportHandler(svc))
	})
}

type submitReportRequest struct {
	Type         string  `json:"report_type"`
	PetName      string  `json:"pet_name"`
	PetType      string  `json:"pet_type"`
	Breed        string  `json:"breed"`
	Color        string  `json:"color"`
	Location     string  `json:"location"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	Date         string  `json:"date"`
	Description  string  `json:"description"`
	ImageURL     string  `json:"image_url"`
	ContactName  string  `json:"contact_name"`
	ContactPhone string  `json:"contact_phone"`
	ContactEmail string  `json:"contact_email"`
}

type reviewReportRequest struct {
	Status        string `json:"status"`
	MatchedLostID string `json:"matched_lost_id"`
}

type reportResponse struct {
	ID           string    `json:"id"`
	Type         string    `json:"report_type"`
	UserID       string    `json:"user_id,omitempty"`
	PetName      string    `json:"pet_name"`
	PetType      string    `json:"pet_type,omitempty"`
	Breed        string    `json:"breed,omitempty"`
	Color        string    `json:"color,omitempty"`
	Location     string    `json:"location"`
	Lat          float64   `json:"lat,omitempty"`
	Lng          float64   `json:"lng,omitempty"`
	Date         string    `json:"date,omitempty"`
	Description  string    `json:"description,omitempty"`
	ImageURL     string    `json:"image_url,omitempty"`
	ContactName  string    `json:"contact_name,omitempty"`
	ContactPhone string    `json:"contact_phone,omitempty"`
	ContactEmail string    `json:"contact_email,omitempty"`
	Status       string    `json:"status"`
	MatchedWith  string    `json:"matched_with,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func listReportsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListApproved(r.Context(), r.URL.Query().Get("type"))
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "invalid report type", http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toReportResponses(items))
	}
}

func submitReportHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || claims.UserID == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req submitReportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		rep, err := svc.Submit(r.Context(), claims.UserID, SubmitInput{
			Type:         req.Type,
			PetName:      req.PetName,
			PetType:      req.PetType,
			Breed:        req.Breed,
			Color:        req.Color,
			Location:     req.Location,
			Lat:          req.Lat,
			Lng:          req.Lng,
			Date:         req.Date,
			Description:  req.Description,
			ImageURL:     req.ImageURL,
			ContactName:  req.ContactName,
			ContactPhone: req.ContactPhone,
			ContactEmail: req.ContactEmail,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toReportResponse(rep))
	}
}

func listPendingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !middleware.IsAdmin(r.Context()) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		items, err := svc.ListPending(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toReportResponses(items))
	}
}

func listReviewedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !middleware.IsAdmin(r.Context()) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		items, err := svc.ListReviewed(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toReportResponses(items))
	}
}

func reviewReportHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !middleware.IsAdmin(r.Context()) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		var req reviewReportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		rep, err := svc.Review(r.Context(), chi.URLParam(r, "reportID"), ReviewInput{
			Status:        req.Status,
			MatchedLostID: req.MatchedLostID,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				http.Error(w, "report not found", http.StatusNotFound)
			case errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrTypeMismatch):
				http.Error(w, err.Error(), http.StatusConflict)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toReportResponse(rep))
	}
}

func toReportResponse(r Report) reportResponse {
	return reportResponse{
		ID:           r.ID,
		Type:         string(r.Type),
		UserID:       r.UserID,
		PetName:      r.PetName,
		PetType:      r.PetType,
		Breed:        r.Breed,
		Color:        r.Color,
		Location:     r.Location,
		Lat:          r.Lat,
		Lng:          r.Lng,
		Date:         r.Date,
		Description:  r.Description,
		ImageURL:     r.ImageURL,
		ContactName:  r.ContactName,
		ContactPhone: r.ContactPhone,
		ContactEmail: r.ContactEmail,
		Status:       string(r.Status),
		MatchedWith:  r.MatchedWith,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func toReportResponses(items []Report) []reportResponse {
	out := make([]reportResponse, 0, len(items))
	for _, r := range items {
		out = append(out, toReportResponse(r))
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
