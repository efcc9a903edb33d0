package donations

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"petverse/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/donations", submitDonationHandler(svc))

	r.Route("/admin/donations", func(dr chi.Router) {
		dr.Get("/", listDonationsHandler(svc))
		dr.Patch("/{donationID}/status", setDonationStatusHandler(svc))
	})
}

type submitDonationRequest struct {
	DonorName string `json:"donor_name"`
	Email     string `json:"email"`
	Amount    int    `json:"amount"`
	Message   string `json:"message"`
	PaymentID string `json:"payment_id"`
	Method    string `json:"payment_method"`
}

type setDonationStatusRequest struct {
	Status string `json:"status"`
}

type donationResponse struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id,omitempty"`
	DonorName  string     `json:"donor_name"`
	Email      string     `json:"email"`
	Amount     int        `json:"amount"`
	Message    string     `json:"message,omitempty"`
	PaymentID  string     `json:"payment_id"`
	Method     string     `json:"payment_method,omitempty"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	VerifiedAt *time.Time `json:"verified_at,omitempty"`
}

type paymentFailureResponse struct {
	Error     string `json:"error"`
	PaymentID string `json:"payment_id"`
}

func submitDonationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req submitDonationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		// Las donaciones admiten donantes anónimos: el user id es opcional.
		var userID string
		if claims, ok := middleware.GetClaims(r.Context()); ok {
			userID = claims.UserID
		}

		d, err := svc.Submit(r.Context(), userID, SubmitInput{
			DonorName: req.DonorName,
			Email:     req.Email,
			Amount:    req.Amount,
			Message:   req.Message,
			PaymentID: req.PaymentID,
			Method:    req.Method,
		})
		if err != nil {
			var pre *PaymentRecordedError
			switch {
			case errors.As(err, &pre):
				writeJSON(w, http.StatusConflict, paymentFailureResponse{
					Error:     "your payment was received but the donation could not be saved; contact support with this payment id",
					PaymentID: pre.PaymentID,
				})
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, toDonationResponse(d))
	}
}

func listDonationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !middleware.IsAdmin(r.Context()) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		items, err := svc.List(r.Context(), r.URL.Query().Get("status"))
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "invalid status", http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]donationResponse, 0, len(items))
		for _, d := range items {
			out = append(out, toDonationResponse(d))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func setDonationStatusHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !middleware.IsAdmin(r.Context()) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		var req setDonationStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		d, err := svc.SetStatus(r.Context(), chi.URLParam(r, "donationID"), req.Status)
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				http.Error(w, "donation not found", http.StatusNotFound)
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, "invalid status", http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toDonationResponse(d))
	}
}

func toDonationResponse(d Donation) donationResponse {
	return donationResponse{
		ID:         d.ID,
		UserID:     d.UserID,
		DonorName:  d.DonorName,
		Email:      d.Email,
		Amount:     d.Amount,
		Message:    d.Message,
		PaymentID:  d.PaymentID,
		Method:     d.Method,
		Status:     string(d.Status),
		CreatedAt:  d.CreatedAt,
		VerifiedAt: d.VerifiedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
