package adoptions

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"petverse/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/adoptions", func(ar chi.Router) {
		ar.Post("/", submitAdoptionHandler(svc))
		ar.Get("/mine", listMyAdoptionsHandler(svc))
	})

	r.Route("/admin/adoptions", func(ar chi.Router) {
		ar.Get("/", listAdoptionsHandler(svc))
		ar.Post("/{adoptionID}/accept", acceptAdoptionHandler(svc))
		ar.Post("/{adoptionID}/reject", rejectAdoptionHandler(svc))
	})
}

type submitAdoptionRequest struct {
	PetID       string `json:"pet_id"`
	AdopterName string `json:"adopter_name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	Reason      string `json:"reason"`
	PaymentID   string `json:"payment_id"`
}

type adoptionResponse struct {
	ID          string     `json:"id"`
	PetID       string     `json:"pet_id"`
	PetName     string     `json:"pet_name"`
	UserID      string     `json:"user_id"`
	AdopterName string     `json:"adopter_name"`
	Phone       string     `json:"phone,omitempty"`
	Email       string     `json:"email"`
	Address     string     `json:"address,omitempty"`
	Reason      string     `json:"reason,omitempty"`
	Fee         int        `json:"fee"`
	PaymentID   string     `json:"payment_id"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	VerifiedAt  *time.Time `json:"verified_at,omitempty"`
}

// paymentFailureResponse avisa al usuario que su pago quedó registrado
// aunque la solicitud no se pudo guardar.
type paymentFailureResponse struct {
	Error     string `json:"error"`
	PaymentID string `json:"payment_id"`
}

func submitAdoptionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || claims.UserID == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req submitAdoptionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.Submit(r.Context(), claims.UserID, SubmitInput{
			PetID:       req.PetID,
			AdopterName: req.AdopterName,
			Phone:       req.Phone,
			Email:       req.Email,
			Address:     req.Address,
			Reason:      req.Reason,
			PaymentID:   req.PaymentID,
		})
		if err != nil {
			var pre *PaymentRecordedError
			switch {
			case errors.As(err, &pre):
				writeJSON(w, http.StatusConflict, paymentFailureResponse{
					Error:     "your payment was received but the request could not be saved; contact support with this payment id",
					PaymentID: pre.PaymentID,
				})
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, toAdoptionResponse(a))
	}
}

func listMyAdoptionsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || claims.UserID == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByUser(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toAdoptionResponses(items))
	}
}

func listAdoptionsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !middleware.IsAdmin(r.Context()) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		items, err := svc.ListAll(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toAdoptionResponses(items))
	}
}

func acceptAdoptionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !middleware.IsAdmin(r.Context()) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		a, err := svc.Accept(r.Context(), chi.URLParam(r, "adoptionID"))
		if err != nil {
			writeTransitionError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAdoptionResponse(a))
	}
}

func rejectAdoptionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !middleware.IsAdmin(r.Context()) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		a, err := svc.Reject(r.Context(), chi.URLParam(r, "adoptionID"))
		if err != nil {
			writeTransitionError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAdoptionResponse(a))
	}
}

func writeTransitionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, "adoption not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidTransition):
		http.Error(w, "invalid status transition", http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toAdoptionResponse(a Adoption) adoptionResponse {
	return adoptionResponse{
		ID:          a.ID,
		PetID:       a.PetID,
		PetName:     a.PetName,
		UserID:      a.UserID,
		AdopterName: a.AdopterName,
		Phone:       a.Phone,
		Email:       a.Email,
		Address:     a.Address,
		Reason:      a.Reason,
		Fee:         a.Fee,
		PaymentID:   a.PaymentID,
		Status:      string(a.Status),
		CreatedAt:   a.CreatedAt,
		VerifiedAt:  a.VerifiedAt,
	}
}

func toAdoptionResponses(items []Adoption) []adoptionResponse {
	out := make([]adoptionResponse, 0, len(items))
	for _, a := range items {
		out = append(out, toAdoptionResponse(a))
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
