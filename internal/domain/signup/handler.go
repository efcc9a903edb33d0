package signup

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/signup", beginHandler(svc))
		ar.Post("/verify-otp", verifyHandler(svc))
		ar.Post("/resend-otp", resendHandler(svc))
	})
}

type beginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

type verifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type resendRequest struct {
	Email string `json:"email"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type verifiedResponse struct {
	Verified bool   `json:"verified"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func beginHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req beginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		if err := svc.Begin(r.Context(), req.Email, req.Password, req.Username); err != nil {
			switch {
			case errors.Is(err, ErrEmailTaken), errors.Is(err, ErrUsernameTaken):
				http.Error(w, err.Error(), http.StatusConflict)
			case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrReservedEmail):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "signup failed", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusAccepted, messageResponse{
			Message: "Account created! Check your email for verification code.",
		})
	}
}

func verifyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req verifyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		username, err := svc.Verify(r.Context(), req.Email, req.Code)
		if err != nil {
			switch {
			case errors.Is(err, ErrNoPendingSignup):
				http.Error(w, "no pending signup, please sign up again", http.StatusNotFound)
			case errors.Is(err, ErrExpiredCode):
				http.Error(w, "code expired, please sign up again", http.StatusBadRequest)
			case errors.Is(err, ErrInvalidCode), errors.Is(err, ErrInvalidInput):
				http.Error(w, "invalid verification code", http.StatusBadRequest)
			default:
				http.Error(w, "verification failed", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, verifiedResponse{
			Verified: true,
			Username: username,
			Email:    req.Email,
		})
	}
}

func resendHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req resendRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		if err := svc.Resend(r.Context(), req.Email); err != nil {
			switch {
			case errors.Is(err, ErrNoPendingSignup):
				http.Error(w, "no signup session found", http.StatusNotFound)
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "resend failed", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, messageResponse{Message: "New verification code sent."})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
