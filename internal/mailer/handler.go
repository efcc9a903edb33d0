// Package mailer expone la API HTTP del mail service (cmd/mailer).
// El API server le pega vía el adapter relay; el contrato de respuesta
// es siempre {success, message|error}.
package mailer

import (
	"encoding/json"
	"net/http"

	"petverse/internal/platform/logger"
	"petverse/internal/ports/mail"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	mail mail.Mailer
	log  logger.Logger
}

func NewHandler(mailer mail.Mailer, log logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{mail: mailer, log: log}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/api/health", h.health)

	r.Route("/api/email", func(er chi.Router) {
		er.Post("/otp", h.sendOTP)
		er.Post("/welcome", h.sendWelcome)
		er.Post("/password-reset", h.sendPasswordReset)
		er.Post("/volunteer-status", h.sendVolunteerStatus)
		er.Post("/volunteer-event", h.sendVolunteerEvent)
		er.Post("/lost-found-status", h.sendLostFoundStatus)
		er.Post("/pet-found-match", h.sendPetFoundMatch)
	})
}

type apiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, apiResponse{Success: true, Message: "ok"})
}

type otpRequest struct {
	Email    string `json:"email"`
	OTP      string `json:"otp"`
	UserName string `json:"user_name"`
}

func (h *Handler) sendOTP(w http.ResponseWriter, r *http.Request) {
	var req otpRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Email == "" || req.OTP == "" {
		h.badRequest(w, "email and otp are required")
		return
	}
	h.dispatch(w, r, "otp", h.mail.SendOTP(r.Context(), req.Email, req.OTP, req.UserName))
}

type welcomeRequest struct {
	Email    string `json:"email"`
	UserName string `json:"user_name"`
}

func (h *Handler) sendWelcome(w http.ResponseWriter, r *http.Request) {
	var req welcomeRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Email == "" {
		h.badRequest(w, "email is required")
		return
	}
	h.dispatch(w, r, "welcome", h.mail.SendWelcome(r.Context(), req.Email, req.UserName))
}

type passwordResetRequest struct {
	Email     string `json:"email"`
	ResetLink string `json:"reset_link"`
}

func (h *Handler) sendPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req passwordResetRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Email == "" || req.ResetLink == "" {
		h.badRequest(w, "email and reset_link are required")
		return
	}
	h.dispatch(w, r, "password-reset", h.mail.SendPasswordReset(r.Context(), req.Email, req.ResetLink))
}

type volunteerStatusRequest struct {
	Email         string `json:"email"`
	VolunteerName string `json:"volunteer_name"`
	Status        string `json:"status"`
}

func (h *Handler) sendVolunteerStatus(w http.ResponseWriter, r *http.Request) {
	var req volunteerStatusRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Email == "" || req.Status == "" {
		h.badRequest(w, "email and status are required")
		return
	}
	h.dispatch(w, r, "volunteer-status",
		h.mail.SendVolunteerStatus(r.Context(), req.Email, req.VolunteerName, req.Status))
}

type volunteerEventRequest struct {
	Recipients []string `json:"recipients"`
	Event      struct {
		Title            string `json:"title"`
		Description      string `json:"description"`
		Date             string `json:"date"`
		Time             string `json:"time"`
		Location         string `json:"location"`
		Address          string `json:"address"`
		Responsibilities string `json:"responsibilities"`
	} `json:"event"`
	CustomMessage string `json:"custom_message"`
}

func (h *Handler) sendVolunteerEvent(w http.ResponseWriter, r *http.Request) {
	var req volunteerEventRequest
	if !h.decode(w, r, &req) {
		return
	}
	if len(req.Recipients) == 0 || req.Event.Title == "" {
		h.badRequest(w, "recipients and event.title are required")
		return
	}
	h.dispatch(w, r, "volunteer-event",
		h.mail.SendVolunteerEvent(r.Context(), req.Recipients, mail.EventDetails{
			Title:            req.Event.Title,
			Description:      req.Event.Description,
			Date:             req.Event.Date,
			Time:             req.Event.Time,
			Location:         req.Event.Location,
			Address:          req.Event.Address,
			Responsibilities: req.Event.Responsibilities,
		}, req.CustomMessage))
}

type lostFoundStatusRequest struct {
	Email      string `json:"email"`
	PetName    string `json:"pet_name"`
	Status     string `json:"status"`
	ReportType string `json:"report_type"`
}

func (h *Handler) sendLostFoundStatus(w http.ResponseWriter, r *http.Request) {
	var req lostFoundStatusRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Email == "" || req.Status == "" {
		h.badRequest(w, "email and status are required")
		return
	}
	h.dispatch(w, r, "lost-found-status",
		h.mail.SendLostFoundStatus(r.Context(), req.Email, req.PetName, req.Status, req.ReportType))
}

type petFoundMatchRequest struct {
	Email   string `json:"email"`
	PetName string `json:"pet_name"`
	Finder  struct {
		Phone    string `json:"phone"`
		Email    string `json:"email"`
		Location string `json:"location"`
	} `json:"finder"`
}

func (h *Handler) sendPetFoundMatch(w http.ResponseWriter, r *http.Request) {
	var req petFoundMatchRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Email == "" || req.PetName == "" {
		h.badRequest(w, "email and pet_name are required")
		return
	}
	h.dispatch(w, r, "pet-found-match",
		h.mail.SendPetFoundMatch(r.Context(), req.Email, req.PetName, mail.FinderDetails{
			Phone:    req.Finder.Phone,
			Email:    req.Finder.Email,
			Location: req.Finder.Location,
		}))
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.badRequest(w, "invalid json")
		return false
	}
	return true
}

func (h *Handler) badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, apiResponse{Success: false, Error: msg})
}

func (h *Handler) dispatch(w http.ResponseWriter, r *http.Request, template string, err error) {
	if err != nil {
		h.log.Error("email send failed", map[string]any{"template": template, "err": err.Error()})
		writeJSON(w, http.StatusBadGateway, apiResponse{Success: false, Error: "email send failed"})
		return
	}
	writeJSON(w, http.StatusOK, apiResponse{Success: true, Message: "email sent"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
