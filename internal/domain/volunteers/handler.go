package volunteers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"petverse/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/volunteers", func(vr chi.Router) {
		vr.Post("/apply", applyHandler(svc))
		vr.Get("/events", listEventsHandler(svc))
		vr.Post("/events/{eventID}/register", registerHandler(svc))
		vr.Get("/registrations/mine", listMyRegistrationsHandler(svc))
	})

	r.Route("/admin/volunteers", func(vr chi.Router) {
		vr.Get("/applications", listApplicationsHandler(svc))
		vr.Patch("/applications/{applicationID}/status", updateApplicationStatusHandler(svc))

		vr.Post("/events", createEventHandler(svc))
		vr.Put("/events/{eventID}", updateEventHandler(svc))
		vr.Delete("/events/{eventID}", deleteEventHandler(svc))
		vr.Get("/events/{eventID}/registrations", listRegistrationsHandler(svc))
		vr.Patch("/registrations/{registrationID}/status", updateRegistrationStatusHandler(svc))
		vr.Post("/events/{eventID}/invite", massInviteHandler(svc))
	})
}

type applyRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Role         string `json:"role"`
	Availability string `json:"availability"`
	Experience   string `json:"experience"`
	Motivation   string `json:"motivation"`
}

type applicationResponse struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	Role         string    `json:"role"`
	Availability string    `json:"availability,omitempty"`
	Experience   string    `json:"experience,omitempty"`
	Motivation   string    `json:"motivation,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type eventRequest struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	Date             string `json:"date"`
	Time             string `json:"time"`
	Location         string `json:"location"`
	Address          string `json:"address"`
	Responsibilities string `json:"responsibilities"`
	MaxVolunteers    int    `json:"max_volunteers"`
}

type eventResponse struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Description       string    `json:"description,omitempty"`
	Date              string    `json:"date,omitempty"`
	Time              string    `json:"time,omitempty"`
	Location          string    `json:"location,omitempty"`
	Address           string    `json:"address,omitempty"`
	Responsibilities  string    `json:"responsibilities,omitempty"`
	MaxVolunteers     int       `json:"max_volunteers"`
	CurrentVolunteers int       `json:"current_volunteers"`
	CreatedAt         time.Time `json:"created_at"`
}

type registerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type registrationResponse struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type statusRequest struct {
	Status string `json:"status"`
}

type massInviteRequest struct {
	Role          string `json:"role"`
	CustomMessage string `json:"custom_message"`
}

type massInviteResponse struct {
	Invited int `json:"invited"`
}

func applyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || claims.UserID == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req applyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.Apply(r.Context(), claims.UserID, ApplyInput{
			Name:         req.Name,
			Email:        req.Email,
			Phone:        req.Phone,
			Role:         req.Role,
			Availability: req.Availability,
			Experience:   req.Experience,
			Motivation:   req.Motivation,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toApplicationResponse(a))
	}
}

func listApplicationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !middleware.IsAdmin(r.Context()) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		items, err := svc.ListApplications(r.Context(), r.URL.Query().Get("status"))
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "invalid status", http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]applicationResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toApplicationResponse(a))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func updateApplicationStatusHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !middleware.IsAdmin(r.Context()) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		var req statusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.UpdateApplicationStatus(r.Context(), chi.URLParam(r, "applicationID"), req.Status)
		if err != nil {
			writeVolunteerError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toApplicationResponse(a))
	}
}

func listEventsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListEvents(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]eventResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toEventResponse(e))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func createEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !middleware.IsAdmin(r.Context()) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		var req eventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		e, err := svc.CreateEvent(r.Context(), toEventInput(req))
		if err != nil {
			writeVolunteerError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toEventResponse(e))
	}
}

func updateEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !middleware.IsAdmin(r.Context()) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		var req eventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		e, err := svc.UpdateEvent(r.Context(), chi.URLParam(r, "eventID"), toEventInput(req))
		if err != nil {
			writeVolunteerError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toEventResponse(e))
	}
}

func deleteEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !middleware.IsAdmin(r.Context()) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		if err := svc.DeleteEvent(r.Context(), chi.URLParam(r, "eventID")); err != nil {
			writeVolunteerError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func registerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || claims.UserID == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		reg, err := svc.Register(r.Context(), chi.URLParam(r, "eventID"), claims.UserID, RegisterInput{
			Name:  req.Name,
			Email: req.Email,
		})
		if err != nil {
			writeVolunteerError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toRegistrationResponse(reg))
	}
}

func listRegistrationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !middleware.IsAdmin(r.Context()) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		items, err := svc.ListRegistrations(r.Context(), chi.URLParam(r, "eventID"))
		if err != nil {
			writeVolunteerError(w, err)
			return
		}

		out := make([]registrationResponse, 0, len(items))
		for _, reg := range items {
			out = append(out, toRegistrationResponse(reg))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func listMyRegistrationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || claims.UserID == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListMyRegistrations(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]registrationResponse, 0, len(items))
		for _, reg := range items {
			out = append(out, toRegistrationResponse(reg))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func updateRegistrationStatusHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !middleware.IsAdmin(r.Context()) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		var req statusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		reg, err := svc.UpdateRegistrationStatus(r.Context(), chi.URLParam(r, "registrationID"), req.Status)
		if err != nil {
			writeVolunteerError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toRegistrationResponse(reg))
	}
}

func massInviteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !middleware.IsAdmin(r.Context()) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		var req massInviteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		n, err := svc.MassInvite(r.Context(), chi.URLParam(r, "eventID"), req.Role, req.CustomMessage)
		if err != nil {
			writeVolunteerError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, massInviteResponse{Invited: n})
	}
}

func writeVolunteerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrEventFull), errors.Is(err, ErrAlreadyRegistered):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toEventInput(req eventRequest) EventInput {
	return EventInput{
		Title:            req.Title,
		Description:      req.Description,
		Date:             req.Date,
		Time:             req.Time,
		Location:         req.Location,
		Address:          req.Address,
		Responsibilities: req.Responsibilities,
		MaxVolunteers:    req.MaxVolunteers,
	}
}

func toApplicationResponse(a Application) applicationResponse {
	return applicationResponse{
		ID:           a.ID,
		UserID:       a.UserID,
		Name:         a.Name,
		Email:        a.Email,
		Phone:        a.Phone,
		Role:         a.Role,
		Availability: a.Availability,
		Experience:   a.Experience,
		Motivation:   a.Motivation,
		Status:       string(a.Status),
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func toEventResponse(e Event) eventResponse {
	return eventResponse{
		ID:                e.ID,
		Title:             e.Title,
		Description:       e.Description,
		Date:              e.Date,
		Time:              e.Time,
		Location:          e.Location,
		Address:           e.Address,
		Responsibilities:  e.Responsibilities,
		MaxVolunteers:     e.MaxVolunteers,
		CurrentVolunteers: e.CurrentVolunteers,
		CreatedAt:         e.CreatedAt,
	}
}

func toRegistrationResponse(r Registration) registrationResponse {
	return registrationResponse{
		ID:        r.ID,
		EventID:   r.EventID,
		UserID:    r.UserID,
		Name:      r.Name,
		Email:     r.Email,
		Status:    string(r.Status),
		CreatedAt: r.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
