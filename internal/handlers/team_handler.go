package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/iftoesports/portal-backend/internal/models"
	"github.com/iftoesports/portal-backend/internal/services"
	"github.com/iftoesports/portal-backend/pkg/middleware"
	log "github.com/sirupsen/logrus"
)

// TeamHandler handles HTTP requests for the registration wizard and the
// user's own registrations.
type TeamHandler struct {
	Service *services.TeamService
}

// NewTeamHandler creates a new instance of TeamHandler.
func NewTeamHandler(service *services.TeamService) *TeamHandler {
	return &TeamHandler{Service: service}
}

// RegisterTeamHandler creates a new team registration.
func (h *TeamHandler) RegisterTeamHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input services.TeamRegistrationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.WithError(err).Warn("Failed to decode team registration request")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	team, err := h.Service.RegisterTeam(r.Context(), claims.UserID, input)
	if err != nil {
		log.WithError(err).Warn("Team registration rejected")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(team)
}

// MyTeamsHandler lists the caller's registrations.
func (h *TeamHandler) MyTeamsHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	teams, err := h.Service.MyTeams(r.Context(), claims.UserID)
	if err != nil {
		http.Error(w, "Failed to fetch teams", http.StatusInternalServerError)
		return
	}
	if teams == nil {
		teams = []models.Team{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(teams)
}

// GetTeamHandler returns one registration, for its owner or an admin.
func (h *TeamHandler) GetTeamHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	teamID := mux.Vars(r)["id"]
	team, err := h.Service.GetTeam(r.Context(), claims.UserID, claims.IsAdmin, teamID)
	if errors.Is(err, services.ErrNotTeamOwner) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	if err != nil {
		http.Error(w, "Team not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(team)
}

// ConfirmPaymentHandler records the owner's payment confirmation.
func (h *TeamHandler) ConfirmPaymentHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	teamID := mux.Vars(r)["id"]
	team, err := h.Service.ConfirmPayment(r.Context(), claims.UserID, teamID)
	if errors.Is(err, services.ErrNotTeamOwner) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	if err != nil {
		log.WithError(err).Warn("Payment confirmation failed")
		http.Error(w, "Team not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(team)
}

// ListGamesHandler serves the fixed game catalog.
func (h *TeamHandler) ListGamesHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.GameCatalog)
}

// ListInstitutesHandler serves the fixed campus list.
func (h *TeamHandler) ListInstitutesHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.Institutes)
}
