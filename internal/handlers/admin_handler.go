package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/iftoesports/portal-backend/internal/export"
	"github.com/iftoesports/portal-backend/internal/services"
	"github.com/iftoesports/portal-backend/internal/store"
	log "github.com/sirupsen/logrus"
)

// AdminHandler exposes the review console endpoints. Routing guards
// these behind the admin role.
type AdminHandler struct {
	Service *services.AdminService
}

// NewAdminHandler creates a new instance of AdminHandler.
func NewAdminHandler(service *services.AdminService) *AdminHandler {
	return &AdminHandler{Service: service}
}

// filterFromQuery builds a TeamFilter from the listing query string.
// "all" is accepted as the empty filter for frontend convenience.
func filterFromQuery(r *http.Request) services.TeamFilter {
	q := r.URL.Query()
	get := func(key string) string {
		value := q.Get(key)
		if value == "all" {
			return ""
		}
		return value
	}
	return services.TeamFilter{
		Game:      get("game"),
		Institute: get("institute"),
		Payment:   get("payment"),
		Status:    get("status"),
		Search:    q.Get("search"),
	}
}

// ListTeamsHandler lists teams with the console filters applied.
func (h *AdminHandler) ListTeamsHandler(w http.ResponseWriter, r *http.Request) {
	teams, err := h.Service.ListTeams(r.Context(), filterFromQuery(r))
	if err != nil {
		log.WithError(err).Error("Failed to list teams")
		http.Error(w, "Failed to fetch teams", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(teams)
}

// StatsHandler serves the console summary cards.
func (h *AdminHandler) StatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.Stats(r.Context())
	if err != nil {
		log.WithError(err).Error("Failed to compute stats")
		http.Error(w, "Failed to compute stats", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

// ApprovePaymentHandler confirms a team's payment.
func (h *AdminHandler) ApprovePaymentHandler(w http.ResponseWriter, r *http.Request) {
	team, err := h.Service.ApprovePayment(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Team not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(team)
}

// ApproveTeamHandler approves a registration.
func (h *AdminHandler) ApproveTeamHandler(w http.ResponseWriter, r *http.Request) {
	team, err := h.Service.ApproveTeam(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Team not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(team)
}

// RejectTeamHandler rejects a registration.
func (h *AdminHandler) RejectTeamHandler(w http.ResponseWriter, r *http.Request) {
	team, err := h.Service.RejectTeam(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Team not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(team)
}

// DeleteTeamHandler removes a single registration.
func (h *AdminHandler) DeleteTeamHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteTeam(r.Context(), mux.Vars(r)["id"]); err != nil {
		log.WithError(err).Error("Failed to delete team")
		http.Error(w, "Failed to delete team", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// BulkDeleteHandler removes every team matching the posted criteria and
// reports the count removed.
func (h *AdminHandler) BulkDeleteHandler(w http.ResponseWriter, r *http.Request) {
	var criteria store.DeleteCriteria
	if err := json.NewDecoder(r.Body).Decode(&criteria); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	deleted, err := h.Service.BulkDelete(r.Context(), criteria)
	if err != nil {
		log.WithError(err).Error("Bulk delete failed")
		http.Error(w, "Failed to delete teams", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{"deleted": deleted})
}

// ExportTeamsHandler downloads the filtered listing as CSV.
func (h *AdminHandler) ExportTeamsHandler(w http.ResponseWriter, r *http.Request) {
	teams, err := h.Service.ListTeams(r.Context(), filterFromQuery(r))
	if err != nil {
		log.WithError(err).Error("Failed to export teams")
		http.Error(w, "Failed to export teams", http.StatusInternalServerError)
		return
	}

	filename := export.Filename(time.Now())
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Write([]byte(export.TeamsCSV(teams)))
}
