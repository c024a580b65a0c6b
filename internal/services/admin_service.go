package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/iftoesports/portal-backend/internal/models"
	"github.com/iftoesports/portal-backend/internal/store"
	"github.com/iftoesports/portal-backend/pkg/email"
	"github.com/sirupsen/logrus"
)

// AdminService drives the review console: listing with filters, the
// approval state machine, deletion and bulk deletion.
type AdminService struct {
	teams    store.TeamStore
	users    store.UserStore
	notifier email.Notifier
}

// NewAdminService creates a new instance of AdminService.
func NewAdminService(teams store.TeamStore, users store.UserStore, notifier email.Notifier) *AdminService {
	return &AdminService{
		teams:    teams,
		users:    users,
		notifier: notifier,
	}
}

// TeamFilter narrows the admin listing. Empty fields mean "all".
// Payment and Status accept the stored enum values; Status additionally
// accepts "pending" for teams not yet reviewed.
type TeamFilter struct {
	Game      string
	Institute string
	Payment   string
	Status    string
	Search    string
}

// Matches applies the dropdown filters first, then the free-text search
// over team name, institute and player names, all case-insensitive.
func (f TeamFilter) Matches(team *models.Team) bool {
	if f.Game != "" && string(team.Game) != f.Game {
		return false
	}
	if f.Institute != "" && string(team.Institute) != f.Institute {
		return false
	}
	if f.Payment != "" && string(team.PaymentStatus) != f.Payment {
		return false
	}
	switch f.Status {
	case "":
	case "pending":
		if team.Status != models.StatusUnset {
			return false
		}
	default:
		if string(team.Status) != f.Status {
			return false
		}
	}

	if f.Search == "" {
		return true
	}
	needle := strings.ToLower(f.Search)
	if strings.Contains(strings.ToLower(team.Name), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(string(team.Institute)), needle) {
		return true
	}
	for _, player := range team.Players {
		if strings.Contains(strings.ToLower(player.Name), needle) {
			return true
		}
	}
	return false
}

// ListTeams returns every team matching the filter.
func (s *AdminService) ListTeams(ctx context.Context, filter TeamFilter) ([]models.Team, error) {
	teams, err := s.teams.GetTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch teams: %v", err)
	}

	out := make([]models.Team, 0, len(teams))
	for i := range teams {
		if filter.Matches(&teams[i]) {
			out = append(out, teams[i])
		}
	}
	return out, nil
}

// TeamStats summarizes the registration pool for the console cards.
type TeamStats struct {
	Total           int                 `json:"total"`
	TotalPlayers    int                 `json:"total_players"`
	ByGame          map[models.Game]int `json:"by_game"`
	PaymentApproved int                 `json:"payment_approved"`
	PaymentPending  int                 `json:"payment_pending"`
	Approved        int                 `json:"approved"`
	Rejected        int                 `json:"rejected"`
}

// Stats computes the summary over all teams.
func (s *AdminService) Stats(ctx context.Context) (TeamStats, error) {
	teams, err := s.teams.GetTeams(ctx)
	if err != nil {
		return TeamStats{}, fmt.Errorf("failed to fetch teams: %v", err)
	}

	stats := TeamStats{ByGame: make(map[models.Game]int)}
	for i := range teams {
		team := &teams[i]
		stats.Total++
		stats.TotalPlayers += len(team.Players)
		stats.ByGame[team.Game]++
		if team.PaymentStatus == models.PaymentApproved {
			stats.PaymentApproved++
		} else {
			stats.PaymentPending++
		}
		switch team.Status {
		case models.StatusApproved:
			stats.Approved++
		case models.StatusRejected:
			stats.Rejected++
		}
	}
	return stats, nil
}

// ApprovePayment confirms a team's payment on behalf of the admin. Same
// transition as the owner's confirmation, independent trigger.
func (s *AdminService) ApprovePayment(ctx context.Context, teamID string) (*models.Team, error) {
	team, err := s.teams.GetTeamByID(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to find team: %w", err)
	}

	if team.ApprovePayment() {
		if err := s.teams.SaveTeam(ctx, team); err != nil {
			return nil, fmt.Errorf("failed to save payment approval: %v", err)
		}
		logrus.WithField("teamID", team.ID).Info("Team payment approved by admin")
	}
	return team, nil
}

// ApproveTeam records the admin approval and notifies the team owner.
func (s *AdminService) ApproveTeam(ctx context.Context, teamID string) (*models.Team, error) {
	return s.review(ctx, teamID, models.StatusApproved)
}

// RejectTeam records the admin rejection and notifies the team owner.
func (s *AdminService) RejectTeam(ctx context.Context, teamID string) (*models.Team, error) {
	return s.review(ctx, teamID, models.StatusRejected)
}

// review applies the pure status transition, persists it and fires the
// notification port. Notification failures are logged, not surfaced:
// the decision itself has already been recorded.
func (s *AdminService) review(ctx context.Context, teamID string, status models.ApprovalStatus) (*models.Team, error) {
	team, err := s.teams.GetTeamByID(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to find team: %w", err)
	}

	if team.SetStatus(status) {
		if err := s.teams.SaveTeam(ctx, team); err != nil {
			return nil, fmt.Errorf("failed to save team status: %v", err)
		}
	}

	s.notifyOwner(ctx, team, status)

	logrus.WithFields(logrus.Fields{
		"teamID": team.ID,
		"status": status,
	}).Info("Team reviewed")
	return team, nil
}

func (s *AdminService) notifyOwner(ctx context.Context, team *models.Team, status models.ApprovalStatus) {
	owner, err := s.users.GetUserByID(ctx, team.CreatedBy)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"teamID": team.ID,
			"owner":  team.CreatedBy,
		}).Warn("Team owner not found, skipping notification")
		return
	}
	if err := s.notifier.TeamStatusChanged(owner.Email, team, status); err != nil {
		logrus.WithError(err).Error("Failed to send status notification")
	}
}

// DeleteTeam removes a single registration.
func (s *AdminService) DeleteTeam(ctx context.Context, teamID string) error {
	if err := s.teams.DeleteTeam(ctx, teamID); err != nil {
		return fmt.Errorf("failed to delete team: %v", err)
	}
	logrus.WithField("teamID", teamID).Info("Team deleted")
	return nil
}

// BulkDelete removes every team matching the ORed criteria and returns
// the count removed.
func (s *AdminService) BulkDelete(ctx context.Context, criteria store.DeleteCriteria) (int, error) {
	removed, err := s.teams.DeleteTeamsByCriteria(ctx, criteria)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk delete teams: %v", err)
	}
	if removed > 0 {
		logrus.WithField("deleted", removed).Info("Bulk deleted teams")
	}
	return removed, nil
}
