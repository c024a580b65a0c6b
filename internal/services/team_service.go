package services

import (
	"context"
	"fmt"

	"github.com/iftoesports/portal-backend/internal/models"
	"github.com/iftoesports/portal-backend/internal/store"
	"github.com/iftoesports/portal-backend/pkg/validation"
	"github.com/sirupsen/logrus"
)

// ErrNotTeamOwner is returned when a user acts on a team they did not create.
var ErrNotTeamOwner = fmt.Errorf("team belongs to another user")

// TeamService runs the registration wizard's server side: roster
// validation, team creation and the user-facing payment confirmation.
type TeamService struct {
	teams store.TeamStore
}

// NewTeamService creates a new instance of TeamService.
func NewTeamService(teams store.TeamStore) *TeamService {
	return &TeamService{teams: teams}
}

// TeamRegistrationInput is the payload of the registration wizard,
// steps one and two collapsed into a single call.
type TeamRegistrationInput struct {
	Name      string           `json:"name"`
	Game      models.Game      `json:"game"`
	Institute models.Institute `json:"institute"`
	Players   []string         `json:"players"`
}

// RegisterTeam validates the input and persists a new team in the
// initial (payment pending, unreviewed) state. Nothing is written when
// any validation fails.
func (s *TeamService) RegisterTeam(ctx context.Context, ownerID string, input TeamRegistrationInput) (*models.Team, error) {
	logrus.WithFields(logrus.Fields{
		"owner": ownerID,
		"game":  input.Game,
	}).Info("Registering new team")

	if !input.Game.Valid() {
		return nil, fmt.Errorf("unknown game category")
	}
	if !input.Institute.Valid() {
		return nil, fmt.Errorf("unknown institute")
	}

	existingNames, err := s.teams.GetTeamNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check team names: %v", err)
	}
	if !validation.ValidateTeamName(input.Name, existingNames) {
		logrus.WithField("name", input.Name).Warn("Invalid or duplicate team name")
		return nil, fmt.Errorf("team name invalid or already taken")
	}

	// Blank or too-short player entries are dropped; the remaining
	// roster must still reach the category minimum.
	var players []models.Player
	for _, name := range input.Players {
		if validation.ValidatePlayerName(name) {
			players = append(players, models.Player{ID: models.NewPlayerID(), Name: name})
		}
	}
	if len(players) < input.Game.MinPlayers() {
		logrus.WithFields(logrus.Fields{
			"game":    input.Game,
			"players": len(players),
		}).Warn("Roster below category minimum")
		return nil, fmt.Errorf("%s requires at least %d named players", input.Game.Label(), input.Game.MinPlayers())
	}

	team := &models.Team{
		ID:            models.NewTeamID(),
		Name:          input.Name,
		Game:          input.Game,
		Players:       players,
		Institute:     input.Institute,
		PaymentStatus: models.PaymentPending,
		CreatedBy:     ownerID,
	}
	if err := s.teams.SaveTeam(ctx, team); err != nil {
		logrus.WithError(err).Error("Failed to save team")
		return nil, fmt.Errorf("failed to register team: %v", err)
	}

	logrus.WithField("teamID", team.ID).Info("Team registered successfully")
	return team, nil
}

// ConfirmPayment is the wizard's final step: the owner confirms the fee
// was paid. The first confirmation assigns the registration number.
func (s *TeamService) ConfirmPayment(ctx context.Context, userID, teamID string) (*models.Team, error) {
	team, err := s.teams.GetTeamByID(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to find team: %w", err)
	}
	if team.CreatedBy != userID {
		logrus.WithFields(logrus.Fields{
			"teamID": teamID,
			"userID": userID,
		}).Warn("Payment confirmation by non-owner")
		return nil, ErrNotTeamOwner
	}

	if team.ApprovePayment() {
		if err := s.teams.SaveTeam(ctx, team); err != nil {
			return nil, fmt.Errorf("failed to save payment confirmation: %v", err)
		}
		logrus.WithFields(logrus.Fields{
			"teamID":             team.ID,
			"registrationNumber": team.RegistrationNumber,
		}).Info("Team payment confirmed")
	}
	return team, nil
}

// MyTeams lists the registrations created by one user.
func (s *TeamService) MyTeams(ctx context.Context, userID string) ([]models.Team, error) {
	teams, err := s.teams.GetTeamsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch teams: %v", err)
	}
	return teams, nil
}

// GetTeam returns one registration, visible to its owner and to admins.
func (s *TeamService) GetTeam(ctx context.Context, userID string, isAdmin bool, teamID string) (*models.Team, error) {
	team, err := s.teams.GetTeamByID(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to find team: %w", err)
	}
	if team.CreatedBy != userID && !isAdmin {
		return nil, ErrNotTeamOwner
	}
	return team, nil
}
