package mongodb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iftoesports/portal-backend/internal/models"
	"github.com/iftoesports/portal-backend/internal/store"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TeamStore handles database operations related to team registrations.
type TeamStore struct {
	collection *mongo.Collection
}

// NewTeamStore creates a new instance of TeamStore.
func NewTeamStore(db *mongo.Database) *TeamStore {
	return &TeamStore{
		collection: db.Collection("teams"),
	}
}

// SaveTeam upserts the team by id: replace when present, insert otherwise.
func (s *TeamStore) SaveTeam(ctx context.Context, team *models.Team) error {
	if team.CreatedAt.IsZero() {
		team.CreatedAt = time.Now()
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := s.collection.ReplaceOne(ctx, bson.M{"_id": team.ID}, team, opts); err != nil {
		logrus.WithFields(logrus.Fields{
			"teamID": team.ID,
			"error":  err,
		}).Error("Failed to save team")
		return fmt.Errorf("failed to save team: %v", err)
	}

	logrus.WithField("teamID", team.ID).Info("Team saved successfully")
	return nil
}

// GetTeams returns every registered team.
func (s *TeamStore) GetTeams(ctx context.Context) ([]models.Team, error) {
	cursor, err := s.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch teams: %v", err)
	}
	defer cursor.Close(ctx)

	var teams []models.Team
	if err := cursor.All(ctx, &teams); err != nil {
		return nil, fmt.Errorf("failed to decode teams: %v", err)
	}
	return teams, nil
}

// GetTeamByID retrieves a team by id.
func (s *TeamStore) GetTeamByID(ctx context.Context, id string) (*models.Team, error) {
	var team models.Team
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&team)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"teamID": id,
			"error":  err,
		}).Warn("Failed to find team by ID")
		return nil, fmt.Errorf("failed to find team by id: %v", err)
	}
	return &team, nil
}

// GetTeamsByUser returns the teams registered by one user.
func (s *TeamStore) GetTeamsByUser(ctx context.Context, userID string) ([]models.Team, error) {
	cursor, err := s.collection.Find(ctx, bson.M{"created_by": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user teams: %v", err)
	}
	defer cursor.Close(ctx)

	var teams []models.Team
	if err := cursor.All(ctx, &teams); err != nil {
		return nil, fmt.Errorf("failed to decode user teams: %v", err)
	}
	return teams, nil
}

// GetTeamNames returns every team name lowercased.
func (s *TeamStore) GetTeamNames(ctx context.Context) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"name": 1})
	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch team names: %v", err)
	}
	defer cursor.Close(ctx)

	var teams []struct {
		Name string `bson:"name"`
	}
	if err := cursor.All(ctx, &teams); err != nil {
		return nil, fmt.Errorf("failed to decode team names: %v", err)
	}

	names := make([]string, 0, len(teams))
	for _, team := range teams {
		names = append(names, strings.ToLower(team.Name))
	}
	return names, nil
}

// DeleteTeam removes a team by id; deleting an absent id is a no-op.
func (s *TeamStore) DeleteTeam(ctx context.Context, id string) error {
	if _, err := s.collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		logrus.WithFields(logrus.Fields{
			"teamID": id,
			"error":  err,
		}).Error("Failed to delete team")
		return fmt.Errorf("failed to delete team: %v", err)
	}
	return nil
}

// DeleteTeamsByCriteria removes every team matching any enabled
// criterion and returns the count removed.
func (s *TeamStore) DeleteTeamsByCriteria(ctx context.Context, criteria store.DeleteCriteria) (int, error) {
	var clauses []bson.M
	if criteria.Unpaid {
		clauses = append(clauses, bson.M{"payment_status": models.PaymentPending})
	}
	if criteria.Rejected {
		clauses = append(clauses, bson.M{"status": models.StatusRejected})
	}
	if criteria.Approved {
		clauses = append(clauses, bson.M{
			"status":         models.StatusApproved,
			"payment_status": models.PaymentApproved,
		})
	}
	if len(clauses) == 0 {
		return 0, nil
	}

	result, err := s.collection.DeleteMany(ctx, bson.M{"$or": clauses})
	if err != nil {
		logrus.WithError(err).Error("Failed to bulk delete teams")
		return 0, fmt.Errorf("failed to bulk delete teams: %v", err)
	}

	logrus.WithField("deleted", result.DeletedCount).Info("Bulk deleted teams")
	return int(result.DeletedCount), nil
}
