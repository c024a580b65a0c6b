package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/iftoesports/portal-backend/internal/models"
	"github.com/iftoesports/portal-backend/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SessionStore keeps the password-stripped current-user records.
type SessionStore struct {
	collection *mongo.Collection
}

// NewSessionStore creates a new instance of SessionStore.
func NewSessionStore(db *mongo.Database) *SessionStore {
	return &SessionStore{
		collection: db.Collection("sessions"),
	}
}

type sessionDoc struct {
	UserID string            `bson:"_id"`
	User   models.PublicUser `bson:"user"`
}

func (s *SessionStore) SetCurrentUser(ctx context.Context, user models.PublicUser) error {
	opts := options.Replace().SetUpsert(true)
	doc := sessionDoc{UserID: user.ID, User: user}
	if _, err := s.collection.ReplaceOne(ctx, bson.M{"_id": user.ID}, doc, opts); err != nil {
		return fmt.Errorf("failed to save session: %v", err)
	}
	return nil
}

func (s *SessionStore) GetCurrentUser(ctx context.Context, userID string) (*models.PublicUser, error) {
	var doc sessionDoc
	err := s.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find session: %v", err)
	}
	return &doc.User, nil
}

func (s *SessionStore) ClearCurrentUser(ctx context.Context, userID string) error {
	if _, err := s.collection.DeleteOne(ctx, bson.M{"_id": userID}); err != nil {
		return fmt.Errorf("failed to clear session: %v", err)
	}
	return nil
}
