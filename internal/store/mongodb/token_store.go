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

// TokenStore keeps password-reset tokens keyed by email, one document
// per email. Saving overwrites any previous token.
type TokenStore struct {
	collection *mongo.Collection
}

// NewTokenStore creates a new instance of TokenStore.
func NewTokenStore(db *mongo.Database) *TokenStore {
	return &TokenStore{
		collection: db.Collection("password_reset_tokens"),
	}
}

type tokenDoc struct {
	Email string                    `bson:"_id"`
	Token models.PasswordResetToken `bson:"token"`
}

func (s *TokenStore) SaveResetToken(ctx context.Context, email string, token models.PasswordResetToken) error {
	opts := options.Replace().SetUpsert(true)
	doc := tokenDoc{Email: email, Token: token}
	if _, err := s.collection.ReplaceOne(ctx, bson.M{"_id": email}, doc, opts); err != nil {
		return fmt.Errorf("failed to save reset token: %v", err)
	}
	return nil
}

func (s *TokenStore) GetResetToken(ctx context.Context, email string) (*models.PasswordResetToken, error) {
	var doc tokenDoc
	err := s.collection.FindOne(ctx, bson.M{"_id": email}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find reset token: %v", err)
	}
	return &doc.Token, nil
}

func (s *TokenStore) DeleteResetToken(ctx context.Context, email string) error {
	if _, err := s.collection.DeleteOne(ctx, bson.M{"_id": email}); err != nil {
		return fmt.Errorf("failed to delete reset token: %v", err)
	}
	return nil
}
