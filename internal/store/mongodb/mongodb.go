// Package mongodb implements the store contracts on MongoDB, one
// collection per record type.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/iftoesports/portal-backend/internal/store"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Connect dials MongoDB and verifies the connection with a ping.
func Connect(uri, dbName string) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %v", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %v", err)
	}

	return client.Database(dbName), nil
}

// NewStores wires all four contracts against one database.
func NewStores(db *mongo.Database) store.Stores {
	return store.Stores{
		Users:    NewUserStore(db),
		Teams:    NewTeamStore(db),
		Tokens:   NewTokenStore(db),
		Sessions: NewSessionStore(db),
	}
}
