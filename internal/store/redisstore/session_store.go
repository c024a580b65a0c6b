// Package redisstore keeps the current-user session records in Redis
// with a TTL, for deployments where session state should not live with
// the primary store.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/iftoesports/portal-backend/internal/models"
	"github.com/iftoesports/portal-backend/internal/store"
	"github.com/redis/go-redis/v9"
)

// SessionDuration is how long a session record survives without a new login.
const SessionDuration = 7 * 24 * time.Hour

// sessionKeyPrefix namespaces the session keys.
const sessionKeyPrefix = "session:"

// Connect parses the Redis URI and verifies the connection with a ping.
func Connect(uri string) (*redis.Client, error) {
	opt, err := redis.ParseURL(uri)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis uri: %v", err)
	}
	opt.DialTimeout = 5 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %v", err)
	}
	return client, nil
}

// SessionStore implements store.SessionStore on Redis.
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a session store on an established client.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func (s *SessionStore) SetCurrentUser(ctx context.Context, user models.PublicUser) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode session: %v", err)
	}
	if err := s.client.Set(ctx, sessionKeyPrefix+user.ID, raw, SessionDuration).Err(); err != nil {
		return fmt.Errorf("failed to save session: %v", err)
	}
	return nil
}

func (s *SessionStore) GetCurrentUser(ctx context.Context, userID string) (*models.PublicUser, error) {
	raw, err := s.client.Get(ctx, sessionKeyPrefix+userID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch session: %v", err)
	}

	var user models.PublicUser
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("failed to decode session: %v", err)
	}
	return &user, nil
}

func (s *SessionStore) ClearCurrentUser(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+userID).Err(); err != nil {
		return fmt.Errorf("failed to clear session: %v", err)
	}
	return nil
}
