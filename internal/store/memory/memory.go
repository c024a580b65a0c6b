// Package memory provides in-memory store implementations used in tests
// and development. Records live in slices to keep insertion order, the
// way the JSON-array backends do.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/iftoesports/portal-backend/internal/models"
	"github.com/iftoesports/portal-backend/internal/store"
)

// Store implements every store contract over process memory.
type Store struct {
	mu       sync.Mutex
	users    []models.User
	teams    []models.Team
	tokens   map[string]models.PasswordResetToken
	sessions map[string]models.PublicUser
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		tokens:   make(map[string]models.PasswordResetToken),
		sessions: make(map[string]models.PublicUser),
	}
}

// Stores returns the bundle backed by this single instance.
func (s *Store) Stores() store.Stores {
	return store.Stores{Users: s, Teams: s, Tokens: s, Sessions: s}
}

func (s *Store) SaveUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	s.users = append(s.users, *user)
	return nil
}

func (s *Store) GetUsers(_ context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.User, len(s.users))
	copy(out, s.users)
	return out, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].Email == email {
			user := s.users[i]
			return &user, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) GetUserByID(_ context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID == id {
			user := s.users[i]
			return &user, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) UpdateUser(_ context.Context, id string, update models.UserUpdate) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID != id {
			continue
		}
		applyUserUpdate(&s.users[i], update)
		user := s.users[i]
		return &user, nil
	}
	return nil, store.ErrNotFound
}

// applyUserUpdate merges the partial update, keeping the stored password
// unless the update carries an explicit new one.
func applyUserUpdate(user *models.User, update models.UserUpdate) {
	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Bio != nil {
		user.Bio = *update.Bio
	}
	if update.ProfileImage != nil {
		user.ProfileImage = *update.ProfileImage
	}
	if update.Password != nil {
		user.Password = *update.Password
	}
	user.UpdatedAt = time.Now()
}

func (s *Store) SaveTeam(_ context.Context, team *models.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.teams {
		if s.teams[i].ID == team.ID {
			s.teams[i] = *team
			return nil
		}
	}
	if team.CreatedAt.IsZero() {
		team.CreatedAt = time.Now()
	}
	s.teams = append(s.teams, *team)
	return nil
}

func (s *Store) GetTeams(_ context.Context) ([]models.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Team, len(s.teams))
	copy(out, s.teams)
	return out, nil
}

func (s *Store) GetTeamByID(_ context.Context, id string) (*models.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.teams {
		if s.teams[i].ID == id {
			team := s.teams[i]
			return &team, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) GetTeamsByUser(_ context.Context, userID string) ([]models.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Team
	for i := range s.teams {
		if s.teams[i].CreatedBy == userID {
			out = append(out, s.teams[i])
		}
	}
	return out, nil
}

func (s *Store) GetTeamNames(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.teams))
	for i := range s.teams {
		names = append(names, strings.ToLower(s.teams[i].Name))
	}
	return names, nil
}

func (s *Store) DeleteTeam(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.teams {
		if s.teams[i].ID == id {
			s.teams = append(s.teams[:i], s.teams[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *Store) DeleteTeamsByCriteria(_ context.Context, criteria store.DeleteCriteria) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.teams[:0]
	removed := 0
	for i := range s.teams {
		if criteria.Matches(&s.teams[i]) {
			removed++
			continue
		}
		kept = append(kept, s.teams[i])
	}
	s.teams = kept
	return removed, nil
}

func (s *Store) SaveResetToken(_ context.Context, email string, token models.PasswordResetToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokens[email] = token
	return nil
}

func (s *Store) GetResetToken(_ context.Context, email string) (*models.PasswordResetToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok := s.tokens[email]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &token, nil
}

func (s *Store) DeleteResetToken(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tokens, email)
	return nil
}

func (s *Store) SetCurrentUser(_ context.Context, user models.PublicUser) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[user.ID] = user
	return nil
}

func (s *Store) GetCurrentUser(_ context.Context, userID string) (*models.PublicUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.sessions[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &user, nil
}

func (s *Store) ClearCurrentUser(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, userID)
	return nil
}
