// Package file persists every collection as a JSON document in a data
// directory, one file per collection (users.json, teams.json,
// passwordResetTokens.json, sessions.json). Reads fail soft: a missing
// or unparsable file yields an empty collection, never an error. Writes
// rewrite the whole file; callers get read-modify-write semantics via a
// store-wide mutex.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/iftoesports/portal-backend/internal/models"
	"github.com/iftoesports/portal-backend/internal/store"
	"github.com/sirupsen/logrus"
)

const (
	usersFile    = "users.json"
	teamsFile    = "teams.json"
	tokensFile   = "passwordResetTokens.json"
	sessionsFile = "sessions.json"
)

// Store implements every store contract over a directory of JSON files.
type Store struct {
	mu  sync.Mutex
	dir string
}

// New creates the data directory if needed and returns the store.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %v", err)
	}
	return &Store{dir: dir}, nil
}

// Stores returns the bundle backed by this single instance.
func (s *Store) Stores() store.Stores {
	return store.Stores{Users: s, Teams: s, Tokens: s, Sessions: s}
}

// load decodes the named collection into out. Missing or corrupt files
// degrade to the zero collection.
func (s *Store) load(name string, out interface{}) {
	raw, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logrus.WithError(err).WithField("file", name).Warn("Failed to read collection, treating as empty")
		}
		return
	}
	if err := json.Unmarshal(raw, out); err != nil {
		logrus.WithError(err).WithField("file", name).Warn("Failed to parse collection, treating as empty")
	}
}

// save rewrites the named collection in full.
func (s *Store) save(name string, in interface{}) error {
	raw, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %v", name, err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), raw, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %v", name, err)
	}
	return nil
}

// userRecord is the on-disk shape of a user. models.User hides the
// password from JSON responses, so persistence needs its own encoding
// that keeps the hash.
type userRecord struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Password     string    `json:"password"`
	Name         string    `json:"name,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	ProfileImage string    `json:"profile_image,omitempty"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toUserRecord(u models.User) userRecord {
	return userRecord{
		ID:           u.ID,
		Email:        u.Email,
		Password:     u.Password,
		Name:         u.Name,
		Bio:          u.Bio,
		ProfileImage: u.ProfileImage,
		IsAdmin:      u.IsAdmin,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (r userRecord) user() models.User {
	return models.User{
		ID:           r.ID,
		Email:        r.Email,
		Password:     r.Password,
		Name:         r.Name,
		Bio:          r.Bio,
		ProfileImage: r.ProfileImage,
		IsAdmin:      r.IsAdmin,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func (s *Store) loadUsers() []models.User {
	var records []userRecord
	s.load(usersFile, &records)

	users := make([]models.User, 0, len(records))
	for _, record := range records {
		users = append(users, record.user())
	}
	return users
}

func (s *Store) saveUsers(users []models.User) error {
	records := make([]userRecord, 0, len(users))
	for _, user := range users {
		records = append(records, toUserRecord(user))
	}
	return s.save(usersFile, records)
}

func (s *Store) loadTeams() []models.Team {
	var teams []models.Team
	s.load(teamsFile, &teams)
	return teams
}

func (s *Store) loadTokens() map[string]models.PasswordResetToken {
	tokens := make(map[string]models.PasswordResetToken)
	s.load(tokensFile, &tokens)
	return tokens
}

func (s *Store) loadSessions() map[string]models.PublicUser {
	sessions := make(map[string]models.PublicUser)
	s.load(sessionsFile, &sessions)
	return sessions
}

func (s *Store) SaveUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	return s.saveUsers(append(s.loadUsers(), *user))
}

func (s *Store) GetUsers(_ context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadUsers(), nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.loadUsers() {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) GetUserByID(_ context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.loadUsers() {
		if user.ID == id {
			u := user
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) UpdateUser(_ context.Context, id string, update models.UserUpdate) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.loadUsers()
	for i := range users {
		if users[i].ID != id {
			continue
		}
		if update.Name != nil {
			users[i].Name = *update.Name
		}
		if update.Bio != nil {
			users[i].Bio = *update.Bio
		}
		if update.ProfileImage != nil {
			users[i].ProfileImage = *update.ProfileImage
		}
		if update.Password != nil {
			users[i].Password = *update.Password
		}
		users[i].UpdatedAt = time.Now()
		if err := s.saveUsers(users); err != nil {
			return nil, err
		}
		user := users[i]
		return &user, nil
	}
	return nil, store.ErrNotFound
}

func (s *Store) SaveTeam(_ context.Context, team *models.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	teams := s.loadTeams()
	for i := range teams {
		if teams[i].ID == team.ID {
			teams[i] = *team
			return s.save(teamsFile, teams)
		}
	}
	if team.CreatedAt.IsZero() {
		team.CreatedAt = time.Now()
	}
	return s.save(teamsFile, append(teams, *team))
}

func (s *Store) GetTeams(_ context.Context) ([]models.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadTeams(), nil
}

func (s *Store) GetTeamByID(_ context.Context, id string) (*models.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, team := range s.loadTeams() {
		if team.ID == id {
			t := team
			return &t, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) GetTeamsByUser(_ context.Context, userID string) ([]models.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Team
	for _, team := range s.loadTeams() {
		if team.CreatedBy == userID {
			out = append(out, team)
		}
	}
	return out, nil
}

func (s *Store) GetTeamNames(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	teams := s.loadTeams()
	names := make([]string, 0, len(teams))
	for _, team := range teams {
		names = append(names, strings.ToLower(team.Name))
	}
	return names, nil
}

func (s *Store) DeleteTeam(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	teams := s.loadTeams()
	for i := range teams {
		if teams[i].ID == id {
			return s.save(teamsFile, append(teams[:i], teams[i+1:]...))
		}
	}
	return nil
}

func (s *Store) DeleteTeamsByCriteria(_ context.Context, criteria store.DeleteCriteria) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	teams := s.loadTeams()
	kept := make([]models.Team, 0, len(teams))
	removed := 0
	for i := range teams {
		if criteria.Matches(&teams[i]) {
			removed++
			continue
		}
		kept = append(kept, teams[i])
	}
	if removed == 0 {
		return 0, nil
	}
	if err := s.save(teamsFile, kept); err != nil {
		return 0, err
	}
	return removed, nil
}

func (s *Store) SaveResetToken(_ context.Context, email string, token models.PasswordResetToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tokens := s.loadTokens()
	tokens[email] = token
	return s.save(tokensFile, tokens)
}

func (s *Store) GetResetToken(_ context.Context, email string) (*models.PasswordResetToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok := s.loadTokens()[email]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &token, nil
}

func (s *Store) DeleteResetToken(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tokens := s.loadTokens()
	delete(tokens, email)
	return s.save(tokensFile, tokens)
}

func (s *Store) SetCurrentUser(_ context.Context, user models.PublicUser) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions := s.loadSessions()
	sessions[user.ID] = user
	return s.save(sessionsFile, sessions)
}

func (s *Store) GetCurrentUser(_ context.Context, userID string) (*models.PublicUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.loadSessions()[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &user, nil
}

func (s *Store) ClearCurrentUser(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions := s.loadSessions()
	delete(sessions, userID)
	return s.save(sessionsFile, sessions)
}
