package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/iftoesports/portal-backend/internal/models"
	"github.com/iftoesports/portal-backend/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestReadsFailSoft(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)

	// Missing files yield empty collections.
	users, err := s.GetUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	// Corrupt files degrade to empty collections too.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "teams.json"), []byte("{not json"), 0o644))
	teams, err := s.GetTeams(ctx)
	require.NoError(t, err)
	assert.Empty(t, teams)
}

func TestPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := New(dir)
	require.NoError(t, err)
	require.NoError(t, s.SaveUser(ctx, &models.User{ID: "user-1", Email: "a@estudante.ifto.edu.br", Password: "hash"}))
	require.NoError(t, s.SaveTeam(ctx, &models.Team{ID: "team-1", Name: "Os Invictos", Game: models.GameEAFCSolo, PaymentStatus: models.PaymentPending}))

	reopened, err := New(dir)
	require.NoError(t, err)

	user, err := reopened.GetUserByEmail(ctx, "a@estudante.ifto.edu.br")
	require.NoError(t, err)
	assert.Equal(t, "hash", user.Password)

	team, err := reopened.GetTeamByID(ctx, "team-1")
	require.NoError(t, err)
	assert.Equal(t, "Os Invictos", team.Name)
}

func TestSaveTeamUpsert(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	team := &models.Team{ID: "team-1", Name: "Os Invictos", Game: models.GameValorant, PaymentStatus: models.PaymentPending}
	require.NoError(t, s.SaveTeam(ctx, team))

	team.PaymentStatus = models.PaymentApproved
	team.RegistrationNumber = "#1234"
	require.NoError(t, s.SaveTeam(ctx, team))

	teams, err := s.GetTeams(ctx)
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, "#1234", teams[0].RegistrationNumber)
}

func TestUpdateUserPreservesPassword(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.SaveUser(ctx, &models.User{ID: "user-1", Email: "a@estudante.ifto.edu.br", Password: "hash"}))

	bio := "jogador de valorant"
	updated, err := s.UpdateUser(ctx, "user-1", models.UserUpdate{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, "hash", updated.Password)
	assert.Equal(t, "jogador de valorant", updated.Bio)

	_, err = s.UpdateUser(ctx, "user-999", models.UserUpdate{Bio: &bio})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestPasswordSurvivesUpdateAndReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := New(dir)
	require.NoError(t, err)
	require.NoError(t, s.SaveUser(ctx, &models.User{ID: "user-1", Email: "a@estudante.ifto.edu.br", Password: "hash"}))

	// The hash must reach the file even though API responses hide it.
	raw, err := os.ReadFile(filepath.Join(dir, "users.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"password": "hash"`)

	bio := "jogador de valorant"
	_, err = s.UpdateUser(ctx, "user-1", models.UserUpdate{Bio: &bio})
	require.NoError(t, err)

	reopened, err := New(dir)
	require.NoError(t, err)
	user, err := reopened.GetUserByEmail(ctx, "a@estudante.ifto.edu.br")
	require.NoError(t, err)
	assert.Equal(t, "hash", user.Password)
	assert.Equal(t, "jogador de valorant", user.Bio)
}

func TestDeleteTeamsByCriteria(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.SaveTeam(ctx, &models.Team{ID: "team-1", Name: "a1", PaymentStatus: models.PaymentPending}))
	require.NoError(t, s.SaveTeam(ctx, &models.Team{ID: "team-2", Name: "a2", PaymentStatus: models.PaymentApproved, Status: models.StatusRejected}))
	require.NoError(t, s.SaveTeam(ctx, &models.Team{ID: "team-3", Name: "a3", PaymentStatus: models.PaymentApproved, Status: models.StatusApproved}))

	removed, err := s.DeleteTeamsByCriteria(ctx, store.DeleteCriteria{Unpaid: true})
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	teams, err := s.GetTeams(ctx)
	require.NoError(t, err)
	assert.Len(t, teams, 2)
}

func TestResetTokenRoundtrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	email := "a@estudante.ifto.edu.br"

	token := models.PasswordResetToken{Token: "abc123", ExpiresAt: time.Now().Add(time.Hour).Truncate(time.Second)}
	require.NoError(t, s.SaveResetToken(ctx, email, token))

	stored, err := s.GetResetToken(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, "abc123", stored.Token)

	require.NoError(t, s.DeleteResetToken(ctx, email))
	_, err = s.GetResetToken(ctx, email)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSessionRoundtrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.SetCurrentUser(ctx, models.PublicUser{ID: "user-1", Email: "a@estudante.ifto.edu.br", Name: "Ana"}))

	stored, err := s.GetCurrentUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", stored.Name)

	require.NoError(t, s.ClearCurrentUser(ctx, "user-1"))
	_, err = s.GetCurrentUser(ctx, "user-1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
