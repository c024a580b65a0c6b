package services

import (
	"context"
	"regexp"
	"testing"

	"github.com/iftoesports/portal-backend/internal/models"
	"github.com/iftoesports/portal-backend/internal/store"
	"github.com/iftoesports/portal-backend/internal/store/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdminFixture(t *testing.T) (*AdminService, *memory.Store, *recordingNotifier) {
	t.Helper()
	mem := memory.New()
	notifier := &recordingNotifier{}

	require.NoError(t, mem.SaveUser(context.Background(), &models.User{
		ID:    "user-1",
		Email: "aluno@estudante.ifto.edu.br",
	}))

	return NewAdminService(mem, mem, notifier), mem, notifier
}

func seedTeam(t *testing.T, mem *memory.Store, team models.Team) {
	t.Helper()
	if team.CreatedBy == "" {
		team.CreatedBy = "user-1"
	}
	require.NoError(t, mem.SaveTeam(context.Background(), &team))
}

func TestApprovePaymentAssignsNumberOnce(t *testing.T) {
	ctx := context.Background()
	svc, mem, _ := newAdminFixture(t)
	seedTeam(t, mem, models.Team{ID: "team-1", Name: "Os Invictos", Game: models.GameValorant, PaymentStatus: models.PaymentPending})

	team, err := svc.ApprovePayment(ctx, "team-1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentApproved, team.PaymentStatus)
	assert.Regexp(t, regexp.MustCompile(`^#\d{4}$`), team.RegistrationNumber)

	first := team.RegistrationNumber
	team, err = svc.ApprovePayment(ctx, "team-1")
	require.NoError(t, err)
	assert.Equal(t, first, team.RegistrationNumber, "re-approval must not reassign the number")

	_, err = svc.ApprovePayment(ctx, "team-999")
	assert.Error(t, err)
}

func TestApproveAndRejectNotifyOwner(t *testing.T) {
	ctx := context.Background()
	svc, mem, notifier := newAdminFixture(t)
	seedTeam(t, mem, models.Team{ID: "team-1", Name: "Os Invictos", Game: models.GameValorant, PaymentStatus: models.PaymentApproved})

	team, err := svc.ApproveTeam(ctx, "team-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, team.Status)

	require.Len(t, notifier.statusCalls, 1)
	assert.Equal(t, "aluno@estudante.ifto.edu.br", notifier.statusCalls[0].to)
	assert.Equal(t, models.StatusApproved, notifier.statusCalls[0].status)

	// The review flow allows flipping a decision.
	team, err = svc.RejectTeam(ctx, "team-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, team.Status)
	require.Len(t, notifier.statusCalls, 2)
	assert.Equal(t, models.StatusRejected, notifier.statusCalls[1].status)
}

func TestBulkDeleteRejectedOnly(t *testing.T) {
	ctx := context.Background()
	svc, mem, _ := newAdminFixture(t)

	seedTeam(t, mem, models.Team{ID: "team-1", Name: "r1", PaymentStatus: models.PaymentApproved, Status: models.StatusRejected})
	seedTeam(t, mem, models.Team{ID: "team-2", Name: "r2", PaymentStatus: models.PaymentApproved, Status: models.StatusRejected})
	seedTeam(t, mem, models.Team{ID: "team-3", Name: "r3", PaymentStatus: models.PaymentApproved, Status: models.StatusRejected})
	seedTeam(t, mem, models.Team{ID: "team-4", Name: "p1", PaymentStatus: models.PaymentPending})
	seedTeam(t, mem, models.Team{ID: "team-5", Name: "p2", PaymentStatus: models.PaymentPending})

	deleted, err := svc.BulkDelete(ctx, store.DeleteCriteria{Rejected: true})
	require.NoError(t, err)
	assert.Equal(t, 3, deleted)

	remaining, err := mem.GetTeams(ctx)
	require.NoError(t, err)
	assert.Len(t, remaining, 2)
	for _, team := range remaining {
		assert.Equal(t, models.PaymentPending, team.PaymentStatus)
	}
}

func TestDeleteTeam(t *testing.T) {
	ctx := context.Background()
	svc, mem, _ := newAdminFixture(t)
	seedTeam(t, mem, models.Team{ID: "team-1", Name: "Os Invictos", PaymentStatus: models.PaymentPending})

	require.NoError(t, svc.DeleteTeam(ctx, "team-1"))

	teams, err := mem.GetTeams(ctx)
	require.NoError(t, err)
	assert.Empty(t, teams)
}

func TestListTeamsFilters(t *testing.T) {
	ctx := context.Background()
	svc, mem, _ := newAdminFixture(t)

	seedTeam(t, mem, models.Team{
		ID: "team-1", Name: "Os Invictos", Game: models.GameValorant,
		Institute: "IFTO Campus Palmas", PaymentStatus: models.PaymentApproved,
		Status:  models.StatusApproved,
		Players: []models.Player{{ID: "p1", Name: "Ana Souza"}},
	})
	seedTeam(t, mem, models.Team{
		ID: "team-2", Name: "Tilt Total", Game: models.GameEAFCDupla,
		Institute: "IFTO Campus Gurupi", PaymentStatus: models.PaymentPending,
		Players: []models.Player{{ID: "p2", Name: "Bruno Lima"}},
	})

	tests := []struct {
		name    string
		filter  TeamFilter
		wantIDs []string
	}{
		{"no filter", TeamFilter{}, []string{"team-1", "team-2"}},
		{"by game", TeamFilter{Game: "valorant"}, []string{"team-1"}},
		{"by institute", TeamFilter{Institute: "IFTO Campus Gurupi"}, []string{"team-2"}},
		{"by payment", TeamFilter{Payment: "pending"}, []string{"team-2"}},
		{"by status", TeamFilter{Status: "approved"}, []string{"team-1"}},
		{"status pending means unreviewed", TeamFilter{Status: "pending"}, []string{"team-2"}},
		{"search by team name", TeamFilter{Search: "invic"}, []string{"team-1"}},
		{"search by player name", TeamFilter{Search: "bruno"}, []string{"team-2"}},
		{"search by institute", TeamFilter{Search: "gurupi"}, []string{"team-2"}},
		{"search respects dropdown filters", TeamFilter{Game: "valorant", Search: "bruno"}, []string{}},
		{"search without match", TeamFilter{Search: "zzz"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			teams, err := svc.ListTeams(ctx, tt.filter)
			require.NoError(t, err)

			ids := make([]string, 0, len(teams))
			for _, team := range teams {
				ids = append(ids, team.ID)
			}
			assert.ElementsMatch(t, tt.wantIDs, ids)
		})
	}
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	svc, mem, _ := newAdminFixture(t)

	seedTeam(t, mem, models.Team{
		ID: "team-1", Name: "a1", Game: models.GameValorant,
		PaymentStatus: models.PaymentApproved, Status: models.StatusApproved,
		Players: make([]models.Player, 5),
	})
	seedTeam(t, mem, models.Team{
		ID: "team-2", Name: "a2", Game: models.GameEAFCDupla,
		PaymentStatus: models.PaymentPending, Status: models.StatusRejected,
		Players: make([]models.Player, 2),
	})
	seedTeam(t, mem, models.Team{
		ID: "team-3", Name: "a3", Game: models.GameEAFCSolo,
		PaymentStatus: models.PaymentPending,
		Players: make([]models.Player, 1),
	})

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 8, stats.TotalPlayers)
	assert.Equal(t, 1, stats.ByGame[models.GameValorant])
	assert.Equal(t, 1, stats.ByGame[models.GameEAFCDupla])
	assert.Equal(t, 1, stats.ByGame[models.GameEAFCSolo])
	assert.Equal(t, 1, stats.PaymentApproved)
	assert.Equal(t, 2, stats.PaymentPending)
	assert.Equal(t, 1, stats.Approved)
	assert.Equal(t, 1, stats.Rejected)
}
