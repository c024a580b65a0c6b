package services

import (
	"context"
	"regexp"
	"testing"

	"github.com/iftoesports/portal-backend/internal/models"
	"github.com/iftoesports/portal-backend/internal/store/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() TeamRegistrationInput {
	return TeamRegistrationInput{
		Name:      "Os Invictos",
		Game:      models.GameValorant,
		Institute: "IFTO Campus Palmas",
		Players:   []string{"Ana Souza", "Bruno Lima", "Carla Dias", "Davi Rocha", "Edu Alves"},
	}
}

func TestRegisterTeam(t *testing.T) {
	ctx := context.Background()
	mem := memory.New()
	svc := NewTeamService(mem)

	team, err := svc.RegisterTeam(ctx, "user-1", validInput())
	require.NoError(t, err)

	assert.Equal(t, models.PaymentPending, team.PaymentStatus)
	assert.Equal(t, models.StatusUnset, team.Status)
	assert.Empty(t, team.RegistrationNumber)
	assert.Equal(t, "user-1", team.CreatedBy)
	assert.Len(t, team.Players, 5)
	for _, player := range team.Players {
		assert.NotEmpty(t, player.ID)
	}
}

func TestRegisterTeamValidation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*TeamRegistrationInput)
	}{
		{"unknown game", func(in *TeamRegistrationInput) { in.Game = "chess" }},
		{"unknown institute", func(in *TeamRegistrationInput) { in.Institute = "IFTO Campus Marte" }},
		{"short team name", func(in *TeamRegistrationInput) { in.Name = "ab" }},
		{"valorant with four players", func(in *TeamRegistrationInput) {
			in.Players = in.Players[:4]
		}},
		{"blank player names dropped below minimum", func(in *TeamRegistrationInput) {
			in.Players = []string{"Ana Souza", "Bruno Lima", "Carla Dias", "Davi Rocha", ""}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := memory.New()
			svc := NewTeamService(mem)

			input := validInput()
			tt.mutate(&input)

			_, err := svc.RegisterTeam(ctx, "user-1", input)
			assert.Error(t, err)

			teams, err := mem.GetTeams(ctx)
			require.NoError(t, err)
			assert.Empty(t, teams, "rejected registration must not persist a team")
		})
	}
}

func TestRegisterTeamDuplicateName(t *testing.T) {
	ctx := context.Background()
	mem := memory.New()
	svc := NewTeamService(mem)

	_, err := svc.RegisterTeam(ctx, "user-1", validInput())
	require.NoError(t, err)

	dup := validInput()
	dup.Name = "OS INVICTOS"
	_, err = svc.RegisterTeam(ctx, "user-2", dup)
	assert.Error(t, err, "team names are unique case-insensitively")
}

func TestRegisterTeamPerGameMinimums(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		game    models.Game
		players []string
		ok      bool
	}{
		{models.GameEAFCSolo, []string{"Ana Souza"}, true},
		{models.GameEAFCSolo, []string{""}, false},
		{models.GameEAFCDupla, []string{"Ana Souza", "Bruno Lima"}, true},
		{models.GameEAFCDupla, []string{"Ana Souza"}, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.game), func(t *testing.T) {
			mem := memory.New()
			svc := NewTeamService(mem)

			input := validInput()
			input.Game = tt.game
			input.Players = tt.players

			_, err := svc.RegisterTeam(ctx, "user-1", input)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestConfirmPayment(t *testing.T) {
	ctx := context.Background()
	mem := memory.New()
	svc := NewTeamService(mem)

	team, err := svc.RegisterTeam(ctx, "user-1", validInput())
	require.NoError(t, err)

	confirmed, err := svc.ConfirmPayment(ctx, "user-1", team.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentApproved, confirmed.PaymentStatus)
	assert.Regexp(t, regexp.MustCompile(`^#\d{4}$`), confirmed.RegistrationNumber)

	// A second confirmation keeps the assigned number.
	again, err := svc.ConfirmPayment(ctx, "user-1", team.ID)
	require.NoError(t, err)
	assert.Equal(t, confirmed.RegistrationNumber, again.RegistrationNumber)
}

func TestConfirmPaymentOwnerOnly(t *testing.T) {
	ctx := context.Background()
	mem := memory.New()
	svc := NewTeamService(mem)

	team, err := svc.RegisterTeam(ctx, "user-1", validInput())
	require.NoError(t, err)

	_, err = svc.ConfirmPayment(ctx, "user-2", team.ID)
	assert.ErrorIs(t, err, ErrNotTeamOwner)

	stored, err := mem.GetTeamByID(ctx, team.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPending, stored.PaymentStatus)
}

func TestGetTeamVisibility(t *testing.T) {
	ctx := context.Background()
	mem := memory.New()
	svc := NewTeamService(mem)

	team, err := svc.RegisterTeam(ctx, "user-1", validInput())
	require.NoError(t, err)

	_, err = svc.GetTeam(ctx, "user-1", false, team.ID)
	assert.NoError(t, err, "owner can read")

	_, err = svc.GetTeam(ctx, "user-2", true, team.ID)
	assert.NoError(t, err, "admin can read")

	_, err = svc.GetTeam(ctx, "user-2", false, team.ID)
	assert.ErrorIs(t, err, ErrNotTeamOwner)

	_, err = svc.GetTeam(ctx, "user-1", false, "team-999")
	assert.Error(t, err)
}

func TestMyTeams(t *testing.T) {
	ctx := context.Background()
	mem := memory.New()
	svc := NewTeamService(mem)

	_, err := svc.RegisterTeam(ctx, "user-1", validInput())
	require.NoError(t, err)

	second := validInput()
	second.Name = "Tilt Total"
	_, err = svc.RegisterTeam(ctx, "user-2", second)
	require.NoError(t, err)

	// Back-to-back registrations must persist as distinct records.
	all, err := mem.GetTeams(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := svc.MyTeams(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Os Invictos", mine[0].Name)
}
