package export

import (
	"strings"
	"testing"
	"time"

	"github.com/iftoesports/portal-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeamsCSV(t *testing.T) {
	teams := []models.Team{
		{
			ID:   "team-1",
			Name: "Os Invictos",
			Game: models.GameValorant,
			Players: []models.Player{
				{ID: "p1", Name: "Ana Souza"},
				{ID: "p2", Name: "Bruno Lima"},
			},
			Institute:          "IFTO Campus Palmas",
			PaymentStatus:      models.PaymentApproved,
			Status:             models.StatusApproved,
			RegistrationNumber: "#1234",
		},
		{
			ID:            "team-2",
			Name:          "Tilt Total",
			Game:          models.GameEAFCDupla,
			Players:       []models.Player{{ID: "p3", Name: "Carla Dias"}},
			Institute:     "IFTO Campus Gurupi",
			PaymentStatus: models.PaymentPending,
		},
	}

	csv := TeamsCSV(teams)
	lines := strings.Split(csv, "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, "ID,Nome da Equipe,Modalidade,Jogadores,Instituto,Status Pagamento,Status Inscrição,Número de Registro", lines[0])
	assert.Equal(t, `"team-1","Os Invictos","Valorant","Ana Souza; Bruno Lima","IFTO Campus Palmas","Aprovado","Aprovada","#1234"`, lines[1])
	assert.Equal(t, `"team-2","Tilt Total","EA FC Dupla","Carla Dias","IFTO Campus Gurupi","Pendente","Pendente","N/A"`, lines[2])
}

func TestTeamsCSVRejectedLabel(t *testing.T) {
	csv := TeamsCSV([]models.Team{{
		ID:            "team-1",
		Name:          "Azar Zero",
		Game:          models.GameEAFCSolo,
		Players:       []models.Player{{ID: "p1", Name: "Davi Rocha"}},
		Institute:     "IFTO Campus Palmas",
		PaymentStatus: models.PaymentApproved,
		Status:        models.StatusRejected,
	}})

	assert.Contains(t, csv, `"EA FC Solo"`)
	assert.Contains(t, csv, `"Reprovada"`)
}

func TestTeamsCSVEmpty(t *testing.T) {
	csv := TeamsCSV(nil)
	assert.Equal(t, "ID,Nome da Equipe,Modalidade,Jogadores,Instituto,Status Pagamento,Status Inscrição,Número de Registro", csv)
}

func TestFilename(t *testing.T) {
	day := time.Date(2026, time.March, 14, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, "equipes_ifto_esports_2026-03-14.csv", Filename(day))
}
