// Package export renders team registrations as the spreadsheet the
// organizers consume, with Portuguese column headers and labels.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/iftoesports/portal-backend/internal/models"
)

var csvHeaders = []string{
	"ID",
	"Nome da Equipe",
	"Modalidade",
	"Jogadores",
	"Instituto",
	"Status Pagamento",
	"Status Inscrição",
	"Número de Registro",
}

// TeamsCSV renders the teams as CSV. Every value is quoted and player
// names are joined with "; ".
func TeamsCSV(teams []models.Team) string {
	var b strings.Builder
	b.WriteString(strings.Join(csvHeaders, ","))

	for i := range teams {
		team := &teams[i]

		names := make([]string, 0, len(team.Players))
		for _, player := range team.Players {
			names = append(names, player.Name)
		}

		registration := team.RegistrationNumber
		if registration == "" {
			registration = "N/A"
		}

		fields := []string{
			team.ID,
			team.Name,
			team.Game.Label(),
			strings.Join(names, "; "),
			string(team.Institute),
			paymentLabel(team.PaymentStatus),
			statusLabel(team.Status),
			registration,
		}

		b.WriteString("\n")
		for j, field := range fields {
			if j > 0 {
				b.WriteString(",")
			}
			b.WriteString(`"` + field + `"`)
		}
	}
	return b.String()
}

// Filename returns the export filename for the given day,
// equipes_ifto_esports_<ISO-date>.csv.
func Filename(now time.Time) string {
	return fmt.Sprintf("equipes_ifto_esports_%s.csv", now.Format("2006-01-02"))
}

func paymentLabel(status models.PaymentStatus) string {
	if status == models.PaymentApproved {
		return "Aprovado"
	}
	return "Pendente"
}

func statusLabel(status models.ApprovalStatus) string {
	switch status {
	case models.StatusApproved:
		return "Aprovada"
	case models.StatusRejected:
		return "Reprovada"
	default:
		return "Pendente"
	}
}
