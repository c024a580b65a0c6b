package email

import (
	"fmt"
	"net/smtp"
	"os"

	"github.com/iftoesports/portal-backend/internal/models"
	"github.com/sirupsen/logrus"
)

// Notifier is the outbound notification port. Team approval/rejection and
// password-reset requests go through it so the services stay independent
// of any mail transport.
type Notifier interface {
	TeamStatusChanged(to string, team *models.Team, status models.ApprovalStatus) error
	PasswordReset(to, token string) error
}

// LogNotifier only logs the notification intent. It is the default
// backend and stands in for real mail delivery.
type LogNotifier struct{}

func (LogNotifier) TeamStatusChanged(to string, team *models.Team, status models.ApprovalStatus) error {
	logrus.WithFields(logrus.Fields{
		"to":     to,
		"teamID": team.ID,
		"status": status,
	}).Info("Simulated team status email")
	return nil
}

func (LogNotifier) PasswordReset(to, token string) error {
	logrus.WithFields(logrus.Fields{
		"to":    to,
		"token": token,
	}).Info("Simulated password reset email")
	return nil
}

// SMTPNotifier delivers notifications as plain text emails.
type SMTPNotifier struct{}

func (SMTPNotifier) TeamStatusChanged(to string, team *models.Team, status models.ApprovalStatus) error {
	var subject, body string
	if status == models.StatusApproved {
		subject = "Inscrição aprovada - IFTO E-Sports"
		body = fmt.Sprintf("A inscrição da equipe %q foi aprovada.", team.Name)
	} else {
		subject = "Inscrição reprovada - IFTO E-Sports"
		body = fmt.Sprintf("A inscrição da equipe %q foi reprovada.", team.Name)
	}
	return SendEmail(to, subject, body)
}

func (SMTPNotifier) PasswordReset(to, token string) error {
	body := fmt.Sprintf("Use o código abaixo para redefinir sua senha:\n\n%s\n\nO código expira em 1 hora.", token)
	return SendEmail(to, "Redefinição de senha - IFTO E-Sports", body)
}

// SendEmail sends a plain text email using SMTP.
func SendEmail(to, subject, body string) error {
	from := os.Getenv("SMTP_SENDER")
	password := os.Getenv("SMTP_PASSWORD")
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")

	auth := smtp.PlainAuth("", from, password, smtpHost)

	msg := []byte("To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" + body + "\r\n")

	address := smtpHost + ":" + smtpPort

	err := smtp.SendMail(address, auth, from, []string{to}, msg)
	if err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	return nil
}
