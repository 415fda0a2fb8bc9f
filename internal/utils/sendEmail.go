package utils

import (
	"crypto/tls"
	"errors"
	"fmt"
	"html"
	"log"
	"os"
	"strconv"

	"revivecare/internal/models"

	"gopkg.in/gomail.v2"
)

type MailConfig struct {
	SMTPHost string
	SMTPPort int
	Username string
	Password string
	Sender   string
}

func LoadMailConfig() MailConfig {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil || port <= 0 {
		port = 587
	}

	return MailConfig{
		SMTPHost: os.Getenv("SMTP_HOST"),
		SMTPPort: port,
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		Sender:   os.Getenv("SMTP_SENDER"),
	}
}

// Enabled reports whether enough of the SMTP settings are present to send.
func (c MailConfig) Enabled() bool {
	return c.SMTPHost != "" && c.Sender != ""
}

// MailSender is satisfied by *gomail.Dialer.
type MailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

func NewDialer(config MailConfig) *gomail.Dialer {
	d := gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.Username, config.Password)
	d.TLSConfig = &tls.Config{
		ServerName: config.SMTPHost,
		MinVersion: tls.VersionTLS12,
	}
	return d
}

func SendEmail(sender MailSender, config MailConfig, recipient, subject, htmlBody string) error {
	if recipient == "" {
		return errors.New("recipient is empty")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", config.Sender)
	m.SetHeader("To", recipient)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := sender.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Printf("Email sent to %s", recipient)
	return nil
}

// DoctorAlertMailer emails a doctor when a patient's chat turns serious.
type DoctorAlertMailer struct {
	config MailConfig
	sender MailSender
}

func NewDoctorAlertMailer(config MailConfig, sender MailSender) *DoctorAlertMailer {
	return &DoctorAlertMailer{config: config, sender: sender}
}

func (m *DoctorAlertMailer) NotifySeriousMessage(doctor *models.Doctor, patient *models.Patient, message *models.ChatMessage) error {
	subject := fmt.Sprintf("ReViveCare alert: %s needs attention", patient.Name)
	body := fmt.Sprintf(`<p>Hello %s,</p>
<p>The recovery assistant flagged a conversation with your patient <strong>%s</strong> (ID %d)
with a seriousness score of <strong>%.0f%%</strong>.</p>
<blockquote>%s</blockquote>
<p>Sent at %s. Please review the chat history in ReViveCare and contact the patient if needed.</p>`,
		html.EscapeString(doctor.DisplayName()),
		html.EscapeString(patient.Name),
		patient.ID,
		message.SeriousnessScore*100,
		html.EscapeString(message.Message),
		message.Timestamp.Format("02 Jan 2006 15:04 MST"),
	)

	return SendEmail(m.sender, m.config, doctor.Email, subject, body)
}
