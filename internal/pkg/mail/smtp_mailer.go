package mail

import (
	"fmt"
	"log"
	"net/smtp"

	"github.com/enfantsenjoie/eejsite/app/models"
	"github.com/enfantsenjoie/eejsite/internal/pkg/env"
)

// SendMail sends an email via SMTP using the SMTP_* environment settings.
func SendMail(to string, subject string, body string) error {
	host := env.GetEnv("SMTP_HOST", "")
	port := env.GetEnv("SMTP_PORT", "")
	username := env.GetEnv("SMTP_USERNAME", "")
	password := env.GetEnv("SMTP_PASSWORD", "")
	sender := env.GetEnv("SMTP_SENDER", "")

	if sender == "" {
		sender = fmt.Sprintf("no-reply@%s", "localhost")
		log.Printf("SMTP_SENDER not set, using default sender: %s", sender)
	}

	var auth smtp.Auth
	if username != "" && password != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}

	addr := fmt.Sprintf("%s:%s", host, port)

	msg := []byte(
		fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n", sender, to, subject) +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=UTF-8\r\n\r\n" +
			body,
	)

	err := smtp.SendMail(addr, auth, sender, []string{to}, msg)
	if err != nil {
		log.Printf("SMTP send error: %v", err)
	} else {
		log.Printf("Email sent to %s via %s", to, addr)
	}
	return err
}

// SendContactAcknowledgment mails a short confirmation for a received
// contact message. Failures are logged and swallowed: the visitor already
// saw the success notice and a broken mail relay must not change that.
func SendContactAcknowledgment(message *models.ContactMessage) {
	if message.Email == "" {
		return
	}

	subject := "ONG Enfants En Joie - Nous avons bien reçu votre message"
	body := fmt.Sprintf(
		"<p>Bonjour %s,</p>"+
			"<p>Nous avons bien reçu votre message (%s) et nous vous répondrons dans les plus brefs délais.</p>"+
			"<p>L'équipe Enfants En Joie</p>",
		message.Name, message.RequestTypeLabel(),
	)

	if err := SendMail(message.Email, subject, body); err != nil {
		log.Printf("contact acknowledgment not sent to %s: %v", message.Email, err)
	}
}
