package services

import (
	"fmt"
	"html"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type MailConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	From      string
	Recipient string
}

// ContactMessage is a storefront contact or bulk-order inquiry to relay.
type ContactMessage struct {
	Name    string
	Mobile  string
	Email   string
	Subject string
	Message string
}

// ContactSender relays a contact message to the shop inbox.
type ContactSender interface {
	SendContactMessage(msg ContactMessage) error
}

type Mailer struct {
	config MailConfig
	dialer *gomail.Dialer
}

func NewMailer(cfg MailConfig) *Mailer {
	return &Mailer{
		config: cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

func (m *Mailer) SendContactMessage(msg ContactMessage) error {
	subject := msg.Subject
	if subject == "" {
		subject = fmt.Sprintf("Contact Form Submission from %s", msg.Name)
	}

	mail := gomail.NewMessage()
	mail.SetHeader("From", m.config.From)
	mail.SetHeader("To", m.config.Recipient)
	mail.SetHeader("Subject", subject)
	mail.SetHeader("Reply-To", msg.Email)
	mail.SetBody("text/html", BuildContactEmailBody(msg))

	if err := m.dialer.DialAndSend(mail); err != nil {
		zap.S().Errorf("Failed to send contact email from %s: %v", msg.Email, err)
		return fmt.Errorf("failed to send contact email: %w", err)
	}

	return nil
}

func BuildContactEmailBody(msg ContactMessage) string {
	var b strings.Builder
	b.WriteString("<h2>New Contact Form Submission</h2>")
	b.WriteString(fmt.Sprintf("<p><strong>Name:</strong> %s</p>", html.EscapeString(msg.Name)))
	b.WriteString(fmt.Sprintf("<p><strong>Mobile:</strong> %s</p>", html.EscapeString(msg.Mobile)))
	b.WriteString(fmt.Sprintf("<p><strong>Email:</strong> %s</p>", html.EscapeString(msg.Email)))
	if msg.Subject != "" {
		b.WriteString(fmt.Sprintf("<p><strong>Subject:</strong> %s</p>", html.EscapeString(msg.Subject)))
	}
	b.WriteString("<p><strong>Message:</strong></p>")
	b.WriteString(fmt.Sprintf("<p>%s</p>", strings.ReplaceAll(html.EscapeString(msg.Message), "\n", "<br>")))
	return b.String()
}
