package mailer

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"net/smtp"
	"strings"

	"restaurant_backend/pkg/utils"
)

// ErrSendFailed wraps transport failures from the SMTP server.
var ErrSendFailed = errors.New("failed to send email")

// Message is a single outgoing HTML email.
type Message struct {
	To      string
	ReplyTo string
	Subject string
	Body    string
}

// Mailer delivers messages to the restaurant inbox.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Settings configures SMTPMailer.
type Settings struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	FromName string
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPMailer sends through an SMTP relay. With no host configured it logs messages instead.
type SMTPMailer struct {
	settings Settings
	send     sendFunc
}

// NewSMTPMailer creates a mailer for the given relay settings.
func NewSMTPMailer(settings Settings) *SMTPMailer {
	if settings.Host == "" {
		utils.LogWarn(nil, "SMTP not configured, emails will be logged instead of sent")
	}
	return &SMTPMailer{settings: settings, send: smtp.SendMail}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.settings.Host == "" || m.settings.Port == "" {
		utils.LogInfo("SMTP not configured, logging email", map[string]interface{}{
			"to":       msg.To,
			"reply_to": msg.ReplyTo,
			"subject":  msg.Subject,
			"body":     msg.Body,
		})
		return nil
	}

	var auth smtp.Auth
	if m.settings.Username != "" {
		auth = smtp.PlainAuth("", m.settings.Username, m.settings.Password, m.settings.Host)
	}

	addr := m.settings.Host + ":" + m.settings.Port
	if err := m.send(addr, auth, m.settings.From, []string{msg.To}, m.compose(msg)); err != nil {
		return fmt.Errorf("%w: %w", ErrSendFailed, err)
	}
	utils.LogInfo("Email sent", map[string]interface{}{"to": msg.To, "subject": msg.Subject})
	return nil
}

func (m *SMTPMailer) compose(msg Message) []byte {
	from := (&mail.Address{Name: m.settings.FromName, Address: m.settings.From}).String()

	var b strings.Builder
	fmt.Fprintf(&b, "To: %s\r\n", headerValue(msg.To))
	fmt.Fprintf(&b, "From: %s\r\n", from)
	if msg.ReplyTo != "" {
		fmt.Fprintf(&b, "Reply-To: %s\r\n", headerValue(msg.ReplyTo))
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", headerValue(msg.Subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)
	b.WriteString("\r\n")
	return []byte(b.String())
}

// headerValue drops line breaks so customer input cannot add headers.
func headerValue(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}
