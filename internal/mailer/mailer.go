// Package mailer delivers outbound mail over SMTP. When the transport is
// not configured, messages are logged instead of sent, so the primary CRUD
// path never blocks on delivery.
package mailer

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"net"
	"net/smtp"
	"strings"

	"github.com/zidalco/backend/internal/config"
)

// Message is one outbound email built from a contact-form record or an
// admin reply.
type Message struct {
	SenderName     string
	SenderEmail    string
	SenderPhone    string
	Body           string
	RecipientEmail string
	Subject        string
}

// Mailer performs best-effort outbound delivery.
type Mailer interface {
	// Send performs one blocking delivery attempt. queued is true when the
	// transport is unconfigured and the message was only logged.
	Send(ctx context.Context, msg Message) (queued bool, err error)
}

// SMTPMailer sends mail through a plain-auth SMTP relay.
type SMTPMailer struct {
	cfg config.SMTPConfig
}

// New creates an SMTPMailer for the given transport settings.
func New(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

var _ Mailer = (*SMTPMailer)(nil)

// Send delivers msg over SMTP, or logs it when the relay is unconfigured.
func (m *SMTPMailer) Send(_ context.Context, msg Message) (bool, error) {
	if !m.cfg.Configured() {
		slog.Info("smtp relay not configured, message logged instead of sent",
			"to", msg.RecipientEmail,
			"subject", msg.Subject,
			"sender", msg.SenderEmail,
		)
		return true, nil
	}

	from := m.cfg.From
	if from == "" {
		from = m.cfg.Username
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.RecipientEmail)
	if msg.SenderEmail != "" {
		fmt.Fprintf(&b, "Reply-To: %s\r\n", msg.SenderEmail)
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(HTMLBody(msg))

	addr := net.JoinHostPort(m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	if err := smtp.SendMail(addr, auth, from, []string{msg.RecipientEmail}, []byte(b.String())); err != nil {
		return false, fmt.Errorf("mailer: send to %s: %w", msg.RecipientEmail, err)
	}
	return false, nil
}

// HTMLBody renders the message as a simple HTML email. All user-supplied
// fields are escaped; newlines in the body become <br> tags.
func HTMLBody(msg Message) string {
	body := strings.ReplaceAll(html.EscapeString(msg.Body), "\n", "<br>")

	var b strings.Builder
	fmt.Fprintf(&b, "<h2>%s</h2>", html.EscapeString(msg.Subject))
	if msg.SenderName != "" {
		fmt.Fprintf(&b, "<p><strong>Name:</strong> %s</p>", html.EscapeString(msg.SenderName))
	}
	if msg.SenderEmail != "" {
		fmt.Fprintf(&b, "<p><strong>Email:</strong> %s</p>", html.EscapeString(msg.SenderEmail))
	}
	if msg.SenderPhone != "" {
		fmt.Fprintf(&b, "<p><strong>Phone:</strong> %s</p>", html.EscapeString(msg.SenderPhone))
	}
	b.WriteString("<p><strong>Message:</strong></p>")
	fmt.Fprintf(&b, "<p>%s</p>", body)
	return b.String()
}
