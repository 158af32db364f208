package mailer

import (
	"bytes"
	"fmt"
	"log"
	"net/smtp"

	"job-board-api/config"
)

// Message is a single outbound email.
type Message struct {
	To       string
	ReplyTo  string
	Subject  string
	HTMLBody string
}

// Mailer sends email. Implementations must be safe for concurrent use.
type Mailer interface {
	Send(msg *Message) error
}

// SMTPMailer delivers mail through a plain-auth SMTP relay.
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewSMTPMailer creates an SMTPMailer from config.
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.Username,
		password: cfg.Password,
		from:     cfg.From,
	}
}

var _ Mailer = (*SMTPMailer)(nil)

// Send constructs an HTML message and pushes it through the relay. A single
// delivery attempt is made; the caller decides whether a failure matters.
func (m *SMTPMailer) Send(msg *Message) error {
	headers := map[string]string{
		"From":         m.from,
		"To":           msg.To,
		"Subject":      msg.Subject,
		"MIME-Version": "1.0",
		"Content-Type": "text/html; charset=UTF-8",
	}
	if msg.ReplyTo != "" {
		headers["Reply-To"] = msg.ReplyTo
	}

	var message bytes.Buffer
	for k, v := range headers {
		message.WriteString(fmt.Sprintf("%s: %s\r\n", k, v))
	}
	message.WriteString("\r\n")
	message.WriteString(msg.HTMLBody)

	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	log.Printf("Sending email from %s to %s via %s", m.from, msg.To, addr)
	if err := smtp.SendMail(addr, auth, m.from, []string{msg.To}, message.Bytes()); err != nil {
		return fmt.Errorf("sending mail: %w", err)
	}
	return nil
}

// DisabledMailer is the no-op used when mail configuration is absent.
type DisabledMailer struct{}

var _ Mailer = (*DisabledMailer)(nil)

// Send drops the message.
func (DisabledMailer) Send(msg *Message) error {
	log.Printf("Mail disabled, dropping message to %s (subject: %s)", msg.To, msg.Subject)
	return nil
}

// FromConfig picks the SMTP implementation when a host is configured and the
// disabled no-op otherwise.
func FromConfig(cfg config.SMTPConfig) Mailer {
	if cfg.Host == "" {
		return DisabledMailer{}
	}
	return NewSMTPMailer(cfg)
}
