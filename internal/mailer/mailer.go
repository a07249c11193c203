package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"careernest/internal/config"
)

// Sender delivers a message to an address. Initial-registration flows treat
// a send failure as fatal; status-change notifications are fire-and-forget.
type Sender interface {
	Send(to, subject, body string) error
}

type SMTPSender struct {
	host string
	port string
	user string
	pass string
	from string
}

func NewSMTPSender(cfg *config.Config) *SMTPSender {
	return &SMTPSender{
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
		user: cfg.SMTPUser,
		pass: cfg.SMTPPass,
		from: cfg.SMTPFrom,
	}
}

func (s *SMTPSender) Send(to, subject, body string) error {
	recipients := []string{to}

	message := fmt.Appendf(nil, "To: %s\r\n"+
		"From: %s\r\n"+
		"Subject: %s\r\n"+
		"\r\n"+
		"%s\r\n", strings.Join(recipients, ","), s.from, subject, body)

	auth := smtp.PlainAuth("", s.user, s.pass, s.host)
	addr := s.host + ":" + s.port

	if err := smtp.SendMail(addr, auth, s.from, recipients, message); err != nil {
		return fmt.Errorf("error sending email to %s: %w", to, err)
	}
	return nil
}
