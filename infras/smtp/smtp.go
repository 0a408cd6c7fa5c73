package smtp

//go:generate go run go.uber.org/mock/mockgen -source=./smtp.go -destination=./mocks/smtp_mock.go -package=mocks

import (
	"fmt"
	"net/smtp"
	"strings"

	"clinicbook/config"

	"github.com/rs/zerolog/log"
)

// Mailer is the outbound mail transport. Sends are one-way and best-effort;
// callers must not treat a send failure as a request failure.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

type smtpMailer struct {
	addr string
	from string
	auth smtp.Auth
}

// New builds the SMTP mailer from configuration. With mail disabled it
// returns a mailer that only logs, so the booking flow stays exercisable in
// development without a relay.
func New(config *config.Config) Mailer {
	if !config.Mail.Enable {
		log.Info().Msg("Mail sending disabled, notifications will be logged only")

		return &logMailer{}
	}

	host := strings.TrimSpace(config.Mail.Host)
	port := strings.TrimSpace(config.Mail.Port)

	from := strings.TrimSpace(config.Mail.From)
	if from == "" {
		from = config.Mail.Username
	}

	var auth smtp.Auth
	if config.Mail.Username != "" {
		auth = smtp.PlainAuth("", config.Mail.Username, config.Mail.Password, host)
	}

	return &smtpMailer{
		addr: fmt.Sprintf("%s:%s", host, port),
		from: from,
		auth: auth,
	}
}

func (s *smtpMailer) Send(to, subject, htmlBody string) error {
	msg := buildMessage(s.from, to, subject, htmlBody)

	if err := smtp.SendMail(s.addr, s.auth, s.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}

	return nil
}

// buildMessage assembles a minimal RFC 5322 message with an HTML body.
func buildMessage(from, to, subject, body string) string {
	return fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=utf-8\r\n\r\n%s\r\n",
		from,
		to,
		subject,
		body,
	)
}

type logMailer struct{}

func (l *logMailer) Send(to, subject, _ string) error {
	log.Info().Str("to", to).Str("subject", subject).Msg("Mail transport disabled, dropping message")

	return nil
}
