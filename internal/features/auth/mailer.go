package auth

import (
	"fmt"
	"net/smtp"

	"github.com/sirupsen/logrus"
	"github.com/soundwatch/soundwatch-api/internal/config"
)

// Mailer delivers verification mail. Implementations must not retry;
// delivery failure is reported to the caller once.
type Mailer interface {
	SendVerification(to, token string) error
}

// NewMailer picks the SMTP mailer when credentials are configured and
// falls back to logging the verification link in development.
func NewMailer(cfg *config.Config, log *logrus.Logger) Mailer {
	if cfg.SMTPHost != "" {
		return &SMTPMailer{cfg: cfg}
	}
	return &LogMailer{cfg: cfg, log: log}
}

// SMTPMailer sends verification mail through a plain SMTP relay
type SMTPMailer struct {
	cfg *config.Config
}

func (m *SMTPMailer) SendVerification(to, token string) error {
	link := verificationLink(m.cfg.FrontendURL, token)

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: Verify your SoundWatch account\r\n\r\n"+
		"Welcome to SoundWatch!\r\n\r\nOpen the link below to verify your email address:\r\n%s\r\n",
		m.cfg.MailFrom, to, link)

	addr := m.cfg.SMTPHost + ":" + m.cfg.SMTPPort
	auth := smtp.PlainAuth("", m.cfg.SMTPUser, m.cfg.SMTPPass, m.cfg.SMTPHost)

	if err := smtp.SendMail(addr, auth, m.cfg.MailFrom, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send verification mail: %w", err)
	}
	return nil
}

// LogMailer writes the verification link to the log instead of sending
// mail. Used when no SMTP relay is configured.
type LogMailer struct {
	cfg *config.Config
	log *logrus.Logger
}

func (m *LogMailer) SendVerification(to, token string) error {
	m.log.WithFields(logrus.Fields{
		"to":   to,
		"link": verificationLink(m.cfg.FrontendURL, token),
	}).Info("verification mail (log delivery)")
	return nil
}

func verificationLink(frontendURL, token string) string {
	return fmt.Sprintf("%s/auth/verify-email?token=%s", frontendURL, token)
}
