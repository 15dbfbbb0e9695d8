package auth

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/soundwatch/soundwatch-api/internal/config"
	"github.com/stretchr/testify/require"
)

func TestNewMailerSelection(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	m := NewMailer(&config.Config{}, log)
	_, ok := m.(*LogMailer)
	require.True(t, ok)

	m = NewMailer(&config.Config{SMTPHost: "smtp.example.com"}, log)
	_, ok = m.(*SMTPMailer)
	require.True(t, ok)
}

func TestVerificationLink(t *testing.T) {
	link := verificationLink("http://localhost:3000", "tok-123")
	require.Equal(t, "http://localhost:3000/auth/verify-email?token=tok-123", link)
}

func TestLogMailerNeverFails(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	m := &LogMailer{cfg: &config.Config{FrontendURL: "http://localhost:3000"}, log: log}
	require.NoError(t, m.SendVerification("citizen@example.com", "tok-123"))
}
