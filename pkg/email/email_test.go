package email

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"portfolio-backend/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *EmailService {
	return NewEmailService(&config.Config{
		SMTPHost:             "smtp.example.com",
		SMTPPort:             "587",
		SMTPUsername:         "mailer",
		SMTPPassword:         "secret",
		SMTPFromEmail:        "noreply@example.com",
		ContactEmailTo:       "owner@example.com",
		ContactRecipientName: "Michael Zhan",
	})
}

func TestBuildMessage(t *testing.T) {
	s := newTestService()

	msg, err := s.BuildMessage(ContactEmailData{
		SenderName:  "Alice",
		SenderEmail: "alice@example.com",
		Subject:     "Hello there",
		Message:     "<b>not bold</b>",
	})
	require.NoError(t, err)

	text := string(msg)
	assert.Contains(t, text, "To: owner@example.com\r\n")
	assert.Contains(t, text, "Reply-To: alice@example.com\r\n")
	assert.Contains(t, text, "Subject: Portfolio Contact: Hello there\r\n")
	assert.Contains(t, text, "Hi Michael Zhan, you have a new message")
	assert.Contains(t, text, "&lt;b&gt;not bold&lt;/b&gt;")
}

func TestBuildMessageEncodesSubject(t *testing.T) {
	msg, err := newTestService().BuildMessage(ContactEmailData{Subject: "Héllo wörld"})
	require.NoError(t, err)
	assert.Contains(t, string(msg), "Subject: =?UTF-8?q?")
}

func TestSendContactEmail(t *testing.T) {
	t.Run("Should deliver to the configured recipient", func(t *testing.T) {
		s := newTestService()
		var gotAddr string
		var gotTo []string
		s.sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
			gotAddr, gotTo = addr, to
			return nil
		}

		err := s.SendContactEmail(context.Background(), ContactEmailData{SenderEmail: "alice@example.com"})
		require.NoError(t, err)
		assert.Equal(t, "smtp.example.com:587", gotAddr)
		assert.Equal(t, []string{"owner@example.com"}, gotTo)
	})

	t.Run("Should wrap transport errors", func(t *testing.T) {
		s := newTestService()
		s.sendMail = func(string, smtp.Auth, string, []string, []byte) error {
			return errors.New("connection reset")
		}

		err := s.SendContactEmail(context.Background(), ContactEmailData{})
		require.Error(t, err)
		assert.True(t, strings.HasPrefix(err.Error(), "failed to send email"))
	})

	t.Run("Should not dial once the context is done", func(t *testing.T) {
		s := newTestService()
		s.sendMail = func(string, smtp.Auth, string, []string, []byte) error {
			t.Fatal("sendMail should not be called")
			return nil
		}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.ErrorIs(t, s.SendContactEmail(ctx, ContactEmailData{}), context.Canceled)
	})
}

func TestIsConfigured(t *testing.T) {
	assert.True(t, newTestService().IsConfigured())
	assert.False(t, NewEmailService(&config.Config{SMTPHost: "smtp.example.com"}).IsConfigured())
}
